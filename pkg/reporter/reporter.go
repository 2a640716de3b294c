package reporter

import (
	"sort"

	"github.com/opscart/vm-cost-optimizer/pkg/models"
)

const maxCostDrivers = 5

// CostReporter aggregates snapshot costs into a CostReport. The savings rule
// is injected so synthetic thresholds can be tested without touching the
// aggregation logic.
type CostReporter struct {
	savingsRate  float64
	cpuThreshold float64
	memThreshold float64
}

// New creates a reporter with the standard savings rule: VMs under 30% CPU
// and 30% memory contribute 30% of their cost as recoverable.
func New() *CostReporter {
	return NewWithSavingsRule(0.30, 30, 30)
}

// NewWithSavingsRule creates a reporter with a custom savings rule
func NewWithSavingsRule(rate, cpuThreshold, memThreshold float64) *CostReporter {
	return &CostReporter{
		savingsRate:  rate,
		cpuThreshold: cpuThreshold,
		memThreshold: memThreshold,
	}
}

// Build aggregates raw snapshots into a cost report. Duplicate IDs are
// dropped first-seen-wins, matching the classifier. Empty input yields the
// zero report, never an error.
func (r *CostReporter) Build(snapshots []models.VMSnapshot) *models.CostReport {
	seen := make(map[string]struct{}, len(snapshots))
	unique := make([]models.VMSnapshot, 0, len(snapshots))
	for _, snap := range snapshots {
		if _, dup := seen[snap.ID]; dup {
			continue
		}
		seen[snap.ID] = struct{}{}
		unique = append(unique, snap)
	}
	return r.build(unique)
}

// BuildClassified aggregates already-classified VMs. No dedup is applied;
// classification output is unique by construction.
func (r *CostReporter) BuildClassified(classified []models.ClassifiedVM) *models.CostReport {
	snapshots := make([]models.VMSnapshot, 0, len(classified))
	for _, vm := range classified {
		snapshots = append(snapshots, models.VMSnapshot{
			ID:          vm.VMID,
			Type:        vm.VMType,
			CPUUsage:    vm.CPU,
			MemoryUsage: vm.Memory,
			Cost:        vm.Cost,
		})
	}
	return r.build(snapshots)
}

func (r *CostReporter) build(snapshots []models.VMSnapshot) *models.CostReport {
	report := &models.CostReport{
		CostBreakdown:  make(map[string]float64),
		TopCostDrivers: []models.CostDriver{},
	}

	var savings float64
	var affected int

	for _, snap := range snapshots {
		report.TotalMonthlyCost += snap.Cost
		report.CostBreakdown[snap.Type] += snap.Cost
		report.TopCostDrivers = append(report.TopCostDrivers, models.CostDriver{
			VMID: snap.ID,
			Cost: snap.Cost,
		})

		if snap.CPUUsage < r.cpuThreshold && snap.MemoryUsage < r.memThreshold {
			savings += snap.Cost * r.savingsRate
			affected++
		}
	}

	// Stable sort keeps input order for equal costs
	sort.SliceStable(report.TopCostDrivers, func(i, j int) bool {
		return report.TopCostDrivers[i].Cost > report.TopCostDrivers[j].Cost
	})
	if len(report.TopCostDrivers) > maxCostDrivers {
		report.TopCostDrivers = report.TopCostDrivers[:maxCostDrivers]
	}

	if savings > 0 {
		percentage := 0.0
		if report.TotalMonthlyCost > 0 {
			percentage = savings / report.TotalMonthlyCost * 100
		}
		report.OptimizationSavings = &models.OptimizationSavings{
			Amount:      savings,
			Percentage:  percentage,
			VMsAffected: affected,
		}
	}

	return report
}

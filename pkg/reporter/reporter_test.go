package reporter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/opscart/vm-cost-optimizer/pkg/models"
)

func TestTotalMonthlyCost(t *testing.T) {
	r := New()

	report := r.Build([]models.VMSnapshot{
		{ID: "vm-1", Type: "t2.small", CPUUsage: 50, MemoryUsage: 50, Cost: 10},
		{ID: "vm-2", Type: "t2.medium", CPUUsage: 50, MemoryUsage: 50, Cost: 20},
		{ID: "vm-3", Type: "t2.small", CPUUsage: 50, MemoryUsage: 50, Cost: 0},
	})

	if report.TotalMonthlyCost != 30 {
		t.Errorf("expected total 30, got %.2f", report.TotalMonthlyCost)
	}

	if report.CostBreakdown["t2.small"] != 10 {
		t.Errorf("expected t2.small breakdown 10, got %.2f", report.CostBreakdown["t2.small"])
	}
	if report.CostBreakdown["t2.medium"] != 20 {
		t.Errorf("expected t2.medium breakdown 20, got %.2f", report.CostBreakdown["t2.medium"])
	}
}

func TestTopCostDrivers(t *testing.T) {
	r := New()

	snapshots := []models.VMSnapshot{
		{ID: "vm-1", Type: "a", CPUUsage: 50, MemoryUsage: 50, Cost: 5},
		{ID: "vm-2", Type: "a", CPUUsage: 50, MemoryUsage: 50, Cost: 50},
		{ID: "vm-3", Type: "a", CPUUsage: 50, MemoryUsage: 50, Cost: 20},
		{ID: "vm-4", Type: "a", CPUUsage: 50, MemoryUsage: 50, Cost: 20},
		{ID: "vm-5", Type: "a", CPUUsage: 50, MemoryUsage: 50, Cost: 1},
		{ID: "vm-6", Type: "a", CPUUsage: 50, MemoryUsage: 50, Cost: 8},
	}

	report := r.Build(snapshots)

	if len(report.TopCostDrivers) != 5 {
		t.Fatalf("expected 5 drivers, got %d", len(report.TopCostDrivers))
	}

	if report.TopCostDrivers[0].VMID != "vm-2" {
		t.Errorf("expected vm-2 as top driver, got %s", report.TopCostDrivers[0].VMID)
	}

	// Equal costs keep input order
	if report.TopCostDrivers[1].VMID != "vm-3" || report.TopCostDrivers[2].VMID != "vm-4" {
		t.Errorf("expected stable tie order vm-3, vm-4, got %s, %s",
			report.TopCostDrivers[1].VMID, report.TopCostDrivers[2].VMID)
	}

	for i := 1; i < len(report.TopCostDrivers); i++ {
		if report.TopCostDrivers[i].Cost > report.TopCostDrivers[i-1].Cost {
			t.Errorf("drivers not sorted descending at index %d", i)
		}
	}
}

func TestSavingsEstimate(t *testing.T) {
	r := New()

	report := r.Build([]models.VMSnapshot{
		{ID: "vm-1", Type: "a", CPUUsage: 10, MemoryUsage: 10, Cost: 100},
		{ID: "vm-2", Type: "a", CPUUsage: 50, MemoryUsage: 50, Cost: 100},
	})

	if report.OptimizationSavings == nil {
		t.Fatal("expected savings estimate")
	}

	if report.OptimizationSavings.Amount != 30 {
		t.Errorf("expected savings 30, got %.2f", report.OptimizationSavings.Amount)
	}
	if report.OptimizationSavings.Percentage != 15 {
		t.Errorf("expected 15%%, got %.1f", report.OptimizationSavings.Percentage)
	}
	if report.OptimizationSavings.VMsAffected != 1 {
		t.Errorf("expected 1 VM affected, got %d", report.OptimizationSavings.VMsAffected)
	}
}

func TestSavingsNilWhenNoneQualify(t *testing.T) {
	r := New()

	report := r.Build([]models.VMSnapshot{
		{ID: "vm-1", Type: "a", CPUUsage: 10, MemoryUsage: 50, Cost: 100},
		{ID: "vm-2", Type: "a", CPUUsage: 50, MemoryUsage: 10, Cost: 100},
	})

	if report.OptimizationSavings != nil {
		t.Errorf("expected nil savings when no VM is below both thresholds, got %+v",
			report.OptimizationSavings)
	}
}

func TestEmptyInput(t *testing.T) {
	r := New()

	report := r.Build(nil)

	if report.TotalMonthlyCost != 0 {
		t.Errorf("expected total 0, got %.2f", report.TotalMonthlyCost)
	}
	if len(report.CostBreakdown) != 0 {
		t.Errorf("expected empty breakdown, got %v", report.CostBreakdown)
	}
	if len(report.TopCostDrivers) != 0 {
		t.Errorf("expected no drivers, got %d", len(report.TopCostDrivers))
	}
	if report.OptimizationSavings != nil {
		t.Error("expected nil savings for empty input")
	}
}

func TestBuildDeduplicates(t *testing.T) {
	r := New()

	report := r.Build([]models.VMSnapshot{
		{ID: "vm-1", Type: "a", CPUUsage: 50, MemoryUsage: 50, Cost: 10},
		{ID: "vm-1", Type: "a", CPUUsage: 50, MemoryUsage: 50, Cost: 99},
	})

	if report.TotalMonthlyCost != 10 {
		t.Errorf("expected first-seen cost 10, got %.2f", report.TotalMonthlyCost)
	}
}

func TestBuildClassified(t *testing.T) {
	r := New()

	report := r.BuildClassified([]models.ClassifiedVM{
		{VMID: "vm-1", VMType: "t2.small", CPU: 10, Memory: 10, Cost: 50},
		{VMID: "vm-2", VMType: "t2.small", CPU: 50, Memory: 50, Cost: 25},
	})

	if report.TotalMonthlyCost != 75 {
		t.Errorf("expected total 75, got %.2f", report.TotalMonthlyCost)
	}
	if report.CostBreakdown["t2.small"] != 75 {
		t.Errorf("expected breakdown 75, got %.2f", report.CostBreakdown["t2.small"])
	}
	if report.OptimizationSavings == nil || report.OptimizationSavings.VMsAffected != 1 {
		t.Errorf("expected savings over 1 VM, got %+v", report.OptimizationSavings)
	}
}

func TestWriteCSV(t *testing.T) {
	r := New()
	classified := []models.ClassifiedVM{
		{VMID: "aws-vm-1", VMType: "t2.small", Provider: models.ProviderAWS,
			CPU: 10, Memory: 10, Cost: 50, Status: models.StatusUnderutilized,
			Recommendation: "aws-vm-1 is underutilized. Consider downsizing to t2.micro."},
	}

	report := &models.Report{
		Recommendations: classified,
		CostReport:      r.BuildClassified(classified),
	}

	var buf bytes.Buffer
	if err := WriteCSV(report, &buf); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "aws-vm-1") {
		t.Error("expected VM row in CSV output")
	}
	if !strings.Contains(out, "Total Monthly Cost") {
		t.Error("expected summary section in CSV output")
	}
}

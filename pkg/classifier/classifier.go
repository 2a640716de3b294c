package classifier

import (
	"fmt"

	"github.com/opscart/vm-cost-optimizer/pkg/config"
	"github.com/opscart/vm-cost-optimizer/pkg/models"
	"github.com/opscart/vm-cost-optimizer/pkg/topology"
)

// Classifier turns raw VM snapshots into utilization verdicts with sizing
// suggestions. It holds only configuration; every Classify call is a pure
// function of its input.
type Classifier struct {
	thresholds       config.Thresholds
	topology         *topology.Topology
	computeOptimized map[models.Provider]string
}

// New creates a classifier with the default topology and compute-optimized
// suggestion map
func New(thresholds config.Thresholds) *Classifier {
	return NewWithTopology(thresholds, topology.New(), defaultComputeOptimized())
}

// NewWithTopology creates a classifier over caller-supplied lookup tables,
// used to test against synthetic topologies.
func NewWithTopology(thresholds config.Thresholds, topo *topology.Topology, computeOptimized map[models.Provider]string) *Classifier {
	return &Classifier{
		thresholds:       thresholds,
		topology:         topo,
		computeOptimized: computeOptimized,
	}
}

func defaultComputeOptimized() map[models.Provider]string {
	return map[models.Provider]string{
		models.ProviderAWS:   "c5.large",
		models.ProviderAzure: "Standard_F2s_v2",
		models.ProviderGCP:   "c2-standard-4",
	}
}

// Classify deduplicates snapshots by ID (first occurrence wins, later
// duplicates are dropped) and classifies each retained VM. Input order is
// preserved. Unknown providers and instance types still get a valid status
// and a non-empty recommendation.
func (c *Classifier) Classify(snapshots []models.VMSnapshot) []models.ClassifiedVM {
	classified := make([]models.ClassifiedVM, 0, len(snapshots))
	seen := make(map[string]struct{}, len(snapshots))

	for _, snap := range snapshots {
		if _, dup := seen[snap.ID]; dup {
			duplicateSnapshots.Inc()
			continue
		}
		seen[snap.ID] = struct{}{}

		provider := models.ProviderFromID(snap.ID)
		status := c.status(snap.CPUUsage, snap.MemoryUsage)

		classified = append(classified, models.ClassifiedVM{
			VMID:           snap.ID,
			VMType:         snap.Type,
			Provider:       provider,
			CPU:            snap.CPUUsage,
			Memory:         snap.MemoryUsage,
			Cost:           snap.Cost,
			Status:         status,
			Recommendation: c.recommend(snap, provider, status),
		})
	}

	return classified
}

// status applies the threshold rules in precedence order; the first matching
// rule wins.
func (c *Classifier) status(cpu, mem float64) models.UtilizationStatus {
	t := c.thresholds
	switch {
	case cpu > t.CPUHigh && mem < t.MemoryLow:
		return models.StatusCPUBottlenecked
	case cpu < t.CPULow && mem < t.MemoryLow:
		return models.StatusUnderutilized
	case cpu > t.CPUHigh || mem > t.MemoryHigh:
		return models.StatusOverprovisioned
	default:
		return models.StatusOptimal
	}
}

func (c *Classifier) recommend(snap models.VMSnapshot, provider models.Provider, status models.UtilizationStatus) string {
	switch status {
	case models.StatusCPUBottlenecked:
		if suggestion, ok := c.computeOptimized[provider]; ok {
			return fmt.Sprintf("%s is CPU-bound. Consider a compute-optimized instance (e.g., %s).", snap.ID, suggestion)
		}
		return fmt.Sprintf("%s is CPU-bound. Consider a compute-optimized instance class.", snap.ID)

	case models.StatusUnderutilized:
		tiers, idx := c.topology.TierIndex(snap.Type, provider)
		if idx > 0 {
			return fmt.Sprintf("%s is underutilized. Consider downsizing to %s.", snap.ID, tiers[idx-1])
		}
		return fmt.Sprintf("%s is underutilized. Consider a smaller instance size.", snap.ID)

	case models.StatusOverprovisioned:
		tiers, idx := c.topology.TierIndex(snap.Type, provider)
		if idx >= 0 && idx == len(tiers)-1 {
			return fmt.Sprintf("%s is at the top of its family. Consider a custom or larger instance class.", snap.ID)
		}
		if idx >= 0 {
			return fmt.Sprintf("%s is overutilized. Consider upgrading to %s.", snap.ID, tiers[idx+1])
		}
		return fmt.Sprintf("%s is overutilized. Consider a larger instance size.", snap.ID)

	default:
		return "No action needed."
	}
}

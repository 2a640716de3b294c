package output

import (
	"context"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/opscart/vm-cost-optimizer/pkg/models"
)

// TableHandler renders reports as terminal tables
type TableHandler struct {
	w io.Writer
}

func NewTableHandler(w io.Writer) *TableHandler {
	return &TableHandler{w: w}
}

func (h *TableHandler) Format() string {
	return "table"
}

func (h *TableHandler) DisplayReport(ctx context.Context, report *models.Report) error {
	h.renderRecommendations(report.Recommendations)
	if report.CostReport != nil {
		h.renderCostReport(report.CostReport)
	}
	if report.Insights != nil {
		h.renderInsights(report.Insights)
	}
	return nil
}

func (h *TableHandler) renderRecommendations(recommendations []models.ClassifiedVM) {
	tw := table.Table{}
	tw.SetOutputMirror(h.w)
	tw.AppendHeader(table.Row{"VM ID", "Type", "CPU %", "Mem %", "Cost/mo", "Status", "Recommendation"})

	for _, vm := range recommendations {
		tw.AppendRow(table.Row{
			vm.VMID,
			vm.VMType,
			fmt.Sprintf("%.1f", vm.CPU),
			fmt.Sprintf("%.1f", vm.Memory),
			fmt.Sprintf("$%.2f", vm.Cost),
			colorStatus(vm.Status),
			vm.Recommendation,
		})
	}

	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	tw.Render()
}

func (h *TableHandler) renderCostReport(cost *models.CostReport) {
	fmt.Fprintf(h.w, "\nTotal monthly cost: $%.2f\n", cost.TotalMonthlyCost)

	if len(cost.TopCostDrivers) > 0 {
		tw := table.Table{}
		tw.SetOutputMirror(h.w)
		tw.AppendHeader(table.Row{"Top Cost Driver", "Cost/mo"})
		for _, driver := range cost.TopCostDrivers {
			tw.AppendRow(table.Row{driver.VMID, fmt.Sprintf("$%.2f", driver.Cost)})
		}
		tw.SetStyle(table.StyleRounded)
		tw.SetColumnConfigs([]table.ColumnConfig{
			{Number: 2, Align: text.AlignRight},
		})
		tw.Render()
	}

	if cost.OptimizationSavings != nil {
		fmt.Fprintf(h.w, "Potential savings: %s/mo (%.1f%% across %d VMs)\n",
			text.FgHiGreen.Sprintf("$%.2f", cost.OptimizationSavings.Amount),
			cost.OptimizationSavings.Percentage,
			cost.OptimizationSavings.VMsAffected)
	}
}

func (h *TableHandler) renderInsights(insights *models.InfrastructureInsights) {
	fmt.Fprintf(h.w, "\nInfrastructure health: %d/10\n", insights.HealthScore)
	if insights.Summary != "" {
		fmt.Fprintf(h.w, "%s\n", insights.Summary)
	}
	for _, opp := range insights.OptimizationOpportunities {
		fmt.Fprintf(h.w, "  - %s\n", opp)
	}
}

func (h *TableHandler) DisplayHistory(ctx context.Context, summaries []*models.ReportSummary) error {
	tw := table.Table{}
	tw.SetOutputMirror(h.w)
	tw.AppendHeader(table.Row{"Report ID", "Provider", "Generated", "VMs", "Total Cost/mo"})

	for _, summary := range summaries {
		tw.AppendRow(table.Row{
			summary.ID,
			string(summary.Provider),
			summary.GeneratedAt.Format("2006-01-02 15:04"),
			summary.VMCount,
			fmt.Sprintf("$%.2f", summary.TotalMonthlyCost),
		})
	}

	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	tw.Render()
	return nil
}

func colorStatus(status models.UtilizationStatus) string {
	switch status {
	case models.StatusOptimal:
		return text.FgGreen.Sprint(string(status))
	case models.StatusCPUBottlenecked:
		return text.FgHiRed.Sprint(string(status))
	default:
		return text.FgYellow.Sprint(string(status))
	}
}

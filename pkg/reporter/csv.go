package reporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/opscart/vm-cost-optimizer/pkg/models"
)

// WriteCSV writes classified VMs plus the cost summary as a CSV report
func WriteCSV(report *models.Report, writer io.Writer) error {
	w := csv.NewWriter(writer)
	defer w.Flush()

	header := []string{
		"VM ID",
		"Type",
		"Provider",
		"CPU (%)",
		"Memory (%)",
		"Monthly Cost ($)",
		"Status",
		"Recommendation",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, vm := range report.Recommendations {
		row := []string{
			vm.VMID,
			vm.VMType,
			string(vm.Provider),
			fmt.Sprintf("%.1f", vm.CPU),
			fmt.Sprintf("%.1f", vm.Memory),
			fmt.Sprintf("%.2f", vm.Cost),
			string(vm.Status),
			vm.Recommendation,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cost := report.CostReport
	if cost == nil {
		return nil
	}

	// Summary rows
	w.Write([]string{})
	w.Write([]string{"SUMMARY"})
	w.Write([]string{"Total Monthly Cost", fmt.Sprintf("$%.2f", cost.TotalMonthlyCost)})
	if cost.OptimizationSavings != nil {
		w.Write([]string{"Potential Savings", fmt.Sprintf("$%.2f (%.1f%%)",
			cost.OptimizationSavings.Amount, cost.OptimizationSavings.Percentage)})
		w.Write([]string{"VMs Affected", fmt.Sprintf("%d", cost.OptimizationSavings.VMsAffected)})
	}

	w.Write([]string{})
	w.Write([]string{"TOP COST DRIVERS"})
	w.Write([]string{"VM ID", "Monthly Cost"})
	for _, driver := range cost.TopCostDrivers {
		w.Write([]string{driver.VMID, fmt.Sprintf("$%.2f", driver.Cost)})
	}

	return nil
}

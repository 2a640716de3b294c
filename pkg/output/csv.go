package output

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/opscart/vm-cost-optimizer/pkg/models"
	"github.com/opscart/vm-cost-optimizer/pkg/reporter"
)

// CSVHandler writes reports in CSV form for spreadsheet import
type CSVHandler struct {
	w io.Writer
}

func NewCSVHandler(w io.Writer) *CSVHandler {
	return &CSVHandler{w: w}
}

func (h *CSVHandler) Format() string {
	return "csv"
}

func (h *CSVHandler) DisplayReport(ctx context.Context, report *models.Report) error {
	return reporter.WriteCSV(report, h.w)
}

func (h *CSVHandler) DisplayHistory(ctx context.Context, summaries []*models.ReportSummary) error {
	writer := csv.NewWriter(h.w)

	if err := writer.Write([]string{"report_id", "provider", "generated_at", "vm_count", "total_monthly_cost"}); err != nil {
		return err
	}

	for _, summary := range summaries {
		record := []string{
			summary.ID,
			string(summary.Provider),
			summary.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
			fmt.Sprintf("%d", summary.VMCount),
			fmt.Sprintf("%.2f", summary.TotalMonthlyCost),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

package output

import (
	"context"
	"encoding/json"
	"io"

	"github.com/opscart/vm-cost-optimizer/pkg/models"
)

// JSONHandler writes reports as indented JSON
type JSONHandler struct {
	w io.Writer
}

func NewJSONHandler(w io.Writer) *JSONHandler {
	return &JSONHandler{w: w}
}

func (h *JSONHandler) Format() string {
	return "json"
}

func (h *JSONHandler) DisplayReport(ctx context.Context, report *models.Report) error {
	return h.encode(report)
}

func (h *JSONHandler) DisplayHistory(ctx context.Context, summaries []*models.ReportSummary) error {
	return h.encode(summaries)
}

func (h *JSONHandler) encode(v any) error {
	enc := json.NewEncoder(h.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

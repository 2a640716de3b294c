package output

import (
	"context"
	"fmt"
	"io"

	"github.com/opscart/vm-cost-optimizer/pkg/models"
)

// Handler defines the interface for output formatting
type Handler interface {
	DisplayReport(ctx context.Context, report *models.Report) error
	DisplayHistory(ctx context.Context, summaries []*models.ReportSummary) error
	Format() string
}

// NewHandler creates the handler for the requested format
func NewHandler(format string, w io.Writer) (Handler, error) {
	switch format {
	case "table", "text", "":
		return NewTableHandler(w), nil
	case "json":
		return NewJSONHandler(w), nil
	case "csv":
		return NewCSVHandler(w), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}

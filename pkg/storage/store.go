package storage

import (
	"context"

	"github.com/opscart/vm-cost-optimizer/pkg/models"
)

// Store defines the interface for persistent report storage
type Store interface {
	SaveReport(ctx context.Context, report *models.Report) error
	GetReport(ctx context.Context, id string) (*models.Report, error)
	ListReports(ctx context.Context, provider string, limit int) ([]*models.ReportSummary, error)

	Ping(ctx context.Context) error
	Close() error
}

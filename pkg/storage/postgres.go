package storage

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/opscart/vm-cost-optimizer/pkg/models"
)

//go:embed migrations/*.sql
var postgresFS embed.FS

// PostgresStore implements Store interface using PostgreSQL
type PostgresStore struct {
	db  *sql.DB
	dsn string
}

// NewPostgresStore creates a new PostgreSQL store
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{
		db:  db,
		dsn: dsn,
	}

	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// migrate runs database migrations
func (s *PostgresStore) migrate() error {
	schema, err := postgresFS.ReadFile("migrations/001_postgres_schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}

	if _, err := s.db.Exec(string(schema)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// SaveReport persists a full report. The complete document is stored as
// JSONB; the columns used for listing are denormalized alongside it.
func (s *PostgresStore) SaveReport(ctx context.Context, report *models.Report) error {
	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	if report.GeneratedAt.IsZero() {
		report.GeneratedAt = time.Now()
	}

	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	var totalCost float64
	if report.CostReport != nil {
		totalCost = report.CostReport.TotalMonthlyCost
	}

	query := `
		INSERT INTO reports (
			id, provider, generated_at, total_monthly_cost, vm_count, body
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = s.db.ExecContext(ctx, query,
		report.ID, string(report.Provider), report.GeneratedAt,
		totalCost, len(report.Recommendations), body,
	)

	return err
}

// GetReport retrieves a report by ID
func (s *PostgresStore) GetReport(ctx context.Context, id string) (*models.Report, error) {
	query := `SELECT body FROM reports WHERE id = $1`

	var body []byte
	err := s.db.QueryRowContext(ctx, query, id).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("report not found: %s", id)
	}
	if err != nil {
		return nil, err
	}

	var report models.Report
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}

	return &report, nil
}

// ListReports retrieves recent report summaries, newest first. An empty
// provider lists across all providers.
func (s *PostgresStore) ListReports(ctx context.Context, provider string, limit int) ([]*models.ReportSummary, error) {
	query := `
		SELECT id, provider, generated_at, total_monthly_cost, vm_count
		FROM reports
		WHERE ($1 = '' OR provider = $1)
		ORDER BY generated_at DESC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, provider, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []*models.ReportSummary
	for rows.Next() {
		var summary models.ReportSummary
		var prov string

		err := rows.Scan(
			&summary.ID, &prov, &summary.GeneratedAt,
			&summary.TotalMonthlyCost, &summary.VMCount,
		)
		if err != nil {
			return nil, err
		}

		summary.Provider = models.Provider(prov)
		summaries = append(summaries, &summary)
	}

	return summaries, rows.Err()
}

// Ping checks database connectivity
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

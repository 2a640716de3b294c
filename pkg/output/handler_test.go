package output

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/opscart/vm-cost-optimizer/pkg/models"
)

func sampleReport() *models.Report {
	return &models.Report{
		Provider:    models.ProviderAWS,
		GeneratedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Recommendations: []models.ClassifiedVM{
			{
				VMID:           "i-abc123",
				VMType:         "t3.large",
				Provider:       models.ProviderAWS,
				CPU:            12.5,
				Memory:         22.0,
				Cost:           60.0,
				Status:         models.StatusUnderutilized,
				Recommendation: "i-abc123 is underutilized. Consider downsizing to t3.medium.",
			},
		},
		CostReport: &models.CostReport{
			TotalMonthlyCost: 60.0,
			CostBreakdown:    map[string]float64{"i-abc123": 60.0},
			TopCostDrivers:   []models.CostDriver{{VMID: "i-abc123", Cost: 60.0}},
			OptimizationSavings: &models.OptimizationSavings{
				Amount:      18.0,
				Percentage:  30.0,
				VMsAffected: 1,
			},
		},
	}
}

func TestNewHandlerFormats(t *testing.T) {
	var buf bytes.Buffer

	for _, format := range []string{"table", "text", "json", "csv", ""} {
		handler, err := NewHandler(format, &buf)
		if err != nil {
			t.Fatalf("format %q: unexpected error: %v", format, err)
		}
		if handler == nil {
			t.Fatalf("format %q: nil handler", format)
		}
	}

	if _, err := NewHandler("yaml", &buf); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestTableHandlerReport(t *testing.T) {
	var buf bytes.Buffer
	handler := NewTableHandler(&buf)

	if err := handler.DisplayReport(context.Background(), sampleReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"i-abc123", "t3.large", "$60.00", "Potential savings"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestJSONHandlerReport(t *testing.T) {
	var buf bytes.Buffer
	handler := NewJSONHandler(&buf)

	if err := handler.DisplayReport(context.Background(), sampleReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded models.Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Recommendations) != 1 || decoded.Recommendations[0].VMID != "i-abc123" {
		t.Errorf("round-trip lost recommendations: %+v", decoded.Recommendations)
	}
}

func TestCSVHandlerHistory(t *testing.T) {
	var buf bytes.Buffer
	handler := NewCSVHandler(&buf)

	summaries := []*models.ReportSummary{
		{
			ID:               "11111111-2222-3333-4444-555555555555",
			Provider:         models.ProviderAzure,
			GeneratedAt:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			TotalMonthlyCost: 140.0,
			VMCount:          3,
		},
	}

	if err := handler.DisplayHistory(context.Background(), summaries); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "report_id,provider") {
		t.Error("missing CSV header")
	}
	if !strings.Contains(out, "azure") || !strings.Contains(out, "140.00") {
		t.Errorf("missing row fields: %s", out)
	}
}

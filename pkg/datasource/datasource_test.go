package datasource

import (
	"context"
	"testing"

	"github.com/opscart/vm-cost-optimizer/pkg/config"
)

func TestExtractResourceGroup(t *testing.T) {
	id := "/subscriptions/sub-1/resourceGroups/prod-rg/providers/Microsoft.Compute/virtualMachines/web-01"
	if got := extractResourceGroup(id); got != "prod-rg" {
		t.Errorf("expected prod-rg, got %q", got)
	}

	if got := extractResourceGroup("not-a-resource-id"); got != "" {
		t.Errorf("expected empty group, got %q", got)
	}
}

func TestExtractResourceName(t *testing.T) {
	url := "https://compute.googleapis.com/compute/v1/projects/p/zones/us-central1-a/machineTypes/e2-medium"
	if got := extractResourceName(url); got != "e2-medium" {
		t.Errorf("expected e2-medium, got %q", got)
	}
}

func TestFallbackUsageRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		v := fallbackUsage()
		if v < 10 || v > 95 {
			t.Fatalf("usage %v outside [10, 95]", v)
		}
	}
}

func TestNewSourceUnknownProvider(t *testing.T) {
	_, err := NewSource(context.Background(), &config.Config{Provider: "digitalocean"})
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

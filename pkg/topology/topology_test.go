package topology

import (
	"testing"

	"github.com/opscart/vm-cost-optimizer/pkg/models"
)

func TestFamilyKeyOf(t *testing.T) {
	topo := New()

	tests := []struct {
		instanceType string
		provider     models.Provider
		want         string
	}{
		{"t2.micro", models.ProviderAWS, "t2"},
		{"m5.2xlarge", models.ProviderAWS, "m5"},
		{"e2-standard-4", models.ProviderGCP, "e2"},
		{"n1-standard-1", models.ProviderGCP, "n1"},
		{"Standard_B2s", models.ProviderAzure, "B"},
		{"Standard_DS1_v2", models.ProviderAzure, "DS"},
		{"weird", models.ProviderAWS, ""},
		{"B2s", models.ProviderAzure, ""},
		{"t2.micro", models.ProviderUnknown, ""},
	}

	for _, tt := range tests {
		got := topo.FamilyKeyOf(tt.instanceType, tt.provider)
		if got != tt.want {
			t.Errorf("FamilyKeyOf(%q, %s) = %q, want %q", tt.instanceType, tt.provider, got, tt.want)
		}
	}
}

func TestTiersFor(t *testing.T) {
	topo := New()

	tiers, ok := topo.TiersFor(models.ProviderAWS, "t2")
	if !ok {
		t.Fatal("expected t2 family for AWS")
	}
	if tiers[0] != "t2.micro" {
		t.Errorf("expected t2.micro as bottom tier, got %s", tiers[0])
	}

	if _, ok := topo.TiersFor(models.ProviderAWS, "z9"); ok {
		t.Error("expected miss for unknown family")
	}
	if _, ok := topo.TiersFor(models.ProviderUnknown, "t2"); ok {
		t.Error("expected miss for unknown provider")
	}
}

func TestTierIndex(t *testing.T) {
	topo := New()

	tiers, idx := topo.TierIndex("t2.medium", models.ProviderAWS)
	if idx != 2 {
		t.Errorf("expected index 2 for t2.medium, got %d", idx)
	}
	if len(tiers) != 5 {
		t.Errorf("expected 5 t2 tiers, got %d", len(tiers))
	}

	if _, idx := topo.TierIndex("t2.mega", models.ProviderAWS); idx != -1 {
		t.Errorf("expected -1 for unknown tier, got %d", idx)
	}
}

func TestSyntheticFamilies(t *testing.T) {
	topo := NewWithFamilies(map[models.Provider]map[string][]string{
		models.ProviderAWS: {
			"x1": {"x1.small", "x1.big"},
		},
	})

	tiers, idx := topo.TierIndex("x1.big", models.ProviderAWS)
	if idx != 1 || len(tiers) != 2 {
		t.Errorf("expected top tier of synthetic family, got idx=%d len=%d", idx, len(tiers))
	}
}

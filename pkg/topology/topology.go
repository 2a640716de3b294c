package topology

import (
	"strings"

	"github.com/opscart/vm-cost-optimizer/pkg/models"
)

// Topology is a static, provider-scoped catalog of instance families. Each
// family maps to its size tiers ordered ascending by capacity; tier position
// is the only capacity model consulted for up/down suggestions.
type Topology struct {
	families map[models.Provider]map[string][]string
}

// New returns a topology seeded with the built-in family catalog
func New() *Topology {
	return &Topology{families: defaultFamilies()}
}

// NewWithFamilies returns a topology over a caller-supplied catalog,
// used to test against synthetic families.
func NewWithFamilies(families map[models.Provider]map[string][]string) *Topology {
	return &Topology{families: families}
}

func defaultFamilies() map[models.Provider]map[string][]string {
	return map[models.Provider]map[string][]string{
		models.ProviderAWS: {
			"t2": {"t2.micro", "t2.small", "t2.medium", "t2.large", "t2.xlarge"},
			"t3": {"t3.micro", "t3.small", "t3.medium", "t3.large", "t3.xlarge"},
			"m5": {"m5.large", "m5.xlarge", "m5.2xlarge", "m5.4xlarge"},
			"c5": {"c5.large", "c5.xlarge", "c5.2xlarge", "c5.4xlarge"},
			"r5": {"r5.large", "r5.xlarge", "r5.2xlarge", "r5.4xlarge"},
		},
		models.ProviderAzure: {
			"B":  {"Standard_B1s", "Standard_B1ms", "Standard_B2s", "Standard_B2ms"},
			"DS": {"Standard_DS1_v2", "Standard_DS2_v2", "Standard_DS3_v2"},
			"F":  {"Standard_F2s_v2", "Standard_F4s_v2", "Standard_F8s_v2"},
		},
		models.ProviderGCP: {
			"e2": {"e2-micro", "e2-small", "e2-medium", "e2-standard-2", "e2-standard-4"},
			"n1": {"n1-standard-1", "n1-standard-2", "n1-standard-4", "n1-standard-8"},
			"n2": {"n2-standard-2", "n2-standard-4", "n2-standard-8"},
		},
	}
}

// TiersFor returns the ordered tiers of a family, or false when the provider
// or family is not in the catalog. Callers treat a miss as "no suggestion
// available", not as an error.
func (t *Topology) TiersFor(provider models.Provider, familyKey string) ([]string, bool) {
	byFamily, ok := t.families[provider]
	if !ok {
		return nil, false
	}
	tiers, ok := byFamily[familyKey]
	return tiers, ok
}

// FamilyKeyOf extracts the family prefix from an instance type name using the
// provider's naming convention: the token before the first "." for AWS-style
// names, before the first "-" for GCP-style names, and the series letters
// after "Standard_" for Azure-style names. Returns "" when the name does not
// follow the convention.
func (t *Topology) FamilyKeyOf(instanceType string, provider models.Provider) string {
	switch provider {
	case models.ProviderAWS:
		if idx := strings.Index(instanceType, "."); idx > 0 {
			return instanceType[:idx]
		}
	case models.ProviderGCP:
		if idx := strings.Index(instanceType, "-"); idx > 0 {
			return instanceType[:idx]
		}
	case models.ProviderAzure:
		rest, ok := strings.CutPrefix(instanceType, "Standard_")
		if !ok {
			return ""
		}
		end := 0
		for end < len(rest) && rest[end] >= 'A' && rest[end] <= 'Z' {
			end++
		}
		return rest[:end]
	}
	return ""
}

// TierIndex returns the position of an instance type within its family tiers,
// or -1 when the type is not part of any known family.
func (t *Topology) TierIndex(instanceType string, provider models.Provider) (tiers []string, idx int) {
	key := t.FamilyKeyOf(instanceType, provider)
	if key == "" {
		return nil, -1
	}
	tiers, ok := t.TiersFor(provider, key)
	if !ok {
		return nil, -1
	}
	for i, tier := range tiers {
		if tier == instanceType {
			return tiers, i
		}
	}
	return nil, -1
}

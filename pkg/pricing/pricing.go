package pricing

import "github.com/opscart/vm-cost-optimizer/pkg/models"

// Table is a static estimated-monthly-cost lookup per provider and instance
// type. Costs are estimates for sizing decisions, not billing figures.
type Table struct {
	prices       map[models.Provider]map[string]float64
	defaultPrice float64
}

// New returns the built-in price table
func New() *Table {
	return &Table{
		prices:       defaultPrices(),
		defaultPrice: 50.00,
	}
}

// NewWithPrices returns a table over caller-supplied prices, used to test
// against synthetic catalogs.
func NewWithPrices(prices map[models.Provider]map[string]float64, defaultPrice float64) *Table {
	return &Table{prices: prices, defaultPrice: defaultPrice}
}

func defaultPrices() map[models.Provider]map[string]float64 {
	return map[models.Provider]map[string]float64{
		models.ProviderAWS: {
			"t2.micro":  8.50,
			"t2.small":  17.00,
			"t2.medium": 34.00,
			"t2.large":  68.00,
			"t2.xlarge": 136.00,
			"t3.micro":  7.50,
			"t3.small":  15.00,
			"t3.medium": 30.00,
			"t3.large":  60.00,
			"m5.large":  70.00,
			"m5.xlarge": 140.00,
			"c5.large":  62.00,
			"r5.large":  91.00,
		},
		models.ProviderAzure: {
			"Standard_B1s":    7.50,
			"Standard_B1ms":   15.00,
			"Standard_B2s":    30.00,
			"Standard_B2ms":   60.00,
			"Standard_DS1_v2": 70.00,
			"Standard_DS2_v2": 140.00,
		},
		models.ProviderGCP: {
			"e2-micro":      6.50,
			"e2-small":      13.00,
			"e2-medium":     26.00,
			"e2-standard-2": 49.00,
			"e2-standard-4": 98.00,
			"n1-standard-1": 25.00,
			"n1-standard-2": 50.00,
			"n1-standard-4": 100.00,
		},
	}
}

// MonthlyCost returns the estimated monthly cost for an instance type. Types
// not in the table get the default price and exact=false; callers never see
// an error for an unknown type.
func (t *Table) MonthlyCost(provider models.Provider, instanceType string) (cost float64, exact bool) {
	if byType, ok := t.prices[provider]; ok {
		if price, ok := byType[instanceType]; ok {
			return price, true
		}
	}
	return t.defaultPrice, false
}

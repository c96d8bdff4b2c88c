package checkout

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ShippingFlatCents is the flat shipping charge. Shipping is never free,
// regardless of subtotal.
const ShippingFlatCents = 995

// usStateTaxRates maps two-letter US state codes to sales-tax estimates.
// States not listed fall back to defaultUSRate.
var usStateTaxRates = map[string]decimal.Decimal{
	"CA": decimal.NewFromFloat(0.0825),
	"NY": decimal.NewFromFloat(0.0887),
	"WA": decimal.NewFromFloat(0.092),
	"TX": decimal.NewFromFloat(0.0825),
	"FL": decimal.NewFromFloat(0.07),
	"IL": decimal.NewFromFloat(0.1025),
	"PA": decimal.NewFromFloat(0.06),
	"MA": decimal.NewFromFloat(0.0625),
}

var (
	defaultUSRate     = decimal.NewFromFloat(0.06)
	internationalRate = decimal.NewFromFloat(0.12)
)

// TaxEstimate is the resolved rate plus where it came from, so the caller
// can tell an exact state rate from a placeholder.
type TaxEstimate struct {
	Rate   decimal.Decimal `json:"rate"`
	Source string          `json:"source"`
	Note   string          `json:"note,omitempty"`
}

// Estimate sources.
const (
	TaxSourceState         = "state"
	TaxSourceDefaultState  = "default-state"
	TaxSourceNone          = "none"
	TaxSourceInternational = "international"
)

// isUS matches the country spellings the storefront accepts for a domestic
// destination.
func isUS(country string) bool {
	switch strings.ToLower(strings.TrimSpace(country)) {
	case "us", "usa", "united states":
		return true
	}
	return false
}

// EstimateTaxRate resolves a tax estimate from the destination country and
// region. Empty inputs produce a zero-rate estimate with a note rather than
// an error; the UI shows the note in place of a tax line.
func EstimateTaxRate(country, region string) TaxEstimate {
	country = strings.TrimSpace(country)
	region = strings.ToUpper(strings.TrimSpace(region))

	if country == "" {
		return TaxEstimate{Rate: decimal.Zero, Source: TaxSourceNone}
	}
	if !isUS(country) {
		return TaxEstimate{
			Rate:   internationalRate,
			Source: TaxSourceInternational,
			Note:   "Flat international estimate",
		}
	}
	if region == "" {
		return TaxEstimate{
			Rate:   decimal.Zero,
			Source: TaxSourceNone,
			Note:   "Enter state for estimate",
		}
	}
	if rate, ok := usStateTaxRates[region]; ok {
		return TaxEstimate{Rate: rate, Source: TaxSourceState}
	}
	return TaxEstimate{Rate: defaultUSRate, Source: TaxSourceDefaultState}
}

// EstimateShipping returns the shipping charge in cents for the subtotal.
// Anything in the cart ships at the flat rate; an empty cart ships nothing.
func EstimateShipping(subtotalCents int) int {
	if subtotalCents <= 0 {
		return 0
	}
	return ShippingFlatCents
}

// TaxCents applies the estimate to a subtotal, rounding half up to whole
// cents.
func (e TaxEstimate) TaxCents(subtotalCents int) int {
	return int(decimal.NewFromInt(int64(subtotalCents)).Mul(e.Rate).Round(0).IntPart())
}

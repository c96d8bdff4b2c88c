package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestEstimateTaxRateByState(t *testing.T) {
	cases := []struct {
		state string
		want  string
	}{
		{"CA", "0.0825"},
		{"NY", "0.0887"},
		{"WA", "0.092"},
		{"TX", "0.0825"},
		{"FL", "0.07"},
		{"IL", "0.1025"},
		{"PA", "0.06"},
		{"MA", "0.0625"},
	}

	for _, tc := range cases {
		est := EstimateTaxRate("US", tc.state)
		if est.Source != TaxSourceState {
			t.Errorf("%s: source = %s, want state", tc.state, est.Source)
		}
		if !est.Rate.Equal(decimal.RequireFromString(tc.want)) {
			t.Errorf("%s: rate = %s, want %s", tc.state, est.Rate, tc.want)
		}
	}
}

func TestEstimateTaxRateAcceptsCountrySpellings(t *testing.T) {
	for _, country := range []string{"US", "us", "USA", "usa", "United States", "UNITED STATES", " united states "} {
		est := EstimateTaxRate(country, "CA")
		if est.Source != TaxSourceState {
			t.Errorf("%q: source = %s, want state", country, est.Source)
		}
		if !est.Rate.Equal(decimal.RequireFromString("0.0825")) {
			t.Errorf("%q: rate = %s, want 0.0825", country, est.Rate)
		}

		est = EstimateTaxRate(country, "")
		if !est.Rate.IsZero() {
			t.Errorf("%q without state: rate = %s, want zero", country, est.Rate)
		}
		if est.Note != "Enter state for estimate" {
			t.Errorf("%q without state: note = %q", country, est.Note)
		}
	}
}

func TestEstimateTaxRateUnknownStateUsesDefault(t *testing.T) {
	est := EstimateTaxRate("us", "zz")
	if est.Source != TaxSourceDefaultState {
		t.Fatalf("source = %s, want default-state", est.Source)
	}
	if !est.Rate.Equal(decimal.RequireFromString("0.06")) {
		t.Fatalf("rate = %s, want 0.06", est.Rate)
	}
}

func TestEstimateTaxRateMissingRegion(t *testing.T) {
	est := EstimateTaxRate("US", "")
	if !est.Rate.IsZero() {
		t.Fatalf("rate = %s, want zero", est.Rate)
	}
	if est.Note != "Enter state for estimate" {
		t.Fatalf("note = %q", est.Note)
	}
}

func TestEstimateTaxRateMissingCountry(t *testing.T) {
	est := EstimateTaxRate("", "CA")
	if !est.Rate.IsZero() || est.Source != TaxSourceNone {
		t.Fatalf("unexpected estimate %+v", est)
	}
}

func TestEstimateTaxRateInternationalFlat(t *testing.T) {
	for _, country := range []string{"CA", "GB", "JP", "de"} {
		est := EstimateTaxRate(country, "anything")
		if est.Source != TaxSourceInternational {
			t.Fatalf("%s: source = %s, want international", country, est.Source)
		}
		if !est.Rate.Equal(decimal.RequireFromString("0.12")) {
			t.Fatalf("%s: rate = %s, want 0.12", country, est.Rate)
		}
		if est.Note == "" {
			t.Fatalf("%s: international estimate should carry a note", country)
		}
	}
}

func TestEstimateShippingFlatNeverFree(t *testing.T) {
	for _, subtotal := range []int{1, 500, 100_000, 10_000_000} {
		if got := EstimateShipping(subtotal); got != ShippingFlatCents {
			t.Fatalf("subtotal %d: shipping = %d, want %d", subtotal, got, ShippingFlatCents)
		}
	}
	if got := EstimateShipping(0); got != 0 {
		t.Fatalf("empty cart shipping = %d, want 0", got)
	}
}

func TestTaxCentsRoundsToWholeCents(t *testing.T) {
	est := EstimateTaxRate("US", "NY") // 0.0887
	// 1999 * 0.0887 = 177.3113 → 177
	if got := est.TaxCents(1999); got != 177 {
		t.Fatalf("tax = %d, want 177", got)
	}
	// 2500 * 0.0887 = 221.75 → 222
	if got := est.TaxCents(2500); got != 222 {
		t.Fatalf("tax = %d, want 222", got)
	}
}

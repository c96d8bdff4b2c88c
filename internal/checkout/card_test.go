package checkout

import (
	"testing"
	"time"

	"github.com/northlight-prints/storefront-backend/pkg/enums"
)

var testNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func validCard() CardDetails {
	return CardDetails{
		Number: "4242 4242 4242 4242",
		Expiry: "12/27",
		CVC:    "123",
		Name:   "Avery Stone",
	}
}

func TestValidateCardAcceptsWellFormedInput(t *testing.T) {
	if fieldErrors := ValidateCard(validCard(), testNow); len(fieldErrors) != 0 {
		t.Fatalf("unexpected errors: %v", fieldErrors)
	}
}

func TestValidateCardRejectsLuhnFailure(t *testing.T) {
	card := validCard()
	card.Number = "4242424242424241"
	if _, ok := ValidateCard(card, testNow)["number"]; !ok {
		t.Fatal("luhn failure should be rejected")
	}
}

func TestValidateCardExpiry(t *testing.T) {
	cases := []struct {
		expiry string
		ok     bool
	}{
		{"03/26", true},  // current month
		{"04/26", true},
		{"12/30", true},
		{"02/26", false}, // last month
		{"12/25", false},
		{"13/27", false},
		{"00/27", false},
		{"1227", false},
		{"12/2027", false},
		{"", false},
	}
	for _, tc := range cases {
		card := validCard()
		card.Expiry = tc.expiry
		_, failed := ValidateCard(card, testNow)["expiry"]
		if failed == tc.ok {
			t.Errorf("expiry %q: ok = %v, want %v", tc.expiry, !failed, tc.ok)
		}
	}
}

func TestValidateCardCVC(t *testing.T) {
	for _, bad := range []string{"", "12", "12345", "12a"} {
		card := validCard()
		card.CVC = bad
		if _, ok := ValidateCard(card, testNow)["cvc"]; !ok {
			t.Errorf("cvc %q should be rejected", bad)
		}
	}
	card := validCard()
	card.CVC = "1234" // amex length
	if _, failed := ValidateCard(card, testNow)["cvc"]; failed {
		t.Fatal("4-digit cvc should be accepted")
	}
}

func TestDetectBrand(t *testing.T) {
	cases := []struct {
		number string
		want   enums.CardBrand
	}{
		{"4242424242424242", enums.CardBrandVisa},
		{"5555555555554444", enums.CardBrandMastercard},
		{"2223003122003222", enums.CardBrandMastercard},
		{"378282246310005", enums.CardBrandAmex},
		{"344444444444444", enums.CardBrandAmex},
		{"6011111111111117", enums.CardBrandDiscover},
		{"6555555555554444", enums.CardBrandDiscover},
		{"9999999999999999", enums.CardBrandUnknown},
	}
	for _, tc := range cases {
		if got := DetectBrand(tc.number); got != tc.want {
			t.Errorf("%s: brand = %s, want %s", tc.number, got, tc.want)
		}
	}
}

func TestLast4StripsFormatting(t *testing.T) {
	if got := Last4("4242 4242 4242 4242"); got != "4242" {
		t.Fatalf("last4 = %q", got)
	}
	if got := Last4("42"); got != "42" {
		t.Fatalf("short input last4 = %q", got)
	}
}

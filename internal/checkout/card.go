package checkout

import (
	"strconv"
	"strings"
	"time"

	"github.com/northlight-prints/storefront-backend/pkg/enums"
)

// CardDetails is the raw card input accepted by the simulated checkout
// variant. It is validated, reduced to brand+last4, and discarded; the full
// number is never stored or logged.
type CardDetails struct {
	Number string `json:"number"`
	Expiry string `json:"expiry"` // MM/YY
	CVC    string `json:"cvc"`
	Name   string `json:"name"`
}

// ValidateCard checks the card input the same way the payment form does.
// Returns a field→message map; empty means the card is acceptable.
func ValidateCard(card CardDetails, now time.Time) map[string]string {
	fieldErrors := map[string]string{}

	digits := digitsOnly(card.Number)
	if len(digits) < 13 || len(digits) > 19 || !luhnValid(digits) {
		fieldErrors["number"] = "Enter a valid card number"
	}
	if !expiryValid(card.Expiry, now) {
		fieldErrors["expiry"] = "Enter a valid expiry (MM/YY)"
	}
	if cvc := strings.TrimSpace(card.CVC); len(cvc) < 3 || len(cvc) > 4 || digitsOnly(cvc) != cvc {
		fieldErrors["cvc"] = "Enter a valid security code"
	}
	if strings.TrimSpace(card.Name) == "" {
		fieldErrors["name"] = "Name on card is required"
	}

	return fieldErrors
}

// DetectBrand classifies the card number by its leading digits.
func DetectBrand(number string) enums.CardBrand {
	digits := digitsOnly(number)
	switch {
	case strings.HasPrefix(digits, "4"):
		return enums.CardBrandVisa
	case hasPrefixInRange(digits, 51, 55) || hasPrefixInRange(digits, 2221, 2720):
		return enums.CardBrandMastercard
	case strings.HasPrefix(digits, "34") || strings.HasPrefix(digits, "37"):
		return enums.CardBrandAmex
	case strings.HasPrefix(digits, "6011") || strings.HasPrefix(digits, "65"):
		return enums.CardBrandDiscover
	default:
		return enums.CardBrandUnknown
	}
}

// Last4 returns the trailing four digits for receipts and the order record.
func Last4(number string) string {
	digits := digitsOnly(number)
	if len(digits) < 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

func digitsOnly(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func luhnValid(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// expiryValid accepts MM/YY for the current month or later.
func expiryValid(expiry string, now time.Time) bool {
	parts := strings.Split(strings.TrimSpace(expiry), "/")
	if len(parts) != 2 {
		return false
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || month < 1 || month > 12 {
		return false
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || len(strings.TrimSpace(parts[1])) != 2 {
		return false
	}
	year += 2000

	if year > now.Year() {
		return true
	}
	return year == now.Year() && month >= int(now.Month())
}

func hasPrefixInRange(digits string, lo, hi int) bool {
	width := len(strconv.Itoa(lo))
	if len(digits) < width {
		return false
	}
	prefix, err := strconv.Atoi(digits[:width])
	if err != nil {
		return false
	}
	return prefix >= lo && prefix <= hi
}

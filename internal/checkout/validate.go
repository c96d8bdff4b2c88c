package checkout

import (
	"regexp"
	"strings"

	"github.com/northlight-prints/storefront-backend/pkg/errors"
	"github.com/northlight-prints/storefront-backend/pkg/types"
)

// emailPattern is deliberately loose: one @, no whitespace, a dot in the
// domain. Deliverability is the mail provider's problem.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidEmail reports whether the address passes the shape check.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// ValidateShipping checks the contact block collected on the shipping step.
// Returns a field→message map; an empty map means the block is complete.
func ValidateShipping(addr types.Address) map[string]string {
	fieldErrors := map[string]string{}

	if strings.TrimSpace(addr.Name) == "" {
		fieldErrors["name"] = "Name is required"
	}
	if strings.TrimSpace(addr.Email) == "" {
		fieldErrors["email"] = "Email is required"
	} else if !ValidEmail(addr.Email) {
		fieldErrors["email"] = "Enter a valid email address"
	}
	if strings.TrimSpace(addr.Address1) == "" {
		fieldErrors["address1"] = "Street address is required"
	}
	if strings.TrimSpace(addr.City) == "" {
		fieldErrors["city"] = "City is required"
	}
	if strings.TrimSpace(addr.Postal) == "" {
		fieldErrors["postal"] = "Postal code is required"
	}
	if strings.TrimSpace(addr.Country) == "" {
		fieldErrors["country"] = "Country is required"
	} else if isUS(addr.Country) && strings.TrimSpace(addr.Region) == "" {
		fieldErrors["region"] = "State is required for US addresses"
	}

	return fieldErrors
}

// ValidateBilling checks a separate billing address. Same shape as the
// shipping check minus the contact email, keyed with a billing prefix so the
// two blocks never collide in one error map.
func ValidateBilling(addr types.Address) map[string]string {
	fieldErrors := map[string]string{}

	if strings.TrimSpace(addr.Name) == "" {
		fieldErrors["billing.name"] = "Name is required"
	}
	if strings.TrimSpace(addr.Address1) == "" {
		fieldErrors["billing.address1"] = "Street address is required"
	}
	if strings.TrimSpace(addr.City) == "" {
		fieldErrors["billing.city"] = "City is required"
	}
	if strings.TrimSpace(addr.Postal) == "" {
		fieldErrors["billing.postal"] = "Postal code is required"
	}
	if strings.TrimSpace(addr.Country) == "" {
		fieldErrors["billing.country"] = "Country is required"
	} else if isUS(addr.Country) && strings.TrimSpace(addr.Region) == "" {
		fieldErrors["billing.region"] = "State is required for US addresses"
	}

	return fieldErrors
}

// shippingError wraps a non-empty field-error map into the typed validation
// error the API layer renders.
func shippingError(fieldErrors map[string]string) error {
	if len(fieldErrors) == 0 {
		return nil
	}
	return errors.New(errors.CodeValidation, "shipping details are incomplete").
		WithDetails(fieldErrors)
}

package enums

// CardBrand labels the network of a card captured by the simulated payment
// path. Only the brands the storefront can recognize from a PAN prefix.
type CardBrand string

const (
	CardBrandVisa       CardBrand = "visa"
	CardBrandMastercard CardBrand = "mastercard"
	CardBrandAmex       CardBrand = "amex"
	CardBrandDiscover   CardBrand = "discover"
	CardBrandUnknown    CardBrand = "unknown"
)

// String implements fmt.Stringer.
func (c CardBrand) String() string {
	return string(c)
}

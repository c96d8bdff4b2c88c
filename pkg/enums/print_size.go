package enums

import (
	"fmt"
	"strings"
)

// PrintSize is one of the fixed print dimensions sold by the shop. Sizes are
// stored portrait-form; landscape display flipping happens at render time.
type PrintSize string

const (
	PrintSize4x6   PrintSize = "4x6"
	PrintSize5x7   PrintSize = "5x7"
	PrintSize8x10  PrintSize = "8x10"
	PrintSize11x14 PrintSize = "11x14"
	PrintSize12x16 PrintSize = "12x16"
	PrintSize16x20 PrintSize = "16x20"
	PrintSize20x30 PrintSize = "20x30"
)

// PrintSizeDefault is the size assumed when a line item carries an
// unrecognized or empty size label.
const PrintSizeDefault = PrintSize4x6

var validPrintSizes = []PrintSize{
	PrintSize4x6,
	PrintSize5x7,
	PrintSize8x10,
	PrintSize11x14,
	PrintSize12x16,
	PrintSize16x20,
	PrintSize20x30,
}

// AllPrintSizes returns the canonical size enumeration in display order.
func AllPrintSizes() []PrintSize {
	out := make([]PrintSize, len(validPrintSizes))
	copy(out, validPrintSizes)
	return out
}

// String implements fmt.Stringer.
func (p PrintSize) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PrintSize.
func (p PrintSize) IsValid() bool {
	for _, candidate := range validPrintSizes {
		if candidate == p {
			return true
		}
	}
	return false
}

// NormalizePrintSize lowercases raw input and corrects unknown labels to the
// default size. It never fails: unrecognized sizes are a data repair, not an
// error.
func NormalizePrintSize(value string) PrintSize {
	size := PrintSize(strings.ToLower(strings.TrimSpace(value)))
	if size.IsValid() {
		return size
	}
	return PrintSizeDefault
}

// ParsePrintSize converts raw input into a PrintSize.
func ParsePrintSize(value string) (PrintSize, error) {
	size := PrintSize(strings.ToLower(strings.TrimSpace(value)))
	for _, candidate := range validPrintSizes {
		if candidate == size {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid print size %q", value)
}

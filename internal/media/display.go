package media

import (
	"strconv"
	"strings"
)

// landscapeProducts render their 2x3-canonical sizes flipped (6x4 instead of
// 4x6). Sizes stay portrait-form in storage; only the label flips.
var landscapeProducts = map[string]bool{
	"print-npl-portfolio-prints-1": true, // Omniprominence
}

// IsLandscapeProduct reports whether the product displays landscape.
func IsLandscapeProduct(productID string) bool {
	return landscapeProducts[productID]
}

// DisplaySize returns the size label to render for a product: landscape
// products get their 2:3 sizes flipped, everything else passes through.
// Only the 2:3 family flips; 4:5 and square sizes read the same either way.
func DisplaySize(productID, size string) string {
	if size == "" || !landscapeProducts[productID] {
		return size
	}
	a, b, ok := parseSize(size)
	if !ok || !IsTwoByThree(float64(a)/float64(b)) {
		return size
	}
	if a > b {
		return size // already landscape
	}
	return strconv.Itoa(b) + "x" + strconv.Itoa(a)
}

func parseSize(size string) (width, height int, ok bool) {
	parts := strings.SplitN(size, "x", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	a, errA := strconv.Atoi(parts[0])
	b, errB := strconv.Atoi(parts[1])
	if errA != nil || errB != nil || a <= 0 || b <= 0 {
		return 0, 0, false
	}
	return a, b, true
}

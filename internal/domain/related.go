package domain

import (
	"math"
	"strings"
)

// RelatedLimit is the number of related products shown alongside a product.
const RelatedLimit = 4

// RelatedResult is a resolved related products list for one anchor product,
// tagged with the relaxation tier that produced it.
type RelatedResult struct {
	Tier  string           `json:"tier"`
	Items []RelatedProduct `json:"items"`
}

// PriceBand returns the inclusive price window used to find products priced
// near the given price. The window spans 85% to 115% of the price, with the
// lower bound clamped at zero. ok is false when the price is not positive,
// in which case callers must omit the price filter entirely.
func PriceBand(price int64) (minPrice, maxPrice int64, ok bool) {
	if price <= 0 {
		return 0, 0, false
	}
	minPrice = int64(math.Floor(float64(price) * 0.85))
	if minPrice < 0 {
		minPrice = 0
	}
	maxPrice = int64(math.Ceil(float64(price) * 1.15))
	return minPrice, maxPrice, true
}

// storageTokenOrder lists the recognized storage technologies in the order
// they appear in a normalized filter value.
var storageTokenOrder = []string{"SSD", "HDD", "NVMe"}

// StorageTokens extracts the storage technologies mentioned in a free-form
// storage label and joins them with commas, e.g. "512GB NVMe SSD" yields
// "SSD,NVMe". The empty string means no recognized technology was found.
func StorageTokens(storage string) string {
	lower := strings.ToLower(storage)
	tokens := make([]string, 0, len(storageTokenOrder))
	for _, tok := range storageTokenOrder {
		if strings.Contains(lower, strings.ToLower(tok)) {
			tokens = append(tokens, tok)
		}
	}
	return strings.Join(tokens, ",")
}

package catalog

import "beadvault/internal/models"

// DefaultThreshold is the low-stock cutoff applied when an item carries no
// positive threshold of its own.
const DefaultThreshold = 200

// EffectiveThreshold returns the item's own threshold when positive, otherwise
// DefaultThreshold.
func EffectiveThreshold(item models.Item) int {
	if item.Threshold > 0 {
		return item.Threshold
	}
	return DefaultThreshold
}

// IsLowStock reports whether the item's count has dropped below its effective
// threshold. A count equal to the threshold is not low stock.
func IsLowStock(item models.Item) bool {
	return item.Count < EffectiveThreshold(item)
}

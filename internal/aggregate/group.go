package aggregate

import (
	"sort"
	"strings"

	"github.com/baihuihang/delivery-statements/internal/models"
)

// groupBy buckets line items by an arbitrary comparable key.
func groupBy[K comparable](items []models.LineItem, key func(models.LineItem) K) map[K][]models.LineItem {
	groups := make(map[K][]models.LineItem)
	for _, item := range items {
		k := key(item)
		groups[k] = append(groups[k], item)
	}
	return groups
}

// sumQuantityAmount folds a group into its summed quantity and amount.
func sumQuantityAmount(group []models.LineItem) (quantity, amount float64) {
	for _, item := range group {
		quantity += item.Quantity
		amount += item.Amount
	}
	return quantity, amount
}

// joinDistinct deduplicates the non-empty values, sorts them lexically
// and joins them into one display string.
func joinDistinct(values []string) string {
	seen := make(map[string]struct{}, len(values))
	var distinct []string
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		distinct = append(distinct, v)
	}
	sort.Strings(distinct)
	return strings.Join(distinct, ", ")
}

// countDistinct counts distinct non-empty values.
func countDistinct(values []string) int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v != "" {
			seen[v] = struct{}{}
		}
	}
	return len(seen)
}

package catalog

import (
	"sort"
	"strings"

	"beadvault/internal/models"
)

// Sort modes accepted by Query. Anything else falls back to SortNewestFirst.
const (
	SortCountAscending  = "count-ascending"
	SortCountDescending = "count-descending"
	SortNewestFirst     = "newest-first"
	SortOldestFirst     = "oldest-first"
)

// Query produces the presentation view of the catalog. The pipeline order is
// fixed: substring search first, then category filter, then sort. The input
// slice is never mutated; ties keep their original relative order.
func Query(items []models.Item, search, category, sortMode string) []models.Item {
	view := make([]models.Item, 0, len(items))

	search = strings.ToLower(strings.TrimSpace(search))
	for _, it := range items {
		if search != "" && !strings.Contains(strings.ToLower(it.Name), search) {
			continue
		}
		if category != "" && category != CategoryAll && Classify(it.Name) != category {
			continue
		}
		view = append(view, it)
	}

	switch sortMode {
	case SortCountAscending:
		sort.SliceStable(view, func(i, j int) bool { return view[i].Count < view[j].Count })
	case SortCountDescending:
		sort.SliceStable(view, func(i, j int) bool { return view[i].Count > view[j].Count })
	case SortOldestFirst:
		sort.SliceStable(view, func(i, j int) bool { return view[i].ID < view[j].ID })
	default: // SortNewestFirst
		sort.SliceStable(view, func(i, j int) bool { return view[i].ID > view[j].ID })
	}

	return view
}

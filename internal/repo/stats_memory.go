package repo

import "beadvault/internal/catalog"

// InMemoryStatsRepository derives the summary from the item repository.
type InMemoryStatsRepository struct {
	items ItemRepository
}

func NewInMemoryStatsRepository(items ItemRepository) *InMemoryStatsRepository {
	return &InMemoryStatsRepository{items: items}
}

// GetStats implements StatsRepository.
func (r *InMemoryStatsRepository) GetStats() (Stats, error) {
	items, err := r.items.GetAll()
	if err != nil {
		return Stats{}, err
	}

	var s Stats
	s.TotalItems = len(items)
	for _, it := range items {
		s.TotalBeads += it.Count
		if catalog.IsLowStock(it) {
			s.LowStockCount++
		}
	}
	return s, nil
}

package repo

import (
	"sync"
	"time"

	"beadvault/internal/catalog"
	"beadvault/internal/models"
)

// InMemoryItemRepository is an in-memory implementation of ItemRepository,
// used by tests and by the handler test suite. The name-key index is kept in
// lockstep with the item slice under one mutex.
type InMemoryItemRepository struct {
	mu     sync.Mutex
	items  []models.Item
	byKey  map[string]int // canonical name key -> item id
	nextID int
	ledger *InMemoryLedgerRepository
}

// NewInMemoryItemRepository creates a new instance of InMemoryItemRepository.
// Ledger entries produced by mutations land in the given ledger repository.
func NewInMemoryItemRepository(ledger *InMemoryLedgerRepository) *InMemoryItemRepository {
	return &InMemoryItemRepository{
		byKey:  map[string]int{},
		nextID: 1,
		ledger: ledger,
	}
}

// Create adds a new item and its ledger entry.
func (r *InMemoryItemRepository) Create(item models.Item, entry models.LedgerEntry) (models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := catalog.Canonicalize(item.Name)
	if _, exists := r.byKey[key]; exists {
		return models.Item{}, ErrDuplicateItem
	}

	item.ID = r.nextID
	r.nextID++
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	r.items = append(r.items, item)
	r.byKey[key] = item.ID

	entry.ItemName = item.Name
	_, _ = r.ledger.Append(entry)
	return item, nil
}

// CreateBatch inserts items whose name key is free, skips the rest, and writes
// one ledger entry covering the whole batch when anything was inserted.
func (r *InMemoryItemRepository) CreateBatch(items []models.Item, entry models.LedgerEntry) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inserted := 0
	now := time.Now().UTC()
	for _, item := range items {
		key := catalog.Canonicalize(item.Name)
		if _, exists := r.byKey[key]; exists {
			continue
		}
		item.ID = r.nextID
		r.nextID++
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}
		r.items = append(r.items, item)
		r.byKey[key] = item.ID
		inserted++
	}

	if inserted > 0 {
		entry.Amount = inserted
		_, _ = r.ledger.Append(entry)
	}
	return inserted, nil
}

// AddCount applies a signed delta to the item's count and records the entry.
func (r *InMemoryItemRepository) AddCount(id, delta int, entry models.LedgerEntry) (models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.items {
		if it.ID == id {
			r.items[i].Count += delta
			entry.ItemName = it.Name
			_, _ = r.ledger.Append(entry)
			return r.items[i], nil
		}
	}
	return models.Item{}, ErrItemNotFound
}

// Delete removes the item and records the entry with the name captured before
// removal.
func (r *InMemoryItemRepository) Delete(id int, entry models.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.items {
		if it.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			delete(r.byKey, catalog.Canonicalize(it.Name))
			entry.ItemName = it.Name
			_, _ = r.ledger.Append(entry)
			return nil
		}
	}
	return ErrItemNotFound
}

// Recolor updates only the color. No ledger entry.
func (r *InMemoryItemRepository) Recolor(id int, color string) (models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.items {
		if it.ID == id {
			r.items[i].Color = color
			return r.items[i], nil
		}
	}
	return models.Item{}, ErrItemNotFound
}

// GetAll retrieves a snapshot of all items in creation order.
func (r *InMemoryItemRepository) GetAll() ([]models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Item{}, r.items...), nil
}

// GetByID retrieves an item by its ID.
func (r *InMemoryItemRepository) GetByID(id int) (models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, it := range r.items {
		if it.ID == id {
			return it, nil
		}
	}
	return models.Item{}, ErrItemNotFound
}

// GetByKey retrieves an item by its canonical name key.
func (r *InMemoryItemRepository) GetByKey(key string) (models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byKey[key]
	if !ok {
		return models.Item{}, ErrItemNotFound
	}
	for _, it := range r.items {
		if it.ID == id {
			return it, nil
		}
	}
	return models.Item{}, ErrItemNotFound
}

// Clear empties the repository. Test helper.
func (r *InMemoryItemRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
	r.byKey = map[string]int{}
}

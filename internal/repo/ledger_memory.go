package repo

import (
	"sync"
	"time"

	"beadvault/internal/models"
)

// InMemoryLedgerRepository is an in-memory implementation of LedgerRepository.
type InMemoryLedgerRepository struct {
	mu      sync.Mutex
	entries []models.LedgerEntry
	nextID  int
}

// NewInMemoryLedgerRepository creates a new instance of InMemoryLedgerRepository.
func NewInMemoryLedgerRepository() *InMemoryLedgerRepository {
	return &InMemoryLedgerRepository{nextID: 1}
}

// Append persists one entry with a fresh id and timestamp.
func (r *InMemoryLedgerRepository) Append(entry models.LedgerEntry) (models.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry.ID = r.nextID
	r.nextID++
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	r.entries = append(r.entries, entry)
	return entry, nil
}

// Recent returns up to n entries, newest first.
func (r *InMemoryLedgerRepository) Recent(n int) ([]models.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n < 0 {
		n = 0
	}
	recent := make([]models.LedgerEntry, 0, n)
	for i := len(r.entries) - 1; i >= 0 && len(recent) < n; i-- {
		recent = append(recent, r.entries[i])
	}
	return recent, nil
}

// All returns every entry in insertion order. Test helper.
func (r *InMemoryLedgerRepository) All() []models.LedgerEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.LedgerEntry{}, r.entries...)
}

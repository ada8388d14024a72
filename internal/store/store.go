// Package store owns all writes to the bead catalog. Every stock-affecting
// mutation funnels through here and lands together with its audit record.
package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"beadvault/internal/catalog"
	"beadvault/internal/models"
	"beadvault/internal/repo"
)

// ValidationError rejects malformed input before any mutation happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// recentFeedCap bounds the activity feed, matching the original 20-row query.
const recentFeedCap = 20

type Store struct {
	items  repo.ItemRepository
	ledger repo.LedgerRepository
	log    zerolog.Logger
}

func New(items repo.ItemRepository, ledger repo.LedgerRepository, logger zerolog.Logger) *Store {
	return &Store{items: items, ledger: ledger, log: logger}
}

// CreateOrMerge stocks beads in under a name. If the canonical key already
// exists the count is added to that line (color and threshold stay untouched)
// and the returned bool is true; otherwise a fresh line is created. The ledger
// gets a 补货入库 entry for a merge and a 新购入库 entry for a new line.
func (s *Store) CreateOrMerge(name, color string, count, threshold int) (models.Item, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Item{}, false, ValidationError{Field: "name", Reason: "name is required"}
	}
	if count < 0 {
		return models.Item{}, false, ValidationError{Field: "count", Reason: "count cannot be negative"}
	}

	key := catalog.Canonicalize(name)
	existing, err := s.items.GetByKey(key)
	if err == nil {
		return s.restock(existing, count)
	}
	if !errors.Is(err, repo.ErrItemNotFound) {
		return models.Item{}, false, err
	}

	if threshold <= 0 {
		threshold = catalog.DefaultThreshold
	}
	item := models.Item{Name: name, Color: color, Count: count, Threshold: threshold}
	created, err := s.items.Create(item, models.LedgerEntry{Action: models.ActionNewStock, Amount: count})
	if errors.Is(err, repo.ErrDuplicateItem) {
		// Lost a create race on the same key; fold into the line that won.
		existing, lookupErr := s.items.GetByKey(key)
		if lookupErr != nil {
			return models.Item{}, false, err
		}
		return s.restock(existing, count)
	}
	if err != nil {
		return models.Item{}, false, err
	}

	s.log.Info().Str("item", created.Name).Int("count", created.Count).Msg("new item stocked")
	return created, false, nil
}

func (s *Store) restock(existing models.Item, extra int) (models.Item, bool, error) {
	entry := models.LedgerEntry{Action: models.ActionRestock, Amount: extra}
	item, err := s.items.AddCount(existing.ID, extra, entry)
	if err != nil {
		return models.Item{}, false, err
	}
	s.log.Info().Str("item", item.Name).Int("added", extra).Int("count", item.Count).Msg("restocked")
	return item, true, nil
}

// Consume registers usage of beads. The count may go below zero: an oversized
// consumption is a backorder, not an error.
func (s *Store) Consume(id, amount int) (models.Item, error) {
	if amount <= 0 {
		return models.Item{}, ValidationError{Field: "amount", Reason: "amount must be a positive integer"}
	}

	entry := models.LedgerEntry{Action: models.ActionConsume, Amount: amount}
	item, err := s.items.AddCount(id, -amount, entry)
	if err != nil {
		return models.Item{}, err
	}

	if catalog.IsLowStock(item) {
		s.log.Warn().
			Str("item", item.Name).
			Int("count", item.Count).
			Int("threshold", catalog.EffectiveThreshold(item)).
			Msg("item below threshold")
	}
	return item, nil
}

// Delete removes a catalog line for good. Its ledger history stays.
func (s *Store) Delete(id int) error {
	entry := models.LedgerEntry{Action: models.ActionDelete, Amount: 0}
	if err := s.items.Delete(id, entry); err != nil {
		return err
	}
	s.log.Info().Int("id", id).Msg("item deleted")
	return nil
}

// Recolor updates the color token. Not audit-worthy, so no ledger entry.
func (s *Store) Recolor(id int, color string) (models.Item, error) {
	return s.items.Recolor(id, color)
}

// Items returns a snapshot of the catalog. Presentation ordering is
// catalog.Query's job.
func (s *Store) Items() ([]models.Item, error) {
	return s.items.GetAll()
}

// Recent returns the activity feed, newest first, capped at 20 entries.
func (s *Store) Recent(n int) ([]models.LedgerEntry, error) {
	if n <= 0 || n > recentFeedCap {
		n = recentFeedCap
	}
	return s.ledger.Recent(n)
}

package repo

import "beadvault/internal/models"

// ItemRepository defines the storage contract for catalog items.
//
// Mutating operations take the audit record that must be committed together
// with the catalog write: both land or neither does. Implementations stamp the
// entry with a fresh id, a timestamp, and - for AddCount and Delete - the
// stored item name, so callers only supply Action and Amount.
type ItemRepository interface {
	// Create inserts a new item and its ledger entry. Returns
	// ErrDuplicateItem when the item's name key is already taken.
	Create(item models.Item, entry models.LedgerEntry) (models.Item, error)

	// CreateBatch inserts the given items, silently skipping any whose name
	// key is already present, and writes one ledger entry whose Amount is
	// set to the number of rows actually inserted. No entry is written when
	// nothing was inserted. Returns the inserted count.
	CreateBatch(items []models.Item, entry models.LedgerEntry) (int, error)

	// AddCount applies a signed delta to the item's count as a single
	// atomic storage operation and records the ledger entry alongside it.
	// The new count is never computed from a previously read value.
	AddCount(id, delta int, entry models.LedgerEntry) (models.Item, error)

	// Delete removes the item, recording the entry with the item's name as
	// it was at the moment of deletion.
	Delete(id int, entry models.LedgerEntry) error

	// Recolor updates only the color. Color changes are not audited.
	Recolor(id int, color string) (models.Item, error)

	GetAll() ([]models.Item, error)
	GetByID(id int) (models.Item, error)

	// GetByKey looks an item up by its canonical name key.
	GetByKey(key string) (models.Item, error)
}

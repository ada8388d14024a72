package repo

import "beadvault/internal/models"

// LedgerRepository is the append-only audit history. Entries are created and
// read, never updated or removed.
type LedgerRepository interface {
	// Append persists one entry, assigning a fresh id and a timestamp no
	// earlier than any previously assigned one.
	Append(entry models.LedgerEntry) (models.LedgerEntry, error)

	// Recent returns up to n entries, newest first.
	Recent(n int) ([]models.LedgerEntry, error)
}

package repo

import (
	"context"
	"fmt"
	"time"

	"database/sql"

	"beadvault/internal/models"
)

type PostgresLedgerRepository struct {
	db *sql.DB
}

func NewPostgresLedgerRepository(db *sql.DB) *PostgresLedgerRepository {
	return &PostgresLedgerRepository{db: db}
}

// execer is satisfied by both *sql.DB and *sql.Tx so item mutations can write
// their audit record inside the same transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertLedgerEntry(ctx context.Context, ex execer, e models.LedgerEntry) error {
	query := `INSERT INTO ledger (item_name, action, amount, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := ex.ExecContext(ctx, query, e.ItemName, e.Action, e.Amount, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to insert ledger entry: %w", err)
	}
	return nil
}

// Append persists one entry.
func (r *PostgresLedgerRepository) Append(entry models.LedgerEntry) (models.LedgerEntry, error) {
	query := `INSERT INTO ledger (item_name, action, amount, created_at) VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, entry.ItemName, entry.Action, entry.Amount, time.Now().UTC()).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return models.LedgerEntry{}, fmt.Errorf("failed to insert ledger entry: %w", err)
	}
	return entry, nil
}

// Recent returns up to n entries, newest first.
func (r *PostgresLedgerRepository) Recent(n int) ([]models.LedgerEntry, error) {
	query := `SELECT id, item_name, action, amount, created_at FROM ledger ORDER BY id DESC LIMIT $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.LedgerEntry
	for rows.Next() {
		var e models.LedgerEntry
		if err := rows.Scan(&e.ID, &e.ItemName, &e.Action, &e.Amount, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

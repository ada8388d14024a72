package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"beadvault/internal/catalog"
	"beadvault/internal/models"
)

type PostgresItemRepository struct {
	db *sql.DB
}

func NewPostgresItemRepository(db *sql.DB) *PostgresItemRepository {
	return &PostgresItemRepository{db: db}
}

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// Create inserts the item and its ledger entry in one transaction. The unique
// index on name_key turns a concurrent double-create into ErrDuplicateItem.
func (r *PostgresItemRepository) Create(item models.Item, entry models.LedgerEntry) (models.Item, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Item{}, err
	}
	defer tx.Rollback()

	query := `INSERT INTO items (name, name_key, color, count, threshold, created_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	err = tx.QueryRowContext(ctx, query,
		item.Name, catalog.Canonicalize(item.Name), item.Color, item.Count, item.Threshold, time.Now().UTC()).
		Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Item{}, ErrDuplicateItem
		}
		return models.Item{}, err
	}

	entry.ItemName = item.Name
	if err := insertLedgerEntry(ctx, tx, entry); err != nil {
		return models.Item{}, err
	}
	return item, tx.Commit()
}

// CreateBatch inserts every item whose name key is still free and writes a
// single ledger entry for the batch, all in one transaction. ON CONFLICT DO
// NOTHING makes rows that lost a race count as skipped, not as errors.
func (r *PostgresItemRepository) CreateBatch(items []models.Item, entry models.LedgerEntry) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	query := `INSERT INTO items (name, name_key, color, count, threshold, created_at)
		VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (name_key) DO NOTHING`
	now := time.Now().UTC()

	inserted := 0
	for _, item := range items {
		res, err := tx.ExecContext(ctx, query,
			item.Name, catalog.Canonicalize(item.Name), item.Color, item.Count, item.Threshold, now)
		if err != nil {
			return 0, err
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}

	if inserted > 0 {
		entry.Amount = inserted
		if err := insertLedgerEntry(ctx, tx, entry); err != nil {
			return 0, err
		}
	}
	return inserted, tx.Commit()
}

// AddCount applies the delta in the database itself, so concurrent callers can
// never overwrite each other's update with a stale absolute value. Counts are
// allowed to go negative: a backorder, not an error.
func (r *PostgresItemRepository) AddCount(id, delta int, entry models.LedgerEntry) (models.Item, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Item{}, err
	}
	defer tx.Rollback()

	query := `UPDATE items SET count = count + $1 WHERE id = $2
		RETURNING id, name, color, count, threshold, created_at`
	var item models.Item
	err = tx.QueryRowContext(ctx, query, delta, id).
		Scan(&item.ID, &item.Name, &item.Color, &item.Count, &item.Threshold, &item.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, ErrItemNotFound
	}
	if err != nil {
		return models.Item{}, err
	}

	entry.ItemName = item.Name
	if err := insertLedgerEntry(ctx, tx, entry); err != nil {
		return models.Item{}, err
	}
	return item, tx.Commit()
}

// Delete removes the item, capturing its name for the ledger entry before the
// row is gone.
func (r *PostgresItemRepository) Delete(id int, entry models.LedgerEntry) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var name string
	err = tx.QueryRowContext(ctx, `DELETE FROM items WHERE id = $1 RETURNING name`, id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrItemNotFound
	}
	if err != nil {
		return err
	}

	entry.ItemName = name
	if err := insertLedgerEntry(ctx, tx, entry); err != nil {
		return err
	}
	return tx.Commit()
}

// Recolor updates only the color. Single-row write, no audit record.
func (r *PostgresItemRepository) Recolor(id int, color string) (models.Item, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	query := `UPDATE items SET color = $1 WHERE id = $2
		RETURNING id, name, color, count, threshold, created_at`
	var item models.Item
	err := r.db.QueryRowContext(ctx, query, color, id).
		Scan(&item.ID, &item.Name, &item.Color, &item.Count, &item.Threshold, &item.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, ErrItemNotFound
	}
	return item, err
}

// GetAll retrieves the catalog in creation order.
func (r *PostgresItemRepository) GetAll() ([]models.Item, error) {
	query := `SELECT id, name, color, count, threshold, created_at FROM items ORDER BY id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var it models.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Color, &it.Count, &it.Threshold, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetByID retrieves an item by its ID.
func (r *PostgresItemRepository) GetByID(id int) (models.Item, error) {
	query := `SELECT id, name, color, count, threshold, created_at FROM items WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var it models.Item
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&it.ID, &it.Name, &it.Color, &it.Count, &it.Threshold, &it.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, ErrItemNotFound
	}
	return it, err
}

// GetByKey retrieves an item by its canonical name key.
func (r *PostgresItemRepository) GetByKey(key string) (models.Item, error) {
	query := `SELECT id, name, color, count, threshold, created_at FROM items WHERE name_key = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var it models.Item
	err := r.db.QueryRowContext(ctx, query, key).
		Scan(&it.ID, &it.Name, &it.Color, &it.Count, &it.Threshold, &it.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, ErrItemNotFound
	}
	return it, err
}

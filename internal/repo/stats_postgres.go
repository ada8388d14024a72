package repo

import (
	"context"
	"database/sql"
	"time"

	"beadvault/internal/catalog"
)

type PostgresStatsRepository struct {
	db *sql.DB
}

func NewPostgresStatsRepository(db *sql.DB) *PostgresStatsRepository {
	return &PostgresStatsRepository{db: db}
}

// GetStats computes the summary in SQL. The low-stock predicate mirrors
// catalog.IsLowStock, including the default threshold for rows that carry a
// non-positive one.
func (r *PostgresStatsRepository) GetStats() (Stats, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	query := `SELECT COUNT(*),
		COALESCE(SUM(count), 0),
		COUNT(*) FILTER (WHERE count < CASE WHEN threshold > 0 THEN threshold ELSE $1 END)
		FROM items`

	var s Stats
	err := r.db.QueryRowContext(ctx, query, catalog.DefaultThreshold).
		Scan(&s.TotalItems, &s.TotalBeads, &s.LowStockCount)
	return s, err
}

package repo

// Stats is the summary shown in the vault header: distinct catalog lines,
// total beads on hand, and how many lines sit below their threshold.
type Stats struct {
	TotalItems    int `json:"total_items"`
	TotalBeads    int `json:"total_beads"`
	LowStockCount int `json:"low_stock_count"`
}

type StatsRepository interface {
	GetStats() (Stats, error)
}

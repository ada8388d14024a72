package models

import "time"

// Ledger actions form a closed set. The labels are rendered verbatim in the
// activity feed, which keys the +/- sign off the 入库 suffix.
const (
	ActionNewStock = "新购入库"
	ActionRestock  = "补货入库"
	ActionConsume  = "消耗使用"
	ActionDelete   = "删除销毁"
	ActionImport   = "批量导入"
)

// LedgerEntry is one append-only audit record. ItemName is a snapshot, not a
// reference: entries outlive the items they describe.
type LedgerEntry struct {
	ID        int       `json:"id"`
	ItemName  string    `json:"item_name"`
	Action    string    `json:"action"`
	Amount    int       `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

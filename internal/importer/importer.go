// Package importer seeds the catalog from a fixed reference palette. Running
// it twice is harmless: names already present are skipped, never duplicated.
package importer

import (
	"strings"

	"github.com/rs/zerolog"

	"beadvault/internal/catalog"
	"beadvault/internal/models"
	"beadvault/internal/repo"
)

// referenceLedgerName is the name snapshot used on the single batch-import
// ledger entry, since the entry covers many items at once.
const referenceLedgerName = "参考色卡"

type Result struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

type Importer struct {
	items repo.ItemRepository
	refs  []Reference
	log   zerolog.Logger
}

func New(items repo.ItemRepository, refs []Reference, logger zerolog.Logger) *Importer {
	return &Importer{items: items, refs: refs, log: logger}
}

// Run partitions the palette by canonical name key against the current
// catalog, inserts only the new part as one batch, and records one 批量导入
// ledger entry whose amount is the number of items actually inserted. A run
// that inserts nothing writes no entry at all.
func (im *Importer) Run() (Result, error) {
	existing, err := im.items.GetAll()
	if err != nil {
		return Result{}, err
	}
	present := make(map[string]struct{}, len(existing))
	for _, it := range existing {
		present[catalog.Canonicalize(it.Name)] = struct{}{}
	}

	var batch []models.Item
	skipped := 0
	for _, ref := range im.refs {
		key := catalog.Canonicalize(ref.Name)
		if key == "" {
			skipped++
			continue
		}
		if _, ok := present[key]; ok {
			skipped++
			continue
		}
		present[key] = struct{}{} // the palette itself may repeat a name

		threshold := ref.Threshold
		if threshold <= 0 {
			threshold = catalog.DefaultThreshold
		}
		count := ref.Count
		if count < 0 {
			count = 0
		}
		batch = append(batch, models.Item{
			Name:      strings.TrimSpace(ref.Name),
			Color:     ref.Color,
			Count:     count,
			Threshold: threshold,
		})
	}

	if len(batch) == 0 {
		im.log.Info().Int("skipped", skipped).Msg("reference import: nothing new")
		return Result{Skipped: skipped}, nil
	}

	entry := models.LedgerEntry{
		ItemName: referenceLedgerName,
		Action:   models.ActionImport,
		Amount:   len(batch),
	}
	inserted, err := im.items.CreateBatch(batch, entry)
	if err != nil {
		return Result{}, err
	}
	// Rows that lost a concurrent insert race count as skipped.
	skipped += len(batch) - inserted

	im.log.Info().Int("inserted", inserted).Int("skipped", skipped).Msg("reference import finished")
	return Result{Inserted: inserted, Skipped: skipped}, nil
}

package handlers

import (
	"beadvault/internal/gate"
	"beadvault/internal/importer"
	"beadvault/internal/repo"
	"beadvault/internal/store"
)

var (
	vault       *store.Store
	statsRepo   repo.StatsRepository
	gatekeeper  *gate.Gate
	refImporter *importer.Importer
)

func SetStore(s *store.Store) {
	vault = s
}

func SetStatsRepo(r repo.StatsRepository) {
	statsRepo = r
}

func SetGate(g *gate.Gate) {
	gatekeeper = g
}

func SetImporter(im *importer.Importer) {
	refImporter = im
}

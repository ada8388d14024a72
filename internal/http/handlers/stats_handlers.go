package handlers

import "net/http"

// GetStatsHandler godoc
// @Summary Vault summary
// @Description Distinct lines, total beads on hand, low-stock line count
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} repo.Stats
// @Failure 500 {string} string "Internal error"
// @Router /stats [get]
func GetStatsHandler(w http.ResponseWriter, r *http.Request) {
	s, err := statsRepo.GetStats()
	if err != nil {
		http.Error(w, "failed to fetch stats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

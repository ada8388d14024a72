package handlers

import (
	"net/http"
	"strconv"
)

// GetActivityHandler godoc
// @Summary Recent stock activity
// @Description Newest-first feed of ledger entries, capped at 20
// @Tags activity
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Number of entries (max 20)"
// @Success 200 {array} LedgerEntryResponse
// @Failure 400 {string} string "Invalid limit"
// @Failure 500 {string} string "Internal error"
// @Router /activity [get]
func GetActivityHandler(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		v, err := strconv.Atoi(limitStr)
		if err != nil || v <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = v
	}

	entries, err := vault.Recent(limit)
	if err != nil {
		http.Error(w, "could not fetch activity", http.StatusInternalServerError)
		return
	}

	response := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		response[i] = LedgerEntryResponse{
			Id:        e.ID,
			ItemName:  e.ItemName,
			Action:    e.Action,
			Amount:    e.Amount,
			CreatedAt: e.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, response)
}

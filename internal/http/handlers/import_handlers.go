package handlers

import "net/http"

// ImportReferenceHandler godoc
// @Summary Seed the catalog from the reference palette
// @Description Idempotent: names already in the catalog are skipped. A second run inserts nothing.
// @Tags import
// @Produce json
// @Security BearerAuth
// @Success 200 {object} importer.Result
// @Failure 500 {string} string "Internal error"
// @Router /items/import [post]
func ImportReferenceHandler(w http.ResponseWriter, r *http.Request) {
	result, err := refImporter.Run()
	if err != nil {
		http.Error(w, "could not import reference palette", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

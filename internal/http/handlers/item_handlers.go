package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"beadvault/internal/catalog"
	"beadvault/internal/repo"
	"beadvault/internal/store"
)

// CreateItemHandler godoc
// @Summary Stock beads in
// @Description Creates a new catalog line, or merges the count into the existing line when the canonical name already exists
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item body ItemRequest true "Item to stock in"
// @Success 200 {object} ItemResponse "Merged into an existing line"
// @Success 201 {object} ItemResponse "New line created"
// @Failure 400 {array} ItemValidationError
// @Router /items [post]
func CreateItemHandler(w http.ResponseWriter, r *http.Request) {
	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateItem(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	item, merged, err := vault.CreateOrMerge(req.Name, req.Color, req.Count, req.Threshold)
	if err != nil {
		var ve store.ValidationError
		if errors.As(err, &ve) {
			http.Error(w, ve.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "could not stock item", http.StatusInternalServerError)
		return
	}

	status := http.StatusCreated
	if merged {
		status = http.StatusOK
	}
	writeJSON(w, status, newItemResponse(item))
}

// GetItemsHandler godoc
// @Summary List the catalog
// @Description Free-text search, category filter and sort, in that order
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param q query string false "Case-insensitive substring of the name"
// @Param category query string false "Category tag, or 'all'"
// @Param sort query string false "count-ascending | count-descending | newest-first | oldest-first"
// @Success 200 {array} ItemResponse
// @Failure 500 {string} string "Internal error"
// @Router /items [get]
func GetItemsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category := q.Get("category")
	if category == "" {
		category = catalog.CategoryAll
	}

	items, err := vault.Items()
	if err != nil {
		http.Error(w, "could not fetch items", http.StatusInternalServerError)
		return
	}

	view := catalog.Query(items, q.Get("q"), category, q.Get("sort"))
	response := make([]ItemResponse, len(view))
	for i, it := range view {
		response[i] = newItemResponse(it)
	}
	writeJSON(w, http.StatusOK, response)
}

// ConsumeItemHandler godoc
// @Summary Register bead usage
// @Description Subtracts the amount from the item's count; the count may go negative (backorder)
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Param consumption body ConsumeRequest true "Amount used"
// @Success 200 {object} ItemResponse
// @Failure 400 {string} string "Invalid amount"
// @Failure 404 {string} string "Not found"
// @Router /items/{id}/consume [post]
func ConsumeItemHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid item ID", http.StatusBadRequest)
		return
	}

	var req ConsumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	item, err := vault.Consume(id, req.Amount)
	if err != nil {
		var ve store.ValidationError
		switch {
		case errors.As(err, &ve):
			http.Error(w, ve.Error(), http.StatusBadRequest)
		case errors.Is(err, repo.ErrItemNotFound):
			http.Error(w, "item not found", http.StatusNotFound)
		default:
			http.Error(w, "could not update item", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, newItemResponse(item))
}

// DeleteItemHandler godoc
// @Summary Delete a catalog line
// @Description Irreversible; the client is expected to confirm with the user first. Ledger history stays.
// @Tags items
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /items/{id} [delete]
func DeleteItemHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid item ID", http.StatusBadRequest)
		return
	}

	if err := vault.Delete(id); err != nil {
		if errors.Is(err, repo.ErrItemNotFound) {
			http.Error(w, "item not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not delete item", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RecolorItemHandler godoc
// @Summary Change an item's color token
// @Description Updates only the color; no ledger entry is written
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Param color body RecolorRequest true "New color"
// @Success 200 {object} ItemResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Not found"
// @Router /items/{id}/color [put]
func RecolorItemHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid item ID", http.StatusBadRequest)
		return
	}

	var req RecolorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Color) == "" {
		http.Error(w, "color is required", http.StatusBadRequest)
		return
	}

	item, err := vault.Recolor(id, req.Color)
	if err != nil {
		if errors.Is(err, repo.ErrItemNotFound) {
			http.Error(w, "item not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not update item", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, newItemResponse(item))
}

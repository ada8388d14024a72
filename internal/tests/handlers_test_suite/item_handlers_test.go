package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	api "beadvault/internal/http"
	handler "beadvault/internal/http/handlers"
	"beadvault/internal/models"
)

func TestCreateItemHandler_Valid(t *testing.T) {
	t.Cleanup(resetRepos)
	r := api.NewRouter()

	w := createItem(r, handler.ItemRequest{Name: "ZG05 珠光粉", Color: "#f4c2c2", Count: 500})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	var resp handler.ItemResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if resp.Name != "ZG05 珠光粉" {
		t.Errorf("expected name 'ZG05 珠光粉', got %v", resp.Name)
	}
	if resp.Count != 500 {
		t.Errorf("expected count 500, got %v", resp.Count)
	}
	if resp.Threshold != 200 {
		t.Errorf("expected default threshold 200, got %v", resp.Threshold)
	}
	if resp.Category != "ZG" {
		t.Errorf("expected category 'ZG', got %v", resp.Category)
	}
	if resp.LowStock {
		t.Error("expected low_stock false for a count above the threshold")
	}

	entries := ledgerRepo.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 ledger entry, got %d", len(entries))
	}
	if entries[0].Action != models.ActionNewStock {
		t.Errorf("expected action %q, got %q", models.ActionNewStock, entries[0].Action)
	}
}

func TestCreateItemHandler_MergesExistingLine(t *testing.T) {
	t.Cleanup(resetRepos)
	r := api.NewRouter()

	first := mustCreateItem(r, handler.ItemRequest{Name: "ZG05 珠光粉", Color: "#f4c2c2", Count: 500, Threshold: 100})

	// Same line under a sloppier spelling.
	w := createItem(r, handler.ItemRequest{Name: "  zg05 珠光粉 ", Color: "#ffffff", Count: 250})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK for a merge, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.ItemResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Id != first.Id {
		t.Errorf("expected merge into item %d, got %d", first.Id, resp.Id)
	}
	if resp.Count != 750 {
		t.Errorf("expected count 750, got %d", resp.Count)
	}
	if resp.Color != "#f4c2c2" {
		t.Errorf("expected original color preserved, got %v", resp.Color)
	}
	if resp.Threshold != 100 {
		t.Errorf("expected original threshold preserved, got %d", resp.Threshold)
	}

	entries := ledgerRepo.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 ledger entries, got %d", len(entries))
	}
	if entries[1].Action != models.ActionRestock {
		t.Errorf("expected action %q, got %q", models.ActionRestock, entries[1].Action)
	}
	if entries[1].Amount != 250 {
		t.Errorf("expected amount 250, got %d", entries[1].Amount)
	}
}

func TestCreateItemHandler_Invalid(t *testing.T) {
	t.Cleanup(resetRepos)
	r := api.NewRouter()

	tests := []struct {
		name           string
		payload        handler.ItemRequest
		expectedErrors []string
	}{
		{
			name:           "Empty name",
			payload:        handler.ItemRequest{Name: "", Count: 10},
			expectedErrors: []string{"Name"},
		},
		{
			name:           "Blank name",
			payload:        handler.ItemRequest{Name: "   ", Count: 10},
			expectedErrors: []string{"Name"},
		},
		{
			name:           "Negative count",
			payload:        handler.ItemRequest{Name: "A1", Count: -1},
			expectedErrors: []string{"Count"},
		},
		{
			name:           "Empty name and negative count",
			payload:        handler.ItemRequest{Name: "", Count: -1},
			expectedErrors: []string{"Name", "Count"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := createItem(r, tt.payload)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", w.Code)
			}

			var resp []handler.ItemValidationError
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}

			for _, field := range tt.expectedErrors {
				found := false
				for _, err := range resp {
					if strings.EqualFold(err.Field, field) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected error for field %q, but not found", field)
				}
			}
		})
	}

	if len(ledgerRepo.All()) != 0 {
		t.Error("rejected input must not touch the ledger")
	}
}

func TestCreateItemHandler_MalformedJSON(t *testing.T) {
	t.Cleanup(resetRepos)
	r := api.NewRouter()

	badJSON := `{name: "A1" count: 10}` // missing quotes and comma
	req := httptest.NewRequest(http.MethodPost, "/items", bytes.NewBufferString(badJSON))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 Bad Request, got %d", w.Code)
	}
}

func TestGetItemsHandler_FilterAndSort(t *testing.T) {
	t.Cleanup(resetRepos)
	r := api.NewRouter()

	mustCreateItem(r, handler.ItemRequest{Name: "A1 奶白", Count: 5})
	mustCreateItem(r, handler.ItemRequest{Name: "A2 纯黑", Count: 50})
	mustCreateItem(r, handler.ItemRequest{Name: "B1 天蓝", Count: 10})

	w := doAuthorized(r, http.MethodGet, "/items?category=A&sort=count-ascending", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp []handler.ItemResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 items, got %d", len(resp))
	}
	if resp[0].Name != "A1 奶白" || resp[1].Name != "A2 纯黑" {
		t.Errorf("unexpected order: %v, %v", resp[0].Name, resp[1].Name)
	}
}

func TestGetItemsHandler_Search(t *testing.T) {
	t.Cleanup(resetRepos)
	r := api.NewRouter()

	mustCreateItem(r, handler.ItemRequest{Name: "ZG05 珠光粉", Count: 500})
	mustCreateItem(r, handler.ItemRequest{Name: "A1 奶白", Count: 100})

	w := doAuthorized(r, http.MethodGet, "/items?q=zg", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp []handler.ItemResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(resp) != 1 || resp[0].Name != "ZG05 珠光粉" {
		t.Errorf("expected only 'ZG05 珠光粉', got %v", resp)
	}
}

func TestGetItemsHandler_DefaultNewestFirst(t *testing.T) {
	t.Cleanup(resetRepos)
	r := api.NewRouter()

	mustCreateItem(r, handler.ItemRequest{Name: "A1 奶白", Count: 5})
	newest := mustCreateItem(r, handler.ItemRequest{Name: "B1 天蓝", Count: 10})

	w := doAuthorized(r, http.MethodGet, "/items", nil)
	var resp []handler.ItemResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(resp) != 2 || resp[0].Id != newest.Id {
		t.Errorf("expected newest item first, got %v", resp)
	}
}

func TestConsumeItemHandler(t *testing.T) {
	t.Cleanup(resetRepos)
	r := api.NewRouter()

	item := mustCreateItem(r, handler.ItemRequest{Name: "A2 纯黑", Count: 300, Threshold: 100})

	w := consumeItem(r, item.Id, 120)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.ItemResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Count != 180 {
		t.Errorf("expected count 180, got %d", resp.Count)
	}

	entries := ledgerRepo.All()
	if len(entries) != 2 || entries[1].Action != models.ActionConsume || entries[1].Amount != 120 {
		t.Errorf("unexpected ledger entries: %+v", entries)
	}
}

func TestConsumeItemHandler_Backorder(t *testing.T) {
	t.Cleanup(resetRepos)
	r := api.NewRouter()

	item := mustCreateItem(r, handler.ItemRequest{Name: "A2 纯黑", Count: 10, Threshold: 100})

	w := consumeItem(r, item.Id, 25)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp handler.ItemResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Count != -15 {
		t.Errorf("expected count -15, got %d", resp.Count)
	}
	if !resp.LowStock {
		t.Error("a backordered line must report low_stock")
	}
}

func TestConsumeItemHandler_Invalid(t *testing.T) {
	t.Cleanup(resetRepos)
	r := api.NewRouter()

	item := mustCreateItem(r, handler.ItemRequest{Name: "A2 纯黑", Count: 10})

	if w := consumeItem(r, item.Id, 0); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for zero amount, got %d", w.Code)
	}
	if w := consumeItem(r, 999, 5); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown item, got %d", w.Code)
	}
	if w := doAuthorized(r, http.MethodPost, "/items/abc/consume", handler.ConsumeRequest{Amount: 5}); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for non-numeric id, got %d", w.Code)
	}
}

func TestDeleteItemHandler(t *testing.T) {
	t.Cleanup(resetRepos)
	r := api.NewRouter()

	item := mustCreateItem(r, handler.ItemRequest{Name: "B1 天蓝", Count: 100})

	w := doAuthorized(r, http.MethodDelete, fmt.Sprintf("/items/%d", item.Id), nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d", w.Code)
	}

	// The line is gone but its history is not.
	entries := ledgerRepo.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 ledger entries, got %d", len(entries))
	}
	if entries[1].Action != models.ActionDelete || entries[1].ItemName != "B1 天蓝" {
		t.Errorf("unexpected delete entry: %+v", entries[1])
	}

	if w := doAuthorized(r, http.MethodDelete, fmt.Sprintf("/items/%d", item.Id), nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 on second delete, got %d", w.Code)
	}
}

func TestRecolorItemHandler(t *testing.T) {
	t.Cleanup(resetRepos)
	r := api.NewRouter()

	item := mustCreateItem(r, handler.ItemRequest{Name: "B1 天蓝", Color: "#7ec8e3", Count: 100})

	w := doAuthorized(r, http.MethodPut, fmt.Sprintf("/items/%d/color", item.Id), handler.RecolorRequest{Color: "#123456"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp handler.ItemResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Color != "#123456" {
		t.Errorf("expected color '#123456', got %v", resp.Color)
	}

	if len(ledgerRepo.All()) != 1 {
		t.Error("a recolor must not write a ledger entry")
	}

	if w := doAuthorized(r, http.MethodPut, fmt.Sprintf("/items/%d/color", item.Id), handler.RecolorRequest{Color: "  "}); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for blank color, got %d", w.Code)
	}
}

func TestGateMiddleware_RejectsWithoutToken(t *testing.T) {
	t.Cleanup(resetRepos)
	r := api.NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without a token, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/items", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with a garbage token, got %d", w.Code)
	}
}

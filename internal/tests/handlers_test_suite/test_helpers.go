package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/rs/zerolog"

	"beadvault/internal/gate"
	api "beadvault/internal/http"
	handler "beadvault/internal/http/handlers"
	rl "beadvault/internal/http/rate_limiter"
	"beadvault/internal/importer"
	"beadvault/internal/repo"
	"beadvault/internal/store"
)

const testPassphrase = "open-sesame"

var (
	token      string
	itemRepo   *repo.InMemoryItemRepository
	ledgerRepo *repo.InMemoryLedgerRepository
)

func init() {
	hash, err := gate.HashPassphrase(testPassphrase)
	if err != nil {
		panic(fmt.Sprintf("error hashing passphrase: %v", err))
	}
	gatekeeper := gate.New(gate.Options{
		PassphraseHash: hash,
		TokenSecret:    "test-secret",
		TokenTTL:       time.Hour,
	}, nil, zerolog.Nop())
	handler.SetGate(gatekeeper)
	api.SetGate(gatekeeper)

	resetRepos()

	r := api.NewRouter()
	token, err = unlockVault(r, testPassphrase)
	if err != nil {
		panic(fmt.Sprintf("error unlocking vault: %v", err))
	}
}

// resetRepos swaps in fresh catalog and ledger repositories. The gate from
// init stays, so the token issued there remains valid.
func resetRepos() {
	rl.CleanupAllVisitors()

	ledgerRepo = repo.NewInMemoryLedgerRepository()
	itemRepo = repo.NewInMemoryItemRepository(ledgerRepo)

	handler.SetStore(store.New(itemRepo, ledgerRepo, zerolog.Nop()))
	handler.SetStatsRepo(repo.NewInMemoryStatsRepository(itemRepo))
	handler.SetImporter(importer.New(itemRepo, nil, zerolog.Nop()))
}

func setPalette(refs []importer.Reference) {
	handler.SetImporter(importer.New(itemRepo, refs, zerolog.Nop()))
}

func unlockVault(r http.Handler, passphrase string) (string, error) {
	payload := handler.UnlockRequest{Passphrase: passphrase}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/unlock", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		return "", fmt.Errorf("unlock failed with status %d: %s", w.Code, w.Body.String())
	}
	var resp handler.UnlockResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func doAuthorized(r http.Handler, method, target string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createItem(r http.Handler, it handler.ItemRequest) *httptest.ResponseRecorder {
	return doAuthorized(r, http.MethodPost, "/items", it)
}

func consumeItem(r http.Handler, itemID, amount int) *httptest.ResponseRecorder {
	return doAuthorized(r, http.MethodPost, fmt.Sprintf("/items/%d/consume", itemID), handler.ConsumeRequest{Amount: amount})
}

func mustCreateItem(r http.Handler, it handler.ItemRequest) handler.ItemResponse {
	w := createItem(r, it)
	if w.Code != http.StatusCreated {
		panic(fmt.Sprintf("expected 201 creating %q, got %d: %s", it.Name, w.Code, w.Body.String()))
	}
	var resp handler.ItemResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		panic(fmt.Sprintf("error decoding response: %v", err))
	}
	return resp
}

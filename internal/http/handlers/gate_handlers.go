package handlers

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"beadvault/internal/gate"
)

// UnlockHandler godoc
// @Summary Unlock the vault
// @Description Exchanges the shared passphrase for a long-lived bearer token
// @Tags gate
// @Accept json
// @Produce json
// @Param credentials body UnlockRequest true "Passphrase"
// @Success 200 {object} UnlockResult
// @Failure 401 {string} string "Wrong passphrase"
// @Failure 429 {string} string "Locked out"
// @Router /unlock [post]
func UnlockHandler(w http.ResponseWriter, r *http.Request) {
	var req UnlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	clientID, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		clientID = r.RemoteAddr
	}

	token, err := gatekeeper.Unlock(req.Passphrase, clientID)
	if err != nil {
		switch {
		case errors.Is(err, gate.ErrLocked):
			http.Error(w, "too many failed attempts", http.StatusTooManyRequests)
		case errors.Is(err, gate.ErrBadPassphrase):
			http.Error(w, "wrong passphrase", http.StatusUnauthorized)
		default:
			http.Error(w, "could not unlock", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, UnlockResult{Token: token})
}

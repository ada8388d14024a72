package http

import (
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"beadvault/internal/gate"
	rl "beadvault/internal/http/rate_limiter"
)

var gatekeeper *gate.Gate

func SetGate(g *gate.Gate) {
	gatekeeper = g
}

// GateMiddleware rejects requests that do not carry a valid unlock token.
func GateMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			http.Error(w, "vault is locked", http.StatusUnauthorized)
			return
		}
		if err := gatekeeper.Verify(strings.TrimPrefix(auth, "Bearer ")); err != nil {
			http.Error(w, "vault is locked", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequestIDMiddleware tags every response with an id for log correlation.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

// RateLimitMiddleware throttles per remote address.
func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !rl.GetVisitor(ip).Allow() {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

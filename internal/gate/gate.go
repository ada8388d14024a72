// Package gate implements the shared-passphrase check in front of the vault.
// There are no per-user accounts: a correct passphrase yields a long-lived
// token the client keeps, which is the whole "remember my unlock" story.
package gate

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadPassphrase = errors.New("wrong passphrase")
	ErrLocked        = errors.New("too many failed attempts")
	ErrInvalidToken  = errors.New("invalid or expired token")
)

type Options struct {
	PassphraseHash string // bcrypt hash of the shared passphrase
	TokenSecret    string
	TokenTTL       time.Duration
}

type Gate struct {
	passHash []byte
	secret   []byte
	ttl      time.Duration
	strikes  *StrikeStore // nil when redis is not configured
	log      zerolog.Logger
}

func New(opts Options, strikes *StrikeStore, logger zerolog.Logger) *Gate {
	return &Gate{
		passHash: []byte(opts.PassphraseHash),
		secret:   []byte(opts.TokenSecret),
		ttl:      opts.TokenTTL,
		strikes:  strikes,
		log:      logger,
	}
}

// HashPassphrase produces the bcrypt hash stored in configuration.
func HashPassphrase(passphrase string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	return string(hash), err
}

// Unlock checks the passphrase and returns a signed token. Repeated failures
// from the same client earn a temporary lockout. Strike-store failures are
// logged but never lock the owner out of their own vault.
func (g *Gate) Unlock(passphrase, clientID string) (string, error) {
	if g.strikes != nil {
		banned, err := g.strikes.Banned(clientID)
		if err != nil {
			g.log.Warn().Err(err).Msg("strike store unavailable")
		} else if banned {
			return "", ErrLocked
		}
	}

	if bcrypt.CompareHashAndPassword(g.passHash, []byte(passphrase)) != nil {
		if g.strikes != nil {
			banned, err := g.strikes.Register(clientID)
			if err != nil {
				g.log.Warn().Err(err).Msg("strike store unavailable")
			} else if banned {
				g.log.Warn().Str("client", clientID).Msg("client locked out after repeated failures")
				return "", ErrLocked
			}
		}
		return "", ErrBadPassphrase
	}

	if g.strikes != nil {
		if err := g.strikes.Clear(clientID); err != nil {
			g.log.Warn().Err(err).Msg("strike store unavailable")
		}
	}

	claims := jwt.MapClaims{
		"scope": "vault",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(g.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}

// Verify checks a previously issued token.
func (g *Gate) Verify(tokenStr string) error {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return g.secret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

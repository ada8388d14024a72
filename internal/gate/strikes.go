package gate

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	strikeKeyPrefix = "gate:strikes:"
	banKeyPrefix    = "gate:ban:"

	// strikeWindow is how long a run of failures keeps accumulating before
	// the counter resets on its own.
	strikeWindow = 15 * time.Minute
)

// StrikeStore counts failed unlock attempts per client in redis and flips a
// temporary ban key once the limit is hit.
type StrikeStore struct {
	rdb        *redis.Client
	maxStrikes int
	banFor     time.Duration
}

func NewStrikeStore(rdb *redis.Client, maxStrikes int, banFor time.Duration) *StrikeStore {
	return &StrikeStore{rdb: rdb, maxStrikes: maxStrikes, banFor: banFor}
}

// Register records one failed attempt and reports whether the client just
// crossed the ban limit.
func (s *StrikeStore) Register(clientID string) (bool, error) {
	ctx := context.Background()

	n, err := s.rdb.Incr(ctx, strikeKeyPrefix+clientID).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		s.rdb.Expire(ctx, strikeKeyPrefix+clientID, strikeWindow)
	}
	if int(n) >= s.maxStrikes {
		if err := s.rdb.Set(ctx, banKeyPrefix+clientID, n, s.banFor).Err(); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// Banned reports whether the client is currently locked out.
func (s *StrikeStore) Banned(clientID string) (bool, error) {
	n, err := s.rdb.Exists(context.Background(), banKeyPrefix+clientID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Clear wipes the client's strikes after a successful unlock.
func (s *StrikeStore) Clear(clientID string) error {
	return s.rdb.Del(context.Background(), strikeKeyPrefix+clientID, banKeyPrefix+clientID).Err()
}

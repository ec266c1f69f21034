package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"designkit_backend/internal/feature/design/usecase"
	"designkit_backend/internal/platform/session"
)

// NewTurnLog creates a TurnLog implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to process memory.
func NewTurnLog(rdb *redis.Client, ttl time.Duration) usecase.TurnLog {
	if rdb != nil {
		return session.NewTurnLogRedis(rdb, "session", ttl)
	}
	return session.NewTurnLogMemory()
}

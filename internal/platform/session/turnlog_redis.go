// Package session stores the local append-only log of turns sent in editing sessions.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"designkit_backend/internal/feature/design/domain/entity"
	"designkit_backend/internal/feature/design/usecase"
)

// TurnLogRedis implements usecase.TurnLog using a Redis list per session.
type TurnLogRedis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ usecase.TurnLog = (*TurnLogRedis)(nil)

// NewTurnLogRedis creates a new TurnLogRedis instance.
// Each append refreshes the list's TTL so that abandoned sessions expire on their own.
func NewTurnLogRedis(client *redis.Client, prefix string, ttl time.Duration) *TurnLogRedis {
	if prefix == "" {
		prefix = "turns"
	}
	if ttl <= 0 {
		ttl = usecase.DefaultSessionTTL
	}
	return &TurnLogRedis{client: client, prefix: prefix, ttl: ttl}
}

// key returns the Redis key for a session's turn list.
func (r *TurnLogRedis) key(sessionID string) string {
	return fmt.Sprintf("%s:%s", r.prefix, sessionID)
}

// Append adds a turn to the end of the session's log.
func (r *TurnLogRedis) Append(ctx context.Context, sessionID string, turn entity.Turn) error {
	data, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("failed to marshal turn: %w", err)
	}
	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, r.key(sessionID), data)
	pipe.Expire(ctx, r.key(sessionID), r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	return nil
}

// List returns the session's turns in the order they were sent.
func (r *TurnLogRedis) List(ctx context.Context, sessionID string) ([]entity.Turn, error) {
	items, err := r.client.LRange(ctx, r.key(sessionID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	turns := make([]entity.Turn, 0, len(items))
	for _, item := range items {
		var t entity.Turn
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			return nil, fmt.Errorf("failed to unmarshal turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, nil
}

// Delete removes the session's log.
func (r *TurnLogRedis) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, r.key(sessionID)).Err()
}

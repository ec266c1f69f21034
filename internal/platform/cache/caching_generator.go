// Package cache provides caching decorators for remote model calls.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tidwall/gjson"

	"designkit_backend/internal/feature/design/usecase"
)

// CachingGenerator decorates a Generator with Redis caching of structured (JSON) replies.
// Image generation and search-grounded calls are never cached because their output
// is expected to differ between calls.
type CachingGenerator struct {
	inner     usecase.Generator
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.Generator = (*CachingGenerator)(nil)

// NewCachingGenerator decorates a Generator with Redis caching.
// If ttl is 0, it defaults to 10 minutes. If namespace is empty, it uses "generations".
func NewCachingGenerator(rdb *redis.Client, ttl time.Duration, inner usecase.Generator, namespace string) *CachingGenerator {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if namespace == "" {
		namespace = "generations"
	}
	return &CachingGenerator{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Generate returns a cached reply when one exists, otherwise calls the inner generator.
func (c *CachingGenerator) Generate(ctx context.Context, req *usecase.GenerateRequest) (*usecase.GenerateResponse, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil || !cacheable(req) {
		return c.inner.Generate(ctx, req)
	}

	key, err := c.cacheKey(req)
	if err != nil {
		return c.inner.Generate(ctx, req)
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out usecase.GenerateResponse
		if err := json.Unmarshal(b, &out); err == nil && validReply(&out) {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the model
	out, err := c.inner.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort). Malformed replies are not stored so the next call asks the model again.
	if !validReply(out) {
		slog.Warn("not caching malformed JSON reply", "operation", req.Operation, "model", req.Model)
		return out, nil
	}
	if b, err := json.Marshal(out); err == nil {
		if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
			slog.Warn("failed to cache generation", "operation", req.Operation, "error", err)
		}
	}
	return out, nil
}

// cacheable reports whether a request produces a deterministic structured reply.
func cacheable(req *usecase.GenerateRequest) bool {
	return req.ResponseMIMEType == usecase.MIMETypeJSON && !req.GoogleSearch
}

// validReply reports whether a JSON-mode reply carries well-formed JSON text.
func validReply(out *usecase.GenerateResponse) bool {
	return out != nil && gjson.Valid(out.Text())
}

// cacheKey generates a cache key from the operation, model and a digest of the full request.
func (c *CachingGenerator) cacheKey(req *usecase.GenerateRequest) (string, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return fmt.Sprintf("%s:%s:%s:%s",
		c.namespace,
		safe(req.Operation),
		safe(req.Model),
		hex.EncodeToString(sum[:]),
	), nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}

// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"designkit_backend/internal/feature/design/adapters/gemini"
	"designkit_backend/internal/feature/design/usecase"
	historyusecase "designkit_backend/internal/feature/history/usecase"
	"designkit_backend/internal/platform/cache"
	"designkit_backend/internal/platform/config"
	"designkit_backend/internal/platform/metrics"
	"designkit_backend/internal/shared/ratelimiter"
)

// NewGeminiClient creates a Gemini client whose calls share one per-minute rate limiter.
func NewGeminiClient(ctx context.Context, cfg *config.Config) *gemini.Client {
	limiter := ratelimiter.NewRateLimiter(cfg.GeminiRequestsPerMinute, time.Minute)
	return gemini.NewClient(ctx, gemini.Config{
		APIKey:            cfg.GeminiAPIKey,
		BaseURL:           cfg.GeminiBaseURL,
		Timeout:           cfg.GeminiTimeout,
		RequestsPerMinute: cfg.GeminiRequestsPerMinute,
	}, limiter)
}

// NewGenerator wraps base with the optional decorators, outermost first:
// Redis cache, generation history, then Prometheus instrumentation.
// A nil m, repo or rdb skips the corresponding layer.
func NewGenerator(base usecase.Generator, m *metrics.Metrics, repo historyusecase.GenerationRepository, rdb *redis.Client, cacheTTL time.Duration) usecase.Generator {
	gen := base
	if m != nil {
		gen = metrics.NewInstrumentedGenerator(gen, m)
	}
	if repo != nil {
		gen = historyusecase.NewRecordingGenerator(gen, repo)
	}
	if rdb != nil {
		gen = cache.NewCachingGenerator(rdb, cacheTTL, gen, "generations")
	}
	return gen
}

// NewChatStarter wraps base so that editing-session turns are recorded and instrumented
// like single calls. A nil m or repo skips the corresponding layer.
func NewChatStarter(base usecase.ChatStarter, m *metrics.Metrics, repo historyusecase.GenerationRepository) usecase.ChatStarter {
	starter := base
	if m != nil {
		starter = metrics.NewInstrumentedChatStarter(starter, m)
	}
	if repo != nil {
		starter = historyusecase.NewRecordingChatStarter(starter, repo)
	}
	return starter
}

// ModelsFromConfig maps the configured model IDs; empty entries fall back to the usecase defaults.
func ModelsFromConfig(cfg *config.Config) usecase.Models {
	return usecase.Models{
		Flash:    cfg.ModelFlash,
		Pro:      cfg.ModelPro,
		Image:    cfg.ModelImage,
		ImagePro: cfg.ModelImagePro,
	}
}

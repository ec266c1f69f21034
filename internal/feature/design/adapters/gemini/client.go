// Package gemini はGoogle Gemini APIを使用した画像生成・解析クライアントを提供します。
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"designkit_backend/internal/feature/design/usecase"
	platformhttp "designkit_backend/internal/platform/http"
	"designkit_backend/internal/shared/ratelimiter"
)

// ErrMissingAPIKey はAPIキーが設定されていない状態で呼び出したことを示します。
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not set")

// Client はGoogle Gemini APIを呼び出します。
// APIキーがない場合も生成には成功し、各呼び出しで ErrMissingAPIKey を返します。
type Client struct {
	client  *genai.Client
	initErr error
	limiter ratelimiter.Limiter
}

// ClientがGeneratorとChatStarterを実装していることをコンパイル時に検証します。
var (
	_ usecase.Generator   = (*Client)(nil)
	_ usecase.ChatStarter = (*Client)(nil)
)

// NewClient はAPIキーを使用してClientの新しいインスタンスを生成します。
// limiter が nil の場合は cfg.RequestsPerMinute から生成します。
func NewClient(ctx context.Context, cfg Config, limiter ratelimiter.Limiter) *Client {
	if limiter == nil {
		limiter = ratelimiter.NewRateLimiter(cfg.RequestsPerMinute, time.Minute)
	}
	c := &Client{limiter: limiter}
	if cfg.APIKey == "" {
		slog.Warn("GEMINI_API_KEY is not set; model calls will fail until it is configured")
		c.initErr = ErrMissingAPIKey
		return c
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  platformhttp.NewHTTPClient(timeout),
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		c.initErr = fmt.Errorf("failed to create gemini client: %w", err)
		return c
	}
	c.client = client
	return c
}

// Ready はクライアントが呼び出し可能かどうかを返します。
func (c *Client) Ready() error {
	return c.initErr
}

// Generate はモデルを1回呼び出し、レスポンスをパート単位に変換して返します。
// 呼び出しの失敗は genai が返したエラーをそのまま返します。
func (c *Client) Generate(ctx context.Context, req *usecase.GenerateRequest) (*usecase.GenerateResponse, error) {
	if c.initErr != nil {
		return nil, c.initErr
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := c.client.Models.GenerateContent(ctx, req.Model, toContents(req.Parts), toConfig(req))
	if err != nil {
		return nil, err
	}
	return fromResponse(resp), nil
}

// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// Check は依存コンポーネント1つの状態を確認する関数です。
type Check func(ctx context.Context) error

// HealthHandler は /healthz を処理します。
// 登録されたチェックが1つでも失敗した場合は 503 を返します。
type HealthHandler struct {
	checks  map[string]Check
	timeout time.Duration
}

// NewHealthHandler は HealthHandler を生成します。
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{checks: map[string]Check{}, timeout: 2 * time.Second}
}

// Register は名前付きのチェックを追加します。
func (h *HealthHandler) Register(name string, check Check) *HealthHandler {
	h.checks[name] = check
	return h
}

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	if c.Request.Method == http.MethodOptions {
		c.Status(http.StatusNoContent)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	components := make(map[string]string, len(names))
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			components[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		components[name] = "ok"
	}

	if c.Request.Method == http.MethodHead {
		c.Status(status)
		return
	}
	body := gin.H{"status": "ok"}
	if status != http.StatusOK {
		body["status"] = "unavailable"
	}
	if len(components) > 0 {
		body["components"] = components
	}
	c.JSON(status, body)
}

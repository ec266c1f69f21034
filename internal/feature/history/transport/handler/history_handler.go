// Package handler はhistoryフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"designkit_backend/internal/feature/history/domain/entity"
	"designkit_backend/internal/feature/history/transport/http/dto"
)

// HistoryUsecase は生成履歴参照のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type HistoryUsecase interface {
	ListRecent(ctx context.Context, operation string, limit int) ([]entity.GenerationRecord, error)
}

// HistoryHandler は生成履歴のHTTPリクエストを処理します。
type HistoryHandler struct {
	uc HistoryUsecase
}

// NewHistoryHandler はHistoryHandlerの新しいインスタンスを生成します。
func NewHistoryHandler(uc HistoryUsecase) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

// List は直近の生成履歴をJSONで返します。
//
// エンドポイント例:
// GET /v1/generations?operation=generate_image&limit=20
func (h *HistoryHandler) List(c *gin.Context) {
	limit := 0
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "limit must be an integer"})
			return
		}
		limit = n
	}

	records, err := h.uc.ListRecent(c.Request.Context(), c.Query("operation"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	out := make([]dto.GenerationResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.GenerationResponse{
			ID:            r.ID,
			Operation:     r.Operation,
			Model:         r.Model,
			Status:        r.Status,
			ImageReturned: r.ImageReturned,
			DurationMs:    r.DurationMs,
			Error:         r.Error,
			CreatedAt:     r.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, out)
}

// Package handler はdesignフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"designkit_backend/internal/feature/design/domain/entity"
	"designkit_backend/internal/feature/design/transport/http/dto"
	"designkit_backend/internal/feature/design/usecase"
	"designkit_backend/internal/platform/imageio"
)

// writeError はエラーの種類に応じたステータスでレスポンスを返します。
// 入力エラーは 400、存在しないセッションは 404、それ以外（上流の失敗）は 502 です。
func writeError(c *gin.Context, err error, failure string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, imageio.ErrUnsupportedFormat):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "セッションが見つかりません"})
	default:
		slog.Error(failure, "error", err, "path", c.FullPath())
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: failure})
	}
}

// badRequest はリクエストのバインドに失敗した場合のレスポンスを返します。
func badRequest(c *gin.Context, err error) {
	slog.Warn("リクエストのバリデーションに失敗", "error", err, "remote_addr", c.ClientIP())
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
}

// readImage はアップロードされた画像を読み込み、リモートモデルが扱える形式に正規化します。
func readImage(fh *multipart.FileHeader) (*entity.Image, error) {
	if fh == nil {
		return nil, nil
	}
	if fh.Size > usecase.MaxImageSize {
		return nil, fmt.Errorf("%w: image size exceeds maximum of %d bytes", usecase.ErrInvalidInput, usecase.MaxImageSize)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("画像ファイルのクローズに失敗", "error", err)
		}
	}()

	data, err := io.ReadAll(io.LimitReader(f, usecase.MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	img, err := imageio.Normalize(data)
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func toImageResponse(img *entity.Image) *dto.ImageResponse {
	if img.IsEmpty() {
		return nil
	}
	return &dto.ImageResponse{
		Data:     base64.StdEncoding.EncodeToString(img.Data),
		MIMEType: img.MIMEType,
	}
}

func toGeneratedImageResponse(g *entity.GeneratedImage) dto.GeneratedImageResponse {
	queries := g.SearchQueries
	if queries == nil {
		queries = []string{}
	}
	return dto.GeneratedImageResponse{
		Image:         toImageResponse(g.Image),
		Description:   g.Description,
		SearchQueries: queries,
	}
}

func toObjectResponses(objects []entity.RecognizedObject) []dto.RecognizedObject {
	out := make([]dto.RecognizedObject, 0, len(objects))
	for _, o := range objects {
		out = append(out, dto.RecognizedObject{
			Label:      o.Label,
			Confidence: o.Confidence,
			BoundingBox: dto.BoundingBox{
				MinX: o.BoundingBox.MinX,
				MinY: o.BoundingBox.MinY,
				MaxX: o.BoundingBox.MaxX,
				MaxY: o.BoundingBox.MaxY,
			},
			Category: string(o.Category),
		})
	}
	return out
}

func toObjectEntities(objects []dto.RecognizedObject) []entity.RecognizedObject {
	out := make([]entity.RecognizedObject, 0, len(objects))
	for _, o := range objects {
		out = append(out, entity.RecognizedObject{
			Label:       o.Label,
			Confidence:  o.Confidence,
			BoundingBox: entity.BoundingBox(o.BoundingBox),
			Category:    entity.ParseObjectCategory(o.Category),
		})
	}
	return out
}

func toRoomAnalysisResponse(a *entity.RoomAnalysis) dto.RoomAnalysis {
	return dto.RoomAnalysis{
		RoomType:             a.RoomType,
		Dimensions:           dto.RoomDimensions(a.Dimensions),
		LightingSuggestions:  a.LightingSuggestions,
		StyleRecommendations: a.StyleRecommendations,
		DetectedFeatures:     a.DetectedFeatures,
	}
}

func toRoomAnalysisEntity(a dto.RoomAnalysis) entity.RoomAnalysis {
	return entity.RoomAnalysis{
		RoomType:             a.RoomType,
		Dimensions:           entity.RoomDimensions(a.Dimensions),
		LightingSuggestions:  a.LightingSuggestions,
		StyleRecommendations: a.StyleRecommendations,
		DetectedFeatures:     a.DetectedFeatures,
	}
}

func toProductResponses(products []entity.ProductRecommendation) []dto.ProductRecommendation {
	out := make([]dto.ProductRecommendation, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ProductRecommendation(p))
	}
	return out
}

func toVariationResponses(variations []entity.StyleVariation) []dto.StyleVariation {
	out := make([]dto.StyleVariation, 0, len(variations))
	for _, v := range variations {
		out = append(out, dto.StyleVariation{
			ID:          v.ID,
			Name:        v.Name,
			Description: v.Description,
			Image:       toImageResponse(v.Image),
		})
	}
	return out
}

func toMessageResponses(messages []entity.Message) []dto.Message {
	out := make([]dto.Message, 0, len(messages))
	for _, m := range messages {
		out = append(out, dto.Message(m))
	}
	return out
}

func toTurnResponses(turns []entity.Turn) []dto.Turn {
	out := make([]dto.Turn, 0, len(turns))
	for _, t := range turns {
		out = append(out, dto.Turn{
			Prompt:      t.Prompt,
			HasImage:    t.HasImage,
			AspectRatio: t.AspectRatio,
			Resolution:  t.Resolution,
			SentAt:      t.SentAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}

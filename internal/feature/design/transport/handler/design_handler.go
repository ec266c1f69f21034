package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"designkit_backend/internal/feature/design/domain/entity"
	"designkit_backend/internal/feature/design/transport/http/dto"
	"designkit_backend/internal/feature/design/usecase"
)

// AnalysisUsecase は部屋の解析系ユースケースのインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type AnalysisUsecase interface {
	RecognizeObjects(ctx context.Context, img *entity.Image, minConfidence float64) ([]entity.RecognizedObject, error)
	AnalyzeRoom(ctx context.Context, img *entity.Image) (*entity.RoomAnalysis, error)
	GenerateFloorPlan(ctx context.Context, img *entity.Image, objects []entity.RecognizedObject) (*entity.FloorPlan, error)
	GetProductRecommendations(ctx context.Context, analysis entity.RoomAnalysis, q usecase.ProductQuery) ([]entity.ProductRecommendation, error)
}

// DesignHandler は部屋の解析系HTTPリクエストを処理します。
type DesignHandler struct {
	uc AnalysisUsecase
}

// NewDesignHandler はDesignHandlerの新しいインスタンスを生成します。
func NewDesignHandler(uc AnalysisUsecase) *DesignHandler {
	return &DesignHandler{uc: uc}
}

// RecognizeObjects は部屋画像からオブジェクトを検出します。
//
// エンドポイント: POST /v1/design/objects
// Content-Type: multipart/form-data
// フィールド: image, min_confidence（任意、既定 0.5）
func (h *DesignHandler) RecognizeObjects(c *gin.Context) {
	var form dto.ObjectsForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, err)
		return
	}
	img, err := readImage(form.Image)
	if err != nil {
		writeError(c, err, "画像の読み込みに失敗しました")
		return
	}

	objects, err := h.uc.RecognizeObjects(c.Request.Context(), img, form.MinConfidence)
	if err != nil {
		writeError(c, err, "オブジェクト認識に失敗しました")
		return
	}
	c.JSON(http.StatusOK, toObjectResponses(objects))
}

// AnalyzeRoom は部屋の種類・寸法・照明やスタイルの提案を返します。
//
// エンドポイント: POST /v1/design/analysis
func (h *DesignHandler) AnalyzeRoom(c *gin.Context) {
	var form dto.ImageForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, err)
		return
	}
	img, err := readImage(form.Image)
	if err != nil {
		writeError(c, err, "画像の読み込みに失敗しました")
		return
	}

	analysis, err := h.uc.AnalyzeRoom(c.Request.Context(), img)
	if err != nil {
		writeError(c, err, "部屋の解析に失敗しました")
		return
	}
	c.JSON(http.StatusOK, toRoomAnalysisResponse(analysis))
}

// GenerateFloorPlan は部屋画像から間取り図を生成します。
// objects が省略された場合は先にオブジェクト認識を行います。
//
// エンドポイント: POST /v1/design/floorplan
func (h *DesignHandler) GenerateFloorPlan(c *gin.Context) {
	var form dto.FloorPlanForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, err)
		return
	}
	img, err := readImage(form.Image)
	if err != nil {
		writeError(c, err, "画像の読み込みに失敗しました")
		return
	}

	ctx := c.Request.Context()
	var objects []entity.RecognizedObject
	if form.Objects != "" {
		var in []dto.RecognizedObject
		if err := json.Unmarshal([]byte(form.Objects), &in); err != nil {
			badRequest(c, fmt.Errorf("objects must be a JSON array: %w", err))
			return
		}
		objects = toObjectEntities(in)
	} else {
		objects, err = h.uc.RecognizeObjects(ctx, img, usecase.DefaultMinConfidence)
		if err != nil {
			writeError(c, err, "オブジェクト認識に失敗しました")
			return
		}
	}

	plan, err := h.uc.GenerateFloorPlan(ctx, img, objects)
	if err != nil {
		writeError(c, err, "間取り図の生成に失敗しました")
		return
	}
	c.JSON(http.StatusOK, dto.FloorPlan{
		Walls:      plan.Walls,
		Doors:      plan.Doors,
		Windows:    plan.Windows,
		Dimensions: plan.Dimensions,
	})
}

// RecommendProducts は部屋の解析結果に合う商品を検索グラウンディングで推薦します。
//
// エンドポイント: POST /v1/design/products
// Content-Type: application/json
func (h *DesignHandler) RecommendProducts(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	products, err := h.uc.GetProductRecommendations(c.Request.Context(), toRoomAnalysisEntity(req.Analysis), usecase.ProductQuery{
		Budget:     entity.BudgetTier(req.Budget),
		Style:      req.Style,
		Priorities: req.Priorities,
	})
	if err != nil {
		writeError(c, err, "商品推薦に失敗しました")
		return
	}
	c.JSON(http.StatusOK, toProductResponses(products))
}

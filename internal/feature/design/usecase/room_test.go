package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"designkit_backend/internal/feature/design/domain/entity"
	"designkit_backend/internal/feature/design/usecase"
)

func TestDesignUsecase_AnalyzeRoom(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		raw         string
		genErr      error
		expected    *entity.RoomAnalysis
		expectedErr error
	}{
		{
			name: "success: full analysis",
			raw: `{"room_type": "living room",
				"dimensions": {"estimated_width": 4.5, "estimated_length": 6, "estimated_height": 2.7},
				"lighting_suggestions": ["add floor lamp"],
				"style_recommendations": ["scandinavian", "japandi"],
				"detected_features": ["bay window"]}`,
			expected: &entity.RoomAnalysis{
				RoomType:             "living room",
				Dimensions:           entity.RoomDimensions{Width: 4.5, Length: 6, Height: 2.7},
				LightingSuggestions:  []string{"add floor lamp"},
				StyleRecommendations: []string{"scandinavian", "japandi"},
				DetectedFeatures:     []string{"bay window"},
			},
		},
		{
			name: "success: missing fields fall back to defaults",
			raw:  `{"dimensions": {"estimated_width": 3}}`,
			expected: &entity.RoomAnalysis{
				RoomType:             "unknown",
				Dimensions:           entity.RoomDimensions{Width: 3},
				LightingSuggestions:  []string{},
				StyleRecommendations: []string{},
				DetectedFeatures:     []string{},
			},
		},
		{
			name: "success: malformed JSON yields empty analysis",
			raw:  `room_type: kitchen`,
			expected: func() *entity.RoomAnalysis {
				a := entity.EmptyRoomAnalysis()
				return &a
			}(),
		},
		{
			name:        "error: generator failure propagates",
			genErr:      ErrAPI,
			expectedErr: ErrAPI,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &mockGenerator{GenerateFunc: func(ctx context.Context, req *usecase.GenerateRequest) (*usecase.GenerateResponse, error) {
				if tt.genErr != nil {
					return nil, tt.genErr
				}
				return textResponse(tt.raw), nil
			}}
			uc := usecase.NewDesignUsecase(gen, usecase.Options{})

			got, err := uc.AnalyzeRoom(ctx, testImage())
			if tt.expectedErr != nil {
				assert.True(t, errors.Is(err, tt.expectedErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)

			req := gen.LastRequest()
			assert.Equal(t, usecase.OpAnalyzeRoom, req.Operation)
			require.NotNil(t, req.ThinkingBudget)
			assert.Equal(t, int32(128), *req.ThinkingBudget)
		})
	}
}

func TestDesignUsecase_GenerateFloorPlan(t *testing.T) {
	ctx := context.Background()

	t.Run("success: missing doors decode to empty list", func(t *testing.T) {
		gen := &mockGenerator{GenerateFunc: func(ctx context.Context, req *usecase.GenerateRequest) (*usecase.GenerateResponse, error) {
			return textResponse(`{
				"walls": [{"start": {"x": 0, "y": 0}, "end": {"x": 5, "y": 0}}],
				"windows": [{"position": {"x": 3, "y": 0}, "width": 1.2, "height": 1.5}],
				"dimensions": {"width": 5.0, "length": 4.0}
			}`), nil
		}}
		uc := usecase.NewDesignUsecase(gen, usecase.Options{})

		plan, err := uc.GenerateFloorPlan(ctx, testImage(), nil)
		require.NoError(t, err)
		assert.NotNil(t, plan.Doors)
		assert.Empty(t, plan.Doors)
		require.Len(t, plan.Walls, 1)
		require.Len(t, plan.Windows, 1)
		assert.Equal(t, 1.2, plan.Windows[0]["width"])
		assert.Equal(t, map[string]float64{"width": 5, "length": 4}, plan.Dimensions)
	})

	t.Run("success: malformed JSON yields empty plan", func(t *testing.T) {
		gen := &mockGenerator{GenerateFunc: func(ctx context.Context, req *usecase.GenerateRequest) (*usecase.GenerateResponse, error) {
			return textResponse(`{"walls": [`), nil
		}}
		uc := usecase.NewDesignUsecase(gen, usecase.Options{})

		plan, err := uc.GenerateFloorPlan(ctx, testImage(), nil)
		require.NoError(t, err)
		assert.Equal(t, entity.EmptyFloorPlan(), *plan)
	})

	t.Run("success: architectural objects are summarised into the prompt", func(t *testing.T) {
		gen := &mockGenerator{GenerateFunc: func(ctx context.Context, req *usecase.GenerateRequest) (*usecase.GenerateResponse, error) {
			return textResponse(`{}`), nil
		}}
		uc := usecase.NewDesignUsecase(gen, usecase.Options{})
		objects := []entity.RecognizedObject{
			{Label: "window", BoundingBox: entity.BoundingBox{MinX: 0.25, MinY: 0.1}},
			{Label: "sofa", BoundingBox: entity.BoundingBox{MinX: 0.5, MinY: 0.5}},
		}

		_, err := uc.GenerateFloorPlan(ctx, testImage(), objects)
		require.NoError(t, err)

		req := gen.LastRequest()
		assert.Equal(t, "gemini-2.5-pro", req.Model)
		require.Len(t, req.Parts, 2)
		assert.NotNil(t, req.Parts[0].Image)
		prompt := req.Parts[1].Text
		assert.Contains(t, prompt, "Detected features: window at (0.25, 0.10)")
		assert.False(t, strings.Contains(prompt, "sofa"))
	})
}

func TestDesignUsecase_GetProductRecommendations(t *testing.T) {
	ctx := context.Background()
	analysis := entity.RoomAnalysis{
		RoomType:             "bedroom",
		Dimensions:           entity.RoomDimensions{Width: 3.5, Length: 4},
		StyleRecommendations: []string{"minimalist"},
	}

	t.Run("success: products decoded with search grounding", func(t *testing.T) {
		gen := &mockGenerator{GenerateFunc: func(ctx context.Context, req *usecase.GenerateRequest) (*usecase.GenerateResponse, error) {
			return textResponse(`[{"name": "Oak Bed", "brand": "Muji", "price_range": "$800 - $1200", "retailer": "Muji", "fit_rationale": "calm", "search_query": "muji oak bed"}, {"name": "Lamp"}]`), nil
		}}
		uc := usecase.NewDesignUsecase(gen, usecase.Options{})

		products, err := uc.GetProductRecommendations(ctx, analysis, usecase.ProductQuery{Priorities: []string{"comfort", "durability"}})
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "Muji", products[0].Brand)
		assert.Equal(t, entity.ProductRecommendation{Name: "Lamp"}, products[1])

		req := gen.LastRequest()
		assert.True(t, req.GoogleSearch)
		assert.Equal(t, []string{usecase.ModalityText}, req.ResponseModalities)
		assert.Equal(t, usecase.MIMETypeJSON, req.ResponseMIMEType)
		prompt := req.Parts[0].Text
		assert.Contains(t, prompt, "Room Type: bedroom")
		assert.Contains(t, prompt, "Room Dimensions: 3.5m x 4m")
		assert.Contains(t, prompt, "Budget Range: mid-range $500-2000")
		assert.Contains(t, prompt, "User Preferred Style: Not specified")
		assert.Contains(t, prompt, "Priorities: comfort, durability")
	})

	t.Run("success: malformed JSON yields empty list", func(t *testing.T) {
		gen := &mockGenerator{GenerateFunc: func(ctx context.Context, req *usecase.GenerateRequest) (*usecase.GenerateResponse, error) {
			return textResponse("Here are some great products!"), nil
		}}
		uc := usecase.NewDesignUsecase(gen, usecase.Options{})

		products, err := uc.GetProductRecommendations(ctx, analysis, usecase.ProductQuery{Budget: entity.BudgetLuxury})
		require.NoError(t, err)
		assert.Empty(t, products)
		assert.Contains(t, gen.LastRequest().Parts[0].Text, "Budget Range: luxury over $5000")
	})
}

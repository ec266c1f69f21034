package usecase

import (
	"context"

	"designkit_backend/internal/feature/design/domain/entity"
)

// AnalyzeRoom は部屋の種類・寸法・照明やスタイルの提案を推定します。
// JSONの解析に失敗した場合はゼロ値の分析結果を返します。
func (u *designUsecase) AnalyzeRoom(ctx context.Context, img *entity.Image) (*entity.RoomAnalysis, error) {
	if err := validateImage(img); err != nil {
		return nil, err
	}
	raw, err := u.generateJSON(ctx, &GenerateRequest{
		Operation:      OpAnalyzeRoom,
		Model:          u.models.Flash,
		Parts:          []Part{TextPart(roomAnalysisPrompt), ImagePart(*img)},
		ThinkingBudget: budget(analysisThinkingBudget),
	})
	if err != nil {
		return nil, err
	}
	analysis := decodeRoomAnalysis(raw)
	return &analysis, nil
}

// GenerateFloorPlan は部屋画像から2D間取りを生成します。
// objects のうち建築要素は位置情報としてプロンプトに含めます。
func (u *designUsecase) GenerateFloorPlan(ctx context.Context, img *entity.Image, objects []entity.RecognizedObject) (*entity.FloorPlan, error) {
	if err := validateImage(img); err != nil {
		return nil, err
	}
	raw, err := u.generateJSON(ctx, &GenerateRequest{
		Operation:      OpFloorPlan,
		Model:          u.models.Pro,
		Parts:          []Part{ImagePart(*img), TextPart(floorPlanPrompt(objects))},
		ThinkingBudget: budget(floorPlanThinkingBudget),
	})
	if err != nil {
		return nil, err
	}
	plan := decodeFloorPlan(raw)
	return &plan, nil
}

package usecase

import (
	"context"
	"fmt"

	"designkit_backend/internal/feature/design/domain/entity"
)

// ProductQuery は商品推薦の条件です。
type ProductQuery struct {
	Budget     entity.BudgetTier
	Style      string
	Priorities []string
}

// GetProductRecommendations は部屋の分析結果をもとに、Google検索で実在する商品を推薦します。
func (u *designUsecase) GetProductRecommendations(ctx context.Context, analysis entity.RoomAnalysis, q ProductQuery) ([]entity.ProductRecommendation, error) {
	if q.Budget == "" {
		q.Budget = entity.BudgetMedium
	}
	resp, err := u.gen.Generate(ctx, &GenerateRequest{
		Operation:          OpProductRecommend,
		Model:              u.models.ImagePro,
		Parts:              []Part{TextPart(productPrompt(analysis, q))},
		ResponseModalities: []string{ModalityText},
		ResponseMIMEType:   MIMETypeJSON,
		GoogleSearch:       true,
	})
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", OpProductRecommend, err)
	}
	return decodeProducts(resp.Text()), nil
}

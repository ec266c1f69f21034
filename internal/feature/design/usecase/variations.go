package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"designkit_backend/internal/feature/design/domain/entity"
)

// GenerateStyleVariations はベーススタイルに固定プリセットを組み合わせたバリエーションを生成します。
// 最大 min(n, 5) 件をプリセット順に生成し、1件の失敗や画像なしの応答は他の生成を妨げずにスキップします。
func (u *designUsecase) GenerateStyleVariations(ctx context.Context, img *entity.Image, baseStyle string, n int, resolution string) ([]entity.StyleVariation, error) {
	if err := validateImage(img); err != nil {
		return nil, err
	}
	if err := validatePrompt("base style", baseStyle); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: number of variations must be positive", ErrInvalidInput)
	}
	presets := entity.StylePresets[:min(n, entity.MaxStyleVariations)]
	resolution = orDefault(resolution, DefaultResolution)

	slots := make([]*entity.StyleVariation, len(presets))
	var g errgroup.Group
	g.SetLimit(u.concurrency)
	for i, preset := range presets {
		g.Go(func() error {
			v, err := u.generateVariation(ctx, img, baseStyle, preset, resolution)
			if err != nil {
				slog.Error("スタイルバリエーションの生成に失敗", "variation", preset.ID, "error", err)
				return nil
			}
			slots[i] = v
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	variations := make([]entity.StyleVariation, 0, len(slots))
	for _, v := range slots {
		if v != nil {
			variations = append(variations, *v)
		}
	}
	return variations, nil
}

func (u *designUsecase) generateVariation(ctx context.Context, img *entity.Image, baseStyle string, preset entity.StylePreset, resolution string) (*entity.StyleVariation, error) {
	out, err := u.generateImage(ctx, &GenerateRequest{
		Operation: OpStyleVariation,
		Model:     u.models.ImagePro,
		Parts:     []Part{ImagePart(*img), TextPart(variationPrompt(baseStyle, preset))},
		Image:     &ImageConfig{AspectRatio: DefaultAspectRatio, Size: resolution},
	})
	if err != nil {
		return nil, err
	}
	if !out.HasImage() {
		slog.Warn("スタイルバリエーションの応答に画像が含まれていません", "variation", preset.ID)
		return nil, nil
	}
	desc := out.Description
	if desc == "" {
		desc = baseStyle + " " + preset.Modifier
	}
	return &entity.StyleVariation{
		ID:          preset.ID,
		Name:        preset.Name,
		Description: desc,
		Image:       out.Image,
	}, nil
}

package usecase

import (
	"context"
	"fmt"
	"strings"

	"designkit_backend/internal/feature/design/domain/entity"
)

// Options はdesignUsecaseの構成です。ゼロ値のフィールドは既定値で補完されます。
type Options struct {
	Models Models
	// Detector はオブジェクト検出の実装です。nil の場合は Flash モデルで検出します。
	Detector ObjectDetector
	// VariationConcurrency はスタイルバリエーションを並行生成する上限です。
	VariationConcurrency int
}

// designUsecase は部屋画像の解析・生成のビジネスロジックを提供します。
type designUsecase struct {
	gen         Generator
	detector    ObjectDetector
	models      Models
	concurrency int
}

// NewDesignUsecase はdesignUsecaseの新しいインスタンスを生成します。
func NewDesignUsecase(gen Generator, opts Options) *designUsecase {
	models := opts.Models.withDefaults()
	detector := opts.Detector
	if detector == nil {
		detector = NewModelObjectDetector(gen, models.Flash)
	}
	concurrency := opts.VariationConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	return &designUsecase{gen: gen, detector: detector, models: models, concurrency: concurrency}
}

// Models は使用中のモデルIDを返します。
func (u *designUsecase) Models() Models {
	return u.models
}

func validateImage(img *entity.Image) error {
	if img.IsEmpty() {
		return fmt.Errorf("%w: image data is empty", ErrInvalidInput)
	}
	if len(img.Data) > MaxImageSize {
		return fmt.Errorf("%w: image size exceeds maximum of %d bytes", ErrInvalidInput, MaxImageSize)
	}
	return nil
}

func validatePrompt(name, s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, name)
	}
	return nil
}

// generateImage は画像出力を伴う呼び出しを行い、レスポンスを GeneratedImage に変換します。
func (u *designUsecase) generateImage(ctx context.Context, req *GenerateRequest) (*entity.GeneratedImage, error) {
	req.ResponseModalities = []string{ModalityText, ModalityImage}
	resp, err := u.gen.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", req.Operation, err)
	}
	desc, img := resp.Decode()
	return &entity.GeneratedImage{
		Image:         img,
		Description:   desc,
		SearchQueries: resp.SearchQueries,
	}, nil
}

// generateJSON はJSONレスポンスを要求する呼び出しを行い、推論パートを除いたテキストを返します。
func (u *designUsecase) generateJSON(ctx context.Context, req *GenerateRequest) (string, error) {
	req.ResponseMIMEType = MIMETypeJSON
	resp, err := u.gen.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%s failed: %w", req.Operation, err)
	}
	return resp.Text(), nil
}

package usecase

import (
	"context"
	"fmt"
	"math"

	"designkit_backend/internal/feature/design/domain/entity"
)

// modelObjectDetector は生成モデルにJSONで検出結果を返させる ObjectDetector です。
type modelObjectDetector struct {
	gen   Generator
	model string
}

var _ ObjectDetector = (*modelObjectDetector)(nil)

// NewModelObjectDetector は生成モデルを使った ObjectDetector を生成します。
func NewModelObjectDetector(gen Generator, model string) *modelObjectDetector {
	return &modelObjectDetector{gen: gen, model: model}
}

// DetectObjects は画像内のオブジェクトを検出します。JSONの解析に失敗した場合は空のスライスを返します。
func (d *modelObjectDetector) DetectObjects(ctx context.Context, img entity.Image) ([]entity.RecognizedObject, error) {
	resp, err := d.gen.Generate(ctx, &GenerateRequest{
		Operation:        OpRecognizeObjects,
		Model:            d.model,
		Parts:            []Part{TextPart(recognitionPrompt), ImagePart(img)},
		ResponseMIMEType: MIMETypeJSON,
		ThinkingBudget:   budget(recognitionThinkingBudget),
	})
	if err != nil {
		return nil, err
	}
	return decodeObjects(resp.Text()), nil
}

// RecognizeObjects は部屋画像から建築要素・家具・設備を検出し、信頼度が minConfidence 以上のものだけを返します。
func (u *designUsecase) RecognizeObjects(ctx context.Context, img *entity.Image, minConfidence float64) ([]entity.RecognizedObject, error) {
	if err := validateImage(img); err != nil {
		return nil, err
	}
	if math.IsNaN(minConfidence) || minConfidence < 0 || minConfidence > 1 {
		return nil, fmt.Errorf("%w: confidence threshold must be between 0 and 1", ErrInvalidInput)
	}
	objects, err := u.detector.DetectObjects(ctx, *img)
	if err != nil {
		return nil, fmt.Errorf("object detection failed: %w", err)
	}
	return FilterByConfidence(objects, minConfidence), nil
}

// FilterByConfidence は信頼度が threshold 以上（境界値を含む）のオブジェクトを返します。
func FilterByConfidence(objects []entity.RecognizedObject, threshold float64) []entity.RecognizedObject {
	out := make([]entity.RecognizedObject, 0, len(objects))
	for _, o := range objects {
		if o.Confidence >= threshold {
			out = append(out, o)
		}
	}
	return out
}

// Package vision はGoogle Cloud Vision APIを使用したオブジェクト検出クライアントを提供します。
package vision

import (
	"context"
	"fmt"
	"strings"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"designkit_backend/internal/feature/design/domain/entity"
	"designkit_backend/internal/feature/design/usecase"
)

// ObjectLocalizer はVision APIのOBJECT_LOCALIZATIONでオブジェクトを検出します。
type ObjectLocalizer struct {
	client *gvision.ImageAnnotatorClient
}

// ObjectLocalizerがObjectDetectorを実装していることをコンパイル時に検証します。
var _ usecase.ObjectDetector = (*ObjectLocalizer)(nil)

// NewObjectLocalizer はADCを使用してObjectLocalizerの新しいインスタンスを生成します。
func NewObjectLocalizer(ctx context.Context) (*ObjectLocalizer, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &ObjectLocalizer{client: client}, nil
}

// Close はVision APIクライアントを解放します。
func (v *ObjectLocalizer) Close() error {
	return v.client.Close()
}

// DetectObjects は画像内のオブジェクトを検出します。
func (v *ObjectLocalizer) DetectObjects(ctx context.Context, img entity.Image) ([]entity.RecognizedObject, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: img.Data},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_OBJECT_LOCALIZATION},
				},
			},
		},
	}

	resp, err := v.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("vision API request failed: %w", err)
	}
	if len(resp.Responses) == 0 {
		return []entity.RecognizedObject{}, nil
	}
	if resp.Responses[0].Error != nil {
		return nil, fmt.Errorf("vision API error: %s", resp.Responses[0].Error.Message)
	}
	return ToRecognizedObjects(resp.Responses[0].LocalizedObjectAnnotations), nil
}

// ToRecognizedObjects はVision APIの検出結果をドメインモデルに変換します。
func ToRecognizedObjects(annotations []*visionpb.LocalizedObjectAnnotation) []entity.RecognizedObject {
	out := make([]entity.RecognizedObject, 0, len(annotations))
	for _, a := range annotations {
		if a == nil {
			continue
		}
		label := strings.ToLower(a.GetName())
		if label == "" {
			label = "unknown"
		}
		out = append(out, entity.RecognizedObject{
			Label:       label,
			Confidence:  float64(a.GetScore()),
			BoundingBox: boundingBox(a.GetBoundingPoly()),
			Category:    categorize(label),
		})
	}
	return out
}

// boundingBox は正規化頂点を囲む矩形を求めます。頂点がない場合は画像全体です。
func boundingBox(poly *visionpb.BoundingPoly) entity.BoundingBox {
	vs := poly.GetNormalizedVertices()
	if len(vs) == 0 {
		return entity.BoundingBox{MaxX: 1, MaxY: 1}
	}
	box := entity.BoundingBox{MinX: 1, MinY: 1}
	for _, v := range vs {
		x, y := float64(v.GetX()), float64(v.GetY())
		box.MinX = min(box.MinX, x)
		box.MinY = min(box.MinY, y)
		box.MaxX = max(box.MaxX, x)
		box.MaxY = max(box.MaxY, y)
	}
	return box
}

// Vision APIのラベルは分類を持たないため、キーワードで割り当てます。
var categoryKeywords = []struct {
	category entity.ObjectCategory
	words    []string
}{
	{entity.CategoryArchitectural, []string{"wall", "floor", "ceiling", "column", "beam", "stair"}},
	{entity.CategoryFixture, []string{"window", "door", "outlet", "switch", "vent", "light", "lamp", "sink", "faucet"}},
	{entity.CategoryFurniture, []string{"table", "chair", "couch", "sofa", "bed", "desk", "shelf", "cabinet", "furniture", "stool", "bench", "drawer", "wardrobe"}},
}

func categorize(label string) entity.ObjectCategory {
	for _, c := range categoryKeywords {
		for _, w := range c.words {
			if strings.Contains(label, w) {
				return c.category
			}
		}
	}
	return entity.CategoryOther
}

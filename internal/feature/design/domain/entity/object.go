package entity

import "strings"

// BoundingBox は正規化座標（0〜1）の矩形です。min < max の検証は行いません。
type BoundingBox struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// ObjectCategory は検出オブジェクトの分類です。
type ObjectCategory string

const (
	CategoryArchitectural ObjectCategory = "architectural"
	CategoryFurniture     ObjectCategory = "furniture"
	CategoryFixture       ObjectCategory = "fixture"
	CategoryOther         ObjectCategory = "other"
)

// ParseObjectCategory は文字列を分類に変換します。未知の値や空文字は CategoryOther になります。
func ParseObjectCategory(s string) ObjectCategory {
	switch c := ObjectCategory(strings.ToLower(strings.TrimSpace(s))); c {
	case CategoryArchitectural, CategoryFurniture, CategoryFixture:
		return c
	default:
		return CategoryOther
	}
}

// RecognizedObject は画像内で検出されたオブジェクトです。
type RecognizedObject struct {
	Label       string         `json:"label"`
	Confidence  float64        `json:"confidence"`
	BoundingBox BoundingBox    `json:"bounding_box"`
	Category    ObjectCategory `json:"category"`
}

// architecturalLabels は間取り生成のコンテキストに含めるラベルのキーワードです。
var architecturalLabels = []string{"wall", "door", "window", "floor"}

// IsArchitectural はラベルが壁・ドア・窓・床のいずれかを含むかどうかを返します。
func (o RecognizedObject) IsArchitectural() bool {
	label := strings.ToLower(o.Label)
	for _, k := range architecturalLabels {
		if strings.Contains(label, k) {
			return true
		}
	}
	return false
}

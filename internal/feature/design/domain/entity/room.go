package entity

// RoomDimensions はモデルが推定した部屋の寸法（メートル）です。検証は行いません。
type RoomDimensions struct {
	Width  float64 `json:"estimated_width"`
	Length float64 `json:"estimated_length"`
	Height float64 `json:"estimated_height"`
}

// RoomAnalysis は1回のJSONレスポンスからデコードされた部屋の分析結果です。
type RoomAnalysis struct {
	RoomType             string         `json:"room_type"`
	Dimensions           RoomDimensions `json:"dimensions"`
	LightingSuggestions  []string       `json:"lighting_suggestions"`
	StyleRecommendations []string       `json:"style_recommendations"`
	DetectedFeatures     []string       `json:"detected_features"`
}

// UnknownRoomType はルームタイプが取得できなかった場合の値です。
const UnknownRoomType = "unknown"

// EmptyRoomAnalysis はデコードに失敗した場合に返すゼロ値の分析結果です。
func EmptyRoomAnalysis() RoomAnalysis {
	return RoomAnalysis{
		RoomType:             UnknownRoomType,
		LightingSuggestions:  []string{},
		StyleRecommendations: []string{},
		DetectedFeatures:     []string{},
	}
}

// FloorPlan は部屋画像から抽出した2D間取りです。
// 各要素は座標を含む緩い型のレコードで、幾何学的な検証は行いません。
type FloorPlan struct {
	Walls      []map[string]any   `json:"walls"`
	Doors      []map[string]any   `json:"doors"`
	Windows    []map[string]any   `json:"windows"`
	Dimensions map[string]float64 `json:"dimensions"`
}

// EmptyFloorPlan は要素を持たない間取りを返します。
func EmptyFloorPlan() FloorPlan {
	return FloorPlan{
		Walls:      []map[string]any{},
		Doors:      []map[string]any{},
		Windows:    []map[string]any{},
		Dimensions: map[string]float64{"width": 0, "length": 0},
	}
}

package dto

// ErrorResponse はエラー時のレスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// ImageResponse はBase64エンコードした画像です。
type ImageResponse struct {
	Data     string `json:"data"`
	MIMEType string `json:"mime_type"`
}

// GeneratedImageResponse は画像生成系の結果です。Image は画像が返されなかった場合 null です。
type GeneratedImageResponse struct {
	Image         *ImageResponse `json:"image"`
	Description   string         `json:"description"`
	SearchQueries []string       `json:"search_queries"`
}

// TextureResponse はシームレステクスチャ生成の結果です。
type TextureResponse struct {
	Image *ImageResponse `json:"image"`
}

// BoundingBox は正規化座標（0〜1）のバウンディングボックスです。
type BoundingBox struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// RecognizedObject は認識されたオブジェクトです。
type RecognizedObject struct {
	Label       string      `json:"label"`
	Confidence  float64     `json:"confidence"`
	BoundingBox BoundingBox `json:"bounding_box"`
	Category    string      `json:"category"`
}

// RoomDimensions は推定された部屋の寸法（メートル）です。
type RoomDimensions struct {
	Width  float64 `json:"estimated_width"`
	Length float64 `json:"estimated_length"`
	Height float64 `json:"estimated_height"`
}

// RoomAnalysis は部屋の解析結果です。商品推薦リクエストの入力にも使います。
type RoomAnalysis struct {
	RoomType             string         `json:"room_type"`
	Dimensions           RoomDimensions `json:"dimensions"`
	LightingSuggestions  []string       `json:"lighting_suggestions"`
	StyleRecommendations []string       `json:"style_recommendations"`
	DetectedFeatures     []string       `json:"detected_features"`
}

// FloorPlan は間取り図です。
type FloorPlan struct {
	Walls      []map[string]any   `json:"walls"`
	Doors      []map[string]any   `json:"doors"`
	Windows    []map[string]any   `json:"windows"`
	Dimensions map[string]float64 `json:"dimensions"`
}

// ProductRecommendation は推薦商品です。
type ProductRecommendation struct {
	Name         string `json:"name"`
	Brand        string `json:"brand"`
	PriceRange   string `json:"price_range"`
	Retailer     string `json:"retailer"`
	FitRationale string `json:"fit_rationale"`
	SearchQuery  string `json:"search_query"`
}

// StyleVariation はスタイルバリエーション1件です。
type StyleVariation struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Image       *ImageResponse `json:"image"`
}

// SessionResponse は作成された編集セッションです。
type SessionResponse struct {
	ID string `json:"id"`
}

// EditResultResponse は編集セッションの1ターンの結果です。
type EditResultResponse struct {
	Image *ImageResponse `json:"image"`
	Text  string         `json:"text"`
}

// Message はリモート側が保持する会話履歴の1エントリです。
type Message struct {
	Role     string `json:"role"`
	Text     string `json:"text"`
	HasImage bool   `json:"has_image"`
}

// Turn はローカルに記録した送信済みターンです。
type Turn struct {
	Prompt      string `json:"prompt"`
	HasImage    bool   `json:"has_image"`
	AspectRatio string `json:"aspect_ratio,omitempty"`
	Resolution  string `json:"resolution,omitempty"`
	SentAt      string `json:"sent_at"` // RFC3339
}

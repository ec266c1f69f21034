// Package dto はdesignフィーチャーのHTTPリクエスト・レスポンスDTOを定義します。
package dto

import "mime/multipart"

// GenerateImageRequest はテキストからの画像生成リクエストです。
type GenerateImageRequest struct {
	Prompt      string `json:"prompt" binding:"required"`
	AspectRatio string `json:"aspect_ratio"`
	Quality     string `json:"quality" binding:"omitempty,oneof=fast pro"`
}

// TextureRequest はシームレステクスチャ生成リクエストです。
type TextureRequest struct {
	Material   string `json:"material" binding:"required"`
	Resolution string `json:"resolution" binding:"omitempty,oneof=1K 2K 4K"`
}

// GroundedImageRequest は検索グラウンディング付き画像生成リクエストです。
type GroundedImageRequest struct {
	Prompt      string `json:"prompt" binding:"required"`
	AspectRatio string `json:"aspect_ratio"`
	Resolution  string `json:"resolution" binding:"omitempty,oneof=1K 2K 4K"`
}

// ProductRequest は商品推薦リクエストです。
type ProductRequest struct {
	Analysis   RoomAnalysis `json:"analysis"`
	Budget     string       `json:"budget" binding:"omitempty,oneof=low medium high luxury"`
	Style      string       `json:"style"`
	Priorities []string     `json:"priorities"`
}

// CreateSessionRequest は編集セッション作成リクエストです。
type CreateSessionRequest struct {
	EnableSearch bool `json:"enable_search"`
}

// ImageForm は画像1枚のみを受け取るフォームです。
type ImageForm struct {
	Image *multipart.FileHeader `form:"image" binding:"required"`
}

// ObjectsForm はオブジェクト認識フォームです。
type ObjectsForm struct {
	Image         *multipart.FileHeader `form:"image" binding:"required"`
	MinConfidence float64               `form:"min_confidence,default=0.5"`
}

// FloorPlanForm は間取り図生成フォームです。Objects は認識済みオブジェクトのJSON配列（任意）です。
type FloorPlanForm struct {
	Image   *multipart.FileHeader `form:"image" binding:"required"`
	Objects string                `form:"objects"`
}

// EditImageForm は画像編集フォームです。
type EditImageForm struct {
	Image       *multipart.FileHeader `form:"image" binding:"required"`
	Prompt      string                `form:"prompt" binding:"required"`
	AspectRatio string                `form:"aspect_ratio"`
	Quality     string                `form:"quality" binding:"omitempty,oneof=fast pro"`
}

// StyleForm はルームスタイル変換フォームです。
type StyleForm struct {
	Image       *multipart.FileHeader `form:"image" binding:"required"`
	Style       string                `form:"style" binding:"required"`
	AspectRatio string                `form:"aspect_ratio"`
	Resolution  string                `form:"resolution" binding:"omitempty,oneof=1K 2K 4K"`
	UsePro      bool                  `form:"use_pro"`
}

// VariationsForm はスタイルバリエーション生成フォームです。
type VariationsForm struct {
	Image      *multipart.FileHeader `form:"image" binding:"required"`
	BaseStyle  string                `form:"base_style" binding:"required"`
	Count      int                   `form:"count,default=3"`
	Resolution string                `form:"resolution" binding:"omitempty,oneof=1K 2K 4K"`
}

// CompositeForm は複数参照画像の合成フォームです。
type CompositeForm struct {
	Prompt      string                  `form:"prompt" binding:"required"`
	References  []*multipart.FileHeader `form:"references" binding:"required"`
	AspectRatio string                  `form:"aspect_ratio"`
	Resolution  string                  `form:"resolution" binding:"omitempty,oneof=1K 2K 4K"`
}

// Generate4KForm は4K生成フォームです。Image は任意です。
type Generate4KForm struct {
	Prompt      string                `form:"prompt" binding:"required"`
	AspectRatio string                `form:"aspect_ratio"`
	Image       *multipart.FileHeader `form:"image"`
}

// SessionEditForm は編集セッションの1ターンのフォームです。Image は任意です。
type SessionEditForm struct {
	Prompt      string                `form:"prompt" binding:"required"`
	Image       *multipart.FileHeader `form:"image"`
	AspectRatio string                `form:"aspect_ratio"`
	Resolution  string                `form:"resolution" binding:"omitempty,oneof=1K 2K 4K"`
}

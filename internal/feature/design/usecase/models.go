package usecase

// Models は用途ごとのモデルIDです。
type Models struct {
	Flash    string // 高速なテキスト・画像解析
	Pro      string // 空間推論
	Image    string // 高速な画像生成・編集
	ImagePro string // 高品質な画像生成（推論、4K、最大14枚の参照画像）
}

// DefaultModels は既定のモデルIDを返します。
func DefaultModels() Models {
	return Models{
		Flash:    "gemini-2.5-flash",
		Pro:      "gemini-2.5-pro",
		Image:    "gemini-2.5-flash-image",
		ImagePro: "gemini-3-pro-image-preview",
	}
}

// withDefaults は空のフィールドを既定値で補完します。
func (m Models) withDefaults() Models {
	d := DefaultModels()
	if m.Flash == "" {
		m.Flash = d.Flash
	}
	if m.Pro == "" {
		m.Pro = d.Pro
	}
	if m.Image == "" {
		m.Image = d.Image
	}
	if m.ImagePro == "" {
		m.ImagePro = d.ImagePro
	}
	return m
}

// Quality は画像生成の品質（速度とのトレードオフ）です。
type Quality string

const (
	QualityFast Quality = "fast"
	QualityPro  Quality = "pro"
)

// ForQuality は品質に対応する画像モデルを返します。
func (m Models) ForQuality(q Quality) string {
	if q == QualityPro {
		return m.ImagePro
	}
	return m.Image
}

// 操作名。メトリクスのラベル、生成履歴、キャッシュキーに使用します。
const (
	OpRecognizeObjects = "recognize_objects"
	OpAnalyzeRoom      = "analyze_room"
	OpGenerateImage    = "generate_image"
	OpEditImage        = "edit_image"
	OpRoomStyle        = "room_style"
	OpStyleVariation   = "style_variation"
	OpComposite        = "composite"
	OpSeamlessTexture  = "seamless_texture"
	OpFloorPlan        = "floor_plan"
	OpProductRecommend = "product_recommendations"
	OpGroundedImage    = "grounded_image"
	OpGenerate4K       = "generate_4k"
	OpSessionEdit      = "session_edit"
)

// 既定値。
const (
	DefaultAspectRatio   = "16:9"
	DefaultResolution    = "2K"
	Resolution4K         = "4K"
	TextureAspectRatio   = "1:1"
	DefaultMinConfidence = 0.5
	DefaultVariations    = 3
	// MaxReferenceImages は合成に使える参照画像の最大枚数です。超過分は切り捨てます。
	MaxReferenceImages = 14
	// MaxImageSize は入力画像1枚あたりの最大サイズ（20MB）です。
	MaxImageSize = 20 * 1024 * 1024
)

// 推論トークン数の上限。
const (
	recognitionThinkingBudget int32 = 0
	analysisThinkingBudget    int32 = 128
	floorPlanThinkingBudget   int32 = 256
)

func budget(n int32) *int32 { return &n }

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

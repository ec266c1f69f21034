package entity

// StylePreset はスタイルバリエーション生成に使う固定のプリセットです。
type StylePreset struct {
	ID       string
	Name     string
	Modifier string
}

// StylePresets はバリエーション生成で先頭から順に使用されるプリセット一覧です。
var StylePresets = []StylePreset{
	{ID: "warm", Name: "Warm & Cozy", Modifier: "with warm earth tones, soft textures, and ambient lighting"},
	{ID: "cool", Name: "Cool & Modern", Modifier: "with cool tones, clean lines, and minimalist aesthetic"},
	{ID: "natural", Name: "Natural & Organic", Modifier: "with natural materials, plants, and earthy elements"},
	{ID: "luxurious", Name: "Luxurious & Elegant", Modifier: "with premium materials, rich colors, and sophisticated details"},
	{ID: "bright", Name: "Bright & Airy", Modifier: "with light colors, open feel, and maximum natural light"},
}

// MaxStyleVariations は1回で生成できるバリエーションの最大数です。
var MaxStyleVariations = len(StylePresets)

// StyleVariation は部屋デザインのスタイルバリエーションです。
type StyleVariation struct {
	ID          string
	Name        string
	Description string
	Image       *Image
}

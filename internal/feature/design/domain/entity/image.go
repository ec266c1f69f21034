// Package entity はdesignフィーチャーのドメインモデルを定義します。
package entity

// Image はエンコード済みの画像バイト列です（PNG/JPEG/WebP/GIF）。
// バイト列はデコードせずにそのままリモートサービスへ渡されます。
type Image struct {
	Data     []byte `json:"data"`
	MIMEType string `json:"mime_type"`
}

// IsEmpty は画像データが空かどうかを返します。
func (i *Image) IsEmpty() bool {
	return i == nil || len(i.Data) == 0
}

// GeneratedImage は画像生成系の呼び出し結果です。
// Image が nil の場合、モデルは画像を返さなかったことを意味します（エラーではありません）。
type GeneratedImage struct {
	Image         *Image   // 生成画像（返されなかった場合は nil）
	Description   string   // 最初のテキストパート
	SearchQueries []string // グラウンディングで使用された検索クエリ
}

// HasImage は生成画像が含まれているかどうかを返します。
func (g *GeneratedImage) HasImage() bool {
	return g != nil && !g.Image.IsEmpty()
}

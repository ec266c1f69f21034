package gemini

import "time"

const (
	// DefaultTimeout は画像生成を含む1回の呼び出しのタイムアウトです。
	DefaultTimeout = 120 * time.Second
	// DefaultRequestsPerMinute は1分あたりの呼び出し上限の既定値です。
	DefaultRequestsPerMinute = 60
)

// Config はGemini APIクライアントの設定です。
type Config struct {
	APIKey string
	// BaseURL は空の場合SDKの既定エンドポイントを使用します（テストではローカルサーバーを指定します）。
	BaseURL           string
	Timeout           time.Duration
	RequestsPerMinute int
}

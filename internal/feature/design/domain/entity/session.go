package entity

import "time"

// Turn は編集セッションで送信した1ターンのローカル記録です（追記のみ）。
type Turn struct {
	Prompt      string    `json:"prompt"`
	HasImage    bool      `json:"has_image"`
	AspectRatio string    `json:"aspect_ratio,omitempty"`
	Resolution  string    `json:"resolution,omitempty"`
	SentAt      time.Time `json:"sent_at"`
}

// Message はリモートサービスが保持する会話履歴の1エントリです。
type Message struct {
	Role     string `json:"role"`
	Text     string `json:"text"`
	HasImage bool   `json:"has_image"`
}

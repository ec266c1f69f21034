// Package entity はhistoryフィーチャーのドメインモデルを定義します。
package entity

import "time"

// 呼び出し結果。
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// GenerationRecord はリモートモデル呼び出し1回分の記録です。
type GenerationRecord struct {
	ID            uint
	Operation     string // 呼び出し元のユースケース名（例: generate_image）
	Model         string
	Status        string // ok | error
	ImageReturned bool
	DurationMs    int64
	Error         string // 失敗時のエラーメッセージ
	CreatedAt     time.Time
}

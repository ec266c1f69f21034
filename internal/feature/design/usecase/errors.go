package usecase

import "errors"

var (
	// ErrInvalidInput はリモート呼び出し前の入力検証に失敗したことを示します。
	ErrInvalidInput = errors.New("invalid input")
	// ErrSessionNotFound は指定されたIDの編集セッションが存在しないことを示します。
	ErrSessionNotFound = errors.New("session not found")
)

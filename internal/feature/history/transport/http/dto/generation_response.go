package dto

// GenerationResponse は生成履歴1件のレスポンスDTOです。
type GenerationResponse struct {
	ID            uint   `json:"id"`
	Operation     string `json:"operation"`
	Model         string `json:"model"`
	Status        string `json:"status"`
	ImageReturned bool   `json:"image_returned"`
	DurationMs    int64  `json:"duration_ms"`
	Error         string `json:"error,omitempty"`
	CreatedAt     string `json:"created_at"` // RFC3339
}

// ErrorResponse はエラー時のレスポンスDTOです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// Package usecase はdesignフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"strings"

	"designkit_backend/internal/feature/design/domain/entity"
)

// 出力モダリティ。
const (
	ModalityText  = "TEXT"
	ModalityImage = "IMAGE"
)

// MIMETypeJSON はJSON形式のレスポンスを要求する場合のMIMEタイプです。
const MIMETypeJSON = "application/json"

// Part はリクエストに含める1パート（テキストまたは画像）です。
type Part struct {
	Text  string
	Image *entity.Image
}

// TextPart はテキストのみのパートを生成します。
func TextPart(s string) Part { return Part{Text: s} }

// ImagePart は画像のみのパートを生成します。
func ImagePart(img entity.Image) Part { return Part{Image: &img} }

// ImageConfig は画像出力の設定です。空の値はリクエストに含めません。
type ImageConfig struct {
	AspectRatio string
	Size        string
}

// GenerateRequest はリモートモデルへの1回の呼び出しを表します。
type GenerateRequest struct {
	Operation          string // 呼び出し元のユースケース名（メトリクス・履歴・キャッシュキーに使用）
	Model              string
	Parts              []Part
	ResponseModalities []string
	ResponseMIMEType   string
	Image              *ImageConfig
	ThinkingBudget     *int32
	GoogleSearch       bool
}

// ResponsePart はレスポンスの1パートです。Thought が true のパートは推論過程で、結果には含めません。
type ResponsePart struct {
	Text    string
	Image   *entity.Image
	Thought bool
}

// GenerateResponse はリモートモデルのレスポンスです。
type GenerateResponse struct {
	Parts         []ResponsePart
	SearchQueries []string
	ModelVersion  string
}

// Text は推論パートを除いた全テキストを連結して返します。
func (r *GenerateResponse) Text() string {
	if r == nil {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Parts {
		if p.Thought {
			continue
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// Decode は推論パートを読み飛ばし、最初のテキストを説明文、最初の画像を出力画像として返します。
func (r *GenerateResponse) Decode() (description string, image *entity.Image) {
	if r == nil {
		return "", nil
	}
	seenText := false
	for _, p := range r.Parts {
		if p.Thought {
			continue
		}
		if p.Text != "" && !seenText {
			description = p.Text
			seenText = true
		}
		if image == nil && !p.Image.IsEmpty() {
			image = p.Image
		}
	}
	return description, image
}

// HasImage はレスポンスに推論パート以外の画像が含まれるかどうかを返します。
func (r *GenerateResponse) HasImage() bool {
	_, img := r.Decode()
	return img != nil
}

// Generator はリモートの生成モデルを呼び出すインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type Generator interface {
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
}

// ChatOptions はチャット開始時の設定です。
type ChatOptions struct {
	Model        string
	GoogleSearch bool
}

// ChatHandle はリモート側が会話状態を保持するチャットのハンドルです。
// 1つのハンドルは1本の線形な会話を表し、ターンは直列に送信されます。
type ChatHandle interface {
	// Send は1ターンを送信します。cfg が nil の場合はチャット作成時の設定を使用します。
	Send(ctx context.Context, parts []Part, cfg *ImageConfig) (*GenerateResponse, error)
	// History はリモート側が保持する会話履歴をそのまま返します。
	History() []entity.Message
}

// ChatStarter は新しいチャットを開始するインターフェースです。
type ChatStarter interface {
	StartChat(ctx context.Context, opts ChatOptions) (ChatHandle, error)
}

// ObjectDetector は画像からオブジェクトを検出するインターフェースです。
type ObjectDetector interface {
	DetectObjects(ctx context.Context, img entity.Image) ([]entity.RecognizedObject, error)
}

// TurnLog は編集セッションごとの送信済みターンを記録する追記専用ログです。
type TurnLog interface {
	Append(ctx context.Context, sessionID string, turn entity.Turn) error
	List(ctx context.Context, sessionID string) ([]entity.Turn, error)
	Delete(ctx context.Context, sessionID string) error
}

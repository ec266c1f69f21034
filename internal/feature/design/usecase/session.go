package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"designkit_backend/internal/feature/design/domain/entity"
)

// EditInput は編集セッションの1ターンの入力です。
type EditInput struct {
	Image       *entity.Image // 省略時は会話中の画像に対して編集します
	Prompt      string
	AspectRatio string
	Resolution  string
}

// EditResult は編集セッションの1ターンの結果です。Image は返されなかった場合 nil です。
type EditResult struct {
	Image *entity.Image
	Text  string
}

// EditingSession は画像の反復編集を行う会話セッションです。
// 会話の状態はリモート側が保持し、ローカルには送信したターンの記録のみを追記します。
// 1つのセッションを複数の呼び出し元から同時に使うことは想定していません。
type EditingSession struct {
	id    string
	chat  ChatHandle
	turns TurnLog
	now   func() time.Time

	mu       sync.Mutex
	lastUsed time.Time
}

// NewEditingSession はリモート側に新しい会話を開き、セッションを生成します。
// enableSearch が true の場合、以降の応答でGoogle検索によるグラウンディングを使用します。
func NewEditingSession(ctx context.Context, id string, starter ChatStarter, turns TurnLog, model string, enableSearch bool) (*EditingSession, error) {
	chat, err := starter.StartChat(ctx, ChatOptions{Model: model, GoogleSearch: enableSearch})
	if err != nil {
		return nil, fmt.Errorf("failed to start chat: %w", err)
	}
	s := &EditingSession{id: id, chat: chat, turns: turns, now: time.Now}
	s.lastUsed = s.now()
	return s, nil
}

// ID はセッションIDを返します。
func (s *EditingSession) ID() string {
	return s.id
}

// Edit は1ターンを送信します。画像を指定した場合はプロンプトと一緒に添付します。
// 送信時のエラーはそのまま返し、リトライやロールバックは行いません。
func (s *EditingSession) Edit(ctx context.Context, in EditInput) (*EditResult, error) {
	if err := validatePrompt("prompt", in.Prompt); err != nil {
		return nil, err
	}
	parts := make([]Part, 0, 2)
	if in.Image != nil {
		if err := validateImage(in.Image); err != nil {
			return nil, err
		}
		parts = append(parts, ImagePart(*in.Image))
	}
	parts = append(parts, TextPart(in.Prompt))

	var cfg *ImageConfig
	if in.AspectRatio != "" || in.Resolution != "" {
		cfg = &ImageConfig{AspectRatio: in.AspectRatio, Size: in.Resolution}
	}

	s.touch()
	resp, err := s.chat.Send(ctx, parts, cfg)
	if err != nil {
		return nil, err
	}
	_, img := resp.Decode()

	turn := entity.Turn{
		Prompt:      in.Prompt,
		HasImage:    in.Image != nil,
		AspectRatio: in.AspectRatio,
		Resolution:  in.Resolution,
		SentAt:      s.now(),
	}
	if s.turns != nil {
		if err := s.turns.Append(ctx, s.id, turn); err != nil {
			slog.Warn("ターン履歴の記録に失敗", "session_id", s.id, "error", err)
		}
	}
	return &EditResult{Image: img, Text: resp.Text()}, nil
}

// History はリモート側が保持する会話履歴を返します。
func (s *EditingSession) History() []entity.Message {
	return s.chat.History()
}

// Turns はこのセッションで送信したターンの記録を返します。
func (s *EditingSession) Turns(ctx context.Context) ([]entity.Turn, error) {
	if s.turns == nil {
		return []entity.Turn{}, nil
	}
	return s.turns.List(ctx, s.id)
}

func (s *EditingSession) touch() {
	s.mu.Lock()
	s.lastUsed = s.now()
	s.mu.Unlock()
}

func (s *EditingSession) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

package gemini

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"

	"designkit_backend/internal/feature/design/domain/entity"
	"designkit_backend/internal/feature/design/usecase"
	"designkit_backend/internal/shared/ratelimiter"
)

// chatSession はSDKのチャットを包み、ターンごとの画像設定の上書きに対応します。
// ターンは mu で直列化されます。
type chatSession struct {
	chats   *genai.Chats
	model   string
	base    *genai.GenerateContentConfig
	limiter ratelimiter.Limiter

	mu   sync.Mutex
	chat *genai.Chat
}

var _ usecase.ChatHandle = (*chatSession)(nil)

// StartChat は新しいチャットを作成します。作成時にネットワーク呼び出しは行いません。
func (c *Client) StartChat(ctx context.Context, opts usecase.ChatOptions) (usecase.ChatHandle, error) {
	if c.initErr != nil {
		return nil, c.initErr
	}
	base := &genai.GenerateContentConfig{
		ResponseModalities: []string{usecase.ModalityText, usecase.ModalityImage},
		Tools:              searchTools(opts.GoogleSearch),
	}
	chat, err := c.client.Chats.Create(ctx, opts.Model, base, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}
	return &chatSession{
		chats:   c.client.Chats,
		model:   opts.Model,
		base:    base,
		limiter: c.limiter,
		chat:    chat,
	}, nil
}

// Send は1ターンを送信します。cfg を指定した場合はそのターンだけ画像設定を上書きし、
// 送信後の履歴を引き継いで元の設定のチャットに戻します。送信の失敗はそのまま返します。
func (s *chatSession) Send(ctx context.Context, parts []usecase.Part, cfg *usecase.ImageConfig) (*usecase.GenerateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	chat := s.chat
	if img := toImageConfig(cfg); img != nil {
		override := *s.base
		override.ImageConfig = img
		tmp, err := s.chats.Create(ctx, s.model, &override, s.chat.History(false))
		if err != nil {
			return nil, fmt.Errorf("failed to apply turn config: %w", err)
		}
		chat = tmp
	}

	resp, err := chat.Send(ctx, toParts(parts)...)
	if err != nil {
		return nil, err
	}

	if chat != s.chat {
		restored, err := s.chats.Create(ctx, s.model, s.base, chat.History(false))
		if err != nil {
			return nil, fmt.Errorf("failed to restore chat config: %w", err)
		}
		s.chat = restored
	}
	return fromResponse(resp), nil
}

// History はチャットが保持する会話履歴を返します。
func (s *chatSession) History() []entity.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return toMessages(s.chat.History(false))
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTTL は操作のないセッションを破棄するまでの既定時間です。
const DefaultSessionTTL = 30 * time.Minute

// sessionRegistry はHTTP経由で利用する編集セッションをIDで管理します。
type sessionRegistry struct {
	starter ChatStarter
	turns   TurnLog
	model   string
	ttl     time.Duration
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*EditingSession
}

// NewSessionRegistry はsessionRegistryの新しいインスタンスを生成します。
// ttl が0以下の場合は DefaultSessionTTL を使用します。
func NewSessionRegistry(starter ChatStarter, turns TurnLog, model string, ttl time.Duration) *sessionRegistry {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &sessionRegistry{
		starter:  starter,
		turns:    turns,
		model:    model,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*EditingSession),
	}
}

// Create は新しい編集セッションを開始して登録します。
func (r *sessionRegistry) Create(ctx context.Context, enableSearch bool) (*EditingSession, error) {
	s, err := NewEditingSession(ctx, uuid.NewString(), r.starter, r.turns, r.model, enableSearch)
	if err != nil {
		return nil, err
	}
	s.now = r.now
	s.lastUsed = r.now()

	r.mu.Lock()
	r.sessions[s.ID()] = s
	r.mu.Unlock()
	return s, nil
}

// Get はIDに対応するセッションを返します。存在しない場合は ErrSessionNotFound を返します。
func (r *sessionRegistry) Get(id string) (*EditingSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// Close はセッションを登録解除し、ターン履歴を削除します。
func (r *sessionRegistry) Close(ctx context.Context, id string) error {
	r.mu.Lock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if r.turns != nil {
		if err := r.turns.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete turn log: %w", err)
		}
	}
	return nil
}

// Len は登録中のセッション数を返します。
func (r *sessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep は ttl を超えて操作されていないセッションを破棄し、破棄した件数を返します。
func (r *sessionRegistry) Sweep(ctx context.Context) int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	var expired []string
	for id, s := range r.sessions {
		if s.idleSince().Before(cutoff) {
			expired = append(expired, id)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, id := range expired {
		if r.turns == nil {
			continue
		}
		if err := r.turns.Delete(ctx, id); err != nil {
			slog.Warn("期限切れセッションのターン履歴削除に失敗", "session_id", id, "error", err)
		}
	}
	if len(expired) > 0 {
		slog.Info("期限切れセッションを破棄", "count", len(expired))
	}
	return len(expired)
}

// Run は ctx が終了するまで interval ごとに Sweep を実行します。
func (r *sessionRegistry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

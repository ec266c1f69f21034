package session

import (
	"context"
	"sync"

	"designkit_backend/internal/feature/design/domain/entity"
	"designkit_backend/internal/feature/design/usecase"
)

// TurnLogMemory implements usecase.TurnLog in process memory.
// It is used when Redis is not configured.
type TurnLogMemory struct {
	mu    sync.RWMutex
	turns map[string][]entity.Turn
}

var _ usecase.TurnLog = (*TurnLogMemory)(nil)

// NewTurnLogMemory creates an empty in-memory turn log.
func NewTurnLogMemory() *TurnLogMemory {
	return &TurnLogMemory{turns: make(map[string][]entity.Turn)}
}

func (m *TurnLogMemory) Append(_ context.Context, sessionID string, turn entity.Turn) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns[sessionID] = append(m.turns[sessionID], turn)
	return nil
}

// List returns a copy of the session's turns.
func (m *TurnLogMemory) List(_ context.Context, sessionID string) ([]entity.Turn, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]entity.Turn, len(m.turns[sessionID]))
	copy(out, m.turns[sessionID])
	return out, nil
}

func (m *TurnLogMemory) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.turns, sessionID)
	return nil
}

package usecase_test

import (
	"context"
	"errors"
	"sync"

	designentity "designkit_backend/internal/feature/design/domain/entity"
	designusecase "designkit_backend/internal/feature/design/usecase"
	"designkit_backend/internal/feature/history/domain/entity"
)

// ErrDB はモックと期待値の間で共有されるセンチネルエラーです。
var ErrDB = errors.New("database error")

// mockGenerationRepository はGenerationRepositoryインターフェースのモック実装です。
type mockGenerationRepository struct {
	mu             sync.Mutex
	CreateFunc     func(ctx context.Context, rec *entity.GenerationRecord) error
	ListRecentFunc func(ctx context.Context, operation string, limit int) ([]entity.GenerationRecord, error)
	Created        []entity.GenerationRecord
	CreateCalls    int
	ListCalls      int
}

func (m *mockGenerationRepository) Create(ctx context.Context, rec *entity.GenerationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls++
	m.Created = append(m.Created, *rec)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, rec)
	}
	return nil
}

func (m *mockGenerationRepository) ListRecent(ctx context.Context, operation string, limit int) ([]entity.GenerationRecord, error) {
	m.ListCalls++
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, operation, limit)
	}
	return nil, errors.New("ListRecentFunc is not implemented")
}

// mockGenerator はdesignのGeneratorインターフェースのモック実装です。
type mockGenerator struct {
	GenerateFunc func(ctx context.Context, req *designusecase.GenerateRequest) (*designusecase.GenerateResponse, error)
	Calls        int
}

func (m *mockGenerator) Generate(ctx context.Context, req *designusecase.GenerateRequest) (*designusecase.GenerateResponse, error) {
	m.Calls++
	return m.GenerateFunc(ctx, req)
}

// mockChat はdesignのChatHandleインターフェースのモック実装です。
type mockChat struct {
	SendFunc  func(ctx context.Context, parts []designusecase.Part, cfg *designusecase.ImageConfig) (*designusecase.GenerateResponse, error)
	Messages  []designentity.Message
	SendCalls int
}

func (m *mockChat) Send(ctx context.Context, parts []designusecase.Part, cfg *designusecase.ImageConfig) (*designusecase.GenerateResponse, error) {
	m.SendCalls++
	return m.SendFunc(ctx, parts, cfg)
}

func (m *mockChat) History() []designentity.Message {
	return m.Messages
}

// mockChatStarter はdesignのChatStarterインターフェースのモック実装です。
type mockChatStarter struct {
	Chat       *mockChat
	StartErr   error
	StartCalls int
	LastOpts   designusecase.ChatOptions
}

func (m *mockChatStarter) StartChat(_ context.Context, opts designusecase.ChatOptions) (designusecase.ChatHandle, error) {
	m.StartCalls++
	m.LastOpts = opts
	if m.StartErr != nil {
		return nil, m.StartErr
	}
	return m.Chat, nil
}

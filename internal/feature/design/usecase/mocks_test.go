package usecase_test

import (
	"context"
	"errors"
	"sync"

	"designkit_backend/internal/feature/design/domain/entity"
	"designkit_backend/internal/feature/design/usecase"
)

// ErrAPI はモックと期待値の間で共有されるセンチネルエラーです。
var ErrAPI = errors.New("api error")

// mockGenerator はGeneratorインターフェースのモック実装です。並行呼び出しに対応します。
type mockGenerator struct {
	GenerateFunc func(ctx context.Context, req *usecase.GenerateRequest) (*usecase.GenerateResponse, error)

	mu       sync.Mutex
	Requests []*usecase.GenerateRequest
}

func (m *mockGenerator) Generate(ctx context.Context, req *usecase.GenerateRequest) (*usecase.GenerateResponse, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	m.mu.Unlock()
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return nil, errors.New("GenerateFunc is not implemented")
}

func (m *mockGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}

func (m *mockGenerator) LastRequest() *usecase.GenerateRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Requests) == 0 {
		return nil
	}
	return m.Requests[len(m.Requests)-1]
}

// textResponse はテキスト1パートのレスポンスを返します。
func textResponse(text string) *usecase.GenerateResponse {
	return &usecase.GenerateResponse{Parts: []usecase.ResponsePart{{Text: text}}}
}

// imageResponse は推論パート・説明文・画像を含むレスポンスを返します。
func imageResponse(desc string, data []byte) *usecase.GenerateResponse {
	return &usecase.GenerateResponse{Parts: []usecase.ResponsePart{
		{Text: "thinking about the layout", Thought: true},
		{Text: desc},
		{Image: &entity.Image{Data: data, MIMEType: "image/png"}},
	}}
}

func testImage() *entity.Image {
	return &entity.Image{Data: []byte("fake-image-data"), MIMEType: "image/png"}
}

// mockObjectDetector はObjectDetectorインターフェースのモック実装です。
type mockObjectDetector struct {
	DetectObjectsFunc  func(ctx context.Context, img entity.Image) ([]entity.RecognizedObject, error)
	DetectObjectsCalls int
}

func (m *mockObjectDetector) DetectObjects(ctx context.Context, img entity.Image) ([]entity.RecognizedObject, error) {
	m.DetectObjectsCalls++
	if m.DetectObjectsFunc != nil {
		return m.DetectObjectsFunc(ctx, img)
	}
	return nil, errors.New("DetectObjectsFunc is not implemented")
}

// mockChat はChatHandleインターフェースのモック実装です。
type mockChat struct {
	SendFunc  func(ctx context.Context, parts []usecase.Part, cfg *usecase.ImageConfig) (*usecase.GenerateResponse, error)
	SendCalls int
	LastParts []usecase.Part
	LastCfg   *usecase.ImageConfig
	Messages  []entity.Message
}

func (m *mockChat) Send(ctx context.Context, parts []usecase.Part, cfg *usecase.ImageConfig) (*usecase.GenerateResponse, error) {
	m.SendCalls++
	m.LastParts = parts
	m.LastCfg = cfg
	if m.SendFunc != nil {
		return m.SendFunc(ctx, parts, cfg)
	}
	return nil, errors.New("SendFunc is not implemented")
}

func (m *mockChat) History() []entity.Message {
	return m.Messages
}

// mockChatStarter はChatStarterインターフェースのモック実装です。
type mockChatStarter struct {
	StartChatFunc  func(ctx context.Context, opts usecase.ChatOptions) (usecase.ChatHandle, error)
	StartChatCalls int
	LastOptions    usecase.ChatOptions
}

func (m *mockChatStarter) StartChat(ctx context.Context, opts usecase.ChatOptions) (usecase.ChatHandle, error) {
	m.StartChatCalls++
	m.LastOptions = opts
	if m.StartChatFunc != nil {
		return m.StartChatFunc(ctx, opts)
	}
	return &mockChat{}, nil
}

// memoryTurnLog はTurnLogインターフェースのテスト用実装です。
type memoryTurnLog struct {
	AppendErr error
	turns     map[string][]entity.Turn
	Deleted   []string
}

func newMemoryTurnLog() *memoryTurnLog {
	return &memoryTurnLog{turns: map[string][]entity.Turn{}}
}

func (m *memoryTurnLog) Append(_ context.Context, id string, turn entity.Turn) error {
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.turns[id] = append(m.turns[id], turn)
	return nil
}

func (m *memoryTurnLog) List(_ context.Context, id string) ([]entity.Turn, error) {
	return m.turns[id], nil
}

func (m *memoryTurnLog) Delete(_ context.Context, id string) error {
	delete(m.turns, id)
	m.Deleted = append(m.Deleted, id)
	return nil
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"designkit_backend/internal/feature/design/domain/entity"
	"designkit_backend/internal/feature/design/transport/http/dto"
	"designkit_backend/internal/feature/design/usecase"
	"designkit_backend/internal/platform/session"
)

// fakeChat はリモートの会話状態を模したChatHandleです。
type fakeChat struct {
	mu       sync.Mutex
	search   bool
	messages []entity.Message
	sendErr  error
}

func (f *fakeChat) Send(_ context.Context, parts []usecase.Part, _ *usecase.ImageConfig) (*usecase.GenerateResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	var prompt string
	hasImage := false
	for _, p := range parts {
		if p.Image != nil {
			hasImage = true
		}
		prompt += p.Text
	}
	f.messages = append(f.messages,
		entity.Message{Role: "user", Text: prompt, HasImage: hasImage},
		entity.Message{Role: "model", Text: "done: " + prompt, HasImage: true},
	)
	return &usecase.GenerateResponse{Parts: []usecase.ResponsePart{
		{Text: "reasoning", Thought: true},
		{Text: "done: " + prompt},
		{Image: generatedPNG},
	}}, nil
}

func (f *fakeChat) History() []entity.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.Message(nil), f.messages...)
}

type fakeChatStarter struct {
	chats    []*fakeChat
	startErr error
}

func (s *fakeChatStarter) StartChat(_ context.Context, opts usecase.ChatOptions) (usecase.ChatHandle, error) {
	if s.startErr != nil {
		return nil, s.startErr
	}
	c := &fakeChat{search: opts.GoogleSearch}
	s.chats = append(s.chats, c)
	return c, nil
}

func sessionRouter(m SessionManager) *gin.Engine {
	h := NewSessionHandler(m)
	r := gin.New()
	r.POST("/v1/sessions", h.Create)
	r.POST("/v1/sessions/:id/edits", h.Edit)
	r.GET("/v1/sessions/:id/history", h.History)
	r.GET("/v1/sessions/:id/turns", h.Turns)
	r.DELETE("/v1/sessions/:id", h.Delete)
	return r
}

func TestSessionHandler_Lifecycle(t *testing.T) {
	starter := &fakeChatStarter{}
	registry := usecase.NewSessionRegistry(starter, session.NewTurnLogMemory(), "image-pro", 0)
	r := sessionRouter(registry)

	// 作成
	w := serve(r, jsonRequest(t, http.MethodPost, "/v1/sessions", map[string]any{"enable_search": true}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode[dto.SessionResponse](t, w).ID
	require.NotEmpty(t, id)
	require.Len(t, starter.chats, 1)
	assert.True(t, starter.chats[0].search)

	// 画像付きの1ターン目
	w = serve(r, multipartRequest(t, http.MethodPost, "/v1/sessions/"+id+"/edits",
		map[string]string{"prompt": "make it modern", "aspect_ratio": "16:9"},
		formFile{"image", "room.png", pngBytes(t)}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	first := decode[dto.EditResultResponse](t, w)
	assert.Equal(t, "done: make it modern", first.Text)
	assert.NotNil(t, first.Image)

	// 画像なしの2ターン目
	w = serve(r, multipartRequest(t, http.MethodPost, "/v1/sessions/"+id+"/edits", map[string]string{"prompt": "add plants"}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// リモート側の会話履歴
	w = serve(r, httpGet("/v1/sessions/"+id+"/history"))
	require.Equal(t, http.StatusOK, w.Code)
	history := decode[[]dto.Message](t, w)
	require.Len(t, history, 4)
	assert.True(t, history[0].HasImage)
	assert.False(t, history[2].HasImage)

	// ローカルのターン記録
	w = serve(r, httpGet("/v1/sessions/"+id+"/turns"))
	require.Equal(t, http.StatusOK, w.Code)
	turns := decode[[]dto.Turn](t, w)
	require.Len(t, turns, 2)
	assert.Equal(t, "make it modern", turns[0].Prompt)
	assert.Equal(t, "16:9", turns[0].AspectRatio)
	assert.True(t, turns[0].HasImage)
	assert.Equal(t, "add plants", turns[1].Prompt)
	assert.NotEmpty(t, turns[1].SentAt)

	// 削除
	w = serve(r, httptestRequest(http.MethodDelete, "/v1/sessions/"+id))
	require.Equal(t, http.StatusNoContent, w.Code)

	w = serve(r, httpGet("/v1/sessions/"+id+"/history"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = serve(r, httptestRequest(http.MethodDelete, "/v1/sessions/"+id))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionHandler_Errors(t *testing.T) {
	t.Run("success: create without body", func(t *testing.T) {
		starter := &fakeChatStarter{}
		r := sessionRouter(usecase.NewSessionRegistry(starter, nil, "m", 0))

		w := serve(r, httptestRequest(http.MethodPost, "/v1/sessions"))

		assert.Equal(t, http.StatusCreated, w.Code)
		require.Len(t, starter.chats, 1)
		assert.False(t, starter.chats[0].search)
	})

	t.Run("error: chat cannot be started", func(t *testing.T) {
		r := sessionRouter(usecase.NewSessionRegistry(&fakeChatStarter{startErr: errors.New("no key")}, nil, "m", 0))

		w := serve(r, httptestRequest(http.MethodPost, "/v1/sessions"))

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("error: unknown session", func(t *testing.T) {
		r := sessionRouter(usecase.NewSessionRegistry(&fakeChatStarter{}, nil, "m", 0))

		w := serve(r, multipartRequest(t, http.MethodPost, "/v1/sessions/nope/edits", map[string]string{"prompt": "x"}))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("error: send failure propagates as bad gateway", func(t *testing.T) {
		starter := &fakeChatStarter{}
		registry := usecase.NewSessionRegistry(starter, nil, "m", 0)
		s, err := registry.Create(context.Background(), false)
		require.NoError(t, err)
		starter.chats[0].sendErr = errors.New("quota exceeded")

		w := serve(sessionRouter(registry), multipartRequest(t, http.MethodPost, "/v1/sessions/"+s.ID()+"/edits", map[string]string{"prompt": "x"}))

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("error: missing prompt", func(t *testing.T) {
		registry := usecase.NewSessionRegistry(&fakeChatStarter{}, nil, "m", 0)
		s, err := registry.Create(context.Background(), false)
		require.NoError(t, err)

		w := serve(sessionRouter(registry), multipartRequest(t, http.MethodPost, "/v1/sessions/"+s.ID()+"/edits", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

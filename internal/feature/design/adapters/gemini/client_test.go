package gemini_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"designkit_backend/internal/feature/design/adapters/gemini"
	"designkit_backend/internal/feature/design/domain/entity"
	"designkit_backend/internal/feature/design/usecase"
)

// fakeGemini はgenerateContentエンドポイントを模したテストサーバーです。
type fakeGemini struct {
	mu       sync.Mutex
	paths    []string
	apiKeys  []string
	bodies   []map[string]any
	response func(n int) string
}

func (f *fakeGemini) handler(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	var body map[string]any
	_ = json.Unmarshal(raw, &body)

	f.mu.Lock()
	f.paths = append(f.paths, r.URL.Path)
	f.apiKeys = append(f.apiKeys, r.Header.Get("x-goog-api-key"))
	f.bodies = append(f.bodies, body)
	n := len(f.bodies)
	f.mu.Unlock()

	if !strings.HasSuffix(r.URL.Path, ":generateContent") {
		http.Error(w, `{"error":{"code":404,"message":"not found","status":"NOT_FOUND"}}`, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, f.response(n))
}

func newFakeGemini(t *testing.T, response func(n int) string) (*fakeGemini, *gemini.Client) {
	t.Helper()
	f := &fakeGemini{response: response}
	srv := httptest.NewServer(http.HandlerFunc(f.handler))
	t.Cleanup(srv.Close)

	c := gemini.NewClient(context.Background(), gemini.Config{APIKey: "test-key", BaseURL: srv.URL}, nil)
	require.NoError(t, c.Ready())
	return f, c
}

func imageReply(text string, data []byte) string {
	return `{"candidates":[{"content":{"role":"model","parts":[` +
		`{"text":"drafting","thought":true},` +
		`{"text":` + quote(text) + `},` +
		`{"inlineData":{"mimeType":"image/png","data":"` + base64.StdEncoding.EncodeToString(data) + `"}}` +
		`]},"groundingMetadata":{"webSearchQueries":["sf weather"]}}],"modelVersion":"gemini-3-pro-image-preview"}`
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// dig はネストしたJSONオブジェクトから値を取り出します。
func dig(m map[string]any, keys ...string) any {
	var cur any = m
	for _, k := range keys {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = obj[k]
	}
	return cur
}

func TestClient_Generate(t *testing.T) {
	f, c := newFakeGemini(t, func(int) string { return imageReply("A bright room.", []byte("png-bytes")) })

	resp, err := c.Generate(context.Background(), &usecase.GenerateRequest{
		Operation: usecase.OpGroundedImage,
		Model:     "gemini-3-pro-image-preview",
		Parts: []usecase.Part{
			usecase.ImagePart(entity.Image{Data: []byte("input"), MIMEType: "image/jpeg"}),
			usecase.TextPart("make it bright"),
		},
		ResponseModalities: []string{usecase.ModalityText, usecase.ModalityImage},
		Image:              &usecase.ImageConfig{AspectRatio: "16:9", Size: "2K"},
		GoogleSearch:       true,
	})
	require.NoError(t, err)

	desc, img := resp.Decode()
	assert.Equal(t, "A bright room.", desc)
	require.NotNil(t, img)
	assert.Equal(t, []byte("png-bytes"), img.Data)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Equal(t, []string{"sf weather"}, resp.SearchQueries)
	assert.Equal(t, "gemini-3-pro-image-preview", resp.ModelVersion)

	require.Len(t, f.bodies, 1)
	assert.Equal(t, "/v1beta/models/gemini-3-pro-image-preview:generateContent", f.paths[0])
	assert.Equal(t, "test-key", f.apiKeys[0])

	body := f.bodies[0]
	assert.Equal(t, "16:9", dig(body, "generationConfig", "imageConfig", "aspectRatio"))
	assert.Equal(t, "2K", dig(body, "generationConfig", "imageConfig", "imageSize"))
	assert.Equal(t, []any{"TEXT", "IMAGE"}, dig(body, "generationConfig", "responseModalities"))
	assert.Contains(t, body, "tools")

	contents := body["contents"].([]any)
	require.Len(t, contents, 1)
	parts := contents[0].(map[string]any)["parts"].([]any)
	require.Len(t, parts, 2)
	assert.Equal(t, "image/jpeg", dig(parts[0].(map[string]any), "inlineData", "mimeType"))
	assert.Equal(t, "make it bright", parts[1].(map[string]any)["text"])
}

func TestClient_Generate_JSONConfig(t *testing.T) {
	f, c := newFakeGemini(t, func(int) string {
		return `{"candidates":[{"content":{"role":"model","parts":[{"text":"[]"}]}}]}`
	})

	resp, err := c.Generate(context.Background(), &usecase.GenerateRequest{
		Model:            "gemini-2.5-flash",
		Parts:            []usecase.Part{usecase.TextPart("detect")},
		ResponseMIMEType: usecase.MIMETypeJSON,
		ThinkingBudget:   func() *int32 { v := int32(0); return &v }(),
	})
	require.NoError(t, err)
	assert.Equal(t, "[]", resp.Text())
	assert.Empty(t, resp.SearchQueries)

	body := f.bodies[0]
	assert.Equal(t, "application/json", dig(body, "generationConfig", "responseMimeType"))
	assert.Equal(t, float64(0), dig(body, "generationConfig", "thinkingConfig", "thinkingBudget"))
	assert.Nil(t, dig(body, "generationConfig", "imageConfig"))
	assert.NotContains(t, body, "tools")
}

func TestClient_Generate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`)
	}))
	defer srv.Close()

	c := gemini.NewClient(context.Background(), gemini.Config{APIKey: "k", BaseURL: srv.URL}, nil)
	_, err := c.Generate(context.Background(), &usecase.GenerateRequest{Model: "m", Parts: []usecase.Part{usecase.TextPart("x")}})
	var apiErr genai.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, genai.APIError{Code: 429, Message: "quota exceeded", Status: "RESOURCE_EXHAUSTED"}, err)
}

func TestChatSession_Send_ServerError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		if calls == 1 {
			_, _ = io.WriteString(w, imageReply("loft", []byte{1}))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{"error":{"code":503,"message":"model overloaded","status":"UNAVAILABLE"}}`)
	}))
	defer srv.Close()

	c := gemini.NewClient(context.Background(), gemini.Config{APIKey: "k", BaseURL: srv.URL}, nil)
	ctx := context.Background()
	chat, err := c.StartChat(ctx, usecase.ChatOptions{Model: "gemini-3-pro-image-preview"})
	require.NoError(t, err)

	_, err = chat.Send(ctx, []usecase.Part{usecase.TextPart("industrial loft")}, nil)
	require.NoError(t, err)

	resp, err := chat.Send(ctx, []usecase.Part{usecase.TextPart("warmer light")}, nil)
	assert.Nil(t, resp)
	assert.Equal(t, genai.APIError{Code: 503, Message: "model overloaded", Status: "UNAVAILABLE"}, err)
}

func TestClient_MissingAPIKey(t *testing.T) {
	c := gemini.NewClient(context.Background(), gemini.Config{}, nil)

	assert.ErrorIs(t, c.Ready(), gemini.ErrMissingAPIKey)
	_, err := c.Generate(context.Background(), &usecase.GenerateRequest{Model: "m"})
	assert.ErrorIs(t, err, gemini.ErrMissingAPIKey)
	_, err = c.StartChat(context.Background(), usecase.ChatOptions{Model: "m"})
	assert.ErrorIs(t, err, gemini.ErrMissingAPIKey)
}

func TestChatSession_Send(t *testing.T) {
	f, c := newFakeGemini(t, func(n int) string {
		return imageReply("turn", []byte{byte(n)})
	})
	ctx := context.Background()

	chat, err := c.StartChat(ctx, usecase.ChatOptions{Model: "gemini-3-pro-image-preview", GoogleSearch: true})
	require.NoError(t, err)
	assert.Empty(t, f.bodies, "creating a chat makes no request")

	_, err = chat.Send(ctx, []usecase.Part{
		usecase.ImagePart(entity.Image{Data: []byte("room"), MIMEType: "image/png"}),
		usecase.TextPart("industrial loft"),
	}, nil)
	require.NoError(t, err)

	resp, err := chat.Send(ctx, []usecase.Part{usecase.TextPart("exposed brick")}, &usecase.ImageConfig{Size: "4K"})
	require.NoError(t, err)
	_, img := resp.Decode()
	assert.Equal(t, []byte{2}, img.Data)

	_, err = chat.Send(ctx, []usecase.Part{usecase.TextPart("warmer light")}, nil)
	require.NoError(t, err)

	require.Len(t, f.bodies, 3)
	assert.Nil(t, dig(f.bodies[0], "generationConfig", "imageConfig"))
	assert.Equal(t, "4K", dig(f.bodies[1], "generationConfig", "imageConfig", "imageSize"))
	assert.Nil(t, dig(f.bodies[2], "generationConfig", "imageConfig"), "override applies to one turn only")
	for _, b := range f.bodies {
		assert.Contains(t, b, "tools")
	}
	assert.Len(t, f.bodies[1]["contents"], 3)
	assert.Len(t, f.bodies[2]["contents"], 5)

	history := chat.History()
	require.Len(t, history, 6)
	assert.Equal(t, entity.Message{Role: "user", Text: "industrial loft", HasImage: true}, history[0])
	assert.Equal(t, entity.Message{Role: "model", Text: "turn", HasImage: true}, history[1])
	assert.Equal(t, "warmer light", history[4].Text)
}

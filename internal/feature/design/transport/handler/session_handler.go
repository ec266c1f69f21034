package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"designkit_backend/internal/feature/design/transport/http/dto"
	"designkit_backend/internal/feature/design/usecase"
)

// SessionManager は編集セッションの生成・取得・破棄のインターフェースです。
type SessionManager interface {
	Create(ctx context.Context, enableSearch bool) (*usecase.EditingSession, error)
	Get(id string) (*usecase.EditingSession, error)
	Close(ctx context.Context, id string) error
}

// SessionHandler は編集セッションのHTTPリクエストを処理します。
type SessionHandler struct {
	sessions SessionManager
}

// NewSessionHandler はSessionHandlerの新しいインスタンスを生成します。
func NewSessionHandler(sessions SessionManager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Create は新しい編集セッションを開始します。ボディは省略できます。
//
// エンドポイント: POST /v1/sessions
func (h *SessionHandler) Create(c *gin.Context) {
	var req dto.CreateSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	s, err := h.sessions.Create(c.Request.Context(), req.EnableSearch)
	if err != nil {
		writeError(c, err, "セッションの作成に失敗しました")
		return
	}
	c.JSON(http.StatusCreated, dto.SessionResponse{ID: s.ID()})
}

// Edit はセッションに1ターンを送信します。image を省略した場合は会話中の画像を編集します。
//
// エンドポイント: POST /v1/sessions/:id/edits
func (h *SessionHandler) Edit(c *gin.Context) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		writeError(c, err, "セッションの取得に失敗しました")
		return
	}
	var form dto.SessionEditForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, err)
		return
	}
	img, err := readImage(form.Image)
	if err != nil {
		writeError(c, err, "画像の読み込みに失敗しました")
		return
	}

	out, err := s.Edit(c.Request.Context(), usecase.EditInput{
		Image:       img,
		Prompt:      form.Prompt,
		AspectRatio: form.AspectRatio,
		Resolution:  form.Resolution,
	})
	if err != nil {
		writeError(c, err, "画像編集に失敗しました")
		return
	}
	c.JSON(http.StatusOK, dto.EditResultResponse{Image: toImageResponse(out.Image), Text: out.Text})
}

// History はリモート側が保持する会話履歴を返します。
//
// エンドポイント: GET /v1/sessions/:id/history
func (h *SessionHandler) History(c *gin.Context) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		writeError(c, err, "セッションの取得に失敗しました")
		return
	}
	c.JSON(http.StatusOK, toMessageResponses(s.History()))
}

// Turns はローカルに記録した送信済みターンを返します。
//
// エンドポイント: GET /v1/sessions/:id/turns
func (h *SessionHandler) Turns(c *gin.Context) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		writeError(c, err, "セッションの取得に失敗しました")
		return
	}
	turns, err := s.Turns(c.Request.Context())
	if err != nil {
		writeError(c, err, "ターン履歴の取得に失敗しました")
		return
	}
	c.JSON(http.StatusOK, toTurnResponses(turns))
}

// Delete はセッションを破棄します。
//
// エンドポイント: DELETE /v1/sessions/:id
func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.sessions.Close(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err, "セッションの削除に失敗しました")
		return
	}
	c.Status(http.StatusNoContent)
}

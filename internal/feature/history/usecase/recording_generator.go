package usecase

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	designentity "designkit_backend/internal/feature/design/domain/entity"
	designusecase "designkit_backend/internal/feature/design/usecase"
	"designkit_backend/internal/feature/history/domain/entity"
)

const maxErrorLen = 512

// RecordingGenerator はリモートモデル呼び出しごとに生成履歴を1件保存するデコレーターです。
// 保存はベストエフォートで、失敗してもログに残すだけで呼び出し結果はそのまま返します。
type RecordingGenerator struct {
	inner designusecase.Generator
	repo  GenerationRepository
	now   func() time.Time
}

var _ designusecase.Generator = (*RecordingGenerator)(nil)

// NewRecordingGenerator は inner を履歴記録でラップします。
func NewRecordingGenerator(inner designusecase.Generator, repo GenerationRepository) *RecordingGenerator {
	return &RecordingGenerator{inner: inner, repo: repo, now: time.Now}
}

// Generate は inner を呼び出し、その結果を記録します。
func (g *RecordingGenerator) Generate(ctx context.Context, req *designusecase.GenerateRequest) (*designusecase.GenerateResponse, error) {
	start := g.now()
	resp, err := g.inner.Generate(ctx, req)
	record(ctx, g.repo, req.Operation, req.Model, start, g.now(), resp, err)
	return resp, err
}

// RecordingChatStarter は編集セッションの各ターンを OpSessionEdit として記録するデコレーターです。
type RecordingChatStarter struct {
	inner designusecase.ChatStarter
	repo  GenerationRepository
	now   func() time.Time
}

var _ designusecase.ChatStarter = (*RecordingChatStarter)(nil)

// NewRecordingChatStarter は inner が開始するチャットを履歴記録でラップします。
func NewRecordingChatStarter(inner designusecase.ChatStarter, repo GenerationRepository) *RecordingChatStarter {
	return &RecordingChatStarter{inner: inner, repo: repo, now: time.Now}
}

// StartChat は inner でチャットを開始し、送信を記録するハンドルを返します。
func (s *RecordingChatStarter) StartChat(ctx context.Context, opts designusecase.ChatOptions) (designusecase.ChatHandle, error) {
	chat, err := s.inner.StartChat(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &recordingChat{inner: chat, model: opts.Model, repo: s.repo, now: s.now}, nil
}

type recordingChat struct {
	inner designusecase.ChatHandle
	model string
	repo  GenerationRepository
	now   func() time.Time
}

func (c *recordingChat) Send(ctx context.Context, parts []designusecase.Part, cfg *designusecase.ImageConfig) (*designusecase.GenerateResponse, error) {
	start := c.now()
	resp, err := c.inner.Send(ctx, parts, cfg)
	record(ctx, c.repo, designusecase.OpSessionEdit, c.model, start, c.now(), resp, err)
	return resp, err
}

func (c *recordingChat) History() []designentity.Message {
	return c.inner.History()
}

// record は1回の呼び出しの結果を保存します。
func record(ctx context.Context, repo GenerationRepository, op, model string, start, end time.Time, resp *designusecase.GenerateResponse, err error) {
	rec := &entity.GenerationRecord{
		Operation:  op,
		Model:      model,
		Status:     entity.StatusOK,
		DurationMs: end.Sub(start).Milliseconds(),
		CreatedAt:  start.UTC(),
	}
	if err != nil {
		rec.Status = entity.StatusError
		rec.Error = truncate(err.Error(), maxErrorLen)
	} else {
		rec.ImageReturned = resp.HasImage()
	}

	// 呼び出し元のキャンセルで記録が失われないようにする
	if rerr := repo.Create(context.WithoutCancel(ctx), rec); rerr != nil {
		slog.Warn("failed to record generation", "operation", op, "error", rerr)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

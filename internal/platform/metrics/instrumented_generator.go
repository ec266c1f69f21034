package metrics

import (
	"context"
	"time"

	"designkit_backend/internal/feature/design/domain/entity"
	"designkit_backend/internal/feature/design/usecase"
)

// Status label values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// InstrumentedGenerator records call count, latency and image yield for every remote call.
type InstrumentedGenerator struct {
	inner   usecase.Generator
	metrics *Metrics
}

var _ usecase.Generator = (*InstrumentedGenerator)(nil)

// NewInstrumentedGenerator wraps inner with metrics collection.
func NewInstrumentedGenerator(inner usecase.Generator, m *Metrics) *InstrumentedGenerator {
	return &InstrumentedGenerator{inner: inner, metrics: m}
}

// Generate forwards to the inner generator and records the outcome.
func (g *InstrumentedGenerator) Generate(ctx context.Context, req *usecase.GenerateRequest) (*usecase.GenerateResponse, error) {
	start := time.Now()
	resp, err := g.inner.Generate(ctx, req)
	g.metrics.observeCall(req.Operation, req.Model, start, resp, err)
	return resp, err
}

// InstrumentedChatStarter records every editing-session turn under the session_edit operation.
type InstrumentedChatStarter struct {
	inner   usecase.ChatStarter
	metrics *Metrics
}

var _ usecase.ChatStarter = (*InstrumentedChatStarter)(nil)

// NewInstrumentedChatStarter wraps the chats started by inner with metrics collection.
func NewInstrumentedChatStarter(inner usecase.ChatStarter, m *Metrics) *InstrumentedChatStarter {
	return &InstrumentedChatStarter{inner: inner, metrics: m}
}

// StartChat starts a chat on inner and instruments its turns.
func (s *InstrumentedChatStarter) StartChat(ctx context.Context, opts usecase.ChatOptions) (usecase.ChatHandle, error) {
	chat, err := s.inner.StartChat(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &instrumentedChat{inner: chat, model: opts.Model, metrics: s.metrics}, nil
}

type instrumentedChat struct {
	inner   usecase.ChatHandle
	model   string
	metrics *Metrics
}

func (c *instrumentedChat) Send(ctx context.Context, parts []usecase.Part, cfg *usecase.ImageConfig) (*usecase.GenerateResponse, error) {
	start := time.Now()
	resp, err := c.inner.Send(ctx, parts, cfg)
	c.metrics.observeCall(usecase.OpSessionEdit, c.model, start, resp, err)
	return resp, err
}

func (c *instrumentedChat) History() []entity.Message {
	return c.inner.History()
}

func (m *Metrics) observeCall(op, model string, start time.Time, resp *usecase.GenerateResponse, err error) {
	m.GenerationDuration.WithLabelValues(op, model).Observe(time.Since(start).Seconds())
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	m.GenerationsTotal.WithLabelValues(op, model, status).Inc()
	if err == nil && resp.HasImage() {
		m.ImagesReturned.WithLabelValues(op, model).Inc()
	}
}

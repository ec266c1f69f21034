package di

import (
	"context"
	"fmt"
	"io"

	"designkit_backend/internal/feature/design/adapters/vision"
	"designkit_backend/internal/feature/design/usecase"
	"designkit_backend/internal/platform/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewDetector returns the object detector selected by RECOGNIZER_BACKEND.
// For the gemini backend it returns a nil detector so the design usecase
// falls back to its model-based detector.
func NewDetector(ctx context.Context, cfg *config.Config) (usecase.ObjectDetector, io.Closer, error) {
	switch cfg.RecognizerBackend {
	case config.RecognizerVision:
		loc, err := vision.NewObjectLocalizer(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("recognizer %q: %w", cfg.RecognizerBackend, err)
		}
		return loc, loc, nil
	default:
		return nil, nopCloser{}, nil
	}
}

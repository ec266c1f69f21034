// Package usecase は生成履歴の記録と参照を実装します。
package usecase

import (
	"context"

	"designkit_backend/internal/feature/history/domain/entity"
)

const (
	// DefaultLimit は履歴取得のデフォルト件数です。
	DefaultLimit = 50
	// MaxLimit は履歴取得の最大件数です。
	MaxLimit = 500
)

// GenerationRepository は生成履歴の永続化レイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type GenerationRepository interface {
	Create(ctx context.Context, rec *entity.GenerationRecord) error
	ListRecent(ctx context.Context, operation string, limit int) ([]entity.GenerationRecord, error)
}

type historyUsecase struct {
	repo GenerationRepository
}

// NewHistoryUsecase はhistoryUsecaseの新しいインスタンスを生成します。
func NewHistoryUsecase(repo GenerationRepository) *historyUsecase {
	return &historyUsecase{repo: repo}
}

// ListRecent は新しい順に生成履歴を返します。
// limit が0以下の場合は DefaultLimit、MaxLimit を超える場合は MaxLimit に丸めます。
func (u *historyUsecase) ListRecent(ctx context.Context, operation string, limit int) ([]entity.GenerationRecord, error) {
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	return u.repo.ListRecent(ctx, operation, limit)
}

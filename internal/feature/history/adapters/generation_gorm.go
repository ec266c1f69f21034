package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"

	"designkit_backend/internal/feature/history/domain/entity"
	"designkit_backend/internal/feature/history/usecase"
)

type generationGorm struct {
	db *gorm.DB
}

var _ usecase.GenerationRepository = (*generationGorm)(nil)

// NewGenerationRepository はgormを使った生成履歴リポジトリを生成します。
func NewGenerationRepository(db *gorm.DB) *generationGorm {
	return &generationGorm{db: db}
}

// GenerationModel は generation_records テーブルの行です。
type GenerationModel struct {
	ID            uint      `gorm:"primaryKey"`
	Operation     string    `gorm:"size:64;not null;index:gen_op_created,priority:1"`
	Model         string    `gorm:"size:128;not null"`
	Status        string    `gorm:"size:16;not null"`
	ImageReturned bool      `gorm:"not null;default:false"`
	DurationMs    int64     `gorm:"not null;default:0"`
	Error         string    `gorm:"size:512"`
	CreatedAt     time.Time `gorm:"not null;index;index:gen_op_created,priority:2"`
}

func (GenerationModel) TableName() string {
	return "generation_records"
}

func toModel(e *entity.GenerationRecord) GenerationModel {
	return GenerationModel{
		Operation:     e.Operation,
		Model:         e.Model,
		Status:        e.Status,
		ImageReturned: e.ImageReturned,
		DurationMs:    e.DurationMs,
		Error:         e.Error,
		CreatedAt:     e.CreatedAt,
	}
}

func toEntity(m GenerationModel) entity.GenerationRecord {
	return entity.GenerationRecord{
		ID:            m.ID,
		Operation:     m.Operation,
		Model:         m.Model,
		Status:        m.Status,
		ImageReturned: m.ImageReturned,
		DurationMs:    m.DurationMs,
		Error:         m.Error,
		CreatedAt:     m.CreatedAt,
	}
}

// Create は記録を1件保存し、採番されたIDを rec に反映します。
func (r *generationGorm) Create(ctx context.Context, rec *entity.GenerationRecord) error {
	m := toModel(rec)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	rec.ID = m.ID
	return nil
}

// ListRecent は新しい順に最大 limit 件を返します。operation が空でなければその操作に絞り込みます。
func (r *generationGorm) ListRecent(ctx context.Context, operation string, limit int) ([]entity.GenerationRecord, error) {
	var rows []GenerationModel
	q := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if operation != "" {
		q = q.Where("operation = ?", operation)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.GenerationRecord, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

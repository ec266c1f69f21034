package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"designkit_backend/internal/feature/history/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&GenerationModel{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func TestNewGenerationRepository(t *testing.T) {
	db := setupTestDB(t)

	repo := NewGenerationRepository(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestGenerationGorm_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGenerationRepository(db)
	ctx := context.Background()

	rec := &entity.GenerationRecord{
		Operation:     "generate_image",
		Model:         "gemini-2.5-flash-image",
		Status:        entity.StatusOK,
		ImageReturned: true,
		DurationMs:    1234,
		CreatedAt:     time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(ctx, rec))
	assert.NotZero(t, rec.ID, "expected ID to be assigned")

	var stored GenerationModel
	require.NoError(t, db.First(&stored, rec.ID).Error)
	assert.Equal(t, "generate_image", stored.Operation)
	assert.True(t, stored.ImageReturned)
	assert.Equal(t, int64(1234), stored.DurationMs)
}

func TestGenerationGorm_ListRecent(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		operation string
		limit     int
		wantOps   []string
	}{
		{
			name:    "success: newest first",
			limit:   10,
			wantOps: []string{"room_style", "analyze_room", "generate_image"},
		},
		{
			name:    "success: limit applied",
			limit:   2,
			wantOps: []string{"room_style", "analyze_room"},
		},
		{
			name:      "success: filtered by operation",
			operation: "analyze_room",
			limit:     10,
			wantOps:   []string{"analyze_room"},
		},
		{
			name:      "success: unknown operation yields empty list",
			operation: "nothing",
			limit:     10,
			wantOps:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			repo := NewGenerationRepository(db)
			ctx := context.Background()

			for i, op := range []string{"generate_image", "analyze_room", "room_style"} {
				require.NoError(t, repo.Create(ctx, &entity.GenerationRecord{
					Operation: op,
					Model:     "m",
					Status:    entity.StatusOK,
					CreatedAt: base.Add(time.Duration(i) * time.Minute),
				}))
			}

			got, err := repo.ListRecent(ctx, tt.operation, tt.limit)
			require.NoError(t, err)

			ops := make([]string, 0, len(got))
			for _, r := range got {
				ops = append(ops, r.Operation)
			}
			assert.Equal(t, tt.wantOps, ops)
		})
	}
}

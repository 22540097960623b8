package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/models"
)

func setupTestDB(t *testing.T, dsn string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Student{}, &models.Lesson{}, &models.Attempt{}, &models.Response{}, &models.EarnedBadge{}))
	return db
}

func TestBadgeRepositoryCreateIfAbsent(t *testing.T) {
	db := setupTestDB(t, "file:badge_repo_create?mode=memory&cache=shared")
	repo := NewBadgeRepository(db)

	student := models.Student{Name: "Asha", Email: "asha@example.com"}
	require.NoError(t, db.Create(&student).Error)

	ctx := context.Background()
	earnedAt := time.Now().UTC()

	created, err := repo.CreateIfAbsent(ctx, student.ID, "first-steps", earnedAt)
	require.NoError(t, err)
	require.True(t, created)

	// Second create for the same pair is a no-op, not an error.
	created, err = repo.CreateIfAbsent(ctx, student.ID, "first-steps", earnedAt.Add(time.Hour))
	require.NoError(t, err)
	require.False(t, created)

	var count int64
	require.NoError(t, db.Model(&models.EarnedBadge{}).
		Where("student_id = ? AND badge_id = ?", student.ID, "first-steps").
		Count(&count).Error)
	require.Equal(t, int64(1), count)

	// A different badge for the same student is an independent key.
	created, err = repo.CreateIfAbsent(ctx, student.ID, "streak-spark", earnedAt)
	require.NoError(t, err)
	require.True(t, created)
}

func TestBadgeRepositoryListEarnedOrdersByEarnedAt(t *testing.T) {
	db := setupTestDB(t, "file:badge_repo_list?mode=memory&cache=shared")
	repo := NewBadgeRepository(db)

	student := models.Student{Name: "Ben", Email: "ben@example.com"}
	require.NoError(t, db.Create(&student).Error)

	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	_, err := repo.CreateIfAbsent(ctx, student.ID, "streak-spark", base.Add(time.Hour))
	require.NoError(t, err)
	_, err = repo.CreateIfAbsent(ctx, student.ID, "first-steps", base)
	require.NoError(t, err)

	earned, err := repo.ListEarned(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, earned, 2)
	require.Equal(t, "first-steps", earned[0].BadgeID)
	require.Equal(t, "streak-spark", earned[1].BadgeID)

	// Another student's list is untouched.
	other, err := repo.ListEarned(ctx, student.ID+1)
	require.NoError(t, err)
	require.Empty(t, other)
}

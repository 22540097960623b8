package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/models"
)

func TestAttemptRepositoryHistoryRoundTrip(t *testing.T) {
	db := setupTestDB(t, "file:attempt_repo_history?mode=memory&cache=shared")
	repo := NewAttemptRepository(db)
	ctx := context.Background()

	student := models.Student{Name: "Chitra", Email: "chitra@example.com"}
	require.NoError(t, db.Create(&student).Error)
	lesson := models.Lesson{Title: "Animals", Topic: "nouns"}
	require.NoError(t, db.Create(&lesson).Error)

	start := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)

	second := models.Attempt{StudentID: student.ID, LessonID: lesson.ID, StartedAt: start.Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, &second))
	first := models.Attempt{StudentID: student.ID, LessonID: lesson.ID, StartedAt: start}
	require.NoError(t, repo.Create(ctx, &first))

	require.NoError(t, repo.AddResponse(ctx, first.ID, &models.Response{Correct: true, AnsweredAt: start.Add(time.Minute)}))
	require.NoError(t, repo.AddResponse(ctx, first.ID, &models.Response{Correct: false, AnsweredAt: start.Add(2 * time.Minute)}))

	attempts, err := repo.ListByStudent(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	require.Equal(t, first.ID, attempts[0].ID, "expected oldest attempt first")
	require.Len(t, attempts[0].Responses, 2)

	reloaded, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, 1, reloaded.CorrectCount)
	require.Equal(t, 1, reloaded.IncorrectCount)
}

func TestAttemptRepositoryMarkCompletedIsWriteOnce(t *testing.T) {
	db := setupTestDB(t, "file:attempt_repo_complete?mode=memory&cache=shared")
	repo := NewAttemptRepository(db)
	ctx := context.Background()

	student := models.Student{Name: "Dev", Email: "dev@example.com"}
	require.NoError(t, db.Create(&student).Error)
	lesson := models.Lesson{Title: "Colors"}
	require.NoError(t, db.Create(&lesson).Error)

	attempt := models.Attempt{StudentID: student.ID, LessonID: lesson.ID, StartedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, &attempt))

	firstCompletion := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.MarkCompleted(ctx, attempt.ID, firstCompletion))
	require.NoError(t, repo.MarkCompleted(ctx, attempt.ID, firstCompletion.Add(time.Hour)))

	reloaded, err := repo.GetByID(ctx, attempt.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.CompletedAt)
	require.True(t, reloaded.CompletedAt.Equal(firstCompletion), "completion timestamp must not be overwritten")
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/dto"
	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/models"
	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/repository"
)

func setupAttemptService(t *testing.T, dsn string) (AttemptService, *gorm.DB) {
	t.Helper()
	db := setupServiceDB(t, dsn)

	validate := validator.New(validator.WithRequiredStructEnabled())
	studentRepo := repository.NewStudentRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)

	progress := NewProgressService(studentRepo, attemptRepo, nil, time.Minute, zerolog.Nop())
	badgeSvc := NewBadgeService(defaultCatalog(t), progress, repository.NewBadgeRepository(db), nil, "", zerolog.Nop())

	return NewAttemptService(attemptRepo, studentRepo, lessonRepo, progress, badgeSvc, validate, zerolog.Nop()), db
}

func boolPointer(v bool) *bool {
	return &v
}

func TestAttemptLifecycleAwardsFirstCompletionBadge(t *testing.T) {
	svc, db := setupAttemptService(t, "file:attempt_lifecycle?mode=memory&cache=shared")
	ctx := context.Background()

	student := models.Student{Name: "Hana", Email: "hana@example.com"}
	require.NoError(t, db.Create(&student).Error)
	lesson := models.Lesson{Title: "Verbs"}
	require.NoError(t, db.Create(&lesson).Error)

	started, err := svc.Start(ctx, student.ID, dto.AttemptStartRequest{LessonID: lesson.ID})
	require.NoError(t, err)
	require.Nil(t, started.CompletedAt)

	for i := 0; i < 3; i++ {
		_, err = svc.RecordResponse(ctx, started.ID, dto.ResponseCreateRequest{Correct: boolPointer(true)})
		require.NoError(t, err)
	}

	completion, err := svc.Complete(ctx, started.ID)
	require.NoError(t, err)
	require.NotNil(t, completion.Attempt.CompletedAt)
	require.Equal(t, 3, completion.Attempt.CorrectCount)

	ids := make([]string, 0, len(completion.NewBadges))
	for _, badge := range completion.NewBadges {
		ids = append(ids, badge.ID)
	}
	require.Equal(t, []string{"first-steps", "perfect-lesson"}, ids)
}

func TestAttemptCompleteIsSafeToRetrigger(t *testing.T) {
	svc, db := setupAttemptService(t, "file:attempt_retrigger?mode=memory&cache=shared")
	ctx := context.Background()

	student := models.Student{Name: "Iris", Email: "iris@example.com"}
	require.NoError(t, db.Create(&student).Error)
	lesson := models.Lesson{Title: "Seasons"}
	require.NoError(t, db.Create(&lesson).Error)

	started, err := svc.Start(ctx, student.ID, dto.AttemptStartRequest{LessonID: lesson.ID})
	require.NoError(t, err)
	_, err = svc.RecordResponse(ctx, started.ID, dto.ResponseCreateRequest{Correct: boolPointer(true)})
	require.NoError(t, err)

	first, err := svc.Complete(ctx, started.ID)
	require.NoError(t, err)
	require.NotEmpty(t, first.NewBadges)

	// Re-clicking finish runs another check; the award path is
	// idempotent, so nothing is double-awarded and the original
	// completion timestamp survives.
	second, err := svc.Complete(ctx, started.ID)
	require.NoError(t, err)
	require.Empty(t, second.NewBadges)
	require.True(t, second.Attempt.CompletedAt.Equal(*first.Attempt.CompletedAt))
}

func TestRecordResponseRejectsCompletedAttempt(t *testing.T) {
	svc, db := setupAttemptService(t, "file:attempt_frozen?mode=memory&cache=shared")
	ctx := context.Background()

	student := models.Student{Name: "Jai", Email: "jai@example.com"}
	require.NoError(t, db.Create(&student).Error)
	lesson := models.Lesson{Title: "Weather"}
	require.NoError(t, db.Create(&lesson).Error)

	started, err := svc.Start(ctx, student.ID, dto.AttemptStartRequest{LessonID: lesson.ID})
	require.NoError(t, err)
	_, err = svc.Complete(ctx, started.ID)
	require.NoError(t, err)

	_, err = svc.RecordResponse(ctx, started.ID, dto.ResponseCreateRequest{Correct: boolPointer(false)})
	require.ErrorIs(t, err, ErrAttemptCompleted)
}

func TestAttemptStartValidation(t *testing.T) {
	svc, db := setupAttemptService(t, "file:attempt_validation?mode=memory&cache=shared")
	ctx := context.Background()

	student := models.Student{Name: "Kavi", Email: "kavi@example.com"}
	require.NoError(t, db.Create(&student).Error)

	_, err := svc.Start(ctx, student.ID, dto.AttemptStartRequest{})
	require.Error(t, err, "missing lesson id must fail validation")

	_, err = svc.Start(ctx, student.ID, dto.AttemptStartRequest{LessonID: 999})
	require.ErrorIs(t, err, ErrLessonNotFound)

	_, err = svc.Start(ctx, 999, dto.AttemptStartRequest{LessonID: 1})
	require.ErrorIs(t, err, ErrStudentNotFound)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/dto"
	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/models"
	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/repository"
)

// ErrAttemptNotFound indicates the attempt record does not exist.
var ErrAttemptNotFound = errors.New("attempt not found")

// ErrAttemptCompleted indicates a write against an already-finished attempt.
var ErrAttemptCompleted = errors.New("attempt already completed")

// AttemptService owns the write side of lesson playthroughs: starting an
// attempt, recording answers, and finishing the attempt. Completion
// triggers an inline badge check so a student sees new badges the moment
// they earn them.
type AttemptService interface {
	Start(ctx context.Context, studentID uint, payload dto.AttemptStartRequest) (dto.AttemptResponse, error)
	RecordResponse(ctx context.Context, attemptID uint, payload dto.ResponseCreateRequest) (dto.AttemptResponse, error)
	Complete(ctx context.Context, attemptID uint) (dto.AttemptCompletionResponse, error)
}

type attemptService struct {
	attempts  repository.AttemptRepository
	students  repository.StudentRepository
	lessons   repository.LessonRepository
	progress  ProgressService
	badgeScan BadgeService
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAttemptService constructs an AttemptService instance.
func NewAttemptService(attempts repository.AttemptRepository, students repository.StudentRepository, lessons repository.LessonRepository, progress ProgressService, badgeScan BadgeService, validate *validator.Validate, logger zerolog.Logger) AttemptService {
	return &attemptService{
		attempts:  attempts,
		students:  students,
		lessons:   lessons,
		progress:  progress,
		badgeScan: badgeScan,
		validator: validate,
		logger:    logger.With().Str("component", "attempt_service").Logger(),
		now:       time.Now,
	}
}

func (s *attemptService) Start(ctx context.Context, studentID uint, payload dto.AttemptStartRequest) (dto.AttemptResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AttemptResponse{}, err
	}

	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AttemptResponse{}, ErrStudentNotFound
		}
		return dto.AttemptResponse{}, fmt.Errorf("read student: %w", err)
	}

	if _, err := s.lessons.GetByID(ctx, payload.LessonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AttemptResponse{}, ErrLessonNotFound
		}
		return dto.AttemptResponse{}, fmt.Errorf("read lesson: %w", err)
	}

	attempt := models.Attempt{
		StudentID: studentID,
		LessonID:  payload.LessonID,
		StartedAt: s.now().UTC(),
	}

	if err := s.attempts.Create(ctx, &attempt); err != nil {
		return dto.AttemptResponse{}, fmt.Errorf("create attempt: %w", err)
	}

	return dto.NewAttemptResponse(attempt), nil
}

func (s *attemptService) RecordResponse(ctx context.Context, attemptID uint, payload dto.ResponseCreateRequest) (dto.AttemptResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AttemptResponse{}, err
	}

	attempt, err := s.attempts.GetByID(ctx, attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AttemptResponse{}, ErrAttemptNotFound
		}
		return dto.AttemptResponse{}, fmt.Errorf("read attempt: %w", err)
	}

	if attempt.IsCompleted() {
		return dto.AttemptResponse{}, ErrAttemptCompleted
	}

	response := models.Response{
		Correct:    *payload.Correct,
		AnsweredAt: s.now().UTC(),
	}

	if err := s.attempts.AddResponse(ctx, attempt.ID, &response); err != nil {
		return dto.AttemptResponse{}, fmt.Errorf("record response: %w", err)
	}

	s.progress.InvalidateCache(ctx, attempt.StudentID)

	updated, err := s.attempts.GetByID(ctx, attempt.ID)
	if err != nil {
		return dto.AttemptResponse{}, fmt.Errorf("reload attempt: %w", err)
	}

	return dto.NewAttemptResponse(updated), nil
}

// Complete finishes an attempt and runs the badge check. Re-completing
// an already-finished attempt keeps the original completion timestamp
// and still runs the check; the award path is idempotent, so a student
// hammering the finish button is harmless.
func (s *attemptService) Complete(ctx context.Context, attemptID uint) (dto.AttemptCompletionResponse, error) {
	attempt, err := s.attempts.GetByID(ctx, attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AttemptCompletionResponse{}, ErrAttemptNotFound
		}
		return dto.AttemptCompletionResponse{}, fmt.Errorf("read attempt: %w", err)
	}

	if !attempt.IsCompleted() {
		if err := s.attempts.MarkCompleted(ctx, attempt.ID, s.now().UTC()); err != nil {
			return dto.AttemptCompletionResponse{}, fmt.Errorf("complete attempt: %w", err)
		}
		s.progress.InvalidateCache(ctx, attempt.StudentID)
	}

	updated, err := s.attempts.GetByID(ctx, attempt.ID)
	if err != nil {
		return dto.AttemptCompletionResponse{}, fmt.Errorf("reload attempt: %w", err)
	}

	newBadges, err := s.badgeScan.Check(ctx, attempt.StudentID)
	if err != nil {
		// The completion itself is durable; surface the check failure and
		// let the student (or the next completion) retry it safely.
		return dto.AttemptCompletionResponse{}, fmt.Errorf("badge check: %w", err)
	}

	return dto.AttemptCompletionResponse{
		Attempt:   dto.NewAttemptResponse(updated),
		NewBadges: newBadges,
	}, nil
}

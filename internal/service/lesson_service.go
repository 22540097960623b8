package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/dto"
	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/repository"
)

// ErrLessonNotFound indicates a lesson could not be found.
var ErrLessonNotFound = errors.New("lesson not found")

// LessonService exposes the lesson catalog to clients.
type LessonService interface {
	List(ctx context.Context) ([]dto.LessonResponse, error)
	Get(ctx context.Context, id uint) (dto.LessonResponse, error)
}

type lessonService struct {
	lessons repository.LessonRepository
	logger  zerolog.Logger
}

// NewLessonService constructs a LessonService instance.
func NewLessonService(lessons repository.LessonRepository, logger zerolog.Logger) LessonService {
	return &lessonService{
		lessons: lessons,
		logger:  logger.With().Str("component", "lesson_service").Logger(),
	}
}

func (s *lessonService) List(ctx context.Context) ([]dto.LessonResponse, error) {
	lessons, err := s.lessons.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}

	return dto.NewLessonResponseSlice(lessons), nil
}

func (s *lessonService) Get(ctx context.Context, id uint) (dto.LessonResponse, error) {
	lesson, err := s.lessons.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LessonResponse{}, ErrLessonNotFound
		}
		return dto.LessonResponse{}, fmt.Errorf("read lesson: %w", err)
	}

	return dto.NewLessonResponse(lesson), nil
}

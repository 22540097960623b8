package dto

import (
	"time"

	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/models"
)

// AttemptStartRequest begins a lesson attempt for a student.
type AttemptStartRequest struct {
	LessonID uint `json:"lesson_id" validate:"required,gt=0"`
}

// ResponseCreateRequest records one answered question in an attempt.
type ResponseCreateRequest struct {
	Correct *bool `json:"correct" validate:"required"`
}

// AttemptResponse is the API shape of a lesson attempt.
type AttemptResponse struct {
	ID             uint       `json:"id"`
	StudentID      uint       `json:"student_id"`
	LessonID       uint       `json:"lesson_id"`
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at"`
	CorrectCount   int        `json:"correct_count"`
	IncorrectCount int        `json:"incorrect_count"`
}

// NewAttemptResponse maps an attempt model onto the API shape.
func NewAttemptResponse(attempt models.Attempt) AttemptResponse {
	return AttemptResponse{
		ID:             attempt.ID,
		StudentID:      attempt.StudentID,
		LessonID:       attempt.LessonID,
		StartedAt:      attempt.StartedAt,
		CompletedAt:    attempt.CompletedAt,
		CorrectCount:   attempt.CorrectCount,
		IncorrectCount: attempt.IncorrectCount,
	}
}

// AttemptCompletionResponse is returned when an attempt is finished; it
// carries any badges the inline check newly awarded.
type AttemptCompletionResponse struct {
	Attempt   AttemptResponse `json:"attempt"`
	NewBadges []BadgeResponse `json:"new_badges"`
}

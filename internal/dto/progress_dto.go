package dto

import (
	"time"

	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/badges"
)

// ProgressResponse is the student progress payload returned to clients.
type ProgressResponse struct {
	StudentID           uint    `json:"student_id"`
	TotalAttempts       int     `json:"total_attempts"`
	CompletedAttempts   int     `json:"completed_attempts"`
	TotalResponses      int     `json:"total_responses"`
	CorrectResponses    int     `json:"correct_responses"`
	Accuracy            float64 `json:"accuracy"`
	BestAttemptAccuracy float64 `json:"best_attempt_accuracy"`
	ActiveDays          int     `json:"active_days"`
	CurrentStreak       int     `json:"current_streak"`
	LastActiveDay       string  `json:"last_active_day,omitempty"`
}

// NewProgressResponse maps computed metrics onto the API shape.
func NewProgressResponse(studentID uint, m badges.Metrics) ProgressResponse {
	lastActive := ""
	if !m.LastActiveDay.IsZero() {
		lastActive = m.LastActiveDay.Format(time.DateOnly)
	}

	return ProgressResponse{
		StudentID:           studentID,
		TotalAttempts:       m.TotalAttempts,
		CompletedAttempts:   m.CompletedAttempts,
		TotalResponses:      m.TotalResponses,
		CorrectResponses:    m.CorrectResponses,
		Accuracy:            m.Accuracy,
		BestAttemptAccuracy: m.BestAttemptAccuracy,
		ActiveDays:          m.ActiveDays,
		CurrentStreak:       m.CurrentStreak,
		LastActiveDay:       lastActive,
	}
}

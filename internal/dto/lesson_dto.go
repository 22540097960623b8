package dto

import "github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/models"

// LessonResponse is the API shape of a lesson catalog entry.
type LessonResponse struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Topic    string `json:"topic"`
	Position int    `json:"position"`
}

// NewLessonResponse maps a lesson model onto the API shape.
func NewLessonResponse(lesson models.Lesson) LessonResponse {
	return LessonResponse{
		ID:       lesson.ID,
		Title:    lesson.Title,
		Topic:    lesson.Topic,
		Position: lesson.Position,
	}
}

// NewLessonResponseSlice maps lessons in catalog order.
func NewLessonResponseSlice(lessons []models.Lesson) []LessonResponse {
	out := make([]LessonResponse, 0, len(lessons))
	for _, lesson := range lessons {
		out = append(out, NewLessonResponse(lesson))
	}
	return out
}

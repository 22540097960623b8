package models

import "time"

// Attempt is one playthrough of a lesson by a student. It is created when
// the student starts the lesson and becomes immutable once CompletedAt is
// set; the progress engine only ever reads it.
type Attempt struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	StudentID      uint       `gorm:"not null;index" json:"student_id"`
	LessonID       uint       `gorm:"not null" json:"lesson_id"`
	StartedAt      time.Time  `gorm:"not null" json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at"`
	CorrectCount   int        `gorm:"not null;default:0" json:"correct_count"`
	IncorrectCount int        `gorm:"not null;default:0" json:"incorrect_count"`
	Responses      []Response `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"responses,omitempty"`
	Student        Student    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Lesson         Lesson     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// IsCompleted reports whether the attempt has been finished.
func (a Attempt) IsCompleted() bool {
	return a.CompletedAt != nil
}

// Response is one answered question inside an attempt.
type Response struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	AttemptID  uint      `gorm:"not null;index" json:"attempt_id"`
	Correct    bool      `gorm:"not null" json:"correct"`
	AnsweredAt time.Time `gorm:"not null" json:"answered_at"`
	CreatedAt  time.Time `json:"created_at"`
}

package models

import "time"

// EarnedBadge records that a student earned a badge. Rows are append-only
// and written exclusively through BadgeRepository.CreateIfAbsent; the
// composite unique index is what makes the award at-most-once under
// concurrent checks.
type EarnedBadge struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"not null;uniqueIndex:idx_student_badge" json:"student_id"`
	BadgeID   string    `gorm:"size:64;not null;uniqueIndex:idx_student_badge" json:"badge_id"`
	EarnedAt  time.Time `gorm:"not null" json:"earned_at"`
	CreatedAt time.Time `json:"created_at"`
}

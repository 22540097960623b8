package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/models"
)

// BadgeRepository owns the earned-badge records. CreateIfAbsent is the
// only write path; combined with the unique (student_id, badge_id) index
// it gives the at-most-once award guarantee without any in-process
// locking, so concurrent checks in different processes stay safe.
type BadgeRepository interface {
	ListEarned(ctx context.Context, studentID uint) ([]models.EarnedBadge, error)
	CreateIfAbsent(ctx context.Context, studentID uint, badgeID string, earnedAt time.Time) (bool, error)
}

type badgeRepository struct {
	db *gorm.DB
}

// NewBadgeRepository instantiates the repository.
func NewBadgeRepository(db *gorm.DB) BadgeRepository {
	return &badgeRepository{db: db}
}

func (r *badgeRepository) ListEarned(ctx context.Context, studentID uint) ([]models.EarnedBadge, error) {
	var earned []models.EarnedBadge
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("earned_at ASC, id ASC").
		Find(&earned).Error; err != nil {
		return nil, err
	}

	return earned, nil
}

// CreateIfAbsent inserts the (student, badge) record unless it already
// exists. The insert rides on ON CONFLICT DO NOTHING against the unique
// index; RowsAffected distinguishes a fresh award (true) from a record
// some earlier or concurrent check already created (false, nil error).
func (r *badgeRepository) CreateIfAbsent(ctx context.Context, studentID uint, badgeID string, earnedAt time.Time) (bool, error) {
	record := models.EarnedBadge{
		StudentID: studentID,
		BadgeID:   badgeID,
		EarnedAt:  earnedAt,
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "badge_id"}},
		DoNothing: true,
	}).Create(&record)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

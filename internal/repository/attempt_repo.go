package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/models"
)

// AttemptRepository stores lesson attempts and their responses. The
// progress engine treats everything here as write-once input: responses
// are only appended and an attempt is frozen once completed.
type AttemptRepository interface {
	Create(ctx context.Context, attempt *models.Attempt) error
	GetByID(ctx context.Context, id uint) (models.Attempt, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.Attempt, error)
	AddResponse(ctx context.Context, attemptID uint, response *models.Response) error
	MarkCompleted(ctx context.Context, attemptID uint, completedAt time.Time) error
}

type attemptRepository struct {
	db *gorm.DB
}

// NewAttemptRepository instantiates the repository.
func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(ctx context.Context, attempt *models.Attempt) error {
	return r.db.WithContext(ctx).Create(attempt).Error
}

func (r *attemptRepository) GetByID(ctx context.Context, id uint) (models.Attempt, error) {
	var attempt models.Attempt
	if err := r.db.WithContext(ctx).Preload("Responses").First(&attempt, id).Error; err != nil {
		return models.Attempt{}, err
	}

	return attempt, nil
}

// ListByStudent returns the student's full history, oldest first, with
// responses preloaded. This is the single read the stats recomputation
// is a pure function of.
func (r *attemptRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Attempt, error) {
	var attempts []models.Attempt
	if err := r.db.WithContext(ctx).
		Preload("Responses").
		Where("student_id = ?", studentID).
		Order("started_at ASC, id ASC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}

	return attempts, nil
}

// AddResponse appends a response and bumps the attempt's outcome summary
// in the same transaction so the two never drift apart.
func (r *attemptRepository) AddResponse(ctx context.Context, attemptID uint, response *models.Response) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		response.AttemptID = attemptID
		if err := tx.Create(response).Error; err != nil {
			return err
		}

		column := "incorrect_count"
		if response.Correct {
			column = "correct_count"
		}

		return tx.Model(&models.Attempt{}).
			Where("id = ?", attemptID).
			UpdateColumn(column, gorm.Expr(column+" + 1")).Error
	})
}

func (r *attemptRepository) MarkCompleted(ctx context.Context, attemptID uint, completedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Attempt{}).
		Where("id = ?", attemptID).
		Where("completed_at IS NULL").
		Update("completed_at", completedAt).Error
}

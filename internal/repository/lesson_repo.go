package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/models"
)

// LessonRepository provides read access to the lesson catalog.
type LessonRepository interface {
	List(ctx context.Context) ([]models.Lesson, error)
	GetByID(ctx context.Context, id uint) (models.Lesson, error)
	Create(ctx context.Context, lesson *models.Lesson) error
}

type lessonRepository struct {
	db *gorm.DB
}

// NewLessonRepository instantiates the repository.
func NewLessonRepository(db *gorm.DB) LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) List(ctx context.Context) ([]models.Lesson, error) {
	var lessons []models.Lesson
	if err := r.db.WithContext(ctx).Order("position ASC, id ASC").Find(&lessons).Error; err != nil {
		return nil, err
	}

	return lessons, nil
}

func (r *lessonRepository) GetByID(ctx context.Context, id uint) (models.Lesson, error) {
	var lesson models.Lesson
	if err := r.db.WithContext(ctx).First(&lesson, id).Error; err != nil {
		return models.Lesson{}, err
	}

	return lesson, nil
}

func (r *lessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	return r.db.WithContext(ctx).Create(lesson).Error
}

package repository

import (
	"fitness_tracker_backend/internal/model"

	"gorm.io/gorm"
)

type WorkoutSessionRepository struct {
	DB *gorm.DB
}

func NewWorkoutSessionRepository(db *gorm.DB) *WorkoutSessionRepository {
	return &WorkoutSessionRepository{DB: db}
}

func (r *WorkoutSessionRepository) Create(session *model.WorkoutSession) error {
	return r.DB.Create(session).Error
}

func (r *WorkoutSessionRepository) FindByUserOrdered(userID uint, limit int) ([]model.WorkoutSession, error) {
	if limit <= 0 {
		limit = 50
	}
	var sessions []model.WorkoutSession
	err := r.DB.Where("user_id = ?", userID).Order("completed_at DESC").Limit(limit).Find(&sessions).Error
	return sessions, err
}

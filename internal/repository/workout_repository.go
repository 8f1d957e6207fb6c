package repository

import (
	"fitness_tracker_backend/internal/model"

	"gorm.io/gorm"
)

type WorkoutRepository struct {
	DB *gorm.DB
}

func NewWorkoutRepository(db *gorm.DB) *WorkoutRepository {
	return &WorkoutRepository{DB: db}
}

func (r *WorkoutRepository) Create(workout *model.Workout) error {
	return r.DB.Create(workout).Error
}

func (r *WorkoutRepository) FindByIDAndUserID(id, userID uint) (*model.Workout, error) {
	var workout model.Workout
	err := r.DB.Preload("Exercises", func(db *gorm.DB) *gorm.DB {
		return db.Order("workout_exercises.position ASC")
	}).Where("id = ? AND user_id = ?", id, userID).First(&workout).Error
	if err != nil {
		return nil, err
	}
	return &workout, nil
}

func (r *WorkoutRepository) FindByUser(userID uint) ([]model.Workout, error) {
	var workouts []model.Workout
	err := r.DB.Preload("Exercises").Where("user_id = ?", userID).Order("created_at DESC").Find(&workouts).Error
	return workouts, err
}

func (r *WorkoutRepository) Update(workout *model.Workout) error {
	return r.DB.Save(workout).Error
}

func (r *WorkoutRepository) Delete(workout *model.Workout) error {
	return r.DB.Delete(workout).Error
}

package repository

import (
	"fitness_tracker_backend/internal/model"

	"gorm.io/gorm"
)

type ExerciseRepository struct {
	DB *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) *ExerciseRepository {
	return &ExerciseRepository{DB: db}
}

func (r *ExerciseRepository) Create(exercise *model.Exercise) error {
	return r.DB.Create(exercise).Error
}

func (r *ExerciseRepository) FindByID(id uint) (*model.Exercise, error) {
	var exercise model.Exercise
	err := r.DB.First(&exercise, id).Error
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

// Search 按名称/肌群的简单模糊查询
func (r *ExerciseRepository) Search(query, muscleGroup string, limit int) ([]model.Exercise, error) {
	db := r.DB.Model(&model.Exercise{})
	if query != "" {
		db = db.Where("name LIKE ?", "%"+query+"%")
	}
	if muscleGroup != "" {
		db = db.Where("muscle_group = ?", muscleGroup)
	}
	if limit <= 0 {
		limit = 50
	}
	var exercises []model.Exercise
	err := db.Order("name ASC").Limit(limit).Find(&exercises).Error
	return exercises, err
}

func (r *ExerciseRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Exercise{}).Count(&count).Error
	return count, err
}

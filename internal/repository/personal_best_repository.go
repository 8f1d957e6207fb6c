package repository

import (
	"fitness_tracker_backend/internal/model"

	"gorm.io/gorm"
)

type PersonalBestRepository struct {
	DB *gorm.DB
}

func NewPersonalBestRepository(db *gorm.DB) *PersonalBestRepository {
	return &PersonalBestRepository{DB: db}
}

// FindByUserAndExercise 不存在时返回 gorm.ErrRecordNotFound
func (r *PersonalBestRepository) FindByUserAndExercise(userID, exerciseID uint) (*model.ExercisePersonalBest, error) {
	var best model.ExercisePersonalBest
	err := r.DB.Where("user_id = ? AND exercise_id = ?", userID, exerciseID).First(&best).Error
	if err != nil {
		return nil, err
	}
	return &best, nil
}

func (r *PersonalBestRepository) FindByUser(userID uint) ([]model.ExercisePersonalBest, error) {
	var bests []model.ExercisePersonalBest
	err := r.DB.Where("user_id = ?", userID).Order("exercise_id ASC").Find(&bests).Error
	return bests, err
}

// Save 新建或更新 (ID 为零值时走插入)
func (r *PersonalBestRepository) Save(best *model.ExercisePersonalBest) error {
	return r.DB.Save(best).Error
}

package service

import (
	"errors"

	"fitness_tracker_backend/internal/model"
	"fitness_tracker_backend/internal/repository"
	"fitness_tracker_backend/internal/util"

	"gorm.io/gorm"
)

type ExerciseService struct {
	ExerciseRepo     *repository.ExerciseRepository
	PersonalBestRepo *repository.PersonalBestRepository
}

func NewExerciseService(exerciseRepo *repository.ExerciseRepository, personalBestRepo *repository.PersonalBestRepository) *ExerciseService {
	return &ExerciseService{
		ExerciseRepo:     exerciseRepo,
		PersonalBestRepo: personalBestRepo,
	}
}

func (s *ExerciseService) Search(query, muscleGroup string, limit int) ([]model.Exercise, error) {
	return s.ExerciseRepo.Search(query, muscleGroup, limit)
}

func (s *ExerciseService) GetExercise(id uint) (*model.Exercise, error) {
	exercise, err := s.ExerciseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

func (s *ExerciseService) ListPersonalBests(userID uint) ([]model.ExercisePersonalBest, error) {
	return s.PersonalBestRepo.FindByUser(userID)
}

func (s *ExerciseService) GetPersonalBest(userID, exerciseID uint) (*model.ExercisePersonalBest, error) {
	best, err := s.PersonalBestRepo.FindByUserAndExercise(userID, exerciseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrRecordNotFound
		}
		return nil, err
	}
	return best, nil
}

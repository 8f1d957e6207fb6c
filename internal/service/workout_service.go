package service

import (
	"errors"
	"time"

	"fitness_tracker_backend/internal/model"
	"fitness_tracker_backend/internal/repository"
	"fitness_tracker_backend/internal/util"

	"gorm.io/gorm"
)

type WorkoutExerciseRequest struct {
	ExerciseID uint `json:"exerciseId" binding:"required"`
	TargetSets int  `json:"targetSets" binding:"min=0"`
	TargetReps int  `json:"targetReps" binding:"min=0"`
}

type WorkoutRequest struct {
	Name      string                   `json:"name" binding:"required,max=100"`
	Notes     string                   `json:"notes"`
	Exercises []WorkoutExerciseRequest `json:"exercises"`
}

type CompleteWorkoutRequest struct {
	Notes string `json:"notes"`
}

// CompleteWorkoutResponse 完成接口的响应: 会话记录加上状态机的结果
type CompleteWorkoutResponse struct {
	Session *model.WorkoutSession `json:"session"`
	Streak  *StreakUpdateResult   `json:"streak"`
}

// WorkoutService 训练组合的 CRUD 与完成流程。完成流程先持久化
// WorkoutSession, 再同步调用连续打卡状态机, 把结果透传给客户端。
type WorkoutService struct {
	WorkoutRepo *repository.WorkoutRepository
	SessionRepo *repository.WorkoutSessionRepository
	Exercises   *repository.ExerciseRepository
	Streak      *StreakService
}

func NewWorkoutService(
	workoutRepo *repository.WorkoutRepository,
	sessionRepo *repository.WorkoutSessionRepository,
	exerciseRepo *repository.ExerciseRepository,
	streak *StreakService,
) *WorkoutService {
	return &WorkoutService{
		WorkoutRepo: workoutRepo,
		SessionRepo: sessionRepo,
		Exercises:   exerciseRepo,
		Streak:      streak,
	}
}

func (s *WorkoutService) CreateWorkout(userID uint, req WorkoutRequest) (*model.Workout, error) {
	exercises := make([]model.WorkoutExercise, 0, len(req.Exercises))
	for i, ex := range req.Exercises {
		if _, err := s.Exercises.FindByID(ex.ExerciseID); err != nil {
			return nil, util.ErrExerciseNotFound
		}
		exercises = append(exercises, model.WorkoutExercise{
			ExerciseID: ex.ExerciseID,
			Position:   i,
			TargetSets: ex.TargetSets,
			TargetReps: ex.TargetReps,
		})
	}

	workout := &model.Workout{
		UserID:    userID,
		Name:      req.Name,
		Notes:     req.Notes,
		Exercises: exercises,
	}
	if err := s.WorkoutRepo.Create(workout); err != nil {
		return nil, err
	}
	return workout, nil
}

func (s *WorkoutService) GetWorkout(userID, workoutID uint) (*model.Workout, error) {
	workout, err := s.WorkoutRepo.FindByIDAndUserID(workoutID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

func (s *WorkoutService) ListWorkouts(userID uint) ([]model.Workout, error) {
	return s.WorkoutRepo.FindByUser(userID)
}

// CompleteWorkout 记录一次完成并驱动状态机
func (s *WorkoutService) CompleteWorkout(userID, workoutID uint, req CompleteWorkoutRequest) (*CompleteWorkoutResponse, error) {
	if _, err := s.GetWorkout(userID, workoutID); err != nil {
		return nil, err
	}

	session := &model.WorkoutSession{
		UserID:      userID,
		WorkoutID:   workoutID,
		CompletedAt: time.Now(),
		Notes:       req.Notes,
	}
	if err := s.SessionRepo.Create(session); err != nil {
		return nil, err
	}

	streakResult, err := s.Streak.OnWorkoutCompleted(userID, workoutID)
	if err != nil {
		return nil, err
	}

	return &CompleteWorkoutResponse{Session: session, Streak: streakResult}, nil
}

func (s *WorkoutService) ListSessions(userID uint, limit int) ([]model.WorkoutSession, error) {
	return s.SessionRepo.FindByUserOrdered(userID, limit)
}

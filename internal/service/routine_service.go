package service

import (
	"errors"
	"time"

	"fitness_tracker_backend/internal/model"
	"fitness_tracker_backend/internal/repository"
	"fitness_tracker_backend/internal/util"

	"gorm.io/gorm"
)

// RoutineDayRequest 循环模式中的一天
type RoutineDayRequest struct {
	DayIndex  int           `json:"dayIndex" binding:"min=0"`
	DayType   model.DayType `json:"dayType" binding:"required,oneof=WORKOUT REST"`
	WorkoutID *uint         `json:"workoutId"`
}

// RoutineRequest 创建/更新训练计划
type RoutineRequest struct {
	Name      string              `json:"name" binding:"required,max=100"`
	Type      model.RoutineType   `json:"type" binding:"omitempty,oneof=SEQUENTIAL WEEKLY_COMPLETION"`
	StartDate *time.Time          `json:"startDate"`
	Pattern   []RoutineDayRequest `json:"pattern"`
}

// RoutineService 训练计划的 CRUD 与激活管理。激活状态是 User 上的一个
// 指针字段, 不在 Routine 上做反向引用, 激活/停用只是单字段更新。
type RoutineService struct {
	RoutineRepo *repository.RoutineRepository
	WorkoutRepo *repository.WorkoutRepository
	UserRepo    *repository.UserRepository
}

func NewRoutineService(routineRepo *repository.RoutineRepository, workoutRepo *repository.WorkoutRepository, userRepo *repository.UserRepository) *RoutineService {
	return &RoutineService{
		RoutineRepo: routineRepo,
		WorkoutRepo: workoutRepo,
		UserRepo:    userRepo,
	}
}

func (s *RoutineService) buildPattern(userID uint, days []RoutineDayRequest) ([]model.RoutineDay, error) {
	pattern := make([]model.RoutineDay, 0, len(days))
	for _, day := range days {
		if day.DayType == model.DayWorkout {
			if day.WorkoutID == nil {
				return nil, errors.New("workout day requires a workoutId")
			}
			if _, err := s.WorkoutRepo.FindByIDAndUserID(*day.WorkoutID, userID); err != nil {
				return nil, util.ErrWorkoutNotFound
			}
		}
		pattern = append(pattern, model.RoutineDay{
			DayIndex:  day.DayIndex,
			DayType:   day.DayType,
			WorkoutID: day.WorkoutID,
		})
	}
	return pattern, nil
}

func (s *RoutineService) CreateRoutine(userID uint, req RoutineRequest) (*model.Routine, error) {
	taken, err := s.RoutineRepo.ExistsByUserAndName(userID, req.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrRoutineNameTaken
	}

	pattern, err := s.buildPattern(userID, req.Pattern)
	if err != nil {
		return nil, err
	}

	routineType := req.Type
	if routineType == "" {
		routineType = model.RoutineSequential
	}

	routine := &model.Routine{
		UserID:    userID,
		Name:      req.Name,
		Type:      routineType,
		StartDate: req.StartDate,
		Pattern:   pattern,
	}
	if err := s.RoutineRepo.Create(routine); err != nil {
		return nil, err
	}
	return routine, nil
}

func (s *RoutineService) GetRoutine(userID, routineID uint) (*model.Routine, error) {
	routine, err := s.RoutineRepo.FindByIDAndUserID(routineID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrRoutineNotFound
		}
		return nil, err
	}
	return routine, nil
}

func (s *RoutineService) ListRoutines(userID uint) ([]model.Routine, error) {
	return s.RoutineRepo.FindByUserOrdered(userID)
}

// UpdateRoutine 更新名称与循环模式; 模式整体替换
func (s *RoutineService) UpdateRoutine(userID, routineID uint, req RoutineRequest) (*model.Routine, error) {
	routine, err := s.GetRoutine(userID, routineID)
	if err != nil {
		return nil, err
	}

	if req.Name != routine.Name {
		taken, err := s.RoutineRepo.ExistsByUserAndName(userID, req.Name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, util.ErrRoutineNameTaken
		}
		routine.Name = req.Name
	}
	if req.Type != "" {
		routine.Type = req.Type
	}
	routine.StartDate = req.StartDate

	pattern, err := s.buildPattern(userID, req.Pattern)
	if err != nil {
		return nil, err
	}
	if err := s.RoutineRepo.ReplacePattern(routine, pattern); err != nil {
		return nil, err
	}
	if err := s.RoutineRepo.Update(routine); err != nil {
		return nil, err
	}
	return routine, nil
}

// ActivateRoutine 把计划设为用户当前激活的计划 (User 上的单字段更新)
func (s *RoutineService) ActivateRoutine(userID, routineID uint) error {
	if _, err := s.GetRoutine(userID, routineID); err != nil {
		return err
	}
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return util.ErrUserNotFound
	}
	user.ActiveRoutineID = &routineID
	return s.UserRepo.Update(user)
}

// DeactivateRoutine 清空用户的激活计划
func (s *RoutineService) DeactivateRoutine(userID uint) error {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return util.ErrUserNotFound
	}
	user.ActiveRoutineID = nil
	return s.UserRepo.Update(user)
}

// DeleteRoutine 删除计划, 若被激活则同时清掉 User 上的指针
func (s *RoutineService) DeleteRoutine(userID, routineID uint) error {
	routine, err := s.GetRoutine(userID, routineID)
	if err != nil {
		return err
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return util.ErrUserNotFound
	}
	if user.ActiveRoutineID != nil && *user.ActiveRoutineID == routineID {
		user.ActiveRoutineID = nil
		if err := s.UserRepo.Update(user); err != nil {
			return err
		}
	}
	return s.RoutineRepo.Delete(routine)
}

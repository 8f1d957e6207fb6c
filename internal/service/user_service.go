package service

import (
	"errors"
	"time"

	"fitness_tracker_backend/internal/model"
	"fitness_tracker_backend/internal/repository"
	"fitness_tracker_backend/internal/util"

	"gorm.io/gorm"
)

type ProfileUpdateRequest struct {
	Name     string `json:"name" binding:"omitempty,max=100"`
	Timezone string `json:"timezone" binding:"omitempty,max=64"`
}

// UserService 用户资料与连续打卡状态的读取
type UserService struct {
	UserRepo *repository.UserRepository
	Streak   *StreakService
}

func NewUserService(userRepo *repository.UserRepository, streak *StreakService) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Streak:   streak,
	}
}

func (s *UserService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateProfile(userID uint, req ProfileUpdateRequest) (*model.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Timezone != "" {
		if _, err := time.LoadLocation(req.Timezone); err != nil {
			return nil, errors.New("invalid timezone")
		}
		user.Timezone = req.Timezone
	}
	user.UpdatedAt = time.Now()

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateAvatar(userID uint, url string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	user.Avatar = url
	return s.UserRepo.Update(user)
}

// GetStreak 读取前先跑惰性衰减, 保证过期状态被结算
func (s *UserService) GetStreak(userID uint) (*model.StreakInfo, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if err := s.Streak.CheckStreak(user); err != nil {
		return nil, err
	}
	info := user.Streak
	return &info, nil
}

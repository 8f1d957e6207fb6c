package repository

import (
	"fitness_tracker_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

// FindAll 全量用户, 供全局回填使用
func (r *UserRepository) FindAll() ([]model.User, error) {
	var users []model.User
	err := r.DB.Order("id ASC").Find(&users).Error
	return users, err
}

// DistinctTimezones 用户表中出现过的全部时区名
func (r *UserRepository) DistinctTimezones() ([]string, error) {
	var zones []string
	err := r.DB.Model(&model.User{}).Distinct("timezone").Where("timezone <> ''").Pluck("timezone", &zones).Error
	return zones, err
}

// FindByTimezones 指定时区内、当前有打卡截止时间的用户, 供提醒/衰减扫描使用
func (r *UserRepository) FindByTimezones(zones []string) ([]model.User, error) {
	if len(zones) == 0 {
		return nil, nil
	}
	var users []model.User
	err := r.DB.Where("timezone IN ?", zones).Where("next_workout_deadline IS NOT NULL").Find(&users).Error
	return users, err
}

// FindTopByLongestStreak 最长连续打卡排行
func (r *UserRepository) FindTopByLongestStreak(limit int) ([]model.User, error) {
	var users []model.User
	err := r.DB.Order("longest_streak DESC").Limit(limit).Find(&users).Error
	return users, err
}

func (r *UserRepository) UpdateLastSeen(userID uint) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).Update("last_seen", time.Now()).Error
}

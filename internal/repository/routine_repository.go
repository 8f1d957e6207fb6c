package repository

import (
	"fitness_tracker_backend/internal/model"

	"gorm.io/gorm"
)

type RoutineRepository struct {
	DB *gorm.DB
}

func NewRoutineRepository(db *gorm.DB) *RoutineRepository {
	return &RoutineRepository{DB: db}
}

func (r *RoutineRepository) Create(routine *model.Routine) error {
	return r.DB.Create(routine).Error
}

func (r *RoutineRepository) FindByIDAndUserID(id, userID uint) (*model.Routine, error) {
	var routine model.Routine
	err := r.DB.Preload("Pattern", func(db *gorm.DB) *gorm.DB {
		return db.Order("routine_days.day_index ASC")
	}).Where("id = ? AND user_id = ?", id, userID).First(&routine).Error
	if err != nil {
		return nil, err
	}
	return &routine, nil
}

// ExistsByUserAndName 同一用户下是否已有同名计划 (不区分大小写)
func (r *RoutineRepository) ExistsByUserAndName(userID uint, name string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Routine{}).
		Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, name).
		Count(&count).Error
	return count > 0, err
}

func (r *RoutineRepository) FindByUserOrdered(userID uint) ([]model.Routine, error) {
	var routines []model.Routine
	err := r.DB.Preload("Pattern", func(db *gorm.DB) *gorm.DB {
		return db.Order("routine_days.day_index ASC")
	}).Where("user_id = ?", userID).Order("created_at DESC").Find(&routines).Error
	return routines, err
}

// ReplacePattern 整体替换循环模式
func (r *RoutineRepository) ReplacePattern(routine *model.Routine, days []model.RoutineDay) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("routine_id = ?", routine.ID).Delete(&model.RoutineDay{}).Error; err != nil {
			return err
		}
		for i := range days {
			days[i].RoutineID = routine.ID
		}
		if len(days) > 0 {
			if err := tx.Create(&days).Error; err != nil {
				return err
			}
		}
		routine.Pattern = days
		return nil
	})
}

func (r *RoutineRepository) Update(routine *model.Routine) error {
	return r.DB.Save(routine).Error
}

func (r *RoutineRepository) Delete(routine *model.Routine) error {
	return r.DB.Delete(routine).Error
}

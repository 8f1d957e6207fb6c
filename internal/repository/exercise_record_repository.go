package repository

import (
	"fitness_tracker_backend/internal/model"

	"gorm.io/gorm"
)

type ExerciseRecordRepository struct {
	DB *gorm.DB
}

func NewExerciseRecordRepository(db *gorm.DB) *ExerciseRecordRepository {
	return &ExerciseRecordRepository{DB: db}
}

func (r *ExerciseRecordRepository) Create(record *model.ExerciseRecord) error {
	return r.DB.Create(record).Error
}

// CreateBatch 批量插入, gorm 回填自增 ID
func (r *ExerciseRecordRepository) CreateBatch(records []model.ExerciseRecord) ([]model.ExerciseRecord, error) {
	if len(records) == 0 {
		return records, nil
	}
	err := r.DB.Create(&records).Error
	return records, err
}

func (r *ExerciseRecordRepository) FindByIDs(ids []uint) ([]model.ExerciseRecord, error) {
	var records []model.ExerciseRecord
	err := r.DB.Where("id IN ?", ids).Order("id").Find(&records).Error
	return records, err
}

func (r *ExerciseRecordRepository) FindByIDAndUserID(id, userID uint) (*model.ExerciseRecord, error) {
	var record model.ExerciseRecord
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByUserOrdered 用户全部记录, 按创建时间升序
func (r *ExerciseRecordRepository) FindByUserOrdered(userID uint) ([]model.ExerciseRecord, error) {
	var records []model.ExerciseRecord
	err := r.DB.Where("user_id = ?", userID).Order("created_at ASC, id ASC").Find(&records).Error
	return records, err
}

// FindByUserAndExerciseOrdered 用户某个动作的全部记录, 按创建时间升序
func (r *ExerciseRecordRepository) FindByUserAndExerciseOrdered(userID, exerciseID uint) ([]model.ExerciseRecord, error) {
	var records []model.ExerciseRecord
	err := r.DB.Where("user_id = ? AND exercise_id = ?", userID, exerciseID).
		Order("created_at ASC, id ASC").Find(&records).Error
	return records, err
}

// DistinctExerciseIDs 用户练过的全部动作 ID
func (r *ExerciseRecordRepository) DistinctExerciseIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.ExerciseRecord{}).Distinct("exercise_id").
		Where("user_id = ?", userID).Pluck("exercise_id", &ids).Error
	return ids, err
}

func (r *ExerciseRecordRepository) Update(record *model.ExerciseRecord) error {
	return r.DB.Save(record).Error
}

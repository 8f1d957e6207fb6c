package service

import (
	"errors"

	"fitness_tracker_backend/internal/model"
	"fitness_tracker_backend/internal/repository"
	"fitness_tracker_backend/internal/util"
	"fitness_tracker_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type RecordRequest struct {
	ExerciseID      uint      `json:"exerciseId" binding:"required"`
	Reps            []int     `json:"reps"`
	Weights         []float64 `json:"weights"`
	DurationSeconds []int     `json:"durationSeconds"`
	Notes           string    `json:"notes"`
}

// RecordService 训练记录的提交流程: 先插入拿到 ID, 再按提交顺序走
// PR 评估, 评估出成就标注时补一次更新。同一用户的提交经 keyedMutex
// 串行, 保证评估的时序性。
type RecordService struct {
	RecordRepo   *repository.ExerciseRecordRepository
	ExerciseRepo *repository.ExerciseRepository
	Tracker      *PersonalBestTracker

	locks keyedMutex
}

func NewRecordService(recordRepo *repository.ExerciseRecordRepository, exerciseRepo *repository.ExerciseRepository, tracker *PersonalBestTracker) *RecordService {
	return &RecordService{
		RecordRepo:   recordRepo,
		ExerciseRepo: exerciseRepo,
		Tracker:      tracker,
	}
}

func (s *RecordService) CreateRecord(userID uint, req RecordRequest) (*model.ExerciseRecord, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	if _, err := s.ExerciseRepo.FindByID(req.ExerciseID); err != nil {
		return nil, util.ErrExerciseNotFound
	}

	record := &model.ExerciseRecord{
		UserID:          userID,
		ExerciseID:      req.ExerciseID,
		Reps:            req.Reps,
		Weights:         req.Weights,
		DurationSeconds: req.DurationSeconds,
		Notes:           req.Notes,
	}
	if err := s.RecordRepo.Create(record); err != nil {
		return nil, err
	}

	annotated, err := s.Tracker.Evaluate(record)
	if err != nil {
		return nil, err
	}
	if annotated {
		if err := s.RecordRepo.Update(record); err != nil {
			return nil, err
		}
		monitoring.PersonalRecords.Inc()
	}
	return record, nil
}

// CreateRecords 批量提交。先整体校验动作 ID, 再一次性插入, 然后按
// 提交顺序逐条评估 PR。任意一条动作不存在则整批拒绝。
func (s *RecordService) CreateRecords(userID uint, reqs []RecordRequest) ([]model.ExerciseRecord, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	seen := make(map[uint]bool, len(reqs))
	for _, req := range reqs {
		if seen[req.ExerciseID] {
			continue
		}
		if _, err := s.ExerciseRepo.FindByID(req.ExerciseID); err != nil {
			return nil, util.ErrExerciseNotFound
		}
		seen[req.ExerciseID] = true
	}

	records := make([]model.ExerciseRecord, 0, len(reqs))
	for _, req := range reqs {
		records = append(records, model.ExerciseRecord{
			UserID:          userID,
			ExerciseID:      req.ExerciseID,
			Reps:            req.Reps,
			Weights:         req.Weights,
			DurationSeconds: req.DurationSeconds,
			Notes:           req.Notes,
		})
	}
	records, err := s.RecordRepo.CreateBatch(records)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(records))
	for i := range records {
		annotated, err := s.Tracker.Evaluate(&records[i])
		if err != nil {
			return nil, err
		}
		if annotated {
			if err := s.RecordRepo.Update(&records[i]); err != nil {
				return nil, err
			}
			monitoring.PersonalRecords.Inc()
		}
		ids = append(ids, records[i].ID)
	}
	return s.RecordRepo.FindByIDs(ids)
}

func (s *RecordService) GetRecord(userID, recordID uint) (*model.ExerciseRecord, error) {
	record, err := s.RecordRepo.FindByIDAndUserID(recordID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrRecordNotFound
		}
		return nil, err
	}
	return record, nil
}

func (s *RecordService) ListRecords(userID uint, exerciseID uint) ([]model.ExerciseRecord, error) {
	if exerciseID != 0 {
		return s.RecordRepo.FindByUserAndExerciseOrdered(userID, exerciseID)
	}
	return s.RecordRepo.FindByUserOrdered(userID)
}

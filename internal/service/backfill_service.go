package service

import (
	"errors"
	"fmt"
	"time"

	"fitness_tracker_backend/internal/model"
	"fitness_tracker_backend/internal/repository"
	"fitness_tracker_backend/internal/util"
	"fitness_tracker_backend/pkg/logger"
	"fitness_tracker_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BackfillFailure 单个 (用户, 动作) 分组的回填失败
type BackfillFailure struct {
	UserID     uint   `json:"userId"`
	ExerciseID uint   `json:"exerciseId"`
	Error      string `json:"error"`
}

// BackfillResult 一次回填的统计, FailedGroups 区分成功/部分/失败
// swagger:model BackfillResult
type BackfillResult struct {
	UsersProcessed    int               `json:"usersProcessed"`
	RecordsEvaluated  int               `json:"recordsEvaluated"`
	RecordsUpdated    int               `json:"recordsUpdated"`
	SummariesUpserted int               `json:"summariesUpserted"`
	FailedGroups      []BackfillFailure `json:"failedGroups,omitempty"`
}

// BackfillService 按时间顺序重放训练记录历史, 从零重算成就标注与
// 最好成绩汇总。幂等: 对未变化的数据跑两遍, 第二遍零写入。
// 进程启动时整体跑一遍自愈, 失败只记日志, 不阻止启动。
type BackfillService struct {
	UserRepo         *repository.UserRepository
	RecordRepo       *repository.ExerciseRecordRepository
	PersonalBestRepo *repository.PersonalBestRepository
	Tracker          *PersonalBestTracker
}

func NewBackfillService(
	userRepo *repository.UserRepository,
	recordRepo *repository.ExerciseRecordRepository,
	personalBestRepo *repository.PersonalBestRepository,
	tracker *PersonalBestTracker,
) *BackfillService {
	return &BackfillService{
		UserRepo:         userRepo,
		RecordRepo:       recordRepo,
		PersonalBestRepo: personalBestRepo,
		Tracker:          tracker,
	}
}

// BackfillUser 重算一个用户练过的全部动作, 用户不存在时报错而不是静默成功
func (s *BackfillService) BackfillUser(userID uint) (*BackfillResult, error) {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	result := &BackfillResult{}
	if err := s.backfillUserInto(result, userID); err != nil {
		return nil, err
	}
	result.UsersProcessed = 1
	return result, nil
}

// BackfillAll 全量回填, 逐用户累加统计; 分组失败收集进 FailedGroups,
// 不回滚已提交的部分进度, 也不中断后续分组。
func (s *BackfillService) BackfillAll() (*BackfillResult, error) {
	users, err := s.UserRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	result := &BackfillResult{}
	for _, user := range users {
		if err := s.backfillUserInto(result, user.ID); err != nil {
			result.FailedGroups = append(result.FailedGroups, BackfillFailure{UserID: user.ID, Error: err.Error()})
			continue
		}
		result.UsersProcessed++
	}
	return result, nil
}

// RunStartup 启动时的自愈回填, 在请求路径之外运行, 任何失败都被吞掉
func (s *BackfillService) RunStartup() {
	start := time.Now()
	result, err := s.BackfillAll()
	if err != nil {
		logger.Log.Error("startup backfill failed", zap.Error(err))
		return
	}
	logger.Log.Info("startup backfill finished",
		zap.Int("usersProcessed", result.UsersProcessed),
		zap.Int("recordsEvaluated", result.RecordsEvaluated),
		zap.Int("recordsUpdated", result.RecordsUpdated),
		zap.Int("summariesUpserted", result.SummariesUpserted),
		zap.Int("failedGroups", len(result.FailedGroups)),
		zap.Duration("elapsed", time.Since(start)))
}

func (s *BackfillService) backfillUserInto(result *BackfillResult, userID uint) error {
	exerciseIDs, err := s.RecordRepo.DistinctExerciseIDs(userID)
	if err != nil {
		return fmt.Errorf("list exercises for user %d: %w", userID, err)
	}

	for _, exerciseID := range exerciseIDs {
		evaluated, updated, upserted, err := s.backfillGroup(userID, exerciseID)
		if err != nil {
			result.FailedGroups = append(result.FailedGroups, BackfillFailure{
				UserID: userID, ExerciseID: exerciseID, Error: err.Error(),
			})
			logger.Log.Warn("backfill group failed",
				zap.Uint("userId", userID), zap.Uint("exerciseId", exerciseID), zap.Error(err))
			continue
		}
		result.RecordsEvaluated += evaluated
		result.RecordsUpdated += updated
		if upserted {
			result.SummariesUpserted++
		}
	}
	return nil
}

// backfillGroup 对一个 (用户, 动作) 分组做时间顺序重放:
// 先清掉可能过期的成就标注, 再逐条套用 PersonalBestTracker 累积真实的
// 时序最好成绩; 只持久化字段真正变化的记录。最后把汇总行对齐到最终的
// 累积结果, 字段没有差异就不写; 但分组有记录、汇总行还不存在时,
// 即使全是默认值也要创建, 保证有历史的动作都有汇总行。
func (s *BackfillService) backfillGroup(userID, exerciseID uint) (evaluated, updated int, upserted bool, err error) {
	records, err := s.RecordRepo.FindByUserAndExerciseOrdered(userID, exerciseID)
	if err != nil {
		return 0, 0, false, fmt.Errorf("load records: %w", err)
	}

	var running *model.ExercisePersonalBest
	for i := range records {
		record := &records[i]
		prevRm, prevIdx, prevVol := record.AchievedOneRm, record.AchievedOneRmSetIndex, record.AchievedTotalVolume

		record.ClearAchievements()
		running, _, _ = s.Tracker.applyRecord(record, running)
		evaluated++

		if !floatPtrEqual(prevRm, record.AchievedOneRm) ||
			!intPtrEqual(prevIdx, record.AchievedOneRmSetIndex) ||
			!floatPtrEqual(prevVol, record.AchievedTotalVolume) {
			if err := s.RecordRepo.Update(record); err != nil {
				return evaluated, updated, false, fmt.Errorf("update record %d: %w", record.ID, err)
			}
			updated++
			monitoring.BackfillRecordWrites.Inc()
		}
	}

	stored, err := s.PersonalBestRepo.FindByUserAndExercise(userID, exerciseID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return evaluated, updated, false, fmt.Errorf("load summary: %w", err)
		}
		stored = nil
	}

	if stored == nil {
		if len(records) == 0 {
			return evaluated, updated, false, nil
		}
		row := running
		if row == nil {
			row = &model.ExercisePersonalBest{UserID: userID, ExerciseID: exerciseID}
		}
		if err := s.PersonalBestRepo.Save(row); err != nil {
			return evaluated, updated, false, fmt.Errorf("create summary: %w", err)
		}
		return evaluated, updated, true, nil
	}

	recomputed := running
	if recomputed == nil {
		recomputed = &model.ExercisePersonalBest{UserID: userID, ExerciseID: exerciseID}
	}
	if stored.OneRm == recomputed.OneRm &&
		stored.OneRmRecordID == recomputed.OneRmRecordID &&
		stored.OneRmRecordSetIndex == recomputed.OneRmRecordSetIndex &&
		stored.TotalVolume == recomputed.TotalVolume &&
		stored.TotalVolumeRecordID == recomputed.TotalVolumeRecordID {
		return evaluated, updated, false, nil
	}

	stored.OneRm = recomputed.OneRm
	stored.OneRmRecordID = recomputed.OneRmRecordID
	stored.OneRmRecordSetIndex = recomputed.OneRmRecordSetIndex
	stored.TotalVolume = recomputed.TotalVolume
	stored.TotalVolumeRecordID = recomputed.TotalVolumeRecordID
	if err := s.PersonalBestRepo.Save(stored); err != nil {
		return evaluated, updated, false, fmt.Errorf("update summary: %w", err)
	}
	return evaluated, updated, true, nil
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

package service

import (
	"errors"

	"fitness_tracker_backend/internal/model"
	"fitness_tracker_backend/internal/repository"

	"gorm.io/gorm"
)

// PersonalBestTracker 判定一条训练记录是否刷新了极限重量/总容量 PR,
// 并同步维护 (用户, 动作) 的最好成绩汇总行。
//
// Evaluate 是顺序敏感的: 必须按记录创建的时间顺序调用, 只使用当时已知的
// 最好成绩, 绝不能看到之后才创建的记录。
type PersonalBestTracker struct {
	PersonalBestRepo *repository.PersonalBestRepository
}

func NewPersonalBestTracker(personalBestRepo *repository.PersonalBestRepository) *PersonalBestTracker {
	return &PersonalBestTracker{PersonalBestRepo: personalBestRepo}
}

// applyRecord 把一条记录套到当前最好成绩上 (best == nil 表示该组合还没有历史)。
// 两个指标用各自独立的严格大于判定, 打平不算 PR; 一条记录可能只破其一、
// 都破或都不破。返回更新后的最好成绩以及记录/汇总是否发生变化。
// 只改内存, 持久化由调用方负责。
func (t *PersonalBestTracker) applyRecord(record *model.ExerciseRecord, best *model.ExercisePersonalBest) (*model.ExercisePersonalBest, bool, bool) {
	est, okRm := BestEstimatedOneRm(record.Reps, record.Weights)
	vol, okVol := TotalVolume(record.Reps, record.Weights)
	if !okRm && !okVol {
		return best, false, false
	}

	absent := best == nil
	newRm := okRm && (absent || est.Value > best.OneRm)
	newVol := okVol && (absent || vol > best.TotalVolume)
	if !newRm && !newVol {
		return best, false, false
	}

	if absent {
		best = &model.ExercisePersonalBest{UserID: record.UserID, ExerciseID: record.ExerciseID}
	}
	if newRm {
		value, setIndex := est.Value, est.SetIndex
		record.AchievedOneRm = &value
		record.AchievedOneRmSetIndex = &setIndex
		best.OneRm = est.Value
		best.OneRmRecordID = record.ID
		best.OneRmRecordSetIndex = est.SetIndex
	}
	if newVol {
		value := vol
		record.AchievedTotalVolume = &value
		best.TotalVolume = vol
		best.TotalVolumeRecordID = record.ID
	}
	return best, true, true
}

// Evaluate 在记录提交流程中调用: 加载当前最好成绩、套用记录、
// 有 PR 时写回汇总行。返回记录上是否新增了成就标注,
// 标注的持久化由记录的创建流程完成。
func (t *PersonalBestTracker) Evaluate(record *model.ExerciseRecord) (bool, error) {
	best, err := t.PersonalBestRepo.FindByUserAndExercise(record.UserID, record.ExerciseID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, err
		}
		best = nil
	}

	updated, recordChanged, bestChanged := t.applyRecord(record, best)
	if bestChanged {
		if err := t.PersonalBestRepo.Save(updated); err != nil {
			return false, err
		}
	}
	return recordChanged, nil
}

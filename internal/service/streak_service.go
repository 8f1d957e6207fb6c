package service

import (
	"errors"
	"time"

	"fitness_tracker_backend/internal/model"
	"fitness_tracker_backend/internal/repository"
	"fitness_tracker_backend/internal/util"
	"fitness_tracker_backend/pkg/logger"
	"fitness_tracker_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type StreakUpdateStatus string

const (
	StreakStarted      StreakUpdateStatus = "STARTED"
	StreakContinued    StreakUpdateStatus = "CONTINUED"
	StreakWrongWorkout StreakUpdateStatus = "WRONG_WORKOUT"
	StreakBrokenReset  StreakUpdateStatus = "BROKEN_RESET"
)

// StreakUpdateResult 完成训练后返回给调用方 (训练记录流程) 的状态快照
// swagger:model StreakUpdateResult
type StreakUpdateResult struct {
	Status              StreakUpdateStatus `json:"status"`
	CurrentStreak       int                `json:"currentStreak"`
	LongestStreak       int                `json:"longestStreak"`
	NextWorkoutID       *uint              `json:"nextWorkoutId,omitempty"`
	NextWorkoutDeadline *time.Time         `json:"nextWorkoutDeadline,omitempty"`
	StreakFreezeCount   int                `json:"streakFreezeCount"`
}

// StreakService 连续打卡状态机。状态不单独建枚举, 由 StreakInfo 字段组合
// 隐含: 没有截止日期是 IDLE, 有截止日期且未过期是 PENDING, 过期未处理是
// OVERDUE。同一用户的转换通过 keyedMutex 串行执行。
type StreakService struct {
	UserRepo    *repository.UserRepository
	RoutineRepo *repository.RoutineRepository
	Scheduler   *RoutineScheduler

	// 可替换的时钟, 测试用
	Now func() time.Time

	locks keyedMutex
}

func NewStreakService(userRepo *repository.UserRepository, routineRepo *repository.RoutineRepository, scheduler *RoutineScheduler) *StreakService {
	return &StreakService{
		UserRepo:    userRepo,
		RoutineRepo: routineRepo,
		Scheduler:   scheduler,
		Now:         time.Now,
	}
}

// today 用户时区下的当前日期
func (s *StreakService) today(user *model.User) time.Time {
	now := s.Now()
	if user.Timezone != "" {
		if loc, err := time.LoadLocation(user.Timezone); err == nil {
			now = now.In(loc)
		}
	}
	return util.DateOnly(now)
}

// nextTarget 通过 RoutineScheduler 计算下一目标。没有激活的计划、
// 或计划已被删除时退化为宽松默认值 (无目标训练, 截止明天),
// 状态机绝不因缺少排程而失败。
func (s *StreakService) nextTarget(user *model.User, from time.Time) (*uint, time.Time) {
	from = util.DateOnly(from)
	if user.ActiveRoutineID == nil {
		return nil, from.AddDate(0, 0, 1)
	}

	routine, err := s.RoutineRepo.FindByIDAndUserID(*user.ActiveRoutineID, user.ID)
	if err != nil {
		logger.Log.Warn("active routine unavailable, falling back to permissive target",
			zap.Uint("userId", user.ID), zap.Uint("routineId", *user.ActiveRoutineID), zap.Error(err))
		return nil, from.AddDate(0, 0, 1)
	}
	return s.Scheduler.NextWorkout(routine, from)
}

// CheckStreak 惰性衰减: 任何依赖连续打卡状态的读取之前调用。
// 截止日期未过则是空操作; 过期且有冻结额度时消耗一个冻结并从当前截止
// 日期推进下一目标 (冻结买的是时间, 不算完成, 计数和 LastWorkoutCountedDate
// 不动); 没有冻结则硬重置, CurrentStreak 归零, LongestStreak 永不回退。
// 只有字段发生变化才落库。
func (s *StreakService) CheckStreak(user *model.User) error {
	unlock := s.locks.Lock(user.ID)
	defer unlock()

	deadline := user.Streak.NextWorkoutDeadline
	if deadline == nil {
		return nil
	}
	today := s.today(user)
	deadlineDay := util.DateOnly(deadline.In(today.Location()))
	if !today.After(deadlineDay) {
		return nil
	}

	if user.Streak.StreakFreezeCount > 0 {
		user.Streak.StreakFreezeCount--
		workoutID, next := s.nextTarget(user, deadlineDay)
		user.Streak.NextWorkoutID = workoutID
		user.Streak.NextWorkoutDeadline = &next
		monitoring.StreakTransitions.WithLabelValues("FREEZE_CONSUMED").Inc()
	} else {
		user.Streak.CurrentStreak = 0
		user.Streak.NextWorkoutID = nil
		user.Streak.NextWorkoutDeadline = nil
		monitoring.StreakTransitions.WithLabelValues("BROKEN").Inc()
	}

	return s.UserRepo.Update(user)
}

// OnWorkoutCompleted 完成一次训练后同步调用, 驱动状态机并返回新状态。
// 每个自然日最多计入一次完成; 当前窗口期望的训练一旦设定就固定,
// 完成了别的训练返回 WRONG_WORKOUT 且不做任何修改。
func (s *StreakService) OnWorkoutCompleted(userID, completedWorkoutID uint) (*StreakUpdateResult, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	today := s.today(user)
	st := &user.Streak

	// 存储层可能按别的时区回读时间戳 (mysql DSN 的 loc 是服务器本地),
	// 日期比较前先换算到用户时区
	if st.LastWorkoutCountedDate != nil && util.SameDay(st.LastWorkoutCountedDate.In(today.Location()), today) {
		return s.result(user, StreakWrongWorkout), nil
	}
	if st.NextWorkoutID != nil && *st.NextWorkoutID != completedWorkoutID {
		return s.result(user, StreakWrongWorkout), nil
	}

	var status StreakUpdateStatus
	switch {
	case st.NextWorkoutDeadline == nil:
		// IDLE: 开启新的连续打卡
		st.CurrentStreak = 1
		status = StreakStarted
	case today.After(util.DateOnly(st.NextWorkoutDeadline.In(today.Location()))):
		// 迟到但还没被衰减处理 (完成和衰减任务赛跑), 按重新开始处理
		st.CurrentStreak = 1
		status = StreakBrokenReset
	default:
		prior := st.CurrentStreak
		st.CurrentStreak++
		if prior == 0 {
			status = StreakStarted
		} else {
			status = StreakContinued
		}
	}

	if st.CurrentStreak > st.LongestStreak {
		st.LongestStreak = st.CurrentStreak
	}

	workoutID, deadline := s.nextTarget(user, today)
	st.NextWorkoutID = workoutID
	st.NextWorkoutDeadline = &deadline
	st.LastWorkoutCountedDate = &today

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	monitoring.StreakTransitions.WithLabelValues(string(status)).Inc()

	return s.result(user, status), nil
}

// AddFreezes 增加冻结额度 (管理端发放)
func (s *StreakService) AddFreezes(userID uint, count int) (*model.User, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	user.Streak.StreakFreezeCount += count
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *StreakService) result(user *model.User, status StreakUpdateStatus) *StreakUpdateResult {
	return &StreakUpdateResult{
		Status:              status,
		CurrentStreak:       user.Streak.CurrentStreak,
		LongestStreak:       user.Streak.LongestStreak,
		NextWorkoutID:       user.Streak.NextWorkoutID,
		NextWorkoutDeadline: user.Streak.NextWorkoutDeadline,
		StreakFreezeCount:   user.Streak.StreakFreezeCount,
	}
}

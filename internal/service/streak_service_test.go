package service

import (
	"sync"
	"testing"
	"time"

	"fitness_tracker_backend/internal/model"
	"fitness_tracker_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnWorkoutCompletedLifecycle(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "UTC")
	workoutA := createTestWorkout(t, db, user.ID, "推")
	workoutB := createTestWorkout(t, db, user.ID, "拉")

	day0 := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	routine := createTestRoutine(t, db, user.ID, day0, []model.RoutineDay{
		{DayIndex: 0, DayType: model.DayWorkout, WorkoutID: &workoutA.ID},
		{DayIndex: 1, DayType: model.DayRest},
		{DayIndex: 2, DayType: model.DayWorkout, WorkoutID: &workoutB.ID},
	})

	userRepo := repository.NewUserRepository(db)
	user.ActiveRoutineID = &routine.ID
	require.NoError(t, userRepo.Update(user))

	svc := newStreakServiceForTest(db, day0.Add(10*time.Hour))

	// 第0天: 空闲状态, 任意训练开启连续打卡
	result, err := svc.OnWorkoutCompleted(user.ID, workoutA.ID)
	require.NoError(t, err)
	assert.Equal(t, StreakStarted, result.Status)
	assert.Equal(t, 1, result.CurrentStreak)
	assert.Equal(t, 1, result.LongestStreak)
	require.NotNil(t, result.NextWorkoutID)
	assert.Equal(t, workoutB.ID, *result.NextWorkoutID)
	require.NotNil(t, result.NextWorkoutDeadline)
	assert.Equal(t, day0.AddDate(0, 0, 2), *result.NextWorkoutDeadline)

	// 同一天再完成一次, 不计入
	result, err = svc.OnWorkoutCompleted(user.ID, workoutB.ID)
	require.NoError(t, err)
	assert.Equal(t, StreakWrongWorkout, result.Status)
	assert.Equal(t, 1, result.CurrentStreak)

	// 第1天: 目标是 B, 练 A 不算
	svc.Now = func() time.Time { return day0.AddDate(0, 0, 1).Add(10 * time.Hour) }
	result, err = svc.OnWorkoutCompleted(user.ID, workoutA.ID)
	require.NoError(t, err)
	assert.Equal(t, StreakWrongWorkout, result.Status)
	assert.Equal(t, 1, result.CurrentStreak)

	// 第2天截止日当天完成 B, 连续打卡继续
	svc.Now = func() time.Time { return day0.AddDate(0, 0, 2).Add(10 * time.Hour) }
	result, err = svc.OnWorkoutCompleted(user.ID, workoutB.ID)
	require.NoError(t, err)
	assert.Equal(t, StreakContinued, result.Status)
	assert.Equal(t, 2, result.CurrentStreak)
	assert.Equal(t, 2, result.LongestStreak)

	// 状态已落库
	stored, err := userRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Streak.CurrentStreak)
	require.NotNil(t, stored.Streak.LastWorkoutCountedDate)
}

func TestOnWorkoutCompletedLateIsReset(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "UTC")
	workout := createTestWorkout(t, db, user.ID, "全身")

	day0 := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	userRepo := repository.NewUserRepository(db)
	deadline := day0
	user.Streak = model.StreakInfo{
		CurrentStreak:       5,
		LongestStreak:       8,
		NextWorkoutID:       &workout.ID,
		NextWorkoutDeadline: &deadline,
	}
	require.NoError(t, userRepo.Update(user))

	// 截止日之后两天才完成, 衰减任务还没跑到: 按重新开始处理
	svc := newStreakServiceForTest(db, day0.AddDate(0, 0, 2).Add(8*time.Hour))
	result, err := svc.OnWorkoutCompleted(user.ID, workout.ID)
	require.NoError(t, err)
	assert.Equal(t, StreakBrokenReset, result.Status)
	assert.Equal(t, 1, result.CurrentStreak)
	assert.Equal(t, 8, result.LongestStreak)
}

func TestCheckStreakNoopBeforeDeadline(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "UTC")

	day0 := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	deadline := day0.AddDate(0, 0, 1)
	user.Streak = model.StreakInfo{CurrentStreak: 3, LongestStreak: 3, NextWorkoutDeadline: &deadline}
	require.NoError(t, repository.NewUserRepository(db).Update(user))

	// 截止日当天还不算过期
	svc := newStreakServiceForTest(db, deadline.Add(23*time.Hour))
	require.NoError(t, svc.CheckStreak(user))
	assert.Equal(t, 3, user.Streak.CurrentStreak)
	require.NotNil(t, user.Streak.NextWorkoutDeadline)
}

func TestCheckStreakConsumesFreeze(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "UTC")
	workoutA := createTestWorkout(t, db, user.ID, "推")

	day0 := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	routine := createTestRoutine(t, db, user.ID, day0, []model.RoutineDay{
		{DayIndex: 0, DayType: model.DayWorkout, WorkoutID: &workoutA.ID},
		{DayIndex: 1, DayType: model.DayRest},
	})

	userRepo := repository.NewUserRepository(db)
	user.ActiveRoutineID = &routine.ID
	deadline := day0.AddDate(0, 0, 2)
	counted := day0
	user.Streak = model.StreakInfo{
		CurrentStreak:          4,
		LongestStreak:          4,
		NextWorkoutID:          &workoutA.ID,
		NextWorkoutDeadline:    &deadline,
		StreakFreezeCount:      2,
		LastWorkoutCountedDate: &counted,
	}
	require.NoError(t, userRepo.Update(user))

	// 过期一天, 冻结买时间: 计数不动, 目标从旧截止日期往后推
	svc := newStreakServiceForTest(db, deadline.AddDate(0, 0, 1).Add(6*time.Hour))
	require.NoError(t, svc.CheckStreak(user))

	assert.Equal(t, 4, user.Streak.CurrentStreak)
	assert.Equal(t, 1, user.Streak.StreakFreezeCount)
	require.NotNil(t, user.Streak.LastWorkoutCountedDate)
	assert.True(t, counted.Equal(*user.Streak.LastWorkoutCountedDate))
	require.NotNil(t, user.Streak.NextWorkoutDeadline)
	assert.True(t, user.Streak.NextWorkoutDeadline.After(deadline))

	stored, err := userRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Streak.StreakFreezeCount)
	assert.Equal(t, 4, stored.Streak.CurrentStreak)
}

func TestCheckStreakHardReset(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "UTC")

	day0 := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	deadline := day0
	user.Streak = model.StreakInfo{
		CurrentStreak:       7,
		LongestStreak:       11,
		NextWorkoutDeadline: &deadline,
	}
	userRepo := repository.NewUserRepository(db)
	require.NoError(t, userRepo.Update(user))

	svc := newStreakServiceForTest(db, day0.AddDate(0, 0, 3))
	require.NoError(t, svc.CheckStreak(user))

	assert.Equal(t, 0, user.Streak.CurrentStreak)
	assert.Equal(t, 11, user.Streak.LongestStreak) // 最长纪录永不回退
	assert.Nil(t, user.Streak.NextWorkoutID)
	assert.Nil(t, user.Streak.NextWorkoutDeadline)
}

func TestUserTimezoneDecidesToday(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "Asia/Shanghai")

	day0 := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	deadline := time.Date(2025, 6, 2, 0, 0, 0, 0, time.FixedZone("CST", 8*3600))
	user.Streak = model.StreakInfo{CurrentStreak: 2, LongestStreak: 2, NextWorkoutDeadline: &deadline}
	require.NoError(t, repository.NewUserRepository(db).Update(user))

	// UTC 还是 6月2日 20:00, 但上海已经是 6月3日: 过期
	svc := newStreakServiceForTest(db, day0.Add(20*time.Hour))
	require.NoError(t, svc.CheckStreak(user))
	assert.Equal(t, 0, user.Streak.CurrentStreak)
}

func TestSameDayGuardSurvivesTimezoneRoundTrip(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "Pacific/Auckland")
	workout := createTestWorkout(t, db, user.ID, "深蹲")

	// 奥克兰 (UTC+13) 当地 3 月 10 日下午
	now := time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC)
	svc := newStreakServiceForTest(db, now)

	result, err := svc.OnWorkoutCompleted(user.ID, workout.ID)
	require.NoError(t, err)
	require.Equal(t, StreakStarted, result.Status)

	// 驱动按服务器时区回读时间戳: 同一时刻换成 UTC 表达后再存回去
	userRepo := repository.NewUserRepository(db)
	stored, err := userRepo.FindByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Streak.LastWorkoutCountedDate)
	require.NotNil(t, stored.Streak.NextWorkoutDeadline)
	counted := stored.Streak.LastWorkoutCountedDate.UTC()
	deadline := stored.Streak.NextWorkoutDeadline.UTC()
	stored.Streak.LastWorkoutCountedDate = &counted
	stored.Streak.NextWorkoutDeadline = &deadline
	require.NoError(t, userRepo.Update(stored))

	// 用户本地仍是同一天, 第二次完成不计入
	result, err = svc.OnWorkoutCompleted(user.ID, workout.ID)
	require.NoError(t, err)
	assert.Equal(t, StreakWrongWorkout, result.Status)
	assert.Equal(t, 1, result.CurrentStreak)
}

func TestParallelCompletionCountsOnce(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "UTC")
	workout := createTestWorkout(t, db, user.ID, "全身")

	day0 := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	svc := newStreakServiceForTest(db, day0.Add(9*time.Hour))

	var wg sync.WaitGroup
	results := make([]*StreakUpdateResult, 2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.OnWorkoutCompleted(user.ID, workout.ID)
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	started := 0
	for _, result := range results {
		if result.Status == StreakStarted {
			started++
		}
	}
	assert.Equal(t, 1, started)

	stored, err := repository.NewUserRepository(db).FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Streak.CurrentStreak)
}

func TestAddFreezes(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "UTC")

	svc := newStreakServiceForTest(db, time.Now())
	updated, err := svc.AddFreezes(user.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Streak.StreakFreezeCount)
}

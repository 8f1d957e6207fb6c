package service

import (
	"context"
	"testing"
	"time"

	"fitness_tracker_backend/internal/model"
	"fitness_tracker_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepChecksOnlyDueTimezones(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)

	day0 := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	expired := day0.AddDate(0, 0, -2)

	// UTC 用户: 本地时间正好是检查小时
	utcUser := createTestUser(t, db, "UTC")
	utcUser.Streak = model.StreakInfo{CurrentStreak: 4, LongestStreak: 4, NextWorkoutDeadline: &expired}
	require.NoError(t, userRepo.Update(utcUser))

	// 上海用户: 本地已经过了检查小时, 这一轮不处理
	cstUser := createTestUser(t, db, "Asia/Shanghai")
	cstUser.Streak = model.StreakInfo{CurrentStreak: 4, LongestStreak: 4, NextWorkoutDeadline: &expired}
	require.NoError(t, userRepo.Update(cstUser))

	now := day0.Add(6 * time.Hour) // UTC 6点, 上海 14点
	streak := newStreakServiceForTest(db, now)
	svc := NewReminderService(userRepo, streak, nil, 6)
	svc.Now = func() time.Time { return now }

	svc.Sweep(context.Background())

	checked, err := userRepo.FindByID(utcUser.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, checked.Streak.CurrentStreak)
	assert.Nil(t, checked.Streak.NextWorkoutDeadline)

	untouched, err := userRepo.FindByID(cstUser.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, untouched.Streak.CurrentStreak)
}

func TestSweepSkipsUsersWithoutDeadline(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)

	idle := createTestUser(t, db, "UTC")
	idle.Streak = model.StreakInfo{CurrentStreak: 0, LongestStreak: 9}
	require.NoError(t, userRepo.Update(idle))

	now := time.Date(2025, 6, 2, 6, 0, 0, 0, time.UTC)
	streak := newStreakServiceForTest(db, now)
	svc := NewReminderService(userRepo, streak, nil, 6)
	svc.Now = func() time.Time { return now }

	// 没有截止日期的用户不在扫描范围内, 不会报错
	svc.Sweep(context.Background())

	stored, err := userRepo.FindByID(idle.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, stored.Streak.LongestStreak)
}

package service

import (
	"testing"
	"time"

	"fitness_tracker_backend/internal/model"
	"fitness_tracker_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStreakSettlesLazyDecay(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "UTC")
	userRepo := repository.NewUserRepository(db)

	day0 := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	deadline := day0
	user.Streak = model.StreakInfo{CurrentStreak: 6, LongestStreak: 6, NextWorkoutDeadline: &deadline}
	require.NoError(t, userRepo.Update(user))

	// 三天后才来读: 读取本身触发衰减结算
	streak := newStreakServiceForTest(db, day0.AddDate(0, 0, 3))
	svc := NewUserService(userRepo, streak)

	info, err := svc.GetStreak(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, info.CurrentStreak)
	assert.Equal(t, 6, info.LongestStreak)
	assert.Nil(t, info.NextWorkoutDeadline)
}

func TestUpdateProfileValidatesTimezone(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "UTC")
	svc := NewUserService(repository.NewUserRepository(db), newStreakServiceForTest(db, time.Now()))

	updated, err := svc.UpdateProfile(user.ID, ProfileUpdateRequest{Name: "新名字", Timezone: "Asia/Shanghai"})
	require.NoError(t, err)
	assert.Equal(t, "新名字", updated.Name)
	assert.Equal(t, "Asia/Shanghai", updated.Timezone)

	_, err = svc.UpdateProfile(user.ID, ProfileUpdateRequest{Timezone: "Mars/Olympus"})
	assert.Error(t, err)
}

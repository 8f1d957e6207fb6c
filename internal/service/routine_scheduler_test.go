package service

import (
	"testing"
	"time"

	"fitness_tracker_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoutine(start time.Time, pattern ...model.RoutineDay) *model.Routine {
	return &model.Routine{
		UserID:    1,
		Name:      "测试计划",
		Type:      model.RoutineSequential,
		StartDate: &start,
		Pattern:   pattern,
	}
}

func workoutDay(index int, workoutID uint) model.RoutineDay {
	return model.RoutineDay{DayIndex: index, DayType: model.DayWorkout, WorkoutID: uintPtr(workoutID)}
}

func restDay(index int) model.RoutineDay {
	return model.RoutineDay{DayIndex: index, DayType: model.DayRest}
}

func TestNextWorkoutBasicCycle(t *testing.T) {
	anchor := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	routine := testRoutine(anchor,
		workoutDay(0, 10),
		restDay(1),
		workoutDay(2, 20),
	)
	scheduler := NewRoutineScheduler()

	// 锚点当天, 下一个训练日跳过休息日落在第2天
	id, deadline := scheduler.NextWorkout(routine, anchor)
	require.NotNil(t, id)
	assert.Equal(t, uint(20), *id)
	assert.Equal(t, anchor.AddDate(0, 0, 2), deadline)

	// 第2天当天, 环绕回第0天
	id, deadline = scheduler.NextWorkout(routine, anchor.AddDate(0, 0, 2))
	require.NotNil(t, id)
	assert.Equal(t, uint(10), *id)
	assert.Equal(t, anchor.AddDate(0, 0, 3), deadline)
}

func TestNextWorkoutDeadlineNeverToday(t *testing.T) {
	anchor := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	routine := testRoutine(anchor, workoutDay(0, 10))
	scheduler := NewRoutineScheduler()

	// 单天循环: 即使今天就是训练日, 截止也是明天
	id, deadline := scheduler.NextWorkout(routine, anchor)
	require.NotNil(t, id)
	assert.Equal(t, uint(10), *id)
	assert.Equal(t, anchor.AddDate(0, 0, 1), deadline)
}

func TestNextWorkoutIndexGapsAreRestDays(t *testing.T) {
	anchor := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	// 下标 1、2 缺失, 循环长度仍为 4
	routine := testRoutine(anchor,
		workoutDay(0, 10),
		workoutDay(3, 40),
	)
	scheduler := NewRoutineScheduler()

	id, deadline := scheduler.NextWorkout(routine, anchor)
	require.NotNil(t, id)
	assert.Equal(t, uint(40), *id)
	assert.Equal(t, anchor.AddDate(0, 0, 3), deadline)
}

func TestNextWorkoutFromBeforeAnchor(t *testing.T) {
	anchor := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	routine := testRoutine(anchor,
		workoutDay(0, 10),
		restDay(1),
	)
	scheduler := NewRoutineScheduler()

	from := anchor.AddDate(0, 0, -1)
	id, deadline := scheduler.NextWorkout(routine, from)
	require.NotNil(t, id)
	assert.Equal(t, uint(10), *id)
	assert.Equal(t, anchor, deadline)
}

func TestNextWorkoutAllRestFallsBack(t *testing.T) {
	anchor := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	routine := testRoutine(anchor, restDay(0), restDay(1))
	scheduler := NewRoutineScheduler()

	id, deadline := scheduler.NextWorkout(routine, anchor)
	assert.Nil(t, id)
	assert.Equal(t, anchor.AddDate(0, 0, 1), deadline)
}

func TestNextWorkoutEmptyPatternFallsBack(t *testing.T) {
	anchor := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	scheduler := NewRoutineScheduler()

	id, deadline := scheduler.NextWorkout(testRoutine(anchor), anchor)
	assert.Nil(t, id)
	assert.Equal(t, anchor.AddDate(0, 0, 1), deadline)

	id, deadline = scheduler.NextWorkout(nil, anchor)
	assert.Nil(t, id)
	assert.Equal(t, anchor.AddDate(0, 0, 1), deadline)
}

func TestNextWorkoutTruncatesTimeOfDay(t *testing.T) {
	anchor := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	routine := testRoutine(anchor, workoutDay(0, 10), restDay(1))
	scheduler := NewRoutineScheduler()

	// 下午查询与零点查询结果一致
	_, fromNoon := scheduler.NextWorkout(routine, anchor.Add(15*time.Hour))
	_, fromMidnight := scheduler.NextWorkout(routine, anchor)
	assert.Equal(t, fromMidnight, fromNoon)
}

package service

import (
	"testing"
	"time"

	"fitness_tracker_backend/internal/repository"
	"fitness_tracker_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteWorkoutDrivesStreak(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "UTC")

	day0 := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	streak := newStreakServiceForTest(db, day0.Add(9*time.Hour))
	svc := NewWorkoutService(
		repository.NewWorkoutRepository(db),
		repository.NewWorkoutSessionRepository(db),
		repository.NewExerciseRepository(db),
		streak,
	)

	workout, err := svc.CreateWorkout(user.ID, WorkoutRequest{
		Name: "全身",
		Exercises: []WorkoutExerciseRequest{
			{ExerciseID: 1, TargetSets: 5, TargetReps: 5},
			{ExerciseID: 2, TargetSets: 3, TargetReps: 8},
		},
	})
	require.NoError(t, err)
	require.Len(t, workout.Exercises, 2)
	assert.Equal(t, 0, workout.Exercises[0].Position)
	assert.Equal(t, 1, workout.Exercises[1].Position)

	resp, err := svc.CompleteWorkout(user.ID, workout.ID, CompleteWorkoutRequest{Notes: "状态不错"})
	require.NoError(t, err)
	require.NotNil(t, resp.Session)
	assert.Equal(t, workout.ID, resp.Session.WorkoutID)
	require.NotNil(t, resp.Streak)
	assert.Equal(t, StreakStarted, resp.Streak.Status)
	assert.Equal(t, 1, resp.Streak.CurrentStreak)

	sessions, err := svc.ListSessions(user.ID, 10)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestCompleteWorkoutUnknownWorkout(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "UTC")
	svc := NewWorkoutService(
		repository.NewWorkoutRepository(db),
		repository.NewWorkoutSessionRepository(db),
		repository.NewExerciseRepository(db),
		newStreakServiceForTest(db, time.Now()),
	)

	_, err := svc.CompleteWorkout(user.ID, 12345, CompleteWorkoutRequest{})
	assert.ErrorIs(t, err, util.ErrWorkoutNotFound)
}

func TestCreateWorkoutValidatesExercises(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "UTC")
	svc := NewWorkoutService(
		repository.NewWorkoutRepository(db),
		repository.NewWorkoutSessionRepository(db),
		repository.NewExerciseRepository(db),
		newStreakServiceForTest(db, time.Now()),
	)

	_, err := svc.CreateWorkout(user.ID, WorkoutRequest{
		Name:      "坏的",
		Exercises: []WorkoutExerciseRequest{{ExerciseID: 99999}},
	})
	assert.ErrorIs(t, err, util.ErrExerciseNotFound)
}

func TestGetWorkoutScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "UTC")
	bob := createTestUser(t, db, "UTC")
	svc := NewWorkoutService(
		repository.NewWorkoutRepository(db),
		repository.NewWorkoutSessionRepository(db),
		repository.NewExerciseRepository(db),
		newStreakServiceForTest(db, time.Now()),
	)

	workout := createTestWorkout(t, db, alice.ID, "私有")
	_, err := svc.GetWorkout(bob.ID, workout.ID)
	assert.ErrorIs(t, err, util.ErrWorkoutNotFound)
}

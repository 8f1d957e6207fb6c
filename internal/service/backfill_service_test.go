package service

import (
	"testing"

	"fitness_tracker_backend/internal/model"
	"fitness_tracker_backend/internal/repository"
	"fitness_tracker_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackfillAnnotatesHistory(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "UTC")
	recordRepo := repository.NewExerciseRecordRepository(db)
	bestRepo := repository.NewPersonalBestRepository(db)
	svc := NewBackfillService(
		repository.NewUserRepository(db),
		recordRepo,
		bestRepo,
		NewPersonalBestTracker(bestRepo),
	)

	// 三条无标注的历史记录: 渐进加重, 前两条都是当时的 PR
	weights := [][]float64{{100}, {110}, {105}}
	var ids []uint
	for _, w := range weights {
		record := &model.ExerciseRecord{UserID: user.ID, ExerciseID: 1, Reps: []int{5}, Weights: w}
		require.NoError(t, recordRepo.Create(record))
		ids = append(ids, record.ID)
	}

	result, err := svc.BackfillUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.UsersProcessed)
	assert.Equal(t, 3, result.RecordsEvaluated)
	assert.Equal(t, 2, result.RecordsUpdated)
	assert.Equal(t, 1, result.SummariesUpserted)
	assert.Empty(t, result.FailedGroups)

	records, err := recordRepo.FindByUserAndExerciseOrdered(user.ID, 1)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.True(t, records[0].HasAchievements())
	assert.True(t, records[1].HasAchievements())
	// 第三条在时间线上没破过纪录
	assert.False(t, records[2].HasAchievements())

	best, err := bestRepo.FindByUserAndExercise(user.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, ids[1], best.OneRmRecordID)
	assert.Equal(t, ids[1], best.TotalVolumeRecordID)
}

func TestBackfillIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "UTC")
	recordRepo := repository.NewExerciseRecordRepository(db)
	bestRepo := repository.NewPersonalBestRepository(db)
	svc := NewBackfillService(
		repository.NewUserRepository(db),
		recordRepo,
		bestRepo,
		NewPersonalBestTracker(bestRepo),
	)

	for _, w := range []float64{100, 120, 110} {
		record := &model.ExerciseRecord{UserID: user.ID, ExerciseID: 1, Reps: []int{5}, Weights: []float64{w}}
		require.NoError(t, recordRepo.Create(record))
	}

	_, err := svc.BackfillUser(user.ID)
	require.NoError(t, err)

	// 数据没变, 第二遍零写入
	second, err := svc.BackfillUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, second.RecordsEvaluated)
	assert.Equal(t, 0, second.RecordsUpdated)
	assert.Equal(t, 0, second.SummariesUpserted)
}

func TestBackfillClearsStaleAnnotations(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "UTC")
	recordRepo := repository.NewExerciseRecordRepository(db)
	bestRepo := repository.NewPersonalBestRepository(db)
	svc := NewBackfillService(
		repository.NewUserRepository(db),
		recordRepo,
		bestRepo,
		NewPersonalBestTracker(bestRepo),
	)

	first := &model.ExerciseRecord{UserID: user.ID, ExerciseID: 1, Reps: []int{5}, Weights: []float64{150}}
	require.NoError(t, recordRepo.Create(first))

	// 第二条带着错误的标注入库 (比如绕过评估流程导入的数据)
	bogusRm := 999.0
	second := &model.ExerciseRecord{
		UserID: user.ID, ExerciseID: 1,
		Reps: []int{5}, Weights: []float64{100},
		AchievedOneRm: &bogusRm,
	}
	require.NoError(t, recordRepo.Create(second))

	result, err := svc.BackfillUser(user.ID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.RecordsUpdated, 1)

	records, err := recordRepo.FindByUserAndExerciseOrdered(user.ID, 1)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].HasAchievements())
	assert.False(t, records[1].HasAchievements())

	best, err := bestRepo.FindByUserAndExercise(user.ID, 1)
	require.NoError(t, err)
	assert.InDelta(t, 150*(1+5.0/30.0), best.OneRm, 1e-9)
}

func TestBackfillUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewBackfillService(
		repository.NewUserRepository(db),
		repository.NewExerciseRecordRepository(db),
		repository.NewPersonalBestRepository(db),
		NewPersonalBestTracker(repository.NewPersonalBestRepository(db)),
	)

	_, err := svc.BackfillUser(4242)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestBackfillCoversMultipleGroups(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "UTC")
	bob := createTestUser(t, db, "UTC")
	recordRepo := repository.NewExerciseRecordRepository(db)
	bestRepo := repository.NewPersonalBestRepository(db)
	svc := NewBackfillService(
		repository.NewUserRepository(db),
		recordRepo,
		bestRepo,
		NewPersonalBestTracker(bestRepo),
	)

	for _, seed := range []struct {
		userID     uint
		exerciseID uint
	}{
		{alice.ID, 1}, {alice.ID, 2}, {bob.ID, 1},
	} {
		record := &model.ExerciseRecord{
			UserID: seed.userID, ExerciseID: seed.exerciseID,
			Reps: []int{5}, Weights: []float64{100},
		}
		require.NoError(t, recordRepo.Create(record))
	}

	result, err := svc.BackfillAll()
	require.NoError(t, err)
	assert.Equal(t, 2, result.UsersProcessed)
	assert.Equal(t, 3, result.RecordsEvaluated)
	assert.Equal(t, 3, result.SummariesUpserted)

	for _, pair := range []struct{ userID, exerciseID uint }{
		{alice.ID, 1}, {alice.ID, 2}, {bob.ID, 1},
	} {
		_, err := bestRepo.FindByUserAndExercise(pair.userID, pair.exerciseID)
		assert.NoError(t, err)
	}
}

package service

import (
	"testing"
	"time"

	"fitness_tracker_backend/internal/model"
	"fitness_tracker_backend/internal/repository"
	"fitness_tracker_backend/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 内存库按连接隔离, 必须锁成单连接
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, timezone string) *model.User {
	t.Helper()
	user := &model.User{
		Name:     "测试用户",
		Email:    model.GenerateUUID() + "@example.com",
		Password: "hashed",
		Timezone: timezone,
	}
	require.NoError(t, repository.NewUserRepository(db).Create(user))
	return user
}

func createTestWorkout(t *testing.T, db *gorm.DB, userID uint, name string) *model.Workout {
	t.Helper()
	workout := &model.Workout{UserID: userID, Name: name}
	require.NoError(t, repository.NewWorkoutRepository(db).Create(workout))
	return workout
}

func createTestRoutine(t *testing.T, db *gorm.DB, userID uint, start time.Time, pattern []model.RoutineDay) *model.Routine {
	t.Helper()
	routine := &model.Routine{
		UserID:    userID,
		Name:      "计划-" + model.GenerateUUID()[:8],
		Type:      model.RoutineSequential,
		StartDate: &start,
		Pattern:   pattern,
	}
	require.NoError(t, repository.NewRoutineRepository(db).Create(routine))
	return routine
}

func newStreakServiceForTest(db *gorm.DB, now time.Time) *StreakService {
	svc := NewStreakService(
		repository.NewUserRepository(db),
		repository.NewRoutineRepository(db),
		NewRoutineScheduler(),
	)
	svc.Now = func() time.Time { return now }
	return svc
}

func uintPtr(v uint) *uint {
	return &v
}

package database

import (
	"fitness_tracker_backend/internal/config"
	"fitness_tracker_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// Migrate 建表并补默认数据, 测试里的 sqlite 库也走这里
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Routine{},
		&model.RoutineDay{},
		&model.Workout{},
		&model.WorkoutExercise{},
		&model.WorkoutSession{},
		&model.Exercise{},
		&model.ExerciseRecord{},
		&model.ExercisePersonalBest{},
	)
	if err != nil {
		return err
	}

	seedExercises(db)
	return nil
}

// seedExercises 动作库为空时写入一批常用动作
func seedExercises(db *gorm.DB) {
	var count int64
	db.Model(&model.Exercise{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []model.Exercise{
		{Name: "深蹲", MuscleGroup: "legs", Equipment: "barbell", Description: "杠铃颈后深蹲"},
		{Name: "硬拉", MuscleGroup: "back", Equipment: "barbell", Description: "传统硬拉"},
		{Name: "卧推", MuscleGroup: "chest", Equipment: "barbell", Description: "平板杠铃卧推"},
		{Name: "推举", MuscleGroup: "shoulders", Equipment: "barbell", Description: "站姿杠铃推举"},
		{Name: "引体向上", MuscleGroup: "back", Equipment: "bodyweight", Description: "正握引体向上"},
		{Name: "划船", MuscleGroup: "back", Equipment: "barbell", Description: "俯身杠铃划船"},
		{Name: "弯举", MuscleGroup: "arms", Equipment: "dumbbell", Description: "哑铃二头弯举"},
		{Name: "平板支撑", MuscleGroup: "core", Equipment: "bodyweight", Description: "计时核心训练"},
	}
	for _, exercise := range defaults {
		db.Create(&exercise)
	}
}

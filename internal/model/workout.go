package model

import "time"

// Workout 一套训练动作的组合, 被 RoutineDay 引用
// swagger:model Workout
type Workout struct {
	BaseModel
	UserID    uint              `gorm:"index;not null" json:"userId"`
	Name      string            `gorm:"size:100;not null" json:"name"`
	Notes     string            `gorm:"type:text" json:"notes"`
	Exercises []WorkoutExercise `gorm:"foreignKey:WorkoutID;constraint:OnDelete:CASCADE" json:"exercises"`
}

func (Workout) TableName() string {
	return "workouts"
}

// swagger:model WorkoutExercise
type WorkoutExercise struct {
	ID         uint `gorm:"primaryKey;autoIncrement" json:"id"`
	WorkoutID  uint `gorm:"index;not null" json:"workoutId"`
	ExerciseID uint `gorm:"not null" json:"exerciseId"`
	Position   int  `gorm:"default:0" json:"position"`
	TargetSets int  `gorm:"default:0" json:"targetSets"`
	TargetReps int  `gorm:"default:0" json:"targetReps"`
}

func (WorkoutExercise) TableName() string {
	return "workout_exercises"
}

// WorkoutSession 一次完成的训练, 完成流程先落库再同步驱动连续打卡状态机
// swagger:model WorkoutSession
type WorkoutSession struct {
	BaseModel
	UserID      uint      `gorm:"index;not null" json:"userId"`
	WorkoutID   uint      `gorm:"index;not null" json:"workoutId"`
	CompletedAt time.Time `gorm:"not null" json:"completedAt"`
	Notes       string    `gorm:"type:text" json:"notes"`
}

func (WorkoutSession) TableName() string {
	return "workout_sessions"
}

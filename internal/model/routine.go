package model

import (
	"time"
)

type RoutineType string

const (
	RoutineSequential       RoutineType = "SEQUENTIAL"
	RoutineWeeklyCompletion RoutineType = "WEEKLY_COMPLETION"
)

type DayType string

const (
	DayWorkout DayType = "WORKOUT"
	DayRest    DayType = "REST"
)

// Routine 训练计划, Pattern 为循环的天模式, CreatedAt 在没有显式
// StartDate 时兼作循环锚点 (第0天)。
// swagger:model Routine
type Routine struct {
	BaseModel
	UserID    uint         `gorm:"index;not null" json:"userId"`
	Name      string       `gorm:"size:100;not null" json:"name"` // 同一用户内唯一, 不区分大小写
	Type      RoutineType  `gorm:"type:varchar(32);default:'SEQUENTIAL'" json:"type"`
	StartDate *time.Time   `json:"startDate,omitempty"`
	Pattern   []RoutineDay `gorm:"foreignKey:RoutineID;constraint:OnDelete:CASCADE" json:"pattern"`
}

func (Routine) TableName() string {
	return "routines"
}

// AnchorDate 返回循环锚点的日期部分
func (r *Routine) AnchorDate() time.Time {
	anchor := r.CreatedAt
	if r.StartDate != nil {
		anchor = *r.StartDate
	}
	return time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, anchor.Location())
}

// RoutineDay 循环模式中的一天, DayIndex 不要求连续, 缺口视为隐式休息日
// swagger:model RoutineDay
type RoutineDay struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoutineID uint    `gorm:"index;not null" json:"routineId"`
	DayIndex  int     `gorm:"not null" json:"dayIndex"`
	DayType   DayType `gorm:"type:varchar(16);not null" json:"dayType"`
	WorkoutID *uint   `json:"workoutId,omitempty"` // DayType=WORKOUT 时必填
}

func (RoutineDay) TableName() string {
	return "routine_days"
}

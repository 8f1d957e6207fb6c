package model

import (
	"time"

	"gorm.io/gorm"
)

// StreakInfo 用户连续打卡状态, 仅由 StreakService 变更。
// 不变量: CurrentStreak <= LongestStreak 在任何状态转换之后都成立。
// swagger:model StreakInfo
type StreakInfo struct {
	CurrentStreak          int        `gorm:"default:0" json:"currentStreak"`
	LongestStreak          int        `gorm:"default:0" json:"longestStreak"`
	NextWorkoutID          *uint      `json:"nextWorkoutId,omitempty"`
	NextWorkoutDeadline    *time.Time `json:"nextWorkoutDeadline,omitempty"`
	StreakFreezeCount      int        `gorm:"default:0" json:"streakFreezeCount"`
	LastWorkoutCountedDate *time.Time `json:"lastWorkoutCountedDate,omitempty"`

	// 周完成模式的字段, 目前没有任何状态转换逻辑使用它们 (见 RoutineType)
	WeeklyCompletedWorkoutIDs []uint     `gorm:"serializer:json" json:"-"`
	CurrentWeekStart          *time.Time `json:"-"`
}

type UserRole string

const (
	RoleMember UserRole = "member"
	RoleAdmin  UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name            string   `gorm:"size:100;not null" json:"name"`
	Email           string   `gorm:"size:100;unique;not null" json:"email"`
	Password        string   `gorm:"size:100;not null" json:"-"`
	Role            UserRole `gorm:"type:varchar(16);default:'member'" json:"role"`
	Timezone        string `gorm:"size:64;default:'UTC'" json:"timezone"`
	Avatar          string `gorm:"size:255" json:"avatar"`
	ActiveRoutineID *uint  `json:"activeRoutineId,omitempty"` // 当前激活的训练计划, 激活/停用只改这一个字段
	Streak          StreakInfo `gorm:"embedded" json:"streak"`
	LastLogin       time.Time  `json:"lastLogin"`
	LastSeen        time.Time  `json:"lastSeen"`
}

// BeforeCreate 在应用层兜底登录与活跃时间, 不依赖方言相关的列默认值
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.LastLogin.IsZero() {
		u.LastLogin = now
	}
	if u.LastSeen.IsZero() {
		u.LastSeen = now
	}
	return nil
}

func (User) TableName() string {
	return "users"
}

package model

// ExerciseRecord 一次动作训练记录, Reps/Weights/DurationSeconds 为平行数组。
// Achieved* 字段是派生的因果标注: 仅当该记录在被评估时刻打破了此前
// 该用户+动作的所有记录才会写入; 之后更好的记录不会回头清除它们,
// 但全量回填会整体重算。
// swagger:model ExerciseRecord
type ExerciseRecord struct {
	BaseModel
	UserID          uint      `gorm:"index:idx_user_exercise_created,priority:1;not null" json:"userId"`
	ExerciseID      uint      `gorm:"index:idx_user_exercise_created,priority:2;not null" json:"exerciseId"`
	Reps            []int     `gorm:"serializer:json" json:"reps"`
	Weights         []float64 `gorm:"serializer:json" json:"weights"` // 单位 kg
	DurationSeconds []int     `gorm:"serializer:json" json:"durationSeconds,omitempty"`
	Notes           string    `gorm:"type:text" json:"notes"`

	AchievedOneRm         *float64 `json:"achievedOneRm,omitempty"`
	AchievedOneRmSetIndex *int     `json:"achievedOneRmSetIndex,omitempty"`
	AchievedTotalVolume   *float64 `json:"achievedTotalVolume,omitempty"`
}

func (ExerciseRecord) TableName() string {
	return "exercise_records"
}

// HasAchievements 是否带有任一成就标注
func (r *ExerciseRecord) HasAchievements() bool {
	return r.AchievedOneRm != nil || r.AchievedOneRmSetIndex != nil || r.AchievedTotalVolume != nil
}

// ClearAchievements 清空成就标注 (回填重算前调用)
func (r *ExerciseRecord) ClearAchievements() {
	r.AchievedOneRm = nil
	r.AchievedOneRmSetIndex = nil
	r.AchievedTotalVolume = nil
}

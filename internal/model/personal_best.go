package model

// ExercisePersonalBest 每个 (用户, 动作) 一行的最好成绩汇总。
// 不变量: OneRm 等于该组合下出现过的最大 AchievedOneRm (回填最终一致);
// TotalVolume 同理。首条合格记录时惰性创建, 之后每次 PR 更新。
// swagger:model ExercisePersonalBest
type ExercisePersonalBest struct {
	BaseModel
	UserID              uint    `gorm:"uniqueIndex:idx_user_exercise_pb,priority:1;not null" json:"userId"`
	ExerciseID          uint    `gorm:"uniqueIndex:idx_user_exercise_pb,priority:2;not null" json:"exerciseId"`
	OneRm               float64 `gorm:"default:0" json:"oneRm"`
	OneRmRecordID       uint    `json:"oneRmRecordId"`
	OneRmRecordSetIndex int     `json:"oneRmRecordSetIndex"`
	TotalVolume         float64 `gorm:"default:0" json:"totalVolume"`
	TotalVolumeRecordID uint    `json:"totalVolumeRecordId"`
}

func (ExercisePersonalBest) TableName() string {
	return "exercise_personal_bests"
}

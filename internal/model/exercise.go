package model

// Exercise 动作库条目
// swagger:model Exercise
type Exercise struct {
	BaseModel
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	MuscleGroup string `gorm:"size:64;index" json:"muscleGroup"`
	Equipment   string `gorm:"size:64" json:"equipment"`
	Description string `gorm:"type:text" json:"description"`
}

func (Exercise) TableName() string {
	return "exercises"
}

package models

import "time"

type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

type LearningResource struct {
	ID          string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID      string    `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	Skill       string    `gorm:"column:skill;type:text" json:"skill"`
	Title       string    `gorm:"column:title;type:text" json:"title"`
	Source      string    `gorm:"column:source;type:text" json:"source"`
	URL         string    `gorm:"column:url;type:text" json:"url"`
	Description string    `gorm:"column:description;type:text" json:"description,omitempty"`
	Duration    string    `gorm:"column:duration;type:text" json:"duration,omitempty"`
	Level       Level     `gorm:"column:level;type:text" json:"level"`
	Completed   bool      `gorm:"column:completed;default:false" json:"completed"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (LearningResource) TableName() string { return "learning_resources" }

type LearningStats struct {
	Total          int            `json:"total"`
	Completed      int            `json:"completed"`
	CompletionRate int            `json:"completion_rate"` // rounded percent
	ByLevel        map[Level]int  `json:"by_level"`
	BySkill        map[string]int `json:"by_skill"`
}

package models

import "time"

type Tone string

const (
	ToneFormal       Tone = "Formal"
	ToneEnthusiastic Tone = "Enthusiastic"
	ToneDirect       Tone = "Direct"
)

func (t Tone) Valid() bool {
	switch t {
	case ToneFormal, ToneEnthusiastic, ToneDirect:
		return true
	}
	return false
}

type CoverLetter struct {
	ID             string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID         string    `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	JobTitle       string    `gorm:"column:job_title;type:text" json:"job_title"`
	JobDescription string    `gorm:"column:job_description;type:text" json:"job_description"`
	Tone           Tone      `gorm:"column:tone;type:text" json:"tone"`
	GeneratedText  string    `gorm:"column:generated_text;type:text" json:"generated_text"`
	CreatedAt      time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (CoverLetter) TableName() string { return "cover_letters" }

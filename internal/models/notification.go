package models

import "time"

type Notification struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	Title     string    `gorm:"column:title;type:text" json:"title"`
	Content   string    `gorm:"column:content;type:text" json:"content"`
	Type      string    `gorm:"column:type;type:text" json:"type"`
	Link      string    `gorm:"column:link;type:text" json:"link,omitempty"`
	Read      bool      `gorm:"column:read;default:false" json:"read"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;index" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

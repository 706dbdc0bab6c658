package models

import (
	"time"

	"github.com/lib/pq"
)

type Frequency string

const (
	FrequencyImmediate Frequency = "immediate"
	FrequencyDaily     Frequency = "daily"
	FrequencyWeekly    Frequency = "weekly"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyImmediate, FrequencyDaily, FrequencyWeekly:
		return true
	}
	return false
}

// Interval is the minimum gap between two non-manual alerts.
func (f Frequency) Interval() time.Duration {
	switch f {
	case FrequencyImmediate:
		return 0
	case FrequencyWeekly:
		return 7 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

type WhatsAppAlertPreference struct {
	ID                  string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID              string         `gorm:"column:user_id;type:uuid;uniqueIndex" json:"user_id"`
	WhatsAppNumber      string         `gorm:"column:whatsapp_number;type:text" json:"whatsapp_number"`
	IsEnabled           bool           `gorm:"column:is_enabled;default:false" json:"is_enabled"`
	JobSearchKeywords   pq.StringArray `gorm:"column:job_search_keywords;type:text[]" json:"job_search_keywords"`
	LocationPreferences pq.StringArray `gorm:"column:location_preferences;type:text[]" json:"location_preferences"`
	MinSalary           *int           `gorm:"column:min_salary;type:integer" json:"min_salary,omitempty"`
	Frequency           Frequency      `gorm:"column:frequency;type:text;default:daily" json:"frequency"`
	LastSentAt          *time.Time     `gorm:"column:last_sent_at;type:timestamptz" json:"last_sent_at,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (WhatsAppAlertPreference) TableName() string { return "whatsapp_alerts" }

// Normalize coerces an unknown stored frequency to daily.
func (p *WhatsAppAlertPreference) Normalize() {
	if !p.Frequency.Valid() {
		p.Frequency = FrequencyDaily
	}
}

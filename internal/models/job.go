package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

type Job struct {
	ID           string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title        string         `gorm:"column:title;type:text;not null;uniqueIndex:uniq_jobs_title_company" json:"title"`
	Company      string         `gorm:"column:company;type:text;not null;uniqueIndex:uniq_jobs_title_company" json:"company"`
	Location     string         `gorm:"column:location;type:text" json:"location"`
	Description  string         `gorm:"column:description;type:text" json:"description"`
	Requirements pq.StringArray `gorm:"column:requirements;type:text[]" json:"requirements"`

	SalaryMin   *int   `gorm:"column:salary_min;type:integer" json:"salary_min,omitempty"`
	SalaryMax   *int   `gorm:"column:salary_max;type:integer" json:"salary_max,omitempty"`
	SalaryRange string `gorm:"column:salary_range;type:text" json:"salary_range,omitempty"`

	IsRemote  bool   `gorm:"column:is_remote;default:false" json:"is_remote"`
	IsPremium bool   `gorm:"column:is_premium;default:false" json:"is_premium"`
	URL       string `gorm:"column:url;type:text" json:"url,omitempty"`
	Source    string `gorm:"column:source;type:text" json:"source,omitempty"`

	Embedding *pgvector.Vector `gorm:"column:embedding;type:vector(1536)" json:"-"`

	PostedDate time.Time `gorm:"column:posted_date;type:timestamptz;index" json:"posted_date"`
	CreatedAt  time.Time `gorm:"column:created_at;type:timestamptz;index" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Job) TableName() string { return "jobs" }

// SavedJob is a denormalized bookmark; unique per (user, job).
type SavedJob struct {
	ID          string   `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID      string   `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uniq_saved_jobs_user_job" json:"user_id"`
	JobID       string   `gorm:"column:job_id;type:uuid;not null;uniqueIndex:uniq_saved_jobs_user_job" json:"job_id"`
	JobTitle    string   `gorm:"column:job_title;type:text" json:"job_title"`
	Company     string   `gorm:"column:company;type:text" json:"company"`
	Location    string   `gorm:"column:location;type:text" json:"location"`
	Description string   `gorm:"column:description;type:text" json:"description"`
	Salary      string   `gorm:"column:salary;type:text" json:"salary"`
	MatchScore  *float64 `gorm:"column:match_score" json:"match_score,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (SavedJob) TableName() string { return "saved_jobs" }

// ScoredJob pairs a job with a 0..1 match score.
type ScoredJob struct {
	Job
	MatchScore float64 `json:"match_score"`
}

package models

import (
	"time"

	"github.com/lib/pq"
)

type CVFile struct {
	ID       string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID   string `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	FileName string `gorm:"column:file_name;type:text" json:"file_name"`
	FilePath string `gorm:"column:file_path;type:text" json:"file_path"` // object key in the bucket

	FileSize int    `gorm:"column:file_size;type:integer" json:"file_size"`
	MimeType string `gorm:"column:mime_type;type:text" json:"mime_type"`

	UploadedAt time.Time `gorm:"column:uploaded_at;type:timestamptz" json:"uploaded_at"`
}

func (CVFile) TableName() string { return "cv_files" }

type SavedCV struct {
	ID        string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    string         `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	Title     string         `gorm:"column:title;type:text" json:"title"`
	Content   string         `gorm:"column:content;type:text" json:"content"`
	JobTitle  string         `gorm:"column:job_title;type:text" json:"job_title"`
	Skills    pq.StringArray `gorm:"column:skills;type:text[]" json:"skills"`
	Completed bool           `gorm:"column:completed;default:false" json:"completed"`
	CreatedAt time.Time      `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (SavedCV) TableName() string { return "saved_cvs" }

type GeneratedCV struct {
	ID            string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID        string    `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	CVContent     string    `gorm:"column:cv_content;type:text" json:"cv_content"`
	JobTitle      string    `gorm:"column:job_title;type:text" json:"job_title"`
	TemplateStyle string    `gorm:"column:template_style;type:text" json:"template_style,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (GeneratedCV) TableName() string { return "generated_cvs" }

type OCRResult struct {
	ID            string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID        string    `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	FileURL       string    `gorm:"column:file_url;type:text" json:"file_url"`
	ExtractedText string    `gorm:"column:extracted_text;type:text" json:"extracted_text"`
	CreatedAt     time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (OCRResult) TableName() string { return "ocr_results" }

// ExtractedData is the structured part of a scanned CV.
type ExtractedData struct {
	JobTitle   string   `json:"jobTitle"`
	Skills     []string `json:"skills"`
	Experience string   `json:"experience"`
	Education  string   `json:"education"`
}

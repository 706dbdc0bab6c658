package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// Record is a free-form experience/education/project/certification entry.
type Record map[string]any

// Str returns the string value at key, or "" when absent or not a string.
func (r Record) Str(key string) string {
	if r == nil {
		return ""
	}
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

type Profile struct {
	ID                  string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	FullName            string `gorm:"column:full_name;type:text" json:"full_name"`
	Email               string `gorm:"column:email;type:text" json:"email"`
	PhoneNumber         string `gorm:"column:phone_number;type:text" json:"phone_number"`
	Location            string `gorm:"column:location;type:text" json:"location"`
	LinkedInURL         string `gorm:"column:linkedin_url;type:text" json:"linkedin_url"`
	ProfessionalSummary string `gorm:"column:professional_summary;type:text" json:"professional_summary"`

	Skills    pq.StringArray `gorm:"column:skills;type:text[]" json:"skills"`
	Interests pq.StringArray `gorm:"column:interests;type:text[]" json:"interests"`

	Experience     datatypes.JSONSlice[Record] `gorm:"column:experience;type:jsonb" json:"experience"`
	Education      datatypes.JSONSlice[Record] `gorm:"column:education;type:jsonb" json:"education"`
	Projects       datatypes.JSONSlice[Record] `gorm:"column:projects;type:jsonb" json:"projects"`
	Certifications datatypes.JSONSlice[Record] `gorm:"column:certifications;type:jsonb" json:"certifications"`
	Languages      datatypes.JSONSlice[Record] `gorm:"column:languages;type:jsonb" json:"languages"`

	// summary + skills embedding, used for job recommendations
	CVEmbedding *pgvector.Vector `gorm:"column:cv_embedding;type:vector(1536)" json:"-"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/yoockh/jobmate/internal/models"
	"github.com/yoockh/jobmate/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type JobFilter struct {
	Query  string
	Remote *bool
	Limit  int
	Offset int
}

// AlertCriteria mirrors a WhatsApp preference's matching fields.
type AlertCriteria struct {
	Keywords  []string
	Locations []string
	MinSalary *int
	// PostedAfter limits matches to jobs stored after this instant.
	PostedAfter *time.Time
}

type JobRepository interface {
	// UpsertMany inserts jobs, updating existing rows on (title, company).
	UpsertMany(ctx context.Context, jobs []models.Job) (int64, error)
	GetByID(ctx context.Context, id string) (*models.Job, error)
	Search(ctx context.Context, f JobFilter) ([]models.Job, error)
	Recent(ctx context.Context, n int) ([]models.Job, error)
	Match(ctx context.Context, c AlertCriteria, limit int) ([]models.Job, error)
	Nearest(ctx context.Context, v pgvector.Vector, limit int) ([]models.ScoredJob, error)
	MissingEmbeddings(ctx context.Context, limit int) ([]models.Job, error)
	UpdateEmbedding(ctx context.Context, id string, v pgvector.Vector) error
}

type jobRepo struct {
	db *gorm.DB
}

func NewJobRepo(db *gorm.DB) JobRepository {
	return &jobRepo{db: db}
}

var jobUpsertColumns = []string{
	"location", "description", "requirements", "salary_min", "salary_max", "salary_range",
	"is_remote", "url", "source", "posted_date", "updated_at",
}

func (r *jobRepo) UpsertMany(ctx context.Context, jobs []models.Job) (int64, error) {
	if len(jobs) == 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	// duplicate (title, company) pairs in one batch make ON CONFLICT fail
	seen := make(map[[2]string]struct{}, len(jobs))
	batch := make([]models.Job, 0, len(jobs))
	for _, j := range jobs {
		k := [2]string{j.Title, j.Company}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if j.ID == "" {
			j.ID = uuid.NewString()
		}
		if j.CreatedAt.IsZero() {
			j.CreatedAt = now
		}
		j.UpdatedAt = now
		batch = append(batch, j)
	}

	res := r.db.WithContext(ctx).
		Omit("embedding").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "title"}, {Name: "company"}},
			DoUpdates: clause.AssignmentColumns(jobUpsertColumns),
		}).
		CreateInBatches(batch, 100)
	return res.RowsAffected, res.Error
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*models.Job, error) {
	var j models.Job
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&j).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &j, err
}

func (r *jobRepo) Search(ctx context.Context, f JobFilter) ([]models.Job, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	q := r.db.WithContext(ctx).Model(&models.Job{})
	if f.Query != "" {
		like := "%" + f.Query + "%"
		q = q.Where("title ILIKE ? OR company ILIKE ? OR location ILIKE ?", like, like, like)
	}
	if f.Remote != nil {
		q = q.Where("is_remote = ?", *f.Remote)
	}

	var rows []models.Job
	err := q.Order("posted_date DESC").Limit(f.Limit).Offset(f.Offset).Find(&rows).Error
	return rows, err
}

func (r *jobRepo) Recent(ctx context.Context, n int) ([]models.Job, error) {
	if n <= 0 {
		n = 5
	}
	var rows []models.Job
	err := r.db.WithContext(ctx).
		Order("posted_date DESC").
		Limit(n).
		Find(&rows).Error
	return rows, err
}

func (r *jobRepo) Match(ctx context.Context, c AlertCriteria, limit int) ([]models.Job, error) {
	var rows []models.Job
	err := matchQuery(r.db.WithContext(ctx), c, limit).Find(&rows).Error
	return rows, err
}

// matchQuery: keywords OR'd on title, locations exact IN, salary strictly above the minimum.
func matchQuery(db *gorm.DB, c AlertCriteria, limit int) *gorm.DB {
	if limit <= 0 {
		limit = 5
	}
	q := db.Model(&models.Job{})

	var titles *gorm.DB
	for _, k := range c.Keywords {
		if k == "" {
			continue
		}
		if titles == nil {
			titles = db.Where("title ILIKE ?", "%"+k+"%")
		} else {
			titles = titles.Or("title ILIKE ?", "%"+k+"%")
		}
	}
	if titles != nil {
		q = q.Where(titles)
	}
	if len(c.Locations) > 0 {
		q = q.Where("location IN ?", c.Locations)
	}
	if c.MinSalary != nil {
		q = q.Where("salary_min > ?", *c.MinSalary)
	}
	if c.PostedAfter != nil {
		q = q.Where("created_at > ?", *c.PostedAfter)
	}
	return q.Order("created_at DESC").Limit(limit)
}

type jobDistance struct {
	models.Job
	Distance float64 `gorm:"column:distance"`
}

func (r *jobRepo) Nearest(ctx context.Context, v pgvector.Vector, limit int) ([]models.ScoredJob, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []jobDistance
	err := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Select("jobs.*, embedding <=> ? AS distance", v).
		Where("embedding IS NOT NULL").
		Order(clause.Expr{SQL: "embedding <=> ?", Vars: []any{v}}).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]models.ScoredJob, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.ScoredJob{Job: row.Job, MatchScore: 1 - row.Distance})
	}
	return out, nil
}

func (r *jobRepo) MissingEmbeddings(ctx context.Context, limit int) ([]models.Job, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []models.Job
	err := r.db.WithContext(ctx).
		Where("embedding IS NULL").
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *jobRepo) UpdateEmbedding(ctx context.Context, id string, v pgvector.Vector) error {
	return r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ?", id).
		Update("embedding", v).Error
}

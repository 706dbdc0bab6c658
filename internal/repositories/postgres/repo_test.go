package postgres

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/jobmate/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRunDB renders SQL through the postgres dialector without a server.
func dryRunDB(t *testing.T) (*gorm.DB, *[]string) {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=jobmate dbname=jobmate sslmode=disable",
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	var captured []string
	capture := func(tx *gorm.DB) { captured = append(captured, tx.Statement.SQL.String()) }
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("test:capture_create", capture))
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:capture_query", capture))
	return db, &captured
}

func TestJobUpsertTargetsTitleCompany(t *testing.T) {
	db, sqls := dryRunDB(t)
	repo := NewJobRepo(db)

	jobs := []models.Job{
		{Title: "Go Developer", Company: "Acme", Location: "Remote"},
		{Title: "Go Developer", Company: "Acme", Location: "Cape Town"},
		{Title: "SRE", Company: "Acme"},
	}
	_, err := repo.UpsertMany(context.Background(), jobs)
	require.NoError(t, err)
	require.Len(t, *sqls, 1)

	sql := (*sqls)[0]
	assert.Contains(t, sql, `INSERT INTO "jobs"`)
	assert.Contains(t, sql, `ON CONFLICT ("title","company") DO UPDATE SET`)
	assert.Contains(t, sql, `"location"="excluded"."location"`)
	assert.NotContains(t, sql, `"embedding"`)
	// the in-batch duplicate is dropped, leaving two value tuples
	assert.Equal(t, 2, tupleCount(sql))
}

func TestJobUpsertEmpty(t *testing.T) {
	db, sqls := dryRunDB(t)
	n, err := NewJobRepo(db).UpsertMany(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, *sqls)
}

func TestMatchQuery(t *testing.T) {
	db, sqls := dryRunDB(t)
	min := 50000

	var rows []models.Job
	require.NoError(t, matchQuery(db, AlertCriteria{
		Keywords:  []string{"golang", "backend"},
		Locations: []string{"Cape Town", "Remote"},
		MinSalary: &min,
	}, 5).Find(&rows).Error)
	require.Len(t, *sqls, 1)

	sql := (*sqls)[0]
	assert.Contains(t, sql, "title ILIKE $1 OR title ILIKE $2")
	assert.Contains(t, sql, "location IN ($3,$4)")
	assert.Contains(t, sql, "salary_min > $5")
	assert.Contains(t, sql, "ORDER BY created_at DESC")
	assert.Contains(t, sql, "LIMIT")
}

func TestMatchQueryPostedAfter(t *testing.T) {
	db, sqls := dryRunDB(t)
	since := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)

	var rows []models.Job
	require.NoError(t, matchQuery(db, AlertCriteria{PostedAfter: &since}, 5).Find(&rows).Error)
	assert.Contains(t, (*sqls)[0], "created_at > $1")
}

func TestMatchQueryWithoutFilters(t *testing.T) {
	db, sqls := dryRunDB(t)

	var rows []models.Job
	require.NoError(t, matchQuery(db, AlertCriteria{Keywords: []string{""}}, 0).Find(&rows).Error)
	sql := (*sqls)[0]
	assert.NotContains(t, sql, "ILIKE")
	assert.NotContains(t, sql, "salary_min")
}

func tupleCount(insert string) int {
	return strings.Count(insert, "),(") + 1
}

package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/jobmate/internal/models"
	"github.com/yoockh/jobmate/internal/providers/extract"
	"github.com/yoockh/jobmate/internal/storage"
	"github.com/yoockh/jobmate/internal/utils"
)

func TestLearningSeedsDefaultsOnce(t *testing.T) {
	repo := &fakeLearning{}
	svc := NewLearningService(repo)
	ctx := context.Background()

	rows, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, rows, len(defaultResources))
	for i := 1; i < len(rows); i++ {
		assert.LessOrEqual(t, rows[i-1].Skill, rows[i].Skill)
	}

	rows, err = svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, rows, len(defaultResources))

	require.NoError(t, svc.SetCompleted(ctx, "u1", rows[0].ID, true))
	st, err := svc.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, len(defaultResources), st.Total)
	assert.Equal(t, 1, st.Completed)
	assert.Equal(t, 17, st.CompletionRate)

	err = svc.SetCompleted(ctx, "u2", rows[0].ID, true)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestLearningCreate(t *testing.T) {
	svc := NewLearningService(&fakeLearning{})
	ctx := context.Background()

	err := svc.Create(ctx, &models.LearningResource{UserID: "u1", Skill: "Go", Title: "Tour", URL: "https://go.dev/tour", Level: "Expert"})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	lr := &models.LearningResource{UserID: "u1", Skill: "Go", Title: "Tour", URL: "https://go.dev/tour", Level: models.LevelBeginner, Completed: true}
	require.NoError(t, svc.Create(ctx, lr))
	assert.NotEmpty(t, lr.ID)
	assert.False(t, lr.Completed)
}

func TestLearningStatsOf(t *testing.T) {
	st := LearningStatsOf(nil)
	assert.Equal(t, 0, st.CompletionRate)

	st = LearningStatsOf([]models.LearningResource{
		{Skill: "Go", Level: models.LevelBeginner, Completed: true},
		{Skill: "Go", Level: models.LevelAdvanced},
		{Skill: "SQL", Level: models.LevelBeginner, Completed: true},
	})
	assert.Equal(t, 67, st.CompletionRate)
	assert.Equal(t, map[models.Level]int{models.LevelBeginner: 2, models.LevelAdvanced: 1}, st.ByLevel)
	assert.Equal(t, map[string]int{"Go": 2, "SQL": 1}, st.BySkill)
}

func TestSaveJob(t *testing.T) {
	minPay, maxPay := 30000, 45000
	jobs := &fakeJobs{rows: []models.Job{{ID: "j1", Title: "Teller", Company: "FNB", SalaryMin: &minPay, SalaryMax: &maxPay}}}
	saved := &fakeSavedJobs{}
	svc := NewSavedService(jobs, saved, &fakeSavedCVs{}, &fakeGeneratedCVs{})
	ctx := context.Background()

	row, err := svc.SaveJob(ctx, "u1", "j1", nil)
	require.NoError(t, err)
	assert.Equal(t, "Teller", row.JobTitle)
	assert.Equal(t, "30000 - 45000", row.Salary)

	_, err = svc.SaveJob(ctx, "u1", "j1", nil)
	assert.True(t, utils.IsCode(err, utils.CodeConflict))
	assert.Equal(t, 409, utils.HTTPStatus(err))

	bad := 1.5
	_, err = svc.SaveJob(ctx, "u1", "j1", &bad)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = svc.SaveJob(ctx, "u1", "missing", nil)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))

	require.NoError(t, svc.UnsaveJob(ctx, "u1", "j1"))
	err = svc.UnsaveJob(ctx, "u1", "j1")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestSavedCVs(t *testing.T) {
	cvs := &fakeSavedCVs{}
	svc := NewSavedService(&fakeJobs{}, &fakeSavedJobs{}, cvs, &fakeGeneratedCVs{})
	ctx := context.Background()

	cv := &models.SavedCV{UserID: "u1", JobTitle: "Nurse", Content: "<p>cv</p>"}
	require.NoError(t, svc.CreateCV(ctx, cv))
	assert.Equal(t, "Nurse CV", cv.Title)

	require.NoError(t, svc.CompleteCV(ctx, "u1", cv.ID))
	rows, err := svc.ListCVs(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Completed)

	err = svc.DeleteCV(ctx, "u2", cv.ID)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestDashboardStats(t *testing.T) {
	savedJobs := &fakeSavedJobs{rows: []models.SavedJob{{UserID: "u1", JobID: "a"}, {UserID: "u1", JobID: "b"}, {UserID: "u2", JobID: "a"}}}
	generated := &fakeGeneratedCVs{rows: []models.GeneratedCV{{ID: "g", UserID: "u1"}}}
	cvs := &fakeSavedCVs{rows: []models.SavedCV{{ID: "c1", UserID: "u1", Completed: true}, {ID: "c2", UserID: "u1"}}}
	interviews := newFakeInterviews()
	interviews.rows["s"] = &models.InterviewSession{SessionID: "s", UserID: "u1"}

	svc := NewDashboardService(savedJobs, generated, cvs, &fakeJobs{}, interviews)
	st, err := svc.Stats(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.SavedJobs)
	assert.Equal(t, int64(1), st.GeneratedCVs)
	assert.Equal(t, int64(1), st.InterviewSessions)
	require.NotNil(t, st.UnfinishedCV)
	assert.Equal(t, "c2", st.UnfinishedCV.ID)
	assert.NotNil(t, st.RecentJobs)

	st, err = svc.Stats(context.Background(), "u3")
	require.NoError(t, err)
	assert.Nil(t, st.UnfinishedCV)
}

type failingExtractor struct{}

func (failingExtractor) Extract(context.Context, string) (*extract.Document, error) {
	return nil, errors.New("document ai quota")
}

func TestScan(t *testing.T) {
	ocr := &fakeOCR{}
	svc := NewScanService(extract.Fixed{}, ocr, quietLogger())
	ctx := context.Background()

	_, err := svc.Scan(ctx, "u1", " ")
	assert.Equal(t, "File URL is required", utils.MessageOf(err))

	doc, err := svc.Scan(ctx, "u1", "blob:http://localhost/abc")
	require.NoError(t, err)
	assert.Equal(t, "Frontend Developer", doc.Data.JobTitle)
	require.Len(t, ocr.rows, 1)
	assert.Equal(t, doc.Text, ocr.rows[0].ExtractedText)

	_, err = NewScanService(failingExtractor{}, ocr, quietLogger()).Scan(ctx, "u1", "gs://b/cv.pdf")
	assert.True(t, utils.IsCode(err, utils.CodeUpstream))
}

func TestProfileEmbedding(t *testing.T) {
	profiles := &fakeProfiles{}
	emb := &stubEmbedder{}
	svc := NewProfileService(profiles, emb)
	ctx := context.Background()

	err := svc.Upsert(ctx, &models.Profile{FullName: "No ID"})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	require.NoError(t, svc.Upsert(ctx, &models.Profile{ID: "u1"}))
	err = svc.RefreshEmbedding(ctx, "u1")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	require.NoError(t, svc.Upsert(ctx, &models.Profile{ID: "u1", ProfessionalSummary: "Nurse", Skills: []string{"triage"}}))
	require.NoError(t, svc.RefreshEmbedding(ctx, "u1"))
	p, err := svc.GetMe(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, p.CVEmbedding)
	assert.Len(t, p.CVEmbedding.Slice(), 2)

	err = NewProfileService(profiles, nil).RefreshEmbedding(ctx, "u1")
	assert.True(t, utils.IsCode(err, utils.CodeConfiguration))

	_, err = svc.GetMe(ctx, "ghost")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestNotifications(t *testing.T) {
	repo := &fakeNotifications{}
	pub := &fakePublisher{}
	svc := NewNotificationService(repo, pub, quietLogger())
	ctx := context.Background()

	err := svc.Notify(ctx, &models.Notification{UserID: "u1"})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	n := &models.Notification{UserID: "u1", Title: "Hello", Type: "system"}
	require.NoError(t, svc.Notify(ctx, n))
	assert.Equal(t, []string{"user:u1:notifications"}, pub.channels)

	require.NoError(t, svc.MarkRead(ctx, "u1", n.ID))
	rows, err := svc.List(ctx, "u1", 20)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Read)

	err = svc.MarkRead(ctx, "u2", n.ID)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

type fakeCVFiles struct {
	rows []models.CVFile
	err  error
}

func (f *fakeCVFiles) Insert(_ context.Context, cf *models.CVFile) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, *cf)
	return nil
}

func (f *fakeCVFiles) ListByUser(_ context.Context, userID string) ([]models.CVFile, error) {
	var out []models.CVFile
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeCVFiles) GetByID(_ context.Context, userID, id string) (*models.CVFile, error) {
	for _, r := range f.rows {
		if r.ID == id && r.UserID == userID {
			cp := r
			return &cp, nil
		}
	}
	return nil, utils.ErrNotFound
}

func TestCVFileUpload(t *testing.T) {
	repo := &fakeCVFiles{}
	store := storage.NewMemory()
	svc := NewCVFileService(repo, store)
	ctx := context.Background()

	_, err := svc.Upload(ctx, "u1", "cv.docx", 10, "application/msword", strings.NewReader("x"))
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = svc.Upload(ctx, "u1", "cv.pdf", 11<<20, "application/pdf", strings.NewReader("x"))
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	f, err := svc.Upload(ctx, "u1", "CV.PDF", 3, "application/pdf", strings.NewReader("pdf"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(f.FilePath, "cv/u1/"))
	assert.True(t, store.Has(f.FilePath))

	u, err := svc.DownloadURL(ctx, "u1", f.ID)
	require.NoError(t, err)
	assert.Contains(t, u, "expires=")

	_, err = svc.DownloadURL(ctx, "u2", f.ID)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))

	repo.err = errors.New("insert failed")
	f2, err := svc.Upload(ctx, "u1", "b.pdf", 3, "application/pdf", strings.NewReader("pdf"))
	assert.Nil(t, f2)
	assert.True(t, utils.IsCode(err, utils.CodeInternal))
}

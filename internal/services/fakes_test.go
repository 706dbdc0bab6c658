package services

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/yoockh/jobmate/internal/models"
	"github.com/yoockh/jobmate/internal/providers/llm"
	pgrepo "github.com/yoockh/jobmate/internal/repositories/postgres"
	"github.com/yoockh/jobmate/internal/utils"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type mockLLM struct{ mock.Mock }

func (m *mockLLM) Name() string { return "Groq" }
func (m *mockLLM) Close() error { return nil }
func (m *mockLLM) Complete(ctx context.Context, system string, msgs []llm.Message, opts llm.Options) (string, error) {
	args := m.Called(ctx, system, msgs, opts)
	return args.String(0), args.Error(1)
}

type mockSender struct{ mock.Mock }

func (m *mockSender) Send(ctx context.Context, to, body string) error {
	return m.Called(ctx, to, body).Error(0)
}

type fakePublisher struct {
	mu       sync.Mutex
	channels []string
}

func (p *fakePublisher) Publish(ctx context.Context, channel string, _ interface{}) *redis.IntCmd {
	p.mu.Lock()
	p.channels = append(p.channels, channel)
	p.mu.Unlock()
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(1)
	return cmd
}

type fakeProfiles struct {
	rows map[string]*models.Profile
	err  error
}

func (f *fakeProfiles) GetByUserID(_ context.Context, userID string) (*models.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.rows[userID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return p, nil
}

func (f *fakeProfiles) Upsert(_ context.Context, p *models.Profile) error {
	if f.rows == nil {
		f.rows = map[string]*models.Profile{}
	}
	f.rows[p.ID] = p
	return nil
}

func (f *fakeProfiles) UpdateEmbedding(_ context.Context, userID string, v pgvector.Vector) error {
	p, ok := f.rows[userID]
	if !ok {
		return utils.ErrNotFound
	}
	p.CVEmbedding = &v
	return nil
}

type fakeGeneratedCVs struct {
	rows []models.GeneratedCV
	err  error
}

func (f *fakeGeneratedCVs) Insert(_ context.Context, cv *models.GeneratedCV) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, *cv)
	return nil
}

func (f *fakeGeneratedCVs) ListByUser(_ context.Context, userID string) ([]models.GeneratedCV, error) {
	var out []models.GeneratedCV
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeGeneratedCVs) Delete(_ context.Context, userID, id string) error {
	for i, r := range f.rows {
		if r.ID == id && r.UserID == userID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return utils.ErrNotFound
}

func (f *fakeGeneratedCVs) CountByUser(ctx context.Context, userID string) (int64, error) {
	rows, _ := f.ListByUser(ctx, userID)
	return int64(len(rows)), nil
}

type fakeCoverLetters struct {
	rows []models.CoverLetter
}

func (f *fakeCoverLetters) Insert(_ context.Context, cl *models.CoverLetter) error {
	f.rows = append(f.rows, *cl)
	return nil
}

func (f *fakeCoverLetters) ListByUser(_ context.Context, userID string) ([]models.CoverLetter, error) {
	var out []models.CoverLetter
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeCoverLetters) Delete(_ context.Context, userID, id string) error {
	for i, r := range f.rows {
		if r.ID == id && r.UserID == userID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return utils.ErrNotFound
}

type fakeChats struct {
	rows    map[string]*models.ChatSession
	creates int
}

func newFakeChats() *fakeChats { return &fakeChats{rows: map[string]*models.ChatSession{}} }

func (f *fakeChats) Create(_ context.Context, s *models.ChatSession) error {
	f.creates++
	s.CreatedAt = time.Now().UTC().Add(time.Duration(f.creates) * time.Millisecond)
	cp := *s
	f.rows[s.SessionID] = &cp
	return nil
}

func (f *fakeChats) GetBySessionID(_ context.Context, userID, sessionID string) (*models.ChatSession, error) {
	s, ok := f.rows[sessionID]
	if !ok || s.UserID != userID {
		return nil, utils.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeChats) Latest(_ context.Context, userID string) (*models.ChatSession, error) {
	var best *models.ChatSession
	for _, s := range f.rows {
		if s.UserID == userID && (best == nil || s.CreatedAt.After(best.CreatedAt)) {
			best = s
		}
	}
	if best == nil {
		return nil, utils.ErrNotFound
	}
	return best, nil
}

func (f *fakeChats) ReplaceMessages(_ context.Context, userID, sessionID string, msgs []models.ChatMessage) error {
	s, ok := f.rows[sessionID]
	if !ok || s.UserID != userID {
		return utils.ErrNotFound
	}
	s.Messages = append([]models.ChatMessage(nil), msgs...)
	return nil
}

type fakeInterviews struct {
	rows map[string]*models.InterviewSession
}

func newFakeInterviews() *fakeInterviews {
	return &fakeInterviews{rows: map[string]*models.InterviewSession{}}
}

func cloneSession(s *models.InterviewSession) *models.InterviewSession {
	cp := *s
	cp.Questions = append([]models.QuestionRecord(nil), s.Questions...)
	cp.Answers = append([]models.AnswerRecord(nil), s.Answers...)
	cp.Feedback = append([]models.FeedbackRecord(nil), s.Feedback...)
	return &cp
}

func (f *fakeInterviews) Create(_ context.Context, s *models.InterviewSession) error {
	f.rows[s.SessionID] = cloneSession(s)
	return nil
}

func (f *fakeInterviews) GetBySessionID(_ context.Context, userID, sessionID string) (*models.InterviewSession, error) {
	s, ok := f.rows[sessionID]
	if !ok || s.UserID != userID {
		return nil, utils.ErrNotFound
	}
	return cloneSession(s), nil
}

func (f *fakeInterviews) ListByUser(_ context.Context, userID string, _ int64) ([]models.InterviewSession, error) {
	var out []models.InterviewSession
	for _, s := range f.rows {
		if s.UserID == userID {
			out = append(out, *cloneSession(s))
		}
	}
	return out, nil
}

func (f *fakeInterviews) SaveProgress(_ context.Context, s *models.InterviewSession) error {
	cur, ok := f.rows[s.SessionID]
	if !ok || cur.UserID != s.UserID || cur.IsComplete {
		return utils.ErrConflict
	}
	f.rows[s.SessionID] = cloneSession(s)
	return nil
}

func (f *fakeInterviews) CountByUser(ctx context.Context, userID string) (int64, error) {
	rows, _ := f.ListByUser(ctx, userID, 0)
	return int64(len(rows)), nil
}

type fakeAlertPrefs struct {
	rows    map[string]*models.WhatsAppAlertPreference
	touched []time.Time
}

func newFakeAlertPrefs() *fakeAlertPrefs {
	return &fakeAlertPrefs{rows: map[string]*models.WhatsAppAlertPreference{}}
}

func (f *fakeAlertPrefs) GetByUserID(_ context.Context, userID string) (*models.WhatsAppAlertPreference, error) {
	p, ok := f.rows[userID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *p
	cp.Normalize()
	return &cp, nil
}

func (f *fakeAlertPrefs) Upsert(_ context.Context, p *models.WhatsAppAlertPreference) error {
	cp := *p
	if cur, ok := f.rows[p.UserID]; ok {
		cp.LastSentAt = cur.LastSentAt
	}
	f.rows[p.UserID] = &cp
	return nil
}

func (f *fakeAlertPrefs) TouchLastSent(_ context.Context, userID string, at time.Time) error {
	p, ok := f.rows[userID]
	if !ok {
		return utils.ErrNotFound
	}
	p.LastSentAt = &at
	f.touched = append(f.touched, at)
	return nil
}

func (f *fakeAlertPrefs) ListEnabledUserIDs(context.Context) ([]string, error) {
	var ids []string
	for id, p := range f.rows {
		if p.IsEnabled {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

type fakeJobs struct {
	rows       []models.Job
	matchCalls []pgrepo.AlertCriteria
	upserted   []models.Job
	embedded   map[string]pgvector.Vector
}

func (f *fakeJobs) UpsertMany(_ context.Context, jobs []models.Job) (int64, error) {
	f.upserted = append(f.upserted, jobs...)
	return int64(len(jobs)), nil
}

func (f *fakeJobs) GetByID(_ context.Context, id string) (*models.Job, error) {
	for _, j := range f.rows {
		if j.ID == id {
			cp := j
			return &cp, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (f *fakeJobs) Search(context.Context, pgrepo.JobFilter) ([]models.Job, error) {
	return f.rows, nil
}

func (f *fakeJobs) Recent(_ context.Context, n int) ([]models.Job, error) {
	if n > len(f.rows) {
		n = len(f.rows)
	}
	return f.rows[:n], nil
}

func (f *fakeJobs) Match(_ context.Context, c pgrepo.AlertCriteria, limit int) ([]models.Job, error) {
	f.matchCalls = append(f.matchCalls, c)
	if limit > len(f.rows) {
		limit = len(f.rows)
	}
	return f.rows[:limit], nil
}

func (f *fakeJobs) Nearest(_ context.Context, _ pgvector.Vector, limit int) ([]models.ScoredJob, error) {
	var out []models.ScoredJob
	for i, j := range f.rows {
		if i >= limit {
			break
		}
		out = append(out, models.ScoredJob{Job: j, MatchScore: 0.9})
	}
	return out, nil
}

func (f *fakeJobs) MissingEmbeddings(context.Context, int) ([]models.Job, error) {
	return f.upserted, nil
}

func (f *fakeJobs) UpdateEmbedding(_ context.Context, id string, v pgvector.Vector) error {
	if f.embedded == nil {
		f.embedded = map[string]pgvector.Vector{}
	}
	f.embedded[id] = v
	return nil
}

type fakeNotifications struct {
	rows []models.Notification
}

func (f *fakeNotifications) Insert(_ context.Context, n *models.Notification) error {
	f.rows = append(f.rows, *n)
	return nil
}

func (f *fakeNotifications) ListByUser(_ context.Context, userID string, _ int) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range f.rows {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotifications) MarkRead(_ context.Context, userID, id string) error {
	for i := range f.rows {
		if f.rows[i].ID == id && f.rows[i].UserID == userID {
			f.rows[i].Read = true
			return nil
		}
	}
	return utils.ErrNotFound
}

type fakeLearning struct {
	rows []models.LearningResource
}

func (f *fakeLearning) ListByUser(_ context.Context, userID string) ([]models.LearningResource, error) {
	var out []models.LearningResource
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Skill < out[b].Skill })
	return out, nil
}

func (f *fakeLearning) CountByUser(ctx context.Context, userID string) (int64, error) {
	rows, _ := f.ListByUser(ctx, userID)
	return int64(len(rows)), nil
}

func (f *fakeLearning) Insert(_ context.Context, lr *models.LearningResource) error {
	f.rows = append(f.rows, *lr)
	return nil
}

func (f *fakeLearning) InsertMany(_ context.Context, rows []models.LearningResource) error {
	f.rows = append(f.rows, rows...)
	return nil
}

func (f *fakeLearning) SetCompleted(_ context.Context, userID, id string, completed bool) error {
	for i := range f.rows {
		if f.rows[i].ID == id && f.rows[i].UserID == userID {
			f.rows[i].Completed = completed
			return nil
		}
	}
	return utils.ErrNotFound
}

func (f *fakeLearning) Delete(_ context.Context, userID, id string) error {
	for i, r := range f.rows {
		if r.ID == id && r.UserID == userID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return utils.ErrNotFound
}

type fakeSavedJobs struct {
	rows []models.SavedJob
}

func (f *fakeSavedJobs) ListByUser(_ context.Context, userID string) ([]models.SavedJob, error) {
	var out []models.SavedJob
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeSavedJobs) Insert(_ context.Context, s *models.SavedJob) error {
	for _, r := range f.rows {
		if r.UserID == s.UserID && r.JobID == s.JobID {
			return utils.ErrConflict
		}
	}
	f.rows = append(f.rows, *s)
	return nil
}

func (f *fakeSavedJobs) Delete(_ context.Context, userID, jobID string) error {
	for i, r := range f.rows {
		if r.UserID == userID && r.JobID == jobID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return utils.ErrNotFound
}

func (f *fakeSavedJobs) CountByUser(ctx context.Context, userID string) (int64, error) {
	rows, _ := f.ListByUser(ctx, userID)
	return int64(len(rows)), nil
}

type fakeSavedCVs struct {
	rows []models.SavedCV
}

func (f *fakeSavedCVs) ListByUser(_ context.Context, userID string) ([]models.SavedCV, error) {
	var out []models.SavedCV
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeSavedCVs) Insert(_ context.Context, cv *models.SavedCV) error {
	f.rows = append(f.rows, *cv)
	return nil
}

func (f *fakeSavedCVs) MarkCompleted(_ context.Context, userID, id string) error {
	for i := range f.rows {
		if f.rows[i].ID == id && f.rows[i].UserID == userID {
			f.rows[i].Completed = true
			return nil
		}
	}
	return utils.ErrNotFound
}

func (f *fakeSavedCVs) Delete(_ context.Context, userID, id string) error {
	for i, r := range f.rows {
		if r.ID == id && r.UserID == userID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return utils.ErrNotFound
}

func (f *fakeSavedCVs) LatestUnfinished(_ context.Context, userID string) (*models.SavedCV, error) {
	for i := len(f.rows) - 1; i >= 0; i-- {
		if f.rows[i].UserID == userID && !f.rows[i].Completed {
			cp := f.rows[i]
			return &cp, nil
		}
	}
	return nil, utils.ErrNotFound
}

type fakeOCR struct {
	rows []models.OCRResult
}

func (f *fakeOCR) Insert(_ context.Context, r *models.OCRResult) error {
	f.rows = append(f.rows, *r)
	return nil
}

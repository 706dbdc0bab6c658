package services

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yoockh/jobmate/internal/models"
	"github.com/yoockh/jobmate/internal/providers/stt"
	mongorepo "github.com/yoockh/jobmate/internal/repositories/mongo"
	"github.com/yoockh/jobmate/internal/utils"
)

var questionPools = []struct {
	category string
	take     int
	pool     []string
}{
	{"technical", 2, []string{
		"Explain the concept of state management in React.",
		"What are the differences between REST and GraphQL APIs?",
		"How do you handle errors in asynchronous JavaScript code?",
		"Describe your experience with TypeScript and its benefits.",
		"How would you optimize the performance of a web application?",
	}},
	{"behavioral", 1, []string{
		"Describe a challenging project you worked on and how you overcame obstacles.",
		"How do you handle disagreements with team members?",
		"Tell me about a time when you had to meet a tight deadline.",
		"How do you prioritize tasks when dealing with multiple projects?",
		"Describe your approach to learning new technologies.",
	}},
	{"situational", 2, []string{
		"How would you handle a situation where requirements change mid-project?",
		"What would you do if you discovered a critical bug shortly before a release?",
		"How would you onboard a new team member to your project?",
		"Describe how you would explain a complex technical concept to a non-technical stakeholder.",
		"How would you approach refactoring legacy code?",
	}},
}

// AnswerResult is the updated session plus the feedback for the answered slot.
type AnswerResult struct {
	Session  *models.InterviewSession `json:"session"`
	Feedback models.Feedback          `json:"feedback"`
}

type InterviewService interface {
	Start(ctx context.Context, userID, jobTitle string) (*models.InterviewSession, error)
	Get(ctx context.Context, userID, sessionID string) (*models.InterviewSession, error)
	List(ctx context.Context, userID string) ([]models.InterviewSession, error)
	Answer(ctx context.Context, userID, sessionID string, index int, answer string) (*AnswerResult, error)
	AnswerAudio(ctx context.Context, userID, sessionID string, index int, audio []byte, language string) (*AnswerResult, error)
}

type interviewService struct {
	sessions    mongorepo.InterviewRepository
	transcriber stt.Provider
	now         func() time.Time
}

// NewInterviewService takes a nil transcriber to use the fixed simulated transcription.
func NewInterviewService(sessions mongorepo.InterviewRepository, transcriber stt.Provider) InterviewService {
	return &interviewService{sessions: sessions, transcriber: transcriber, now: time.Now}
}

func pickQuestions() []models.QuestionRecord {
	var out []models.QuestionRecord
	for _, p := range questionPools {
		for _, i := range rand.Perm(len(p.pool))[:p.take] {
			out = append(out, models.QuestionRecord{Content: p.pool[i], Category: p.category})
		}
	}
	return out
}

func (s *interviewService) Start(ctx context.Context, userID, jobTitle string) (*models.InterviewSession, error) {
	const op = "InterviewService.Start"

	jobTitle = strings.TrimSpace(jobTitle)
	if userID == "" || len(jobTitle) < 3 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "job title must be at least 3 characters", nil)
	}

	qs := pickQuestions()
	sess := &models.InterviewSession{
		SessionID: uuid.NewString(),
		UserID:    userID,
		JobTitle:  jobTitle,
		Questions: qs,
		Answers:   make([]models.AnswerRecord, len(qs)),
		Feedback:  make([]models.FeedbackRecord, len(qs)),
		CreatedAt: s.now().UTC(),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create interview session", err)
	}
	return sess, nil
}

func (s *interviewService) Get(ctx context.Context, userID, sessionID string) (*models.InterviewSession, error) {
	const op = "InterviewService.Get"

	sess, err := s.sessions.GetBySessionID(ctx, userID, sessionID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "interview session not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get interview session", err)
	}
	return sess, nil
}

func (s *interviewService) List(ctx context.Context, userID string) ([]models.InterviewSession, error) {
	const op = "InterviewService.List"

	rows, err := s.sessions.ListByUser(ctx, userID, 50)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list interview sessions", err)
	}
	return rows, nil
}

// answerable loads a session and checks it can take an answer at index.
func (s *interviewService) answerable(ctx context.Context, op, userID, sessionID string, index int) (*models.InterviewSession, error) {
	sess, err := s.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.IsComplete {
		return nil, utils.E(utils.CodeConflict, op, "interview session is already complete", nil)
	}
	if index < 0 || index >= len(sess.Questions) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "question index out of range", nil)
	}
	// keep the three lists index-aligned for sessions stored short
	for len(sess.Answers) < len(sess.Questions) {
		sess.Answers = append(sess.Answers, models.AnswerRecord{})
	}
	for len(sess.Feedback) < len(sess.Questions) {
		sess.Feedback = append(sess.Feedback, models.FeedbackRecord{})
	}
	return sess, nil
}

func (s *interviewService) Answer(ctx context.Context, userID, sessionID string, index int, answer string) (*AnswerResult, error) {
	const op = "InterviewService.Answer"

	if strings.TrimSpace(answer) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Missing required parameters", nil)
	}
	sess, err := s.answerable(ctx, op, userID, sessionID, index)
	if err != nil {
		return nil, err
	}
	return s.record(ctx, op, sess, index, answer)
}

func (s *interviewService) AnswerAudio(ctx context.Context, userID, sessionID string, index int, audio []byte, language string) (*AnswerResult, error) {
	const op = "InterviewService.AnswerAudio"

	if len(audio) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "audio is required", nil)
	}
	sess, err := s.answerable(ctx, op, userID, sessionID, index)
	if err != nil {
		return nil, err
	}

	var t stt.Provider = stt.Fixed{Prompt: sess.Questions[index].Content}
	if s.transcriber != nil {
		t = s.transcriber
	}
	text, _, err := t.Transcribe(ctx, audio, stt.NormalizeLanguage(language))
	if err != nil {
		return nil, utils.E(utils.CodeUpstream, op, "failed to transcribe audio", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "no speech recognized", nil)
	}
	return s.record(ctx, op, sess, index, text)
}

func (s *interviewService) record(ctx context.Context, op string, sess *models.InterviewSession, index int, answer string) (*AnswerResult, error) {
	q := sess.Questions[index]
	fb := EvaluateAnswer(sess.JobTitle, q.Content, answer)

	sess.Answers[index] = models.AnswerRecord{Content: answer}
	sess.Feedback[index] = models.FeedbackRecord{
		Content:      fb.Feedback,
		Score:        float64(fb.Score) / 100,
		Strengths:    fb.Strengths,
		Improvements: fb.Improvements,
	}

	done := true
	for _, a := range sess.Answers {
		if a.Content == "" {
			done = false
			break
		}
	}
	if done {
		now := s.now().UTC()
		sess.IsComplete = true
		sess.CompletedAt = &now
	}

	if err := s.sessions.SaveProgress(ctx, sess); err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return nil, utils.E(utils.CodeConflict, op, "interview session is already complete", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to save answer", err)
	}
	return &AnswerResult{Session: sess, Feedback: fb}, nil
}

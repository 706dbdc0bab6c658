package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/jobmate/internal/models"
	"github.com/yoockh/jobmate/internal/prompts"
	"github.com/yoockh/jobmate/internal/providers/llm"
	mongorepo "github.com/yoockh/jobmate/internal/repositories/mongo"
	"github.com/yoockh/jobmate/internal/utils"
)

type AssistantInput struct {
	UserID          string
	Message         string
	SessionID       string
	ContextMessages []models.ChatMessage
}

type AssistantReply struct {
	Message   string               `json:"message"`
	SessionID string               `json:"sessionId"`
	History   []models.ChatMessage `json:"history"`
}

type AssistantService interface {
	Chat(ctx context.Context, in AssistantInput) (*AssistantReply, error)
	LatestSession(ctx context.Context, userID string) (*models.ChatSession, error)
	// NewSession starts an empty transcript; the previous one stays readable.
	NewSession(ctx context.Context, userID string) (*models.ChatSession, error)
}

type assistantService struct {
	groq  llm.Provider
	chats mongorepo.ChatRepository
	log   *logrus.Logger
}

func NewAssistantService(groq llm.Provider, chats mongorepo.ChatRepository, log *logrus.Logger) AssistantService {
	return &assistantService{groq: groq, chats: chats, log: log}
}

// Chat runs one turn. The transcript is read, appended and written back without
// a lock, so two concurrent turns on one session can drop each other's messages.
func (s *assistantService) Chat(ctx context.Context, in AssistantInput) (*AssistantReply, error) {
	const op = "AssistantService.Chat"

	if in.UserID == "" || strings.TrimSpace(in.Message) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Missing required parameters: userId and message are required", nil)
	}
	if s.groq == nil {
		return nil, notConfigured(op, "GROQ")
	}

	var stored []models.ChatMessage
	sessionID := in.SessionID
	if sessionID == "" {
		sess, err := s.NewSession(ctx, in.UserID)
		if err != nil {
			return nil, err
		}
		sessionID = sess.SessionID
	} else {
		// ownership is checked even when the client sends its own history
		sess, err := s.chats.GetBySessionID(ctx, in.UserID, sessionID)
		if err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				return nil, utils.E(utils.CodeNotFound, op, "chat session not found", err)
			}
			return nil, utils.E(utils.CodeInternal, op, "failed to load chat session", err)
		}
		stored = sess.Messages
	}

	history := append([]models.ChatMessage(nil), in.ContextMessages...)
	if len(history) == 0 {
		history = append(history, stored...)
	}

	history = append(history, models.ChatMessage{Role: models.ChatRoleUser, Content: in.Message, Timestamp: time.Now().UTC()})

	msgs := make([]llm.Message, 0, len(history))
	for _, m := range history {
		role := llm.RoleUser
		if m.Role == models.ChatRoleAssistant {
			role = llm.RoleAssistant
		}
		msgs = append(msgs, llm.Message{Role: role, Content: m.Content})
	}

	reply, err := s.groq.Complete(ctx, prompts.AssistantSystem, msgs, llm.Options{Temperature: 0.7, MaxTokens: 800})
	if err != nil {
		return nil, upstream(op, s.groq, err)
	}

	history = append(history, models.ChatMessage{Role: models.ChatRoleAssistant, Content: reply, Timestamp: time.Now().UTC()})

	if err := s.chats.ReplaceMessages(ctx, in.UserID, sessionID, history); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{"user_id": in.UserID, "session_id": sessionID}).
			Error("assistant: failed to persist chat history")
	}

	return &AssistantReply{Message: reply, SessionID: sessionID, History: history}, nil
}

func (s *assistantService) LatestSession(ctx context.Context, userID string) (*models.ChatSession, error) {
	const op = "AssistantService.LatestSession"

	sess, err := s.chats.Latest(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "no chat session", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load chat session", err)
	}
	return sess, nil
}

func (s *assistantService) NewSession(ctx context.Context, userID string) (*models.ChatSession, error) {
	const op = "AssistantService.NewSession"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	sess := &models.ChatSession{
		SessionID: uuid.NewString(),
		UserID:    userID,
		Messages:  []models.ChatMessage{},
	}
	if err := s.chats.Create(ctx, sess); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "Failed to create chat session", err)
	}
	return sess, nil
}

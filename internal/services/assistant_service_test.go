package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/jobmate/internal/models"
	"github.com/yoockh/jobmate/internal/prompts"
	"github.com/yoockh/jobmate/internal/providers/llm"
	"github.com/yoockh/jobmate/internal/utils"
)

func TestChatCreatesSessionOnce(t *testing.T) {
	chats := newFakeChats()
	groq := &mockLLM{}
	groq.On("Complete", mock.Anything, prompts.AssistantSystem, mock.Anything, mock.Anything).
		Return("Tailor your CV to each role.", nil)

	svc := NewAssistantService(groq, chats, quietLogger())
	reply, err := svc.Chat(context.Background(), AssistantInput{UserID: "u1", Message: "How do I stand out?"})
	require.NoError(t, err)

	assert.Equal(t, 1, chats.creates)
	assert.NotEmpty(t, reply.SessionID)
	assert.Equal(t, "Tailor your CV to each role.", reply.Message)
	require.Len(t, reply.History, 2)
	assert.Equal(t, models.ChatRoleUser, reply.History[0].Role)
	assert.Equal(t, models.ChatRoleAssistant, reply.History[1].Role)

	stored := chats.rows[reply.SessionID]
	require.NotNil(t, stored)
	assert.Len(t, stored.Messages, 2)
}

func TestChatContinuesStoredSession(t *testing.T) {
	chats := newFakeChats()
	svc := NewAssistantService(nil, chats, quietLogger())
	sess, err := svc.NewSession(context.Background(), "u1")
	require.NoError(t, err)
	chats.rows[sess.SessionID].Messages = []models.ChatMessage{
		{Role: models.ChatRoleUser, Content: "hi"},
		{Role: models.ChatRoleAssistant, Content: "hello"},
	}

	groq := &mockLLM{}
	groq.On("Complete", mock.Anything, mock.Anything, mock.MatchedBy(func(msgs []llm.Message) bool {
		return len(msgs) == 3 && msgs[1].Role == llm.RoleAssistant && msgs[2].Content == "next?"
	}), llm.Options{Temperature: 0.7, MaxTokens: 800}).Return("ok", nil).Once()

	svc = NewAssistantService(groq, chats, quietLogger())
	reply, err := svc.Chat(context.Background(), AssistantInput{UserID: "u1", Message: "next?", SessionID: sess.SessionID})
	require.NoError(t, err)
	groq.AssertExpectations(t)

	assert.Equal(t, 1, chats.creates)
	assert.Equal(t, sess.SessionID, reply.SessionID)
	assert.Len(t, chats.rows[sess.SessionID].Messages, 4)
}

func TestChatForeignSession(t *testing.T) {
	chats := newFakeChats()
	svc := NewAssistantService(&mockLLM{}, chats, quietLogger())
	sess, err := svc.NewSession(context.Background(), "owner")
	require.NoError(t, err)

	ctxMsgs := []models.ChatMessage{{Role: models.ChatRoleUser, Content: "earlier"}}
	tests := []struct {
		name string
		in   AssistantInput
	}{
		{"foreign session", AssistantInput{UserID: "intruder", Message: "hi", SessionID: sess.SessionID}},
		{"foreign session with client history", AssistantInput{UserID: "intruder", Message: "hi", SessionID: sess.SessionID, ContextMessages: ctxMsgs}},
		{"unknown session with client history", AssistantInput{UserID: "owner", Message: "hi", SessionID: "does-not-exist", ContextMessages: ctxMsgs}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := svc.Chat(context.Background(), tt.in)
			assert.Nil(t, reply)
			assert.True(t, utils.IsCode(err, utils.CodeNotFound))
		})
	}
	assert.Empty(t, chats.rows[sess.SessionID].Messages)
}

func TestChatClientHistoryOnOwnSession(t *testing.T) {
	groq := &mockLLM{}
	groq.On("Complete", mock.Anything, mock.Anything, mock.MatchedBy(func(msgs []llm.Message) bool {
		return len(msgs) == 2 && msgs[0].Content == "earlier"
	}), mock.Anything).Return("sure", nil).Once()

	chats := newFakeChats()
	svc := NewAssistantService(groq, chats, quietLogger())
	sess, err := svc.NewSession(context.Background(), "owner")
	require.NoError(t, err)

	reply, err := svc.Chat(context.Background(), AssistantInput{
		UserID:          "owner",
		Message:         "hi",
		SessionID:       sess.SessionID,
		ContextMessages: []models.ChatMessage{{Role: models.ChatRoleUser, Content: "earlier"}},
	})
	require.NoError(t, err)
	assert.Equal(t, sess.SessionID, reply.SessionID)
	assert.Len(t, chats.rows[sess.SessionID].Messages, 3)
	groq.AssertExpectations(t)
}

func TestChatErrors(t *testing.T) {
	_, err := NewAssistantService(&mockLLM{}, newFakeChats(), quietLogger()).
		Chat(context.Background(), AssistantInput{UserID: "u1", Message: "  "})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = NewAssistantService(nil, newFakeChats(), quietLogger()).
		Chat(context.Background(), AssistantInput{UserID: "u1", Message: "hi"})
	assert.True(t, utils.IsCode(err, utils.CodeConfiguration))
	assert.Equal(t, "GROQ API key is not configured", utils.MessageOf(err))

	groq := &mockLLM{}
	groq.On("Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("rate limited"))
	_, err = NewAssistantService(groq, newFakeChats(), quietLogger()).
		Chat(context.Background(), AssistantInput{UserID: "u1", Message: "hi"})
	assert.True(t, utils.IsCode(err, utils.CodeUpstream))
	assert.Equal(t, "Groq API error: rate limited", utils.MessageOf(err))
}

func TestLatestSession(t *testing.T) {
	chats := newFakeChats()
	svc := NewAssistantService(nil, chats, quietLogger())

	_, err := svc.LatestSession(context.Background(), "u1")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))

	_, err = svc.NewSession(context.Background(), "u1")
	require.NoError(t, err)
	second, err := svc.NewSession(context.Background(), "u1")
	require.NoError(t, err)

	got, err := svc.LatestSession(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, second.SessionID, got.SessionID)
}

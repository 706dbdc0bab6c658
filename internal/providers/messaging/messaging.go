package messaging

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Sender delivers a text message to a phone number.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// LogSender only logs the message.
type LogSender struct {
	Logger *logrus.Logger
}

func NewLogSender(l *logrus.Logger) *LogSender { return &LogSender{Logger: l} }

func (s *LogSender) Send(_ context.Context, to, body string) error {
	s.Logger.WithFields(logrus.Fields{
		"to":     to,
		"chars":  len(body),
		"sender": "mock",
	}).Info("whatsapp message (mock send)\n" + body)
	return nil
}

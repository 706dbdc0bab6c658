package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogSender(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)

	require.NoError(t, NewLogSender(l).Send(context.Background(), "+27825550101", "🔔 *JobMate: New Job Matches*"))
	assert.Contains(t, buf.String(), "+27825550101")
	assert.Contains(t, buf.String(), "mock send")
}

func TestWhatsAppCloudSend(t *testing.T) {
	var got waMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/12345/messages", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.1"}]}`))
	}))
	defer srv.Close()

	s := NewWhatsAppCloud("tok", "12345").WithBaseURL(srv.URL)
	require.NoError(t, s.Send(context.Background(), "+27 82 555 0101", "hello"))
	assert.Equal(t, "27825550101", got.To)
	assert.Equal(t, "whatsapp", got.MessagingProduct)
	assert.Equal(t, "hello", got.Text.Body)
}

func TestWhatsAppCloudError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Recipient phone number not in allowed list"}}`))
	}))
	defer srv.Close()

	err := NewWhatsAppCloud("tok", "1").WithBaseURL(srv.URL).Send(context.Background(), "1", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in allowed list")
}

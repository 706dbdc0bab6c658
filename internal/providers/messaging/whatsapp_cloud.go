package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const graphBaseURL = "https://graph.facebook.com/v19.0"

// WhatsAppCloud sends text messages through the Meta Graph API.
type WhatsAppCloud struct {
	token         string
	phoneNumberID string
	baseURL       string
	http          *http.Client
}

func NewWhatsAppCloud(token, phoneNumberID string) *WhatsAppCloud {
	return &WhatsAppCloud{
		token:         token,
		phoneNumberID: phoneNumberID,
		baseURL:       graphBaseURL,
		http:          &http.Client{Timeout: 15 * time.Second},
	}
}

// WithBaseURL points the client at another Graph host.
func (w *WhatsAppCloud) WithBaseURL(u string) *WhatsAppCloud {
	w.baseURL = strings.TrimRight(u, "/")
	return w
}

type waText struct {
	Body string `json:"body"`
}

type waMessage struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             waText `json:"text"`
}

type waError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (w *WhatsAppCloud) Send(ctx context.Context, to, body string) error {
	payload, err := json.Marshal(waMessage{
		MessagingProduct: "whatsapp",
		To:               strings.TrimPrefix(strings.ReplaceAll(to, " ", ""), "+"),
		Type:             "text",
		Text:             waText{Body: body},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/%s/messages", w.baseURL, w.phoneNumberID), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+w.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.http.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		var we waError
		if json.Unmarshal(raw, &we) == nil && we.Error.Message != "" {
			return fmt.Errorf("whatsapp send: %s", we.Error.Message)
		}
		return fmt.Errorf("whatsapp send: status %d", resp.StatusCode)
	}
	return nil
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/jobmate/internal/services"
)

const (
	wsWriteWait = 10 * time.Second
	wsPongWait  = 60 * time.Second
	wsPingEvery = 50 * time.Second
)

// WSHandler pushes a user's notifications as they are published on Redis.
type WSHandler struct {
	notifications services.NotificationService
	redis         *redis.Client
	log           *logrus.Logger
	upgrader      websocket.Upgrader
}

func NewWSHandler(notifications services.NotificationService, rdb *redis.Client, log *logrus.Logger) *WSHandler {
	return &WSHandler{
		notifications: notifications,
		redis:         rdb,
		log:           log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

type wsClientMsg struct {
	Type string `json:"type"` // ping|mark_read
	ID   string `json:"id"`
}

type wsServerMsg struct {
	Type    string `json:"type"`
	ID      string `json:"id,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) write(msgType int, b []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.c.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return w.c.WriteMessage(msgType, b)
}

func (w *wsConn) writeJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return w.write(websocket.TextMessage, b)
}

// Notifications godoc
// @Summary Websocket stream of new notifications
// @Description Send the token as a bearer header or access_token query parameter.
// @Tags notifications
// @Security BearerAuth
// @Router /ws/notifications [get]
func (h *WSHandler) Notifications(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote response in most cases
		return
	}
	defer conn.Close()

	wc := &wsConn{c: conn}
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	pubsub := h.redis.Subscribe(ctx, services.NotificationChannel(userID))
	defer pubsub.Close()

	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		h.readLoop(ctx, wc, userID)
	}()

	ping := time.NewTicker(wsPingEvery)
	defer ping.Stop()
	msgs := pubsub.Channel()

	for {
		select {
		case <-readDone:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			if err := wc.write(websocket.PingMessage, nil); err != nil {
				return
			}
		case m, ok := <-msgs:
			if !ok {
				return
			}
			// payload is the notification JSON as published
			if err := wc.write(websocket.TextMessage, []byte(m.Payload)); err != nil {
				return
			}
		}
	}
}

func (h *WSHandler) readLoop(ctx context.Context, wc *wsConn, userID string) {
	conn := wc.c
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg wsClientMsg
		if err := json.Unmarshal(data, &msg); err != nil {
			_ = wc.writeJSON(wsServerMsg{Type: "error", Code: "INVALID_ARGUMENT", Message: "invalid json"})
			continue
		}

		switch msg.Type {
		case "ping":
			_ = wc.writeJSON(wsServerMsg{Type: "pong"})
		case "mark_read":
			if err := h.notifications.MarkRead(ctx, userID, msg.ID); err != nil {
				h.log.WithError(err).WithField("user_id", userID).Debug("ws: mark_read failed")
				_ = wc.writeJSON(wsServerMsg{Type: "error", Code: "NOT_FOUND", Message: "notification not found"})
				continue
			}
			_ = wc.writeJSON(wsServerMsg{Type: "read", ID: msg.ID})
		default:
			_ = wc.writeJSON(wsServerMsg{Type: "error", Code: "INVALID_ARGUMENT", Message: "unknown message type"})
		}
	}
}

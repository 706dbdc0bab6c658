package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobmate/internal/services"
)

type ChatHandler struct {
	svc services.AssistantService
}

func NewChatHandler(svc services.AssistantService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// Latest godoc
// @Summary Latest chat session with its transcript
// @Tags chat
// @Produce json
// @Success 200 {object} models.ChatSession
// @Failure 404 {object} APIError
// @Security BearerAuth
// @Router /api/v1/chat/session [get]
func (h *ChatHandler) Latest(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	sess, err := h.svc.LatestSession(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// Clear starts a fresh, empty session; older transcripts are kept.
func (h *ChatHandler) Clear(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	sess, err := h.svc.NewSession(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

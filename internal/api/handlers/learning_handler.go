package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobmate/internal/models"
	"github.com/yoockh/jobmate/internal/services"
)

type LearningHandler struct {
	svc services.LearningService
}

func NewLearningHandler(svc services.LearningService) *LearningHandler {
	return &LearningHandler{svc: svc}
}

// List godoc
// @Summary List learning resources (defaults are added on first use)
// @Tags learning
// @Produce json
// @Success 200 {array} models.LearningResource
// @Security BearerAuth
// @Router /api/v1/learning [get]
func (h *LearningHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	rows, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

type CreateLearningRequest struct {
	Skill       string       `json:"skill" binding:"required"`
	Title       string       `json:"title" binding:"required"`
	Source      string       `json:"source"`
	URL         string       `json:"url" binding:"required"`
	Description string       `json:"description"`
	Duration    string       `json:"duration"`
	Level       models.Level `json:"level" binding:"required,oneof=Beginner Intermediate Advanced"`
}

func (h *LearningHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req CreateLearningRequest
	if !bindJSON(c, "LearningHandler.Create", &req) {
		return
	}
	lr := &models.LearningResource{
		UserID:      userID,
		Skill:       req.Skill,
		Title:       req.Title,
		Source:      req.Source,
		URL:         req.URL,
		Description: req.Description,
		Duration:    req.Duration,
		Level:       req.Level,
	}
	if err := h.svc.Create(c.Request.Context(), lr); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lr)
}

type SetCompletedRequest struct {
	Completed bool `json:"completed"`
}

func (h *LearningHandler) SetCompleted(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req SetCompletedRequest
	if !bindJSON(c, "LearningHandler.SetCompleted", &req) {
		return
	}
	if err := h.svc.SetCompleted(c.Request.Context(), userID, c.Param("id"), req.Completed); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LearningHandler) Delete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LearningHandler) Stats(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	st, err := h.svc.Stats(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

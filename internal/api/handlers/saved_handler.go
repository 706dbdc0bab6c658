package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobmate/internal/models"
	"github.com/yoockh/jobmate/internal/services"
)

// SavedHandler serves saved jobs, saved CVs and generated CVs.
type SavedHandler struct {
	svc services.SavedService
}

func NewSavedHandler(svc services.SavedService) *SavedHandler {
	return &SavedHandler{svc: svc}
}

func (h *SavedHandler) ListJobs(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	rows, err := h.svc.ListJobs(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

type SaveJobRequest struct {
	JobID      string   `json:"job_id" binding:"required"`
	MatchScore *float64 `json:"match_score"`
}

// SaveJob godoc
// @Summary Bookmark a job
// @Tags saved
// @Accept json
// @Produce json
// @Param body body SaveJobRequest true "Job to save"
// @Success 201 {object} models.SavedJob
// @Failure 404 {object} APIError
// @Failure 409 {object} APIError "already saved"
// @Security BearerAuth
// @Router /api/v1/saved/jobs [post]
func (h *SavedHandler) SaveJob(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req SaveJobRequest
	if !bindJSON(c, "SavedHandler.SaveJob", &req) {
		return
	}
	row, err := h.svc.SaveJob(c.Request.Context(), userID, req.JobID, req.MatchScore)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (h *SavedHandler) UnsaveJob(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.svc.UnsaveJob(c.Request.Context(), userID, c.Param("job_id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SavedHandler) ListCVs(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	rows, err := h.svc.ListCVs(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

type CreateSavedCVRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content" binding:"required"`
	JobTitle string   `json:"job_title"`
	Skills   []string `json:"skills"`
}

func (h *SavedHandler) CreateCV(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req CreateSavedCVRequest
	if !bindJSON(c, "SavedHandler.CreateCV", &req) {
		return
	}
	cv := &models.SavedCV{
		UserID:   userID,
		Title:    req.Title,
		Content:  req.Content,
		JobTitle: req.JobTitle,
		Skills:   req.Skills,
	}
	if err := h.svc.CreateCV(c.Request.Context(), cv); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cv)
}

func (h *SavedHandler) CompleteCV(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.svc.CompleteCV(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SavedHandler) DeleteCV(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteCV(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SavedHandler) ListGeneratedCVs(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	rows, err := h.svc.ListGeneratedCVs(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *SavedHandler) DeleteGeneratedCV(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteGeneratedCV(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

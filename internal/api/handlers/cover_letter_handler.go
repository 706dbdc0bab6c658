package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobmate/internal/models"
	"github.com/yoockh/jobmate/internal/services"
)

type CoverLetterHandler struct {
	svc services.CoverLetterService
}

func NewCoverLetterHandler(svc services.CoverLetterService) *CoverLetterHandler {
	return &CoverLetterHandler{svc: svc}
}

func (h *CoverLetterHandler) List(c *gin.Context) {
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

type SaveCoverLetterRequest struct {
	JobTitle       string      `json:"job_title" binding:"required"`
	JobDescription string      `json:"job_description"`
	Tone           models.Tone `json:"tone" binding:"required,oneof=Formal Enthusiastic Direct"`
	GeneratedText  string      `json:"generated_text" binding:"required"`
}

// Create godoc
// @Summary Save an edited cover letter
// @Tags cover-letters
// @Accept json
// @Produce json
// @Param body body SaveCoverLetterRequest true "Letter"
// @Success 201 {object} models.CoverLetter
// @Failure 400 {object} APIError
// @Security BearerAuth
// @Router /api/v1/cover-letters [post]
func (h *CoverLetterHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req SaveCoverLetterRequest
	if !bindJSON(c, "CoverLetterHandler.Create", &req) {
		return
	}
	cl := &models.CoverLetter{
		UserID:         userID,
		JobTitle:       req.JobTitle,
		JobDescription: req.JobDescription,
		Tone:           req.Tone,
		GeneratedText:  req.GeneratedText,
	}
	if err := h.svc.Save(c.Request.Context(), cl); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cl)
}

func (h *CoverLetterHandler) Delete(c *gin.Context) {
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

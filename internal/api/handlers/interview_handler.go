package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobmate/internal/services"
	"github.com/yoockh/jobmate/internal/utils"
)

const maxAudioBytes = 10 << 20

type InterviewHandler struct {
	svc services.InterviewService
}

func NewInterviewHandler(svc services.InterviewService) *InterviewHandler {
	return &InterviewHandler{svc: svc}
}

type StartInterviewRequest struct {
	JobTitle string `json:"job_title" binding:"required"`
}

// Start godoc
// @Summary Start a practice interview with five questions
// @Tags interview
// @Accept json
// @Produce json
// @Param body body StartInterviewRequest true "Target role"
// @Success 201 {object} models.InterviewSession
// @Failure 400 {object} APIError
// @Security BearerAuth
// @Router /api/v1/interview/sessions [post]
func (h *InterviewHandler) Start(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req StartInterviewRequest
	if !bindJSON(c, "InterviewHandler.Start", &req) {
		return
	}
	sess, err := h.svc.Start(c.Request.Context(), userID, req.JobTitle)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

func (h *InterviewHandler) List(c *gin.Context) {
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

func (h *InterviewHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	sess, err := h.svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

type AnswerRequest struct {
	Index  *int   `json:"index" binding:"required"`
	Answer string `json:"answer" binding:"required"`
}

// Answer godoc
// @Summary Answer one question and get feedback
// @Tags interview
// @Accept json
// @Produce json
// @Param id path string true "Session id"
// @Param body body AnswerRequest true "Answer"
// @Success 200 {object} services.AnswerResult
// @Failure 400 {object} APIError
// @Failure 409 {object} APIError "session already complete"
// @Security BearerAuth
// @Router /api/v1/interview/sessions/{id}/answers [post]
func (h *InterviewHandler) Answer(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req AnswerRequest
	if !bindJSON(c, "InterviewHandler.Answer", &req) {
		return
	}
	res, err := h.svc.Answer(c.Request.Context(), userID, c.Param("id"), *req.Index, req.Answer)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// AnswerAudio godoc
// @Summary Answer one question with a voice recording
// @Tags interview
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Session id"
// @Param audio formData file true "Recording"
// @Param index formData int true "Question index"
// @Param language formData string false "Language code (en, af, zu)"
// @Success 200 {object} services.AnswerResult
// @Failure 400 {object} APIError
// @Security BearerAuth
// @Router /api/v1/interview/sessions/{id}/answers/audio [post]
func (h *InterviewHandler) AnswerAudio(c *gin.Context) {
	const op = "InterviewHandler.AnswerAudio"

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.PostForm("index"))
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "index must be an integer", err))
		return
	}
	fh, err := c.FormFile("audio")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "missing multipart field 'audio'", err))
		return
	}
	if fh.Size > maxAudioBytes {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "audio too large (max 10MB)", nil))
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to open upload", err))
		return
	}
	defer f.Close()
	audio, err := io.ReadAll(f)
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to read upload", err))
		return
	}

	res, err := h.svc.AnswerAudio(c.Request.Context(), userID, c.Param("id"), index, audio, c.PostForm("language"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

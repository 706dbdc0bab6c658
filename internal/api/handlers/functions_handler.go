package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobmate/internal/api/middleware"
	"github.com/yoockh/jobmate/internal/models"
	"github.com/yoockh/jobmate/internal/prompts"
	"github.com/yoockh/jobmate/internal/providers/jobsource"
	"github.com/yoockh/jobmate/internal/services"
	"github.com/yoockh/jobmate/internal/utils"
)

// FunctionsHandler serves the /functions/v1 endpoints. They speak camelCase JSON
// and report failures as {"error": "..."}.
type FunctionsHandler struct {
	cv          services.CVService
	coverLetter services.CoverLetterService
	assistant   services.AssistantService
	ingest      services.JobIngestionService
	search      services.JobSearchService
	alerts      services.AlertService
	scan        services.ScanService
}

func NewFunctionsHandler(
	cv services.CVService,
	coverLetter services.CoverLetterService,
	assistant services.AssistantService,
	ingest services.JobIngestionService,
	search services.JobSearchService,
	alerts services.AlertService,
	scan services.ScanService,
) *FunctionsHandler {
	return &FunctionsHandler{
		cv:          cv,
		coverLetter: coverLetter,
		assistant:   assistant,
		ingest:      ingest,
		search:      search,
		alerts:      alerts,
		scan:        scan,
	}
}

type GenerateCVRequest struct {
	JobTitle       string   `json:"jobTitle"`
	Skills         []string `json:"skills"`
	WorkExperience string   `json:"workExperience"`
	Education      string   `json:"education"`
	AdditionalInfo string   `json:"additionalInfo"`
	TemplateStyle  string   `json:"templateStyle"`
	UserID         string   `json:"userId"`
}

type CVContentResponse struct {
	CVContent string `json:"cvContent"`
}

// GenerateCV godoc
// @Summary Generate an HTML CV with Groq
// @Tags functions
// @Accept json
// @Produce json
// @Param body body GenerateCVRequest true "CV request"
// @Success 200 {object} CVContentResponse
// @Failure 400 {object} FunctionError
// @Failure 500 {object} FunctionError
// @Security BearerAuth
// @Router /functions/v1/generate-cv-with-groq [post]
func (h *FunctionsHandler) GenerateCV(c *gin.Context) {
	var req GenerateCVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeFunctionError(c, utils.E(utils.CodeInvalidArgument, "FunctionsHandler.GenerateCV", "invalid request body", err), false)
		return
	}
	userID, err := principalFor(c, req.UserID)
	if err != nil {
		writeFunctionError(c, err, false)
		return
	}

	content, err := h.cv.Generate(c.Request.Context(), userID, prompts.CVInput{
		JobTitle:       req.JobTitle,
		Skills:         req.Skills,
		WorkExperience: req.WorkExperience,
		Education:      req.Education,
		AdditionalInfo: req.AdditionalInfo,
		TemplateStyle:  req.TemplateStyle,
	})
	if err != nil {
		writeFunctionError(c, err, false)
		return
	}
	c.JSON(http.StatusOK, CVContentResponse{CVContent: content})
}

type GenerateCVFromProfileRequest struct {
	ProfileData *models.Profile `json:"profileData"`
	JobTitle    string          `json:"jobTitle"`
}

// GenerateCVFromProfile godoc
// @Summary Generate a South African style CV from profile data
// @Tags functions
// @Accept json
// @Produce json
// @Param body body GenerateCVFromProfileRequest true "Profile data"
// @Success 200 {object} CVContentResponse
// @Failure 400 {object} FunctionError
// @Failure 500 {object} FunctionError
// @Router /functions/v1/generate-cv [post]
func (h *FunctionsHandler) GenerateCVFromProfile(c *gin.Context) {
	const op = "FunctionsHandler.GenerateCVFromProfile"

	var req GenerateCVFromProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeFunctionError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err), false)
		return
	}
	if req.ProfileData == nil {
		writeFunctionError(c, utils.E(utils.CodeInvalidArgument, op, "Profile data is required", nil), false)
		return
	}

	content, err := h.cv.GenerateFromProfile(c.Request.Context(), *req.ProfileData, req.JobTitle)
	if err != nil {
		writeFunctionError(c, err, false)
		return
	}
	c.JSON(http.StatusOK, CVContentResponse{CVContent: content})
}

type CoverLetterRequest struct {
	JobTitle       string      `json:"jobTitle"`
	JobDescription string      `json:"jobDescription"`
	Tone           models.Tone `json:"tone"`
	UserName       string      `json:"userName"`
	UserSkills     string      `json:"userSkills"`
	UserExperience string      `json:"userExperience"`
}

type CoverLetterResponse struct {
	CoverLetter string `json:"coverLetter"`
}

// CoverLetter godoc
// @Summary Generate a cover letter
// @Description Saved to the caller's cover letters when a valid bearer token is sent.
// @Tags functions
// @Accept json
// @Produce json
// @Param body body CoverLetterRequest true "Cover letter request"
// @Success 200 {object} CoverLetterResponse
// @Failure 400 {object} FunctionError
// @Failure 500 {object} FunctionError
// @Router /functions/v1/generate-cover-letter [post]
func (h *FunctionsHandler) CoverLetter(c *gin.Context) {
	var req CoverLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeFunctionError(c, utils.E(utils.CodeInvalidArgument, "FunctionsHandler.CoverLetter", "invalid request body", err), false)
		return
	}

	// anonymous callers get a letter that is not stored
	userID := c.GetString(middleware.CtxUserID)
	letter, err := h.coverLetter.Generate(c.Request.Context(), userID, prompts.CoverLetterInput{
		JobTitle:       req.JobTitle,
		JobDescription: req.JobDescription,
		Tone:           req.Tone,
		UserName:       req.UserName,
		UserSkills:     req.UserSkills,
		UserExperience: req.UserExperience,
	})
	if err != nil {
		writeFunctionError(c, err, false)
		return
	}
	c.JSON(http.StatusOK, CoverLetterResponse{CoverLetter: letter})
}

type AssistantRequest struct {
	UserID          string               `json:"userId"`
	Message         string               `json:"message"`
	SessionID       *string              `json:"sessionId"`
	ContextMessages []models.ChatMessage `json:"contextMessages"`
}

// Assistant godoc
// @Summary Chat with the career assistant
// @Tags functions
// @Accept json
// @Produce json
// @Param body body AssistantRequest true "Chat turn"
// @Success 200 {object} services.AssistantReply
// @Failure 400 {object} FunctionError
// @Failure 500 {object} FunctionError
// @Security BearerAuth
// @Router /functions/v1/jobmate-assistant [post]
func (h *FunctionsHandler) Assistant(c *gin.Context) {
	var req AssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeFunctionError(c, utils.E(utils.CodeInvalidArgument, "FunctionsHandler.Assistant", "invalid request body", err), false)
		return
	}
	userID, err := principalFor(c, req.UserID)
	if err != nil {
		writeFunctionError(c, err, false)
		return
	}

	in := services.AssistantInput{
		UserID:          userID,
		Message:         req.Message,
		ContextMessages: req.ContextMessages,
	}
	if req.SessionID != nil {
		in.SessionID = strings.TrimSpace(*req.SessionID)
	}

	reply, err := h.assistant.Chat(c.Request.Context(), in)
	if err != nil {
		writeFunctionError(c, err, false)
		return
	}
	c.JSON(http.StatusOK, reply)
}

type InterviewCoachRequest struct {
	JobTitle string `json:"jobTitle"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type InterviewCoachResponse struct {
	Success bool `json:"success"`
	models.Feedback
}

// InterviewCoach godoc
// @Summary Score an interview answer
// @Tags functions
// @Accept json
// @Produce json
// @Param body body InterviewCoachRequest true "Question and answer"
// @Success 200 {object} InterviewCoachResponse
// @Failure 400 {object} FunctionError
// @Router /functions/v1/interview-coach [post]
func (h *FunctionsHandler) InterviewCoach(c *gin.Context) {
	const op = "FunctionsHandler.InterviewCoach"

	var req InterviewCoachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeFunctionError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err), true)
		return
	}
	if strings.TrimSpace(req.Question) == "" || strings.TrimSpace(req.Answer) == "" {
		writeFunctionError(c, utils.E(utils.CodeInvalidArgument, op, "Missing required parameters", nil), true)
		return
	}

	fb := services.EvaluateAnswer(req.JobTitle, req.Question, req.Answer)
	c.JSON(http.StatusOK, InterviewCoachResponse{Success: true, Feedback: fb})
}

// FetchJobs godoc
// @Summary Pull jobs from the configured board into the jobs table
// @Tags functions
// @Produce json
// @Success 200 {object} services.IngestResult
// @Failure 500 {object} services.IngestResult
// @Security BearerAuth
// @Router /functions/v1/fetch-jobs [post]
func (h *FunctionsHandler) FetchJobs(c *gin.Context) {
	res, err := h.ingest.Ingest(c.Request.Context())
	if err != nil {
		c.JSON(utils.HTTPStatus(err), services.IngestResult{Success: false, Message: utils.MessageOf(err)})
		return
	}
	c.JSON(http.StatusOK, res)
}

// LinkedInJobs godoc
// @Summary Search LinkedIn jobs, falling back to generated listings
// @Tags functions
// @Produce json
// @Param query query string false "Keywords"
// @Param location query string false "Location"
// @Param experience query string false "Experience band (0-2, 3-5, 6+)"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} services.JobSearchResult
// @Router /functions/v1/linkedin-jobs [get]
func (h *FunctionsHandler) LinkedInJobs(c *gin.Context) {
	res := h.search.Search(c.Request.Context(), jobsource.SearchParams{
		Query:      c.Query("query"),
		Location:   c.Query("location"),
		Experience: c.Query("experience"),
		Page:       queryInt(c, "page", 1),
		Limit:      queryInt(c, "limit", 10),
	})
	c.JSON(http.StatusOK, res)
}

type SendAlertRequest struct {
	UserID string `json:"userId"`
	Manual bool   `json:"manual"`
}

// SendWhatsAppAlert godoc
// @Summary Dispatch the WhatsApp job alert for a user
// @Tags functions
// @Accept json
// @Produce json
// @Param body body SendAlertRequest true "Dispatch request"
// @Success 200 {object} services.DispatchResult
// @Failure 400 {object} services.DispatchResult
// @Failure 500 {object} FunctionError
// @Security BearerAuth
// @Router /functions/v1/send-whatsapp-alerts [post]
func (h *FunctionsHandler) SendWhatsAppAlert(c *gin.Context) {
	var req SendAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeFunctionError(c, utils.E(utils.CodeInvalidArgument, "FunctionsHandler.SendWhatsAppAlert", "invalid request body", err), false)
		return
	}
	userID, err := principalFor(c, req.UserID)
	if err != nil {
		writeFunctionError(c, err, false)
		return
	}

	res, err := h.alerts.Dispatch(c.Request.Context(), userID, req.Manual)
	if err != nil {
		if errors.Is(err, services.ErrAlertsNotConfigured) {
			c.JSON(http.StatusBadRequest, services.DispatchResult{Success: false, Message: utils.MessageOf(err)})
			return
		}
		writeFunctionError(c, err, false)
		return
	}
	c.JSON(http.StatusOK, res)
}

type ScanCVRequest struct {
	FileURL string `json:"fileUrl"`
	UserID  string `json:"userId"`
}

// ScanCV godoc
// @Summary Extract text and fields from a CV document
// @Tags functions
// @Accept json
// @Produce json
// @Param body body ScanCVRequest true "File to scan"
// @Success 200 {object} extract.Document
// @Failure 400 {object} FunctionError
// @Failure 500 {object} FunctionError
// @Security BearerAuth
// @Router /functions/v1/scan-cv [post]
func (h *FunctionsHandler) ScanCV(c *gin.Context) {
	var req ScanCVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeFunctionError(c, utils.E(utils.CodeInvalidArgument, "FunctionsHandler.ScanCV", "invalid request body", err), false)
		return
	}
	userID, err := principalFor(c, req.UserID)
	if err != nil {
		writeFunctionError(c, err, false)
		return
	}

	doc, err := h.scan.Scan(c.Request.Context(), userID, req.FileURL)
	if err != nil {
		writeFunctionError(c, err, false)
		return
	}
	c.JSON(http.StatusOK, doc)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobmate/internal/models"
	"github.com/yoockh/jobmate/internal/services"
)

type AlertHandler struct {
	svc services.AlertService
}

func NewAlertHandler(svc services.AlertService) *AlertHandler {
	return &AlertHandler{svc: svc}
}

func (h *AlertHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	p, err := h.svc.GetPreference(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type AlertPreferenceRequest struct {
	WhatsAppNumber      string           `json:"whatsapp_number"`
	IsEnabled           bool             `json:"is_enabled"`
	JobSearchKeywords   []string         `json:"job_search_keywords"`
	LocationPreferences []string         `json:"location_preferences"`
	MinSalary           *int             `json:"min_salary"`
	Frequency           models.Frequency `json:"frequency"`
}

// Put godoc
// @Summary Save WhatsApp alert preferences
// @Tags alerts
// @Accept json
// @Produce json
// @Param body body AlertPreferenceRequest true "Preferences"
// @Success 200 {object} models.WhatsAppAlertPreference
// @Failure 400 {object} APIError
// @Security BearerAuth
// @Router /api/v1/alerts/whatsapp [put]
func (h *AlertHandler) Put(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req AlertPreferenceRequest
	if !bindJSON(c, "AlertHandler.Put", &req) {
		return
	}

	p := &models.WhatsAppAlertPreference{
		UserID:              userID,
		WhatsAppNumber:      req.WhatsAppNumber,
		IsEnabled:           req.IsEnabled,
		JobSearchKeywords:   req.JobSearchKeywords,
		LocationPreferences: req.LocationPreferences,
		MinSalary:           req.MinSalary,
		Frequency:           req.Frequency,
	}
	if cur, err := h.svc.GetPreference(c.Request.Context(), userID); err == nil {
		p.ID = cur.ID
		p.CreatedAt = cur.CreatedAt
	}

	saved, err := h.svc.SavePreference(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// Test godoc
// @Summary Send the alert now, ignoring the frequency window
// @Tags alerts
// @Produce json
// @Success 200 {object} services.DispatchResult
// @Failure 400 {object} APIError
// @Security BearerAuth
// @Router /api/v1/alerts/whatsapp/test [post]
func (h *AlertHandler) Test(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	res, err := h.svc.Dispatch(c.Request.Context(), userID, true)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobmate/internal/services"
)

type DashboardHandler struct {
	svc services.DashboardService
}

func NewDashboardHandler(svc services.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Stats godoc
// @Summary Dashboard counters and recent jobs
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.DashboardStats
// @Security BearerAuth
// @Router /api/v1/dashboard [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
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

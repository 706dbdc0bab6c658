package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	pgrepo "github.com/yoockh/jobmate/internal/repositories/postgres"
	"github.com/yoockh/jobmate/internal/services"
	"github.com/yoockh/jobmate/internal/utils"
)

type JobHandler struct {
	jobs services.JobService
}

func NewJobHandler(jobs services.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// Search godoc
// @Summary Browse stored jobs, newest first
// @Tags jobs
// @Produce json
// @Param q query string false "Matches title, company or location"
// @Param remote query bool false "Remote only / on-site only"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} models.Job
// @Security BearerAuth
// @Router /api/v1/jobs [get]
func (h *JobHandler) Search(c *gin.Context) {
	f := pgrepo.JobFilter{
		Query:  c.Query("q"),
		Limit:  queryInt(c, "limit", 20),
		Offset: queryInt(c, "offset", 0),
	}
	if v := c.Query("remote"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(c, utils.E(utils.CodeInvalidArgument, "JobHandler.Search", "remote must be a boolean", err))
			return
		}
		f.Remote = &b
	}

	rows, err := h.jobs.Search(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *JobHandler) Get(c *gin.Context) {
	j, err := h.jobs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, j)
}

// Recommended godoc
// @Summary Jobs ranked against the caller's profile
// @Tags jobs
// @Produce json
// @Param limit query int false "Max results" default(10)
// @Success 200 {array} models.ScoredJob
// @Failure 404 {object} APIError
// @Security BearerAuth
// @Router /api/v1/jobs/recommended [get]
func (h *JobHandler) Recommended(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	rows, err := h.jobs.Recommended(c.Request.Context(), userID, queryInt(c, "limit", 10))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

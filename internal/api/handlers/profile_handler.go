package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobmate/internal/api/middleware"
	"github.com/yoockh/jobmate/internal/models"
	"github.com/yoockh/jobmate/internal/services"
	"github.com/yoockh/jobmate/internal/utils"
)

type ProfileHandler struct {
	svc services.ProfileService
}

func NewProfileHandler(svc services.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// Me godoc
// @Summary Get the caller's profile
// @Tags profile
// @Produce json
// @Success 200 {object} models.Profile
// @Failure 404 {object} APIError
// @Security BearerAuth
// @Router /api/v1/profile [get]
func (h *ProfileHandler) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	p, err := h.svc.GetMe(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

type UpdateProfileRequest struct {
	FullName            *string   `json:"full_name,omitempty"`
	PhoneNumber         *string   `json:"phone_number,omitempty"`
	Location            *string   `json:"location,omitempty"`
	LinkedInURL         *string   `json:"linkedin_url,omitempty"`
	ProfessionalSummary *string   `json:"professional_summary,omitempty"`
	Skills              *[]string `json:"skills,omitempty"`
	Interests           *[]string `json:"interests,omitempty"`

	Experience     *[]models.Record `json:"experience,omitempty"`
	Education      *[]models.Record `json:"education,omitempty"`
	Projects       *[]models.Record `json:"projects,omitempty"`
	Certifications *[]models.Record `json:"certifications,omitempty"`
	Languages      *[]models.Record `json:"languages,omitempty"`
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Update godoc
// @Summary Create or partially update the caller's profile
// @Tags profile
// @Accept json
// @Produce json
// @Param body body UpdateProfileRequest true "Fields to change"
// @Success 200 {object} models.Profile
// @Failure 400 {object} APIError
// @Security BearerAuth
// @Router /api/v1/profile [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !bindJSON(c, "ProfileHandler.Update", &req) {
		return
	}

	existing, err := h.svc.GetMe(c.Request.Context(), userID)
	if err != nil {
		if !utils.IsCode(err, utils.CodeNotFound) {
			writeError(c, err)
			return
		}
		existing = &models.Profile{ID: userID, Email: c.GetString(middleware.CtxEmail)}
	}

	setIf(&existing.FullName, req.FullName)
	setIf(&existing.PhoneNumber, req.PhoneNumber)
	setIf(&existing.Location, req.Location)
	setIf(&existing.LinkedInURL, req.LinkedInURL)
	setIf(&existing.ProfessionalSummary, req.ProfessionalSummary)
	if req.Skills != nil {
		existing.Skills = *req.Skills
	}
	if req.Interests != nil {
		existing.Interests = *req.Interests
	}
	if req.Experience != nil {
		existing.Experience = *req.Experience
	}
	if req.Education != nil {
		existing.Education = *req.Education
	}
	if req.Projects != nil {
		existing.Projects = *req.Projects
	}
	if req.Certifications != nil {
		existing.Certifications = *req.Certifications
	}
	if req.Languages != nil {
		existing.Languages = *req.Languages
	}

	if err := h.svc.Upsert(c.Request.Context(), existing); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, existing)
}

// RefreshEmbedding godoc
// @Summary Recompute the profile embedding used for recommendations
// @Tags profile
// @Success 204
// @Failure 500 {object} APIError
// @Security BearerAuth
// @Router /api/v1/profile/embedding [post]
func (h *ProfileHandler) RefreshEmbedding(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.svc.RefreshEmbedding(c.Request.Context(), userID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package handlers

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobmate/internal/services"
	"github.com/yoockh/jobmate/internal/utils"
)

// CVHandler serves the uploaded CV file library.
type CVHandler struct {
	svc services.CVFileService
}

func NewCVHandler(svc services.CVFileService) *CVHandler {
	return &CVHandler{svc: svc}
}

// Upload godoc
// @Summary Upload a CV (PDF, max 10MB)
// @Tags cv
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF file"
// @Success 201 {object} models.CVFile
// @Failure 400 {object} APIError
// @Security BearerAuth
// @Router /api/v1/cv/upload [post]
func (h *CVHandler) Upload(c *gin.Context) {
	const op = "CVHandler.Upload"

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "missing multipart field 'file'", err))
		return
	}

	file, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to open upload", err))
		return
	}
	defer file.Close()

	// sniff content type (read 512 bytes)
	head := make([]byte, 512)
	n, _ := io.ReadFull(file, head)
	head = head[:n]
	if ct := http.DetectContentType(head); ct != "application/pdf" {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid content type (must be pdf)", nil))
		return
	}

	r := io.MultiReader(bytes.NewReader(head), file)
	row, err := h.svc.Upload(c.Request.Context(), userID, fh.Filename, int(fh.Size), "application/pdf", r)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, row)
}

// List godoc
// @Summary List uploaded CV files
// @Tags cv
// @Produce json
// @Success 200 {array} models.CVFile
// @Security BearerAuth
// @Router /api/v1/cv/files [get]
func (h *CVHandler) List(c *gin.Context) {
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

type SignedURLResponse struct {
	URL string `json:"url"`
}

// DownloadURL godoc
// @Summary Get a short-lived download URL for an uploaded CV
// @Tags cv
// @Produce json
// @Param id path string true "CV file id"
// @Success 200 {object} SignedURLResponse
// @Failure 404 {object} APIError
// @Security BearerAuth
// @Router /api/v1/cv/files/{id}/url [get]
func (h *CVHandler) DownloadURL(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	u, err := h.svc.DownloadURL(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, SignedURLResponse{URL: u})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ridereg/internal/service"
)

// UploadHandler accepts base64 data-URI uploads.
type UploadHandler struct {
	uploadService service.UploadService
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(uploadService service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// UploadRequest carries the file as a base64 data URI.
type UploadRequest struct {
	File string `json:"file" validate:"required"`
}

// UploadResponse returns the public URL of the stored file.
type UploadResponse struct {
	URL string `json:"url"`
}

// Upload godoc
// @Summary Upload an image as a base64 data URI
// @Tags uploads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UploadRequest true "File payload"
// @Success 201 {object} UploadResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /upload [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	var req UploadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	url, err := h.uploadService.Store(c.Request().Context(), claimsFrom(c), req.File)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, UploadResponse{URL: url})
}

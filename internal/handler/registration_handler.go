package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"ridereg/internal/auth"
	"ridereg/internal/errors"
	"ridereg/internal/model"
	"ridereg/internal/service"
)

// RegistrationHandler handles rider-facing and admin registration endpoints.
type RegistrationHandler struct {
	regService service.RegistrationService
}

// NewRegistrationHandler creates a new registration handler.
func NewRegistrationHandler(regService service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{regService: regService}
}

// RegisterRequest is a registration submission for an existing account.
type RegisterRequest struct {
	UserID            string `json:"user_id" validate:"required,uuid4"`
	RiderName         string `json:"rider_name" validate:"required"`
	RiderAge          int    `json:"rider_age" validate:"required"`
	Phone             string `json:"phone" validate:"required"`
	WhatsApp          string `json:"whatsapp,omitempty"`
	PhotoURL          string `json:"photo_url,omitempty"`
	RegistrationType  string `json:"registration_type" validate:"required"`
	TermsAccepted     bool   `json:"terms_accepted"`
	LiabilityAccepted bool   `json:"liability_accepted"`
}

// EditRegistrationRequest is the admin edit payload. Status is not editable here.
type EditRegistrationRequest struct {
	RiderName        string `json:"rider_name" validate:"required"`
	RiderAge         int    `json:"rider_age" validate:"required"`
	Phone            string `json:"phone" validate:"required"`
	WhatsApp         string `json:"whatsapp,omitempty"`
	PhotoURL         string `json:"photo_url,omitempty"`
	RegistrationType string `json:"registration_type" validate:"required"`
}

// UpdateStatusRequest sets a new lifecycle status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CancellationRequest carries the user's free-text reason.
type CancellationRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// Register godoc
// @Summary Submit a registration for the authenticated account
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} model.Registration
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /registrations [post]
func (h *RegistrationHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	subject, err := uuid.Parse(req.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid user ID", Code: "INVALID_UUID"})
	}

	reg, err := h.regService.Register(c.Request().Context(), claimsFrom(c), subject, service.RiderInput{
		RiderName:        req.RiderName,
		RiderAge:         req.RiderAge,
		Phone:            req.Phone,
		WhatsApp:         req.WhatsApp,
		PhotoURL:         req.PhotoURL,
		RegistrationType: model.VehicleType(req.RegistrationType),
	}, req.TermsAccepted, req.LiabilityAccepted)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, reg)
}

// GetOwn godoc
// @Summary Get the caller's registration
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Registration
// @Failure 404 {object} errors.ErrorResponse
// @Router /registrations/me [get]
func (h *RegistrationHandler) GetOwn(c echo.Context) error {
	reg, err := h.regService.GetOwn(c.Request().Context(), claimsFrom(c))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, reg)
}

// RequestCancellation godoc
// @Summary Request cancellation of the caller's registration
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CancellationRequest true "Cancellation reason"
// @Success 200 {object} model.Registration
// @Failure 400 {object} errors.ErrorResponse
// @Router /registrations/me/cancellation-request [post]
func (h *RegistrationHandler) RequestCancellation(c echo.Context) error {
	var req CancellationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reg, err := h.regService.RequestCancellation(c.Request().Context(), claimsFrom(c), req.Reason)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, reg)
}

// List godoc
// @Summary List registrations (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Success 200 {array} model.Registration
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/registrations [get]
func (h *RegistrationHandler) List(c echo.Context) error {
	status := model.RegistrationStatus(c.QueryParam("status"))
	regs, err := h.regService.List(c.Request().Context(), claimsFrom(c), status)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, regs)
}

// Counts returns per-status registration totals for the dashboard.
func (h *RegistrationHandler) Counts(c echo.Context) error {
	counts, err := h.regService.CountByStatus(c.Request().Context(), claimsFrom(c))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, counts)
}

// UpdateStatus godoc
// @Summary Update a registration's status (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Registration ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} model.Registration
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/registrations/{id}/status [patch]
func (h *RegistrationHandler) UpdateStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reg, err := h.regService.UpdateStatus(c.Request().Context(), claimsFrom(c), id, model.RegistrationStatus(req.Status))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, reg)
}

// Edit overwrites rider details on a registration (admin).
func (h *RegistrationHandler) Edit(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req EditRegistrationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reg, err := h.regService.EditDetails(c.Request().Context(), claimsFrom(c), id, service.RiderInput{
		RiderName:        req.RiderName,
		RiderAge:         req.RiderAge,
		Phone:            req.Phone,
		WhatsApp:         req.WhatsApp,
		PhotoURL:         req.PhotoURL,
		RegistrationType: model.VehicleType(req.RegistrationType),
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, reg)
}

// CheckIn marks the rider as checked in (admin).
func (h *RegistrationHandler) CheckIn(c echo.Context) error {
	return h.flag(c, h.regService.SetCheckedIn, true)
}

// RevertCheckIn reverses a check-in (admin).
func (h *RegistrationHandler) RevertCheckIn(c echo.Context) error {
	return h.flag(c, h.regService.SetCheckedIn, false)
}

// Finish marks the rider as finished (admin).
func (h *RegistrationHandler) Finish(c echo.Context) error {
	return h.flag(c, h.regService.SetFinished, true)
}

// RevertFinish reverses a finish (admin).
func (h *RegistrationHandler) RevertFinish(c echo.Context) error {
	return h.flag(c, h.regService.SetFinished, false)
}

// GrantCertificate grants the finisher certificate (admin).
func (h *RegistrationHandler) GrantCertificate(c echo.Context) error {
	return h.flag(c, h.regService.SetCertificate, true)
}

// RevokeCertificate revokes the finisher certificate (admin).
func (h *RegistrationHandler) RevokeCertificate(c echo.Context) error {
	return h.flag(c, h.regService.SetCertificate, false)
}

// Delete godoc
// @Summary Delete a registration (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Registration ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/registrations/{id} [delete]
func (h *RegistrationHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.regService.Delete(c.Request().Context(), claimsFrom(c), id); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "registration deleted"})
}

func (h *RegistrationHandler) flag(c echo.Context, set func(ctx context.Context, claims *auth.Claims, id uuid.UUID, value bool) (*model.Registration, error), value bool) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	reg, err := set(c.Request().Context(), claimsFrom(c), id, value)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, reg)
}

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid registration ID", Code: "INVALID_UUID"})
	}
	return id, nil
}

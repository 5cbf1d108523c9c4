package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"ridereg/internal/errors"
	"ridereg/internal/model"
	"ridereg/internal/service"
)

// UserHandler handles profile, access-request and role endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ChangeRoleRequest sets a new role on a target profile.
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// ReviewAccessRequest approves or rejects a pending organizer-access request.
type ReviewAccessRequest struct {
	Approve bool `json:"approve"`
}

// Me godoc
// @Summary Get the caller's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.AppUser
// @Failure 403 {object} errors.ErrorResponse
// @Router /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, err := h.userService.Me(c.Request().Context(), claimsFrom(c))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// RequestAccess godoc
// @Summary File an organizer-access request
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.AppUser
// @Failure 409 {object} errors.ErrorResponse
// @Router /me/access-request [post]
func (h *UserHandler) RequestAccess(c echo.Context) error {
	user, err := h.userService.RequestOrganizerAccess(c.Request().Context(), claimsFrom(c))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// ListAccessRequests lists filed organizer-access requests (admin).
func (h *UserHandler) ListAccessRequests(c echo.Context) error {
	users, err := h.userService.ListAccessRequests(c.Request().Context(), claimsFrom(c))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// ReviewAccess approves or rejects a pending access request (admin).
func (h *UserHandler) ReviewAccess(c echo.Context) error {
	target, err := parseUserID(c)
	if err != nil {
		return err
	}
	var req ReviewAccessRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.userService.ReviewAccessRequest(c.Request().Context(), claimsFrom(c), target, req.Approve)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// ChangeRole godoc
// @Summary Change a user's role (superadmin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body ChangeRoleRequest true "New role"
// @Success 200 {object} model.AppUser
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users/{id}/role [put]
func (h *UserHandler) ChangeRole(c echo.Context) error {
	target, err := parseUserID(c)
	if err != nil {
		return err
	}
	var req ChangeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.ChangeRole(c.Request().Context(), claimsFrom(c), target, model.UserRole(req.Role))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// Delete removes a user profile (superadmin). Independent of registration deletion.
func (h *UserHandler) Delete(c echo.Context) error {
	target, err := parseUserID(c)
	if err != nil {
		return err
	}
	if err := h.userService.DeleteUser(c.Request().Context(), claimsFrom(c), target); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user deleted"})
}

func parseUserID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid user ID", Code: "INVALID_UUID"})
	}
	return id, nil
}

package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"ridereg/internal/errors"
	"ridereg/internal/service"
)

// TicketHandler serves the public ticket and certificate projections.
type TicketHandler struct {
	ticketService service.TicketService
}

// NewTicketHandler creates a new ticket handler.
func NewTicketHandler(ticketService service.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// GetTicket godoc
// @Summary Get the digital ticket for an approved registration
// @Tags tickets
// @Produce json
// @Param id path string true "Registration ID"
// @Success 200 {object} service.Ticket
// @Failure 404 {object} errors.ErrorResponse
// @Router /tickets/{id} [get]
func (h *TicketHandler) GetTicket(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid registration ID", Code: "INVALID_UUID"})
	}

	ticket, err := h.ticketService.BuildTicket(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, ticket)
}

// GetCertificate godoc
// @Summary Get the finisher certificate for a granted registration
// @Tags tickets
// @Produce json
// @Param id path string true "Registration ID"
// @Success 200 {object} service.Certificate
// @Failure 404 {object} errors.ErrorResponse
// @Router /certificates/{id} [get]
func (h *TicketHandler) GetCertificate(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid registration ID", Code: "INVALID_UUID"})
	}

	cert, err := h.ticketService.BuildCertificate(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, cert)
}

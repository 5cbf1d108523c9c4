package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"ridereg/internal/errors"
	"ridereg/internal/model"
	"ridereg/internal/service"
)

// ContentEndpoints exposes the uniform CRUD surface of one content
// collection. List is public; Create/Update/Delete are admin-gated by the
// underlying service. Update binds the request body over the stored item, so
// omitted fields keep their values.
type ContentEndpoints[T any] struct {
	svc service.ContentService[T]
}

// NewContentEndpoints creates endpoints over one content service.
func NewContentEndpoints[T any](svc service.ContentService[T]) *ContentEndpoints[T] {
	return &ContentEndpoints[T]{svc: svc}
}

// List returns the collection in display order.
func (e *ContentEndpoints[T]) List(c echo.Context) error {
	items, err := e.svc.List(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// Create adds a new item (admin).
func (e *ContentEndpoints[T]) Create(c echo.Context) error {
	var item T
	if err := c.Bind(&item); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	created, err := e.svc.Create(c.Request().Context(), claimsFrom(c), &item)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Update overwrites submitted fields of an existing item (admin).
func (e *ContentEndpoints[T]) Update(c echo.Context) error {
	id, err := parseContentID(c)
	if err != nil {
		return err
	}

	updated, err := e.svc.Update(c.Request().Context(), claimsFrom(c), id, func(item *T) error {
		if err := c.Bind(item); err != nil {
			return errors.NewValidationError("invalid request body")
		}
		return nil
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete removes an item (admin).
func (e *ContentEndpoints[T]) Delete(c echo.Context) error {
	id, err := parseContentID(c)
	if err != nil {
		return err
	}
	if err := e.svc.Delete(c.Request().Context(), claimsFrom(c), id); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "deleted"})
}

func parseContentID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid ID", Code: "INVALID_UUID"})
	}
	return id, nil
}

// ContentHandler groups the endpoint sets for all content collections plus
// the settings singletons.
type ContentHandler struct {
	FAQs          *ContentEndpoints[model.FAQ]
	Offers        *ContentEndpoints[model.Offer]
	Organizers    *ContentEndpoints[model.Organizer]
	Partners      *ContentEndpoints[model.LocationPartner]
	Schedule      *ContentEndpoints[model.ScheduleEvent]
	Announcements *ContentEndpoints[model.Announcement]

	settings service.SettingsService
}

// NewContentHandler creates the content handler over all collection services.
func NewContentHandler(
	faqs service.ContentService[model.FAQ],
	offers service.ContentService[model.Offer],
	organizers service.ContentService[model.Organizer],
	partners service.ContentService[model.LocationPartner],
	schedule service.ContentService[model.ScheduleEvent],
	announcements service.ContentService[model.Announcement],
	settings service.SettingsService,
) *ContentHandler {
	return &ContentHandler{
		FAQs:          NewContentEndpoints(faqs),
		Offers:        NewContentEndpoints(offers),
		Organizers:    NewContentEndpoints(organizers),
		Partners:      NewContentEndpoints(partners),
		Schedule:      NewContentEndpoints(schedule),
		Announcements: NewContentEndpoints(announcements),
		settings:      settings,
	}
}

// GetEventSettings godoc
// @Summary Get the event settings singleton
// @Tags content
// @Produce json
// @Success 200 {object} model.EventSettings
// @Router /settings/event [get]
func (h *ContentHandler) GetEventSettings(c echo.Context) error {
	settings, err := h.settings.GetEvent(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, settings)
}

// SaveEventSettings replaces the event settings singleton (admin).
func (h *ContentHandler) SaveEventSettings(c echo.Context) error {
	var settings model.EventSettings
	if err := c.Bind(&settings); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.settings.SaveEvent(c.Request().Context(), claimsFrom(c), &settings); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, settings)
}

// GetLocationSettings returns the route settings singleton.
func (h *ContentHandler) GetLocationSettings(c echo.Context) error {
	settings, err := h.settings.GetLocation(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, settings)
}

// SaveLocationSettings replaces the route settings singleton (admin).
func (h *ContentHandler) SaveLocationSettings(c echo.Context) error {
	var settings model.LocationSettings
	if err := c.Bind(&settings); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.settings.SaveLocation(c.Request().Context(), claimsFrom(c), &settings); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, settings)
}

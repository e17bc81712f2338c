package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/bookings", h.CreateBooking)
	api.GET("/bookings", h.ListBookings)
	api.PUT("/bookings/:id", h.UpdateBooking)
	api.DELETE("/bookings/:id", h.DeleteBooking)
	api.DELETE("/bookings", h.DeleteBookingsByEmail)
	api.GET("/availability", h.GetAvailability)
}

// httpError maps service errors onto HTTP status codes.
func httpError(err error) error {
	var ve *ValidationError
	var bre *BusinessRuleError
	switch {
	case errors.As(err, &ve), errors.As(err, &bre):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrUnauthorized):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) CreateBooking(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	actor := auth.ActorFromContext(c.Request().Context())
	b, err := h.svc.Create(c.Request().Context(), actor, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, b)
}

// ListBookings serves three lookups behind one route: by clinic day, by
// holder email, or by id. Without a filter it lists everything.
func (h *Handler) ListBookings(c echo.Context) error {
	ctx := c.Request().Context()

	switch {
	case c.QueryParam("date") != "":
		items, err := h.svc.ListByDate(ctx, c.QueryParam("date"))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, listResponse(items))

	case c.QueryParam("email") != "":
		items, err := h.svc.ListByEmail(ctx, c.QueryParam("email"))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, listResponse(items))

	case c.QueryParam("id") != "":
		id, err := strconv.ParseInt(c.QueryParam("id"), 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
		}
		b, err := h.svc.Get(ctx, id)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, listResponse([]*Booking{b}))

	default:
		items, err := h.svc.ListAll(ctx)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, listResponse(items))
	}
}

func listResponse(items []*Booking) map[string]interface{} {
	if items == nil {
		items = []*Booking{}
	}
	return map[string]interface{}{
		"bookings": items,
		"count":    len(items),
	}
}

func (h *Handler) UpdateBooking(c echo.Context) error {
	actor := auth.ActorFromContext(c.Request().Context())
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req UpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	b, err := h.svc.Update(c.Request().Context(), actor, id, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) DeleteBooking(c echo.Context) error {
	actor := auth.ActorFromContext(c.Request().Context())
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.svc.DeleteByID(c.Request().Context(), actor, id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteBookingsByEmail is the self-service cancellation endpoint.
func (h *Handler) DeleteBookingsByEmail(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email query parameter is required")
	}

	deleted, err := h.svc.DeleteByEmail(c.Request().Context(), email)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"deleted_count": deleted,
	})
}

func (h *Handler) GetAvailability(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date query parameter is required")
	}

	day, err := h.svc.Availability(c.Request().Context(), date)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, day)
}

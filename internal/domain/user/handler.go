package user

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/platform/auth"
)

type Handler struct {
	svc      *Service
	sessions *auth.SessionManager
}

func NewHandler(svc *Service, sessions *auth.SessionManager) *Handler {
	return &Handler{svc: svc, sessions: sessions}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	grp := api.Group("/auth")
	grp.POST("/login", h.Login)
	grp.POST("/logout", h.Logout)
	grp.GET("/session", h.CheckSession)
	grp.POST("/change-password", h.ChangePassword, auth.RequirePrivileged())
}

func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	u, err := h.svc.Authenticate(c.Request().Context(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrInactive):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	token, expires, err := h.sessions.Issue(u.Email, u.Role)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	c.SetCookie(h.sessions.NewSessionCookie(token, expires))

	return c.JSON(http.StatusOK, map[string]interface{}{
		"email":      u.Email,
		"name":       u.Name,
		"role":       u.Role,
		"expires_at": expires,
	})
}

func (h *Handler) Logout(c echo.Context) error {
	c.SetCookie(h.sessions.ClearSessionCookie())
	return c.NoContent(http.StatusNoContent)
}

// CheckSession reports whether the caller holds a valid session. This is
// what the calendar UI polls to decide whether to show admin controls.
func (h *Handler) CheckSession(c echo.Context) error {
	actor := auth.ActorFromContext(c.Request().Context())
	if actor == nil {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"logged_in": false,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"logged_in": true,
		"email":     actor.Email,
		"role":      actor.Role,
	})
}

func (h *Handler) ChangePassword(c echo.Context) error {
	actor := auth.ActorFromContext(c.Request().Context())

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	err := h.svc.ChangePassword(c.Request().Context(), actor.Email, req.CurrentPassword, req.NewPassword)
	switch {
	case err == nil:
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrWeakPassword):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}

package auth

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
)

type contextKey string

const actorKey contextKey = "actor"

// RoleAdmin is the privileged role. Admins manage bookings for any student
// and can read the audit trail.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// Actor identifies an authenticated user for the duration of a request.
type Actor struct {
	Email string
	Role  string
}

// IsPrivileged reports whether the actor may perform administrative
// operations such as renaming bookings or deleting them by id.
func (a *Actor) IsPrivileged() bool {
	if a == nil {
		return false
	}
	return a.Role == RoleAdmin || a.Role == RoleStaff
}

// WithActor returns a context carrying the actor.
func WithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext returns the actor attached to the context, if any.
func ActorFromContext(ctx context.Context) *Actor {
	actor, _ := ctx.Value(actorKey).(*Actor)
	return actor
}

// Middleware resolves a session token into an Actor on the request
// context. The token comes from the session cookie or, for non-browser
// clients, an Authorization Bearer header. Requests without a valid
// session pass through unauthenticated; route-level guards decide whether
// that is acceptable.
func Middleware(sessions *SessionManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := sessionToken(c)
			if token == "" {
				return next(c)
			}

			actor, err := sessions.Parse(token)
			if err != nil {
				// Expired or tampered token: treat as anonymous.
				return next(c)
			}

			ctx := WithActor(c.Request().Context(), actor)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func sessionToken(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return after
	}
	return ""
}

package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinicdesk/internal/platform/auth"
)

// AuditEntry represents an audit log entry produced by the middleware.
// It captures who did what, when, from where, and the outcome.
type AuditEntry struct {
	ActorEmail string
	ActorRole  string
	Action     string // read, create, update, delete
	Resource   string // bookings, auth, audit
	IPAddress  string
	UserAgent  string
	Path       string
	Method     string
	Timestamp  time.Time
	RequestID  string
	StatusCode int
}

// AuditRecorder is the interface the audit middleware uses to persist
// entries. It decouples the middleware from the concrete audit store so
// that tests can provide a mock implementation.
type AuditRecorder interface {
	Record(entry AuditEntry) error
}

// AuditRecorderFunc is a function adapter for AuditRecorder.
type AuditRecorderFunc func(entry AuditEntry) error

func (f AuditRecorderFunc) Record(entry AuditEntry) error {
	return f(entry)
}

// Audit returns Echo middleware that records every mutating request under
// /api/v1/. Reads are not persisted but are still logged.
//
// Recording is best effort: a recorder failure is logged and never fails
// the request.
func Audit(logger zerolog.Logger, recorders ...AuditRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			path := req.URL.Path

			if !isAuditablePath(path) {
				return next(c)
			}

			// Execute the handler first so we capture the response status
			err := next(c)

			entry := AuditEntry{
				Timestamp:  time.Now().UTC(),
				Path:       path,
				Method:     req.Method,
				IPAddress:  c.RealIP(),
				UserAgent:  req.UserAgent(),
				StatusCode: c.Response().Status,
				Action:     httpMethodToAction(req.Method),
				Resource:   extractResource(path),
			}

			if actor := auth.ActorFromContext(req.Context()); actor != nil {
				entry.ActorEmail = actor.Email
				entry.ActorRole = actor.Role
			}

			if rid, ok := c.Get("request_id").(string); ok {
				entry.RequestID = rid
			}

			// Persist mutations only; the happy-path GET volume is noise.
			if len(recorders) > 0 && recorders[0] != nil && entry.Action != "read" {
				if recErr := recorders[0].Record(entry); recErr != nil {
					logger.Error().Err(recErr).
						Str("request_id", entry.RequestID).
						Msg("failed to record audit entry")
				}
			}

			logger.Info().
				Str("type", "audit").
				Str("request_id", entry.RequestID).
				Str("actor", entry.ActorEmail).
				Str("role", entry.ActorRole).
				Str("resource", entry.Resource).
				Str("action", entry.Action).
				Str("method", entry.Method).
				Str("path", entry.Path).
				Str("remote_ip", entry.IPAddress).
				Int("status", entry.StatusCode).
				Msg("api_access")

			return err
		}
	}
}

// isAuditablePath returns true if the path is under /api/v1/.
func isAuditablePath(path string) bool {
	return strings.HasPrefix(path, "/api/v1/")
}

// httpMethodToAction maps HTTP methods to audit action names.
func httpMethodToAction(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead:
		return "read"
	case http.MethodPost:
		return "create"
	case http.MethodPut, http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	default:
		return "read"
	}
}

// extractResource parses the resource name from a URL path.
//
//	/api/v1/bookings     -> bookings
//	/api/v1/bookings/123 -> bookings
func extractResource(path string) string {
	segments := strings.Split(strings.TrimPrefix(path, "/api/v1/"), "/")
	if len(segments) > 0 && segments[0] != "" {
		return segments[0]
	}
	return "unknown"
}

package audit

import (
	"context"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/platform/middleware"
)

// Service persists audit entries and serves the trail to admins. It
// implements middleware.AuditRecorder so the HTTP layer can hand entries
// straight to it.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record implements middleware.AuditRecorder.
func (s *Service) Record(entry middleware.AuditEntry) error {
	e := &Entry{
		ActorEmail: entry.ActorEmail,
		ActorRole:  entry.ActorRole,
		Action:     entry.Action,
		Resource:   entry.Resource,
		Method:     entry.Method,
		Path:       entry.Path,
		IPAddress:  entry.IPAddress,
		UserAgent:  entry.UserAgent,
		StatusCode: entry.StatusCode,
		RequestID:  entry.RequestID,
		CreatedAt:  entry.Timestamp,
	}

	// Recording must never block a request for long.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.repo.Insert(ctx, e)
}

// List returns the newest entries first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*Entry, int, error) {
	return s.repo.List(ctx, limit, offset)
}

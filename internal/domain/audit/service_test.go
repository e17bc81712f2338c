package audit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/platform/auth"
	"github.com/clinicdesk/clinicdesk/internal/platform/middleware"
)

type mockRepo struct {
	entries []*Entry
	nextID  int64
}

func (m *mockRepo) Insert(ctx context.Context, e *Entry) error {
	m.nextID++
	e.ID = m.nextID
	m.entries = append(m.entries, e)
	return nil
}

func (m *mockRepo) List(ctx context.Context, limit, offset int) ([]*Entry, int, error) {
	total := len(m.entries)
	// Newest first
	var out []*Entry
	for i := total - 1; i >= 0; i-- {
		out = append(out, m.entries[i])
	}
	if offset >= len(out) {
		return nil, total, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

func TestService_Record(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)

	when := time.Date(2026, 9, 4, 15, 15, 0, 0, time.UTC)
	err := svc.Record(middleware.AuditEntry{
		ActorEmail: "admin@medac.es",
		ActorRole:  "admin",
		Action:     "delete",
		Resource:   "bookings",
		Method:     http.MethodDelete,
		Path:       "/api/v1/bookings/7",
		IPAddress:  "10.0.0.1",
		StatusCode: 204,
		RequestID:  "req-9",
		Timestamp:  when,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	if len(repo.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(repo.entries))
	}
	e := repo.entries[0]
	if e.Action != "delete" || e.Resource != "bookings" || e.ActorEmail != "admin@medac.es" {
		t.Errorf("unexpected entry: %+v", e)
	}
	if !e.CreatedAt.Equal(when) {
		t.Errorf("expected middleware timestamp to be kept, got %v", e.CreatedAt)
	}
}

func TestHandler_ListEntries(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)
	for i := 0; i < 3; i++ {
		svc.Record(middleware.AuditEntry{Action: "create", Resource: "bookings"})
	}
	h := NewHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/audit?limit=2", nil)
	req = req.WithContext(auth.WithActor(req.Context(), &auth.Actor{Email: "admin@medac.es", Role: auth.RoleAdmin}))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListEntries(c); err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"total":3`) {
		t.Errorf("expected total 3 in %s", body)
	}
	if !strings.Contains(body, `"has_more":true`) {
		t.Errorf("expected has_more true in %s", body)
	}
}

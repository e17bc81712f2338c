package booking

import (
	"context"
	"strings"

	"github.com/clinicdesk/clinicdesk/internal/platform/auth"
)

// Service enforces the booking rules on top of the repository. The
// pre-insert conflict check is a fast path only; the database unique
// constraint on (booking_date, slot_index, chair) is what actually
// serializes concurrent requests for the same chair.
type Service struct {
	repo     Repository
	calendar *Calendar
	rules    *Rules
}

func NewService(repo Repository, calendar *Calendar, rules *Rules) *Service {
	return &Service{repo: repo, calendar: calendar, rules: rules}
}

// Calendar exposes the slot calendar for handlers and tooling.
func (s *Service) Calendar() *Calendar {
	return s.calendar
}

// Rules exposes the availability policy.
func (s *Service) Rules() *Rules {
	return s.rules
}

// Create validates and stores a new booking. When a signed-in actor makes
// the booking their address is stamped on it; self-service bookings carry
// no creator.
func (s *Service) Create(ctx context.Context, actor *auth.Actor, req CreateRequest) (*Booking, error) {
	var missing []string
	if strings.TrimSpace(req.Date) == "" {
		missing = append(missing, "date")
	}
	if req.SlotIndex == nil {
		missing = append(missing, "slot_index")
	}
	if strings.TrimSpace(req.Chair) == "" {
		missing = append(missing, "chair")
	}
	if strings.TrimSpace(req.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(req.Email) == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing, Reason: "required"}
	}

	if err := s.rules.CheckDate(req.Date); err != nil {
		return nil, err
	}
	idx := *req.SlotIndex
	if !s.calendar.ValidIndex(idx) {
		return nil, invalidField("slot_index", "no such slot")
	}
	if err := s.rules.CheckChair(req.Chair); err != nil {
		return nil, err
	}
	if err := s.rules.CheckEmail(req.Email); err != nil {
		return nil, err
	}

	start, _ := s.calendar.StartOf(idx)
	b := &Booking{
		Date:      req.Date,
		SlotIndex: idx,
		TimeSlot:  start.String(),
		Chair:     NormalizeChair(req.Chair),
		Name:      strings.TrimSpace(req.Name),
		Email:     NormalizeEmail(req.Email),
	}
	if actor != nil {
		createdBy := actor.Email
		b.CreatedBy = &createdBy
	}

	// Fast-path check for a friendlier error; racing requests are caught
	// by the unique constraint inside Insert.
	existing, err := s.repo.FindConflict(ctx, b.Date, b.SlotIndex, b.Chair)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrConflict
	}

	if err := s.repo.Insert(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Get returns a single booking by id.
func (s *Service) Get(ctx context.Context, id int64) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

// ListAll returns every booking ordered by date, slot, then chair.
func (s *Service) ListAll(ctx context.Context) ([]*Booking, error) {
	return s.repo.ListAll(ctx)
}

// ListByDate returns all bookings of one clinic day ordered by slot then
// chair. The date must be well formed but may be any weekday: admins may
// inspect historical days.
func (s *Service) ListByDate(ctx context.Context, date string) ([]*Booking, error) {
	if _, err := s.rules.ParseDate(date); err != nil {
		return nil, invalidField("date", err.Error())
	}
	return s.repo.ListByDate(ctx, date)
}

// ListByEmail returns all bookings held by one address.
func (s *Service) ListByEmail(ctx context.Context, email string) ([]*Booking, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, invalidField("email", "required")
	}
	return s.repo.ListByEmail(ctx, email)
}

// Update renames a booking. Only privileged actors may do this; the slot
// itself is immutable once created.
func (s *Service) Update(ctx context.Context, actor *auth.Actor, id int64, req UpdateRequest) (*Booking, error) {
	if !actor.IsPrivileged() {
		return nil, ErrUnauthorized
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalidField("name", "required")
	}
	email := NormalizeEmail(req.Email)
	if err := s.rules.CheckEmail(email); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, id, name, email)
}

// DeleteByID removes a booking by id. Privileged actors only.
func (s *Service) DeleteByID(ctx context.Context, actor *auth.Actor, id int64) error {
	if !actor.IsPrivileged() {
		return ErrUnauthorized
	}
	return s.repo.DeleteByID(ctx, id)
}

// DeleteByEmail removes every booking held by an address. This is the
// self-service cancellation path, so no session is required: knowing the
// address is the credential. Returns ErrNotFound when nothing matched.
func (s *Service) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	email = NormalizeEmail(email)
	if err := s.rules.CheckEmail(email); err != nil {
		return 0, err
	}

	deleted, err := s.repo.DeleteByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, ErrNotFound
	}
	return deleted, nil
}

// Availability builds the chair-by-slot picture for one clinic day. The
// date must pass the same rules as a booking so availability cannot be
// probed for days the clinic never opens.
func (s *Service) Availability(ctx context.Context, date string) (*DayAvailability, error) {
	if err := s.rules.CheckDate(date); err != nil {
		return nil, err
	}

	bookings, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	type slotChair struct {
		index int
		chair string
	}
	booked := make(map[slotChair]bool, len(bookings))
	for _, b := range bookings {
		booked[slotChair{b.SlotIndex, b.Chair}] = true
	}

	capacity := s.calendar.Len() * len(s.rules.Chairs)
	day := &DayAvailability{
		Date:     date,
		Capacity: capacity,
	}

	for _, slot := range s.calendar.Slots() {
		sa := SlotAvailability{
			SlotIndex: slot.Index,
			Start:     slot.Start.String(),
		}
		for _, chair := range s.rules.Chairs {
			isBooked := booked[slotChair{slot.Index, chair}]
			sa.Chairs = append(sa.Chairs, ChairAvailability{Chair: chair, Booked: isBooked})
			if !isBooked {
				sa.FreeCount++
			}
		}
		day.FreeTotal += sa.FreeCount
		day.Slots = append(day.Slots, sa)
	}

	return day, nil
}

package booking

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// DateLayout is the wire and storage format for booking dates.
const DateLayout = "2006-01-02"

// Clock abstracts "now" so the date rules can be tested deterministically.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real time.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// FixedClock returns a Clock frozen at t. Intended for tests and tooling.
func FixedClock(t time.Time) Clock { return fixedClock{t: t} }

// Rules holds the availability policy: which weekday the clinic opens,
// which chairs exist, and which email domains may book.
type Rules struct {
	Weekday        time.Weekday
	Location       *time.Location
	Chairs         []string
	AllowedDomains []string
	Clock          Clock
}

// ParseWeekday converts an English weekday name ("Friday") to time.Weekday.
func ParseWeekday(name string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), name) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}

// NewRules builds the availability policy. Chairs and domains are
// normalized to lower case.
func NewRules(weekday time.Weekday, loc *time.Location, chairs, allowedDomains []string, clock Clock) *Rules {
	if loc == nil {
		loc = time.UTC
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Rules{
		Weekday:        weekday,
		Location:       loc,
		Chairs:         lowerAll(chairs),
		AllowedDomains: lowerAll(allowedDomains),
		Clock:          clock,
	}
}

func lowerAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return out
}

// ParseDate parses a booking date in the clinic's timezone.
func (r *Rules) ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, r.Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return d, nil
}

// CheckDate verifies that the date falls on the clinic weekday and is not
// in the past. Today counts as bookable.
func (r *Rules) CheckDate(dateStr string) error {
	d, err := r.ParseDate(dateStr)
	if err != nil {
		return invalidField("date", err.Error())
	}

	if d.Weekday() != r.Weekday {
		return &BusinessRuleError{
			Rule:   "clinic_day",
			Reason: fmt.Sprintf("bookings are only accepted on %ss", r.Weekday),
		}
	}

	now := r.Clock.Now().In(r.Location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, r.Location)
	if d.Before(today) {
		return &BusinessRuleError{
			Rule:   "past_date",
			Reason: "cannot book a past date",
		}
	}

	return nil
}

// CheckChair verifies the chair is one of the configured chairs.
func (r *Rules) CheckChair(chair string) error {
	chair = strings.ToLower(strings.TrimSpace(chair))
	for _, c := range r.Chairs {
		if c == chair {
			return nil
		}
	}
	return invalidField("chair", fmt.Sprintf("unknown chair %q", chair))
}

// CheckEmail verifies the address is well formed and belongs to one of
// the allowed domains.
func (r *Rules) CheckEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return invalidField("email", "malformed email address")
	}
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return invalidField("email", "malformed email address")
	}
	domain := email[at+1:]
	for _, d := range r.AllowedDomains {
		if d == domain {
			return nil
		}
	}
	return &BusinessRuleError{
		Rule:   "email_domain",
		Reason: fmt.Sprintf("email domain %q is not allowed", domain),
	}
}

// NormalizeEmail lowercases and trims an address for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeChair lowercases and trims a chair name.
func NormalizeChair(chair string) string {
	return strings.ToLower(strings.TrimSpace(chair))
}

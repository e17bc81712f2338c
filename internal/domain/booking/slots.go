package booking

import (
	"fmt"
	"strconv"
	"strings"
)

// ClockTime is a time of day in minutes since midnight.
type ClockTime int

// ParseClockTime parses "HH:MM" into a ClockTime.
func ParseClockTime(s string) (ClockTime, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid clock time %q: bad hour", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock time %q: bad minute", s)
	}
	return ClockTime(h*60 + m), nil
}

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Slot is one bookable interval of the clinic day.
type Slot struct {
	Index int       `json:"index"`
	Start ClockTime `json:"-"`
}

// MarshalJSON renders the slot with its start as "HH:MM".
func (s Slot) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"index":%d,"start":%q}`, s.Index, s.Start.String())), nil
}

// ScheduleConfig describes the clinic day from which slots are derived.
type ScheduleConfig struct {
	DayStart    ClockTime
	DayEnd      ClockTime
	SlotMinutes int
}

// NewScheduleConfig parses the day boundaries and validates the shape of
// the clinic day.
func NewScheduleConfig(dayStart, dayEnd string, slotMinutes int) (ScheduleConfig, error) {
	start, err := ParseClockTime(dayStart)
	if err != nil {
		return ScheduleConfig{}, fmt.Errorf("day start: %w", err)
	}
	end, err := ParseClockTime(dayEnd)
	if err != nil {
		return ScheduleConfig{}, fmt.Errorf("day end: %w", err)
	}
	if end <= start {
		return ScheduleConfig{}, fmt.Errorf("day end %s must be after day start %s", end, start)
	}
	if slotMinutes <= 0 {
		return ScheduleConfig{}, fmt.Errorf("slot length must be positive, got %d", slotMinutes)
	}
	return ScheduleConfig{DayStart: start, DayEnd: end, SlotMinutes: slotMinutes}, nil
}

// Calendar holds the ordered slots of a clinic day. Slot indexes are dense
// and start at zero, so index i always refers to the same wall-clock time.
type Calendar struct {
	slots []Slot
}

// NewCalendar generates the slot sequence for the configured day. A slot
// exists for every start time strictly before the day end; the last slot
// may run past the nominal closing time.
func NewCalendar(cfg ScheduleConfig) *Calendar {
	var slots []Slot
	idx := 0
	for t := cfg.DayStart; t < cfg.DayEnd; t += ClockTime(cfg.SlotMinutes) {
		slots = append(slots, Slot{Index: idx, Start: t})
		idx++
	}
	return &Calendar{slots: slots}
}

// Slots returns the slots in index order.
func (c *Calendar) Slots() []Slot {
	out := make([]Slot, len(c.slots))
	copy(out, c.slots)
	return out
}

// Len returns the number of slots in the clinic day.
func (c *Calendar) Len() int {
	return len(c.slots)
}

// ValidIndex reports whether i refers to an existing slot.
func (c *Calendar) ValidIndex(i int) bool {
	return i >= 0 && i < len(c.slots)
}

// StartOf returns the start time of slot i.
func (c *Calendar) StartOf(i int) (ClockTime, bool) {
	if !c.ValidIndex(i) {
		return 0, false
	}
	return c.slots[i].Start, true
}

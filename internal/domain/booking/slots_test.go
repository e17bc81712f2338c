package booking

import (
	"testing"
)

func mustSchedule(t *testing.T, start, end string, minutes int) ScheduleConfig {
	t.Helper()
	cfg, err := NewScheduleConfig(start, end, minutes)
	if err != nil {
		t.Fatalf("NewScheduleConfig(%s, %s, %d): %v", start, end, minutes, err)
	}
	return cfg
}

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		in      string
		want    ClockTime
		wantErr bool
	}{
		{"15:15", 15*60 + 15, false},
		{"00:00", 0, false},
		{"23:59", 23*60 + 59, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"12", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseClockTime(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClockTime(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClockTime(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClockTime(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestClockTime_String(t *testing.T) {
	if got := ClockTime(15*60 + 15).String(); got != "15:15" {
		t.Errorf("expected 15:15, got %s", got)
	}
	if got := ClockTime(5).String(); got != "00:05" {
		t.Errorf("expected 00:05, got %s", got)
	}
}

func TestNewCalendar_ClinicDay(t *testing.T) {
	// The reference clinic day: 15:15 to 20:30 in 40-minute slots.
	cal := NewCalendar(mustSchedule(t, "15:15", "20:30", 40))

	if cal.Len() != 8 {
		t.Fatalf("expected 8 slots, got %d", cal.Len())
	}

	wantStarts := []string{"15:15", "15:55", "16:35", "17:15", "17:55", "18:35", "19:15", "19:55"}
	for i, slot := range cal.Slots() {
		if slot.Index != i {
			t.Errorf("slot %d: expected dense index, got %d", i, slot.Index)
		}
		if slot.Start.String() != wantStarts[i] {
			t.Errorf("slot %d: expected start %s, got %s", i, wantStarts[i], slot.Start)
		}
	}
}

func TestNewCalendar_LastSlotMayRunPastClose(t *testing.T) {
	// 19:55 starts before 20:30 and is kept even though 19:55+40 > 20:30.
	cal := NewCalendar(mustSchedule(t, "15:15", "20:30", 40))
	start, ok := cal.StartOf(7)
	if !ok {
		t.Fatal("expected slot 7 to exist")
	}
	if start.String() != "19:55" {
		t.Errorf("expected last slot 19:55, got %s", start)
	}
}

func TestCalendar_ValidIndex(t *testing.T) {
	cal := NewCalendar(mustSchedule(t, "15:15", "20:30", 40))

	if cal.ValidIndex(-1) {
		t.Error("negative index must be invalid")
	}
	if !cal.ValidIndex(0) {
		t.Error("index 0 must be valid")
	}
	if !cal.ValidIndex(7) {
		t.Error("index 7 must be valid")
	}
	if cal.ValidIndex(8) {
		t.Error("index 8 must be invalid")
	}

	if _, ok := cal.StartOf(8); ok {
		t.Error("StartOf(8) must report missing slot")
	}
}

func TestNewScheduleConfig_Validation(t *testing.T) {
	if _, err := NewScheduleConfig("20:30", "15:15", 40); err == nil {
		t.Error("expected error when end precedes start")
	}
	if _, err := NewScheduleConfig("15:15", "20:30", 0); err == nil {
		t.Error("expected error for zero slot length")
	}
	if _, err := NewScheduleConfig("bogus", "20:30", 40); err == nil {
		t.Error("expected error for malformed day start")
	}
}

func TestSlot_MarshalJSON(t *testing.T) {
	s := Slot{Index: 3, Start: ClockTime(17*60 + 15)}
	data, err := s.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	want := `{"index":3,"start":"17:15"}`
	if string(data) != want {
		t.Errorf("expected %s, got %s", want, data)
	}
}

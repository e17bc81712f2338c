package booking

import (
	"time"
)

// Booking maps to the bookings table. One row reserves a single chair for a
// single slot of a clinic day; (Date, SlotIndex, Chair) is unique.
type Booking struct {
	ID        int64     `db:"id" json:"id"`
	Date      string    `db:"booking_date" json:"date"`
	SlotIndex int       `db:"slot_index" json:"slot_index"`
	TimeSlot  string    `db:"time_slot" json:"time_slot"`
	Chair     string    `db:"chair" json:"chair"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	CreatedBy *string   `db:"created_by" json:"created_by,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CreateRequest is the payload for creating a booking. SlotIndex is a
// pointer so an absent field is distinguishable from slot 0.
type CreateRequest struct {
	Date      string `json:"date"`
	SlotIndex *int   `json:"slot_index"`
	Chair     string `json:"chair"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

// UpdateRequest is the payload for renaming a booking. Only the contact
// fields can change; moving a booking means deleting and rebooking.
type UpdateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ChairAvailability describes one chair's state within a slot.
type ChairAvailability struct {
	Chair  string `json:"chair"`
	Booked bool   `json:"booked"`
}

// SlotAvailability describes one slot of the clinic day with the state of
// every chair.
type SlotAvailability struct {
	SlotIndex int                 `json:"slot_index"`
	Start     string              `json:"start"`
	Chairs    []ChairAvailability `json:"chairs"`
	FreeCount int                 `json:"free_count"`
}

// DayAvailability is the full availability picture for one clinic day.
type DayAvailability struct {
	Date      string             `json:"date"`
	Slots     []SlotAvailability `json:"slots"`
	FreeTotal int                `json:"free_total"`
	Capacity  int                `json:"capacity"`
}

package booking

import (
	"context"
)

// Repository is the storage port for bookings. Implementations must map a
// duplicate (date, slot_index, chair) insert to ErrConflict and report
// missing rows as ErrNotFound.
type Repository interface {
	Insert(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)
	FindConflict(ctx context.Context, date string, slotIndex int, chair string) (*Booking, error)
	ListAll(ctx context.Context) ([]*Booking, error)
	ListByDate(ctx context.Context, date string) ([]*Booking, error)
	ListByEmail(ctx context.Context, email string) ([]*Booking, error)
	Update(ctx context.Context, id int64, name, email string) (*Booking, error)
	DeleteByID(ctx context.Context, id int64) error
	DeleteByEmail(ctx context.Context, email string) (int64, error)
}

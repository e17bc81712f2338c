package booking

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const bookingCols = `id, booking_date, slot_index, time_slot, chair, name, email, created_by, created_at`

// uniqueViolation is the PostgreSQL error code raised when the
// (booking_date, slot_index, chair) constraint rejects an insert.
const uniqueViolation = "23505"

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	var date time.Time
	err := row.Scan(&b.ID, &date, &b.SlotIndex, &b.TimeSlot, &b.Chair, &b.Name, &b.Email, &b.CreatedBy, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	b.Date = date.Format(DateLayout)
	return &b, nil
}

func (r *repoPG) Insert(ctx context.Context, b *Booking) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO bookings (booking_date, slot_index, time_slot, chair, name, email, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id, created_at`,
		b.Date, b.SlotIndex, b.TimeSlot, b.Chair, b.Name, b.Email, b.CreatedBy,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Booking, error) {
	b, err := scanBooking(r.pool.QueryRow(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return b, err
}

func (r *repoPG) FindConflict(ctx context.Context, date string, slotIndex int, chair string) (*Booking, error) {
	b, err := scanBooking(r.pool.QueryRow(ctx, `
		SELECT `+bookingCols+` FROM bookings
		WHERE booking_date = $1 AND slot_index = $2 AND chair = $3`,
		date, slotIndex, chair))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return b, err
}

func (r *repoPG) ListAll(ctx context.Context) ([]*Booking, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+bookingCols+` FROM bookings
		ORDER BY booking_date, slot_index, chair`)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *repoPG) ListByDate(ctx context.Context, date string) ([]*Booking, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+bookingCols+` FROM bookings
		WHERE booking_date = $1
		ORDER BY slot_index, chair`, date)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *repoPG) ListByEmail(ctx context.Context, email string) ([]*Booking, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+bookingCols+` FROM bookings
		WHERE email = $1
		ORDER BY booking_date, slot_index, chair`, email)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func collect(rows pgx.Rows) ([]*Booking, error) {
	defer rows.Close()
	var items []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, id int64, name, email string) (*Booking, error) {
	b, err := scanBooking(r.pool.QueryRow(ctx, `
		UPDATE bookings SET name = $2, email = $3
		WHERE id = $1
		RETURNING `+bookingCols, id, name, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return b, err
}

func (r *repoPG) DeleteByID(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM bookings WHERE email = $1`, email)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

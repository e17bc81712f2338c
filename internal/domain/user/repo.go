package user

import (
	"context"
)

// Repository is the storage port for staff accounts. Implementations
// report missing rows as ErrNotFound and duplicate emails as ErrExists.
type Repository interface {
	Insert(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	RecordLogin(ctx context.Context, id int64) error
}

package audit

import (
	"context"
)

// Repository is the storage port for the audit trail.
type Repository interface {
	Insert(ctx context.Context, e *Entry) error
	List(ctx context.Context, limit, offset int) ([]*Entry, int, error)
}

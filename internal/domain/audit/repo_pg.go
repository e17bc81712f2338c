package audit

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const entryCols = `id, actor_email, actor_role, action, resource, method, path,
	ip_address, user_agent, status_code, request_id, created_at`

func scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	err := row.Scan(&e.ID, &e.ActorEmail, &e.ActorRole, &e.Action, &e.Resource,
		&e.Method, &e.Path, &e.IPAddress, &e.UserAgent, &e.StatusCode,
		&e.RequestID, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repoPG) Insert(ctx context.Context, e *Entry) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO audit_log (actor_email, actor_role, action, resource, method,
			path, ip_address, user_agent, status_code, request_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id, created_at`,
		e.ActorEmail, e.ActorRole, e.Action, e.Resource, e.Method,
		e.Path, e.IPAddress, e.UserAgent, e.StatusCode, e.RequestID,
	).Scan(&e.ID, &e.CreatedAt)
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Entry, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM audit_log`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+entryCols+` FROM audit_log
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, e)
	}
	return items, total, rows.Err()
}

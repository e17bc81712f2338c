package audit

import (
	"time"
)

// Entry maps to the audit_log table. One row per recorded API mutation.
type Entry struct {
	ID         int64     `db:"id" json:"id"`
	ActorEmail string    `db:"actor_email" json:"actor_email"`
	ActorRole  string    `db:"actor_role" json:"actor_role"`
	Action     string    `db:"action" json:"action"`
	Resource   string    `db:"resource" json:"resource"`
	Method     string    `db:"method" json:"method"`
	Path       string    `db:"path" json:"path"`
	IPAddress  string    `db:"ip_address" json:"ip_address"`
	UserAgent  string    `db:"user_agent" json:"user_agent"`
	StatusCode int       `db:"status_code" json:"status_code"`
	RequestID  string    `db:"request_id" json:"request_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

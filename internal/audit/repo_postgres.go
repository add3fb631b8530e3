package audit

import (
	"context"
	"database/sql"
)

// PostgresRepo persists audit events into the append-only audit_events table.
//
// Assumes:
//
//	CREATE TABLE audit_events (
//	  id UUID PRIMARY KEY,
//	  workspace_id TEXT NOT NULL,
//	  type TEXT NOT NULL,
//	  actor_user_id TEXT,
//	  actor_role TEXT,
//	  ip_address TEXT,
//	  lead_id TEXT,
//	  agent_id TEXT,
//	  override_id TEXT,
//	  queue TEXT,
//	  priority TEXT,
//	  message TEXT,
//	  metadata TEXT,
//	  created_at TIMESTAMPTZ NOT NULL
//	);
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Append(ctx context.Context, e Event) error {
	const q = `
INSERT INTO audit_events (
  id, workspace_id, type, actor_user_id, actor_role, ip_address,
  lead_id, agent_id, override_id, queue, priority, message, metadata, created_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14
)
`
	_, err := r.db.ExecContext(ctx, q,
		e.ID,
		e.WorkspaceID,
		e.Type,
		e.ActorUserID,
		e.ActorRole,
		e.IPAddress,
		e.LeadID,
		e.AgentID,
		e.OverrideID,
		e.Queue,
		e.Priority,
		e.Message,
		e.Metadata,
		e.CreatedAt,
	)
	return err
}

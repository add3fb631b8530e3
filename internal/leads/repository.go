package leads

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bizops-platform/internal/routing"
)

var ErrNotFound = errors.New("leads: not found")

// Repository persists routed leads.
type Repository interface {
	Insert(ctx context.Context, lead Lead) error
	GetByID(ctx context.Context, workspaceID, leadID string) (Lead, error)
	ListByTimeRange(ctx context.Context, workspaceID string, from, to time.Time) ([]Lead, error)
}

// PostgresRepo stores leads in the leads table.
//
// Assumes:
//
//	CREATE TABLE leads (
//	  id UUID PRIMARY KEY,
//	  workspace_id TEXT NOT NULL,
//	  source TEXT NOT NULL,
//	  company_size INT,
//	  budget_mentioned BOOLEAN,
//	  timeline TEXT,
//	  contact_name TEXT,
//	  contact_email TEXT,
//	  company_name TEXT,
//	  notes TEXT,
//	  queue TEXT NOT NULL,
//	  priority TEXT NOT NULL,
//	  reason TEXT,
//	  created_at TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX leads_workspace_created_idx ON leads (workspace_id, created_at);
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Insert(ctx context.Context, lead Lead) error {
	const q = `
INSERT INTO leads (
  id, workspace_id, source, company_size, budget_mentioned, timeline,
  contact_name, contact_email, company_name, notes,
  queue, priority, reason, created_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14
)
`
	_, err := r.db.ExecContext(ctx, q,
		lead.ID,
		lead.WorkspaceID,
		lead.Source,
		lead.CompanySize,
		lead.BudgetMentioned,
		nullIfEmpty(lead.Timeline),
		nullIfEmpty(lead.ContactName),
		nullIfEmpty(lead.ContactEmail),
		nullIfEmpty(lead.CompanyName),
		nullIfEmpty(lead.Notes),
		string(lead.Queue),
		string(lead.Priority),
		nullIfEmpty(lead.Reason),
		lead.CreatedAt,
	)
	return err
}

const leadColumns = `
  id, workspace_id, source, company_size, budget_mentioned, timeline,
  contact_name, contact_email, company_name, notes,
  queue, priority, reason, created_at
`

func (r *PostgresRepo) GetByID(ctx context.Context, workspaceID, leadID string) (Lead, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE workspace_id = $1 AND id = $2`,
		workspaceID, leadID)
	lead, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	return lead, err
}

func (r *PostgresRepo) ListByTimeRange(ctx context.Context, workspaceID string, from, to time.Time) ([]Lead, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+leadColumns+` FROM leads
		 WHERE workspace_id = $1 AND created_at >= $2 AND created_at < $3
		 ORDER BY created_at`,
		workspaceID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, lead)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (Lead, error) {
	var (
		lead         Lead
		companySize  sql.NullInt64
		budget       sql.NullBool
		timeline     sql.NullString
		contactName  sql.NullString
		contactEmail sql.NullString
		companyName  sql.NullString
		notes        sql.NullString
		reason       sql.NullString
		queue        string
		priority     string
	)
	err := row.Scan(
		&lead.ID, &lead.WorkspaceID, &lead.Source,
		&companySize, &budget, &timeline,
		&contactName, &contactEmail, &companyName, &notes,
		&queue, &priority, &reason, &lead.CreatedAt,
	)
	if err != nil {
		return Lead{}, err
	}

	if companySize.Valid {
		v := int(companySize.Int64)
		lead.CompanySize = &v
	}
	if budget.Valid {
		v := budget.Bool
		lead.BudgetMentioned = &v
	}
	lead.Timeline = timeline.String
	lead.ContactName = contactName.String
	lead.ContactEmail = contactEmail.String
	lead.CompanyName = companyName.String
	lead.Notes = notes.String
	lead.Reason = reason.String
	lead.Queue = routing.Queue(queue)
	lead.Priority = routing.Priority(priority)
	return lead, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

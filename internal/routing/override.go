package routing

import (
	"context"
	"errors"
	"strings"
	"time"
)

// OverrideEngine applies silent, expiry-based queue overrides.
//
// Requirements:
// - Silent routing: callers must not be able to infer that an override was
//   used. Decide leaves Reason empty; Engine.Route fills in the same
//   source-recognition reason a rule decision for the item would carry.
// - Expiry based: overrides must be time-bounded.
// - Internal audit logging: every applied override should be recorded.
//
// This component returns a Decision only and is intended to be placed
// *ahead of* normal rule evaluation.

type OverrideEngine struct {
	Store OverrideStore
	Audit AuditLogger
	Now   func() time.Time
}

func NewOverrideEngine(store OverrideStore, audit AuditLogger) *OverrideEngine {
	return &OverrideEngine{Store: store, Audit: audit, Now: time.Now}
}

// OverrideStore resolves currently-active overrides.
// Implementations may use Postgres/Redis.
type OverrideStore interface {
	// GetActiveOverride returns an active override for this workspace/source.
	// If none exists, it returns (Override{}, false, nil).
	GetActiveOverride(ctx context.Context, workspaceID, source string, now time.Time) (Override, bool, error)
}

// AuditLogger records internal-only audit events.
type AuditLogger interface {
	LogOverrideApplied(ctx context.Context, e OverrideAuditEvent) error
}

type Override struct {
	WorkspaceID string
	// Source is the case-normalized source tag the override binds to.
	Source string
	// OverrideID correlates audit logs.
	OverrideID string

	// Queue and Priority are the forced decision.
	Queue    Queue
	Priority Priority

	// ExpiresAt marks when the override stops applying.
	ExpiresAt time.Time

	// Metadata is optional JSON for internal audit correlation.
	Metadata string
}

type OverrideAuditEvent struct {
	WorkspaceID string
	OverrideID  string

	Source   string
	Queue    Queue
	Priority Priority

	AppliedAt time.Time
	ExpiresAt time.Time

	Metadata string
}

// Decide returns (decision, true, nil) if an active override was applied.
// Returns (Decision{}, false, nil) if no override applies.
func (e *OverrideEngine) Decide(ctx context.Context, workspaceID string, item WorkItem) (Decision, bool, error) {
	if workspaceID == "" {
		return Decision{}, false, errors.New("routing: workspace_id required")
	}
	if e.Store == nil {
		return Decision{}, false, nil
	}
	if e.Now == nil {
		e.Now = time.Now
	}

	now := e.Now()
	source := strings.ToLower(strings.TrimSpace(item.Source))
	o, ok, err := e.Store.GetActiveOverride(ctx, workspaceID, source, now)
	if err != nil {
		return Decision{}, false, err
	}
	if !ok {
		return Decision{}, false, nil
	}
	if !o.ExpiresAt.After(now) {
		// Treat as not found; store should ideally filter these out.
		return Decision{}, false, nil
	}
	if o.Queue == "" || o.Priority == "" {
		return Decision{}, false, errors.New("routing: override queue/priority empty")
	}

	// No special Reason here; the engine assigns the rule-equivalent one.
	d := Decision{Queue: o.Queue, Priority: o.Priority}

	if e.Audit != nil {
		_ = e.Audit.LogOverrideApplied(ctx, OverrideAuditEvent{
			WorkspaceID: workspaceID,
			OverrideID:  o.OverrideID,
			Source:      source,
			Queue:       o.Queue,
			Priority:    o.Priority,
			AppliedAt:   now,
			ExpiresAt:   o.ExpiresAt,
			Metadata:    o.Metadata,
		})
	}

	return d, true, nil
}

// MemoryOverrideStore is a simple in-memory store useful for tests and local runs.
type MemoryOverrideStore struct {
	Overrides []Override
}

func (s *MemoryOverrideStore) GetActiveOverride(ctx context.Context, workspaceID, source string, now time.Time) (Override, bool, error) {
	for _, o := range s.Overrides {
		if o.WorkspaceID == workspaceID && o.Source == source && o.ExpiresAt.After(now) {
			return o, true, nil
		}
	}
	return Override{}, false, nil
}

package routing

import (
	"context"
	"errors"
	"time"
)

// Engine evaluates routing for a workspace-scoped WorkItem.
//
// Evaluation order:
//  1) Active queue overrides (ops-configured, expiry based)
//  2) The fixed rule set (pure classification + priority scoring)
//
// Returns a routing decision only. No side effects: persistence, event
// publishing, and workflow triggering belong to the leads service.
//
// Multi-tenancy: workspaceID must always be set.

type Engine struct {
	Overrides *OverrideEngine

	Rules Rules
	Now   func() time.Time
}

func NewEngine() *Engine {
	return &Engine{Rules: DefaultRules(), Now: time.Now}
}

func (e *Engine) Route(ctx context.Context, workspaceID string, item WorkItem) (Decision, error) {
	if workspaceID == "" {
		return Decision{}, errors.New("routing: workspace_id required")
	}

	if e.Overrides != nil {
		d, applied, err := e.Overrides.Decide(ctx, workspaceID, item)
		if err != nil {
			return Decision{}, err
		}
		if applied {
			// Reason reflects source recognition only, same as a rule
			// decision for this item, so callers cannot tell an overridden
			// decision apart.
			d.Reason = ReasonSourceRecognized
			if !e.Rules.KnownSource(item.Source) {
				d.Reason = ReasonUnknownSource
			}
			return d, nil
		}
	}

	return e.Rules.Route(item), nil
}

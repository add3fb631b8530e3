package routing

import (
	"context"

	"bizops-platform/internal/audit"
)

// AuditAdapter bridges routing's override audit hook to the shared audit.Service.
//
// This keeps routing internals from depending on persistence or on any
// user-facing surface.

type AuditAdapter struct {
	Audit *audit.Service
}

func (a AuditAdapter) LogOverrideApplied(ctx context.Context, e OverrideAuditEvent) error {
	if a.Audit == nil {
		return nil
	}
	return a.Audit.LogOverride(ctx, e.WorkspaceID, e.OverrideID,
		ClientIPFromContext(ctx), string(e.Queue), string(e.Priority), e.Metadata)
}

package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for audit events.
//
// It MUST be append-only.
// No Update/Delete methods are provided by design.

type Repository interface {
	Append(ctx context.Context, e Event) error
}

// Service logs internal audit information.
//
// IMPORTANT:
// - Audit is internal-only. Do not expose these records to tenant users by default.
// - Callers should treat audit logging as best-effort.

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var ErrInvalidEvent = errors.New("audit: invalid event")

func (s *Service) Append(ctx context.Context, e Event) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.WorkspaceID == "" {
		return ErrInvalidEvent
	}
	if e.Type == "" {
		return ErrInvalidEvent
	}

	now := s.clock().UTC()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	return s.repo.Append(ctx, e)
}

// LogRoutingDecision records the routing outcome for a lead.
func (s *Service) LogRoutingDecision(ctx context.Context, workspaceID, leadID, ip, queue, priority, reason string) error {
	return s.Append(ctx, Event{
		WorkspaceID: workspaceID,
		Type:        EventTypeRoutingDecision,
		IPAddress:   ip,
		LeadID:      leadID,
		Queue:       queue,
		Priority:    priority,
		Message:     reason,
	})
}

// LogAgentTask records an agent execution for internal traceability.
func (s *Service) LogAgentTask(ctx context.Context, workspaceID, actorUserID, agentID, message string) error {
	return s.Append(ctx, Event{
		WorkspaceID: workspaceID,
		Type:        EventTypeAgentTask,
		ActorUserID: actorUserID,
		AgentID:     agentID,
		Message:     message,
	})
}

// LogOverride records an internal routing override usage.
func (s *Service) LogOverride(ctx context.Context, workspaceID, overrideID, ip, queue, priority, metadata string) error {
	return s.Append(ctx, Event{
		WorkspaceID: workspaceID,
		Type:        EventTypeOverride,
		IPAddress:   ip,
		OverrideID:  overrideID,
		Queue:       queue,
		Priority:    priority,
		Message:     "routing override applied",
		Metadata:    metadata,
	})
}

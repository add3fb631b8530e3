// Package leads implements lead intake: validate, route, persist, and fan
// out to audit, events, and workflow triggers.
package leads

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"bizops-platform/internal/mq"
	"bizops-platform/internal/routing"
	"bizops-platform/internal/workflow"
	"bizops-platform/pkg/metrics"
	"bizops-platform/pkg/utils"
)

var ErrRateLimited = errors.New("leads: intake rate limit exceeded")

// Submission is the intake payload before routing.
type Submission struct {
	Source          string         `json:"source"`
	CompanySize     *int           `json:"company_size,omitempty"`
	BudgetMentioned *bool          `json:"budget_mentioned,omitempty"`
	Timeline        string         `json:"timeline,omitempty"`
	ContactName     string         `json:"contact_name,omitempty"`
	ContactEmail    string         `json:"contact_email,omitempty"`
	CompanyName     string         `json:"company_name,omitempty"`
	Notes           string         `json:"notes,omitempty"`
	Attributes      map[string]any `json:"attributes,omitempty"`
}

func (s Submission) validate() error {
	if strings.TrimSpace(s.Source) == "" {
		return errors.New("leads: source is required")
	}
	return nil
}

// Router decides queue and priority for a work item.
type Router interface {
	Route(ctx context.Context, workspaceID string, item routing.WorkItem) (routing.Decision, error)
}

// Auditor records routing decisions. Matches audit.Service.
type Auditor interface {
	LogRoutingDecision(ctx context.Context, workspaceID, leadID, ip, queue, priority, reason string) error
}

// Publisher emits lead events. Matches mq.Producer.
type Publisher interface {
	PublishLeadRouted(ctx context.Context, ev mq.LeadRoutedEvent) error
}

// Limiter caps intake throughput per workspace.
type Limiter interface {
	Allow(ctx context.Context, workspaceID string) (bool, error)
}

// RedisLimiter applies a fixed-window cap on intakes per workspace.
type RedisLimiter struct {
	RDB    *redis.Client
	Limit  int
	Window time.Duration
}

func (l RedisLimiter) Allow(ctx context.Context, workspaceID string) (bool, error) {
	return utils.AllowIntake(ctx, l.RDB, "leads:intake:"+workspaceID, l.Limit, l.Window)
}

// Service orchestrates intake. Persistence failures abort the request;
// audit, event, and workflow fan-out are best effort and only logged, so a
// broken side channel never loses a lead.
type Service struct {
	router  Router
	repo    Repository
	auditor Auditor
	pub     Publisher
	trigger workflow.Trigger
	limiter Limiter
	log     *slog.Logger
	clock   func() time.Time
}

type ServiceOption func(*Service)

func WithAuditor(a Auditor) ServiceOption { return func(s *Service) { s.auditor = a } }

func WithPublisher(p Publisher) ServiceOption { return func(s *Service) { s.pub = p } }

func WithTrigger(t workflow.Trigger) ServiceOption { return func(s *Service) { s.trigger = t } }

func WithLimiter(l Limiter) ServiceOption { return func(s *Service) { s.limiter = l } }

func WithClock(now func() time.Time) ServiceOption { return func(s *Service) { s.clock = now } }

func NewService(router Router, repo Repository, log *slog.Logger, opts ...ServiceOption) (*Service, error) {
	if router == nil {
		return nil, errors.New("leads: router is required")
	}
	if repo == nil {
		return nil, errors.New("leads: repository is required")
	}
	if log == nil {
		log = slog.Default()
	}
	s := &Service{router: router, repo: repo, log: log, clock: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Intake routes and persists one submission.
func (s *Service) Intake(ctx context.Context, workspaceID string, sub Submission) (Lead, error) {
	if workspaceID == "" {
		return Lead{}, errors.New("leads: workspace id is required")
	}
	if err := sub.validate(); err != nil {
		return Lead{}, err
	}

	if s.limiter != nil {
		ok, err := s.limiter.Allow(ctx, workspaceID)
		if err != nil {
			// Redis being down must not block intake.
			s.log.WarnContext(ctx, "intake limiter unavailable", "error", err)
		} else if !ok {
			return Lead{}, ErrRateLimited
		}
	}

	decision, err := s.router.Route(ctx, workspaceID, routing.WorkItem{
		Source:          sub.Source,
		CompanySize:     sub.CompanySize,
		BudgetMentioned: sub.BudgetMentioned,
		Timeline:        sub.Timeline,
		Attributes:      sub.Attributes,
	})
	if err != nil {
		return Lead{}, fmt.Errorf("leads: route: %w", err)
	}

	lead := Lead{
		ID:              uuid.NewString(),
		WorkspaceID:     workspaceID,
		Source:          sub.Source,
		CompanySize:     sub.CompanySize,
		BudgetMentioned: sub.BudgetMentioned,
		Timeline:        sub.Timeline,
		ContactName:     sub.ContactName,
		ContactEmail:    sub.ContactEmail,
		CompanyName:     sub.CompanyName,
		Notes:           sub.Notes,
		Queue:           decision.Queue,
		Priority:        decision.Priority,
		Reason:          decision.Reason,
		CreatedAt:       s.clock().UTC(),
	}

	if err := s.repo.Insert(ctx, lead); err != nil {
		return Lead{}, fmt.Errorf("leads: persist: %w", err)
	}
	metrics.IncrementRoutingDecision(string(lead.Queue), string(lead.Priority))

	if s.auditor != nil {
		err := s.auditor.LogRoutingDecision(ctx, workspaceID, lead.ID,
			routing.ClientIPFromContext(ctx),
			string(lead.Queue), string(lead.Priority), lead.Reason)
		if err != nil {
			s.log.WarnContext(ctx, "audit append failed", "lead_id", lead.ID, "error", err)
		}
	}

	if s.pub != nil {
		err := s.pub.PublishLeadRouted(ctx, mq.LeadRoutedEvent{
			LeadID:      lead.ID,
			WorkspaceID: lead.WorkspaceID,
			Source:      lead.Source,
			Queue:       lead.Queue,
			Priority:    lead.Priority,
			RoutedAt:    lead.CreatedAt,
		})
		if err != nil {
			s.log.WarnContext(ctx, "lead event publish failed", "lead_id", lead.ID, "error", err)
		}
	}

	if s.trigger != nil {
		err := s.trigger.LeadRouted(ctx, workflow.Event{
			LeadID:      lead.ID,
			WorkspaceID: lead.WorkspaceID,
			Source:      lead.Source,
			Queue:       lead.Queue,
			Priority:    lead.Priority,
			RoutedAt:    lead.CreatedAt,
		})
		if err != nil {
			s.log.WarnContext(ctx, "workflow trigger failed",
				"lead_id", lead.ID, "queue", lead.Queue, "error", err)
		}
	}

	s.log.InfoContext(ctx, "lead routed",
		"lead_id", lead.ID,
		"workspace_id", lead.WorkspaceID,
		"source", lead.Source,
		"queue", lead.Queue,
		"priority", lead.Priority,
	)
	return lead, nil
}

// GetLead returns one persisted lead.
func (s *Service) GetLead(ctx context.Context, workspaceID, leadID string) (Lead, error) {
	if workspaceID == "" || leadID == "" {
		return Lead{}, errors.New("leads: workspace id and lead id are required")
	}
	return s.repo.GetByID(ctx, workspaceID, leadID)
}

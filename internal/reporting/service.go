// Package reporting aggregates routed leads into workspace summaries.
package reporting

import (
	"context"
	"errors"
	"time"

	"bizops-platform/internal/leads"
	"bizops-platform/internal/routing"
)

var ErrInvalidRequest = errors.New("reporting: invalid request")

// Repository abstracts data access for reporting. Implementations must
// enforce workspace filtering.
type Repository interface {
	ListByTimeRange(ctx context.Context, workspaceID string, from, to time.Time) ([]leads.Lead, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service { return &Service{repo: repo} }

func (s *Service) RoutingSummary(ctx context.Context, req RoutingSummaryRequest) (RoutingSummary, error) {
	if req.WorkspaceID == "" {
		return RoutingSummary{}, ErrInvalidRequest
	}
	if req.Range.From.IsZero() || req.Range.To.IsZero() || !req.Range.To.After(req.Range.From) {
		return RoutingSummary{}, ErrInvalidRequest
	}
	if s.repo == nil {
		return RoutingSummary{}, errors.New("reporting: repository not configured")
	}

	rows, err := s.repo.ListByTimeRange(ctx, req.WorkspaceID, req.Range.From, req.Range.To)
	if err != nil {
		return RoutingSummary{}, err
	}

	out := RoutingSummary{
		WorkspaceID: req.WorkspaceID,
		Range:       req.Range,
		BySource:    make(map[string]int),
	}
	for _, l := range rows {
		out.TotalLeads++
		out.BySource[l.Source]++

		switch l.Queue {
		case routing.QueueInbound:
			out.InboundLeads++
		case routing.QueueOutbound:
			out.OutboundLeads++
		}

		switch l.Priority {
		case routing.PriorityHigh:
			out.HighPriority++
		case routing.PriorityMedium:
			out.MediumPriority++
		case routing.PriorityLow:
			out.LowPriority++
		}

		if l.Reason == routing.ReasonUnknownSource {
			out.UnknownSourceLeads++
		}
	}
	return out, nil
}

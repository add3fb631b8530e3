package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"bizops-platform/internal/leads"
	"bizops-platform/internal/routing"
)

func seedRepo(t *testing.T, base time.Time) *leads.MemoryRepo {
	t.Helper()
	repo := leads.NewMemoryRepo()
	rows := []leads.Lead{
		{ID: "l1", Source: "website", Queue: routing.QueueInbound, Priority: routing.PriorityHigh, Reason: routing.ReasonSourceRecognized},
		{ID: "l2", Source: "website", Queue: routing.QueueInbound, Priority: routing.PriorityLow, Reason: routing.ReasonSourceRecognized},
		{ID: "l3", Source: "referral", Queue: routing.QueueInbound, Priority: routing.PriorityMedium, Reason: routing.ReasonSourceRecognized},
		{ID: "l4", Source: "cold_list", Queue: routing.QueueOutbound, Priority: routing.PriorityLow, Reason: routing.ReasonUnknownSource},
		{ID: "l5", Source: "partner", Queue: routing.QueueOutbound, Priority: routing.PriorityHigh, Reason: routing.ReasonUnknownSource},
	}
	for i, l := range rows {
		l.WorkspaceID = "ws-1"
		l.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := repo.Insert(context.Background(), l); err != nil {
			t.Fatal(err)
		}
	}
	return repo
}

func TestRoutingSummary(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := NewService(seedRepo(t, base))

	got, err := svc.RoutingSummary(context.Background(), RoutingSummaryRequest{
		WorkspaceID: "ws-1",
		Range:       TimeRange{From: base, To: base.Add(time.Hour)},
	})
	if err != nil {
		t.Fatal(err)
	}

	if got.TotalLeads != 5 {
		t.Errorf("total = %d, want 5", got.TotalLeads)
	}
	if got.InboundLeads != 3 || got.OutboundLeads != 2 {
		t.Errorf("queues = %d/%d, want 3/2", got.InboundLeads, got.OutboundLeads)
	}
	if got.HighPriority != 2 || got.MediumPriority != 1 || got.LowPriority != 2 {
		t.Errorf("priorities = %d/%d/%d, want 2/1/2", got.HighPriority, got.MediumPriority, got.LowPriority)
	}
	if got.UnknownSourceLeads != 2 {
		t.Errorf("unknown sources = %d, want 2", got.UnknownSourceLeads)
	}
	if got.BySource["website"] != 2 || got.BySource["cold_list"] != 1 {
		t.Errorf("by source = %v", got.BySource)
	}
}

func TestRoutingSummary_RangeFiltersRows(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := NewService(seedRepo(t, base))

	got, err := svc.RoutingSummary(context.Background(), RoutingSummaryRequest{
		WorkspaceID: "ws-1",
		Range:       TimeRange{From: base, To: base.Add(2 * time.Minute)},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.TotalLeads != 2 {
		t.Errorf("total = %d, want 2", got.TotalLeads)
	}
}

func TestRoutingSummary_InvalidRequest(t *testing.T) {
	svc := NewService(leads.NewMemoryRepo())
	now := time.Now()

	cases := []RoutingSummaryRequest{
		{WorkspaceID: "", Range: TimeRange{From: now.Add(-time.Hour), To: now}},
		{WorkspaceID: "ws-1"},
		{WorkspaceID: "ws-1", Range: TimeRange{From: now, To: now.Add(-time.Hour)}},
	}
	for _, req := range cases {
		if _, err := svc.RoutingSummary(context.Background(), req); !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("req %+v: err = %v, want ErrInvalidRequest", req, err)
		}
	}
}

package routing

import (
	"context"
	"testing"
	"time"
)

func TestEngine_RequiresWorkspace(t *testing.T) {
	e := NewEngine()
	if _, err := e.Route(context.Background(), "", WorkItem{Source: "website"}); err == nil {
		t.Fatal("expected error for missing workspace_id")
	}
}

func TestEngine_DelegatesToRules(t *testing.T) {
	e := NewEngine()
	d, err := e.Route(context.Background(), "w1", WorkItem{Source: "demo_request", BudgetMentioned: boolPtr(true), Timeline: "this_quarter"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if d.Queue != QueueInbound || d.Priority != PriorityHigh {
		t.Fatalf("got %+v, want inbound/high", d)
	}
}

type recordingAudit struct {
	events []OverrideAuditEvent
}

func (r *recordingAudit) LogOverrideApplied(ctx context.Context, e OverrideAuditEvent) error {
	r.events = append(r.events, e)
	return nil
}

func TestEngine_OverrideWins(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	audit := &recordingAudit{}
	e := NewEngine()
	e.Overrides = &OverrideEngine{
		Store: &MemoryOverrideStore{Overrides: []Override{{
			WorkspaceID: "w1",
			Source:      "cold_list",
			OverrideID:  "ovr-1",
			Queue:       QueueInbound,
			Priority:    PriorityHigh,
			ExpiresAt:   now.Add(time.Hour),
		}}},
		Audit: audit,
		Now:   func() time.Time { return now },
	}

	d, err := e.Route(context.Background(), "w1", WorkItem{Source: "Cold_List"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if d.Queue != QueueInbound || d.Priority != PriorityHigh {
		t.Fatalf("override not applied: %+v", d)
	}
	if want := DefaultRules().Route(WorkItem{Source: "Cold_List"}).Reason; d.Reason != want {
		t.Fatalf("overridden decision must carry the rule reason %q, got %q", want, d.Reason)
	}
	if len(audit.events) != 1 || audit.events[0].OverrideID != "ovr-1" {
		t.Fatalf("expected one audit event for ovr-1, got %+v", audit.events)
	}
}

func TestEngine_OverrideIndistinguishableOnKnownSource(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e := NewEngine()
	e.Overrides = &OverrideEngine{
		Store: &MemoryOverrideStore{Overrides: []Override{{
			WorkspaceID: "w1",
			Source:      "website",
			OverrideID:  "ovr-2",
			Queue:       QueueOutbound,
			Priority:    PriorityMedium,
			ExpiresAt:   now.Add(time.Hour),
		}}},
		Now: func() time.Time { return now },
	}

	d, err := e.Route(context.Background(), "w1", WorkItem{Source: "website"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if d.Queue != QueueOutbound || d.Priority != PriorityMedium {
		t.Fatalf("override not applied: %+v", d)
	}
	if d.Reason != ReasonSourceRecognized {
		t.Fatalf("reason = %q, want the ordinary recognized-source reason", d.Reason)
	}
}

func TestEngine_ExpiredOverrideIgnored(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e := NewEngine()
	e.Overrides = &OverrideEngine{
		Store: &MemoryOverrideStore{Overrides: []Override{{
			WorkspaceID: "w1",
			Source:      "cold_list",
			Queue:       QueueInbound,
			Priority:    PriorityHigh,
			ExpiresAt:   now.Add(-time.Minute),
		}}},
		Now: func() time.Time { return now },
	}

	d, err := e.Route(context.Background(), "w1", WorkItem{Source: "cold_list"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if d.Queue != QueueOutbound || d.Priority != PriorityLow {
		t.Fatalf("expired override must fall through to rules, got %+v", d)
	}
}

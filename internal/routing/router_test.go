package routing

import "testing"

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestClassifyQueue_TwoWayPartition(t *testing.T) {
	cases := []struct {
		source string
		want   Queue
	}{
		{"website", QueueInbound},
		{"referral", QueueInbound},
		{"demo_request", QueueInbound},
		{"inbound_call", QueueInbound},
		{"cold_list", QueueOutbound},
		{"outbound_list", QueueOutbound},
		{"linkedin_scrape", QueueOutbound},
		{"", QueueOutbound},
		{"  ", QueueOutbound},
	}
	for _, tc := range cases {
		got := ClassifyQueue(WorkItem{Source: tc.source})
		if got != tc.want {
			t.Errorf("ClassifyQueue(%q) = %q, want %q", tc.source, got, tc.want)
		}
		if got != QueueInbound && got != QueueOutbound {
			t.Errorf("ClassifyQueue(%q) returned a value outside the partition: %q", tc.source, got)
		}
	}
}

func TestClassifyQueue_CaseInsensitive(t *testing.T) {
	for _, source := range []string{"Website", "WEBSITE", "website", " Website "} {
		if got := ClassifyQueue(WorkItem{Source: source}); got != QueueInbound {
			t.Errorf("ClassifyQueue(%q) = %q, want inbound", source, got)
		}
	}
}

func TestScorePriority_BoundaryScenarios(t *testing.T) {
	cases := []struct {
		name string
		item WorkItem
		want Decision
	}{
		{
			name: "all signals",
			item: WorkItem{Source: "website", CompanySize: intPtr(150), BudgetMentioned: boolPtr(true), Timeline: "immediate"},
			want: Decision{Queue: QueueInbound, Priority: PriorityHigh},
		},
		{
			name: "no signals",
			item: WorkItem{Source: "cold_list", CompanySize: intPtr(50), BudgetMentioned: boolPtr(false), Timeline: "next_year"},
			want: Decision{Queue: QueueOutbound, Priority: PriorityLow},
		},
		{
			name: "company size only stays low",
			item: WorkItem{Source: "referral", CompanySize: intPtr(200), BudgetMentioned: boolPtr(false), Timeline: "unspecified"},
			want: Decision{Queue: QueueInbound, Priority: PriorityLow},
		},
		{
			name: "budget plus timeline hits high boundary",
			item: WorkItem{Source: "demo_request", CompanySize: intPtr(50), BudgetMentioned: boolPtr(true), Timeline: "this_quarter"},
			want: Decision{Queue: QueueInbound, Priority: PriorityHigh},
		},
		{
			name: "all optional fields absent",
			item: WorkItem{Source: "outbound_list"},
			want: Decision{Queue: QueueOutbound, Priority: PriorityLow},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Route(tc.item)
			if d.Queue != tc.want.Queue {
				t.Errorf("queue = %q, want %q", d.Queue, tc.want.Queue)
			}
			if d.Priority != tc.want.Priority {
				t.Errorf("priority = %q, want %q", d.Priority, tc.want.Priority)
			}
		})
	}
}

func TestScorePriority_TierBoundaries(t *testing.T) {
	// company size (3) + budget (3) = 6 sits just under the high threshold.
	item := WorkItem{Source: "website", CompanySize: intPtr(101), BudgetMentioned: boolPtr(true)}
	if got := ScorePriority(item); got != PriorityMedium {
		t.Fatalf("score 6 should be medium, got %q", got)
	}

	// timeline alone (4) lands exactly on the medium threshold.
	if got := ScorePriority(WorkItem{Timeline: "IMMEDIATE"}); got != PriorityMedium {
		t.Fatalf("score 4 should be medium, got %q", got)
	}

	// company size at the floor contributes nothing; strictly greater required.
	if got := ScorePriority(WorkItem{CompanySize: intPtr(100), Timeline: "immediate"}); got != PriorityMedium {
		t.Fatalf("company_size == floor must not score, got %q", got)
	}
}

func TestScorePriority_AlwaysATier(t *testing.T) {
	items := []WorkItem{
		{},
		{Source: "website"},
		{CompanySize: intPtr(-5)},
		{Timeline: "whenever"},
		{CompanySize: intPtr(10000), BudgetMentioned: boolPtr(true), Timeline: "immediate"},
	}
	for _, item := range items {
		p := ScorePriority(item)
		if p != PriorityLow && p != PriorityMedium && p != PriorityHigh {
			t.Errorf("ScorePriority(%+v) = %q, outside the tier set", item, p)
		}
	}
}

func TestRoute_Idempotent(t *testing.T) {
	item := WorkItem{Source: "Referral", CompanySize: intPtr(250), BudgetMentioned: boolPtr(true), Timeline: "this_quarter"}
	first := Route(item)
	second := Route(item)
	if first != second {
		t.Fatalf("Route is not idempotent: %+v != %+v", first, second)
	}
}

func TestScorePriority_Monotonic(t *testing.T) {
	base := WorkItem{Source: "website", CompanySize: intPtr(50), BudgetMentioned: boolPtr(false), Timeline: "next_year"}

	bumps := []struct {
		name string
		item WorkItem
	}{
		{"company size crosses floor", WorkItem{Source: base.Source, CompanySize: intPtr(500), BudgetMentioned: base.BudgetMentioned, Timeline: base.Timeline}},
		{"budget mentioned", WorkItem{Source: base.Source, CompanySize: base.CompanySize, BudgetMentioned: boolPtr(true), Timeline: base.Timeline}},
		{"timeline qualifies", WorkItem{Source: base.Source, CompanySize: base.CompanySize, BudgetMentioned: base.BudgetMentioned, Timeline: "immediate"}},
	}

	baseRank := ScorePriority(base).Rank()
	for _, b := range bumps {
		if got := ScorePriority(b.item).Rank(); got < baseRank {
			t.Errorf("%s decreased priority: rank %d < %d", b.name, got, baseRank)
		}
	}

	// Stacking signals must never decrease either.
	stacked := WorkItem{Source: base.Source, CompanySize: intPtr(500), BudgetMentioned: boolPtr(true), Timeline: "immediate"}
	if got := ScorePriority(stacked); got != PriorityHigh {
		t.Errorf("all signals should reach high, got %q", got)
	}
}

func TestRoute_ReasonSurfacesUnknownSource(t *testing.T) {
	if d := Route(WorkItem{Source: "website"}); d.Reason != "source_recognized" {
		t.Fatalf("expected source_recognized, got %q", d.Reason)
	}
	if d := Route(WorkItem{Source: "mystery_feed"}); d.Reason != "unknown_source_default" {
		t.Fatalf("expected unknown_source_default, got %q", d.Reason)
	}
	if d := Route(WorkItem{}); d.Queue != QueueOutbound || d.Reason != "unknown_source_default" {
		t.Fatalf("missing source must default to outbound with the unknown reason, got %+v", d)
	}
}

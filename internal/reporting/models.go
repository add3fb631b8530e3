package reporting

import "time"

// TimeRange is a half-open interval [From, To).
type TimeRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

type RoutingSummaryRequest struct {
	WorkspaceID string
	Range       TimeRange
}

// RoutingSummary aggregates routed leads for a workspace and time range.
type RoutingSummary struct {
	WorkspaceID string    `json:"workspace_id"`
	Range       TimeRange `json:"range"`

	TotalLeads int `json:"total_leads"`

	InboundLeads  int `json:"inbound_leads"`
	OutboundLeads int `json:"outbound_leads"`

	HighPriority   int `json:"high_priority"`
	MediumPriority int `json:"medium_priority"`
	LowPriority    int `json:"low_priority"`

	// UnknownSourceLeads counts leads that landed in outbound because their
	// source was not a recognized inbound channel.
	UnknownSourceLeads int `json:"unknown_source_leads"`

	BySource map[string]int `json:"by_source"`
}

package routing

// WorkItem is the unit being routed: a sales lead, a support ticket, or a
// generic business request handed over by the agent layer.
//
// WorkItems are immutable inputs. The router never mutates them and never
// interprets Attributes; extra fields are carried for downstream consumers
// (CRM sync, workflow payloads) only.

type WorkItem struct {
	// Source tags where the item originated, e.g. "website", "referral",
	// "demo_request", "inbound_call", or an arbitrary outbound-sourced tag.
	Source string `json:"source"`

	// CompanySize is optional; nil when unknown or malformed upstream.
	CompanySize *int `json:"company_size,omitempty"`

	// BudgetMentioned is optional; nil when the signal is absent.
	BudgetMentioned *bool `json:"budget_mentioned,omitempty"`

	// Timeline is optional: "immediate", "this_quarter", or anything else.
	Timeline string `json:"timeline,omitempty"`

	// Attributes are free-form fields carried but not interpreted here.
	Attributes map[string]any `json:"attributes,omitempty"`
}

// Decision is the output of routing a WorkItem.
//
// It contains *only* what the handling boundary needs: the destination queue
// and the priority tier. Reason is optional and intended for internal
// logs/audit; it must not leak into user-facing responses.

type Decision struct {
	Queue    Queue    `json:"queue"`
	Priority Priority `json:"priority"`

	Reason string `json:"reason,omitempty"`
}

type Queue string

const (
	QueueInbound  Queue = "inbound"
	QueueOutbound Queue = "outbound"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank orders priority tiers: low < medium < high.
// Unknown values rank below low so they never mask a real tier.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	default:
		return 0
	}
}

package leads

import (
	"time"

	"bizops-platform/internal/routing"
)

// Lead is a routed work item persisted for queue workers and reporting.
type Lead struct {
	ID          string `json:"lead_id"`
	WorkspaceID string `json:"workspace_id"`

	Source          string `json:"source"`
	CompanySize     *int   `json:"company_size,omitempty"`
	BudgetMentioned *bool  `json:"budget_mentioned,omitempty"`
	Timeline        string `json:"timeline,omitempty"`

	ContactName  string `json:"contact_name,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
	CompanyName  string `json:"company_name,omitempty"`
	Notes        string `json:"notes,omitempty"`

	Queue    routing.Queue    `json:"queue"`
	Priority routing.Priority `json:"priority"`
	Reason   string           `json:"reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// WorkItem projects the routing-relevant fields of a submission.
func (l Lead) WorkItem() routing.WorkItem {
	return routing.WorkItem{
		Source:          l.Source,
		CompanySize:     l.CompanySize,
		BudgetMentioned: l.BudgetMentioned,
		Timeline:        l.Timeline,
	}
}

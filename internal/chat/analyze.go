package chat

import (
	"errors"
	"strings"
)

// Analysis classifies a business request for triage: which departments it
// touches, how complex it looks, and what to do next.
type Analysis struct {
	Request            string   `json:"request"`
	Departments        []string `json:"departments"`
	Priority           string   `json:"priority"`
	Complexity         string   `json:"complexity"`
	RecommendedActions []string `json:"recommended_actions"`
}

type departmentRule struct {
	name     string
	keywords []string
}

// Matching is keyword based on purpose: analysis must work identically with
// or without a model backend, and triage only needs coarse buckets.
var departmentRules = []departmentRule{
	{"Sales", []string{"sales", "lead", "revenue", "deal", "prospect", "pipeline"}},
	{"Marketing", []string{"marketing", "content", "campaign", "brand", "seo"}},
	{"Product", []string{"product", "feature", "development", "code", "engineering"}},
	{"Customer Success", []string{"customer", "support", "success", "retention", "churn"}},
	{"Operations", []string{"finance", "budget", "cost", "operations", "process"}},
	{"Security", []string{"security", "compliance", "risk", "audit"}},
}

// AnalyzeBusinessRequest classifies a request without calling the model.
func AnalyzeBusinessRequest(request string) (Analysis, error) {
	request = strings.TrimSpace(request)
	if request == "" {
		return Analysis{}, errors.New("chat: request is required")
	}

	lower := strings.ToLower(request)
	var departments []string
	for _, rule := range departmentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				departments = append(departments, rule.name)
				break
			}
		}
	}
	if len(departments) == 0 {
		departments = []string{"General"}
	}

	complexity := "low"
	switch {
	case len(departments) >= 3:
		complexity = "high"
	case len(departments) == 2:
		complexity = "medium"
	}

	actions := make([]string, 0, len(departments)+1)
	for _, d := range departments {
		actions = append(actions, "Route to "+d+" department for detailed review")
	}
	if complexity != "low" {
		actions = append(actions, "Schedule cross-department coordination")
	}

	return Analysis{
		Request:            request,
		Departments:        departments,
		Priority:           "medium",
		Complexity:         complexity,
		RecommendedActions: actions,
	}, nil
}

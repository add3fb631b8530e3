package routing

import "strings"

// Rules is the fixed rule set the router evaluates.
//
// Routing is a pure, total function over a WorkItem:
// - ClassifyQueue partitions every item into inbound/outbound.
// - ScorePriority maps additive signals onto a priority tier.
//
// Both sub-decisions are computed independently from the same input.
// No I/O, no shared state, safe for any number of concurrent callers.

type Rules struct {
	// InboundSources lists case-normalized source tags that classify inbound.
	InboundSources map[string]struct{}

	// CompanySizeFloor is exclusive: a company must be strictly larger to score.
	CompanySizeFloor  int
	CompanySizeWeight int

	BudgetWeight int

	// QualifyingTimelines lists case-normalized timelines that score.
	QualifyingTimelines map[string]struct{}
	TimelineWeight      int

	// Tier thresholds, inclusive on the low end of each tier.
	HighThreshold   int
	MediumThreshold int
}

// DefaultRules returns the production rule set.
// Keep these values stable; they are part of the routing contract.
func DefaultRules() Rules {
	return Rules{
		InboundSources: map[string]struct{}{
			"website":      {},
			"referral":     {},
			"demo_request": {},
			"inbound_call": {},
		},
		CompanySizeFloor:  100,
		CompanySizeWeight: 3,
		BudgetWeight:      3,
		QualifyingTimelines: map[string]struct{}{
			"immediate":    {},
			"this_quarter": {},
		},
		TimelineWeight:  4,
		HighThreshold:   7,
		MediumThreshold: 4,
	}
}

// ClassifyQueue returns the destination queue for an item.
//
// Matching is case-insensitive on Source. A missing or unrecognized source
// does not match the inbound set and (deliberately) defaults to outbound;
// callers that want to surface the unrecognized case use KnownSource.
func (r Rules) ClassifyQueue(item WorkItem) Queue {
	if r.KnownSource(item.Source) {
		return QueueInbound
	}
	return QueueOutbound
}

// KnownSource reports whether the source is in the inbound-origin set.
func (r Rules) KnownSource(source string) bool {
	_, ok := r.InboundSources[strings.ToLower(strings.TrimSpace(source))]
	return ok
}

// ScorePriority computes the priority tier from additive signals.
// Absent optional fields contribute nothing.
func (r Rules) ScorePriority(item WorkItem) Priority {
	score := 0
	if item.CompanySize != nil && *item.CompanySize > r.CompanySizeFloor {
		score += r.CompanySizeWeight
	}
	if item.BudgetMentioned != nil && *item.BudgetMentioned {
		score += r.BudgetWeight
	}
	if _, ok := r.QualifyingTimelines[strings.ToLower(strings.TrimSpace(item.Timeline))]; ok {
		score += r.TimelineWeight
	}

	switch {
	case score >= r.HighThreshold:
		return PriorityHigh
	case score >= r.MediumThreshold:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// Decision reasons. ReasonUnknownSource marks leads that fell through to
// outbound because their source matched no inbound channel; reporting counts
// these separately so silent misroutes stay visible.
const (
	ReasonSourceRecognized = "source_recognized"
	ReasonUnknownSource    = "unknown_source_default"
)

// Route composes ClassifyQueue and ScorePriority into a fresh Decision.
func (r Rules) Route(item WorkItem) Decision {
	d := Decision{
		Queue:    r.ClassifyQueue(item),
		Priority: r.ScorePriority(item),
		Reason:   ReasonSourceRecognized,
	}
	if !r.KnownSource(item.Source) {
		d.Reason = ReasonUnknownSource
	}
	return d
}

var defaultRules = DefaultRules()

// Route routes an item under the default rule set.
func Route(item WorkItem) Decision { return defaultRules.Route(item) }

// ClassifyQueue classifies an item under the default rule set.
func ClassifyQueue(item WorkItem) Queue { return defaultRules.ClassifyQueue(item) }

// ScorePriority scores an item under the default rule set.
func ScorePriority(item WorkItem) Priority { return defaultRules.ScorePriority(item) }

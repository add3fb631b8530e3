package agent

import (
	"context"
	"fmt"
	"strings"
)

// OfflineCompleter is a deterministic responder used when no completion
// provider is configured. It keeps the API usable for local development and
// demos without a model server; responses are plausible but canned.
type OfflineCompleter struct{}

func (OfflineCompleter) Complete(ctx context.Context, system, prompt string, temperature float64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	lower := strings.ToLower(prompt)
	switch {
	case strings.Contains(lower, "research"):
		return offlineResearchReport, nil
	case strings.Contains(lower, "lead") && strings.Contains(lower, "generat"):
		return offlineLeadList, nil
	default:
		summary := prompt
		if idx := strings.IndexByte(summary, '\n'); idx > 0 {
			summary = summary[:idx]
		}
		if len(summary) > 120 {
			summary = summary[:120] + "..."
		}
		return fmt.Sprintf("Offline response for: %s\n\nConfigure LLM_BASE_URL to enable model-backed output.", summary), nil
	}
}

const offlineResearchReport = `# Research Summary (offline mode)

## Overview
This is a deterministic placeholder report produced without a model backend.

## Key Findings
- The requested topic was received and would be researched by the configured provider.
- Findings, market position, and recommendations appear here in model-backed mode.

## Recommendation
Configure LLM_BASE_URL and LLM_MODEL to enable full research output.`

const offlineLeadList = `Lead 1:
Name: Jordan Avery
Title: Director of Operations
Company: Example Coaching Solutions
Employees: 12
Notes: Placeholder lead generated in offline mode.

Lead 2:
Name: Casey Morgan
Title: CEO & Founder
Company: Sample Growth Partners
Employees: 8
Notes: Placeholder lead generated in offline mode.`

// Package workflow notifies external automation runners about routed leads.
package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"bizops-platform/internal/config"
	"bizops-platform/internal/routing"
	"bizops-platform/pkg/metrics"
)

// Event is the webhook payload sent when a lead lands in a queue.
type Event struct {
	LeadID      string           `json:"lead_id"`
	WorkspaceID string           `json:"workspace_id"`
	Source      string           `json:"source"`
	Queue       routing.Queue    `json:"queue"`
	Priority    routing.Priority `json:"priority"`
	RoutedAt    time.Time        `json:"routed_at"`
}

// Trigger dispatches routed-lead events to the automation layer.
type Trigger interface {
	LeadRouted(ctx context.Context, ev Event) error
}

// HTTPTrigger posts events to a per-queue webhook. A queue with no
// configured URL is skipped silently so partial deployments work.
type HTTPTrigger struct {
	inboundURL  string
	outboundURL string
	secret      string
	http        *http.Client
}

func NewHTTPTrigger(cfg config.WorkflowConfig) *HTTPTrigger {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPTrigger{
		inboundURL:  cfg.InboundWebhookURL,
		outboundURL: cfg.OutboundWebhookURL,
		secret:      cfg.Secret,
		http:        &http.Client{Timeout: timeout},
	}
}

func (t *HTTPTrigger) LeadRouted(ctx context.Context, ev Event) error {
	var url string
	switch ev.Queue {
	case routing.QueueInbound:
		url = t.inboundURL
	case routing.QueueOutbound:
		url = t.outboundURL
	default:
		return fmt.Errorf("workflow: unknown queue %q", ev.Queue)
	}
	if url == "" {
		metrics.IncrementWorkflowTrigger(string(ev.Queue), "skipped")
		return nil
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("workflow: marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("workflow: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if t.secret != "" {
		req.Header.Set("X-Webhook-Secret", t.secret)
	}

	resp, err := t.http.Do(req)
	if err != nil {
		metrics.IncrementWorkflowTrigger(string(ev.Queue), "error")
		return fmt.Errorf("workflow: trigger failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.IncrementWorkflowTrigger(string(ev.Queue), "error")
		return fmt.Errorf("workflow: webhook returned status %d", resp.StatusCode)
	}
	metrics.IncrementWorkflowTrigger(string(ev.Queue), "ok")
	return nil
}

// NoopTrigger drops events. Used when no webhooks are configured.
type NoopTrigger struct{}

func (NoopTrigger) LeadRouted(ctx context.Context, ev Event) error {
	if ev.LeadID == "" {
		return errors.New("workflow: lead id is required")
	}
	return nil
}

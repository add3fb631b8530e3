package agent

import (
	"context"
	"errors"
	"time"

	"bizops-platform/pkg/metrics"
)

// Completer is the minimal completion contract the agent layer depends on.
// The real implementation lives in internal/llm; tests and offline mode use
// local implementations.
type Completer interface {
	Complete(ctx context.Context, system, prompt string, temperature float64) (string, error)
}

// Result is the outcome of one task execution.
type Result struct {
	AgentID     string    `json:"agent"`
	Task        string    `json:"task"`
	Output      string    `json:"result"`
	Status      string    `json:"status"`
	CompletedAt time.Time `json:"timestamp"`
}

const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Agent binds an immutable Config to a Completer.
//
// Agents hold no task queues and no conversation state. Each Run call is an
// independent, side-effect-free prompt/complete round trip, so a single Agent
// may serve any number of concurrent callers.
type Agent struct {
	cfg   Config
	llm   Completer
	clock func() time.Time
}

func New(cfg Config, llm Completer) (*Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if llm == nil {
		return nil, errors.New("agent: completer is required")
	}
	return &Agent{cfg: cfg, llm: llm, clock: time.Now}, nil
}

func (a *Agent) Config() Config { return a.cfg }
func (a *Agent) ID() string     { return a.cfg.ID }

// Run executes a single task and returns its result.
func (a *Agent) Run(ctx context.Context, task Task) (Result, error) {
	if task.Description == "" {
		return Result{}, errors.New("agent: task description is required")
	}

	out, err := a.llm.Complete(ctx, a.cfg.SystemPrompt(), task.Prompt(), a.cfg.Temperature)
	if err != nil {
		metrics.IncrementAgentTask(a.cfg.ID, StatusFailed)
		return Result{}, err
	}

	metrics.IncrementAgentTask(a.cfg.ID, StatusCompleted)
	return Result{
		AgentID:     a.cfg.ID,
		Task:        task.Description,
		Output:      out,
		Status:      StatusCompleted,
		CompletedAt: a.clock().UTC(),
	}, nil
}

// RunAll executes tasks sequentially, stopping at the first failure.
func (a *Agent) RunAll(ctx context.Context, tasks []Task) ([]Result, error) {
	results := make([]Result, 0, len(tasks))
	for _, t := range tasks {
		r, err := a.Run(ctx, t)
		if err != nil {
			return results, err
		}
		results = append(results, r)
	}
	return results, nil
}

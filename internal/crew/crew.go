// Package crew runs multi-agent pipelines sequentially.
package crew

import (
	"context"
	"errors"
	"fmt"

	"bizops-platform/internal/agent"
)

// Member pairs an agent with the task it contributes to the pipeline.
type Member struct {
	Agent *agent.Agent
	Task  agent.Task
}

// Crew executes members in order. Each member's output is injected into the
// next member's task context under the "previous_output" key, so later
// stages build on earlier ones without any shared state.
type Crew struct {
	name    string
	members []Member
}

func New(name string, members ...Member) (*Crew, error) {
	if len(members) == 0 {
		return nil, errors.New("crew: at least one member is required")
	}
	for i, m := range members {
		if m.Agent == nil {
			return nil, fmt.Errorf("crew: member %d has no agent", i)
		}
		if m.Task.Description == "" {
			return nil, fmt.Errorf("crew: member %d has no task", i)
		}
	}
	return &Crew{name: name, members: members}, nil
}

func (c *Crew) Name() string { return c.name }

// Kickoff runs the pipeline and returns every completed result in order.
// A failing stage aborts the run; completed results up to that point are
// returned alongside the error.
func (c *Crew) Kickoff(ctx context.Context) ([]agent.Result, error) {
	results := make([]agent.Result, 0, len(c.members))
	var previous string

	for i, m := range c.members {
		task := m.Task
		if previous != "" {
			if task.Context == nil {
				task.Context = make(map[string]any, 1)
			}
			task.Context["previous_output"] = previous
		}

		res, err := m.Agent.Run(ctx, task)
		if err != nil {
			return results, fmt.Errorf("crew %s: stage %d (%s): %w", c.name, i, m.Agent.ID(), err)
		}
		results = append(results, res)
		previous = res.Output
	}
	return results, nil
}

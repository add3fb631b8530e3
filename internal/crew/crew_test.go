package crew

import (
	"context"
	"errors"
	"strings"
	"testing"

	"bizops-platform/internal/agent"
)

type echoCompleter struct {
	prefix  string
	prompts []string
	failOn  int
}

func (e *echoCompleter) Complete(ctx context.Context, system, prompt string, temperature float64) (string, error) {
	e.prompts = append(e.prompts, prompt)
	if e.failOn > 0 && len(e.prompts) == e.failOn {
		return "", errors.New("stage failed")
	}
	return e.prefix + "output " + string(rune('0'+len(e.prompts))), nil
}

func newAgent(t *testing.T, id string, llm agent.Completer) *agent.Agent {
	t.Helper()
	a, err := agent.New(agent.Config{
		ID:   id,
		Role: agent.Role{Name: "Stage " + id, Goal: "Do stage work"},
	}, llm)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestKickoff_ChainsPreviousOutput(t *testing.T) {
	llm := &echoCompleter{}
	c, err := New("research_write",
		Member{Agent: newAgent(t, "researcher", llm), Task: agent.Task{Description: "research the topic"}},
		Member{Agent: newAgent(t, "writer", llm), Task: agent.Task{Description: "write the summary"}},
	)
	if err != nil {
		t.Fatal(err)
	}

	results, err := c.Kickoff(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].AgentID != "researcher" || results[1].AgentID != "writer" {
		t.Errorf("result order wrong: %+v", results)
	}

	// The second prompt carries the first stage's output.
	if strings.Contains(llm.prompts[0], "previous_output") {
		t.Errorf("first stage should have no previous output:\n%s", llm.prompts[0])
	}
	if !strings.Contains(llm.prompts[1], "previous_output") || !strings.Contains(llm.prompts[1], "output 1") {
		t.Errorf("second stage missing chained output:\n%s", llm.prompts[1])
	}
}

func TestKickoff_AbortsOnFailure(t *testing.T) {
	llm := &echoCompleter{failOn: 2}
	c, err := New("three_stage",
		Member{Agent: newAgent(t, "one", llm), Task: agent.Task{Description: "first"}},
		Member{Agent: newAgent(t, "two", llm), Task: agent.Task{Description: "second"}},
		Member{Agent: newAgent(t, "three", llm), Task: agent.Task{Description: "third"}},
	)
	if err != nil {
		t.Fatal(err)
	}

	results, err := c.Kickoff(context.Background())
	if err == nil {
		t.Fatal("expected stage failure")
	}
	if !strings.Contains(err.Error(), "two") {
		t.Errorf("error does not name failing agent: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("completed results = %d, want 1", len(results))
	}
	if len(llm.prompts) != 2 {
		t.Errorf("third stage ran after failure: %d calls", len(llm.prompts))
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New("empty"); err == nil {
		t.Fatal("expected error for no members")
	}
	llm := &echoCompleter{}
	if _, err := New("bad", Member{Agent: newAgent(t, "a", llm)}); err == nil {
		t.Fatal("expected error for member without task")
	}
	if _, err := New("bad", Member{Task: agent.Task{Description: "x"}}); err == nil {
		t.Fatal("expected error for member without agent")
	}
}

package agent

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Role defines who an agent is when prompting the model.
type Role struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Goal        string `yaml:"goal" json:"goal"`
	Backstory   string `yaml:"backstory" json:"backstory"`
}

// Config is the immutable configuration for one agent: a named role, a
// permitted-capability set, and sampling parameters.
//
// Configs are values. Execution state (tasks, results) never lives here;
// tasks are passed explicitly to Run and results returned, which keeps
// agents safe for concurrent use without coordination.
type Config struct {
	ID   string `yaml:"id" json:"id"`
	Role Role   `yaml:"role" json:"role"`

	// ToolNames lists permitted tool identifiers. The platform does not
	// execute tools itself; the set is forwarded to workflow payloads and
	// surfaced in the catalog.
	ToolNames []string `yaml:"tool_names" json:"tool_names,omitempty"`

	// ParentID links a specialist to its department head, if any.
	ParentID string `yaml:"parent_id" json:"parent_id,omitempty"`

	Temperature float64 `yaml:"temperature" json:"temperature"`
	Department  string  `yaml:"department" json:"department"`

	// Capabilities names the operations the agent exposes, for catalog listing.
	Capabilities []string `yaml:"capabilities" json:"capabilities,omitempty"`
}

func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.ID) == "" {
		errs = append(errs, errors.New("agent: id is required"))
	}
	if strings.TrimSpace(c.Role.Name) == "" {
		errs = append(errs, errors.New("agent: role name is required"))
	}
	if strings.TrimSpace(c.Role.Goal) == "" {
		errs = append(errs, errors.New("agent: role goal is required"))
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		errs = append(errs, fmt.Errorf("agent: temperature must be in [0,2], got %v", c.Temperature))
	}
	return errors.Join(errs...)
}

// SystemPrompt renders the role into the system instruction.
// Pure formatting; no control-flow significance.
func (c Config) SystemPrompt() string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s", c.Role.Name)
	if c.Role.Description != "" {
		fmt.Fprintf(&b, ", %s", c.Role.Description)
	}
	b.WriteString(".\n")
	fmt.Fprintf(&b, "Your goal is: %s\n", c.Role.Goal)
	if c.Role.Backstory != "" {
		fmt.Fprintf(&b, "Backstory: %s\n", c.Role.Backstory)
	}
	b.WriteString("\nAlways respond in a professional manner, focusing on your expertise area.")
	return b.String()
}

// Task is one unit of work passed explicitly into Run.
type Task struct {
	Description    string         `json:"description"`
	ExpectedOutput string         `json:"expected_output"`
	Context        map[string]any `json:"context,omitempty"`
}

// Prompt renders the task into the user instruction.
// Context keys are sorted so rendering is deterministic.
func (t Task) Prompt() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Task: %s\n", t.Description)
	if t.ExpectedOutput != "" {
		fmt.Fprintf(&b, "\nExpected output: %s\n", t.ExpectedOutput)
	}
	if len(t.Context) > 0 {
		b.WriteString("\nContext:\n")
		keys := make([]string, 0, len(t.Context))
		for k := range t.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s: %v\n", k, t.Context[k])
		}
	}
	b.WriteString("\nPlease complete this task to the best of your ability.")
	return b.String()
}

package agent

import (
	"os"
	"path/filepath"
	"testing"
)

const loaderFixture = `
research_agent:
  role:
    name: Research Specialist
    description: an expert researcher
    goal: Research topics thoroughly
    backstory: Years of analyst work.
  tool_names: [web_search_tool]
  temperature: 0.3
  department: research

sales_lead_agent:
  role:
    name: Sales Lead Specialist
    goal: Qualify leads
  parent_id: sales_director
  temperature: 0.4
  department: sales
`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agents.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigs(t *testing.T) {
	configs, err := LoadConfigs(writeFixture(t, loaderFixture))
	if err != nil {
		t.Fatal(err)
	}
	if len(configs) != 2 {
		t.Fatalf("loaded %d configs, want 2", len(configs))
	}

	// Sorted by id, so research_agent comes first.
	r := configs[0]
	if r.ID != "research_agent" {
		t.Fatalf("first config id = %q", r.ID)
	}
	if r.Role.Name != "Research Specialist" || r.Temperature != 0.3 || r.Department != "research" {
		t.Errorf("unexpected research config: %+v", r)
	}
	if len(r.ToolNames) != 1 || r.ToolNames[0] != "web_search_tool" {
		t.Errorf("tool names = %v", r.ToolNames)
	}

	s := configs[1]
	if s.ID != "sales_lead_agent" || s.ParentID != "sales_director" {
		t.Errorf("unexpected sales config: %+v", s)
	}
}

func TestLoadConfigs_InvalidAgent(t *testing.T) {
	path := writeFixture(t, "bad_agent:\n  temperature: 0.5\n")
	if _, err := LoadConfigs(path); err == nil {
		t.Fatal("expected validation error for agent without role")
	}
}

func TestLoadConfigs_MissingFile(t *testing.T) {
	if _, err := LoadConfigs(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadConfigs_Empty(t *testing.T) {
	if _, err := LoadConfigs(writeFixture(t, "")); err == nil {
		t.Fatal("expected error for empty catalog")
	}
}

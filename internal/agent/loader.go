package agent

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// LoadConfigs reads an agent catalog from a YAML file.
//
// The file maps agent id to config:
//
//	research_agent:
//	  role:
//	    name: Research Specialist
//	    description: ...
//	    goal: ...
//	    backstory: ...
//	  tool_names: [web_search_tool]
//	  temperature: 0.3
//	  department: research
//
// Returned configs are sorted by id so startup registration is
// deterministic.
func LoadConfigs(path string) ([]Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read agent config: %w", err)
	}

	var byID map[string]Config
	if err := yaml.Unmarshal(raw, &byID); err != nil {
		return nil, fmt.Errorf("parse agent config %s: %w", path, err)
	}
	if len(byID) == 0 {
		return nil, fmt.Errorf("agent config %s: no agents defined", path)
	}

	configs := make([]Config, 0, len(byID))
	for id, cfg := range byID {
		cfg.ID = id
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("agent %q: %w", id, err)
		}
		configs = append(configs, cfg)
	}
	sort.Slice(configs, func(i, j int) bool { return configs[i].ID < configs[j].ID })
	return configs, nil
}

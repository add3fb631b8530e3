package agent

import (
	"fmt"
	"sort"
	"sync"
)

// Built-in agent ids. Keep these stable; they are part of the API contract.
const (
	IDResearch      = "research_agent"
	IDWriter        = "writer_agent"
	IDExecutiveChat = "executive_chat_agent"
	IDSalesLead     = "sales_lead_agent"
	IDOutreach      = "outreach_agent"
)

// BuiltinConfigs returns the default agent catalog.
// An agents.yaml file (AGENTS_CONFIG_PATH) replaces this set when provided.
func BuiltinConfigs() []Config {
	return []Config{
		{
			ID: IDResearch,
			Role: Role{
				Name:        "Research Specialist",
				Description: "an expert in gathering and synthesizing information on any topic",
				Goal:        "Research topics thoroughly and compile comprehensive, accurate reports",
				Backstory: "You have spent years as an analyst distilling large volumes of " +
					"material into clear, decision-ready summaries. You value accuracy over speed " +
					"and always separate facts from speculation.",
			},
			ToolNames:    []string{"web_search_tool", "kb_tool"},
			Temperature:  0.3,
			Department:   "research",
			Capabilities: []string{"research_topic", "compare_topics", "fact_check"},
		},
		{
			ID: IDWriter,
			Role: Role{
				Name:        "Content Writer",
				Description: "a versatile writer who produces clear, engaging business content",
				Goal:        "Create polished written content tailored to audience, tone, and length",
				Backstory: "You have written for trade publications, product teams, and executive " +
					"audiences. You adapt voice effortlessly and never pad for length.",
			},
			ToolNames:    []string{"kb_tool"},
			Temperature:  0.7,
			Department:   "marketing",
			Capabilities: []string{"write_blog_post", "create_technical_documentation", "write_email", "summarize_content"},
		},
		{
			ID: IDExecutiveChat,
			Role: Role{
				Name:        "Executive AI Assistant",
				Description: "a strategic advisor coordinating across departments",
				Goal:        "Support executive-level discussion, analysis, and decision making",
				Backstory: "You sit at the center of the organization, routing questions to the " +
					"right department and summarizing what matters for leadership.",
			},
			Temperature:  0.5,
			Department:   "admin",
			Capabilities: []string{"chat", "analyze_business_request"},
		},
		{
			ID: IDSalesLead,
			Role: Role{
				Name:        "Sales Lead Specialist",
				Description: "an expert in lead qualification, ICP matching, and sales prioritization",
				Goal:        "Qualify leads accurately and route them to appropriate sales workflows",
				Backstory: "You are an experienced sales professional with deep expertise in " +
					"identifying high-quality leads. You understand ICP criteria, buying signals, " +
					"and how to prioritize leads for maximum conversion rates.",
			},
			ToolNames:    []string{"sales_kb_tool", "workflow_sales_automation_tool", "crm_tool", "web_search_tool"},
			Temperature:  0.4,
			Department:   "sales",
			Capabilities: []string{"process_lead", "qualify_lead", "score_lead"},
		},
		{
			ID: IDOutreach,
			Role: Role{
				Name:        "Sales Outreach Specialist",
				Description: "an expert in personalized outreach and sales communication",
				Goal:        "Create compelling, personalized outreach that converts leads",
				Backstory: "You are a master of sales communication with years of experience " +
					"crafting messages that resonate with prospects. You understand timing, " +
					"personalization, and the art of the follow-up.",
			},
			ToolNames:    []string{"sales_kb_tool", "workflow_sales_automation_tool", "email_send_tool", "web_search_tool"},
			Temperature:  0.7,
			Department:   "sales",
			Capabilities: []string{"create_outreach_email", "create_follow_up_sequence", "analyze_engagement"},
		},
	}
}

// Registry holds constructed agents keyed by id.
//
// The registry is populated once at startup and read-only afterwards; the
// mutex only guards late registration in tests.
type Registry struct {
	mu     sync.RWMutex
	agents map[string]*Agent
}

func NewRegistry(llm Completer, configs []Config) (*Registry, error) {
	r := &Registry{agents: make(map[string]*Agent, len(configs))}
	for _, cfg := range configs {
		a, err := New(cfg, llm)
		if err != nil {
			return nil, fmt.Errorf("agent %q: %w", cfg.ID, err)
		}
		if _, dup := r.agents[cfg.ID]; dup {
			return nil, fmt.Errorf("agent %q: duplicate id", cfg.ID)
		}
		r.agents[cfg.ID] = a
	}
	return r, nil
}

func (r *Registry) Get(id string) (*Agent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.agents[id]
	return a, ok
}

func (r *Registry) Register(a *Agent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.agents[a.ID()] = a
}

// List returns the catalog sorted by id.
func (r *Registry) List() []Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Config, 0, len(r.agents))
	for _, a := range r.agents {
		out = append(out, a.Config())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

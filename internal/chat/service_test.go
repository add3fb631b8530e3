package chat

import (
	"context"
	"strings"
	"testing"

	"bizops-platform/internal/agent"
)

type scriptedCompleter struct {
	prompts []string
	replies []string
}

func (s *scriptedCompleter) Complete(ctx context.Context, system, prompt string, temperature float64) (string, error) {
	s.prompts = append(s.prompts, prompt)
	reply := "noted"
	if len(s.prompts) <= len(s.replies) {
		reply = s.replies[len(s.prompts)-1]
	}
	return reply, nil
}

func newService(t *testing.T, llm agent.Completer) *Service {
	t.Helper()
	a, err := agent.New(agent.Config{
		ID:   "executive_chat_agent",
		Role: agent.Role{Name: "Executive AI Assistant", Goal: "Support executive decisions"},
	}, llm)
	if err != nil {
		t.Fatal(err)
	}
	svc, err := NewService(a, NewMemoryHistory())
	if err != nil {
		t.Fatal(err)
	}
	return svc
}

func TestChat_CarriesHistory(t *testing.T) {
	llm := &scriptedCompleter{replies: []string{"Q3 revenue was up 12%.", "Compared to Q2, growth doubled."}}
	svc := newService(t, llm)
	ctx := context.Background()

	first, err := svc.Chat(ctx, "conv-1", "How was Q3 revenue?")
	if err != nil {
		t.Fatal(err)
	}
	if first != "Q3 revenue was up 12%." {
		t.Errorf("first reply = %q", first)
	}
	if strings.Contains(llm.prompts[0], "conversation_so_far") {
		t.Error("first turn should not carry a transcript")
	}

	if _, err := svc.Chat(ctx, "conv-1", "And compared to Q2?"); err != nil {
		t.Fatal(err)
	}
	second := llm.prompts[1]
	if !strings.Contains(second, "conversation_so_far") || !strings.Contains(second, "Q3 revenue was up 12%.") {
		t.Errorf("second turn missing prior transcript:\n%s", second)
	}
}

func TestChat_ConversationsAreIsolated(t *testing.T) {
	llm := &scriptedCompleter{}
	svc := newService(t, llm)
	ctx := context.Background()

	if _, err := svc.Chat(ctx, "conv-a", "topic alpha"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Chat(ctx, "conv-b", "topic beta"); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(llm.prompts[1], "topic alpha") {
		t.Error("conversation b saw conversation a's transcript")
	}
}

func TestReset_ClearsTranscript(t *testing.T) {
	llm := &scriptedCompleter{}
	svc := newService(t, llm)
	ctx := context.Background()

	if _, err := svc.Chat(ctx, "conv-1", "remember this"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Reset(ctx, "conv-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Chat(ctx, "conv-1", "what did I say?"); err != nil {
		t.Fatal(err)
	}
	last := llm.prompts[len(llm.prompts)-1]
	if strings.Contains(last, "remember this") {
		t.Errorf("transcript survived reset:\n%s", last)
	}
}

func TestChat_Validation(t *testing.T) {
	svc := newService(t, &scriptedCompleter{})
	if _, err := svc.Chat(context.Background(), "conv-1", "   "); err == nil {
		t.Fatal("expected error for blank message")
	}
	if _, err := svc.Chat(context.Background(), "", "hello"); err == nil {
		t.Fatal("expected error for missing conversation id")
	}
	if err := svc.Reset(context.Background(), ""); err == nil {
		t.Fatal("expected error for missing conversation id")
	}
}

func TestAnalyzeBusinessRequest(t *testing.T) {
	tests := []struct {
		name        string
		request     string
		departments []string
		complexity  string
	}{
		{"sales", "We need more qualified leads in the pipeline", []string{"Sales"}, "low"},
		{"marketing", "Launch a content campaign for the new brand", []string{"Marketing"}, "low"},
		{"cross department", "Reduce support costs for enterprise customers", []string{"Customer Success", "Operations"}, "medium"},
		{"three departments", "Audit the sales process for compliance and budget risk", []string{"Sales", "Operations", "Security"}, "high"},
		{"unmatched", "Plan the holiday party", []string{"General"}, "low"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := AnalyzeBusinessRequest(tc.request)
			if err != nil {
				t.Fatal(err)
			}
			if got.Priority != "medium" {
				t.Errorf("priority = %q, want medium", got.Priority)
			}
			if got.Complexity != tc.complexity {
				t.Errorf("complexity = %q, want %q", got.Complexity, tc.complexity)
			}
			if len(got.Departments) != len(tc.departments) {
				t.Fatalf("departments = %v, want %v", got.Departments, tc.departments)
			}
			for i, d := range tc.departments {
				if got.Departments[i] != d {
					t.Errorf("departments = %v, want %v", got.Departments, tc.departments)
					break
				}
			}
			if len(got.RecommendedActions) == 0 {
				t.Error("no recommended actions")
			}
		})
	}
}

func TestAnalyzeBusinessRequest_Empty(t *testing.T) {
	if _, err := AnalyzeBusinessRequest("  "); err == nil {
		t.Fatal("expected error for empty request")
	}
}

func TestMemoryHistory_Window(t *testing.T) {
	h := NewMemoryHistory()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := h.Append(ctx, "c", Message{Role: "user", Content: string(rune('a' + i))}); err != nil {
			t.Fatal(err)
		}
	}
	msgs, err := h.Recent(ctx, "c", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 2 || msgs[0].Content != "d" || msgs[1].Content != "e" {
		t.Errorf("recent window = %+v", msgs)
	}
}

// Package chat implements the executive assistant: a stateful conversation
// backed by an agent, plus a keyword-based business request analyzer.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bizops-platform/internal/agent"
)

const historyWindow = 10

// Service runs executive conversations. History is the only state; the
// underlying agent stays stateless and the transcript is replayed into each
// prompt.
type Service struct {
	assistant *agent.Agent
	history   History
	clock     func() time.Time
}

func NewService(assistant *agent.Agent, history History) (*Service, error) {
	if assistant == nil {
		return nil, errors.New("chat: assistant agent is required")
	}
	if history == nil {
		return nil, errors.New("chat: history store is required")
	}
	return &Service{assistant: assistant, history: history, clock: time.Now}, nil
}

// Chat answers one user message in the context of the conversation so far
// and records both turns in the transcript.
func (s *Service) Chat(ctx context.Context, conversationID, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", errors.New("chat: message is required")
	}
	if conversationID == "" {
		return "", errors.New("chat: conversation id is required")
	}

	prior, err := s.history.Recent(ctx, conversationID, historyWindow)
	if err != nil {
		return "", err
	}

	task := agent.Task{Description: message}
	if len(prior) > 0 {
		task.Context = map[string]any{"conversation_so_far": renderTranscript(prior)}
	}

	res, err := s.assistant.Run(ctx, task)
	if err != nil {
		return "", err
	}

	now := s.clock().UTC()
	err = s.history.Append(ctx, conversationID,
		Message{Role: "user", Content: message, At: now},
		Message{Role: "assistant", Content: res.Output, At: now},
	)
	if err != nil {
		return "", err
	}
	return res.Output, nil
}

// Reset discards the transcript for a conversation.
func (s *Service) Reset(ctx context.Context, conversationID string) error {
	if conversationID == "" {
		return errors.New("chat: conversation id is required")
	}
	return s.history.Clear(ctx, conversationID)
}

func renderTranscript(msgs []Message) string {
	var b strings.Builder
	for _, m := range msgs {
		fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Content)
	}
	return b.String()
}

package service

import (
	"context"
	"errors"
	"testing"

	"mass-chat/internal/domain"
)

func TestSupportAgentHandle(t *testing.T) {
	input := AgentInput{
		UserID:         "u1",
		ConversationID: "c1",
		LatestMessage:  domain.Message{Content: "my device won't turn on"},
	}

	t.Run("echoes joined recent messages", func(t *testing.T) {
		ctxSvc := &stubContextService{snapshot: domain.ContextSnapshot{
			Messages: []domain.Message{
				{Content: "Hi, my device broke"},
				{Content: "Have you tried restarting it?"},
				{Content: "my device won't turn on"},
			},
		}}
		agent := NewSupportAgent(ctxSvc)

		result, err := agent.Handle(context.Background(), input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.AgentType != domain.AgentTypeSupport {
			t.Fatalf("expected SUPPORT, got %s", result.AgentType)
		}
		want := "Support Agent: I see your recent messages: \"Hi, my device broke | Have you tried restarting it? | my device won't turn on\"." +
			" Based on your latest message \"my device won't turn on\", here are some general troubleshooting steps."
		if result.Reply != want {
			t.Fatalf("expected reply %q, got %q", want, result.Reply)
		}
		if ctxSvc.lastMax != 20 {
			t.Fatalf("expected context window of 20, got %d", ctxSvc.lastMax)
		}
	})

	t.Run("empty history still answers", func(t *testing.T) {
		agent := NewSupportAgent(&stubContextService{})

		result, err := agent.Handle(context.Background(), input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "Support Agent: I see your recent messages: \"\"." +
			" Based on your latest message \"my device won't turn on\", here are some general troubleshooting steps."
		if result.Reply != want {
			t.Fatalf("expected reply %q, got %q", want, result.Reply)
		}
	})

	t.Run("truncated context adds parenthetical", func(t *testing.T) {
		ctxSvc := &stubContextService{snapshot: domain.ContextSnapshot{
			Messages:  []domain.Message{{Content: "older"}, {Content: "newer"}},
			Truncated: true,
			Summary:   "Context truncated: showing last 20 of 23 messages.",
		}}
		agent := NewSupportAgent(ctxSvc)

		result, err := agent.Handle(context.Background(), input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "Support Agent: I see your recent messages: \"older | newer\" (Context truncated: showing last 20 of 23 messages.)." +
			" Based on your latest message \"my device won't turn on\", here are some general troubleshooting steps."
		if result.Reply != want {
			t.Fatalf("expected reply %q, got %q", want, result.Reply)
		}
	})

	t.Run("context error propagates", func(t *testing.T) {
		agent := NewSupportAgent(&stubContextService{err: errors.New("db down")})
		if _, err := agent.Handle(context.Background(), input); err == nil {
			t.Fatalf("expected error to propagate")
		}
	})
}

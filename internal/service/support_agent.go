package service

import (
	"context"
	"fmt"
	"strings"

	"mass-chat/internal/domain"
)

const supportContextWindow = 20

// SupportAgent responde consultas generales usando el historial reciente.
// Por ahora la respuesta es determinista y testeable, en lugar de llamar a un LLM.
type SupportAgent struct {
	contextService ContextService
}

func NewSupportAgent(contextService ContextService) *SupportAgent {
	return &SupportAgent{contextService: contextService}
}

func (a *SupportAgent) Handle(ctx context.Context, input AgentInput) (AgentResult, error) {
	snapshot, err := a.contextService.GetContext(ctx, input.ConversationID, supportContextWindow)
	if err != nil {
		return AgentResult{}, fmt.Errorf("get context: %w", err)
	}

	contents := make([]string, 0, len(snapshot.Messages))
	for _, m := range snapshot.Messages {
		contents = append(contents, m.Content)
	}
	recent := strings.Join(contents, " | ")

	suffix := ""
	if snapshot.Truncated {
		suffix = fmt.Sprintf(" (%s)", snapshot.Summary)
	}

	reply := fmt.Sprintf(
		"Support Agent: I see your recent messages: \"%s\"%s. Based on your latest message \"%s\", here are some general troubleshooting steps.",
		recent,
		suffix,
		input.LatestMessage.Content,
	)

	return AgentResult{AgentType: domain.AgentTypeSupport, Reply: reply}, nil
}

var _ AgentHandler = (*SupportAgent)(nil)

package service

import (
	"context"
	"fmt"
	"strings"

	"mass-chat/internal/domain"
)

// RouterAgent clasifica el último mensaje y despacha al agente correspondiente.
// Nunca fabrica respuestas propias.
type RouterAgent struct {
	handlers map[domain.AgentType]AgentHandler
}

func NewRouterAgent(support, order, billing AgentHandler) *RouterAgent {
	return &RouterAgent{
		handlers: map[domain.AgentType]AgentHandler{
			domain.AgentTypeSupport: support,
			domain.AgentTypeOrder:   order,
			domain.AgentTypeBilling: billing,
		},
	}
}

// Classify es pura y case-insensitive; la primera regla que matchea gana.
func (r *RouterAgent) Classify(text string) domain.AgentType {
	lowered := strings.ToLower(text)

	if strings.Contains(lowered, "order") || orderIDPattern.MatchString(text) {
		return domain.AgentTypeOrder
	}

	if strings.Contains(lowered, "refund") || strings.Contains(lowered, "charge") || strings.Contains(lowered, "invoice") {
		return domain.AgentTypeBilling
	}

	// Fallback a soporte general.
	return domain.AgentTypeSupport
}

func (r *RouterAgent) Route(ctx context.Context, input AgentInput) (AgentResult, error) {
	agentType := r.Classify(input.LatestMessage.Content)

	handler, ok := r.handlers[agentType]
	if !ok || handler == nil {
		return AgentResult{}, fmt.Errorf("no handler registered for agent type %s", agentType)
	}

	return handler.Handle(ctx, input)
}

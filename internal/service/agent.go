package service

import (
	"context"
	"regexp"
	"strconv"

	"mass-chat/internal/domain"
)

// orderIDPattern reconoce identificadores externos de pedido (ej. ORD-1001).
var orderIDPattern = regexp.MustCompile(`(?i)ORD-\d+`)

// AgentInput es lo que recibe cada agente: identidad explícita del usuario,
// la conversación y el último mensaje del usuario ya persistido.
type AgentInput struct {
	UserID         string
	ConversationID string
	LatestMessage  domain.Message
}

// AgentResult es la respuesta determinista de un agente.
type AgentResult struct {
	AgentType domain.AgentType `json:"agentType"`
	Reply     string           `json:"reply"`
}

// AgentHandler es el contrato común de los agentes concretos; el router
// despacha por clasificación sobre este contrato.
type AgentHandler interface {
	Handle(ctx context.Context, input AgentInput) (AgentResult, error)
}

// formatAmount imprime montos como lo hace la capa de datos: sin ceros de
// relleno (129.99, 59.5).
func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

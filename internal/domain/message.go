package domain

import "time"

const (
	RoleUser   = "USER"
	RoleAgent  = "AGENT"
	RoleSystem = "SYSTEM"
)

// Message es un turno dentro de una conversación. AgentType solo se setea
// cuando Role es AGENT, y siempre con un agente concreto (nunca ROUTER).
type Message struct {
	ID             string     `json:"id"`
	ConversationID string     `json:"conversationId"`
	Role           string     `json:"role"`
	AgentType      *AgentType `json:"agentType,omitempty"`
	Content        string     `json:"content"`
	CreatedAt      time.Time  `json:"createdAt"`
}

package domain

// AgentType clasifica qué agente produce (o enruta) una respuesta.
type AgentType string

const (
	// AgentTypeRouter existe solo en la fase de clasificación; nunca firma mensajes.
	AgentTypeRouter  AgentType = "ROUTER"
	AgentTypeSupport AgentType = "SUPPORT"
	AgentTypeOrder   AgentType = "ORDER"
	AgentTypeBilling AgentType = "BILLING"
)

// AgentDescriptor describe un agente del catálogo estático expuesto por la API.
type AgentDescriptor struct {
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tools       []string `json:"tools"`
}

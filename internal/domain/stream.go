package domain

const (
	StreamEventMeta  = "meta"
	StreamEventDelta = "delta"
	StreamEventError = "error"
)

// StreamEvent es un registro del stream NDJSON: primero un meta, luego un
// delta por token de la respuesta, y un error terminal si algo falla a mitad.
type StreamEvent struct {
	Type           string    `json:"type"`
	ConversationID string    `json:"conversationId,omitempty"`
	AgentType      AgentType `json:"agentType,omitempty"`
	Delta          string    `json:"delta,omitempty"`
	Error          string    `json:"error,omitempty"`
}

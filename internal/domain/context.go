package domain

// ContextSnapshot es una vista acotada y cronológica del historial reciente
// de una conversación. Summary solo se llena cuando hubo truncamiento.
type ContextSnapshot struct {
	Messages  []Message `json:"messages"`
	Truncated bool      `json:"truncated"`
	Summary   string    `json:"summary,omitempty"`
}

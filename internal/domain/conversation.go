package domain

import "time"

// Conversation agrupa los mensajes de un usuario; updated_at avanza con cada mensaje nuevo.
type Conversation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ConversationWithMessages incluye el historial ordenado cronológicamente.
type ConversationWithMessages struct {
	Conversation
	Messages []Message `json:"messages"`
}

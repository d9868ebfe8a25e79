package service

import (
	"context"
	"fmt"

	"mass-chat/internal/domain"
	"mass-chat/internal/repository"
)

// ContextService define contrato para recuperar contexto conversacional acotado.
type ContextService interface {
	GetContext(ctx context.Context, conversationID string, maxMessages int) (domain.ContextSnapshot, error)
}

// BasicContextService aplica una ventana deslizante sobre los últimos N
// mensajes de la conversación.
type BasicContextService struct {
	messageRepo repository.MessageRepository
}

func NewBasicContextService(messageRepo repository.MessageRepository) *BasicContextService {
	return &BasicContextService{messageRepo: messageRepo}
}

// GetContext lee total y ventana sin aislamiento transaccional; una lectura
// levemente desactualizada es aceptable para un insumo de contexto.
func (s *BasicContextService) GetContext(ctx context.Context, conversationID string, maxMessages int) (domain.ContextSnapshot, error) {
	if maxMessages <= 0 {
		maxMessages = 20
	}

	total, err := s.messageRepo.CountByConversationID(ctx, conversationID)
	if err != nil {
		return domain.ContextSnapshot{}, fmt.Errorf("count messages: %w", err)
	}

	skip := total - maxMessages
	if skip < 0 {
		skip = 0
	}

	messages, err := s.messageRepo.ListWindow(ctx, conversationID, skip, maxMessages)
	if err != nil {
		return domain.ContextSnapshot{}, fmt.Errorf("list messages: %w", err)
	}

	snapshot := domain.ContextSnapshot{
		Messages:  messages,
		Truncated: total > maxMessages,
	}
	if snapshot.Truncated {
		snapshot.Summary = fmt.Sprintf("Context truncated: showing last %d of %d messages.", maxMessages, total)
	}

	return snapshot, nil
}

var _ ContextService = (*BasicContextService)(nil)

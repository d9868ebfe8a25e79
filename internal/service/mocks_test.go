package service

import (
	"context"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"mass-chat/internal/domain"
	"mass-chat/internal/repository"
)

type memConversationRepo struct {
	conversations map[string]domain.Conversation
	createErr     error
}

func newMemConversationRepo() *memConversationRepo {
	return &memConversationRepo{conversations: make(map[string]domain.Conversation)}
}

func (m *memConversationRepo) Create(_ context.Context, conversation domain.Conversation) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.conversations[conversation.ID] = conversation
	return nil
}

func (m *memConversationRepo) Touch(_ context.Context, id string, updatedAt time.Time) (domain.Conversation, error) {
	conversation, ok := m.conversations[id]
	if !ok {
		return domain.Conversation{}, pgx.ErrNoRows
	}
	if updatedAt.After(conversation.UpdatedAt) {
		conversation.UpdatedAt = updatedAt
	}
	m.conversations[id] = conversation
	return conversation, nil
}

func (m *memConversationRepo) GetByID(_ context.Context, id, userID string) (domain.Conversation, error) {
	conversation, ok := m.conversations[id]
	if !ok || conversation.UserID != userID {
		return domain.Conversation{}, pgx.ErrNoRows
	}
	return conversation, nil
}

func (m *memConversationRepo) ListByUserID(_ context.Context, userID string) ([]domain.Conversation, error) {
	conversations := []domain.Conversation{}
	for _, conversation := range m.conversations {
		if conversation.UserID == userID {
			conversations = append(conversations, conversation)
		}
	}
	sort.Slice(conversations, func(i, j int) bool {
		return conversations[i].UpdatedAt.After(conversations[j].UpdatedAt)
	})
	return conversations, nil
}

func (m *memConversationRepo) Delete(_ context.Context, id, userID string) error {
	conversation, ok := m.conversations[id]
	if ok && conversation.UserID == userID {
		delete(m.conversations, id)
	}
	return nil
}

type memMessageRepo struct {
	messages  []domain.Message
	createErr error
	countErr  error
	listErr   error
}

func (m *memMessageRepo) Create(_ context.Context, message domain.Message) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.messages = append(m.messages, message)
	return nil
}

func (m *memMessageRepo) byConversation(conversationID string) []domain.Message {
	var messages []domain.Message
	for _, msg := range m.messages {
		if msg.ConversationID == conversationID {
			messages = append(messages, msg)
		}
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages
}

func (m *memMessageRepo) ListByConversationID(_ context.Context, conversationID string) ([]domain.Message, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.byConversation(conversationID), nil
}

func (m *memMessageRepo) CountByConversationID(_ context.Context, conversationID string) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return len(m.byConversation(conversationID)), nil
}

func (m *memMessageRepo) ListWindow(_ context.Context, conversationID string, offset, limit int) ([]domain.Message, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	messages := m.byConversation(conversationID)
	if offset >= len(messages) {
		return nil, nil
	}
	messages = messages[offset:]
	if len(messages) > limit {
		messages = messages[:limit]
	}
	return messages, nil
}

type memOrderRepo struct {
	orders []domain.Order
	err    error
}

func (m *memOrderRepo) ListByUserID(_ context.Context, userID, externalID string) ([]domain.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	var orders []domain.Order
	for _, order := range m.orders {
		if order.UserID != userID {
			continue
		}
		if externalID != "" && order.ExternalID != externalID {
			continue
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (m *memOrderRepo) ListByUserIDWithPayments(ctx context.Context, userID, externalID string) ([]domain.Order, error) {
	return m.ListByUserID(ctx, userID, externalID)
}

type stubContextService struct {
	snapshot domain.ContextSnapshot
	err      error
	lastMax  int
}

func (s *stubContextService) GetContext(_ context.Context, _ string, maxMessages int) (domain.ContextSnapshot, error) {
	s.lastMax = maxMessages
	return s.snapshot, s.err
}

var (
	_ repository.ConversationRepository = (*memConversationRepo)(nil)
	_ repository.MessageRepository      = (*memMessageRepo)(nil)
	_ repository.OrderRepository        = (*memOrderRepo)(nil)
	_ ContextService                    = (*stubContextService)(nil)
)

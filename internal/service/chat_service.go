package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"mass-chat/internal/domain"
	"mass-chat/internal/repository"
)

const (
	defaultStreamDelay = 40 * time.Millisecond
	maxTitleLength     = 80
)

var (
	ErrChatInvalidInput     = errors.New("chat invalid input")
	ErrConversationNotFound = errors.New("conversation not found")
)

// IncomingMessage es el payload de entrada de ambos endpoints de mensajes.
// UserID es obligatorio: la identidad la resuelve el borde, no este servicio.
type IncomingMessage struct {
	ConversationID string `json:"conversationId"`
	UserID         string `json:"userId"`
	Content        string `json:"content"`
}

// ChatResponse es el resultado síncrono: mensaje del usuario y del agente.
type ChatResponse struct {
	ConversationID string           `json:"conversationId"`
	Messages       []domain.Message `json:"messages"`
	AgentType      domain.AgentType `json:"agentType"`
}

// ChatService orquesta la conversación: persiste el mensaje entrante, enruta
// al agente y persiste la respuesta, de forma síncrona o como stream.
type ChatService struct {
	logger        *zap.Logger
	conversations repository.ConversationRepository
	messages      repository.MessageRepository
	router        *RouterAgent
	streamDelay   time.Duration
}

func NewChatService(
	logger *zap.Logger,
	conversations repository.ConversationRepository,
	messages repository.MessageRepository,
	router *RouterAgent,
	streamDelay time.Duration,
) *ChatService {
	if streamDelay <= 0 {
		streamDelay = defaultStreamDelay
	}
	return &ChatService{
		logger:        logger,
		conversations: conversations,
		messages:      messages,
		router:        router,
		streamDelay:   streamDelay,
	}
}

// HandleIncomingMessage procesa un mensaje de punta a punta y devuelve ambos
// mensajes persistidos.
func (s *ChatService) HandleIncomingMessage(ctx context.Context, payload IncomingMessage) (ChatResponse, error) {
	userID := strings.TrimSpace(payload.UserID)
	if userID == "" || strings.TrimSpace(payload.Content) == "" {
		return ChatResponse{}, ErrChatInvalidInput
	}

	now := time.Now().UTC()

	var (
		conversation domain.Conversation
		err          error
	)
	if payload.ConversationID != "" {
		conversation, err = s.conversations.Touch(ctx, payload.ConversationID, now)
		if errors.Is(err, pgx.ErrNoRows) {
			return ChatResponse{}, ErrConversationNotFound
		}
		if err != nil {
			return ChatResponse{}, fmt.Errorf("touch conversation: %w", err)
		}
	} else {
		conversation = domain.Conversation{
			ID:        uuid.NewString(),
			UserID:    userID,
			Title:     titleFromContent(payload.Content),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err = s.conversations.Create(ctx, conversation); err != nil {
			return ChatResponse{}, fmt.Errorf("create conversation: %w", err)
		}
	}

	userMessage := domain.Message{
		ID:             uuid.NewString(),
		ConversationID: conversation.ID,
		Role:           domain.RoleUser,
		Content:        payload.Content,
		CreatedAt:      now,
	}
	if err = s.messages.Create(ctx, userMessage); err != nil {
		return ChatResponse{}, fmt.Errorf("persist user message: %w", err)
	}

	result, err := s.router.Route(ctx, AgentInput{
		UserID:         userID,
		ConversationID: conversation.ID,
		LatestMessage:  userMessage,
	})
	if err != nil {
		return ChatResponse{}, fmt.Errorf("route message: %w", err)
	}

	agentType := result.AgentType
	agentMessage := domain.Message{
		ID:             uuid.NewString(),
		ConversationID: conversation.ID,
		Role:           domain.RoleAgent,
		AgentType:      &agentType,
		Content:        result.Reply,
		CreatedAt:      time.Now().UTC(),
	}
	if err = s.messages.Create(ctx, agentMessage); err != nil {
		return ChatResponse{}, fmt.Errorf("persist agent message: %w", err)
	}

	return ChatResponse{
		ConversationID: conversation.ID,
		Messages:       []domain.Message{userMessage, agentMessage},
		AgentType:      result.AgentType,
	}, nil
}

// HandleIncomingMessageStream corre el flujo síncrono y emite los eventos por
// un canal: un meta, un delta por token de la respuesta con pausa entre cada
// uno, y un error terminal si algo falla. El productor observa ctx, así que
// la desconexión del consumidor corta la producción; el canal se cierra al final.
func (s *ChatService) HandleIncomingMessageStream(ctx context.Context, payload IncomingMessage) <-chan domain.StreamEvent {
	events := make(chan domain.StreamEvent)

	go func() {
		defer close(events)

		result, err := s.HandleIncomingMessage(ctx, payload)
		if err != nil {
			s.logger.Error("stream message failed", zap.Error(err))
			s.emit(ctx, events, domain.StreamEvent{
				Type:  domain.StreamEventError,
				Error: streamErrorMessage(err),
			})
			return
		}

		// Primero el meta, para que el cliente conozca conversación y agente.
		ok := s.emit(ctx, events, domain.StreamEvent{
			Type:           domain.StreamEventMeta,
			ConversationID: result.ConversationID,
			AgentType:      result.AgentType,
		})
		if !ok {
			return
		}

		var reply string
		for _, m := range result.Messages {
			if m.Role == domain.RoleAgent {
				reply = m.Content
			}
		}

		tokens := strings.Split(reply, " ")
		for i, token := range tokens {
			delta := token + " "
			// El último delta va sin espacio final para que la concatenación
			// reconstruya la respuesta exacta.
			if i == len(tokens)-1 {
				delta = token
			}
			if !s.emit(ctx, events, domain.StreamEvent{Type: domain.StreamEventDelta, Delta: delta}) {
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.streamDelay):
			}
		}
	}()

	return events
}

func (s *ChatService) emit(ctx context.Context, events chan<- domain.StreamEvent, event domain.StreamEvent) bool {
	select {
	case events <- event:
		return true
	case <-ctx.Done():
		return false
	}
}

// ListConversations devuelve las conversaciones del usuario, la más activa primero.
func (s *ChatService) ListConversations(ctx context.Context, userID string) ([]domain.Conversation, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrChatInvalidInput
	}
	return s.conversations.ListByUserID(ctx, userID)
}

// GetConversation devuelve la conversación con su historial ordenado.
func (s *ChatService) GetConversation(ctx context.Context, id, userID string) (domain.ConversationWithMessages, error) {
	userID = strings.TrimSpace(userID)
	if id == "" || userID == "" {
		return domain.ConversationWithMessages{}, ErrChatInvalidInput
	}

	conversation, err := s.conversations.GetByID(ctx, id, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ConversationWithMessages{}, ErrConversationNotFound
	}
	if err != nil {
		return domain.ConversationWithMessages{}, fmt.Errorf("get conversation: %w", err)
	}

	messages, err := s.messages.ListByConversationID(ctx, id)
	if err != nil {
		return domain.ConversationWithMessages{}, fmt.Errorf("list messages: %w", err)
	}
	if messages == nil {
		messages = []domain.Message{}
	}

	return domain.ConversationWithMessages{Conversation: conversation, Messages: messages}, nil
}

// DeleteConversation es idempotente.
func (s *ChatService) DeleteConversation(ctx context.Context, id, userID string) error {
	userID = strings.TrimSpace(userID)
	if id == "" || userID == "" {
		return ErrChatInvalidInput
	}
	return s.conversations.Delete(ctx, id, userID)
}

func titleFromContent(content string) string {
	runes := []rune(content)
	if len(runes) > maxTitleLength {
		runes = runes[:maxTitleLength]
	}
	return string(runes)
}

// streamErrorMessage traduce errores internos a un mensaje apto para el cliente.
func streamErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrChatInvalidInput):
		return "invalid request"
	case errors.Is(err, ErrConversationNotFound):
		return "conversation not found"
	default:
		return "could not process message"
	}
}

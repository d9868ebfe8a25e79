package service

import (
	"context"
	"fmt"
	"strings"

	"mass-chat/internal/domain"
	"mass-chat/internal/repository"
)

const orderContextWindow = 10

// OrderAgent responde consultas de estado y entrega de pedidos.
type OrderAgent struct {
	orders         repository.OrderRepository
	contextService ContextService
}

func NewOrderAgent(orders repository.OrderRepository, contextService ContextService) *OrderAgent {
	return &OrderAgent{orders: orders, contextService: contextService}
}

func (a *OrderAgent) Handle(ctx context.Context, input AgentInput) (AgentResult, error) {
	text := input.LatestMessage.Content

	snapshot, err := a.contextService.GetContext(ctx, input.ConversationID, orderContextWindow)
	if err != nil {
		return AgentResult{}, fmt.Errorf("get context: %w", err)
	}

	externalID := strings.ToUpper(orderIDPattern.FindString(text))

	orders, err := a.orders.ListByUserID(ctx, input.UserID, externalID)
	if err != nil {
		return AgentResult{}, fmt.Errorf("list orders: %w", err)
	}

	if len(orders) == 0 {
		reply := "Order Agent: I could not find any matching orders. Please provide your order ID (e.g. ORD-1001)."
		if externalID != "" {
			reply = fmt.Sprintf("Order Agent: I couldn't find any order with ID %s for your account.", externalID)
		}
		return AgentResult{AgentType: domain.AgentTypeOrder, Reply: reply}, nil
	}

	order := orders[0]

	reply := fmt.Sprintf(
		"Order Agent: Order %s is currently %s with delivery status %s. Total amount: %s %s.",
		order.ExternalID,
		order.Status,
		order.DeliveryStatus,
		formatAmount(order.TotalAmount),
		order.Currency,
	)
	if snapshot.Truncated {
		reply += fmt.Sprintf(" (Using recent context only: %s)", snapshot.Summary)
	}

	return AgentResult{AgentType: domain.AgentTypeOrder, Reply: reply}, nil
}

var _ AgentHandler = (*OrderAgent)(nil)

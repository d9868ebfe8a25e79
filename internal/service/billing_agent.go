package service

import (
	"context"
	"fmt"
	"strings"

	"mass-chat/internal/domain"
	"mass-chat/internal/repository"
)

const billingContextWindow = 10

// BillingAgent responde sobre pagos, reembolsos y facturación.
type BillingAgent struct {
	orders         repository.OrderRepository
	contextService ContextService
}

func NewBillingAgent(orders repository.OrderRepository, contextService ContextService) *BillingAgent {
	return &BillingAgent{orders: orders, contextService: contextService}
}

func (a *BillingAgent) Handle(ctx context.Context, input AgentInput) (AgentResult, error) {
	text := input.LatestMessage.Content

	snapshot, err := a.contextService.GetContext(ctx, input.ConversationID, billingContextWindow)
	if err != nil {
		return AgentResult{}, fmt.Errorf("get context: %w", err)
	}

	externalID := strings.ToUpper(orderIDPattern.FindString(text))

	orders, err := a.orders.ListByUserIDWithPayments(ctx, input.UserID, externalID)
	if err != nil {
		return AgentResult{}, fmt.Errorf("list orders with payments: %w", err)
	}

	if len(orders) == 0 {
		reply := "Billing Agent: I could not locate billing information. Please include your order ID (e.g. ORD-1002)."
		if externalID != "" {
			reply = fmt.Sprintf("Billing Agent: I couldn't find any billing records for order %s.", externalID)
		}
		return AgentResult{AgentType: domain.AgentTypeBilling, Reply: reply}, nil
	}

	order := orders[0]

	if len(order.Payments) == 0 {
		reply := fmt.Sprintf("Billing Agent: I found order %s, but no payments are associated with it yet.", order.ExternalID)
		return AgentResult{AgentType: domain.AgentTypeBilling, Reply: reply}, nil
	}

	// Payments viene ordenado del más reciente al más antiguo.
	latestPayment := order.Payments[0]

	reply := fmt.Sprintf(
		"Billing Agent: For order %s, the latest payment of %s %s is %s with refund status %s.",
		order.ExternalID,
		formatAmount(latestPayment.Amount),
		latestPayment.Currency,
		latestPayment.Status,
		latestPayment.RefundStatus,
	)
	if snapshot.Truncated {
		reply += fmt.Sprintf(" (Using recent context only: %s)", snapshot.Summary)
	}

	return AgentResult{AgentType: domain.AgentTypeBilling, Reply: reply}, nil
}

var _ AgentHandler = (*BillingAgent)(nil)

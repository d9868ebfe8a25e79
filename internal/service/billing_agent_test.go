package service

import (
	"context"
	"testing"

	"mass-chat/internal/domain"
)

func TestBillingAgentHandle(t *testing.T) {
	input := func(content string) AgentInput {
		return AgentInput{
			UserID:         "u1",
			ConversationID: "c1",
			LatestMessage:  domain.Message{Content: content},
		}
	}

	t.Run("refund request without order id", func(t *testing.T) {
		orders := &memOrderRepo{orders: []domain.Order{{
			ID:         "o2",
			UserID:     "u1",
			ExternalID: "ORD-1002",
			Payments: []domain.Payment{{
				Amount:       59.5,
				Currency:     "USD",
				Status:       domain.PaymentStatusCompleted,
				RefundStatus: domain.RefundStatusRequested,
			}},
		}}}
		agent := NewBillingAgent(orders, &stubContextService{})

		result, err := agent.Handle(context.Background(), input("I want a refund for my last charge"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.AgentType != domain.AgentTypeBilling {
			t.Fatalf("expected BILLING, got %s", result.AgentType)
		}
		want := "Billing Agent: For order ORD-1002, the latest payment of 59.5 USD is COMPLETED with refund status REQUESTED."
		if result.Reply != want {
			t.Fatalf("expected reply %q, got %q", want, result.Reply)
		}
	})

	t.Run("most recent payment wins", func(t *testing.T) {
		orders := &memOrderRepo{orders: []domain.Order{{
			UserID:     "u1",
			ExternalID: "ORD-1002",
			Payments: []domain.Payment{
				{Amount: 10, Currency: "USD", Status: domain.PaymentStatusPending, RefundStatus: domain.RefundStatusNone},
				{Amount: 59.5, Currency: "USD", Status: domain.PaymentStatusCompleted, RefundStatus: domain.RefundStatusRequested},
			},
		}}}
		agent := NewBillingAgent(orders, &stubContextService{})

		result, err := agent.Handle(context.Background(), input("refund status for ORD-1002")) // patrón de pedido, pero llega por dispatch directo
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "Billing Agent: For order ORD-1002, the latest payment of 10 USD is PENDING with refund status NONE."
		if result.Reply != want {
			t.Fatalf("expected first payment (most recent) to be used, got %q", result.Reply)
		}
	})

	t.Run("order without payments", func(t *testing.T) {
		orders := &memOrderRepo{orders: []domain.Order{{
			UserID:     "u1",
			ExternalID: "ORD-1003",
		}}}
		agent := NewBillingAgent(orders, &stubContextService{})

		result, err := agent.Handle(context.Background(), input("invoice for ORD-1003"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "Billing Agent: I found order ORD-1003, but no payments are associated with it yet."
		if result.Reply != want {
			t.Fatalf("expected reply %q, got %q", want, result.Reply)
		}
	})

	t.Run("no records with id", func(t *testing.T) {
		agent := NewBillingAgent(&memOrderRepo{}, &stubContextService{})

		result, err := agent.Handle(context.Background(), input("charge on ORD-4040"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "Billing Agent: I couldn't find any billing records for order ORD-4040."
		if result.Reply != want {
			t.Fatalf("expected reply %q, got %q", want, result.Reply)
		}
	})

	t.Run("no records without id", func(t *testing.T) {
		agent := NewBillingAgent(&memOrderRepo{}, &stubContextService{})

		result, err := agent.Handle(context.Background(), input("why was I charged twice"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "Billing Agent: I could not locate billing information. Please include your order ID (e.g. ORD-1002)."
		if result.Reply != want {
			t.Fatalf("expected reply %q, got %q", want, result.Reply)
		}
	})

	t.Run("truncated context appends note", func(t *testing.T) {
		orders := &memOrderRepo{orders: []domain.Order{{
			UserID:     "u1",
			ExternalID: "ORD-1002",
			Payments: []domain.Payment{{
				Amount:       59.5,
				Currency:     "USD",
				Status:       domain.PaymentStatusCompleted,
				RefundStatus: domain.RefundStatusRequested,
			}},
		}}}
		ctxSvc := &stubContextService{snapshot: domain.ContextSnapshot{
			Truncated: true,
			Summary:   "Context truncated: showing last 10 of 11 messages.",
		}}
		agent := NewBillingAgent(orders, ctxSvc)

		result, err := agent.Handle(context.Background(), input("refund please"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "Billing Agent: For order ORD-1002, the latest payment of 59.5 USD is COMPLETED with refund status REQUESTED." +
			" (Using recent context only: Context truncated: showing last 10 of 11 messages.)"
		if result.Reply != want {
			t.Fatalf("expected reply %q, got %q", want, result.Reply)
		}
		if ctxSvc.lastMax != 10 {
			t.Fatalf("expected context window of 10, got %d", ctxSvc.lastMax)
		}
	})
}

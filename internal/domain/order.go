package domain

import "time"

const (
	OrderStatusPending   = "PENDING"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusDelivered = "DELIVERED"

	DeliveryStatusPreparing = "PREPARING"
	DeliveryStatusInTransit = "IN_TRANSIT"
	DeliveryStatusDelivered = "DELIVERED"

	PaymentStatusPending   = "PENDING"
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusFailed    = "FAILED"

	RefundStatusNone      = "NONE"
	RefundStatusRequested = "REQUESTED"
	RefundStatusApproved  = "APPROVED"
	RefundStatusRejected  = "REJECTED"
)

// Order es un pedido consultado por los agentes; Payments viene ordenado
// del más reciente al más antiguo.
type Order struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	ExternalID     string    `json:"externalId"`
	Status         string    `json:"status"`
	DeliveryStatus string    `json:"deliveryStatus"`
	TotalAmount    float64   `json:"totalAmount"`
	Currency       string    `json:"currency"`
	CreatedAt      time.Time `json:"createdAt"`
	Payments       []Payment `json:"payments,omitempty"`
}

// Payment registra un pago asociado a un pedido.
type Payment struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	OrderID      string    `json:"orderId"`
	Amount       float64   `json:"amount"`
	Currency     string    `json:"currency"`
	Status       string    `json:"status"`
	RefundStatus string    `json:"refundStatus"`
	CreatedAt    time.Time `json:"createdAt"`
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mass-chat/internal/domain"
)

type OrderRepository interface {
	ListByUserID(ctx context.Context, userID, externalID string) ([]domain.Order, error)
	ListByUserIDWithPayments(ctx context.Context, userID, externalID string) ([]domain.Order, error)
}

type PgOrderRepository struct {
	pool *pgxpool.Pool
}

func NewPgOrderRepository(pool *pgxpool.Pool) *PgOrderRepository {
	return &PgOrderRepository{pool: pool}
}

// ListByUserID devuelve los pedidos del usuario, filtrando por external_id si se indica.
func (r *PgOrderRepository) ListByUserID(ctx context.Context, userID, externalID string) ([]domain.Order, error) {
	const queryAll = `
		SELECT id, user_id, external_id, status, delivery_status, total_amount, currency, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	const queryByExternalID = `
		SELECT id, user_id, external_id, status, delivery_status, total_amount, currency, created_at
		FROM orders
		WHERE user_id = $1 AND external_id = $2
		ORDER BY created_at DESC
	`

	var (
		rows pgx.Rows
		err  error
	)
	if externalID != "" {
		rows, err = r.pool.Query(ctx, queryByExternalID, userID, externalID)
	} else {
		rows, err = r.pool.Query(ctx, queryAll, userID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		err = rows.Scan(
			&order.ID,
			&order.UserID,
			&order.ExternalID,
			&order.Status,
			&order.DeliveryStatus,
			&order.TotalAmount,
			&order.Currency,
			&order.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

// ListByUserIDWithPayments agrega a cada pedido sus pagos, del más reciente al más antiguo.
func (r *PgOrderRepository) ListByUserIDWithPayments(ctx context.Context, userID, externalID string) ([]domain.Order, error) {
	orders, err := r.ListByUserID(ctx, userID, externalID)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		payments, err := r.listPaymentsByOrderID(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Payments = payments
	}

	return orders, nil
}

func (r *PgOrderRepository) listPaymentsByOrderID(ctx context.Context, orderID string) ([]domain.Payment, error) {
	const query = `
		SELECT id, user_id, order_id, amount, currency, status, refund_status, created_at
		FROM payments
		WHERE order_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var payment domain.Payment
		err = rows.Scan(
			&payment.ID,
			&payment.UserID,
			&payment.OrderID,
			&payment.Amount,
			&payment.Currency,
			&payment.Status,
			&payment.RefundStatus,
			&payment.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return payments, nil
}

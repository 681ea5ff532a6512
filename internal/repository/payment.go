package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Vibhav-y/GitTool/internal/model"
)

var (
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrPaymentAlreadyPaid = errors.New("payment already paid")
)

func (r *Repository) CreatePaymentOrder(ctx context.Context, order *model.PaymentOrder) error {
	query := `
		INSERT INTO payments (user_id, provider_order_id, package_id, amount, currency, tokens, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		order.UserID,
		order.ProviderOrderID,
		order.PackageID,
		order.Amount,
		order.Currency,
		order.Tokens,
		order.Status,
	).Scan(&order.ID, &order.CreatedAt)
}

// GetPaymentOrder looks an order up by provider order id, scoped to its owner.
func (r *Repository) GetPaymentOrder(ctx context.Context, providerOrderID string, userID uuid.UUID) (*model.PaymentOrder, error) {
	var order model.PaymentOrder
	err := r.db.GetContext(ctx, &order,
		"SELECT * FROM payments WHERE provider_order_id = $1 AND user_id = $2",
		providerOrderID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &order, nil
}

// CompletePaymentOrder flips a created order to paid and credits its tokens
// in the same transaction. Only one caller can win the status update; the
// rest get ErrPaymentAlreadyPaid.
func (r *Repository) CompletePaymentOrder(ctx context.Context, providerOrderID string, userID uuid.UUID, providerPaymentID, description string) (*model.PaymentOrder, int64, error) {
	var (
		order        model.PaymentOrder
		balanceAfter int64
	)

	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &order, `
			UPDATE payments SET status = 'paid', provider_payment_id = $3, paid_at = NOW()
			WHERE provider_order_id = $1 AND user_id = $2 AND status = 'created'
			RETURNING *`,
			providerOrderID, userID, providerPaymentID)
		if errors.Is(err, sql.ErrNoRows) {
			var exists bool
			if err := tx.GetContext(ctx, &exists,
				"SELECT EXISTS(SELECT 1 FROM payments WHERE provider_order_id = $1 AND user_id = $2)",
				providerOrderID, userID); err != nil {
				return err
			}
			if !exists {
				return ErrPaymentNotFound
			}
			return ErrPaymentAlreadyPaid
		}
		if err != nil {
			return fmt.Errorf("failed to update payment: %w", err)
		}

		balanceAfter, err = creditTx(ctx, tx, userID, order.Tokens, model.TransactionTypePurchase, description)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return &order, balanceAfter, nil
}

// GetStaleCreatedOrders returns unpaid orders created between maxAge and
// grace ago, oldest first.
func (r *Repository) GetStaleCreatedOrders(ctx context.Context, grace, maxAge time.Duration) ([]model.PaymentOrder, error) {
	orders := []model.PaymentOrder{}
	now := time.Now()
	query := `
		SELECT * FROM payments
		WHERE status = 'created' AND created_at < $1 AND created_at > $2
		ORDER BY created_at ASC`
	err := r.db.SelectContext(ctx, &orders, query, now.Add(-grace), now.Add(-maxAge))
	return orders, err
}

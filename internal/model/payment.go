package model

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusCreated OrderStatus = "created"
	OrderStatusPaid    OrderStatus = "paid"
)

type PaymentOrder struct {
	ID                uuid.UUID   `json:"id" db:"id"`
	UserID            uuid.UUID   `json:"user_id" db:"user_id"`
	ProviderOrderID   string      `json:"provider_order_id" db:"provider_order_id"`
	ProviderPaymentID *string     `json:"provider_payment_id,omitempty" db:"provider_payment_id"`
	PackageID         string      `json:"package_id" db:"package_id"`
	Amount            int64       `json:"amount" db:"amount"` // minor currency units
	Currency          string      `json:"currency" db:"currency"`
	Tokens            int64       `json:"tokens" db:"tokens"`
	Status            OrderStatus `json:"status" db:"status"`
	CreatedAt         time.Time   `json:"created_at" db:"created_at"`
	PaidAt            *time.Time  `json:"paid_at,omitempty" db:"paid_at"`
}

type CreatedOrder struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"keyId"`
	Tokens   int64  `json:"tokens"`
}

type VerifiedPayment struct {
	Success     bool  `json:"success"`
	TokensAdded int64 `json:"tokensAdded"`
	NewBalance  int64 `json:"newBalance"`
}

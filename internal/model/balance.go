package model

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TransactionTypePurchase TransactionType = "purchase"
	TransactionTypeGenerate TransactionType = "generate"
	TransactionTypeChat     TransactionType = "chat"
	TransactionTypeRefund   TransactionType = "refund"
	TransactionTypeManual   TransactionType = "manual"
)

type TokenTransaction struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	UserID       uuid.UUID       `json:"user_id" db:"user_id"`
	Amount       int64           `json:"amount" db:"amount"` // positive = credit, negative = debit
	Type         TransactionType `json:"type" db:"type"`
	Description  string          `json:"description" db:"description"`
	BalanceAfter int64           `json:"balance_after" db:"balance_after"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

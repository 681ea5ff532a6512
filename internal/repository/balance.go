package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Vibhav-y/GitTool/internal/model"
)

var ErrInsufficientBalance = errors.New("insufficient balance")

// GetOrCreateBalance returns the user's balance, creating the row with grant
// tokens if it does not exist yet. The no-op update on conflict makes
// RETURNING yield the existing row when a concurrent request inserted it.
func (r *Repository) GetOrCreateBalance(ctx context.Context, userID uuid.UUID, grant int64) (int64, error) {
	var balance int64
	err := r.db.GetContext(ctx, &balance, `
		INSERT INTO user_tokens (user_id, balance) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET balance = user_tokens.balance
		RETURNING balance`,
		userID, grant)
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", userRowErr(err))
	}
	return balance, nil
}

// DebitTokens subtracts amount in a single conditional update so concurrent
// debits cannot take the balance below zero. A missing row is created with
// grant tokens first. On ErrInsufficientBalance nothing is written.
func (r *Repository) DebitTokens(ctx context.Context, userID uuid.UUID, amount int64, txType model.TransactionType, description string, grant int64) (int64, error) {
	var balanceAfter int64
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO user_tokens (user_id, balance) VALUES ($1, $2)
			ON CONFLICT (user_id) DO NOTHING`,
			userID, grant); err != nil {
			return fmt.Errorf("failed to ensure balance: %w", userRowErr(err))
		}

		err := tx.GetContext(ctx, &balanceAfter, `
			UPDATE user_tokens SET balance = balance - $2, updated_at = NOW()
			WHERE user_id = $1 AND balance >= $2
			RETURNING balance`,
			userID, amount)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInsufficientBalance
		}
		if err != nil {
			return fmt.Errorf("failed to update balance: %w", err)
		}

		return insertTransaction(ctx, tx, userID, -amount, txType, description, balanceAfter)
	})
	if err != nil {
		return 0, err
	}
	return balanceAfter, nil
}

// CreditTokens adds amount, creating the balance row if needed.
func (r *Repository) CreditTokens(ctx context.Context, userID uuid.UUID, amount int64, txType model.TransactionType, description string) (int64, error) {
	var balanceAfter int64
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		balanceAfter, err = creditTx(ctx, tx, userID, amount, txType, description)
		return err
	})
	if err != nil {
		return 0, err
	}
	return balanceAfter, nil
}

func creditTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, amount int64, txType model.TransactionType, description string) (int64, error) {
	var balanceAfter int64
	err := tx.GetContext(ctx, &balanceAfter, `
		INSERT INTO user_tokens (user_id, balance) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET balance = user_tokens.balance + EXCLUDED.balance, updated_at = NOW()
		RETURNING balance`,
		userID, amount)
	if err != nil {
		return 0, fmt.Errorf("failed to credit balance: %w", userRowErr(err))
	}

	if err := insertTransaction(ctx, tx, userID, amount, txType, description, balanceAfter); err != nil {
		return 0, err
	}
	return balanceAfter, nil
}

func insertTransaction(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, amount int64, txType model.TransactionType, description string, balanceAfter int64) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO token_transactions (user_id, amount, type, description, balance_after)
		VALUES ($1, $2, $3, $4, $5)`,
		userID, amount, txType, description, balanceAfter)
	if err != nil {
		return fmt.Errorf("failed to create transaction record: %w", err)
	}
	return nil
}

// GetTokenTransactions returns the newest transactions first.
func (r *Repository) GetTokenTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]model.TokenTransaction, error) {
	transactions := []model.TokenTransaction{}
	err := r.db.SelectContext(ctx, &transactions, `
		SELECT id, user_id, amount, type, description, balance_after, created_at
		FROM token_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		userID, limit)
	return transactions, err
}

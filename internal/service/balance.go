package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Vibhav-y/GitTool/internal/config"
	"github.com/Vibhav-y/GitTool/internal/model"
	"github.com/Vibhav-y/GitTool/internal/repository"
)

const (
	defaultTransactionLimit = 50
	maxTransactionLimit     = 100
)

// TokenService is the token ledger. Every balance change goes through it.
type TokenService struct {
	store    TokenStore
	settings SettingsStore
	cfg      config.TokensConfig
	log      *slog.Logger
}

func NewTokenService(store TokenStore, settings SettingsStore, cfg config.TokensConfig, log *slog.Logger) *TokenService {
	return &TokenService{store: store, settings: settings, cfg: cfg, log: log}
}

// DefaultGrant is the balance a user starts with. The settings table wins
// over config so admins can change it at runtime.
func (s *TokenService) DefaultGrant(ctx context.Context) int64 {
	v, err := s.settings.GetSettingInt64(ctx, repository.SettingSignupGrant)
	if err != nil {
		if !errors.Is(err, repository.ErrSettingNotFound) {
			s.log.Warn("failed to read signup grant setting", "err", err)
		}
		return s.cfg.DefaultGrant
	}
	if v < 0 {
		return s.cfg.DefaultGrant
	}
	return v
}

// GetBalance returns the user's balance, creating it with the default grant
// on first access.
func (s *TokenService) GetBalance(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.store.GetOrCreateBalance(ctx, userID, s.DefaultGrant(ctx))
}

// Debit removes amount tokens or fails with ErrInsufficientTokens, leaving
// balance and history untouched.
func (s *TokenService) Debit(ctx context.Context, userID uuid.UUID, amount int64, txType model.TransactionType, description string) (int64, error) {
	if amount <= 0 {
		return 0, invalid("Amount must be positive")
	}

	balance, err := s.store.DebitTokens(ctx, userID, amount, txType, description, s.DefaultGrant(ctx))
	if errors.Is(err, repository.ErrInsufficientBalance) {
		return 0, ErrInsufficientTokens
	}
	return balance, err
}

// Credit adds purchased tokens.
func (s *TokenService) Credit(ctx context.Context, userID uuid.UUID, amount int64, description string) (int64, error) {
	return s.credit(ctx, userID, amount, model.TransactionTypePurchase, description)
}

// Refund returns tokens debited for an operation that then failed.
func (s *TokenService) Refund(ctx context.Context, userID uuid.UUID, amount int64, description string) (int64, error) {
	return s.credit(ctx, userID, amount, model.TransactionTypeRefund, description)
}

// Grant is a manual credit made by an admin.
func (s *TokenService) Grant(ctx context.Context, userID uuid.UUID, amount int64, description string) (int64, error) {
	return s.credit(ctx, userID, amount, model.TransactionTypeManual, description)
}

func (s *TokenService) credit(ctx context.Context, userID uuid.UUID, amount int64, txType model.TransactionType, description string) (int64, error) {
	if amount <= 0 {
		return 0, invalid("Amount must be positive")
	}
	return s.store.CreditTokens(ctx, userID, amount, txType, description)
}

// ListTransactions returns token history, newest first
func (s *TokenService) ListTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]model.TokenTransaction, error) {
	if limit <= 0 {
		limit = defaultTransactionLimit
	}
	if limit > maxTransactionLimit {
		limit = maxTransactionLimit
	}
	return s.store.GetTokenTransactions(ctx, userID, limit)
}

package service

import (
	"context"
	"time"

	gh "github.com/google/go-github/v66/github"
	"github.com/google/uuid"

	"github.com/Vibhav-y/GitTool/internal/github"
	"github.com/Vibhav-y/GitTool/internal/model"
	"github.com/Vibhav-y/GitTool/internal/razorpay"
)

// The store interfaces below are all satisfied by *repository.Repository.

type TokenStore interface {
	GetOrCreateBalance(ctx context.Context, userID uuid.UUID, grant int64) (int64, error)
	DebitTokens(ctx context.Context, userID uuid.UUID, amount int64, txType model.TransactionType, description string, grant int64) (int64, error)
	CreditTokens(ctx context.Context, userID uuid.UUID, amount int64, txType model.TransactionType, description string) (int64, error)
	GetTokenTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]model.TokenTransaction, error)
}

type SettingsStore interface {
	GetSettingInt64(ctx context.Context, key string) (int64, error)
	SetSetting(ctx context.Context, key, value string) error
	GetAllSettings(ctx context.Context) (map[string]string, error)
}

type OrderStore interface {
	CreatePaymentOrder(ctx context.Context, order *model.PaymentOrder) error
	GetPaymentOrder(ctx context.Context, providerOrderID string, userID uuid.UUID) (*model.PaymentOrder, error)
	CompletePaymentOrder(ctx context.Context, providerOrderID string, userID uuid.UUID, providerPaymentID, description string) (*model.PaymentOrder, int64, error)
	GetStaleCreatedOrders(ctx context.Context, grace, maxAge time.Duration) ([]model.PaymentOrder, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type ProjectStore interface {
	CreateProject(ctx context.Context, p *model.Project) error
	GetProject(ctx context.Context, id, userID uuid.UUID) (*model.Project, error)
	ListProjects(ctx context.Context, userID uuid.UUID) ([]model.Project, error)
	UpdateProject(ctx context.Context, id, userID uuid.UUID, upd model.ProjectUpdate) (*model.Project, error)
	DeleteProject(ctx context.Context, id, userID uuid.UUID) error
	CreateSavedReadme(ctx context.Context, s *model.SavedReadme) error
}

type AdminStore interface {
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
	CreateAdmin(ctx context.Context, admin *model.Admin) error
	LogAdminAction(ctx context.Context, adminID uuid.UUID, action string, targetUserID *uuid.UUID, details interface{}) error
	GetAdminLogs(ctx context.Context, limit, offset int) ([]model.AdminLog, error)
	GetStats(ctx context.Context) (*model.AdminStats, error)
}

// GitHubAPI is implemented by *github.Client.
type GitHubAPI interface {
	FetchContext(ctx context.Context, token, owner, repo string) (*github.RepoContext, error)
	ListRepositories(ctx context.Context, token string) ([]*gh.Repository, error)
}

// Completer is implemented by *llm.Client.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// PaymentGateway is implemented by *razorpay.Client.
type PaymentGateway interface {
	KeyID() string
	CreateOrder(ctx context.Context, req razorpay.OrderRequest) (*razorpay.Order, error)
	FetchOrderPayments(ctx context.Context, orderID string) ([]razorpay.Payment, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

// CodeExchanger is implemented by *github.OAuth.
type CodeExchanger interface {
	ExchangeCode(ctx context.Context, code string) (string, error)
}

// Notifier is implemented by telegram.Bot.
type Notifier interface {
	SendPurchase(order *model.PaymentOrder, newBalance int64) error
}

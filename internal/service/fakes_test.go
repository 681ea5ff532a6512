package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	gh "github.com/google/go-github/v66/github"
	"github.com/google/uuid"

	"github.com/Vibhav-y/GitTool/internal/config"
	"github.com/Vibhav-y/GitTool/internal/github"
	"github.com/Vibhav-y/GitTool/internal/model"
	"github.com/Vibhav-y/GitTool/internal/razorpay"
	"github.com/Vibhav-y/GitTool/internal/repository"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTokensConfig() config.TokensConfig {
	return config.TokensConfig{DefaultGrant: 40, GenerateCost: 2, ChatCost: 1}
}

// memStore is an in-memory stand-in for the Postgres repository.
type memStore struct {
	mu           sync.Mutex
	balances     map[uuid.UUID]int64
	transactions []model.TokenTransaction
	orders       map[string]*model.PaymentOrder
	settings     map[string]string
	users        map[uuid.UUID]*model.User
	projects     map[uuid.UUID]*model.Project
	readmes      []model.SavedReadme
	admins       map[uuid.UUID]bool
	adminLogs    []model.AdminLog
}

func newMemStore() *memStore {
	return &memStore{
		balances: map[uuid.UUID]int64{},
		orders:   map[string]*model.PaymentOrder{},
		settings: map[string]string{},
		users:    map[uuid.UUID]*model.User{},
		projects: map[uuid.UUID]*model.Project{},
		admins:   map[uuid.UUID]bool{},
	}
}

func (m *memStore) balance(userID uuid.UUID) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[userID]
}

func (m *memStore) txFor(userID uuid.UUID) []model.TokenTransaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.TokenTransaction
	for _, tx := range m.transactions {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out
}

func (m *memStore) appendTx(userID uuid.UUID, amount int64, txType model.TransactionType, description string, after int64) {
	m.transactions = append(m.transactions, model.TokenTransaction{
		ID:           uuid.New(),
		UserID:       userID,
		Amount:       amount,
		Type:         txType,
		Description:  description,
		BalanceAfter: after,
		CreatedAt:    time.Now(),
	})
}

func (m *memStore) GetOrCreateBalance(_ context.Context, userID uuid.UUID, grant int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.balances[userID]; !ok {
		m.balances[userID] = grant
	}
	return m.balances[userID], nil
}

func (m *memStore) DebitTokens(_ context.Context, userID uuid.UUID, amount int64, txType model.TransactionType, description string, grant int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.balances[userID]; !ok {
		m.balances[userID] = grant
	}
	if m.balances[userID] < amount {
		return 0, repository.ErrInsufficientBalance
	}
	m.balances[userID] -= amount
	m.appendTx(userID, -amount, txType, description, m.balances[userID])
	return m.balances[userID], nil
}

func (m *memStore) CreditTokens(_ context.Context, userID uuid.UUID, amount int64, txType model.TransactionType, description string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creditLocked(userID, amount, txType, description), nil
}

func (m *memStore) creditLocked(userID uuid.UUID, amount int64, txType model.TransactionType, description string) int64 {
	m.balances[userID] += amount
	m.appendTx(userID, amount, txType, description, m.balances[userID])
	return m.balances[userID]
}

func (m *memStore) GetTokenTransactions(_ context.Context, userID uuid.UUID, limit int) ([]model.TokenTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.TokenTransaction
	for i := len(m.transactions) - 1; i >= 0 && len(out) < limit; i-- {
		if m.transactions[i].UserID == userID {
			out = append(out, m.transactions[i])
		}
	}
	return out, nil
}

func (m *memStore) GetSettingInt64(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.settings[key]
	if !ok {
		return 0, repository.ErrSettingNotFound
	}
	var n int64
	for _, r := range v {
		n = n*10 + int64(r-'0')
	}
	return n, nil
}

func (m *memStore) SetSetting(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[key] = value
	return nil
}

func (m *memStore) GetAllSettings(context.Context) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.settings))
	for k, v := range m.settings {
		out[k] = v
	}
	return out, nil
}

func (m *memStore) CreatePaymentOrder(_ context.Context, order *model.PaymentOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	order.ID = uuid.New()
	order.CreatedAt = time.Now()
	cp := *order
	m.orders[order.ProviderOrderID] = &cp
	return nil
}

func (m *memStore) GetPaymentOrder(_ context.Context, providerOrderID string, userID uuid.UUID) (*model.PaymentOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[providerOrderID]
	if !ok || o.UserID != userID {
		return nil, repository.ErrPaymentNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memStore) CompletePaymentOrder(_ context.Context, providerOrderID string, userID uuid.UUID, providerPaymentID, description string) (*model.PaymentOrder, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[providerOrderID]
	if !ok || o.UserID != userID {
		return nil, 0, repository.ErrPaymentNotFound
	}
	if o.Status != model.OrderStatusCreated {
		return nil, 0, repository.ErrPaymentAlreadyPaid
	}
	now := time.Now()
	o.Status = model.OrderStatusPaid
	o.ProviderPaymentID = &providerPaymentID
	o.PaidAt = &now
	balance := m.creditLocked(userID, o.Tokens, model.TransactionTypePurchase, description)
	cp := *o
	return &cp, balance, nil
}

func (m *memStore) GetStaleCreatedOrders(context.Context, time.Duration, time.Duration) ([]model.PaymentOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.PaymentOrder
	for _, o := range m.orders {
		if o.Status == model.OrderStatusCreated {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProviderOrderID < out[j].ProviderOrderID })
	return out, nil
}

func (m *memStore) CreateUser(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memStore) GetUser(_ context.Context, id uuid.UUID) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memStore) DeleteUser(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(m.users, id)
	delete(m.balances, id)
	for pid, p := range m.projects {
		if p.UserID == id {
			delete(m.projects, pid)
		}
	}
	return nil
}

func (m *memStore) CreateProject(_ context.Context, p *model.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	m.projects[p.ID] = &cp
	return nil
}

func (m *memStore) GetProject(_ context.Context, id, userID uuid.UUID) (*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok || p.UserID != userID {
		return nil, repository.ErrProjectNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) ListProjects(_ context.Context, userID uuid.UUID) ([]model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Project{}
	for _, p := range m.projects {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memStore) UpdateProject(_ context.Context, id, userID uuid.UUID, upd model.ProjectUpdate) (*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok || p.UserID != userID {
		return nil, repository.ErrProjectNotFound
	}
	if upd.Title != nil {
		p.Title = *upd.Title
	}
	if upd.Template != nil {
		p.Template = *upd.Template
	}
	if upd.GeneratedMarkdown != nil {
		p.GeneratedMarkdown = *upd.GeneratedMarkdown
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) DeleteProject(_ context.Context, id, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok || p.UserID != userID {
		return repository.ErrProjectNotFound
	}
	delete(m.projects, id)
	return nil
}

func (m *memStore) CreateSavedReadme(_ context.Context, s *model.SavedReadme) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = uuid.New()
	m.readmes = append(m.readmes, *s)
	return nil
}

func (m *memStore) IsAdmin(_ context.Context, userID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.admins[userID], nil
}

func (m *memStore) CreateAdmin(_ context.Context, admin *model.Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.admins[admin.UserID] = true
	return nil
}

func (m *memStore) LogAdminAction(_ context.Context, adminID uuid.UUID, action string, target *uuid.UUID, _ interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adminLogs = append(m.adminLogs, model.AdminLog{ID: uuid.New(), AdminID: adminID, Action: action, TargetUserID: target})
	return nil
}

func (m *memStore) GetAdminLogs(_ context.Context, limit, offset int) ([]model.AdminLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if offset >= len(m.adminLogs) {
		return []model.AdminLog{}, nil
	}
	end := offset + limit
	if end > len(m.adminLogs) {
		end = len(m.adminLogs)
	}
	return m.adminLogs[offset:end], nil
}

func (m *memStore) GetStats(context.Context) (*model.AdminStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &model.AdminStats{TotalUsers: len(m.users)}, nil
}

// fakeGitHub serves one canned repository.
type fakeGitHub struct {
	mu    sync.Mutex
	calls int
	ctx   *github.RepoContext
	err   error
}

func (f *fakeGitHub) FetchContext(_ context.Context, _, owner, repo string) (*github.RepoContext, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.ctx != nil {
		return f.ctx, nil
	}
	return &github.RepoContext{
		Info:          github.RepoInfo{Name: repo, HTMLURL: "https://github.com/" + owner + "/" + repo},
		Languages:     []string{"Go"},
		FileTree:      []string{"main.go", "go.mod"},
		RecentCommits: []github.Commit{},
		KeyFiles:      map[string]string{},
	}, nil
}

func (f *fakeGitHub) ListRepositories(context.Context, string) ([]*gh.Repository, error) {
	return []*gh.Repository{{Name: gh.String("demo")}}, nil
}

func (f *fakeGitHub) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeLLM records prompts and returns a fixed answer.
type fakeLLM struct {
	mu      sync.Mutex
	reply   string
	err     error
	systems []string
	prompts []string
}

func (f *fakeLLM) Complete(_ context.Context, system, user string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.systems = append(f.systems, system)
	f.prompts = append(f.prompts, user)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// fakeGateway signs with a fixed secret and hands out sequential order ids.
type fakeGateway struct {
	mu       sync.Mutex
	secret   string
	next     int
	requests []razorpay.OrderRequest
	payments map[string][]razorpay.Payment
	err      error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{secret: "rzp_secret", payments: map[string][]razorpay.Payment{}}
}

func (g *fakeGateway) KeyID() string { return "rzp_test_key" }

func (g *fakeGateway) CreateOrder(_ context.Context, req razorpay.OrderRequest) (*razorpay.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	g.next++
	g.requests = append(g.requests, req)
	return &razorpay.Order{ID: "order_" + string(rune('A'+g.next-1)), Amount: req.Amount, Currency: req.Currency}, nil
}

func (g *fakeGateway) FetchOrderPayments(_ context.Context, orderID string) ([]razorpay.Payment, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.payments[orderID], nil
}

func (g *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return razorpay.VerifySignature(g.secret, orderID, paymentID, signature)
}

type recordingNotifier struct {
	mu    sync.Mutex
	sent  []string
	fails bool
}

func (n *recordingNotifier) SendPurchase(order *model.PaymentOrder, _ int64) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, order.ProviderOrderID)
	if n.fails {
		return errors.New("telegram down")
	}
	return nil
}

package service

import (
	"context"
	"math/rand"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vibhav-y/GitTool/internal/model"
	"github.com/Vibhav-y/GitTool/internal/repository"
)

func newTokenService(store *memStore) *TokenService {
	return NewTokenService(store, store, testTokensConfig(), discardLogger())
}

func TestGetBalance_CreatesDefaultGrant(t *testing.T) {
	store := newMemStore()
	svc := newTokenService(store)
	userID := uuid.New()

	balance, err := svc.GetBalance(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(40), balance)

	store.settings[repository.SettingSignupGrant] = "25"
	balance, err = svc.GetBalance(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(25), balance)
}

func TestDebit_Scenario(t *testing.T) {
	store := newMemStore()
	svc := newTokenService(store)
	userID := uuid.New()
	store.balances[userID] = 5

	balance, err := svc.Debit(context.Background(), userID, 2, model.TransactionTypeGenerate, "Generated README for o/r")
	require.NoError(t, err)
	assert.Equal(t, int64(3), balance)

	txs := store.txFor(userID)
	require.Len(t, txs, 1)
	assert.Equal(t, int64(-2), txs[0].Amount)
	assert.Equal(t, model.TransactionTypeGenerate, txs[0].Type)
	assert.Equal(t, int64(3), txs[0].BalanceAfter)
}

func TestDebit_InsufficientLeavesStateUnchanged(t *testing.T) {
	store := newMemStore()
	svc := newTokenService(store)
	userID := uuid.New()
	store.balances[userID] = 1

	_, err := svc.Debit(context.Background(), userID, 2, model.TransactionTypeGenerate, "x")
	require.ErrorIs(t, err, ErrInsufficientTokens)
	assert.Equal(t, int64(1), store.balance(userID))
	assert.Empty(t, store.txFor(userID))
}

func TestDebit_MissingRowUsesGrant(t *testing.T) {
	store := newMemStore()
	svc := newTokenService(store)
	userID := uuid.New()

	balance, err := svc.Debit(context.Background(), userID, 1, model.TransactionTypeChat, "AI chat edit")
	require.NoError(t, err)
	assert.Equal(t, int64(39), balance)
}

func TestCredit_AppendsOneRow(t *testing.T) {
	store := newMemStore()
	svc := newTokenService(store)
	userID := uuid.New()
	store.balances[userID] = 7

	balance, err := svc.Credit(context.Background(), userID, 50, "Purchased 50 tokens")
	require.NoError(t, err)
	assert.Equal(t, int64(57), balance)

	txs := store.txFor(userID)
	require.Len(t, txs, 1)
	assert.Equal(t, int64(50), txs[0].Amount)
	assert.Equal(t, model.TransactionTypePurchase, txs[0].Type)
}

func TestAmountsMustBePositive(t *testing.T) {
	svc := newTokenService(newMemStore())
	userID := uuid.New()
	var verr *ValidationError

	_, err := svc.Debit(context.Background(), userID, 0, model.TransactionTypeChat, "x")
	require.ErrorAs(t, err, &verr)
	_, err = svc.Credit(context.Background(), userID, -5, "x")
	require.ErrorAs(t, err, &verr)
	_, err = svc.Grant(context.Background(), userID, 0, "x")
	require.ErrorAs(t, err, &verr)
}

func TestBalanceNeverNegative(t *testing.T) {
	store := newMemStore()
	svc := newTokenService(store)
	userID := uuid.New()
	store.balances[userID] = 40
	rng := rand.New(rand.NewSource(1))

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(amount int64, credit bool) {
			defer wg.Done()
			if credit {
				_, _ = svc.Credit(context.Background(), userID, amount, "c")
				return
			}
			_, _ = svc.Debit(context.Background(), userID, amount, model.TransactionTypeChat, "d")
		}(rng.Int63n(10)+1, rng.Intn(4) == 0)
	}
	wg.Wait()

	balance := store.balance(userID)
	assert.GreaterOrEqual(t, balance, int64(0))

	var sum int64 = 40
	for _, tx := range store.txFor(userID) {
		sum += tx.Amount
		assert.GreaterOrEqual(t, tx.BalanceAfter, int64(0))
	}
	assert.Equal(t, balance, sum)
}

func TestListTransactions_ClampsLimit(t *testing.T) {
	store := newMemStore()
	svc := newTokenService(store)
	userID := uuid.New()
	for i := 0; i < 120; i++ {
		_, err := svc.Credit(context.Background(), userID, 1, "c")
		require.NoError(t, err)
	}

	txs, err := svc.ListTransactions(context.Background(), userID, 0)
	require.NoError(t, err)
	assert.Len(t, txs, 50)

	txs, err = svc.ListTransactions(context.Background(), userID, 1000)
	require.NoError(t, err)
	assert.Len(t, txs, 100)
	assert.Equal(t, int64(120), txs[0].BalanceAfter)
}

package repository

import (
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewWithDB(sqlx.NewDb(db, "pgx")), mock
}

var paymentColumns = []string{
	"id", "user_id", "provider_order_id", "provider_payment_id", "package_id",
	"amount", "currency", "tokens", "status", "created_at", "paid_at",
}

func paymentRow(id, userID, orderID string, paymentID interface{}, status string, paidAt interface{}) []driver.Value {
	return []driver.Value{id, userID, orderID, paymentID, "starter", int64(9900), "INR", int64(50), status, time.Now(), paidAt}
}

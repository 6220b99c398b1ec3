package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/settlement-service/pkg/models"
)

func TestGetUserOrders(t *testing.T) {
	mockDB, mock, _ := sqlmock.New()
	defer mockDB.Close()

	store := PgStorage{DB: mockDB}
	ctx := context.Background()
	deadline := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT id, user_id, status, total, currency, payment_gateway, payment_id, payment_url, deadline, created_at\\s+FROM orders WHERE user_id = \\$1 ORDER BY created_at DESC").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "status", "total", "currency", "payment_gateway", "payment_id", "payment_url", "deadline", "created_at"}).
			AddRow("ord-1", 1, "pending", 19.99, "USD", "cryptopay", "inv-1", "https://pay.example/inv-1", deadline, time.Now()))

	mock.ExpectQuery("SELECT id, product_name, can_request_refund FROM order_items WHERE order_id = \\$1").
		WithArgs("ord-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_name", "can_request_refund"}).
			AddRow("item-1", "AI subscription, 1 month", true))

	orders, err := store.GetUserOrders(ctx, 1)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "ord-1", orders[0].ID)
	assert.Equal(t, models.OrderPending, orders[0].Status)
	require.NotNil(t, orders[0].Deadline)
	assert.Equal(t, deadline, *orders[0].Deadline)
	require.Len(t, orders[0].Items, 1)
	assert.True(t, orders[0].Items[0].CanRequestRefund)

	mock.ExpectQuery("FROM orders WHERE user_id = \\$1").
		WithArgs(2).
		WillReturnError(errors.New("db error"))

	orders, err = store.GetUserOrders(ctx, 2)
	assert.Error(t, err)
	assert.Nil(t, orders)
}

func TestGetOrderByIDNotFound(t *testing.T) {
	mockDB, mock, _ := sqlmock.New()
	defer mockDB.Close()

	store := PgStorage{DB: mockDB}

	mock.ExpectQuery("FROM orders WHERE id = \\$1").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	order, err := store.GetOrderByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, order)
}

func TestUpdateOrderStatus(t *testing.T) {
	mockDB, mock, _ := sqlmock.New()
	defer mockDB.Close()

	store := PgStorage{DB: mockDB}
	ctx := context.Background()

	mock.ExpectExec("UPDATE orders SET status = \\$1 WHERE id = \\$2").
		WithArgs(models.OrderPaid, "ord-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.UpdateOrderStatus(ctx, "ord-1", models.OrderPaid))

	mock.ExpectExec("UPDATE orders SET status = \\$1 WHERE id = \\$2").
		WithArgs(models.OrderPaid, "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, store.UpdateOrderStatus(ctx, "missing", models.OrderPaid), ErrNotFound)
}

func TestCreateWithdrawal(t *testing.T) {
	mockDB, mock, _ := sqlmock.New()
	defer mockDB.Close()

	store := PgStorage{DB: mockDB}
	ctx := context.Background()

	withdrawal := &models.WithdrawalRequest{
		ID:              "wd-1",
		UserID:          1,
		Amount:          50,
		BalanceCurrency: "USD",
		AmountToPay:     48.5,
		Status:          models.WithdrawalPending,
		PaymentDetails:  "TQmAddr",
		CreatedAt:       time.Now(),
	}

	t.Run("success reserves balance", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE users SET balance = balance - \\$1 WHERE id = \\$2 AND balance >= \\$1").
			WithArgs(50.0, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO withdrawals").
			WithArgs(withdrawal.ID, withdrawal.UserID, withdrawal.Amount, withdrawal.BalanceCurrency,
				withdrawal.AmountToPay, withdrawal.Status, withdrawal.PaymentDetails, withdrawal.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, store.CreateWithdrawal(ctx, withdrawal))
	})

	t.Run("insufficient funds rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE users SET balance = balance - \\$1 WHERE id = \\$2 AND balance >= \\$1").
			WithArgs(50.0, 1).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		assert.ErrorIs(t, store.CreateWithdrawal(ctx, withdrawal), ErrInsufficientFunds)
	})
}

func TestSetWithdrawalStatus(t *testing.T) {
	mockDB, mock, _ := sqlmock.New()
	defer mockDB.Close()

	store := PgStorage{DB: mockDB}
	ctx := context.Background()
	processedAt := time.Now()

	t.Run("rejection refunds the reservation", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT user_id, amount FROM withdrawals WHERE id = \\$1 FOR UPDATE").
			WithArgs("wd-1").
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "amount"}).AddRow(1, 50.0))
		mock.ExpectExec("UPDATE withdrawals SET status = \\$1").
			WithArgs(models.WithdrawalRejected, "duplicate", &processedAt, "wd-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE users SET balance = balance \\+ \\$1 WHERE id = \\$2").
			WithArgs(50.0, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, store.SetWithdrawalStatus(ctx, "wd-1", models.WithdrawalRejected, "duplicate", &processedAt))
	})

	t.Run("approval does not touch the balance", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT user_id, amount FROM withdrawals WHERE id = \\$1 FOR UPDATE").
			WithArgs("wd-2").
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "amount"}).AddRow(1, 50.0))
		mock.ExpectExec("UPDATE withdrawals SET status = \\$1").
			WithArgs(models.WithdrawalProcessing, "", nil, "wd-2").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, store.SetWithdrawalStatus(ctx, "wd-2", models.WithdrawalProcessing, "", nil))
	})

	t.Run("missing withdrawal", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT user_id, amount FROM withdrawals WHERE id = \\$1 FOR UPDATE").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		assert.ErrorIs(t, store.SetWithdrawalStatus(ctx, "missing", models.WithdrawalRejected, "", nil), ErrNotFound)
	})
}

func TestGetWithdrawalByID(t *testing.T) {
	mockDB, mock, _ := sqlmock.New()
	defer mockDB.Close()

	store := PgStorage{DB: mockDB}

	mock.ExpectQuery("FROM withdrawals WHERE id = \\$1").
		WithArgs("wd-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "amount", "balance_currency", "amount_to_pay", "status", "payment_details", "admin_comment", "processed_at", "created_at"}).
			AddRow("wd-1", 1, 50.0, "USD", 48.5, "PENDING", "TQmAddr", nil, nil, time.Now()))

	w, err := store.GetWithdrawalByID(context.Background(), "wd-1")
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalPending, w.Status)
	assert.Empty(t, w.AdminComment)
	assert.Nil(t, w.ProcessedAt)
}

func TestSetTicketStatus(t *testing.T) {
	mockDB, mock, _ := sqlmock.New()
	defer mockDB.Close()

	store := PgStorage{DB: mockDB}
	ctx := context.Background()

	mock.ExpectExec("UPDATE tickets SET status = \\$1").
		WithArgs(models.TicketRejected, "no proof of purchase", "tk-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.SetTicketStatus(ctx, "tk-1", models.TicketRejected, "no proof of purchase"))

	mock.ExpectExec("UPDATE tickets SET status = \\$1").
		WithArgs(models.TicketApproved, "", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, store.SetTicketStatus(ctx, "missing", models.TicketApproved, ""), ErrNotFound)
}

func TestGetUserBalance(t *testing.T) {
	mockDB, mock, _ := sqlmock.New()
	defer mockDB.Close()

	store := PgStorage{DB: mockDB}

	mock.ExpectQuery("SELECT balance, balance_currency FROM users WHERE id = \\$1").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"balance", "balance_currency"}).AddRow(120.5, "USD"))

	balance, err := store.GetUserBalance(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.Balance{Current: 120.5, Currency: "USD"}, balance)
}

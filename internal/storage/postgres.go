package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/settlement-service/pkg/logger"
	"github.com/settlement-service/pkg/models"
)

type PgStorage struct {
	DB *sql.DB
}

var pgInstance *PgStorage

func InitDB(dsn, migrationsDir string) error {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.Up(conn, migrationsDir); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}

	pgInstance = &PgStorage{DB: conn}
	logger.Log.Sugar().Info("database connection established")
	return nil
}

func GetPgStorage() *PgStorage {
	return pgInstance
}

func (s *PgStorage) CreateUser(ctx context.Context, user *models.User) error {
	err := s.DB.QueryRowContext(ctx,
		"INSERT INTO users (login, password_hash, role) VALUES ($1, $2, $3) RETURNING id",
		user.Login, user.Password, user.Role,
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("user creation failed: %w", err)
	}
	return nil
}

func (s *PgStorage) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User
	err := s.DB.QueryRowContext(ctx,
		"SELECT id, login, password_hash, role FROM users WHERE login = $1",
		login,
	).Scan(&user.ID, &user.Login, &user.Password, &user.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *PgStorage) GetUserBalance(ctx context.Context, userID int) (models.Balance, error) {
	var balance models.Balance
	err := s.DB.QueryRowContext(ctx,
		"SELECT balance, balance_currency FROM users WHERE id = $1",
		userID,
	).Scan(&balance.Current, &balance.Currency)
	if err != nil {
		return models.Balance{}, err
	}
	return balance, nil
}

func (s *PgStorage) GetUserOrders(ctx context.Context, userID int) ([]models.Order, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, user_id, status, total, currency, payment_gateway, payment_id, payment_url, deadline, created_at
		 FROM orders WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := s.getOrderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (s *PgStorage) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT id, user_id, status, total, currency, payment_gateway, payment_id, payment_url, deadline, created_at
		 FROM orders WHERE id = $1`,
		id,
	)
	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := s.getOrderItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var (
		order    models.Order
		gateway  sql.NullString
		payID    sql.NullString
		payURL   sql.NullString
		deadline sql.NullTime
	)
	err := row.Scan(&order.ID, &order.UserID, &order.Status, &order.Total, &order.Currency,
		&gateway, &payID, &payURL, &deadline, &order.CreatedAt)
	if err != nil {
		return nil, err
	}
	order.PaymentGateway = gateway.String
	order.PaymentID = payID.String
	order.PaymentURL = payURL.String
	if deadline.Valid {
		t := deadline.Time
		order.Deadline = &t
	}
	return &order, nil
}

func (s *PgStorage) getOrderItems(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT id, product_name, can_request_refund FROM order_items WHERE order_id = $1",
		orderID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.ProductName, &item.CanRequestRefund); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *PgStorage) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	res, err := s.DB.ExecContext(ctx,
		"UPDATE orders SET status = $1 WHERE id = $2",
		status, id,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetPendingOrderIDs returns pending orders whose deadline has not
// passed; derived-expired orders are left for the server-side expiry
// sweep, there is nothing to verify for them.
func (s *PgStorage) GetPendingOrderIDs(ctx context.Context) ([]string, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id FROM orders
		 WHERE status = 'pending' AND payment_id IS NOT NULL
		   AND (deadline IS NULL OR deadline > now())`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CreateWithdrawal reserves the amount and records the request in one
// transaction. The balance check rides on the conditional update, so two
// concurrent submissions cannot both pass.
func (s *PgStorage) CreateWithdrawal(ctx context.Context, withdrawal *models.WithdrawalRequest) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE users SET balance = balance - $1 WHERE id = $2 AND balance >= $1",
		withdrawal.Amount, withdrawal.UserID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInsufficientFunds
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO withdrawals (id, user_id, amount, balance_currency, amount_to_pay, status, payment_details, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		withdrawal.ID, withdrawal.UserID, withdrawal.Amount, withdrawal.BalanceCurrency,
		withdrawal.AmountToPay, withdrawal.Status, withdrawal.PaymentDetails, withdrawal.CreatedAt,
	)
	if err != nil {
		return err
	}
	return tx.Commit()
}

const withdrawalColumns = `id, user_id, amount, balance_currency, amount_to_pay, status, payment_details, admin_comment, processed_at, created_at`

func scanWithdrawal(row rowScanner) (*models.WithdrawalRequest, error) {
	var (
		w           models.WithdrawalRequest
		comment     sql.NullString
		processedAt sql.NullTime
	)
	err := row.Scan(&w.ID, &w.UserID, &w.Amount, &w.BalanceCurrency, &w.AmountToPay,
		&w.Status, &w.PaymentDetails, &comment, &processedAt, &w.CreatedAt)
	if err != nil {
		return nil, err
	}
	w.AdminComment = comment.String
	if processedAt.Valid {
		t := processedAt.Time
		w.ProcessedAt = &t
	}
	return &w, nil
}

func (s *PgStorage) GetUserWithdrawals(ctx context.Context, userID int) ([]models.WithdrawalRequest, error) {
	return s.queryWithdrawals(ctx,
		"SELECT "+withdrawalColumns+" FROM withdrawals WHERE user_id = $1 ORDER BY created_at DESC",
		userID,
	)
}

func (s *PgStorage) GetWithdrawals(ctx context.Context) ([]models.WithdrawalRequest, error) {
	return s.queryWithdrawals(ctx,
		"SELECT "+withdrawalColumns+" FROM withdrawals ORDER BY created_at DESC",
	)
}

func (s *PgStorage) queryWithdrawals(ctx context.Context, query string, args ...any) ([]models.WithdrawalRequest, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var withdrawals []models.WithdrawalRequest
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, err
		}
		withdrawals = append(withdrawals, *w)
	}
	return withdrawals, rows.Err()
}

func (s *PgStorage) GetWithdrawalByID(ctx context.Context, id string) (*models.WithdrawalRequest, error) {
	row := s.DB.QueryRowContext(ctx,
		"SELECT "+withdrawalColumns+" FROM withdrawals WHERE id = $1",
		id,
	)
	w, err := scanWithdrawal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return w, err
}

// SetWithdrawalStatus persists an adjudication. A rejection releases the
// reserved amount back to the user's balance in the same transaction.
// Once an admin comment is set it stays set; an action without a comment
// keeps the previous one.
func (s *PgStorage) SetWithdrawalStatus(ctx context.Context, id string, status models.WithdrawalStatus, comment string, processedAt *time.Time) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var (
		userID int
		amount float64
	)
	err = tx.QueryRowContext(ctx,
		"SELECT user_id, amount FROM withdrawals WHERE id = $1 FOR UPDATE",
		id,
	).Scan(&userID, &amount)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE withdrawals SET status = $1, admin_comment = COALESCE(NULLIF($2, ''), admin_comment), processed_at = $3
		 WHERE id = $4`,
		status, comment, processedAt, id,
	)
	if err != nil {
		return err
	}

	if status == models.WithdrawalRejected {
		_, err = tx.ExecContext(ctx,
			"UPDATE users SET balance = balance + $1 WHERE id = $2",
			amount, userID,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

const ticketColumns = `id, user_id, status, issue_type, message, credentials, order_id, item_id, admin_comment, created_at`

func scanTicket(row rowScanner) (*models.SupportTicket, error) {
	var (
		ticket      models.SupportTicket
		credentials sql.NullString
		orderID     sql.NullString
		itemID      sql.NullString
		comment     sql.NullString
	)
	err := row.Scan(&ticket.ID, &ticket.UserID, &ticket.Status, &ticket.IssueType, &ticket.Message,
		&credentials, &orderID, &itemID, &comment, &ticket.CreatedAt)
	if err != nil {
		return nil, err
	}
	ticket.Credentials = credentials.String
	ticket.OrderID = orderID.String
	ticket.ItemID = itemID.String
	ticket.AdminComment = comment.String
	return &ticket, nil
}

func (s *PgStorage) GetTickets(ctx context.Context) ([]models.SupportTicket, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT "+ticketColumns+" FROM tickets ORDER BY created_at DESC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []models.SupportTicket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, *ticket)
	}
	return tickets, rows.Err()
}

func (s *PgStorage) GetTicketByID(ctx context.Context, id string) (*models.SupportTicket, error) {
	row := s.DB.QueryRowContext(ctx,
		"SELECT "+ticketColumns+" FROM tickets WHERE id = $1",
		id,
	)
	ticket, err := scanTicket(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return ticket, err
}

func (s *PgStorage) SetTicketStatus(ctx context.Context, id string, status models.TicketStatus, comment string) error {
	res, err := s.DB.ExecContext(ctx,
		`UPDATE tickets SET status = $1, admin_comment = COALESCE(NULLIF($2, ''), admin_comment)
		 WHERE id = $3`,
		status, comment, id,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

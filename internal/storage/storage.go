package storage

import (
	"context"
	"errors"
	"time"

	"github.com/settlement-service/pkg/models"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

type StorageInterface interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	GetUserBalance(ctx context.Context, userID int) (models.Balance, error)

	GetUserOrders(ctx context.Context, userID int) ([]models.Order, error)
	GetOrderByID(ctx context.Context, id string) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error
	GetPendingOrderIDs(ctx context.Context) ([]string, error)

	CreateWithdrawal(ctx context.Context, withdrawal *models.WithdrawalRequest) error
	GetUserWithdrawals(ctx context.Context, userID int) ([]models.WithdrawalRequest, error)
	GetWithdrawals(ctx context.Context) ([]models.WithdrawalRequest, error)
	GetWithdrawalByID(ctx context.Context, id string) (*models.WithdrawalRequest, error)
	SetWithdrawalStatus(ctx context.Context, id string, status models.WithdrawalStatus, comment string, processedAt *time.Time) error

	GetTickets(ctx context.Context) ([]models.SupportTicket, error)
	GetTicketByID(ctx context.Context, id string) (*models.SupportTicket, error)
	SetTicketStatus(ctx context.Context, id string, status models.TicketStatus, comment string) error
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/settlement-service/internal/auth"
	"github.com/settlement-service/internal/fees"
	"github.com/settlement-service/internal/gateway"
	"github.com/settlement-service/internal/projection"
	"github.com/settlement-service/internal/review"
	"github.com/settlement-service/internal/storage"
	"github.com/settlement-service/pkg/logger"
	"github.com/settlement-service/pkg/models"
)

// ActionStatus is what handlers switch on to pick an HTTP code.
type ActionStatus int

const (
	StatusOK ActionStatus = iota
	StatusInvalid
	StatusConflict
	StatusNotFound
	StatusBusy
	StatusError
)

// OrderView pairs a raw order with its projection at the time of the
// request, so the presentation layer never derives state on its own.
type OrderView struct {
	models.Order
	View projection.Projection `json:"view"`
}

type ServiceInterface interface {
	UserExist(ctx context.Context, login string) (bool, error)
	RegisterUser(ctx context.Context, user *models.User) error
	AuthorizeUser(ctx context.Context, user *models.User) error

	GetOrders(ctx context.Context, userID int, tab projection.Tab) ([]OrderView, error)
	GetOrder(ctx context.Context, userID int, orderID string) (*OrderView, ActionStatus)
	VerifyOrderPayment(ctx context.Context, userID int, orderID string) (*gateway.VerifyResult, ActionStatus)

	GetBalance(ctx context.Context, userID int) (models.Balance, error)
	PreviewWithdrawal(amount float64) models.WithdrawalPreview
	CreateWithdrawal(ctx context.Context, userID int, req models.Withdraw) (ActionStatus, error)
	GetUserWithdrawals(ctx context.Context, userID int) ([]models.WithdrawalRequest, error)

	GetWithdrawals(ctx context.Context) ([]models.WithdrawalRequest, error)
	AdjudicateWithdrawal(ctx context.Context, id string, action review.WithdrawalAction, comment string) (*models.WithdrawalRequest, ActionStatus)
	GetTickets(ctx context.Context) ([]models.SupportTicket, error)
	ResolveTicket(ctx context.Context, id string, approve bool, comment string) (*models.SupportTicket, ActionStatus)
}

type SettlementService struct {
	db     storage.StorageInterface
	poller *gateway.Poller
	engine *fees.Engine
	now    func() time.Time

	withdrawalGuard *review.Guard
	ticketGuard     *review.Guard
}

// NewSettlementService wires the workflow core. reloadDelay is how long
// after a confirmed verification the order record is re-read and settled;
// the gateway's answer runs ahead of the order status, so the re-read is
// deliberately delayed.
func NewSettlementService(db storage.StorageInterface, verifier gateway.Verifier, engine *fees.Engine, reloadDelay time.Duration) *SettlementService {
	s := &SettlementService{
		db:              db,
		engine:          engine,
		now:             time.Now,
		withdrawalGuard: review.NewGuard(),
		ticketGuard:     review.NewGuard(),
	}
	s.poller = gateway.NewPoller(verifier, reloadDelay, s.settleConfirmedOrder)
	return s
}

func (s *SettlementService) UserExist(ctx context.Context, login string) (bool, error) {
	user, err := s.db.GetUserByLogin(ctx, login)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

func (s *SettlementService) RegisterUser(ctx context.Context, user *models.User) error {
	hash, err := auth.HashPassword(user.Password)
	if err != nil {
		return err
	}
	user.Password = hash
	if user.Role == "" {
		user.Role = models.RoleCustomer
	}
	return s.db.CreateUser(ctx, user)
}

func (s *SettlementService) AuthorizeUser(ctx context.Context, user *models.User) error {
	stored, err := s.db.GetUserByLogin(ctx, user.Login)
	if err != nil {
		return err
	}
	if stored == nil || !auth.CheckPassword(stored.Password, user.Password) {
		return errors.New("invalid login/password pair")
	}
	user.ID = stored.ID
	user.Role = stored.Role
	return nil
}

// settleConfirmedOrder runs once per confirmed verification. It re-reads
// the order and marks it paid only if it is still pending; a result
// arriving for an order that has moved on (or disappeared) is discarded.
func (s *SettlementService) settleConfirmedOrder(orderID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	order, err := s.db.GetOrderByID(ctx, orderID)
	if err != nil {
		logger.Log.Error("settle after confirmation failed", zap.String("order", orderID), zap.Error(err))
		return
	}
	if order.Status != models.OrderPending {
		return
	}
	if err := s.db.UpdateOrderStatus(ctx, orderID, models.OrderPaid); err != nil {
		logger.Log.Error("order status update failed", zap.String("order", orderID), zap.Error(err))
		return
	}
	logger.Log.Info("order settled as paid", zap.String("order", orderID))
}

func (s *SettlementService) GetOrders(ctx context.Context, userID int, tab projection.Tab) ([]OrderView, error) {
	orders, err := s.db.GetUserOrders(ctx, userID)
	if err != nil {
		return nil, err
	}

	// one now per evaluation pass: every projection in this response
	// agrees on what "expired" means
	now := s.now()
	filtered := projection.FilterOrders(orders, tab, now)

	views := make([]OrderView, 0, len(filtered))
	for _, order := range filtered {
		views = append(views, OrderView{Order: order, View: projection.Project(order, now)})
	}
	return views, nil
}

func (s *SettlementService) GetOrder(ctx context.Context, userID int, orderID string) (*OrderView, ActionStatus) {
	order, status := s.loadUserOrder(ctx, userID, orderID)
	if status != StatusOK {
		return nil, status
	}
	// the detail view shows suppressed orders too; the projection
	// explains why a derived-expired order cannot be paid
	return &OrderView{Order: *order, View: projection.Project(*order, s.now())}, StatusOK
}

func (s *SettlementService) loadUserOrder(ctx context.Context, userID int, orderID string) (*models.Order, ActionStatus) {
	order, err := s.db.GetOrderByID(ctx, orderID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, StatusNotFound
	}
	if err != nil {
		logger.Log.Error(err.Error())
		return nil, StatusError
	}
	if order.UserID != userID {
		return nil, StatusNotFound
	}
	return order, StatusOK
}

func (s *SettlementService) VerifyOrderPayment(ctx context.Context, userID int, orderID string) (*gateway.VerifyResult, ActionStatus) {
	order, status := s.loadUserOrder(ctx, userID, orderID)
	if status != StatusOK {
		return nil, status
	}

	result, err := s.poller.Verify(ctx, *order)
	switch {
	case errors.Is(err, gateway.ErrNotCheckable):
		return nil, StatusInvalid
	case errors.Is(err, gateway.ErrVerificationInFlight):
		return nil, StatusBusy
	case err != nil:
		return nil, StatusError
	}
	return result, StatusOK
}

// verifyPendingOrder is the QueueManager's entry point: same poller,
// same contract, no owner check because nothing user-facing is returned.
func (s *SettlementService) verifyPendingOrder(ctx context.Context, orderID string) error {
	order, err := s.db.GetOrderByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status != models.OrderPending {
		return nil
	}
	_, err = s.poller.Verify(ctx, *order)
	return err
}

func (s *SettlementService) GetBalance(ctx context.Context, userID int) (models.Balance, error) {
	return s.db.GetUserBalance(ctx, userID)
}

func (s *SettlementService) PreviewWithdrawal(amount float64) models.WithdrawalPreview {
	return s.engine.Preview(amount)
}

// CreateWithdrawal validates and records a PENDING withdrawal request.
// The returned error is the validation failure to show the user when the
// status is StatusInvalid.
func (s *SettlementService) CreateWithdrawal(ctx context.Context, userID int, req models.Withdraw) (ActionStatus, error) {
	balance, err := s.db.GetUserBalance(ctx, userID)
	if err != nil {
		logger.Log.Error(err.Error())
		return StatusError, nil
	}

	preview := s.engine.Preview(req.Amount)
	if err := s.engine.ValidateSubmission(req.Amount, balance.Current, balance.Currency, &preview, req.PaymentDetails); err != nil {
		return StatusInvalid, err
	}

	withdrawal := &models.WithdrawalRequest{
		ID:              uuid.NewString(),
		UserID:          userID,
		Amount:          req.Amount,
		BalanceCurrency: balance.Currency,
		AmountToPay:     preview.AmountNet,
		Status:          models.WithdrawalPending,
		PaymentDetails:  req.PaymentDetails,
		CreatedAt:       s.now(),
	}

	err = s.db.CreateWithdrawal(ctx, withdrawal)
	if errors.Is(err, storage.ErrInsufficientFunds) {
		// the balance moved between the read and the reservation
		return StatusConflict, nil
	}
	if err != nil {
		logger.Log.Error(err.Error())
		return StatusError, nil
	}

	logger.Log.Info("withdrawal submitted",
		zap.String("withdrawal", withdrawal.ID), zap.Int("user", userID), zap.Float64("amount", req.Amount))
	return StatusOK, nil
}

func (s *SettlementService) GetUserWithdrawals(ctx context.Context, userID int) ([]models.WithdrawalRequest, error) {
	return s.db.GetUserWithdrawals(ctx, userID)
}

func (s *SettlementService) GetWithdrawals(ctx context.Context) ([]models.WithdrawalRequest, error) {
	return s.db.GetWithdrawals(ctx)
}

// AdjudicateWithdrawal applies an admin action. The transition is checked
// against the item's current persisted status, so an action raced by
// another admin is refused rather than silently re-applied. On success
// the fresh record is returned for the operator's refreshed view.
func (s *SettlementService) AdjudicateWithdrawal(ctx context.Context, id string, action review.WithdrawalAction, comment string) (*models.WithdrawalRequest, ActionStatus) {
	if !s.withdrawalGuard.Begin(id) {
		return nil, StatusBusy
	}
	defer s.withdrawalGuard.End(id)

	withdrawal, err := s.db.GetWithdrawalByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, StatusNotFound
	}
	if err != nil {
		logger.Log.Error(err.Error())
		return nil, StatusError
	}

	next, err := review.NextWithdrawalStatus(withdrawal.Status, action)
	if err != nil {
		logger.Log.Warn("withdrawal transition refused",
			zap.String("withdrawal", id), zap.String("status", string(withdrawal.Status)), zap.String("action", string(action)))
		return nil, StatusConflict
	}

	var processedAt *time.Time
	if next == models.WithdrawalCompleted || next == models.WithdrawalRejected {
		t := s.now()
		processedAt = &t
	}

	if err := s.db.SetWithdrawalStatus(ctx, id, next, comment, processedAt); err != nil {
		logger.Log.Error(err.Error())
		return nil, StatusError
	}

	fresh, err := s.db.GetWithdrawalByID(ctx, id)
	if err != nil {
		logger.Log.Error(err.Error())
		return nil, StatusError
	}
	logger.Log.Info("withdrawal adjudicated",
		zap.String("withdrawal", id), zap.String("action", string(action)), zap.String("status", string(next)))
	return fresh, StatusOK
}

func (s *SettlementService) GetTickets(ctx context.Context) ([]models.SupportTicket, error) {
	return s.db.GetTickets(ctx)
}

func (s *SettlementService) ResolveTicket(ctx context.Context, id string, approve bool, comment string) (*models.SupportTicket, ActionStatus) {
	if !s.ticketGuard.Begin(id) {
		return nil, StatusBusy
	}
	defer s.ticketGuard.End(id)

	ticket, err := s.db.GetTicketByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, StatusNotFound
	}
	if err != nil {
		logger.Log.Error(err.Error())
		return nil, StatusError
	}

	next, err := review.ResolveTicketStatus(ticket.Status, approve)
	if err != nil {
		logger.Log.Warn("ticket transition refused",
			zap.String("ticket", id), zap.String("status", string(ticket.Status)))
		return nil, StatusConflict
	}

	if err := s.db.SetTicketStatus(ctx, id, next, comment); err != nil {
		logger.Log.Error(err.Error())
		return nil, StatusError
	}

	fresh, err := s.db.GetTicketByID(ctx, id)
	if err != nil {
		logger.Log.Error(err.Error())
		return nil, StatusError
	}
	return fresh, StatusOK
}

package gateway

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/settlement-service/internal/projection"
	"github.com/settlement-service/pkg/logger"
	"github.com/settlement-service/pkg/models"
)

var (
	ErrVerificationInFlight = errors.New("verification already in flight for this order")
	ErrNotCheckable         = errors.New("order payment cannot be verified")
)

// Verifier is the one outbound call the poller makes. Client satisfies
// it; tests substitute their own.
type Verifier interface {
	VerifyPayment(ctx context.Context, paymentID string) (*VerifyResult, error)
}

// Poller runs payment verifications on demand. It holds no timer of its
// own; the same Verify is what a timer-driven caller (see service.QueueManager)
// invokes, so swapping the trigger never changes the contract.
//
// At most one verification is in flight per order. The guard is scoped to
// the order id, so verifications for different orders proceed
// concurrently without interaction.
type Poller struct {
	verifier    Verifier
	reloadDelay time.Duration
	onConfirmed func(orderID string)

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewPoller wires the poller. onConfirmed fires once per confirmed
// verification, reloadDelay after the confirmation: the gateway saying
// "paid" does not mean the order's own status has caught up yet, so the
// re-read is deliberately delayed rather than immediate.
func NewPoller(verifier Verifier, reloadDelay time.Duration, onConfirmed func(orderID string)) *Poller {
	return &Poller{
		verifier:    verifier,
		reloadDelay: reloadDelay,
		onConfirmed: onConfirmed,
		inflight:    make(map[string]struct{}),
	}
}

func (p *Poller) begin(orderID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, busy := p.inflight[orderID]; busy {
		return false
	}
	p.inflight[orderID] = struct{}{}
	return true
}

func (p *Poller) end(orderID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.inflight, orderID)
}

// Verify checks the order's invoice with the gateway. On a confirmed
// payment it schedules the single delayed reload; on any other resolved
// state it returns the gateway's literal answer without touching order
// state; on failure it returns the error with the order untouched so the
// caller can re-enable the action.
func (p *Poller) Verify(ctx context.Context, order models.Order) (*VerifyResult, error) {
	if order.PaymentID == "" || !projection.IsVerifiableGateway(order.PaymentGateway) {
		return nil, ErrNotCheckable
	}

	if !p.begin(order.ID) {
		return nil, ErrVerificationInFlight
	}
	defer p.end(order.ID)

	result, err := p.verifier.VerifyPayment(ctx, order.PaymentID)
	if err != nil {
		logger.Log.Error("payment verification failed",
			zap.String("order", order.ID), zap.Error(err))
		return nil, err
	}

	if result.Confirmed() {
		logger.Log.Info("payment confirmed by gateway",
			zap.String("order", order.ID), zap.String("status", result.Status))
		orderID := order.ID
		time.AfterFunc(p.reloadDelay, func() {
			p.onConfirmed(orderID)
		})
	}

	return result, nil
}

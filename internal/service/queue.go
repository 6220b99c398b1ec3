package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/settlement-service/internal/gateway"
	"github.com/settlement-service/pkg/logger"
)

// QueueManager is the timer-driven face of the verification poller: it
// periodically sweeps pending orders and runs the exact same Verify the
// user's button does. The per-order in-flight guard inside the poller
// keeps the two triggers from overlapping.
type QueueManager struct {
	service         *SettlementService
	pendingInterval time.Duration
	workerPool      int
	jobChan         chan string
	stop            chan struct{}
}

func NewQueueManager(service *SettlementService, pendingInterval time.Duration, workerPool int) *QueueManager {
	return &QueueManager{
		service:         service,
		pendingInterval: pendingInterval,
		workerPool:      workerPool,
		jobChan:         make(chan string, 100),
		stop:            make(chan struct{}),
	}
}

func (q *QueueManager) Start() {
	for i := 0; i < q.workerPool; i++ {
		go q.worker(i)
	}
	go q.sweep()
}

func (q *QueueManager) Stop() {
	close(q.stop)
}

func (q *QueueManager) sweep() {
	ticker := time.NewTicker(q.pendingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-q.stop:
			close(q.jobChan)
			return
		case <-ticker.C:
			q.enqueuePendingOrders()
		}
	}
}

func (q *QueueManager) enqueuePendingOrders() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pending, err := q.service.db.GetPendingOrderIDs(ctx)
	if err != nil {
		logger.Log.Error("pending order sweep failed", zap.Error(err))
		return
	}

	for _, orderID := range pending {
		select {
		case q.jobChan <- orderID:
		default:
			// a full queue just means the next sweep picks it up
		}
	}
}

func (q *QueueManager) worker(id int) {
	for orderID := range q.jobChan {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		err := q.service.verifyPendingOrder(ctx, orderID)
		cancel()

		switch {
		case err == nil:
		case errors.Is(err, gateway.ErrVerificationInFlight):
			// the user beat us to it, nothing to do
		case errors.Is(err, gateway.ErrNotCheckable):
		default:
			logger.Log.Error("background verification failed",
				zap.Int("worker", id), zap.String("order", orderID), zap.Error(err))
		}
	}
}

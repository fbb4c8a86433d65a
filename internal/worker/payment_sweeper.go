package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/maxbelov/shopgate/internal/domain/errors"
	"github.com/maxbelov/shopgate/internal/domain/model"
	"github.com/maxbelov/shopgate/internal/metrics"
)

// StoreFacade exposes the subset of application functionality required by the sweeper.
type StoreFacade interface {
	PendingPayments(ctx context.Context, age time.Duration, limit int) ([]model.Order, error)
	CheckPayment(ctx context.Context, reference string) (*model.PaymentEvent, error)
	ReconcilePayment(ctx context.Context, event model.PaymentEvent) (int, error)
}

// PaymentSweeper re-checks overdue Pending orders against the processor.
// Webhook delivery is at-least-once but not guaranteed; the sweeper is the
// recovery path for deliveries that never arrived. It reuses the reconcile
// path, so its writes race safely with live webhook handling.
type PaymentSweeper struct {
	facade       StoreFacade
	pollInterval time.Duration
	pendingAge   time.Duration
	batchSize    int
	workers      int
	metrics      *metrics.Metrics
	logger       *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewPaymentSweeper constructs the sweeper worker pool.
func NewPaymentSweeper(facade StoreFacade, pollInterval, pendingAge time.Duration, batchSize, workers int, m *metrics.Metrics, logger *slog.Logger) *PaymentSweeper {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &PaymentSweeper{
		facade:       facade,
		pollInterval: pollInterval,
		pendingAge:   pendingAge,
		batchSize:    batchSize,
		workers:      workers,
		metrics:      m,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize*workers),
	}
}

// Start launches background sweeping.
func (s *PaymentSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(runCtx)
	}

	s.wg.Add(1)
	go s.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (s *PaymentSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *PaymentSweeper) dispatch(ctx context.Context) {
	defer s.wg.Done()
	defer close(s.jobs)
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fetchAndDispatch(ctx)
		}
	}
}

func (s *PaymentSweeper) fetchAndDispatch(ctx context.Context) {
	s.metrics.SweepRun()
	orders, err := s.facade.PendingPayments(ctx, s.pendingAge, s.batchSize)
	if err != nil {
		s.logger.Error("fetch pending orders failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case s.jobs <- order:
		}
	}
}

func (s *PaymentSweeper) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-s.jobs:
			if !ok {
				return
			}
			s.process(ctx, order)
		}
	}
}

func (s *PaymentSweeper) process(ctx context.Context, order model.Order) {
	event, err := s.facade.CheckPayment(ctx, order.PaymentReference)
	if err != nil {
		if errors.Is(err, domainErrors.ErrPaymentsDisabled) {
			return
		}
		s.logger.Error("check payment failed",
			slog.String("order_id", order.ID),
			slog.String("payment_reference", order.PaymentReference),
			slog.String("error", err.Error()),
		)
		return
	}
	if event == nil {
		// Still in flight; the next sweep picks it up again.
		return
	}

	updated, err := s.facade.ReconcilePayment(ctx, *event)
	if err != nil {
		s.logger.Error("sweep reconcile failed",
			slog.String("order_id", order.ID),
			slog.String("payment_reference", order.PaymentReference),
			slog.String("error", err.Error()),
		)
		return
	}
	if updated > 0 {
		s.logger.Info("sweep reconciled order",
			slog.String("order_id", order.ID),
			slog.String("payment_reference", order.PaymentReference),
			slog.String("event_type", string(event.Type)),
		)
	}
}

package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	domainErrors "github.com/maxbelov/shopgate/internal/domain/errors"
	"github.com/maxbelov/shopgate/internal/domain/model"
	"github.com/maxbelov/shopgate/internal/metrics"
	testhelpers "github.com/maxbelov/shopgate/internal/test"
)

func sweeperLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func sweeperMetrics() *metrics.Metrics {
	return metrics.NewWithRegisterer(prometheus.NewRegistry())
}

func TestNewPaymentSweeperDefaults(t *testing.T) {
	sweeper := NewPaymentSweeper(&testhelpers.SweeperFacadeStub{}, time.Second, time.Minute, 0, 0, sweeperMetrics(), sweeperLogger())
	if sweeper.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", sweeper.batchSize)
	}
	if sweeper.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", sweeper.workers)
	}
}

func waitForReconcile(t *testing.T, facade *testhelpers.SweeperFacadeStub) {
	t.Helper()
	deadline := time.After(500 * time.Millisecond)
	for {
		facade.Lock()
		done := len(facade.Reconciled) > 0
		facade.Unlock()
		if done {
			return
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for sweep reconciliation")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestPaymentSweeperReconcilesPendingOrder(t *testing.T) {
	facade := &testhelpers.SweeperFacadeStub{
		Pending: [][]model.Order{{{ID: "order-1", PaymentReference: "pi_1", Status: model.OrderStatusPending}}},
	}
	sweeper := NewPaymentSweeper(facade, 10*time.Millisecond, time.Minute, 1, 1, sweeperMetrics(), sweeperLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sweeper.Start(ctx)

	waitForReconcile(t, facade)
	sweeper.Stop()

	facade.Lock()
	defer facade.Unlock()
	if facade.Reconciled[0].Event.PaymentReference != "pi_1" {
		t.Fatalf("unexpected reconcile call %+v", facade.Reconciled[0])
	}
	if facade.Reconciled[0].Event.Type != model.PaymentEventSucceeded {
		t.Fatalf("unexpected event type %s", facade.Reconciled[0].Event.Type)
	}
}

func TestPaymentSweeperSkipsInFlightPayments(t *testing.T) {
	facade := &testhelpers.SweeperFacadeStub{
		Pending: [][]model.Order{{{ID: "order-1", PaymentReference: "pi_1", Status: model.OrderStatusPending}}},
		CheckFn: func(ctx context.Context, reference string) (*model.PaymentEvent, error) {
			return nil, nil
		},
	}
	sweeper := NewPaymentSweeper(facade, 10*time.Millisecond, time.Minute, 1, 1, sweeperMetrics(), sweeperLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sweeper.Start(ctx)
	time.Sleep(100 * time.Millisecond)
	sweeper.Stop()

	facade.Lock()
	defer facade.Unlock()
	if len(facade.Reconciled) != 0 {
		t.Fatalf("expected no reconciliation for in-flight payment, got %d", len(facade.Reconciled))
	}
}

func TestPaymentSweeperToleratesDisabledPayments(t *testing.T) {
	facade := &testhelpers.SweeperFacadeStub{
		Pending: [][]model.Order{{{ID: "order-1", PaymentReference: "pi_1", Status: model.OrderStatusPending}}},
		CheckFn: func(ctx context.Context, reference string) (*model.PaymentEvent, error) {
			return nil, domainErrors.ErrPaymentsDisabled
		},
	}
	sweeper := NewPaymentSweeper(facade, 10*time.Millisecond, time.Minute, 1, 1, sweeperMetrics(), sweeperLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sweeper.Start(ctx)
	time.Sleep(100 * time.Millisecond)
	sweeper.Stop()

	facade.Lock()
	defer facade.Unlock()
	if len(facade.Reconciled) != 0 {
		t.Fatalf("expected no reconciliation when payments disabled, got %d", len(facade.Reconciled))
	}
}

func TestPaymentSweeperSurvivesFetchErrors(t *testing.T) {
	calls := 0
	facade := &testhelpers.SweeperFacadeStub{}
	facade.PendingFn = func(ctx context.Context, age time.Duration, limit int) ([]model.Order, error) {
		facade.Lock()
		defer facade.Unlock()
		calls++
		if calls == 1 {
			return nil, errors.New("storage down")
		}
		return nil, nil
	}

	sweeper := NewPaymentSweeper(facade, 10*time.Millisecond, time.Minute, 1, 1, sweeperMetrics(), sweeperLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sweeper.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for {
		facade.Lock()
		recovered := calls >= 2
		facade.Unlock()
		if recovered {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for sweep to recover")
		case <-time.After(10 * time.Millisecond):
		}
	}
	sweeper.Stop()
}

func TestPaymentSweeperStopWithoutStart(t *testing.T) {
	sweeper := NewPaymentSweeper(&testhelpers.SweeperFacadeStub{}, time.Second, time.Minute, 1, 1, sweeperMetrics(), sweeperLogger())
	sweeper.Stop()
}

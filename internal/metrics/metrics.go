package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks webhook delivery and reconciliation outcomes.
type Metrics struct {
	eventsReceived    prometheus.Counter
	eventsHandled     prometheus.Counter
	eventsIgnored     prometheus.Counter
	eventsRejected    prometheus.Counter
	ordersReconciled  *prometheus.CounterVec
	reconcileFailures prometheus.Counter
	missingOrders     prometheus.Counter
	sweepRuns         prometheus.Counter
	webhookDuration   prometheus.Histogram
}

// New registers metrics on the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers metrics on the provided registerer; tests pass
// an isolated registry.
func NewWithRegisterer(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &Metrics{
		eventsReceived: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shopgate_webhook_events_received_total",
			Help: "Total number of webhook deliveries received",
		}),
		eventsHandled: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shopgate_webhook_events_handled_total",
			Help: "Total number of webhook events routed to a handler",
		}),
		eventsIgnored: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shopgate_webhook_events_ignored_total",
			Help: "Total number of webhook events of unhandled kinds",
		}),
		eventsRejected: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shopgate_webhook_events_rejected_total",
			Help: "Total number of webhook deliveries failing signature verification",
		}),
		ordersReconciled: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "shopgate_orders_reconciled_total",
			Help: "Total number of orders moved by payment events, by resulting status",
		}, []string{"status"}),
		reconcileFailures: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shopgate_reconcile_failures_total",
			Help: "Total number of reconcile attempts failing on persistence",
		}),
		missingOrders: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shopgate_reconcile_missing_orders_total",
			Help: "Total number of payment events with no matching order",
		}),
		sweepRuns: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shopgate_payment_sweep_runs_total",
			Help: "Total number of pending payment sweep iterations",
		}),
		webhookDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "shopgate_webhook_handle_duration_seconds",
			Help:    "Duration of webhook delivery handling in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) EventReceived() { m.eventsReceived.Inc() }
func (m *Metrics) EventHandled() { m.eventsHandled.Inc() }
func (m *Metrics) EventIgnored() { m.eventsIgnored.Inc() }
func (m *Metrics) EventRejected() { m.eventsRejected.Inc() }
func (m *Metrics) ReconcileFailed() { m.reconcileFailures.Inc() }
func (m *Metrics) OrderMissing() { m.missingOrders.Inc() }
func (m *Metrics) SweepRun() { m.sweepRuns.Inc() }

// OrdersReconciled records n orders moved into the given status.
func (m *Metrics) OrdersReconciled(status string, n int) {
	if n > 0 {
		m.ordersReconciled.WithLabelValues(status).Add(float64(n))
	}
}

// ObserveWebhookDuration records total handling time of one delivery.
func (m *Metrics) ObserveWebhookDuration(d time.Duration) {
	m.webhookDuration.Observe(d.Seconds())
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	c := prometheus.NewCounter(opts)
	if err := registerer.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector.(prometheus.Counter)
		}
		panic(err)
	}
	return c
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector.(*prometheus.CounterVec)
		}
		panic(err)
	}
	return c
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	h := prometheus.NewHistogram(opts)
	if err := registerer.Register(h); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector.(prometheus.Histogram)
		}
		panic(err)
	}
	return h
}

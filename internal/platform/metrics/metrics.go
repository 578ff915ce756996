package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

const namespace = "ledger"

// Recorder holds the ledger's Prometheus collectors.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	mutations       *prometheus.CounterVec
	mutationAmounts *prometheus.CounterVec
	operations      *prometheus.CounterVec
	driftedAccounts prometheus.Gauge
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Number of atomic balance or commitment increments applied.",
		}, []string{"field"}),
		mutationAmounts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutation_amount_total",
			Help:      "Sum of absolute increment amounts applied, in currency units.",
		}, []string{"field"}),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "record_operations_total",
			Help:      "Number of committed record operations by entity and operation.",
		}, []string{"entity", "op"}),
		driftedAccounts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reconcile_drifted_accounts",
			Help:      "Accounts whose stored totals differed from their records at the last reconciliation.",
		}),
	}
	r.registry.MustRegister(r.mutations, r.mutationAmounts, r.operations, r.driftedAccounts)
	return r
}

// Registry exposes the underlying registry, e.g. for gathering in tests.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveMutation counts one increment on field ("balance" or "commitment").
func (r *Recorder) ObserveMutation(field string, delta decimal.Decimal) {
	if r == nil {
		return
	}
	r.mutations.WithLabelValues(field).Inc()
	r.mutationAmounts.WithLabelValues(field).Add(delta.Abs().InexactFloat64())
}

// ObserveOperation counts a committed create, update or delete.
func (r *Recorder) ObserveOperation(entity, op string) {
	if r == nil {
		return
	}
	r.operations.WithLabelValues(entity, op).Inc()
}

// SetDriftedAccounts records the outcome of a reconciliation run.
func (r *Recorder) SetDriftedAccounts(n int) {
	if r == nil {
		return
	}
	r.driftedAccounts.Set(float64(n))
}

// WriteTextfile writes the registry in the text exposition format for the
// node exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

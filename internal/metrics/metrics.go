// Package metrics exposes ledger processing counters to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"payments/ledger"
)

const namespace = "payments"

// Recorder is safe for concurrent use. A nil *Recorder records nothing.
type Recorder struct {
	applied  *prometheus.CounterVec
	rejected *prometheus.CounterVec
	funds    *prometheus.GaugeVec
	clients  *prometheus.GaugeVec
	duration prometheus.Histogram
}

func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		applied: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transactions_applied_total",
				Help:      "Total number of transactions applied to the ledger",
			},
			[]string{"type"},
		),
		rejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transactions_rejected_total",
				Help:      "Total number of transactions rejected by the ledger",
			},
			[]string{"type", "reason"},
		),
		funds: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "funds",
				Help:      "Funds across all clients at the end of the run",
			},
			[]string{"state"},
		),
		clients: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "clients",
				Help:      "Clients with at least one deposit or withdrawal",
			},
			[]string{"status"},
		),
		duration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Duration of a full ledger run",
				Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2, 5, 10, 30},
			},
		),
	}
}

func (r *Recorder) Applied(txType string) {
	if r == nil {
		return
	}
	r.applied.WithLabelValues(txType).Inc()
}

func (r *Recorder) Rejected(txType string, err error) {
	if r == nil {
		return
	}
	r.rejected.WithLabelValues(txType, ledger.Reason(err)).Inc()
}

// ObserveStatements sets the funds and client gauges. Sums are taken in decimal so
// they cannot overflow before the final float conversion.
func (r *Recorder) ObserveStatements(statements []ledger.Statement) {
	if r == nil {
		return
	}

	available, held, total := decimal.Zero, decimal.Zero, decimal.Zero
	var locked int
	for _, s := range statements {
		available = available.Add(s.Available.Decimal())
		held = held.Add(s.Held.Decimal())
		total = total.Add(s.Available.Decimal()).Add(s.Held.Decimal())
		if s.Locked {
			locked++
		}
	}

	r.funds.WithLabelValues("available").Set(available.InexactFloat64())
	r.funds.WithLabelValues("held").Set(held.InexactFloat64())
	r.funds.WithLabelValues("total").Set(total.InexactFloat64())
	r.clients.WithLabelValues("active").Set(float64(len(statements) - locked))
	r.clients.WithLabelValues("locked").Set(float64(locked))
}

func (r *Recorder) ObserveRun(elapsed time.Duration) {
	if r == nil {
		return
	}
	r.duration.Observe(elapsed.Seconds())
}

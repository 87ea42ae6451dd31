package executor

import (
	"go.uber.org/zap"

	"payments/internal/metrics"
	"payments/ledger"
)

// Options are shared by the executor implementations.
type Options struct {
	Logger  *zap.Logger
	Metrics *metrics.Recorder
}

type Option func(*Options)

func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

func WithMetrics(recorder *metrics.Recorder) Option {
	return func(o *Options) {
		o.Metrics = recorder
	}
}

func NewOptions(opts ...Option) Options {
	o := Options{Logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Apply runs tx against its account in table and records the outcome in report.
func (o Options) Apply(table *ledger.Table, seq int, tx Transaction, report *Report) {
	if err := tx.Apply(table.Account(tx.Client())); err != nil {
		o.Logger.Debug("skipping failed transaction",
			zap.Int("seq", seq),
			zap.String("type", tx.Type()),
			zap.Uint16("client", uint16(tx.Client())),
			zap.Error(err))
		o.Metrics.Rejected(tx.Type(), err)
		report.Reject(seq, tx, err)
		return
	}
	o.Metrics.Applied(tx.Type())
	report.Applied++
}

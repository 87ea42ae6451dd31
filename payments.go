// Package payments runs CSV transaction records through the client ledger and renders
// the resulting account statements.
package payments

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"payments/executor"
	"payments/executor/parallel"
	"payments/executor/serial"
	"payments/internal/config"
	"payments/internal/csvio"
	"payments/internal/metrics"
	"payments/ledger"
)

type Engine struct {
	executor executor.Executor
	table    *ledger.Table
	logger   *zap.Logger
	metrics  *metrics.Recorder
}

// NewEngine builds an engine with an empty ledger. logger and recorder may be nil.
func NewEngine(cfg *config.Config, logger *zap.Logger, recorder *metrics.Recorder) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := []executor.Option{executor.WithLogger(logger), executor.WithMetrics(recorder)}

	var exec executor.Executor
	switch cfg.Executor {
	case config.ExecutorParallel:
		exec = parallel.NewExecutor(cfg.Workers, cfg.QueueSize, opts...)
	default:
		exec = serial.NewExecutor(opts...)
	}

	return &Engine{
		executor: exec,
		table:    ledger.NewTable(ledger.WithLockPolicy(cfg.LockPolicy)),
		logger:   logger,
		metrics:  recorder,
	}
}

// Run applies the transactions read from in and writes the statements of every client
// to out. Successive runs accumulate into the same ledger.
func (e *Engine) Run(ctx context.Context, in io.Reader, out io.Writer) (executor.Report, error) {
	start := time.Now()

	report, err := e.executor.Execute(ctx, csvio.NewReader(in), e.table)
	if err != nil {
		return report, err
	}

	statements := e.table.Statements()
	e.metrics.ObserveStatements(statements)
	e.metrics.ObserveRun(time.Since(start))

	if err := csvio.WriteStatements(out, statements); err != nil {
		return report, fmt.Errorf("write statements: %w", err)
	}

	e.logger.Info("ledger run complete",
		zap.Int("clients", len(statements)),
		zap.Int("applied", report.Applied),
		zap.Int("rejected", len(report.Rejected)),
		zap.Duration("elapsed", time.Since(start)))

	return report, nil
}

func (e *Engine) Table() *ledger.Table {
	return e.table
}

package serial

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"payments/executor"
	"payments/ledger"
)

// Executor applies transactions one at a time, in source order.
type Executor struct {
	opts executor.Options
}

var _ executor.Executor = &Executor{}

func NewExecutor(opts ...executor.Option) *Executor {
	return &Executor{opts: executor.NewOptions(opts...)}
}

func (e *Executor) Execute(ctx context.Context, src executor.Source, table *ledger.Table) (executor.Report, error) {
	var report executor.Report

	for seq := 0; ; seq++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		tx, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return report, fmt.Errorf("read transaction %d: %w", seq, err)
		}

		e.opts.Apply(table, seq, tx, &report)
	}

	e.opts.Logger.Info("serial execution finished",
		zap.Int("applied", report.Applied),
		zap.Int("rejected", len(report.Rejected)))

	return report, nil
}

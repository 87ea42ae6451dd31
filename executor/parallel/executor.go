package parallel

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"payments/executor"
	"payments/ledger"
)

const DefaultQueueSize = 1024

// Executor spreads transactions over a fixed set of workers by client id.
//
// A single dispatcher reads the source in order and every client maps to exactly one
// worker queue, so transactions of the same client are applied in source order while
// different clients proceed concurrently.
type Executor struct {
	nWorkers  int
	queueSize int
	opts      executor.Options
}

var _ executor.Executor = &Executor{}

func NewExecutor(nWorkers, queueSize int, opts ...executor.Option) *Executor {
	if nWorkers < 1 {
		nWorkers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	return &Executor{
		nWorkers:  nWorkers,
		queueSize: queueSize,
		opts:      executor.NewOptions(opts...),
	}
}

func (e *Executor) Execute(ctx context.Context, src executor.Source, table *ledger.Table) (executor.Report, error) {
	g, ctx := errgroup.WithContext(ctx)

	queues := make([]chan indexedTransaction, e.nWorkers)
	reports := make([]executor.Report, e.nWorkers)
	for i := range queues {
		queues[i] = make(chan indexedTransaction, e.queueSize)
		worker := executionWorker{table: table, opts: e.opts}
		g.Go(func() error {
			reports[i] = worker.execute(queues[i])
			return nil
		})
	}

	g.Go(func() error {
		defer func() {
			for _, q := range queues {
				close(q)
			}
		}()
		return dispatch(ctx, src, queues)
	})

	err := g.Wait()
	report := executor.Merge(reports...)
	if err != nil {
		return report, err
	}

	e.opts.Logger.Info("parallel execution finished",
		zap.Int("workers", e.nWorkers),
		zap.Int("applied", report.Applied),
		zap.Int("rejected", len(report.Rejected)))

	return report, nil
}

func dispatch(ctx context.Context, src executor.Source, queues []chan indexedTransaction) error {
	for seq := 0; ; seq++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		tx, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read transaction %d: %w", seq, err)
		}

		select {
		case queues[shard(tx.Client(), len(queues))] <- indexedTransaction{seq: seq, transaction: tx}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func shard(client ledger.ClientID, nWorkers int) int {
	return int(client) % nWorkers
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"payments"
	"payments/internal/config"
	"payments/internal/logging"
	"payments/internal/metrics"
	"payments/ledger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "payments:", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	fs := flag.NewFlagSet("payments", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: payments [flags] transactions.csv")
		fs.PrintDefaults()
	}
	fs.StringVar(&cfg.Executor, "executor", cfg.Executor, "execution strategy: serial or parallel")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of workers for the parallel executor")
	lockPolicy := fs.String("lock-policy", cfg.LockPolicy.String(), "operations rejected on locked accounts: all or withdrawals")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("expected exactly one input file")
	}
	if cfg.LockPolicy, err = ledger.ParseLockPolicy(*lockPolicy); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("run_id", ulid.Make().String()))

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	reg := prometheus.NewRegistry()
	engine := payments.NewEngine(cfg, logger, metrics.NewRecorder(reg))

	logger.Debug("starting ledger run",
		zap.String("input", fs.Arg(0)),
		zap.String("executor", cfg.Executor),
		zap.Int("workers", cfg.Workers),
		zap.Stringer("lock_policy", cfg.LockPolicy))

	if _, err := engine.Run(ctx, f, stdout); err != nil {
		logger.Error("ledger run failed", zap.Error(err))
		return err
	}

	if cfg.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsFile, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

// Package engine is the in-process entry point: register accounts, submit
// trades, query exposure and run the processing loop.
package engine

import (
	"context"
	"time"

	"github.com/rustyeddy/tradegate/account"
	"github.com/rustyeddy/tradegate/metrics"
	"github.com/rustyeddy/tradegate/processor"
	"github.com/rustyeddy/tradegate/queue"
	"github.com/rustyeddy/tradegate/trade"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Engine owns one account store, one queue and the single processor that
// drains it. Nothing here is global; run as many engines as you like.
type Engine struct {
	store    *account.Store
	queue    *queue.Queue
	proc     *processor.Processor
	reporter *metrics.Reporter
	log      *zap.Logger
}

type Options struct {
	Logger       *zap.Logger
	PollInterval time.Duration
	// Observers get every outcome, in processing order.
	Observers []processor.Observer
}

func New(opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	e := &Engine{
		store: account.NewStore(),
		queue: queue.New(),
		log:   log,
	}
	e.reporter = metrics.NewReporter(e.store)
	e.proc = processor.New(e.store, e.queue,
		processor.WithLogger(log.Named("processor")),
		processor.WithPollInterval(opts.PollInterval),
		processor.WithObserver(processor.Observers(opts.Observers)),
	)
	return e
}

// RegisterAccount adds a flat account. It fails with
// account.ErrDuplicateAccount if id is taken.
func (e *Engine) RegisterAccount(id string, balance, maxExposure, stopLoss decimal.Decimal) error {
	if err := e.store.Register(account.New(id, balance, maxExposure, stopLoss)); err != nil {
		return err
	}
	e.log.Info("account registered",
		zap.String("account", id),
		zap.Stringer("balance", balance),
		zap.Stringer("max_exposure", maxExposure),
		zap.Stringer("stop_loss", stopLoss),
	)
	return nil
}

// SubmitTrade queues a trade and returns at once. The result arrives on
// the observers. The only error is trade.ErrInvalidTrade for malformed
// input; unknown accounts are reported as an AccountNotFound outcome.
func (e *Engine) SubmitTrade(symbol string, price, quantity decimal.Decimal, accountID string) error {
	t, err := trade.New(symbol, price, quantity)
	if err != nil {
		return err
	}
	e.queue.Submit(t, accountID)
	return nil
}

// QueryRiskExposure returns exposure / max exposure for id.
func (e *Engine) QueryRiskExposure(id string) (decimal.Decimal, error) {
	return e.reporter.RiskExposureRatio(id)
}

// Account returns a snapshot of id.
func (e *Engine) Account(id string) (account.Account, error) {
	return e.store.Snapshot(id)
}

func (e *Engine) Start(ctx context.Context) error {
	return e.proc.Start(ctx)
}

// Stop halts the processor and waits for it, unless called from an
// observer, where it only requests the stop.
func (e *Engine) Stop() {
	e.proc.Stop()
}

// Flush waits until every trade submitted before the call has an outcome.
// The processor must be running for Flush to make progress.
func (e *Engine) Flush(ctx context.Context) error {
	target := e.queue.Submitted()

	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()

	for e.proc.Processed() < target {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

func (e *Engine) Reporter() *metrics.Reporter { return e.reporter }

// Accounts exposes the read side of the store for metrics collectors.
func (e *Engine) Accounts() metrics.Snapshotter { return e.store }

func (e *Engine) Pending() int { return e.queue.Len() }

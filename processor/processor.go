// Package processor drains the trade queue and applies risk-checked trades
// to accounts, one entry at a time.
package processor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rustyeddy/tradegate/account"
	"github.com/rustyeddy/tradegate/queue"
	"github.com/rustyeddy/tradegate/risk"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrAlreadyRunning = errors.New("processor already running")

// DefaultPollInterval bounds how long an idle processor can miss a wake-up.
const DefaultPollInterval = 10 * time.Millisecond

// Processor is the single consumer of a queue.
//
// At most one loop goroutine runs per Processor; running two processors on
// the same queue breaks FIFO application and is not supported.
type Processor struct {
	store    *account.Store
	queue    *queue.Queue
	observer Observer
	log      *zap.Logger
	poll     time.Duration
	now      func() time.Time

	state      atomic.Int32
	processed  atomic.Uint64
	inObserver atomic.Bool

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

type Option func(*Processor)

func WithObserver(o Observer) Option {
	return func(p *Processor) { p.observer = o }
}

func WithLogger(l *zap.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.log = l
		}
	}
}

// WithPollInterval sets the fallback wake-up used when the queue's ready
// signal is missed. Non-positive values keep the default.
func WithPollInterval(d time.Duration) Option {
	return func(p *Processor) {
		if d > 0 {
			p.poll = d
		}
	}
}

func New(store *account.Store, q *queue.Queue, opts ...Option) *Processor {
	p := &Processor{
		store: store,
		queue: q,
		log:   zap.NewNop(),
		poll:  DefaultPollInterval,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.state.Store(int32(Stopped))
	return p
}

// Start launches the loop. The loop ends when Stop is called or ctx is done.
func (p *Processor) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done != nil {
		select {
		case <-p.done:
			// previous loop already exited (ctx cancelled or RequestStop)
		default:
			return ErrAlreadyRunning
		}
	}

	p.stop = make(chan struct{})
	p.done = make(chan struct{})
	p.setState(Idle)

	go p.run(ctx, p.stop, p.done)
	return nil
}

// RequestStop asks the loop to exit at its next Idle boundary and returns
// without waiting. It is safe to call from an Observer.
func (p *Processor) RequestStop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requestStop()
}

func (p *Processor) requestStop() {
	if p.stop == nil {
		return
	}
	select {
	case <-p.stop:
	default:
		close(p.stop)
	}
}

// Stop asks the loop to exit and waits for it. An entry already dequeued is
// applied and reported first; entries still queued stay queued for the next
// Start. Stop on a stopped processor is a no-op.
//
// While an Observer is running Stop only requests the stop: the loop
// goroutine is the one delivering the outcome and cannot wait for itself.
// The loop exits as soon as that observer returns.
func (p *Processor) Stop() {
	p.mu.Lock()
	if p.done == nil {
		p.mu.Unlock()
		return
	}
	p.requestStop()
	done := p.done
	p.mu.Unlock()

	if p.inObserver.Load() {
		return
	}
	<-done

	p.mu.Lock()
	if p.done == done {
		p.stop, p.done = nil, nil
	}
	p.mu.Unlock()
}

func (p *Processor) State() State {
	return State(p.state.Load())
}

// Processed counts entries that have reached a terminal outcome.
func (p *Processor) Processed() uint64 {
	return p.processed.Load()
}

func (p *Processor) setState(s State) {
	p.state.Store(int32(s))
}

func (p *Processor) run(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer p.setState(Stopped)

	ticker := time.NewTicker(p.poll)
	defer ticker.Stop()

	p.log.Debug("trade processor started", zap.Duration("poll_interval", p.poll))
	defer p.log.Debug("trade processor stopped")

	for {
		// Idle boundary. Stop requests are only honoured here.
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		default:
		}

		e, ok := p.queue.TryDequeue()
		if !ok {
			select {
			case <-stop:
				return
			case <-ctx.Done():
				return
			case <-p.queue.Ready():
			case <-ticker.C:
			}
			continue
		}

		p.setState(Dequeuing)
		p.process(e)
		p.setState(Idle)
	}
}

// process runs one dequeued entry through evaluate, apply, stop-loss and
// report. Only the loop calls it, so Processed counts dequeued entries.
func (p *Processor) process(e queue.Entry) Outcome {
	out := Outcome{Entry: e}

	p.setState(Evaluating)
	err := p.store.WithAccount(e.AccountID, func(a *account.Account) error {
		dec := risk.Evaluate(*a, e.Trade)
		if dec.Allowed {
			p.setState(Applying)
			a.Balance = a.Balance.Add(dec.BalanceDelta)
			a.Exposure = a.Exposure.Add(dec.ExposureDelta)
			if risk.StopLossHit(*a) {
				a.Exposure = decimal.Zero
				out.StopLossTriggered = true
			}
			out.Kind = Executed
		} else {
			out.Kind = rejection(dec.Reason)
			out.Detail = dec.Msg
		}
		out.Balance = a.Balance
		out.Exposure = a.Exposure
		return nil
	})
	if err != nil {
		// WithAccount only fails when the id is unknown.
		out.Kind = AccountNotFound
		out.Detail = err.Error()
	}

	p.setState(Reporting)
	out.ProcessedAt = p.now()
	p.report(out)
	p.processed.Add(1)
	return out
}

func rejection(r risk.Reason) Kind {
	switch r {
	case risk.ReasonInsufficientBalance:
		return RejectedInsufficientBalance
	case risk.ReasonExposureExceeded:
		return RejectedExposureExceeded
	}
	return Kind("REJECTED_" + string(r))
}

func (p *Processor) report(out Outcome) {
	fields := []zap.Field{
		zap.String("entry_id", out.Entry.ID),
		zap.Uint64("seq", out.Entry.Seq),
		zap.String("account", out.Entry.AccountID),
		zap.String("symbol", out.Entry.Trade.Symbol),
		zap.Stringer("price", out.Entry.Trade.Price),
		zap.Stringer("quantity", out.Entry.Trade.Quantity),
		zap.String("kind", string(out.Kind)),
	}

	switch out.Kind {
	case Executed:
		fields = append(fields, zap.Stringer("balance", out.Balance), zap.Stringer("exposure", out.Exposure))
		p.log.Info(out.String(), fields...)
		if out.StopLossTriggered {
			p.log.Info("stop-loss closed all positions", zap.String("account", out.Entry.AccountID))
		}
	default:
		if out.Detail != "" {
			fields = append(fields, zap.String("reason", out.Detail))
		}
		p.log.Warn(out.String(), fields...)
	}

	if p.observer != nil {
		p.inObserver.Store(true)
		defer p.inObserver.Store(false)
		p.observer.OnOutcome(out)
	}
}

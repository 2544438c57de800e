package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rustyeddy/tradegate/config"
	"github.com/rustyeddy/tradegate/engine"
	"github.com/rustyeddy/tradegate/journal"
	"github.com/rustyeddy/tradegate/metrics"
	"github.com/rustyeddy/tradegate/processor"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process the scripted trades in a config file",
	Long: `Register the configured accounts, submit the configured trades and
wait until every trade has an outcome. Without -c the built-in demo runs:
one account (balance 1000, max exposure 5000, stop-loss 500) and a BTCUSD
order for 0.1 @ 50000, which is rejected for insufficient balance.

Examples:
  tradegate run
  tradegate run -c run.yaml
  tradegate run -c run.yaml --hold   # keep serving metrics until Ctrl-C`,
	RunE: runRun,
}

var (
	runConfigPath string
	runTimeout    time.Duration
	runHold       bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "path to config file (default: built-in demo)")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 30*time.Second, "how long to wait for all trades to be processed")
	runCmd.Flags().BoolVar(&runHold, "hold", false, "keep running after processing until interrupted")
}

func loadRunConfig() (*config.Config, error) {
	if runConfigPath == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(runConfigPath)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return execute(ctx, cfg, log, cmd.OutOrStdout())
}

// execute is the body of `run`, split out so tests can drive it without
// signals or flags.
func execute(ctx context.Context, cfg *config.Config, log *zap.Logger, out io.Writer) error {
	poll, err := cfg.Processor.ParsePollInterval()
	if err != nil {
		return err
	}

	observers := []processor.Observer{printer{out}}

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return err
	}
	if j != nil {
		defer j.Close()
		observers = append(observers, journal.NewRecorder(j, log.Named("journal")))
	}

	var outcomes *metrics.OutcomeCounter
	if cfg.Metrics.Addr != "" {
		outcomes = metrics.NewOutcomeCounter()
		observers = append(observers, outcomes)
	}

	eng := engine.New(engine.Options{
		Logger:       log,
		PollInterval: poll,
		Observers:    observers,
	})

	for _, a := range cfg.Accounts {
		if err := eng.RegisterAccount(a.ID, a.Balance, a.MaxExposure, a.StopLoss); err != nil {
			return err
		}
	}

	if outcomes != nil {
		srv, err := serveMetrics(cfg.Metrics.Addr, eng, outcomes, log)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	if err := eng.Start(ctx); err != nil {
		return err
	}
	defer eng.Stop()

	for _, t := range cfg.Trades {
		if err := eng.SubmitTrade(t.Symbol, t.Price, t.Quantity, t.Account); err != nil {
			return err
		}
	}

	flushCtx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()
	if err := eng.Flush(flushCtx); err != nil {
		return fmt.Errorf("waiting for %d pending trades: %w", eng.Pending(), err)
	}

	fmt.Fprintln(out)
	for _, r := range eng.Reporter().Ratios() {
		fmt.Fprintf(out, "Risk exposure for account %s: %s\n", r.AccountID, r.Ratio)
	}

	if runHold {
		log.Info("processing done; holding until interrupted")
		<-ctx.Done()
	}
	return nil
}

// printer writes each outcome the way the classic console demo did.
type printer struct{ w io.Writer }

func (p printer) OnOutcome(o processor.Outcome) {
	fmt.Fprintln(p.w, o.String())
}

func openJournal(c config.JournalConfig) (journal.Journal, error) {
	switch c.Type {
	case "csv":
		return journal.NewCSV(c.OutcomesFile)
	case "sqlite":
		return journal.NewSQLite(c.DBPath)
	}
	return nil, nil
}

func serveMetrics(addr string, eng *engine.Engine, oc *metrics.OutcomeCounter, log *zap.Logger) (*http.Server, error) {
	reg := prometheus.NewRegistry()
	if err := metrics.Register(reg, metrics.NewCollector(eng.Accounts()), oc); err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server", zap.Error(err))
		}
	}()
	log.Info("serving metrics", zap.String("addr", addr))
	return srv, nil
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rustyeddy/tradegate/processor"
)

const namespace = "tradegate"

var (
	balanceDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "account", "balance"),
		"Account balance.",
		[]string{"account"}, nil,
	)
	exposureDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "account", "exposure"),
		"Notional value of open trades.",
		[]string{"account"}, nil,
	)
	ratioDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "account", "exposure_ratio"),
		"Exposure divided by maximum exposure.",
		[]string{"account"}, nil,
	)
)

// Collector exports per-account gauges, read from snapshots at scrape time.
type Collector struct {
	accounts Snapshotter
}

func NewCollector(accounts Snapshotter) *Collector {
	return &Collector{accounts: accounts}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- balanceDesc
	ch <- exposureDesc
	ch <- ratioDesc
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, id := range c.accounts.IDs() {
		a, err := c.accounts.Snapshot(id)
		if err != nil {
			continue
		}
		bal, _ := a.Balance.Float64()
		exp, _ := a.Exposure.Float64()
		ratio, _ := ExposureRatio(a).Float64()

		ch <- prometheus.MustNewConstMetric(balanceDesc, prometheus.GaugeValue, bal, id)
		ch <- prometheus.MustNewConstMetric(exposureDesc, prometheus.GaugeValue, exp, id)
		ch <- prometheus.MustNewConstMetric(ratioDesc, prometheus.GaugeValue, ratio, id)
	}
}

// OutcomeCounter counts processed entries by outcome kind. It is a
// processor.Observer.
type OutcomeCounter struct {
	outcomes *prometheus.CounterVec
	stopLoss *prometheus.CounterVec
	latency  prometheus.Histogram
}

func NewOutcomeCounter() *OutcomeCounter {
	return &OutcomeCounter{
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trade_outcomes_total",
			Help:      "Processed trades by outcome.",
		}, []string{"kind"}),
		stopLoss: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stop_loss_triggered_total",
			Help:      "Stop-loss resets by account.",
		}, []string{"account"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "trade_queue_latency_seconds",
			Help:      "Time from submission to terminal outcome.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 16),
		}),
	}
}

func (c *OutcomeCounter) OnOutcome(o processor.Outcome) {
	c.outcomes.WithLabelValues(string(o.Kind)).Inc()
	if o.StopLossTriggered {
		c.stopLoss.WithLabelValues(o.Entry.AccountID).Inc()
	}
	if !o.Entry.SubmittedAt.IsZero() && !o.ProcessedAt.IsZero() {
		c.latency.Observe(o.ProcessedAt.Sub(o.Entry.SubmittedAt).Seconds())
	}
}

func (c *OutcomeCounter) Describe(ch chan<- *prometheus.Desc) {
	c.outcomes.Describe(ch)
	c.stopLoss.Describe(ch)
	c.latency.Describe(ch)
}

func (c *OutcomeCounter) Collect(ch chan<- prometheus.Metric) {
	c.outcomes.Collect(ch)
	c.stopLoss.Collect(ch)
	c.latency.Collect(ch)
}

// Register adds the account collector and the outcome counter to reg.
func Register(reg prometheus.Registerer, c *Collector, oc *OutcomeCounter) error {
	if err := reg.Register(c); err != nil {
		return err
	}
	return reg.Register(oc)
}

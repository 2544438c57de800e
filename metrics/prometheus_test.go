package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rustyeddy/tradegate/processor"
	"github.com/rustyeddy/tradegate/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Parallel()

	c := NewCollector(newStore(t))
	assert.Equal(t, 6, testutil.CollectAndCount(c))

	want := `
# HELP tradegate_account_exposure_ratio Exposure divided by maximum exposure.
# TYPE tradegate_account_exposure_ratio gauge
tradegate_account_exposure_ratio{account="alice"} 0.2
tradegate_account_exposure_ratio{account="bob"} 0
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(want), "tradegate_account_exposure_ratio"))
}

func TestOutcomeCounter(t *testing.T) {
	t.Parallel()

	oc := NewOutcomeCounter()
	now := time.Now()
	entry := queue.Entry{AccountID: "alice", SubmittedAt: now}

	oc.OnOutcome(processor.Outcome{Entry: entry, Kind: processor.Executed, ProcessedAt: now.Add(time.Millisecond)})
	oc.OnOutcome(processor.Outcome{Entry: entry, Kind: processor.Executed, StopLossTriggered: true, ProcessedAt: now})
	oc.OnOutcome(processor.Outcome{Entry: entry, Kind: processor.AccountNotFound})

	assert.Equal(t, 2.0, testutil.ToFloat64(oc.outcomes.WithLabelValues(string(processor.Executed))))
	assert.Equal(t, 1.0, testutil.ToFloat64(oc.outcomes.WithLabelValues(string(processor.AccountNotFound))))
	assert.Equal(t, 1.0, testutil.ToFloat64(oc.stopLoss.WithLabelValues("alice")))
}

func TestRegister(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	require.NoError(t, Register(reg, NewCollector(newStore(t)), NewOutcomeCounter()))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	assert.True(t, names["tradegate_account_balance"])
	assert.True(t, names["tradegate_account_exposure"])
	assert.True(t, names["tradegate_account_exposure_ratio"])
	assert.True(t, names["tradegate_trade_queue_latency_seconds"])
}

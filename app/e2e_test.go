package app

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"divlab/adapters/consolereport"
	"divlab/adapters/jitterstats"
	"divlab/adapters/labapi"
	"divlab/domain/experiment"
	"divlab/domain/verdict"
	"divlab/internal/fluidstub"
)

// newE2EBattery wires the full pipeline (real HTTP client, real reporter)
// against the in-process collaborator double, with timings shrunk so the
// whole battery settles in milliseconds.
func newE2EBattery(t *testing.T, opts fluidstub.Options, out *bytes.Buffer) *BatteryService {
	t.Helper()

	server := httptest.NewServer(fluidstub.New(opts).Handler())
	t.Cleanup(server.Close)

	client := labapi.NewClient(server.URL, 2*time.Second, nil)
	waiter := NewSettlementWaiter(client, 2*time.Millisecond, 100*time.Millisecond, nil)
	collector := NewResultCollector(client)
	reporter := consolereport.NewReporter(out)
	runner := NewCaseRunner(client, waiter, collector, reporter, experiment.DefaultSalinity, nil)
	return NewBatteryService(runner, jitterstats.NewAggregator(), reporter, time.Millisecond, nil)
}

func TestEndToEnd_ThreeCaseSequence(t *testing.T) {
	var out bytes.Buffer
	battery := newE2EBattery(t, fluidstub.Options{SettleDelay: 5 * time.Millisecond}, &out)

	cases := []experiment.TestCase{
		{Dividend: 6, Divisor: 3, ExpectedRemainder: 0},
		{Dividend: 7, Divisor: 3, ExpectedRemainder: 1},
		{Dividend: 10, Divisor: 4, ExpectedRemainder: 2},
	}
	result := battery.Run(context.Background(), cases)

	require.Len(t, result.Records, 3)
	assert.Equal(t, 0.0, result.Records[0].ActualRemainder)
	assert.Equal(t, 1.0, result.Records[1].ActualRemainder)
	assert.Equal(t, 2.0, result.Records[2].ActualRemainder)

	require.True(t, result.Summary.HasZero)
	require.True(t, result.Summary.HasNonzero)
	assert.Equal(t, 1, result.Summary.Zero.Count)
	assert.Equal(t, 2, result.Summary.Nonzero.Count)

	transcript := out.String()
	assert.Contains(t, transcript, "TEST: 6 / 3 = 2 remainder 0")
	assert.Contains(t, transcript, "SUMMARY: Peak Jitter by Remainder")
	assert.Contains(t, transcript, "Jitter Ratio (remainder/divisible):")
}

func TestEndToEnd_DefaultBatterySupportsHypothesis(t *testing.T) {
	var out bytes.Buffer
	battery := newE2EBattery(t, fluidstub.Options{SettleDelay: 5 * time.Millisecond}, &out)

	result := battery.Run(context.Background(), experiment.DefaultBattery())

	require.Len(t, result.Records, 5)
	assert.Equal(t, verdict.StatusSupported, result.Summary.Status)
	assert.Contains(t, out.String(), "SUCCESS")
}

func TestEndToEnd_NeverSettlingCollaborator(t *testing.T) {
	// The experiment never reports inactive and no result ever appears:
	// the case must fail at collection, after the settlement warning.
	var out bytes.Buffer
	battery := newE2EBattery(t, fluidstub.Options{NeverSettle: true}, &out)

	result := battery.Run(context.Background(), []experiment.TestCase{
		{Dividend: 6, Divisor: 3, ExpectedRemainder: 0},
	})

	assert.Empty(t, result.Records)
	transcript := out.String()
	warnIdx := bytes.Index(out.Bytes(), []byte("WARNING"))
	errIdx := bytes.Index(out.Bytes(), []byte("ERROR"))
	assert.Contains(t, transcript, "did not settle in time")
	assert.Greater(t, errIdx, warnIdx, "timeout warning precedes the collection error")
}

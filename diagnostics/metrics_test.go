package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecorderFinishReportsAccumulatedCounts(t *testing.T) {
	var got Metrics
	sink := SinkFunc(func(m Metrics) { got = m })

	r := NewRecorder(ReconcilerOptimized)
	r.AddFenwickOp(3)
	r.AddFenwickOp(2)
	r.AddNodesProcessed(4)
	r.AddRangesAdded(1)
	r.AddRangesDeleted(1)

	m := r.Finish(sink, 5, false)

	require.Equal(t, m, got)
	require.Equal(t, 5, m.FenwickOps)
	require.Equal(t, 4, m.NodesProcessed)
	require.Equal(t, 1, m.RangesAdded)
	require.Equal(t, 1, m.RangesDeleted)
	require.Equal(t, 5, m.DeltaCount)
	require.Equal(t, ReconcilerOptimized, m.ReconcilerKind)
	require.False(t, m.Fallback)
	require.GreaterOrEqual(t, m.DurationNS, int64(0))
}

func TestRecorderFinishWithNilSinkDoesNotPanic(t *testing.T) {
	r := NewRecorder(ReconcilerLegacy)
	require.NotPanics(t, func() {
		r.Finish(nil, 0, true)
	})
}

func TestNoopSinkDiscardsRecords(t *testing.T) {
	require.NotPanics(t, func() {
		NoopSink.Record(Metrics{DeltaCount: 1})
	})
}

func TestReconcilerKindString(t *testing.T) {
	require.Equal(t, "legacy", ReconcilerLegacy.String())
	require.Equal(t, "optimized", ReconcilerOptimized.String())
	require.Equal(t, "dark_launch", ReconcilerDarkLaunch.String())
}

func TestSinceReportsNonNegativeElapsed(t *testing.T) {
	start := Now()
	elapsed := Since(start)
	require.GreaterOrEqual(t, elapsed, int64(0))
}

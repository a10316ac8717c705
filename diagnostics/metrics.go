package diagnostics

// ReconcilerKind labels which strategy produced a Metrics record.
type ReconcilerKind uint8

const (
	ReconcilerLegacy ReconcilerKind = iota
	ReconcilerOptimized
	ReconcilerDarkLaunch
)

func (k ReconcilerKind) String() string {
	switch k {
	case ReconcilerLegacy:
		return "legacy"
	case ReconcilerOptimized:
		return "optimized"
	case ReconcilerDarkLaunch:
		return "dark_launch"
	default:
		return "unknown"
	}
}

// Metrics is the per-reconcile timing and volume record the host's
// metrics sink receives. editor.Editor produces one for every Update
// that reaches the reconciler and hands it to Config.MetricsSink
// (NoopSink when none is set); there is no flag that turns it off.
type Metrics struct {
	DurationNS      int64
	DeltaCount      int
	FenwickOps      int
	ReconcilerKind  ReconcilerKind
	Fallback        bool
	NodesProcessed  int
	RangesAdded     int
	RangesDeleted   int
}

// Sink receives completed Metrics records. The host owns the concrete
// implementation (statsd, an in-process ring buffer, a log line); this
// package only defines the shape it reports.
type Sink interface {
	Record(m Metrics)
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(m Metrics)

func (f SinkFunc) Record(m Metrics) { f(m) }

// NoopSink discards every record; it is the default when the host
// supplies none.
var NoopSink Sink = SinkFunc(func(Metrics) {})

// Recorder accumulates Fenwick-op and node-processed counts over the
// course of a single reconcile, then finalizes into a Metrics record.
// editor.Editor constructs one in runUpdate before calling
// reconcile.Reconcile and calls Finish once Reconcile has returned.
type Recorder struct {
	start          Timestamp
	kind           ReconcilerKind
	fenwickOps     int
	nodesProcessed int
	rangesAdded    int
	rangesDeleted  int
}

// NewRecorder starts timing a reconcile of the given kind.
func NewRecorder(kind ReconcilerKind) *Recorder {
	return &Recorder{start: Now(), kind: kind}
}

// AddFenwickOp increments the Fenwick-operation counter by n.
func (r *Recorder) AddFenwickOp(n int) { r.fenwickOps += n }

// AddNodesProcessed increments the nodes-processed counter by n.
func (r *Recorder) AddNodesProcessed(n int) { r.nodesProcessed += n }

// AddRangesAdded increments the ranges-added counter by n.
func (r *Recorder) AddRangesAdded(n int) { r.rangesAdded += n }

// AddRangesDeleted increments the ranges-deleted counter by n.
func (r *Recorder) AddRangesDeleted(n int) { r.rangesDeleted += n }

// Finish stops timing and reports the accumulated Metrics to sink.
func (r *Recorder) Finish(sink Sink, deltaCount int, fallback bool) Metrics {
	m := Metrics{
		DurationNS:     Since(r.start),
		DeltaCount:     deltaCount,
		FenwickOps:     r.fenwickOps,
		ReconcilerKind: r.kind,
		Fallback:       fallback,
		NodesProcessed: r.nodesProcessed,
		RangesAdded:    r.rangesAdded,
		RangesDeleted:  r.rangesDeleted,
	}
	if sink == nil {
		sink = NoopSink
	}
	sink.Record(m)
	return m
}

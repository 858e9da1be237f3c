// Package metrics provides Prometheus observability metrics for the
// benefits engine. It includes business-outcome metrics for the modeled
// case and operational metrics for the pipeline itself.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// =============================================================================
// BUSINESS METRICS - Modeled Case Visibility
// =============================================================================

// NetFTETotal tracks the total net FTE reduction of the last run.
var NetFTETotal = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "engine",
	Name:      "net_fte_total",
	Help:      "Total net FTE reduction after pool netting and safety caps",
})

// GrossFTETotal tracks the total gross FTE impact before netting.
var GrossFTETotal = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "engine",
	Name:      "gross_fte_total",
	Help:      "Total gross FTE impact before pool netting",
})

// NPVDollars tracks the net present value of the last run's base case.
var NPVDollars = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "engine",
	Name:      "npv_dollars",
	Help:      "Net present value of the base case over the projection horizon",
})

// PoolCeilingFTE tracks each opportunity pool's ceiling in FTE terms.
var PoolCeilingFTE = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "pools",
	Name:      "ceiling_fte",
	Help:      "Opportunity pool ceiling in FTE-equivalent terms, by lever",
}, []string{"lever"})

// PoolConsumedFTE tracks how much of each pool the waterfall consumed.
var PoolConsumedFTE = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "pools",
	Name:      "consumed_fte",
	Help:      "Opportunity pool consumption in FTE-equivalent terms, by lever",
}, []string{"lever"})

// PoolUtilization tracks consumed/ceiling per pool. Values near 1.0 mean
// the lever is exhausted and further initiatives on it net to nothing.
var PoolUtilization = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "pools",
	Name:      "utilization_ratio",
	Help:      "Share of the pool ceiling consumed, by lever",
}, []string{"lever"})

// InitiativesByCapReason counts audited initiatives by what bound them.
var InitiativesByCapReason = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "engine",
	Name:      "initiatives_total",
	Help:      "Count of netted initiatives by cap reason",
}, []string{"cap_reason"})

// UnknownLeversTotal counts catalog entries rejected for an unknown lever.
var UnknownLeversTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "engine",
	Name:      "unknown_levers_total",
	Help:      "Count of initiatives netted to zero because their lever is outside the known set",
})

// =============================================================================
// OPERATIONAL METRICS - Pipeline Health
// =============================================================================

// RunsTotal counts completed engine runs.
var RunsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "engine",
	Name:      "runs_total",
	Help:      "Total completed engine runs",
})

// RunDurationSeconds tracks end-to-end run time.
var RunDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "engine",
	Name:      "duration_seconds",
	Help:      "Time taken for a full run including scenarios and sensitivity",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
})

// InitiativesPerRun tracks how many initiatives each run nets.
var InitiativesPerRun = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "engine",
	Name:      "initiatives_processed",
	Help:      "Number of enabled initiatives netted per run",
	Buckets:   []float64{1, 5, 10, 25, 50, 100},
})

// ParserErrorsTotal tracks parse failures by input file.
var ParserErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "errors_total",
	Help:      "Total parse failures by input",
}, []string{"input"})

// ParserRecordsTotal tracks total records successfully parsed.
var ParserRecordsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "records_total",
	Help:      "Total CSV records successfully parsed",
})

// ParserDurationSeconds tracks time to parse input files.
var ParserDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "parser",
	Name:      "duration_seconds",
	Help:      "Time taken to parse CSV input file",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
})

// =============================================================================
// Helper Functions
// =============================================================================

// ResetRunGauges resets all per-run gauges before a new engine run.
// Call this at the start of engine.Run.
func ResetRunGauges() {
	NetFTETotal.Set(0)
	GrossFTETotal.Set(0)
	NPVDollars.Set(0)
	PoolCeilingFTE.Reset()
	PoolConsumedFTE.Reset()
	PoolUtilization.Reset()
}

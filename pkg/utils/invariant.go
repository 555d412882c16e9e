// Invariants are conditions that must hold unless there is a bug in this code base, e.g. a list whose forward
// traversal doesn't visit exactly `size` nodes. A violated invariant doesn't crash a running server: it records an
// error log and bumps the `invariants_total` counter so it can be alerted on. Test builds (TestMode=true) panic instead
// so violations can't slip through.
//
// Invariants are not for conditions depending on the outside world; a client sending a malformed command is a normal
// error, not an invariant violation.

package utils

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	promclient "github.com/prometheus/client_model/go"
)

var invariantsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "invariants_total",
	Help: "The total number of invariant violations",
}, []string{
	"module", // The module in which this invariant occurred, e.g. list or port.
	"type",   // The type of the invariant that occurred.
})

// RaiseInvariant reports a violated invariant of `module`. The caller still has to handle the erroneous case.
func RaiseInvariant(module, invariantType, msg string, args ...any) {
	invariantsMetric.WithLabelValues(module, invariantType).Inc()
	slog.With("invariant", invariantType, "module", module).Error(msg, args...)
	if IsTestMode {
		panic("invariant violated: " + invariantType)
	}
}

// CheckInvariant raises an invariant violation when `holds` is false and returns `holds`, so it reads as a guard:
//
//	if !utils.CheckInvariant(shards > 0, "port", "no_shards", "Store needs a shard.") { shards = 1 }
func CheckInvariant(holds bool, module, invariantType, msg string, args ...any) bool {
	if !holds {
		RaiseInvariant(module, invariantType, msg, args...)
	}
	return holds
}

// GetMetricValue returns the current value of the invariant counter with the given labels.
func GetMetricValue(module, invariantType string) int {
	var metric = &promclient.Metric{}
	if err := invariantsMetric.WithLabelValues(module, invariantType).Write(metric); err != nil {
		slog.Error("Failed to read invariant metric.", "error", err)
		return 0
	}
	return int(metric.Counter.GetValue())
}

package observability

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	detections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "spinesniff",
			Subsystem: "detect",
			Name:      "results_total",
			Help:      "Skeleton detections by load type, schema version and outcome.",
		},
		[]string{"load_type", "version", "reason"},
	)
	binaryProbes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "spinesniff",
			Subsystem: "binary",
			Name:      "probes_total",
			Help:      "Binary header probes by matched layout.",
		},
		[]string{"layout", "found"},
	)
	dispatchLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "spinesniff",
			Subsystem: "dispatch",
			Name:      "loads_total",
			Help:      "Runtime loads by schema version, load type and success.",
		},
		[]string{"version", "load_type", "success"},
	)
)

// Collectors returns every collector owned by this package.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{detections, binaryProbes, dispatchLoads}
}

// RegisterMetrics registers the collectors with the default registry once.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(Collectors()...)
	})
}

func RecordDetection(loadType, version, reason string) {
	RegisterMetrics()
	detections.WithLabelValues(loadType, version, reason).Inc()
}

func RecordBinaryProbe(layout string, found bool) {
	RegisterMetrics()
	binaryProbes.WithLabelValues(layout, strconv.FormatBool(found)).Inc()
}

func RecordDispatch(version, loadType string, success bool) {
	RegisterMetrics()
	dispatchLoads.WithLabelValues(version, loadType, strconv.FormatBool(success)).Inc()
}

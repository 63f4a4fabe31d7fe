package manager

import "github.com/prometheus/client_golang/prometheus"

var (
	metricLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fasttextd",
			Subsystem: "manager",
			Name:      "loads_total",
			Help:      "Model loads by result",
		},
		[]string{"result"},
	)

	metricLoadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "fasttextd",
			Subsystem: "manager",
			Name:      "load_duration_seconds",
			Help:      "Time to load a model and its vectors",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		},
	)

	metricEvictions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "fasttextd",
			Subsystem: "manager",
			Name:      "evictions_total",
			Help:      "Instances evicted to fit the memory budget",
		},
	)

	metricInstances = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "fasttextd",
			Subsystem: "manager",
			Name:      "instances",
			Help:      "Instances currently held by the manager",
		},
	)

	metricReads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fasttextd",
			Subsystem: "manager",
			Name:      "reads_total",
			Help:      "Read operations by op and result",
		},
		[]string{"op", "result"},
	)

	metricReadDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fasttextd",
			Subsystem: "manager",
			Name:      "read_duration_seconds",
			Help:      "Duration of read operations against a loaded model",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"op"},
	)
)

func init() {
	prometheus.MustRegister(metricLoads, metricLoadDuration, metricEvictions, metricInstances, metricReads, metricReadDuration)
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

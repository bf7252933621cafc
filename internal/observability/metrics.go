package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	signalsReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sigctl",
			Subsystem: "signals",
			Name:      "received_total",
			Help:      "Signals observed by the monitor, by handler class.",
		},
		[]string{"class", "signal"},
	)
	signalsDeferred = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sigctl",
			Subsystem: "signals",
			Name:      "deferred_total",
			Help:      "Deferrable signals recorded as pending instead of delivered.",
		},
		[]string{"signal"},
	)
	regionsEntered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "sigctl",
			Subsystem: "regions",
			Name:      "entered_total",
			Help:      "Depth-zero protected-region entries.",
		},
	)
	regionFaults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sigctl",
			Subsystem: "regions",
			Name:      "faults_total",
			Help:      "Protected regions that failed with a signal error.",
		},
		[]string{"signal"},
	)
	regionRetries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "sigctl",
			Subsystem: "regions",
			Name:      "retries_total",
			Help:      "Explicit region retries.",
		},
	)
	crashes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sigctl",
			Subsystem: "crash",
			Name:      "terminations_total",
			Help:      "Fatal signals that entered the termination path.",
		},
		[]string{"signal"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			signalsReceived, signalsDeferred,
			regionsEntered, regionFaults, regionRetries,
			crashes,
		)
	})
}

func RecordSignal(class, signal string) {
	RegisterMetrics()
	signalsReceived.WithLabelValues(class, signal).Inc()
}

func RecordDeferred(signal string) {
	RegisterMetrics()
	signalsDeferred.WithLabelValues(signal).Inc()
}

func RecordRegionEnter() {
	RegisterMetrics()
	regionsEntered.Inc()
}

func RecordFault(signal string) {
	RegisterMetrics()
	regionFaults.WithLabelValues(signal).Inc()
}

func RecordRetry() {
	RegisterMetrics()
	regionRetries.Inc()
}

func RecordCrash(signal string) {
	RegisterMetrics()
	crashes.WithLabelValues(signal).Inc()
}

package converter

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"speech2text/internal/app/retry"
)

const metricsNamespace = "s2t"

// Metrics collects per-process transcription counters in a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	runs            *prometheus.CounterVec
	windows         prometheus.Counter
	attempts        *prometheus.CounterVec
	retries         *prometheus.CounterVec
	retryWait       prometheus.Counter
	requestDuration prometheus.Histogram
	audioSeconds    prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "runs_total",
			Help:      "Transcription runs by final status.",
		}, []string{"status"}),
		windows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "windows_total",
			Help:      "Windows transcribed successfully.",
		}),
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "attempts_total",
			Help:      "Transcription requests by outcome.",
		}, []string{"outcome"}),
		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "retries_total",
			Help:      "Retried transcription requests by failure class.",
		}, []string{"class"}),
		retryWait: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "retry_wait_seconds_total",
			Help:      "Time spent waiting between attempts.",
		}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "request_duration_seconds",
			Help:      "Latency of single transcription requests.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}),
		audioSeconds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "audio_seconds_total",
			Help:      "Seconds of source audio processed.",
		}),
	}

	m.registry.MustRegister(m.runs, m.windows, m.attempts, m.retries, m.retryWait, m.requestDuration, m.audioSeconds)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveRun(err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.runs.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveWindow() {
	if m == nil {
		return
	}
	m.windows.Inc()
}

func (m *Metrics) ObserveAudio(seconds float64) {
	if m == nil || seconds <= 0 {
		return
	}
	m.audioSeconds.Add(seconds)
}

func (m *Metrics) ObserveRequest(elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.attempts.WithLabelValues(outcome).Inc()
	m.requestDuration.Observe(elapsed.Seconds())
}

// ObserveRetry is meant to be passed to retry.WithObserver.
func (m *Metrics) ObserveRetry(a retry.Attempt) {
	if m == nil {
		return
	}
	m.retries.WithLabelValues(a.Class).Inc()
	m.retryWait.Add(a.Wait.Seconds())
}

// WriteTextfile writes the metrics in the Prometheus text format, suitable for
// the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}

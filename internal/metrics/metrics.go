// Package metrics exposes advisory Prometheus counters for the ingestion
// pipeline. Everything here is observability only; the recorder works the
// same with metrics disabled.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/werdumagen/thermolog/internal/discover"
	"github.com/werdumagen/thermolog/internal/logger"
)

// Metrics holds the pipeline counters, registered on their own registry so
// tests can create as many instances as they like.
type Metrics struct {
	registry *prometheus.Registry

	SamplesIngested prometheus.Counter
	GarbageLines    prometheus.Counter
	LastValue       prometheus.Gauge
	ProbeOutcomes   *prometheus.CounterVec
}

// New creates and registers the pipeline metrics.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SamplesIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "thermolog_samples_ingested_total",
			Help: "Accepted numeric readings appended to history and the session log.",
		}),
		GarbageLines: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "thermolog_garbage_pieces_total",
			Help: "Line pieces that failed numeric parsing during ingestion.",
		}),
		LastValue: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "thermolog_last_temperature",
			Help: "Most recently accepted reading.",
		}),
		ProbeOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "thermolog_probe_outcomes_total",
			Help: "Discovery probe results by outcome.",
		}, []string{"outcome"}),
	}

	m.registry.MustRegister(m.SamplesIngested, m.GarbageLines, m.LastValue, m.ProbeOutcomes)
	return m
}

// ObserveProbe records one discovery probe report. Usable directly as a
// Finder progress callback.
func (m *Metrics) ObserveProbe(r discover.Report) {
	m.ProbeOutcomes.WithLabelValues(r.Outcome.String()).Inc()
}

// Serve exposes /metrics on addr in a background goroutine. Failures are
// logged and otherwise ignored: metrics are advisory.
func (m *Metrics) Serve(addr string, log logger.Logger) {
	if log == nil {
		log = logger.Noop()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("metrics listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn("metrics server stopped: %v", err)
		}
	}()
}

// Package metrics exposes Prometheus instrumentation for the scene engine.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/litescript/ls-orbit/internal/logging"
	"github.com/litescript/ls-orbit/internal/render"
)

const namespace = "ls_orbit"

// Collector holds the engine's collectors on a private registry.
type Collector struct {
	registry *prometheus.Registry

	framesTotal   prometheus.Counter
	culledTotal   *prometheus.CounterVec
	interactions  *prometheus.CounterVec
	writesTotal   *prometheus.CounterVec
	progress      prometheus.Gauge
	overlayActive prometheus.Gauge
	planetsDrawn  prometheus.Gauge
}

// NewCollector creates and registers the collectors. Go runtime collectors
// are included when withRuntime is set.
func NewCollector(withRuntime bool) *Collector {
	m := &Collector{
		registry: prometheus.NewRegistry(),
		framesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_rendered_total",
			Help:      "Total number of frames rendered",
		}),
		culledTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "culled_points_total",
				Help:      "Points dropped behind the camera",
			},
			[]string{"kind"}, // star, orbit_sample, planet
		),
		interactions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "interactions_total",
				Help:      "Inputs that advanced progress",
			},
			[]string{"kind"},
		),
		writesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "progress_writes_total",
				Help:      "Progress saves by outcome",
			},
			[]string{"result"},
		),
		progress: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "progress",
			Help:      "Current progress in [0,1]",
		}),
		overlayActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "overlay_active",
			Help:      "1 while the comparison overlay is showing",
		}),
		planetsDrawn: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "planets_drawn",
			Help:      "Planets visible in the last frame",
		}),
	}

	m.registry.MustRegister(
		m.framesTotal,
		m.culledTotal,
		m.interactions,
		m.writesTotal,
		m.progress,
		m.overlayActive,
		m.planetsDrawn,
	)
	if withRuntime {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return m
}

// FrameRendered records one frame and what it culled.
func (m *Collector) FrameRendered(s render.Stats) {
	m.framesTotal.Inc()
	if s.StarsCulled > 0 {
		m.culledTotal.WithLabelValues("star").Add(float64(s.StarsCulled))
	}
	if s.SamplesCulled > 0 {
		m.culledTotal.WithLabelValues("orbit_sample").Add(float64(s.SamplesCulled))
	}
	if s.PlanetsCulled > 0 {
		m.culledTotal.WithLabelValues("planet").Add(float64(s.PlanetsCulled))
	}
	m.planetsDrawn.Set(float64(s.PlanetsDrawn))
}

// Interaction counts one progress-advancing input.
func (m *Collector) Interaction(kind string) {
	m.interactions.WithLabelValues(kind).Inc()
}

// ProgressChanged records a new progress value and whether it was saved.
func (m *Collector) ProgressChanged(value float64, persisted bool) {
	m.progress.Set(value)
	if persisted {
		m.writesTotal.WithLabelValues("ok").Inc()
	} else {
		m.writesTotal.WithLabelValues("error").Inc()
	}
}

// OverlayActive sets the overlay gauge.
func (m *Collector) OverlayActive(active bool) {
	if active {
		m.overlayActive.Set(1)
	} else {
		m.overlayActive.Set(0)
	}
}

// Handler returns the HTTP handler for the registry.
func (m *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Collector) Serve(ctx context.Context, addr string, log *logging.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("Serving metrics on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

package markerboard

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/phanxgames/markerboard/internal/logging"
)

// Metrics counts sync traffic. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Polls         *prometheus.CounterVec
	Pushes        *prometheus.CounterVec
	Snapshots     prometheus.Counter
	Interpolation prometheus.Gauge
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Polls: f.NewCounterVec(prometheus.CounterOpts{
			Name: "markerboard_polls_total",
			Help: "Long-poll requests by result.",
		}, []string{"result"}),
		Pushes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "markerboard_pushes_total",
			Help: "Update requests by type and result.",
		}, []string{"type", "result"}),
		Snapshots: f.NewCounter(prometheus.CounterOpts{
			Name: "markerboard_snapshots_applied_total",
			Help: "Authoritative snapshots merged into the session.",
		}),
		Interpolation: f.NewGauge(prometheus.GaugeOpts{
			Name: "markerboard_interpolation_factor",
			Help: "Progress of the current snapshot blend, 0 to 1.",
		}),
	}
}

func (m *Metrics) poll(err error) {
	if m == nil {
		return
	}
	m.Polls.WithLabelValues(resultLabel(err)).Inc()
}

func (m *Metrics) push(kind string, err error) {
	if m == nil {
		return
	}
	m.Pushes.WithLabelValues(kind, resultLabel(err)).Inc()
}

func (m *Metrics) applied() {
	if m == nil {
		return
	}
	m.Snapshots.Inc()
}

func (m *Metrics) interpolation(t float64) {
	if m == nil {
		return
	}
	m.Interpolation.Set(t)
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// MetricsServer serves /metrics until its context ends. It implements
// suture.Service.
type MetricsServer struct {
	Addr     string
	Gatherer prometheus.Gatherer
}

// Serve runs the HTTP listener.
func (s *MetricsServer) Serve(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", s.Addr).Msg("metrics endpoint listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// String names the service in supervisor logs.
func (s *MetricsServer) String() string { return "metrics" }

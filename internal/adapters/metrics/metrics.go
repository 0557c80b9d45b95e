// Package metrics exposes Prometheus counters for cipher traffic.
package metrics

import (
	"CipherBot/internal/core/domain"
	"CipherBot/internal/core/ports"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Recorder owns the cipher counters and the registry they live in.
type Recorder struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	failures   *prometheus.CounterVec
	log        zerolog.Logger
}

var _ ports.CipherMetrics = (*Recorder)(nil)

// NewRecorder registers the counters on a fresh registry.
func NewRecorder(baseLogger *zerolog.Logger) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cipherbot",
			Name:      "operations_total",
			Help:      "Completed cipher operations.",
		}, []string{"kind", "direction"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cipherbot",
			Name:      "operation_errors_total",
			Help:      "Rejected cipher operations by cause.",
		}, []string{"kind", "direction", "reason"}),
		log: baseLogger.With().Str("component", "metrics").Logger(),
	}

	r.registry.MustRegister(
		r.operations,
		r.failures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Attach counts every successful operation published on the bus.
func (r *Recorder) Attach(bus ports.EventBus) {
	bus.Subscribe(ports.TopicCipherPerformed, r.HandleCipherPerformed)
}

// HandleCipherPerformed is an EventHandler for the "cipher:performed" topic.
func (r *Recorder) HandleCipherPerformed(_ context.Context, event ports.Event) error {
	op, ok := event.Data.(*domain.Operation)
	if !ok {
		r.log.Error().Msg("Received invalid data for 'cipher:performed' event")
		return nil
	}
	r.operations.WithLabelValues(string(op.Kind), op.Direction.String()).Inc()
	return nil
}

// ObserveFailure counts a rejected call.
func (r *Recorder) ObserveFailure(kind domain.CipherKind, dir domain.Direction, err error) {
	r.failures.WithLabelValues(string(kind), dir.String(), reason(err)).Inc()
}

func reason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidKeyType):
		return "invalid_key_type"
	case errors.Is(err, domain.ErrInvalidKey):
		return "invalid_key"
	case errors.Is(err, domain.ErrUnknownKind):
		return "unknown_kind"
	default:
		return "other"
	}
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.log.Info().Str("addr", addr).Msg("Metrics server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			r.log.Error().Err(err).Msg("Metrics server shutdown error")
			return err
		}
		r.log.Info().Msg("Metrics server stopped")
		return nil
	case err := <-errCh:
		if err != nil {
			r.log.Error().Err(err).Msg("Metrics server failed")
		}
		return err
	}
}

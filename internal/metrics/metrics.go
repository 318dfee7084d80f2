// Package metrics exports machine activity as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SeamusWaldron/cubie"
)

const namespace = "cubie"

// Collector counts what a machine does.
type Collector struct {
	actions     *prometheus.CounterVec
	undos       prometheus.Counter
	resets      prometheus.Counter
	transitions *prometheus.CounterVec
	history     prometheus.Gauge
	pending     prometheus.Gauge
	snap        prometheus.Histogram

	now       func() time.Time
	snapStart time.Time
}

// New creates a collector and registers it with reg.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Counts recorded actions by kind.",
		}, []string{"kind"}),
		undos: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "undos_total",
			Help:      "Counts undone actions.",
		}),
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resets_total",
			Help:      "Counts puzzle resets.",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_transitions_total",
			Help:      "Counts machine state transitions by source and target state.",
		}, []string{"from", "to"}),
		history: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "history_length",
			Help:      "Number of actions available to undo.",
		}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pending_moves",
			Help:      "Number of queued moves not yet started.",
		}),
		snap: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "snap_duration_seconds",
			Help:      "Time from release or move start until the puzzle is still.",
			Buckets:   []float64{0.05, 0.1, 0.2, 0.3, 0.5, 1, 2},
		}),
		now: time.Now,
	}

	for _, col := range []prometheus.Collector{c.actions, c.undos, c.resets, c.transitions, c.history, c.pending, c.snap} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Observe subscribes the collector to m.
func (c *Collector) Observe(m *cubie.Machine) {
	m.OnStateChange(func(from, to cubie.State) {
		c.transitions.WithLabelValues(from.String(), to.String()).Inc()
		switch {
		case to.Stabilizing() && !from.Stabilizing():
			c.snapStart = c.now()
		case to == cubie.StateStill && from.Stabilizing():
			c.snap.Observe(c.now().Sub(c.snapStart).Seconds())
		}
		c.history.Set(float64(len(m.History())))
		c.pending.Set(float64(len(m.Pending())))
	})
	m.OnAction(func(a cubie.Action) {
		c.actions.WithLabelValues(kind(a)).Inc()
		c.history.Set(float64(len(m.History())))
	})
	m.OnUndo(func(cubie.Action) {
		c.undos.Inc()
		c.history.Set(float64(len(m.History())))
	})
	m.OnReset(func() {
		c.resets.Inc()
		c.history.Set(0)
		c.pending.Set(0)
	})
}

func kind(a cubie.Action) string {
	switch {
	case !a.Move.IsZero():
		return "move"
	case a.Slice != nil:
		return "slice"
	default:
		return "cube"
	}
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Listen serves /metrics and /healthz on listenAddr until ctx is done.
func Listen(ctx context.Context, listenAddr string, g prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", Handler(g))

	server := &http.Server{
		Addr:              listenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

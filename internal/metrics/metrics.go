// Package metrics exposes controller activity as Prometheus series.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/idilsaglam/todo-screen/internal/todo"
)

// Recorder owns a private registry so tests and multiple servers don't
// collide on the default one.
type Recorder struct {
	reg *prometheus.Registry

	created  prometheus.Counter
	rejected prometheus.Counter
	toggled  *prometheus.CounterVec
	removed  prometheus.Counter
	sessions prometheus.Gauge
}

func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "todo_items_created_total",
			Help: "Items created by a successful submit.",
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "todo_submit_rejected_total",
			Help: "Submits ignored because the draft was blank.",
		}),
		toggled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "todo_items_toggled_total",
			Help: "Completion toggles, by resulting state.",
		}, []string{"completed"}),
		removed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "todo_items_removed_total",
			Help: "Items removed.",
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "todo_sessions_active",
			Help: "Browser sessions currently held in memory.",
		}),
	}
	r.reg.MustRegister(
		r.created, r.rejected, r.toggled, r.removed, r.sessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Observe implements todo.Observer.
func (r *Recorder) Observe(e todo.Event) {
	switch e.Kind {
	case todo.EventSubmitted:
		r.created.Inc()
	case todo.EventSubmitRejected:
		r.rejected.Inc()
	case todo.EventToggled:
		if e.Completed {
			r.toggled.WithLabelValues("true").Inc()
		} else {
			r.toggled.WithLabelValues("false").Inc()
		}
	case todo.EventRemoved:
		r.removed.Inc()
	}
}

func (r *Recorder) SessionOpened() { r.sessions.Inc() }
func (r *Recorder) SessionClosed() { r.sessions.Dec() }

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// Registry is exposed for tests.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

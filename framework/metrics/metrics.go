// Package metrics exports container lifecycle and HTTP traffic as
// Prometheus series.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/km-arc/go-beans/framework/container"
)

const namespace = "beans"

// Collector implements container.Observer and owns its own registry, so
// several collectors can coexist in tests.
type Collector struct {
	registry *prometheus.Registry

	created      *prometheus.CounterVec
	destroyed    *prometheus.CounterVec
	activeScopes prometheus.Gauge

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// Options toggles the runtime collectors registered next to the bean series.
type Options struct {
	EnableGo      bool
	EnableProcess bool
}

// New creates a collector and registers all series.
func New(opts Options) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "created_total",
			Help:      "Beans created, by scope.",
		}, []string{"scope"}),
		destroyed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "destroyed_total",
			Help:      "Beans torn down, by scope and result.",
		}, []string{"scope", "result"}),
		activeScopes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "request_scopes_active",
			Help:      "Request scopes begun and not yet ended.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method, route and status code.",
		}, []string{"method", "route", "status_code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route"}),
	}

	c.registry.MustRegister(c.created, c.destroyed, c.activeScopes, c.httpRequests, c.httpDuration)
	if opts.EnableGo {
		c.registry.MustRegister(collectors.NewGoCollector())
	}
	if opts.EnableProcess {
		c.registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	return c
}

// Registry exposes the underlying registry, mostly for tests.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// ── container.Observer ────────────────────────────────────────────────────────

func (c *Collector) BeanCreated(_ string, scope container.Scope) {
	c.created.WithLabelValues(scope.String()).Inc()
}

func (c *Collector) BeanDestroyed(_ string, scope container.Scope, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.destroyed.WithLabelValues(scope.String(), result).Inc()
}

func (c *Collector) ScopeOpened() { c.activeScopes.Inc() }
func (c *Collector) ScopeClosed() { c.activeScopes.Dec() }

var _ container.Observer = (*Collector)(nil)

// ── HTTP ──────────────────────────────────────────────────────────────────────

// Middleware records request counts and latency labelled with the chi route
// pattern, so /members/42 and /members/7 share one series.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		c.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		c.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

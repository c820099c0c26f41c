package metrics_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-beans/framework/container"
	"github.com/km-arc/go-beans/framework/metrics"
)

// value returns the sample of family name whose labels match exactly.
func value(t *testing.T, m *metrics.Collector, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, metric := range f.GetMetric() {
			if matches(metric, labels) {
				return sample(metric)
			}
		}
	}
	return 0
}

func matches(metric *dto.Metric, labels map[string]string) bool {
	if len(metric.GetLabel()) != len(labels) {
		return false
	}
	for _, lp := range metric.GetLabel() {
		if labels[lp.GetName()] != lp.GetValue() {
			return false
		}
	}
	return true
}

func sample(metric *dto.Metric) float64 {
	switch {
	case metric.GetCounter() != nil:
		return metric.GetCounter().GetValue()
	case metric.GetGauge() != nil:
		return metric.GetGauge().GetValue()
	case metric.GetHistogram() != nil:
		return float64(metric.GetHistogram().GetSampleCount())
	}
	return 0
}

func TestCollector_ObservesContainer(t *testing.T) {
	m := metrics.New(metrics.Options{})

	reg := container.NewRegistry()
	newThing := func(context.Context, *container.Container) (any, error) { return &struct{ n int }{}, nil }
	require.NoError(t, reg.Singleton("memberRepository", newThing))
	require.NoError(t, reg.Prototype("orderDraft", newThing))
	require.NoError(t, reg.RequestScoped("requestLogger", newThing, container.OnDestroy(func(any) error {
		return errors.New("close failed")
	})))
	c := container.New(reg, container.WithObserver(m))

	ctx, scope := c.BeginRequestScope(context.Background())
	for _, name := range []string{"memberRepository", "orderDraft", "orderDraft", "requestLogger"} {
		_, err := c.Resolve(ctx, name)
		require.NoError(t, err)
	}
	assert.InDelta(t, 1, value(t, m, "beans_request_scopes_active", nil), 0)

	require.Error(t, scope.End())
	require.NoError(t, c.Shutdown())

	assert.InDelta(t, 0, value(t, m, "beans_request_scopes_active", nil), 0)
	assert.InDelta(t, 1, value(t, m, "beans_created_total", map[string]string{"scope": "singleton"}), 0)
	assert.InDelta(t, 2, value(t, m, "beans_created_total", map[string]string{"scope": "prototype"}), 0)
	assert.InDelta(t, 1, value(t, m, "beans_created_total", map[string]string{"scope": "request"}), 0)
	assert.InDelta(t, 1, value(t, m, "beans_destroyed_total", map[string]string{"scope": "request", "result": "error"}), 0)
	assert.InDelta(t, 1, value(t, m, "beans_destroyed_total", map[string]string{"scope": "singleton", "result": "ok"}), 0)
	n, err := testutil.GatherAndCount(m.Registry(), "beans_destroyed_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCollector_Middleware(t *testing.T) {
	m := metrics.New(metrics.Options{})

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/members/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/ok", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})

	for _, path := range []string{"/members/1", "/members/2", "/ok"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.InDelta(t, 2, value(t, m, "beans_http_requests_total",
		map[string]string{"method": "GET", "route": "/members/{id}", "status_code": "404"}), 0)
	assert.InDelta(t, 1, value(t, m, "beans_http_requests_total",
		map[string]string{"method": "GET", "route": "/ok", "status_code": "200"}), 0)
	assert.InDelta(t, 2, value(t, m, "beans_http_request_duration_seconds",
		map[string]string{"method": "GET", "route": "/members/{id}"}), 0)
}

func TestCollector_Handler(t *testing.T) {
	m := metrics.New(metrics.Options{EnableGo: true})
	m.BeanCreated("memberService", container.Singleton)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `beans_created_total{scope="singleton"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

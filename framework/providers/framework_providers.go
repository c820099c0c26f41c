package providers

import (
	"context"
	"net/http"
	"slices"

	"go.uber.org/zap"

	"github.com/km-arc/go-beans/framework/config"
	"github.com/km-arc/go-beans/framework/container"
	gohttp "github.com/km-arc/go-beans/framework/http"
	"github.com/km-arc/go-beans/framework/metrics"
	"github.com/km-arc/go-beans/framework/routing"
)

// Bean names of the framework singletons.
const (
	ConfigBean  = "config"
	LoggerBean  = "logger"
	MetricsBean = "metrics"
	RouterBean  = "router"
)

// ── ConfigProvider ────────────────────────────────────────────────────────────

// ConfigProvider exposes the loaded configuration and the root logger as
// beans, so application factories resolve them instead of closing over
// globals.
//
// Beans:
//   - "config" (alias "configuration") → *config.Config
//   - "logger"                        → *zap.Logger
type ConfigProvider struct {
	container.BaseConfiguration
	Config *config.Config
	Logger *zap.Logger
}

func (p *ConfigProvider) Define(r *container.Registry) error {
	cfg, log := p.Config, p.Logger
	if err := r.Singleton(ConfigBean, func(context.Context, *container.Container) (any, error) {
		return cfg, nil
	}, container.As(container.CapabilityOf[*config.Config]())); err != nil {
		return err
	}
	if err := r.Alias(ConfigBean, "configuration"); err != nil {
		return err
	}
	return r.Singleton(LoggerBean, func(context.Context, *container.Container) (any, error) {
		return log, nil
	}, container.As(container.CapabilityOf[*zap.Logger]()))
}

// ── MetricsProvider ───────────────────────────────────────────────────────────

// MetricsProvider registers the collector the container reports to.
//
// Beans:
//   - "metrics" → *metrics.Collector
type MetricsProvider struct {
	container.BaseConfiguration
	Collector *metrics.Collector
}

func (p *MetricsProvider) Define(r *container.Registry) error {
	m := p.Collector
	return r.Singleton(MetricsBean, func(context.Context, *container.Container) (any, error) {
		return m, nil
	}, container.As(container.CapabilityOf[*metrics.Collector]()))
}

// ── RoutingProvider ───────────────────────────────────────────────────────────

// RoutingProvider registers the HTTP router. Every bean providing
// routing.Registrar is mounted behind the request-scope middleware; the
// metrics and health endpoints sit outside it.
//
// Beans:
//   - "router" → *routing.Router
type RoutingProvider struct {
	container.BaseConfiguration
}

func (p *RoutingProvider) Define(r *container.Registry) error {
	return r.Singleton(RouterBean, newRouter)
}

func newRouter(ctx context.Context, c *container.Container) (any, error) {
	cfg, err := container.Get[*config.Config](ctx, c, ConfigBean)
	if err != nil {
		return nil, err
	}
	log, err := container.Get[*zap.Logger](ctx, c, LoggerBean)
	if err != nil {
		return nil, err
	}
	collectors, err := container.GetAll[*metrics.Collector](ctx, c)
	if err != nil {
		return nil, err
	}
	controllers, err := container.GetAll[routing.Registrar](ctx, c)
	if err != nil {
		return nil, err
	}

	router := routing.New(log)
	m, withMetrics := collectors[MetricsBean]
	if withMetrics {
		router.Middleware(m.Middleware)
		router.Handle(cfg.Metrics.Path, m.Handler())
	}
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		gohttp.NewResponse(w).Success(map[string]any{
			"status":      "ok",
			"beans":       c.Registry().Len(),
			"openScopes":  c.OpenScopes(),
			"environment": cfg.App.Env,
		})
	})

	names := make([]string, 0, len(controllers))
	for name := range controllers {
		names = append(names, name)
	}
	slices.Sort(names)

	router.Group(func(g *routing.Router) {
		g.Middleware(gohttp.RequestScope(c, log))
		for _, name := range names {
			g.Register(controllers[name])
		}
	})
	log.Debug("routes mounted", zap.Strings("controllers", names), zap.Bool("metrics", withMetrics))
	return router, nil
}

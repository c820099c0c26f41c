package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/km-arc/go-beans/framework/config"
	"github.com/km-arc/go-beans/framework/container"
	gohttp "github.com/km-arc/go-beans/framework/http"
	"github.com/km-arc/go-beans/framework/logging"
	"github.com/km-arc/go-beans/framework/metrics"
	"github.com/km-arc/go-beans/framework/providers"
	"github.com/km-arc/go-beans/framework/routing"
)

// Application wires the configuration, logger and metrics into a container
// and serves its router over HTTP.
type Application struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *metrics.Collector // nil when metrics are disabled

	builder         *container.Builder
	container       *container.Container
	shutdownTimeout time.Duration

	bootMu sync.Mutex
	booted bool
}

// Option customises New.
type Option func(*options)

type options struct {
	logger          *zap.Logger
	configs         []container.Configuration
	shutdownTimeout time.Duration
}

// WithLogger replaces the logger built from Config.Log.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithConfigurations adds application bean configurations.
func WithConfigurations(cfgs ...container.Configuration) Option {
	return func(o *options) { o.configs = append(o.configs, cfgs...) }
}

// WithShutdownTimeout bounds how long Run waits for in-flight requests.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *options) { o.shutdownTimeout = d }
}

// New builds the container: framework beans first, then the application
// configurations, then the router that mounts every controller.
func New(cfg *config.Config, opts ...Option) (*Application, error) {
	if cfg == nil {
		return nil, errors.New("app: nil config")
	}
	o := options{shutdownTimeout: 10 * time.Second}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if log == nil {
		log = logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	}
	log = log.With(zap.String("app", cfg.App.Name))

	a := &Application{Config: cfg, Logger: log, shutdownTimeout: o.shutdownTimeout}

	copts := []container.Option{container.WithLogger(log)}
	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New(metrics.Options{EnableGo: true, EnableProcess: true})
		copts = append(copts, container.WithObserver(a.Metrics))
	}

	a.builder = container.NewBuilder(copts...)
	a.builder.Add(&providers.ConfigProvider{Config: cfg, Logger: log})
	if a.Metrics != nil {
		a.builder.Add(&providers.MetricsProvider{Collector: a.Metrics})
	}
	a.builder.Add(o.configs...)
	a.builder.Add(&providers.RoutingProvider{})

	c, err := a.builder.Build()
	if err != nil {
		return nil, fmt.Errorf("app: build container: %w", err)
	}
	a.container = c
	return a, nil
}

// Container returns the application container.
func (a *Application) Container() *container.Container { return a.container }

// Boot creates the eager singletons and runs the configurations' boot hooks.
// Only the first successful call does any work.
func (a *Application) Boot(ctx context.Context) error {
	a.bootMu.Lock()
	defer a.bootMu.Unlock()
	if a.booted {
		return nil
	}
	if err := a.builder.Boot(ctx, a.container); err != nil {
		return fmt.Errorf("app: boot: %w", err)
	}
	a.booted = true
	a.Logger.Info("application booted",
		zap.String("env", a.Config.App.Env),
		zap.Int("beans", a.container.Registry().Len()),
	)
	return nil
}

// Router resolves the router bean.
func (a *Application) Router(ctx context.Context) (*routing.Router, error) {
	return container.Get[*routing.Router](ctx, a.container, providers.RouterBean)
}

// Handler boots the application if needed and returns its router.
func (a *Application) Handler(ctx context.Context) (http.Handler, error) {
	if err := a.Boot(ctx); err != nil {
		return nil, err
	}
	r, err := a.Router(ctx)
	if err != nil {
		return nil, err
	}
	return r.Handler(), nil
}

// Run serves HTTP on Config.Addr until ctx is cancelled, then drains
// in-flight requests and shuts the container down.
func (a *Application) Run(ctx context.Context) (err error) {
	h, err := a.Handler(ctx)
	if err != nil {
		return multierr.Append(err, a.Shutdown())
	}
	srv := &http.Server{
		Addr:              a.Config.Addr(),
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err = <-errCh:
	case <-ctx.Done():
		a.Logger.Info("shutting down http server")
		sctx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()
		err = srv.Shutdown(sctx)
	}
	return multierr.Append(err, a.Shutdown())
}

// Shutdown tears the container down and flushes the logger.
func (a *Application) Shutdown() error {
	err := a.container.Shutdown()
	_ = a.Logger.Sync()
	return err
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config.App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }

// Controller is an embeddable base for HTTP controllers.
type Controller struct{}

func (c *Controller) Request(r *http.Request) *gohttp.Request {
	return gohttp.NewRequest(r)
}
func (c *Controller) Response(w http.ResponseWriter) *gohttp.Response {
	return gohttp.NewResponse(w)
}

package container

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Container resolves beans from a sealed Registry and owns the singleton
// store and the set of open request scopes.
//
// Bean creation runs the factory on the caller's goroutine. A factory that
// blocks (network dial, disk) blocks every caller waiting on the same bean.
type Container struct {
	registry   *Registry
	singletons *instanceStore
	prototypes Store
	logger     *zap.Logger
	observer   Observer

	mu      sync.Mutex
	open    map[*RequestScope]struct{}
	nextSeq uint64
	closed  atomic.Bool
}

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger used for lifecycle events. The default
// discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Container) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver attaches an Observer, e.g. a metrics collector.
func WithObserver(o Observer) Option {
	return func(c *Container) {
		if o != nil {
			c.observer = o
		}
	}
}

// New creates a container over reg and seals it.
func New(reg *Registry, opts ...Option) *Container {
	c := &Container{
		registry:   reg,
		prototypes: prototypeStore{},
		logger:     zap.NewNop(),
		observer:   nopObserver{},
		open:       make(map[*RequestScope]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("container")
	c.singletons = newInstanceStore(Singleton, reg, c.logger, c.observer)
	reg.Seal()
	return c
}

// Registry returns the definitions backing the container.
func (c *Container) Registry() *Registry { return c.registry }

// ── Resolution ────────────────────────────────────────────────────────────────

// Resolve returns the bean registered under name (or an alias).
//
// Request-scoped beans need ctx to carry a scope from BeginRequestScope.
func (c *Container) Resolve(ctx context.Context, name string) (any, error) {
	def, err := c.registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	return c.resolve(ctx, def)
}

// ResolveCapability returns the single bean providing capability. Zero
// matches fail with UnknownKeyError and several with AmbiguousResolutionError;
// the container never picks one on its own.
func (c *Container) ResolveCapability(ctx context.Context, capability Capability) (any, error) {
	defs := c.registry.LookupByCapability(capability)
	switch len(defs) {
	case 0:
		return nil, UnknownKeyError{Capability: capability}
	case 1:
		return c.resolve(ctx, defs[0])
	default:
		names := make([]string, len(defs))
		for i, d := range defs {
			names[i] = d.Name
		}
		return nil, AmbiguousResolutionError{Capability: capability, Candidates: names}
	}
}

// ResolveNamed returns the bean called name, checking that it provides
// capability. It is how callers disambiguate ResolveCapability.
func (c *Container) ResolveNamed(ctx context.Context, capability Capability, name string) (any, error) {
	def, err := c.registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	if !def.Provides(capability) {
		return nil, UnknownKeyError{Name: name, Capability: capability}
	}
	return c.resolve(ctx, def)
}

// ResolveAll returns every bean providing capability keyed by bean name.
// The result is empty, not an error, when nothing matches.
func (c *Container) ResolveAll(ctx context.Context, capability Capability) (map[string]any, error) {
	defs := c.registry.LookupByCapability(capability)
	out := make(map[string]any, len(defs))
	for _, def := range defs {
		inst, err := c.resolve(ctx, def)
		if err != nil {
			return nil, err
		}
		out[def.Name] = inst
	}
	return out, nil
}

func (c *Container) resolve(ctx context.Context, def *Definition) (any, error) {
	if c.closed.Load() {
		return nil, ErrContainerClosed
	}
	ctx, err := enter(ctx, def.Name)
	if err != nil {
		return nil, err
	}

	switch def.Scope {
	case Singleton:
		return c.singletons.getOrCreate(def.Name, func() (any, error) {
			return c.create(withoutRequestScope(ctx), def)
		})

	case Prototype:
		if inst, ok := c.prototypes.Get(def.Name); ok {
			return inst, nil
		}
		return c.create(ctx, def)

	case Request:
		scope, ok := RequestScopeFrom(ctx)
		if !ok || scope.container != c || !scope.Active() {
			return nil, NoActiveScopeError{Name: def.Name}
		}
		return scope.store.getOrCreate(def.Name, func() (any, error) {
			return c.create(ctx, def)
		})
	}
	return nil, fmt.Errorf("%w: %q has %s", ErrInvalidDefinition, def.Name, def.Scope)
}

// create runs the factory and the init hook. Panics in either are turned
// into errors.
func (c *Container) create(ctx context.Context, def *Definition) (inst any, err error) {
	defer func() {
		if r := recover(); r != nil {
			inst, err = nil, fmt.Errorf("bean %q: panic: %v", def.Name, r)
		}
	}()

	inst, err = def.Factory(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("bean %q: %w", def.Name, err)
	}
	if inst == nil {
		return nil, fmt.Errorf("bean %q: %w", def.Name, ErrNilInstance)
	}
	if def.Init != nil {
		if err := def.Init(inst); err != nil {
			return nil, fmt.Errorf("init %q: %w", def.Name, err)
		}
	}

	c.logger.Debug("bean created", zap.String("bean", def.Name), zap.Stringer("scope", def.Scope))
	c.observer.BeanCreated(def.Name, def.Scope)
	return inst, nil
}

// Boot creates every non-lazy singleton in registration order, so wiring
// errors surface at startup instead of on the first request.
func (c *Container) Boot(ctx context.Context) error {
	for _, name := range c.registry.Names() {
		def, err := c.registry.Lookup(name)
		if err != nil {
			return err
		}
		if def.Scope != Singleton || def.Lazy {
			continue
		}
		if _, err := c.resolve(ctx, def); err != nil {
			return err
		}
	}
	return nil
}

// ── Request scopes ────────────────────────────────────────────────────────────

// BeginRequestScope opens a new request store and returns a context that
// carries it. A scope begun from a context that already carries one shadows
// it; code holding the outer context keeps seeing the outer scope.
//
//	ctx, scope := c.BeginRequestScope(r.Context())
//	defer scope.End()
func (c *Container) BeginRequestScope(ctx context.Context) (context.Context, *RequestScope) {
	parent, _ := RequestScopeFrom(ctx)
	if parent != nil && parent.container != c {
		parent = nil
	}
	scope := &RequestScope{
		id:        newScopeID(),
		container: c,
		parent:    parent,
		store:     newInstanceStore(Request, c.registry, c.logger, c.observer),
	}

	c.mu.Lock()
	c.nextSeq++
	scope.seq = c.nextSeq
	if !c.closed.Load() {
		c.open[scope] = struct{}{}
	}
	c.mu.Unlock()

	c.observer.ScopeOpened()
	return withRequestScope(ctx, scope), scope
}

// EndRequestScope tears down the scope's beans in reverse creation order.
// Ending a scope that was already ended, or that belongs to another
// container, returns ErrScopeNotActive and does nothing else.
func (c *Container) EndRequestScope(scope *RequestScope) error {
	if scope == nil {
		return ErrScopeNotActive
	}
	c.mu.Lock()
	if _, ok := c.open[scope]; !ok || scope.container != c {
		c.mu.Unlock()
		return ErrScopeNotActive
	}
	delete(c.open, scope)
	c.mu.Unlock()

	return c.teardownScope(scope)
}

func (c *Container) teardownScope(scope *RequestScope) error {
	scope.ended.Store(true)
	err := scope.store.Teardown()
	c.observer.ScopeClosed()
	return err
}

// OpenScopes returns the number of request scopes not yet ended.
func (c *Container) OpenScopes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.open)
}

// ── Shutdown ──────────────────────────────────────────────────────────────────

// Shutdown ends any request scope still open, newest first, then tears down
// the singletons. Destroy failures are returned together; every hook still
// runs. Calling Shutdown again is a no-op.
func (c *Container) Shutdown() error {
	if c.closed.Swap(true) {
		return nil
	}

	c.mu.Lock()
	leaked := make([]*RequestScope, 0, len(c.open))
	for s := range c.open {
		leaked = append(leaked, s)
	}
	c.open = make(map[*RequestScope]struct{})
	c.mu.Unlock()

	slices.SortFunc(leaked, func(a, b *RequestScope) int { return cmp.Compare(b.seq, a.seq) })

	var errs error
	for _, s := range leaked {
		c.logger.Warn("request scope still open at shutdown, tearing it down",
			zap.String("scope", s.id),
			zap.Int("beans", s.store.Len()),
		)
		errs = multierr.Append(errs, c.teardownScope(s))
	}
	errs = multierr.Append(errs, c.singletons.Teardown())

	if errs != nil {
		c.logger.Warn("shutdown completed with destroy failures",
			zap.Int("failures", len(multierr.Errors(errs))),
		)
	}
	return errs
}

// Closed reports whether Shutdown has been called.
func (c *Container) Closed() bool { return c.closed.Load() }

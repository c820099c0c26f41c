// Package container is a small dependency-injection container with
// singleton, prototype and request lifetimes.
//
// # Overview
//
// Beans are declared up front on a Registry, either directly or through
// Configuration values collected by a Builder. There is no reflection-based
// wiring: every Factory resolves its own dependencies from the container it
// is handed.
//
// # Lifecycle
//
//  1. Define:  b := container.NewBuilder(container.WithLogger(log)); b.Add(app.Config{})
//  2. Build:   c, err := b.Build()     // seals the registry
//  3. Boot:    b.Boot(ctx, c)          // creates eager singletons
//  4. Serve:   ctx, scope := c.BeginRequestScope(ctx); defer scope.End()
//  5. Stop:    c.Shutdown()            // destroy hooks, newest first
//
// # Scopes
//
//	// Singleton: one instance until Shutdown
//	reg.Singleton("memberRepository", newRepo)
//
//	// Prototype: new instance on each resolution, never destroyed by the container
//	reg.Prototype("orderDraft", newDraft)
//
//	// Request: one instance per RequestScope, destroyed when the scope ends
//	reg.RequestScoped("requestLogger", newLogger,
//	    container.OnInit(container.HookFor((*common.RequestLogger).Init)),
//	    container.OnDestroy(container.HookFor((*common.RequestLogger).Close)),
//	)
//
// # Resolving
//
//	// By name
//	svc, err := container.Get[*member.Service](ctx, c, "memberService")
//
//	// By capability; fails with AmbiguousResolutionError when two beans match
//	policy, err := container.GetByCapability[discount.Policy](ctx, c)
//
//	// By capability and name
//	policy, err := container.GetNamed[discount.Policy](ctx, c, "rateDiscountPolicy")
//
// # Providers
//
// A singleton must not hold a request-scoped or prototype bean directly: it
// would keep the first instance forever. It holds a Provider instead and
// resolves through it with the context of the current call:
//
//	logger := container.NewProvider[*common.RequestLogger](c, "requestLogger")
//	l, err := logger.Get(r.Context())
//
// Singleton factories never see the caller's request scope, so resolving a
// request-scoped bean straight from one fails with NoActiveScopeError.
//
// # Concurrency
//
// Definitions are read-only after Build. Concurrent first resolutions of a
// singleton run its factory once; the other callers receive the same
// instance. A RequestScope belongs to one unit of work and travels in its
// context.Context.
package container

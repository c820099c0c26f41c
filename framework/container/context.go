package container

import (
	"context"
	"slices"
	"sync/atomic"

	"github.com/google/uuid"
)

type scopeKey struct{}

type pathKey struct{}

// RequestScope is the handle of one request store. It travels inside a
// context.Context rather than being looked up from the current goroutine.
type RequestScope struct {
	id        string
	seq       uint64
	container *Container
	parent    *RequestScope
	store     *instanceStore
	ended     atomic.Bool
}

// ID returns the random identifier assigned when the scope began.
func (s *RequestScope) ID() string { return s.id }

// Parent returns the scope this one shadows, or nil.
func (s *RequestScope) Parent() *RequestScope { return s.parent }

// Active reports whether the scope has not been ended yet.
func (s *RequestScope) Active() bool { return !s.ended.Load() }

// Len returns the number of request-scoped beans created so far.
func (s *RequestScope) Len() int { return s.store.Len() }

// End tears the scope down. It is shorthand for Container.EndRequestScope.
func (s *RequestScope) End() error { return s.container.EndRequestScope(s) }

// RequestScopeFrom returns the innermost request scope carried by ctx.
func RequestScopeFrom(ctx context.Context) (*RequestScope, bool) {
	s, _ := ctx.Value(scopeKey{}).(*RequestScope)
	return s, s != nil
}

func withRequestScope(ctx context.Context, s *RequestScope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

// withoutRequestScope hides any request scope from a singleton factory, so
// a singleton cannot capture one request's bean for its whole lifetime.
func withoutRequestScope(ctx context.Context) context.Context {
	if _, ok := RequestScopeFrom(ctx); !ok {
		return ctx
	}
	return context.WithValue(ctx, scopeKey{}, (*RequestScope)(nil))
}

// ── Resolution path ───────────────────────────────────────────────────────────

type resolutionPath struct {
	name   string
	parent *resolutionPath
}

// enter pushes name onto the resolution path carried by ctx, failing if it
// is already there.
func enter(ctx context.Context, name string) (context.Context, error) {
	head, _ := ctx.Value(pathKey{}).(*resolutionPath)
	for p := head; p != nil; p = p.parent {
		if p.name != name {
			continue
		}
		path := []string{name}
		for q := head; q != nil; q = q.parent {
			path = append(path, q.name)
		}
		slices.Reverse(path)
		return ctx, CircularDependencyError{Path: path}
	}
	return context.WithValue(ctx, pathKey{}, &resolutionPath{name: name, parent: head}), nil
}

func newScopeID() string { return uuid.NewString() }

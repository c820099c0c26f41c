package container

import "context"

// Provider is a lazy handle on one bean. It holds no instance: every Get
// goes back to the container, so a long-lived consumer gets a fresh
// prototype each call, or the bean of whichever request scope ctx carries.
//
//	type LogDemoService struct {
//	    logger *container.Provider[*common.RequestLogger]
//	}
//
//	func (s *LogDemoService) Logic(ctx context.Context, id string) error {
//	    l, err := s.logger.Get(ctx)
//	    ...
//	}
type Provider[T any] struct {
	container *Container
	name      string
}

// NewProvider returns a handle resolving name on demand. Nothing is looked
// up until Get.
func NewProvider[T any](c *Container, name string) *Provider[T] {
	return &Provider[T]{container: c, name: name}
}

// Name returns the bean name the handle resolves.
func (p *Provider[T]) Name() string { return p.name }

// Get resolves the bean now.
func (p *Provider[T]) Get(ctx context.Context) (T, error) {
	return Get[T](ctx, p.container, p.name)
}

// MustGet is like Get but panics on error.
func (p *Provider[T]) MustGet(ctx context.Context) T {
	return MustGet[T](ctx, p.container, p.name)
}

package container

import (
	"context"
	"fmt"
)

// ── Configuration ─────────────────────────────────────────────────────────────

// Configuration lists a group of bean definitions. Every configuration is
// applied before the container is created, so definitions may refer to
// beans declared by another configuration.
//
//	type AppConfig struct{ container.BaseConfiguration }
//
//	func (AppConfig) Define(r *container.Registry) error {
//	    return r.Singleton("memberRepository", newMemoryRepository)
//	}
type Configuration interface {
	Define(r *Registry) error
}

// Booter is implemented by configurations that must run once all beans are
// resolvable, e.g. to seed data.
type Booter interface {
	Boot(ctx context.Context, c *Container) error
}

// ConfigurationFunc adapts a plain function to Configuration.
type ConfigurationFunc func(r *Registry) error

func (f ConfigurationFunc) Define(r *Registry) error { return f(r) }

// BaseConfiguration is an embeddable no-op Booter.
type BaseConfiguration struct{}

func (BaseConfiguration) Boot(context.Context, *Container) error { return nil }

// ── Builder ───────────────────────────────────────────────────────────────────

// Builder collects configurations and produces a container over a sealed
// registry.
type Builder struct {
	opts    []Option
	configs []Configuration
	seen    map[Configuration]bool
	built   bool
}

// NewBuilder creates a builder. opts are passed to New.
func NewBuilder(opts ...Option) *Builder {
	return &Builder{opts: opts, seen: make(map[Configuration]bool)}
}

// Add queues configurations. Adding the same configuration value twice is
// ignored.
func (b *Builder) Add(cfgs ...Configuration) *Builder {
	for _, cfg := range cfgs {
		if cfg == nil || b.isSeen(cfg) {
			continue
		}
		b.configs = append(b.configs, cfg)
	}
	return b
}

// isSeen guards against unhashable configuration values (e.g. funcs), which
// are always accepted.
func (b *Builder) isSeen(cfg Configuration) (seen bool) {
	defer func() {
		if recover() != nil {
			seen = false
		}
	}()
	if b.seen[cfg] {
		return true
	}
	b.seen[cfg] = true
	return false
}

// Configurations returns the queued configurations in order.
func (b *Builder) Configurations() []Configuration {
	out := make([]Configuration, len(b.configs))
	copy(out, b.configs)
	return out
}

// Build applies every configuration to a fresh registry, seals it, and
// returns the container. A Builder can only be built once.
func (b *Builder) Build() (*Container, error) {
	if b.built {
		return nil, fmt.Errorf("%w: builder already used", ErrRegistrySealed)
	}
	b.built = true

	reg := NewRegistry()
	for _, cfg := range b.configs {
		if err := cfg.Define(reg); err != nil {
			return nil, fmt.Errorf("configuration %T: %w", cfg, err)
		}
	}
	return New(reg, b.opts...), nil
}

// Boot creates the eager singletons and then runs each Booter configuration
// in the order they were added.
func (b *Builder) Boot(ctx context.Context, c *Container) error {
	if err := c.Boot(ctx); err != nil {
		return err
	}
	for _, cfg := range b.configs {
		booter, ok := cfg.(Booter)
		if !ok {
			continue
		}
		if err := booter.Boot(ctx, c); err != nil {
			return fmt.Errorf("boot %T: %w", cfg, err)
		}
	}
	return nil
}

package container

import (
	"context"
	"reflect"
	"slices"
)

// Capability names the role a bean satisfies, used for type-based lookup.
type Capability string

// CapabilityOf returns the capability name of T, e.g. "discount.Policy".
//
//	c := container.CapabilityOf[discount.Policy]()
func CapabilityOf[T any]() Capability {
	return Capability(reflect.TypeFor[T]().String())
}

// Factory builds a bean. The context carries the active request scope, if
// any, which the factory must pass on when it resolves its own dependencies.
//
//	func(ctx context.Context, c *container.Container) (any, error) {
//	    repo, err := container.Get[member.Repository](ctx, c, "memberRepository")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return member.NewService(repo), nil
//	}
type Factory func(ctx context.Context, c *Container) (any, error)

// Hook is a lifecycle callback run on a bean after creation or before
// destruction.
type Hook func(instance any) error

// Definition describes how to build a bean. It is immutable once registered.
type Definition struct {
	Name         string
	Capabilities []Capability
	Scope        Scope
	Factory      Factory
	Init         Hook
	Destroy      Hook

	// Lazy singletons are skipped by Container.Boot and only created on first
	// resolution.
	Lazy bool
}

// Provides reports whether the definition declares capability c.
func (d *Definition) Provides(c Capability) bool {
	return slices.Contains(d.Capabilities, c)
}

func (d *Definition) clone() *Definition {
	cp := *d
	cp.Capabilities = slices.Clone(d.Capabilities)
	return &cp
}

// ── Definition options ────────────────────────────────────────────────────────

// DefOption customises a definition registered through the Registry helpers.
type DefOption func(*Definition)

// As declares the capabilities the bean provides.
func As(caps ...Capability) DefOption {
	return func(d *Definition) { d.Capabilities = append(d.Capabilities, caps...) }
}

// OnInit sets the hook run once right after the factory returns.
func OnInit(h Hook) DefOption {
	return func(d *Definition) { d.Init = h }
}

// OnDestroy sets the hook run when the owning scope is torn down.
// Prototype beans never receive it.
func OnDestroy(h Hook) DefOption {
	return func(d *Definition) { d.Destroy = h }
}

// Lazy excludes a singleton from Container.Boot.
func Lazy() DefOption {
	return func(d *Definition) { d.Lazy = true }
}

// HookFor adapts a typed callback into a Hook.
//
//	container.OnDestroy(container.HookFor((*network.Client).Disconnect))
func HookFor[T any](fn func(T) error) Hook {
	return func(instance any) error {
		typed, ok := instance.(T)
		if !ok {
			return typeMismatch[T]("", instance)
		}
		return fn(typed)
	}
}

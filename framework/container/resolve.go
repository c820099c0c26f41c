package container

import (
	"context"
	"fmt"
)

// Get resolves name and asserts the result to T.
//
//	svc, err := container.Get[*member.Service](ctx, c, "memberService")
func Get[T any](ctx context.Context, c *Container, name string) (T, error) {
	inst, err := c.Resolve(ctx, name)
	if err != nil {
		var zero T
		return zero, err
	}
	return assertType[T](name, inst)
}

// MustGet is like Get but panics on error. Intended for composition roots
// and tests.
func MustGet[T any](ctx context.Context, c *Container, name string) T {
	v, err := Get[T](ctx, c, name)
	if err != nil {
		panic(err)
	}
	return v
}

// GetByCapability resolves the single bean providing CapabilityOf[T].
//
//	policy, err := container.GetByCapability[discount.Policy](ctx, c)
func GetByCapability[T any](ctx context.Context, c *Container) (T, error) {
	inst, err := c.ResolveCapability(ctx, CapabilityOf[T]())
	if err != nil {
		var zero T
		return zero, err
	}
	return assertType[T]("", inst)
}

// GetNamed resolves name, checking it provides CapabilityOf[T].
func GetNamed[T any](ctx context.Context, c *Container, name string) (T, error) {
	inst, err := c.ResolveNamed(ctx, CapabilityOf[T](), name)
	if err != nil {
		var zero T
		return zero, err
	}
	return assertType[T](name, inst)
}

// GetAll resolves every bean providing CapabilityOf[T], keyed by bean name.
func GetAll[T any](ctx context.Context, c *Container) (map[string]T, error) {
	all, err := c.ResolveAll(ctx, CapabilityOf[T]())
	if err != nil {
		return nil, err
	}
	out := make(map[string]T, len(all))
	for name, inst := range all {
		typed, err := assertType[T](name, inst)
		if err != nil {
			return nil, err
		}
		out[name] = typed
	}
	return out, nil
}

func assertType[T any](name string, inst any) (T, error) {
	typed, ok := inst.(T)
	if !ok {
		var zero T
		return zero, typeMismatch[T](name, inst)
	}
	return typed, nil
}

func typeMismatch[T any](name string, inst any) error {
	if name == "" {
		return fmt.Errorf("%w: got %T, want %s", ErrTypeMismatch, inst, CapabilityOf[T]())
	}
	return fmt.Errorf("%w: %q is %T, want %s", ErrTypeMismatch, name, inst, CapabilityOf[T]())
}

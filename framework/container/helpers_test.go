package container_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-beans/framework/container"
)

// ── fixtures ──────────────────────────────────────────────────────────────────

type bean struct {
	name string
	seq  int64
}

// counter hands out increasing sequence numbers to built beans.
type counter struct{ n atomic.Int64 }

func (c *counter) factory(name string) container.Factory {
	return func(context.Context, *container.Container) (any, error) {
		return &bean{name: name, seq: c.n.Add(1)}, nil
	}
}

// journal records lifecycle hook calls in order.
type journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *journal) hook(event string) container.Hook {
	return func(instance any) error {
		j.mu.Lock()
		defer j.mu.Unlock()
		j.entries = append(j.entries, event+":"+instance.(*bean).name)
		return nil
	}
}

func (j *journal) list() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]string, len(j.entries))
	copy(out, j.entries)
	return out
}

const (
	widget container.Capability = "widget"
	gadget container.Capability = "gadget"
)

func build(t *testing.T, define func(r *container.Registry), opts ...container.Option) *container.Container {
	t.Helper()
	reg := container.NewRegistry()
	define(reg)
	c := container.New(reg, opts...)
	t.Cleanup(func() { _ = c.Shutdown() })
	return c
}

func must(t *testing.T, err error) {
	t.Helper()
	require.NoError(t, err)
}

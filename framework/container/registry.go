package container

import (
	"fmt"
	"sync"
)

// Registry holds bean definitions keyed by name. It is written during
// startup and sealed before the Container starts serving resolutions.
type Registry struct {
	mu      sync.RWMutex
	defs    map[string]*Definition
	aliases map[string]string
	order   []string
	sealed  bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		defs:    make(map[string]*Definition),
		aliases: make(map[string]string),
	}
}

// ── Registration ──────────────────────────────────────────────────────────────

// Register adds a definition. The name must be unique across definitions
// and aliases.
func (r *Registry) Register(def Definition) error {
	if def.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidDefinition)
	}
	if def.Factory == nil {
		return fmt.Errorf("%w: %q has no factory", ErrInvalidDefinition, def.Name)
	}
	if def.Scope < Singleton || def.Scope > Request {
		return fmt.Errorf("%w: %q has %s", ErrInvalidDefinition, def.Name, def.Scope)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return ErrRegistrySealed
	}
	if r.taken(def.Name) {
		return DuplicateKeyError{Name: def.Name}
	}
	r.defs[def.Name] = def.clone()
	r.order = append(r.order, def.Name)
	return nil
}

// Singleton registers a process-wide bean.
//
//	reg.Singleton("memberRepository", func(context.Context, *container.Container) (any, error) {
//	    return member.NewMemoryRepository(), nil
//	}, container.As(container.CapabilityOf[member.Repository]()))
func (r *Registry) Singleton(name string, f Factory, opts ...DefOption) error {
	return r.define(name, Singleton, f, opts)
}

// Prototype registers a bean that is rebuilt on every resolution.
func (r *Registry) Prototype(name string, f Factory, opts ...DefOption) error {
	return r.define(name, Prototype, f, opts)
}

// RequestScoped registers a bean shared within one RequestScope.
func (r *Registry) RequestScoped(name string, f Factory, opts ...DefOption) error {
	return r.define(name, Request, f, opts)
}

func (r *Registry) define(name string, scope Scope, f Factory, opts []DefOption) error {
	def := Definition{Name: name, Scope: scope, Factory: f}
	for _, opt := range opts {
		opt(&def)
	}
	return r.Register(def)
}

// Alias registers an alternative name for an existing bean.
func (r *Registry) Alias(name, alias string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return ErrRegistrySealed
	}
	if name == alias {
		return fmt.Errorf("%w: %q is aliased to itself", ErrInvalidDefinition, name)
	}
	if _, ok := r.defs[r.canonical(name)]; !ok {
		return UnknownKeyError{Name: name}
	}
	if r.taken(alias) {
		return DuplicateKeyError{Name: alias}
	}
	r.aliases[alias] = r.canonical(name)
	return nil
}

// Seal freezes the registry. Later Register and Alias calls fail with
// ErrRegistrySealed.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// ── Lookup ────────────────────────────────────────────────────────────────────

// Lookup returns the definition registered under name or one of its aliases.
func (r *Registry) Lookup(name string) (*Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[r.canonical(name)]
	if !ok {
		return nil, UnknownKeyError{Name: name}
	}
	return def, nil
}

// LookupByCapability returns every definition providing c, in registration
// order. The caller decides what to do with zero or several matches.
func (r *Registry) LookupByCapability(c Capability) []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Definition
	for _, name := range r.order {
		if def := r.defs[name]; def.Provides(c) {
			out = append(out, def)
		}
	}
	return out
}

// Names returns all bean names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of definitions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// taken must be called with mu held.
func (r *Registry) taken(name string) bool {
	_, isDef := r.defs[name]
	_, isAlias := r.aliases[name]
	return isDef || isAlias
}

// canonical must be called with mu held.
func (r *Registry) canonical(name string) string {
	if target, ok := r.aliases[name]; ok {
		return target
	}
	return name
}

package container

import (
	"fmt"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Store keeps the instances created within one scope.
type Store interface {
	// Get returns the stored instance, if any.
	Get(name string) (any, bool)
	// Put stores an instance. It fails with DuplicateInstanceError if the
	// name is already present.
	Put(name string, instance any) error
	// Teardown runs destroy hooks in reverse creation order and clears the
	// store. Hook failures are logged and aggregated; they never stop the
	// remaining hooks.
	Teardown() error
	// Len returns the number of stored instances.
	Len() int
}

// ── instanceStore ─────────────────────────────────────────────────────────────

// instanceStore is the ordered store used for singleton and request scopes.
type instanceStore struct {
	scope    Scope
	registry *Registry
	logger   *zap.Logger
	observer Observer

	// creating collapses concurrent first resolutions of one name.
	creating singleflight.Group

	mu        sync.Mutex
	instances map[string]any
	order     []string
	closed    bool
}

func newInstanceStore(scope Scope, reg *Registry, logger *zap.Logger, obs Observer) *instanceStore {
	return &instanceStore{
		scope:     scope,
		registry:  reg,
		logger:    logger,
		observer:  obs,
		instances: make(map[string]any),
	}
}

func (s *instanceStore) Get(name string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inst, ok := s.instances[name]
	return inst, ok
}

func (s *instanceStore) Put(name string, instance any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	if _, ok := s.instances[name]; ok {
		return DuplicateInstanceError{Name: name}
	}
	s.instances[name] = instance
	s.order = append(s.order, name)
	return nil
}

func (s *instanceStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// getOrCreate returns the stored instance or builds exactly one, even when
// several goroutines ask for the same name at once.
func (s *instanceStore) getOrCreate(name string, create func() (any, error)) (any, error) {
	if inst, ok := s.Get(name); ok {
		return inst, nil
	}
	inst, err, _ := s.creating.Do(name, func() (any, error) {
		// A caller that missed above may arrive after the winner stored.
		if inst, ok := s.Get(name); ok {
			return inst, nil
		}
		inst, err := create()
		if err != nil {
			return nil, err
		}
		if err := s.Put(name, inst); err != nil {
			// The scope ended while the bean was being built.
			return nil, multierr.Append(fmt.Errorf("bean %q: %w", name, err), s.destroy(name, inst))
		}
		return inst, nil
	})
	return inst, err
}

func (s *instanceStore) Teardown() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	order, instances := s.order, s.instances
	s.order, s.instances = nil, make(map[string]any)
	s.mu.Unlock()

	var errs error
	for i := len(order) - 1; i >= 0; i-- {
		name := order[i]
		errs = multierr.Append(errs, s.destroy(name, instances[name]))
	}
	return errs
}

func (s *instanceStore) destroy(name string, instance any) (err error) {
	def, lookupErr := s.registry.Lookup(name)
	if lookupErr != nil || def.Destroy == nil {
		s.observer.BeanDestroyed(name, s.scope, nil)
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("destroy %q: panic: %v", name, r)
		}
		if err != nil {
			s.logger.Warn("destroy hook failed",
				zap.String("bean", name),
				zap.Stringer("scope", s.scope),
				zap.Error(err),
			)
		}
		s.observer.BeanDestroyed(name, s.scope, err)
	}()

	if hookErr := def.Destroy(instance); hookErr != nil {
		return fmt.Errorf("destroy %q: %w", name, hookErr)
	}
	return nil
}

// ── prototypeStore ────────────────────────────────────────────────────────────

// prototypeStore never retains anything, so every resolution takes the
// creation path and the container never destroys prototypes.
type prototypeStore struct{}

func (prototypeStore) Get(string) (any, bool) { return nil, false }
func (prototypeStore) Put(string, any) error  { return nil }
func (prototypeStore) Teardown() error        { return nil }
func (prototypeStore) Len() int               { return 0 }

var (
	_ Store = (*instanceStore)(nil)
	_ Store = prototypeStore{}
)

package container

// Observer receives lifecycle events from a Container. Implementations must
// be safe for concurrent use.
type Observer interface {
	BeanCreated(name string, scope Scope)
	BeanDestroyed(name string, scope Scope, err error)
	ScopeOpened()
	ScopeClosed()
}

type nopObserver struct{}

func (nopObserver) BeanCreated(string, Scope)          {}
func (nopObserver) BeanDestroyed(string, Scope, error) {}
func (nopObserver) ScopeOpened()                       {}
func (nopObserver) ScopeClosed()                       {}

package container

import (
	"errors"
	"strconv"
	"strings"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrDuplicateKey       = errors.New("container: duplicate bean name")
	ErrUnknownKey         = errors.New("container: no such bean")
	ErrAmbiguous          = errors.New("container: ambiguous resolution")
	ErrNoActiveScope      = errors.New("container: no active request scope")
	ErrDuplicateInstance  = errors.New("container: instance already stored")
	ErrCircularDependency = errors.New("container: circular dependency")
	ErrRegistrySealed     = errors.New("container: registry is sealed")
	ErrContainerClosed    = errors.New("container: container has been shut down")
	ErrScopeNotActive     = errors.New("container: request scope is not active")
	ErrStoreClosed        = errors.New("container: scope store has been torn down")
	ErrTypeMismatch       = errors.New("container: bean has unexpected type")
	ErrNilInstance        = errors.New("container: factory returned nil")
	ErrInvalidDefinition  = errors.New("container: invalid bean definition")
)

// DuplicateKeyError is returned when a bean name (or alias) is registered twice.
type DuplicateKeyError struct{ Name string }

func (e DuplicateKeyError) Error() string {
	return "container: bean " + strconv.Quote(e.Name) + " already registered"
}

func (e DuplicateKeyError) Is(target error) bool { return target == ErrDuplicateKey }

// UnknownKeyError is returned when no definition matches a name, a
// capability, or a (capability, name) pair.
type UnknownKeyError struct {
	Name       string
	Capability Capability
}

func (e UnknownKeyError) Error() string {
	switch {
	case e.Name != "" && e.Capability != "":
		return "container: no bean " + strconv.Quote(e.Name) + " providing " + strconv.Quote(string(e.Capability))
	case e.Capability != "":
		return "container: no bean provides " + strconv.Quote(string(e.Capability))
	default:
		return "container: no bean named " + strconv.Quote(e.Name)
	}
}

func (e UnknownKeyError) Is(target error) bool { return target == ErrUnknownKey }

// AmbiguousResolutionError is returned when a capability matches more than
// one definition and no name was given.
type AmbiguousResolutionError struct {
	Capability Capability
	Candidates []string
}

func (e AmbiguousResolutionError) Error() string {
	return "container: " + strconv.Quote(string(e.Capability)) + " is provided by " +
		strconv.Itoa(len(e.Candidates)) + " beans [" + strings.Join(e.Candidates, ", ") + "]"
}

func (e AmbiguousResolutionError) Is(target error) bool { return target == ErrAmbiguous }

// NoActiveScopeError is returned when a request-scoped bean is resolved
// with a context that carries no live RequestScope.
type NoActiveScopeError struct{ Name string }

func (e NoActiveScopeError) Error() string {
	return "container: request scope is not active for bean " + strconv.Quote(e.Name) +
		"; resolve it through a Provider or inside BeginRequestScope"
}

func (e NoActiveScopeError) Is(target error) bool { return target == ErrNoActiveScope }

// DuplicateInstanceError is returned by Store.Put when the name is already stored.
type DuplicateInstanceError struct{ Name string }

func (e DuplicateInstanceError) Error() string {
	return "container: instance of " + strconv.Quote(e.Name) + " already stored"
}

func (e DuplicateInstanceError) Is(target error) bool { return target == ErrDuplicateInstance }

// CircularDependencyError reports the resolution path that looped back.
type CircularDependencyError struct{ Path []string }

func (e CircularDependencyError) Error() string {
	return "container: circular dependency " + strings.Join(e.Path, " -> ")
}

func (e CircularDependencyError) Is(target error) bool { return target == ErrCircularDependency }

package container

import (
	"fmt"
	"strings"
)

// Scope is the lifetime policy of a bean.
type Scope int

const (
	// Singleton beans are created once and shared until Shutdown.
	Singleton Scope = iota
	// Prototype beans are created on every resolution and never stored.
	Prototype
	// Request beans are created once per active RequestScope.
	Request
)

// String returns the lowercase scope name.
func (s Scope) String() string {
	switch s {
	case Singleton:
		return "singleton"
	case Prototype:
		return "prototype"
	case Request:
		return "request"
	default:
		return fmt.Sprintf("scope(%d)", int(s))
	}
}

// ParseScope is the inverse of Scope.String. It is case-insensitive.
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "singleton", "":
		return Singleton, nil
	case "prototype":
		return Prototype, nil
	case "request":
		return Request, nil
	}
	return 0, fmt.Errorf("container: unknown scope %q", s)
}

package member

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when no member has the requested ID.
var ErrNotFound = errors.New("member: not found")

// Grade decides which discounts a member is eligible for.
type Grade int

const (
	Basic Grade = iota
	VIP
)

func (g Grade) String() string {
	switch g {
	case Basic:
		return "BASIC"
	case VIP:
		return "VIP"
	default:
		return fmt.Sprintf("Grade(%d)", int(g))
	}
}

// ParseGrade accepts "BASIC" or "VIP" in any case.
func ParseGrade(s string) (Grade, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BASIC":
		return Basic, nil
	case "VIP":
		return VIP, nil
	}
	return 0, fmt.Errorf("member: unknown grade %q", s)
}

func (g Grade) MarshalText() ([]byte, error) { return []byte(g.String()), nil }

func (g *Grade) UnmarshalText(b []byte) error {
	parsed, err := ParseGrade(string(b))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

type Member struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Grade Grade  `json:"grade"`
}

// Repository stores members.
type Repository interface {
	Save(ctx context.Context, m Member) error
	FindByID(ctx context.Context, id int64) (Member, error)
}

package order

import (
	"context"

	"github.com/google/uuid"
)

// Draft collects one order request before it is priced. It is mutable, so
// it is registered as a prototype: every caller gets its own.
type Draft struct {
	ID        string `json:"-"`
	MemberID  int64  `json:"memberId"`
	ItemName  string `json:"itemName"`
	ItemPrice int    `json:"itemPrice"`
}

func NewDraft() *Draft {
	return &Draft{ID: uuid.NewString()}
}

// Place prices the draft through s.
func (d *Draft) Place(ctx context.Context, s *Service) (Order, error) {
	return s.CreateOrder(ctx, d.MemberID, d.ItemName, d.ItemPrice)
}

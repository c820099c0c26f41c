package order

import (
	"context"
	"fmt"

	"github.com/km-arc/go-beans/app/discount"
	"github.com/km-arc/go-beans/app/member"
)

type Order struct {
	MemberID      int64  `json:"memberId"`
	ItemName      string `json:"itemName"`
	ItemPrice     int    `json:"itemPrice"`
	DiscountPrice int    `json:"discountPrice"`
}

// CalculatePrice returns what the member pays.
func (o Order) CalculatePrice() int { return o.ItemPrice - o.DiscountPrice }

func (o Order) String() string {
	return fmt.Sprintf("Order{memberId=%d, itemName=%s, itemPrice=%d, discountPrice=%d}",
		o.MemberID, o.ItemName, o.ItemPrice, o.DiscountPrice)
}

// Service prices orders with whatever discount.Policy it was built with.
type Service struct {
	members member.Repository
	policy  discount.Policy
}

func NewService(members member.Repository, policy discount.Policy) *Service {
	return &Service{members: members, policy: policy}
}

func (s *Service) CreateOrder(ctx context.Context, memberID int64, itemName string, itemPrice int) (Order, error) {
	m, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		return Order{}, fmt.Errorf("create order for member %d: %w", memberID, err)
	}
	return Order{
		MemberID:      memberID,
		ItemName:      itemName,
		ItemPrice:     itemPrice,
		DiscountPrice: s.policy.Discount(m, itemPrice),
	}, nil
}

func (s *Service) MemberRepository() member.Repository { return s.members }
func (s *Service) Policy() discount.Policy             { return s.policy }

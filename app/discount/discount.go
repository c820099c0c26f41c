// Package discount holds the interchangeable discount policies. Swapping the
// policy bean is the only change needed to reprice every order.
package discount

import "github.com/km-arc/go-beans/app/member"

// Policy returns the amount to take off price for m.
type Policy interface {
	Discount(m member.Member, price int) int
}

// FixPolicy takes a flat amount off for VIP members.
type FixPolicy struct {
	Amount int
}

func NewFixPolicy() *FixPolicy { return &FixPolicy{Amount: 1000} }

func (p *FixPolicy) Discount(m member.Member, _ int) int {
	if m.Grade != member.VIP {
		return 0
	}
	return p.Amount
}

// RatePolicy takes a percentage off for VIP members.
type RatePolicy struct {
	Percent int
}

func NewRatePolicy() *RatePolicy { return &RatePolicy{Percent: 10} }

func (p *RatePolicy) Discount(m member.Member, price int) int {
	if m.Grade != member.VIP {
		return 0
	}
	return price * p.Percent / 100
}

var (
	_ Policy = (*FixPolicy)(nil)
	_ Policy = (*RatePolicy)(nil)
)

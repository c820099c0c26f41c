package discount_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/km-arc/go-beans/app/discount"
	"github.com/km-arc/go-beans/app/member"
)

func TestPolicies(t *testing.T) {
	vip := member.Member{ID: 1, Name: "memberVIP", Grade: member.VIP}
	basic := member.Member{ID: 2, Name: "memberBASIC", Grade: member.Basic}

	tests := []struct {
		name   string
		policy discount.Policy
		m      member.Member
		price  int
		want   int
	}{
		{"rate vip", discount.NewRatePolicy(), vip, 10000, 1000},
		{"rate vip odd price", discount.NewRatePolicy(), vip, 20000, 2000},
		{"rate basic", discount.NewRatePolicy(), basic, 10000, 0},
		{"fix vip", discount.NewFixPolicy(), vip, 20000, 1000},
		{"fix basic", discount.NewFixPolicy(), basic, 20000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.Discount(tt.m, tt.price))
		})
	}
}

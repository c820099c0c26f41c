// Package app declares the beans of the order service: members, discount
// policies, orders, the network client and the HTTP controllers.
package app

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/km-arc/go-beans/app/common"
	"github.com/km-arc/go-beans/app/discount"
	"github.com/km-arc/go-beans/app/member"
	"github.com/km-arc/go-beans/app/network"
	"github.com/km-arc/go-beans/app/order"
	"github.com/km-arc/go-beans/app/web"
	"github.com/km-arc/go-beans/framework/config"
	"github.com/km-arc/go-beans/framework/container"
	"github.com/km-arc/go-beans/framework/providers"
	"github.com/km-arc/go-beans/framework/routing"
)

const (
	MemberRepositoryBean   = "memberRepository"
	MemberServiceBean      = "memberService"
	RateDiscountPolicyBean = "rateDiscountPolicy"
	FixDiscountPolicyBean  = "fixDiscountPolicy"
	OrderServiceBean       = "orderService"
	OrderDraftBean         = "orderDraft"
	NetworkClientBean      = "networkClient"
	RequestLoggerBean      = "requestLogger"
	LogDemoServiceBean     = "logDemoService"

	LogDemoControllerBean = "logDemoController"
	MemberControllerBean  = "memberController"
	OrderControllerBean   = "orderController"
)

// policyBeans maps DISCOUNT_POLICY values to bean names.
var policyBeans = map[string]string{
	"rate": RateDiscountPolicyBean,
	"fix":  FixDiscountPolicyBean,
}

var (
	registrar = container.CapabilityOf[routing.Registrar]()
	policy    = container.CapabilityOf[discount.Policy]()
)

// Config registers the application beans. It expects the framework config
// and logger beans to be present.
type Config struct{}

func (Config) Define(r *container.Registry) error {
	return multierr.Combine(
		r.Singleton(MemberRepositoryBean, func(context.Context, *container.Container) (any, error) {
			return member.NewMemoryRepository(), nil
		}, container.As(container.CapabilityOf[member.Repository]())),

		r.Singleton(MemberServiceBean, func(ctx context.Context, c *container.Container) (any, error) {
			repo, err := container.GetByCapability[member.Repository](ctx, c)
			if err != nil {
				return nil, err
			}
			return member.NewService(repo), nil
		}),

		r.Singleton(RateDiscountPolicyBean, func(context.Context, *container.Container) (any, error) {
			return discount.NewRatePolicy(), nil
		}, container.As(policy)),
		r.Singleton(FixDiscountPolicyBean, func(context.Context, *container.Container) (any, error) {
			return discount.NewFixPolicy(), nil
		}, container.As(policy)),

		r.Singleton(OrderServiceBean, newOrderService),

		r.Prototype(OrderDraftBean, func(context.Context, *container.Container) (any, error) {
			return order.NewDraft(), nil
		}),

		r.Singleton(NetworkClientBean, func(ctx context.Context, c *container.Container) (any, error) {
			cfg, log, err := ambient(ctx, c)
			if err != nil {
				return nil, err
			}
			return network.NewClient(cfg.Network.URL, log), nil
		},
			container.OnInit(container.HookFor((*network.Client).Init)),
			container.OnDestroy(container.HookFor((*network.Client).Close)),
		),

		r.RequestScoped(RequestLoggerBean, func(ctx context.Context, c *container.Container) (any, error) {
			log, err := container.Get[*zap.Logger](ctx, c, providers.LoggerBean)
			if err != nil {
				return nil, err
			}
			return common.NewRequestLogger(log), nil
		},
			container.OnInit(container.HookFor((*common.RequestLogger).Init)),
			container.OnDestroy(container.HookFor((*common.RequestLogger).Close)),
		),

		r.Singleton(LogDemoServiceBean, func(_ context.Context, c *container.Container) (any, error) {
			return web.NewLogDemoService(container.NewProvider[*common.RequestLogger](c, RequestLoggerBean)), nil
		}),

		r.Singleton(LogDemoControllerBean, func(ctx context.Context, c *container.Container) (any, error) {
			svc, err := container.Get[*web.LogDemoService](ctx, c, LogDemoServiceBean)
			if err != nil {
				return nil, err
			}
			return web.NewLogDemoController(svc, container.NewProvider[*common.RequestLogger](c, RequestLoggerBean)), nil
		}, container.As(registrar)),

		r.Singleton(MemberControllerBean, func(ctx context.Context, c *container.Container) (any, error) {
			svc, err := container.Get[*member.Service](ctx, c, MemberServiceBean)
			if err != nil {
				return nil, err
			}
			return web.NewMemberController(svc), nil
		}, container.As(registrar)),

		r.Singleton(OrderControllerBean, func(ctx context.Context, c *container.Container) (any, error) {
			svc, err := container.Get[*order.Service](ctx, c, OrderServiceBean)
			if err != nil {
				return nil, err
			}
			return web.NewOrderController(svc, container.NewProvider[*order.Draft](c, OrderDraftBean)), nil
		}, container.As(registrar)),
	)
}

// Boot seeds a VIP member in the local environment so the order endpoint
// can be tried straight away.
func (Config) Boot(ctx context.Context, c *container.Container) error {
	cfg, log, err := ambient(ctx, c)
	if err != nil {
		return err
	}
	if cfg.App.Env != "local" {
		return nil
	}
	svc, err := container.Get[*member.Service](ctx, c, MemberServiceBean)
	if err != nil {
		return err
	}
	seed := member.Member{ID: 1, Name: "memberA", Grade: member.VIP}
	if err := svc.Join(ctx, seed); err != nil {
		return err
	}
	log.Info("seeded member", zap.Int64("member", seed.ID), zap.Stringer("grade", seed.Grade))
	return nil
}

// newOrderService picks the discount policy by name, since two beans
// provide the capability.
func newOrderService(ctx context.Context, c *container.Container) (any, error) {
	cfg, err := container.Get[*config.Config](ctx, c, providers.ConfigBean)
	if err != nil {
		return nil, err
	}
	name, ok := policyBeans[cfg.Discount.Policy]
	if !ok {
		return nil, fmt.Errorf("unknown discount policy %q", cfg.Discount.Policy)
	}
	p, err := container.GetNamed[discount.Policy](ctx, c, name)
	if err != nil {
		return nil, err
	}
	repo, err := container.Get[member.Repository](ctx, c, MemberRepositoryBean)
	if err != nil {
		return nil, err
	}
	return order.NewService(repo, p), nil
}

func ambient(ctx context.Context, c *container.Container) (*config.Config, *zap.Logger, error) {
	cfg, err := container.Get[*config.Config](ctx, c, providers.ConfigBean)
	if err != nil {
		return nil, nil, err
	}
	log, err := container.Get[*zap.Logger](ctx, c, providers.LoggerBean)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

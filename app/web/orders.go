package web

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/km-arc/go-beans/app/member"
	"github.com/km-arc/go-beans/app/order"
	"github.com/km-arc/go-beans/framework/app"
	"github.com/km-arc/go-beans/framework/container"
	gohttp "github.com/km-arc/go-beans/framework/http"
	"github.com/km-arc/go-beans/framework/http/validation"
	"github.com/km-arc/go-beans/framework/routing"
)

var orderRules = validation.Rules{
	"memberId":  "required|integer|gte:1",
	"itemName":  "required|max:100",
	"itemPrice": "required|integer|gte:0",
}

// OrderController serves POST /orders. Each request fills its own
// prototype Draft, so concurrent orders never share state.
type OrderController struct {
	app.Controller
	orders *order.Service
	drafts *container.Provider[*order.Draft]
}

func NewOrderController(orders *order.Service, drafts *container.Provider[*order.Draft]) *OrderController {
	return &OrderController{orders: orders, drafts: drafts}
}

func (c *OrderController) Routes(r *routing.Router) {
	r.Post("/orders", c.Create)
}

type orderResponse struct {
	order.Order
	Price int `json:"price"`
}

// Create handles POST /orders.
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	req, res := c.Request(r), c.Response(w)
	log := gohttp.Logger(r, nil)

	if v := validation.Make(req.All(), orderRules); v.Fails() {
		res.ValidationError(v.Errors())
		return
	}
	draft, err := c.drafts.Get(r.Context())
	if err != nil {
		log.Error("resolve order draft", zap.Error(err))
		res.ServerError()
		return
	}
	if err := req.Bind(draft); err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}

	o, err := draft.Place(r.Context(), c.orders)
	switch {
	case errors.Is(err, member.ErrNotFound):
		res.NotFound("Member not found.")
		return
	case err != nil:
		log.Error("create order", zap.String("draft", draft.ID), zap.Error(err))
		res.ServerError()
		return
	}
	log.Info("order created", zap.String("draft", draft.ID), zap.Int64("member", o.MemberID), zap.Int("price", o.CalculatePrice()))
	res.Created(orderResponse{Order: o, Price: o.CalculatePrice()})
}

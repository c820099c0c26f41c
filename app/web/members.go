package web

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/km-arc/go-beans/app/member"
	"github.com/km-arc/go-beans/framework/app"
	gohttp "github.com/km-arc/go-beans/framework/http"
	"github.com/km-arc/go-beans/framework/http/validation"
	"github.com/km-arc/go-beans/framework/routing"
)

var joinRules = validation.Rules{
	"id":    "required|integer|gte:1",
	"name":  "required|max:50",
	"grade": "required|in:BASIC,VIP",
}

// MemberController serves /members.
type MemberController struct {
	app.Controller
	members *member.Service
}

func NewMemberController(members *member.Service) *MemberController {
	return &MemberController{members: members}
}

func (c *MemberController) Routes(r *routing.Router) {
	r.Prefix("/members", func(r *routing.Router) {
		r.Post("/", c.Join)
		r.Get("/{id}", c.Show)
	})
}

// Join handles POST /members.
func (c *MemberController) Join(w http.ResponseWriter, r *http.Request) {
	req, res := c.Request(r), c.Response(w)

	if v := validation.Make(req.All(), joinRules); v.Fails() {
		res.ValidationError(v.Errors())
		return
	}
	var m member.Member
	if err := req.Bind(&m); err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}
	if err := c.members.Join(r.Context(), m); err != nil {
		gohttp.Logger(r, nil).Error("join member", zap.Int64("member", m.ID), zap.Error(err))
		res.ServerError()
		return
	}
	res.Created(m)
}

// Show handles GET /members/{id}.
func (c *MemberController) Show(w http.ResponseWriter, r *http.Request) {
	req, res := c.Request(r), c.Response(w)

	id, err := strconv.ParseInt(req.RouteParam("id"), 10, 64)
	if err != nil {
		res.NotFound()
		return
	}
	m, err := c.members.FindMember(r.Context(), id)
	switch {
	case errors.Is(err, member.ErrNotFound):
		res.NotFound("Member not found.")
	case err != nil:
		gohttp.Logger(r, nil).Error("find member", zap.Int64("member", id), zap.Error(err))
		res.ServerError()
	default:
		res.Success(m)
	}
}

package web

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/km-arc/go-beans/app/common"
	"github.com/km-arc/go-beans/framework/app"
	"github.com/km-arc/go-beans/framework/container"
	gohttp "github.com/km-arc/go-beans/framework/http"
	"github.com/km-arc/go-beans/framework/routing"
)

// LogDemoService is a singleton that logs through the request-scoped
// logger. It holds a Provider, never the logger itself.
type LogDemoService struct {
	logger *container.Provider[*common.RequestLogger]
}

func NewLogDemoService(logger *container.Provider[*common.RequestLogger]) *LogDemoService {
	return &LogDemoService{logger: logger}
}

func (s *LogDemoService) Logic(ctx context.Context, id string) error {
	l, err := s.logger.Get(ctx)
	if err != nil {
		return err
	}
	l.Log("service id = " + id)
	return nil
}

// LogDemoController serves GET /log-demo.
type LogDemoController struct {
	app.Controller
	service *LogDemoService
	logger  *container.Provider[*common.RequestLogger]
}

func NewLogDemoController(service *LogDemoService, logger *container.Provider[*common.RequestLogger]) *LogDemoController {
	return &LogDemoController{service: service, logger: logger}
}

func (c *LogDemoController) Routes(r *routing.Router) {
	r.Get("/log-demo", c.LogDemo)
}

func (c *LogDemoController) LogDemo(w http.ResponseWriter, r *http.Request) {
	req, res := c.Request(r), c.Response(w)

	l, err := c.logger.Get(r.Context())
	if err != nil {
		gohttp.Logger(r, nil).Error("resolve request logger", zap.Error(err))
		res.ServerError()
		return
	}
	l.SetRequestURL(req.URL())
	l.Log("controller test")

	if err := c.service.Logic(r.Context(), "testId"); err != nil {
		gohttp.Logger(r, nil).Error("log demo service", zap.Error(err))
		res.ServerError()
		return
	}
	res.Text(http.StatusOK, "OK")
}

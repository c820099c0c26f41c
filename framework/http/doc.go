// Package http provides request and response helpers and the middleware
// that ties each request to a container request scope.
//
// # Request
//
//	req := gohttp.NewRequest(r)
//
//	var payload struct {
//	    MemberID int64 `json:"memberId"`
//	}
//	if err := req.Bind(&payload); err != nil { ... }
//
//	all := req.All()            // map[string]string, query + body
//	id  := req.RouteParam("id") // requires the chi router
//
// # Response
//
//	res := gohttp.NewResponse(w)
//	res.Success(data)           // 200 {"data": ..., "requestId": "..."}
//	res.Created(data)           // 201 {"data": ...}
//	res.NotFound()              // 404 {"message": "Not Found"}
//	res.ValidationError(errs)   // 422 {"message": ..., "errors": {"field": ["msg"]}}
//
// Enveloped replies carry the X-Request-Id set by RequestScope as
// "requestId". JSON writes v without an envelope.
//
// # Request scope
//
// RequestScope begins a scope per request and ends it when the handler
// returns. Handlers resolve request-scoped beans with r.Context():
//
//	r.Use(gohttp.RequestScope(c, log))
//	logger, err := container.Get[*common.RequestLogger](r.Context(), c, "requestLogger")
package http

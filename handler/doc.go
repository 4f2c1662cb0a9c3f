// Package handler adapts typed request handlers to net/http.
//
// A handler receives a Context and a request struct that the configured
// binders have already filled, and returns a Response:
//
//	type submitRequest struct {
//		Username string `form:"username" json:"username"`
//	}
//
//	http.HandleFunc("POST /signup", handler.Wrap(
//		func(ctx handler.Context, req submitRequest) handler.Response {
//			return handler.JSON(req, handler.WithJSONStatus(http.StatusCreated))
//		},
//		handler.WithBinders[handler.Context, submitRequest](binder.Form(), binder.JSON()),
//		handler.WithErrorHandler[handler.Context, submitRequest](errorHandler),
//	))
//
// Responses cover JSON envelopes, templ pages and partials, and datastar
// streams (SSE). Templ responses patch the page when the request comes from
// datastar and render the full component otherwise.
//
// Errors returned by binders or Render go to the ErrorHandler.
// NewErrorHandler maps validator.FieldErrors to 422, binder failures to 400
// or 415 and HTTPError to its own code; anything else is a 500.
package handler

package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formlab/handler"
	"github.com/dmitrymomot/formlab/pkg/binder"
)

type greetRequest struct {
	Name string `form:"name" json:"name"`
	Kind string `path:"kind"`
}

type textResponse string

func (t textResponse) Render(w http.ResponseWriter, r *http.Request) error {
	_, err := w.Write([]byte(t))
	return err
}

func greet(_ handler.Context, req greetRequest) handler.Response {
	return textResponse(req.Kind + ":" + req.Name)
}

func TestWrap(t *testing.T) {
	t.Parallel()

	path := binder.Path(func(_ *http.Request, name string) string {
		if name == "kind" {
			return "hello"
		}
		return ""
	})
	h := handler.Wrap(greet,
		handler.WithBinders[handler.Context, greetRequest](path, binder.Form(), binder.JSON()),
	)

	t.Run("form body", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("name=ann"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)
		assert.Equal(t, "hello:ann", rec.Body.String())
	})

	t.Run("json body", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"bob"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)
		assert.Equal(t, "hello:bob", rec.Body.String())
	})

	t.Run("no body binds nothing", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "hello:", rec.Body.String())
	})

	t.Run("binder failure goes to error handler", func(t *testing.T) {
		t.Parallel()
		var got error
		h := handler.Wrap(greet,
			handler.WithBinders[handler.Context, greetRequest](binder.JSON()),
			handler.WithErrorHandler[handler.Context, greetRequest](func(ctx handler.Context, err error) {
				got = err
				ctx.ResponseWriter().WriteHeader(http.StatusTeapot)
			}),
		)
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)
		assert.ErrorIs(t, got, binder.ErrInvalidJSON)
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})
}

func TestWrap_NilResponse(t *testing.T) {
	t.Parallel()

	var got error
	h := handler.Wrap(
		func(handler.Context, greetRequest) handler.Response { return nil },
		handler.WithErrorHandler[handler.Context, greetRequest](func(_ handler.Context, err error) { got = err }),
	)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, got, handler.ErrNilResponse)
}

func TestWrap_DefaultErrorHandler(t *testing.T) {
	t.Parallel()

	h := handler.Wrap(func(handler.Context, greetRequest) handler.Response {
		return handler.SSE(func(handler.StreamContext) error { return nil })
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "datastar_required")
}

func TestWrap_Decorators(t *testing.T) {
	t.Parallel()

	var order []string
	mark := func(name string) handler.Decorator[handler.Context, greetRequest] {
		return func(next handler.HandlerFunc[handler.Context, greetRequest]) handler.HandlerFunc[handler.Context, greetRequest] {
			return func(ctx handler.Context, req greetRequest) handler.Response {
				order = append(order, name)
				return next(ctx, req)
			}
		}
	}

	h := handler.Wrap(greet, handler.WithDecorators(mark("outer"), mark("inner")))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestHTTPError(t *testing.T) {
	t.Parallel()

	err := error(handler.ErrNotFound)
	wrapped := errors.Join(errors.New("variant lookup"), err)

	var httpErr handler.HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
	assert.Equal(t, "not_found", httpErr.Error())
}

func TestError(t *testing.T) {
	t.Parallel()

	var got error
	h := handler.Wrap(
		func(handler.Context, greetRequest) handler.Response { return handler.Error(handler.ErrNotFound) },
		handler.WithErrorHandler[handler.Context, greetRequest](func(_ handler.Context, err error) { got = err }),
	)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, got, handler.ErrNotFound)
}

func TestWantsJSON(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, handler.WantsJSON(req))

	req.Header.Set("Accept", "application/json")
	assert.True(t, handler.WantsJSON(req))

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	assert.True(t, handler.WantsJSON(req))
}

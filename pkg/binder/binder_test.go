package binder_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formlab/pkg/binder"
)

type signup struct {
	Username string  `form:"username" json:"username"`
	Password string  `form:"password" json:"password"`
	Age      int     `form:"age" json:"age"`
	Terms    bool    `form:"terms" json:"terms"`
	Nick     *string `form:"nick" json:"nick"`
	Ignored  string  `form:"-" json:"-"`
}

func TestForm(t *testing.T) {
	t.Parallel()

	t.Run("urlencoded keeps values verbatim", func(t *testing.T) {
		t.Parallel()
		form := url.Values{
			"username": {" john doe "},
			"password": {"<Secure1!>"},
			"age":      {"30"},
			"terms":    {"on"},
			"nick":     {"jd"},
			"Ignored":  {"x"},
		}
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var got signup
		require.NoError(t, binder.Form()(req, &got))
		assert.Equal(t, " john doe ", got.Username)
		assert.Equal(t, "<Secure1!>", got.Password)
		assert.Equal(t, 30, got.Age)
		assert.True(t, got.Terms)
		require.NotNil(t, got.Nick)
		assert.Equal(t, "jd", *got.Nick)
		assert.Empty(t, got.Ignored)
	})

	t.Run("multipart", func(t *testing.T) {
		t.Parallel()
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		require.NoError(t, mw.WriteField("username", "johndoe"))
		require.NoError(t, mw.WriteField("age", "41"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())

		var got signup
		require.NoError(t, binder.Form()(req, &got))
		assert.Equal(t, "johndoe", got.Username)
		assert.Equal(t, 41, got.Age)
	})

	t.Run("query string is not bound", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/?username=fromquery", strings.NewReader("password=x"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var got signup
		require.NoError(t, binder.Form()(req, &got))
		assert.Empty(t, got.Username)
		assert.Equal(t, "x", got.Password)
	})

	t.Run("bad number", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("age=old"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var got signup
		assert.ErrorIs(t, binder.Form()(req, &got), binder.ErrInvalidForm)
	})

	t.Run("not applicable to json", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")

		var got signup
		assert.ErrorIs(t, binder.Form()(req, &got), binder.ErrNotApplicable)
	})

	t.Run("non pointer target", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("username=a"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		assert.ErrorIs(t, binder.Form()(req, signup{}), binder.ErrInvalidForm)
	})
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("decodes and ignores unknown keys", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"johndoe","age":20,"errors":{}}`))
		req.Header.Set("Content-Type", "application/json; charset=utf-8")

		var got signup
		require.NoError(t, binder.JSON()(req, &got))
		assert.Equal(t, "johndoe", got.Username)
		assert.Equal(t, 20, got.Age)
	})

	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"malformed", `{"username":`},
		{"wrong type", `{"age":"twenty"}`},
		{"too large", `{"username":"` + strings.Repeat("a", binder.DefaultMaxJSONSize) + `"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			var got signup
			assert.ErrorIs(t, binder.JSON()(req, &got), binder.ErrInvalidJSON)
		})
	}

	t.Run("not applicable to forms", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("username=a"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var got signup
		assert.ErrorIs(t, binder.JSON()(req, &got), binder.ErrNotApplicable)
	})
}

func TestPath(t *testing.T) {
	t.Parallel()

	type route struct {
		Variant string `path:"variant"`
		Page    uint   `path:"page"`
	}
	params := map[string]string{"variant": "resolver", "page": "2"}
	extract := func(_ *http.Request, name string) string { return params[name] }

	var got route
	require.NoError(t, binder.Path(extract)(httptest.NewRequest(http.MethodGet, "/", nil), &got))
	assert.Equal(t, route{Variant: "resolver", Page: 2}, got)

	bad := func(_ *http.Request, name string) string { return "x" }
	assert.ErrorIs(t, binder.Path(bad)(httptest.NewRequest(http.MethodGet, "/", nil), &got), binder.ErrInvalidPath)
}

func TestQuery(t *testing.T) {
	t.Parallel()

	type params struct {
		Field string `query:"field"`
		Page  int    `query:"page"`
	}

	var got params
	req := httptest.NewRequest(http.MethodPost, "/basic/validate?field=email&page=3", nil)
	require.NoError(t, binder.Query()(req, &got))
	assert.Equal(t, params{Field: "email", Page: 3}, got)

	req = httptest.NewRequest(http.MethodGet, "/?page=x", nil)
	assert.ErrorIs(t, binder.Query()(req, &got), binder.ErrInvalidQuery)
}

type Credentials struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

func TestForm_EmbeddedStruct(t *testing.T) {
	t.Parallel()

	type request struct {
		Variant string `form:"variant"`
		Credentials
		Named signup
	}

	body := url.Values{"variant": {"basic"}, "email": {"a@b.co"}, "password": {"Secure1!"}, "username": {"x"}}.Encode()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var got request
	require.NoError(t, binder.Form()(req, &got))
	assert.Equal(t, "basic", got.Variant)
	assert.Equal(t, "a@b.co", got.Email)
	assert.Equal(t, "Secure1!", got.Password)
	assert.Empty(t, got.Named.Username)
}

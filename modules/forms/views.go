package forms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/formlab/handler"
	"github.com/dmitrymomot/formlab/pkg/validator"
	"github.com/dmitrymomot/formlab/svc/registration"
	"github.com/dmitrymomot/formlab/svc/users"
)

// Element ids the handlers patch into.
const (
	FormID           = "signup-form"
	FormContainerID  = "form-container"
	ToastContainerID = "toast-container"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.5/bundles/datastar.js"

type CatalogueParams struct {
	Variants []Variant
}

// PageParams feeds a variant page. Success replaces the form when set.
type PageParams struct {
	Form    FormParams
	Success *SuccessParams
}

type FormParams struct {
	Variant   Variant
	Values    registration.Raw
	Errors    validator.FieldErrors
	Submitted bool
	Notice    string
}

type FieldErrorParams struct {
	Field   string
	Message string
}

type SuccessParams struct {
	Variant Variant
	User    *users.User
	Notice  string
}

// Views holds the components the module renders. Any of them can be
// replaced to restyle the pages.
type Views struct {
	Catalogue  func(CatalogueParams) templ.Component
	Page       func(PageParams) templ.Component
	Form       func(FormParams) templ.Component
	FieldError func(FieldErrorParams) templ.Component
	Success    func(SuccessParams) templ.Component
	ErrorPage  func(handler.ErrorPageParams) templ.Component
	ErrorToast func(handler.ErrorToastParams) templ.Component
}

// ErrorHandlerConfig wires the error views into the shared error handler.
func (v *Views) ErrorHandlerConfig() handler.ErrorHandlerConfig {
	return handler.ErrorHandlerConfig{
		ErrorPage:   v.ErrorPage,
		ErrorToast:  v.ErrorToast,
		ToastTarget: "#" + ToastContainerID,
	}
}

// DefaultViews returns the built-in markup.
func DefaultViews() *Views {
	return &Views{
		Catalogue:  catalogueView,
		Page:       pageView,
		Form:       formView,
		FieldError: fieldErrorView,
		Success:    successView,
		ErrorPage:  errorPageView,
		ErrorToast: errorToastView,
	}
}

type inputSpec struct {
	field registration.Field
	label string
	kind  string
}

var inputs = []inputSpec{
	{registration.FieldUsername, "Username", "text"},
	{registration.FieldEmail, "Email", "email"},
	{registration.FieldPassword, "Password", "password"},
	{registration.FieldConfirmPassword, "Confirm password", "password"},
	{registration.FieldDateOfBirth, "Date of birth", "date"},
}

func component(build func(ctx context.Context, b *strings.Builder) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		if err := build(ctx, &b); err != nil {
			return err
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func esc(s string) string { return templ.EscapeString(s) }

func layout(b *strings.Builder, title string, body func(b *strings.Builder) error) error {
	b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	fmt.Fprintf(b, `<title>%s</title>`, esc(title))
	fmt.Fprintf(b, `<script type="module" src="%s"></script>`, datastarScript)
	b.WriteString(`</head><body>`)
	fmt.Fprintf(b, `<div id="%s" aria-live="polite"></div>`, ToastContainerID)
	if err := body(b); err != nil {
		return err
	}
	b.WriteString(`</body></html>`)
	return nil
}

func catalogueView(p CatalogueParams) templ.Component {
	return component(func(_ context.Context, b *strings.Builder) error {
		return layout(b, "Registration forms", func(b *strings.Builder) error {
			b.WriteString(`<main><h1>Registration forms</h1><ul class="variants">`)
			for _, v := range p.Variants {
				fmt.Fprintf(b, `<li class="variant accent-%s"><a href="%s"><h2>%s</h2><p>%s</p></a></li>`,
					esc(v.Accent), esc(v.Path()), esc(v.Title), esc(v.Description))
			}
			b.WriteString(`</ul></main>`)
			return nil
		})
	})
}

func pageView(p PageParams) templ.Component {
	v := p.Form.Variant
	return component(func(ctx context.Context, b *strings.Builder) error {
		return layout(b, v.Title+" registration", func(b *strings.Builder) error {
			fmt.Fprintf(b, `<main class="accent-%s"><a href="/">All forms</a><h1>%s</h1><p>%s</p>`,
				esc(v.Accent), esc(v.Title), esc(v.Description))
			fmt.Fprintf(b, `<div id="%s">`, FormContainerID)

			var inner templ.Component
			if p.Success != nil {
				inner = successView(*p.Success)
			} else {
				inner = formView(p.Form)
			}
			if err := inner.Render(ctx, b); err != nil {
				return err
			}

			b.WriteString(`</div></main>`)
			return nil
		})
	})
}

// formSignals is the initial datastar signal set of a form.
func formSignals(p FormParams) (string, error) {
	errs := make(map[string]string, len(inputs)+1)
	for _, in := range inputs {
		errs[string(in.field)] = p.Errors.Get(string(in.field))
	}
	errs[validator.FormKey] = p.Errors.Get(validator.FormKey)

	signals := map[string]any{
		"errors":     errs,
		"submitting": false,
		"submitted":  p.Submitted,
		"success":    p.Notice != "",
		"notice":     p.Notice,
	}
	for _, in := range inputs {
		signals[string(in.field)] = p.Values.Value(in.field)
	}

	data, err := json.Marshal(signals)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// fieldTrigger is the datastar attribute that validates one field, or ""
// when the variant checks on submit only.
func fieldTrigger(v Variant, field registration.Field) string {
	post := fmt.Sprintf("@post('%s?field=%s')", v.ValidatePath(), field)
	switch {
	case v.BlurValidation:
		return fmt.Sprintf(` data-on:blur="%s"`, esc(post))
	case v.LiveRevalidation:
		return fmt.Sprintf(` data-on:input__debounce.300ms="$submitted &amp;&amp; %s"`, esc(post))
	default:
		return ""
	}
}

func formView(p FormParams) templ.Component {
	v := p.Variant
	return component(func(ctx context.Context, b *strings.Builder) error {
		signals, err := formSignals(p)
		if err != nil {
			return err
		}

		fmt.Fprintf(b, `<form id="%s" method="post" action="%s" novalidate data-signals="%s" data-on:submit__prevent="%s">`,
			FormID, esc(v.Path()), esc(signals), esc(fmt.Sprintf("@post('%s')", v.Path())))

		if p.Notice != "" {
			fmt.Fprintf(b, `<p class="notice" role="status">%s</p>`, esc(p.Notice))
		}
		fmt.Fprintf(b, `<p id="%s-error" class="form-error" data-text="$errors.%s">%s</p>`,
			validator.FormKey, validator.FormKey, esc(p.Errors.Get(validator.FormKey)))

		for _, in := range inputs {
			name := string(in.field)
			b.WriteString(`<div class="field">`)
			fmt.Fprintf(b, `<label for="%s">%s</label>`, name, esc(in.label))
			fmt.Fprintf(b, `<input id="%s" name="%s" type="%s" value="%s" data-bind:%s%s>`,
				name, name, in.kind, esc(p.Values.Value(in.field)), name, fieldTrigger(v, in.field))
			if err := fieldErrorView(FieldErrorParams{Field: name, Message: p.Errors.Get(name)}).Render(ctx, b); err != nil {
				return err
			}
			b.WriteString(`</div>`)
		}

		b.WriteString(`<button type="submit" data-attr:disabled="$submitting">`)
		b.WriteString(`<span data-show="!$submitting">Create account</span>`)
		b.WriteString(`<span data-show="$submitting" style="display:none">Creating account...</span>`)
		b.WriteString(`</button></form>`)
		return nil
	})
}

func fieldErrorView(p FieldErrorParams) templ.Component {
	return component(func(_ context.Context, b *strings.Builder) error {
		fmt.Fprintf(b, `<p id="%s-error" class="field-error" data-text="$errors.%s">%s</p>`,
			esc(p.Field), esc(p.Field), esc(p.Message))
		return nil
	})
}

func successView(p SuccessParams) templ.Component {
	return component(func(_ context.Context, b *strings.Builder) error {
		b.WriteString(`<div class="success" role="status">`)
		fmt.Fprintf(b, `<p>%s</p>`, esc(p.Notice))
		if p.User != nil {
			fmt.Fprintf(b, `<dl><dt>Username</dt><dd>%s</dd><dt>Email</dt><dd>%s</dd><dt>Date of birth</dt><dd>%s</dd></dl>`,
				esc(p.User.Username), esc(p.User.Email), esc(p.User.DateOfBirth.Format(registration.DateLayout)))
		}
		fmt.Fprintf(b, `<a href="%s">Register another user</a></div>`, esc(p.Variant.Path()))
		return nil
	})
}

func errorPageView(p handler.ErrorPageParams) templ.Component {
	return component(func(_ context.Context, b *strings.Builder) error {
		title := http.StatusText(p.StatusCode)
		if title == "" {
			title = "Error"
		}
		return layout(b, title, func(b *strings.Builder) error {
			fmt.Fprintf(b, `<main class="error"><h1>%d %s</h1><p>%s</p>`, p.StatusCode, esc(title), esc(p.Error))
			if p.RequestID != "" {
				fmt.Fprintf(b, `<p class="request-id">Request ID: %s</p>`, esc(p.RequestID))
			}
			if p.RetryURL != "" {
				fmt.Fprintf(b, `<a href="%s">Try again</a>`, esc(p.RetryURL))
			}
			b.WriteString(`<a href="/">All forms</a></main>`)
			return nil
		})
	})
}

func errorToastView(p handler.ErrorToastParams) templ.Component {
	return component(func(_ context.Context, b *strings.Builder) error {
		fmt.Fprintf(b, `<div class="toast toast-%s" role="alert">%s`, esc(p.Type), esc(p.Message))
		if p.RequestID != "" {
			fmt.Fprintf(b, ` <small>%s</small>`, esc(p.RequestID))
		}
		b.WriteString(`</div>`)
		return nil
	})
}

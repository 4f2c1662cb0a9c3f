package forms

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/formlab/handler"
	"github.com/dmitrymomot/formlab/pkg/logger"
	"github.com/dmitrymomot/formlab/pkg/validator"
	"github.com/dmitrymomot/formlab/svc/registration"
	"github.com/dmitrymomot/formlab/svc/users"
)

type pageRequest struct {
	Variant string `path:"variant"`
}

type fieldRequest struct {
	Variant  string `path:"variant"`
	Field    string `query:"field" form:"field" json:"field"`
	Value    string `form:"value" json:"value"`
	Password string `form:"password" json:"password"`
}

// signalsFieldRequest carries the whole datastar form; the field to check
// comes from the query string.
type signalsFieldRequest struct {
	Variant string `path:"variant" json:"-"`
	Field   string `query:"field" json:"-"`
	registration.Raw
}

type submitRequest struct {
	Variant string `path:"variant" json:"-"`
	registration.Raw
}

// FieldResult is the JSON answer of the validation endpoint. Error is empty
// when the value is valid.
type FieldResult struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ActionState is what the action variant answers every submit with.
type ActionState struct {
	Success bool                  `json:"success"`
	Data    *users.User           `json:"data"`
	Errors  validator.FieldErrors `json:"errors"`
}

func newActionState(user *users.User, err error) ActionState {
	if err == nil {
		return ActionState{Success: true, Data: user, Errors: validator.FieldErrors{}}
	}
	if fe, ok := validator.ExtractFieldErrors(err); ok {
		return ActionState{Errors: fe}
	}
	return ActionState{Errors: validator.FieldErrors{validator.FormKey: registration.MsgUnexpected}}
}

func (a ActionState) status() int {
	switch {
	case a.Success:
		return http.StatusOK
	case a.Errors.Has(validator.FormKey):
		return http.StatusInternalServerError
	default:
		return http.StatusUnprocessableEntity
	}
}

// SuccessNotice is shown after a user has been created.
func SuccessNotice(username string) string {
	return fmt.Sprintf("User %s created successfully.", username)
}

func (s *Service) catalogue(_ handler.Context, _ struct{}) handler.Response {
	return handler.Templ(s.views.Catalogue(CatalogueParams{Variants: Variants()}))
}

func (s *Service) page(_ handler.Context, req pageRequest) handler.Response {
	v, ok := LookupVariant(req.Variant)
	if !ok {
		return handler.Error(handler.ErrNotFound)
	}
	return handler.Templ(s.views.Page(PageParams{
		Form: FormParams{Variant: v, Values: initialValues(v, s.now())},
	}))
}

func (s *Service) checkField(v Variant, name, value, password string) (registration.Field, string, error) {
	if !v.Validates() {
		return "", "", handler.ErrNotFound
	}
	field, ok := registration.ParseField(name)
	if !ok {
		return "", "", ErrUnknownField
	}
	return field, s.validator.ValidateField(field, value, registration.FieldContext{Password: password}), nil
}

func (s *Service) validateField(ctx handler.Context, req fieldRequest) handler.Response {
	v, _ := LookupVariant(req.Variant)
	field, msg, err := s.checkField(v, req.Field, req.Value, req.Password)
	if err != nil {
		return handler.Error(err)
	}

	if handler.WantsJSON(ctx.Request()) {
		return handler.RawJSON(FieldResult{Field: string(field), Error: msg})
	}
	return handler.Templ(s.views.FieldError(FieldErrorParams{Field: string(field), Message: msg}))
}

func (s *Service) validateSignals(_ handler.Context, req signalsFieldRequest) handler.Response {
	v, _ := LookupVariant(req.Variant)
	field, msg, err := s.checkField(v, req.Field, req.Raw.Value(registration.Field(req.Field)), req.Password)
	if err != nil {
		return handler.Error(err)
	}

	return handler.SSE(func(stream handler.StreamContext) error {
		return stream.SendSignal("errors", map[string]string{string(field): msg})
	})
}

// register validates raw and, when it is valid, creates the user.
func (s *Service) register(ctx context.Context, v Variant, raw registration.Raw) (*users.User, error) {
	reg, err := s.validator.Validate(raw)
	if err != nil {
		fe, _ := validator.ExtractFieldErrors(err)
		s.log.InfoContext(ctx, "registration rejected",
			logger.Variant(v.ID),
			logger.Fields(fe.Fields()),
			logger.Event("validate"),
		)
		return nil, err
	}

	user, err := s.creator.CreateUser(ctx, reg)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.InfoContext(ctx, "registration accepted",
		logger.Variant(v.ID),
		logger.UserID(user.ID),
		slog.String("username", user.Username),
		logger.Event("submit"),
	)
	return user, nil
}

func (s *Service) submit(ctx handler.Context, req submitRequest) handler.Response {
	v, ok := LookupVariant(req.Variant)
	if !ok {
		return handler.Error(handler.ErrNotFound)
	}

	user, err := s.register(ctx, v, req.Raw)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return handler.Error(err)
	}

	asJSON := handler.WantsJSON(ctx.Request())

	if v.ActionState {
		state := newActionState(user, err)
		if asJSON {
			return handler.RawJSON(state, handler.WithJSONStatus(state.status()))
		}
		form := FormParams{Variant: v, Values: req.Raw, Errors: state.Errors, Submitted: true}
		if state.Success {
			form.Values = registration.Raw{}
			form.Notice = SuccessNotice(user.Username)
		}
		return handler.TemplStatus(state.status(), s.views.Form(form), s.views.Page(PageParams{Form: form}))
	}

	if err != nil {
		fe, ok := validator.ExtractFieldErrors(err)
		if !ok {
			return handler.Error(err)
		}
		if asJSON {
			return handler.JSONError(fe)
		}
		form := FormParams{Variant: v, Values: req.Raw, Errors: fe, Submitted: true}
		return handler.TemplStatus(http.StatusUnprocessableEntity, s.views.Form(form), s.views.Page(PageParams{Form: form}))
	}

	if asJSON {
		return handler.JSON(user, handler.WithJSONStatus(http.StatusCreated))
	}
	success := &SuccessParams{Variant: v, User: user, Notice: SuccessNotice(user.Username)}
	return handler.Templ(s.views.Page(PageParams{Form: FormParams{Variant: v}, Success: success}))
}

// errorSignals holds an entry for every field so valid fields are cleared
// on the client.
func errorSignals(fe validator.FieldErrors) map[string]string {
	out := make(map[string]string, len(registration.Fields())+1)
	for _, f := range registration.Fields() {
		out[string(f)] = fe.Get(string(f))
	}
	out[validator.FormKey] = fe.Get(validator.FormKey)
	return out
}

func (s *Service) submitSignals(_ handler.Context, req submitRequest) handler.Response {
	v, ok := LookupVariant(req.Variant)
	if !ok {
		return handler.Error(handler.ErrNotFound)
	}

	return handler.SSE(func(stream handler.StreamContext) error {
		reg, err := s.validator.Validate(req.Raw)
		if err != nil {
			fe, _ := validator.ExtractFieldErrors(err)
			s.log.InfoContext(stream, "registration rejected",
				logger.Variant(v.ID),
				logger.Fields(fe.Fields()),
				logger.Event("validate"),
			)
			return stream.SendSignals(map[string]any{
				"errors":    errorSignals(fe),
				"submitted": true,
				"success":   false,
			})
		}

		if err := stream.SendSignals(map[string]any{
			"errors":     errorSignals(nil),
			"submitted":  true,
			"submitting": true,
		}); err != nil {
			return err
		}

		user, err := users.CreateUserAsync(stream, s.creator, reg).Await()
		if err != nil {
			if stream.Err() != nil {
				return stream.Err()
			}
			s.log.ErrorContext(stream, "user creation failed", logger.Variant(v.ID), logger.Error(err))
			return stream.SendSignals(map[string]any{
				"errors":     errorSignals(validator.FieldErrors{validator.FormKey: registration.MsgUnexpected}),
				"submitting": false,
				"success":    false,
			})
		}

		s.log.InfoContext(stream, "registration accepted",
			logger.Variant(v.ID),
			logger.UserID(user.ID),
			slog.String("username", user.Username),
			logger.Event("submit"),
		)

		notice := SuccessNotice(user.Username)
		if v.ActionState {
			fresh := FormParams{Variant: v, Notice: notice}
			if err := stream.SendComponent(s.views.Form(fresh), handler.WithTarget("#"+FormID)); err != nil {
				return err
			}
		} else {
			success := SuccessParams{Variant: v, User: user, Notice: notice}
			if err := stream.SendComponent(s.views.Success(success), handler.WithTarget("#"+FormContainerID), handler.WithPatchMode(handler.PatchInner)); err != nil {
				return err
			}
		}

		return stream.SendSignals(map[string]any{
			"submitting": false,
			"success":    true,
			"notice":     notice,
		})
	})
}

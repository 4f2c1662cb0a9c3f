package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/formlab/pkg/binder"
)

const (
	DataStarRequestHeader = "Datastar-Request"
	DataStarAcceptHeader  = "text/event-stream"
	DataStarQueryParam    = "datastar"
)

const (
	PatchOuter   = datastar.ElementPatchModeOuter
	PatchInner   = datastar.ElementPatchModeInner
	PatchReplace = datastar.ElementPatchModeReplace
	PatchRemove  = datastar.ElementPatchModeRemove
	PatchAppend  = datastar.ElementPatchModeAppend
	PatchPrepend = datastar.ElementPatchModePrepend
)

// IsDataStar reports whether r was issued by the datastar client.
func IsDataStar(r *http.Request) bool {
	if r.Header.Get(DataStarRequestHeader) == "true" {
		return true
	}
	if strings.Contains(r.Header.Get("Accept"), DataStarAcceptHeader) {
		return true
	}
	return r.URL.Query().Has(DataStarQueryParam)
}

// Signals binds datastar signals into v. Non-datastar requests are not
// applicable.
func Signals() Bind {
	return func(r *http.Request, v any) error {
		if !IsDataStar(r) {
			return binder.ErrNotApplicable
		}
		if err := datastar.ReadSignals(r, v); err != nil {
			return errors.Join(binder.ErrInvalidJSON, err)
		}
		return nil
	}
}

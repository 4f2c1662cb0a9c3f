package handler

import (
	"net/http"
)

// SSEHandler streams events to a datastar client.
type SSEHandler func(ctx StreamContext) error

type sseResponse struct {
	handler SSEHandler
}

func (s sseResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return NewHTTPError(http.StatusBadRequest, "datastar_required")
	}

	base := NewContext(w, r)
	sse := base.SSE()
	if sse == nil {
		return ErrSSENotInitialized
	}
	return s.handler(&streamContext{Context: base, sse: sse})
}

// SSE returns a response that opens a datastar stream and runs handler on it.
func SSE(handler SSEHandler) Response {
	return sseResponse{handler: handler}
}

package handler

import (
	"encoding/json"

	"github.com/starfederation/datastar-go/datastar"
)

// StreamContext is a Context with an open datastar stream.
type StreamContext interface {
	Context

	// SendComponent patches one component into the page.
	SendComponent(component TemplComponent, opts ...TemplOption) error

	// SendSignal patches a single signal.
	SendSignal(name string, value any) error

	// SendSignals patches several signals at once. Nested maps patch
	// nested signals.
	SendSignals(signals map[string]any) error
}

type streamContext struct {
	Context
	sse *datastar.ServerSentEventGenerator
}

func (c *streamContext) SendComponent(component TemplComponent, opts ...TemplOption) error {
	return c.sse.PatchElementTempl(component, opts...)
}

func (c *streamContext) SendSignal(name string, value any) error {
	return c.SendSignals(map[string]any{name: value})
}

func (c *streamContext) SendSignals(signals map[string]any) error {
	data, err := json.Marshal(signals)
	if err != nil {
		return err
	}
	return c.sse.PatchSignals(data)
}

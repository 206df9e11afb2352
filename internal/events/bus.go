package events

import "reflect"

// Wildcard is the reserved subscription name receiving every published event
// wrapped in an Envelope, for cross-cutting observers.
const Wildcard = "*"

// Handler receives the payload published under a subscribed event name.
type Handler func(payload any)

// Envelope is what wildcard handlers receive for each publish.
type Envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

type registration struct {
	key uintptr
	fn  Handler
}

// Bus is a synchronous publish/subscribe dispatcher. Handlers run in
// registration order, to completion, on the publishing goroutine. The bus is
// confined to a single session goroutine and is not safe for concurrent use.
type Bus struct {
	handlers map[string][]registration
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]registration)}
}

// Subscribe registers a handler under an event name. Registering the same
// function twice under one name is a no-op; identity is the function's code
// pointer, so distinct closures of one literal count as the same handler.
func (b *Bus) Subscribe(event string, h Handler) {
	key := reflect.ValueOf(h).Pointer()
	for _, reg := range b.handlers[event] {
		if reg.key == key {
			return
		}
	}
	b.handlers[event] = append(b.handlers[event], registration{key: key, fn: h})
}

// Unsubscribe removes the handler and drops the event's registration entirely
// once no handlers remain.
func (b *Bus) Unsubscribe(event string, h Handler) {
	key := reflect.ValueOf(h).Pointer()
	regs := b.handlers[event]
	kept := regs[:0]
	for _, reg := range regs {
		if reg.key != key {
			kept = append(kept, reg)
		}
	}
	if len(kept) == 0 {
		delete(b.handlers, event)
		return
	}
	b.handlers[event] = kept
}

// Publish invokes every handler registered under the event name, then every
// wildcard handler with an Envelope. Dispatch iterates a snapshot of the
// handler list, so handlers may publish, subscribe or unsubscribe re-entrantly
// without corrupting the iteration.
func (b *Bus) Publish(event string, payload any) {
	for _, reg := range snapshot(b.handlers[event]) {
		reg.fn(payload)
	}
	if event == Wildcard {
		return
	}
	for _, reg := range snapshot(b.handlers[Wildcard]) {
		reg.fn(Envelope{Event: event, Payload: payload})
	}
}

// Trigger returns a callable that publishes the event with an optional partial
// payload shallow-merged under the fixed context. Context keys win on
// conflict.
func (b *Bus) Trigger(event string, context map[string]any) func(partial map[string]any) {
	return func(partial map[string]any) {
		merged := make(map[string]any, len(partial)+len(context))
		for k, v := range partial {
			merged[k] = v
		}
		for k, v := range context {
			merged[k] = v
		}
		b.Publish(event, merged)
	}
}

func snapshot(regs []registration) []registration {
	if len(regs) == 0 {
		return nil
	}
	out := make([]registration, len(regs))
	copy(out, regs)
	return out
}

// Package events is a small typed publish/subscribe bus used to tell the
// presentation layer about session changes without a direct dependency.
package events

import "reflect"

// Bus dispatches events synchronously, in subscription order, on the
// publisher's goroutine. The zero value is ready to use.
type Bus struct {
	handlers map[reflect.Type][]any
}

// Subscribe registers handler for events of type T.
func Subscribe[T any](bus *Bus, handler func(T)) {
	if bus.handlers == nil {
		bus.handlers = make(map[reflect.Type][]any)
	}
	t := reflect.TypeOf((*T)(nil)).Elem()
	bus.handlers[t] = append(bus.handlers[t], handler)
}

// Publish calls every handler subscribed to T. Publishing a type nobody
// listens for is a no-op.
func Publish[T any](bus *Bus, event T) {
	for _, h := range bus.handlers[reflect.TypeOf((*T)(nil)).Elem()] {
		h.(func(T))(event)
	}
}

// ClearReason says why visual history became stale.
type ClearReason int

const (
	ClearSwitch ClearReason = iota
	ClearReset
	ClearReseed
)

func (r ClearReason) String() string {
	switch r {
	case ClearSwitch:
		return "switch"
	case ClearReset:
		return "reset"
	case ClearReseed:
		return "reseed"
	}
	return "unknown"
}

// TrailsCleared tells renderers to drop accumulated trails and particles.
type TrailsCleared struct {
	Reason ClearReason
}

// ModelSwitched is published after a successful family switch.
type ModelSwitched struct {
	From, To int
	Name     string
}

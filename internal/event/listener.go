package event

//go:generate mockgen -destination=mock/mock_listener.go -package=mockevent -source=listener.go Listener

import "context"

// Listener handles events it was registered for.
// The returned error aborts the publish and is returned to the publisher's caller.
type Listener interface {
	HandleEvent(ctx context.Context, event *Event, publisher *Publisher) error
}

// ListenerFunc is the signature of a function listener. Function values
// cannot be compared, so register them through Func.
type ListenerFunc func(ctx context.Context, event *Event, publisher *Publisher) error

// HandleEvent calls f
func (f ListenerFunc) HandleEvent(ctx context.Context, event *Event, publisher *Publisher) error {
	return f(ctx, event, publisher)
}

type funcListener struct {
	fn ListenerFunc
}

func (l *funcListener) HandleEvent(ctx context.Context, event *Event, publisher *Publisher) error {
	return l.fn(ctx, event, publisher)
}

// Func wraps fn into a Listener with its own identity. Keep the returned
// value to remove or reprioritize the listener later.
func Func(fn ListenerFunc) Listener {
	return &funcListener{fn: fn}
}

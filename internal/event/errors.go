package event

import (
	stderrors "errors"
	"reflect"
	"strings"

	"github.com/KirkDiggler/eventpublisher/internal/errors"
)

var (
	// ErrInvalidTopic is the cause of errors for empty or malformed topics
	ErrInvalidTopic = stderrors.New("invalid topic")

	// ErrInvalidListener is the cause of errors for listeners that cannot be invoked or compared
	ErrInvalidListener = stderrors.New("invalid listener")

	// ErrInvalidEvent is the cause of errors for nil events or unsupported event arguments
	ErrInvalidEvent = stderrors.New("invalid event")
)

func validateTopic(topic string) error {
	if strings.TrimSpace(topic) == "" {
		return errors.InvalidArgument("the event must be a non-empty topic name").WithCause(ErrInvalidTopic)
	}
	return nil
}

// validateListener rejects nil listeners and listeners without identity.
// Identity matters because remove and reprioritize look listeners up with ==.
func validateListener(l Listener) error {
	if l == nil {
		return errors.InvalidArgument("the listener must not be nil").WithCause(ErrInvalidListener)
	}

	v := reflect.ValueOf(l)
	switch v.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan, reflect.Interface:
		if v.IsNil() {
			return errors.InvalidArgumentf("the listener must not be a nil %T", l).WithCause(ErrInvalidListener)
		}
	}

	// Value.Comparable looks inside interface fields, so a struct holding a
	// func in an any field is rejected here instead of panicking on ==.
	if !v.Comparable() {
		return errors.InvalidArgumentf("the listener must be comparable, %T given; wrap functions with event.Func", l).
			WithCause(ErrInvalidListener)
	}

	if fl, ok := l.(*funcListener); ok && fl.fn == nil {
		return errors.InvalidArgument("the listener function must not be nil").WithCause(ErrInvalidListener)
	}

	return nil
}

func validateEvent(e *Event) error {
	if e == nil {
		return errors.InvalidArgument("the event must not be nil").WithCause(ErrInvalidEvent)
	}
	return validateTopic(e.Name())
}

package event

import "github.com/KirkDiggler/eventpublisher/internal/uuid"

var defaultIDs uuid.Generator = uuid.NewGoogleUUIDGenerator()

// Event is what listeners receive. The name is fixed for the life of a
// dispatch; attributes are free for listeners to change.
type Event struct {
	id         string
	name       string
	attributes *Attributes
	target     any
	propagate  bool
}

// NewEvent creates an event that can propagate. attributes may be nil.
func NewEvent(name string, attributes *Attributes, target any) *Event {
	return newEvent(defaultIDs.New(), name, attributes, target)
}

func newEvent(id, name string, attributes *Attributes, target any) *Event {
	if attributes == nil {
		attributes = NewAttributes(nil)
	}
	return &Event{
		id:         id,
		name:       name,
		attributes: attributes,
		target:     target,
		propagate:  true,
	}
}

// ID returns the unique id assigned when the event was created
func (e *Event) ID() string { return e.id }

// Name returns the topic
func (e *Event) Name() string { return e.name }

// SetName renames the event. Publishers use it when an event object is
// published under an explicit topic.
func (e *Event) SetName(name string) { e.name = name }

// Target returns the object the event is about, if any
func (e *Event) Target() any { return e.target }

// Attributes returns the live attribute bag
func (e *Event) Attributes() *Attributes { return e.attributes }

// Get returns an attribute, or nil when it is unset
func (e *Event) Get(key string) any { return e.attributes.Get(key) }

// Lookup returns an attribute and whether it was set
func (e *Event) Lookup(key string) (any, bool) { return e.attributes.Lookup(key) }

// Set stores an attribute
func (e *Event) Set(key string, value any) *Event {
	e.attributes.Set(key, value)
	return e
}

// StopPropagation prevents the listeners after the current one from running
func (e *Event) StopPropagation() { e.propagate = false }

// CanPropagate reports whether dispatch should continue
func (e *Event) CanPropagate() bool { return e.propagate }

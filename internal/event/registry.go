package event

import (
	"slices"
	"sort"
	"sync"
)

// priorityGroup holds the listeners sharing one priority, in insertion order
type priorityGroup struct {
	priority  Priority
	listeners []Listener
}

// Registry maps topics to listeners grouped by priority. Groups of a topic
// are kept sorted ascending after every change, so reads never sort.
type Registry struct {
	mu     sync.RWMutex
	topics map[string][]*priorityGroup
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		topics: make(map[string][]*priorityGroup),
	}
}

// Add appends listener to the priority group of topic
func (r *Registry) Add(topic string, listener Listener, priority Priority) error {
	if err := validateTopic(topic); err != nil {
		return err
	}
	if err := validateListener(listener); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.appendLocked(topic, listener, priority)
	return nil
}

func (r *Registry) appendLocked(topic string, listener Listener, priority Priority) {
	groups := r.topics[topic]

	i := sort.Search(len(groups), func(i int) bool {
		return groups[i].priority >= priority
	})
	if i < len(groups) && groups[i].priority == priority {
		groups[i].listeners = append(groups[i].listeners, listener)
		return
	}

	group := &priorityGroup{priority: priority, listeners: []Listener{listener}}
	r.topics[topic] = slices.Insert(groups, i, group)
}

// Remove deletes the first occurrence of listener from each priority group
// of topic. Unknown topics and listeners are ignored.
func (r *Registry) Remove(topic string, listener Listener) error {
	if err := validateTopic(topic); err != nil {
		return err
	}
	if err := validateListener(listener); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, group := range r.topics[topic] {
		if i := slices.Index(group.listeners, listener); i >= 0 {
			group.listeners = slices.Delete(group.listeners, i, i+1)
		}
	}
	r.pruneLocked(topic)
	return nil
}

// List returns a copy of the listeners of topic in dispatch order
func (r *Registry) List(topic string) ([]Listener, error) {
	if err := validateTopic(topic); err != nil {
		return nil, err
	}

	return r.snapshot(topic), nil
}

func (r *Registry) snapshot(topic string) []Listener {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.listLocked(topic)
}

func (r *Registry) listLocked(topic string) []Listener {
	groups := r.topics[topic]

	size := 0
	for _, group := range groups {
		size += len(group.listeners)
	}

	listeners := make([]Listener, 0, size)
	for _, group := range groups {
		listeners = append(listeners, group.listeners...)
	}
	return listeners
}

// Priority returns the priority of the first group of topic holding
// listener. The boolean is false when the listener is not registered.
func (r *Registry) Priority(topic string, listener Listener) (Priority, bool, error) {
	if err := validateTopic(topic); err != nil {
		return 0, false, err
	}
	if err := validateListener(listener); err != nil {
		return 0, false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, group := range r.topics[topic] {
		if slices.Contains(group.listeners, listener) {
			return group.priority, true, nil
		}
	}
	return 0, false, nil
}

// SetPriority moves every registration of listener under topic to the end of
// the priority group. A listener registered several times is moved as many
// times, in dispatch order. Unknown listeners are ignored.
func (r *Registry) SetPriority(topic string, listener Listener, priority Priority) error {
	if err := validateTopic(topic); err != nil {
		return err
	}
	if err := validateListener(listener); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	moved := 0
	for _, group := range r.topics[topic] {
		kept := group.listeners[:0]
		for _, l := range group.listeners {
			if l == listener {
				moved++
				continue
			}
			kept = append(kept, l)
		}
		clear(group.listeners[len(kept):])
		group.listeners = kept
	}
	if moved == 0 {
		return nil
	}

	r.pruneLocked(topic)
	for ; moved > 0; moved-- {
		r.appendLocked(topic, listener, priority)
	}
	return nil
}

// Topics returns the topics that have at least one listener, sorted
func (r *Registry) Topics() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	topics := make([]string, 0, len(r.topics))
	for topic := range r.topics {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	return topics
}

// pruneLocked drops empty groups and forgets the topic once nothing is left
func (r *Registry) pruneLocked(topic string) {
	groups := slices.DeleteFunc(r.topics[topic], func(g *priorityGroup) bool {
		return len(g.listeners) == 0
	})
	if len(groups) == 0 {
		delete(r.topics, topic)
		return
	}
	r.topics[topic] = groups
}

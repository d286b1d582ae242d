package event_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/eventpublisher/internal/event"
)

func TestNewEvent(t *testing.T) {
	target := &struct{ ID int }{ID: 7}
	e := event.NewEvent("before.save", event.NewAttributes(map[string]any{"id": 7}), target)

	assert.Equal(t, "before.save", e.Name())
	assert.Equal(t, 7, e.Get("id"))
	assert.Same(t, target, e.Target())
	assert.True(t, e.CanPropagate())
	assert.NotEmpty(t, e.ID())
}

func TestEventUnsetAttributeReadsNil(t *testing.T) {
	e := event.NewEvent("after.save", nil, nil)

	assert.Nil(t, e.Get("missing"))
	v, ok := e.Lookup("missing")
	assert.Nil(t, v)
	assert.False(t, ok)
	assert.Nil(t, e.Target())
}

func TestEventStopPropagationIsFinal(t *testing.T) {
	e := event.NewEvent("before.delete", nil, nil)

	e.StopPropagation()
	assert.False(t, e.CanPropagate())

	e.StopPropagation()
	assert.False(t, e.CanPropagate())
}

func TestEventSetName(t *testing.T) {
	e := event.NewEvent("draft", nil, nil)
	e.SetName("before.save")

	assert.Equal(t, "before.save", e.Name())
}

func TestEventSetChains(t *testing.T) {
	e := event.NewEvent("before.save", nil, nil).
		Set("user", "alice").
		Set("count", 2)

	assert.Equal(t, []string{"user", "count"}, e.Attributes().Keys())
}

func TestAttributesKeepInsertionOrder(t *testing.T) {
	attrs := event.NewAttributes(nil)
	attrs.Set("zeta", 1)
	attrs.Set("alpha", 2)
	attrs.Set("mid", 3)
	attrs.Set("zeta", 4)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, attrs.Keys())
	assert.Equal(t, 4, attrs.Get("zeta"))
	assert.Equal(t, 3, attrs.Len())
}

func TestAttributesFromMapAreSorted(t *testing.T) {
	attrs := event.NewAttributes(map[string]any{"b": 2, "c": 3, "a": 1})

	assert.Equal(t, []string{"a", "b", "c"}, attrs.Keys())
}

func TestAttributesDelete(t *testing.T) {
	attrs := event.NewAttributes(map[string]any{"a": 1, "b": 2})

	attrs.Delete("a")
	attrs.Delete("unknown")

	assert.False(t, attrs.Has("a"))
	assert.Equal(t, []string{"b"}, attrs.Keys())
}

func TestAttributesEachStopsEarly(t *testing.T) {
	attrs := event.NewAttributes(map[string]any{"a": 1, "b": 2, "c": 3})

	var seen []string
	attrs.Each(func(key string, _ any) bool {
		seen = append(seen, key)
		return key != "b"
	})

	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestAttributesMergeAndMap(t *testing.T) {
	attrs := event.NewAttributes(map[string]any{"a": 1})
	attrs.Merge(event.NewAttributes(map[string]any{"a": 10, "b": 2}))

	assert.Equal(t, map[string]any{"a": 10, "b": 2}, attrs.Map())
	assert.Equal(t, []string{"a", "b"}, attrs.Keys())
}

func TestAttributesMarshalJSON(t *testing.T) {
	attrs := event.NewAttributes(nil)
	attrs.Set("z", "last")
	attrs.Set("a", []int{1, 2})

	data, err := json.Marshal(attrs)
	require.NoError(t, err)
	assert.Equal(t, `{"z":"last","a":[1,2]}`, string(data))

	empty, err := json.Marshal(event.NewAttributes(nil))
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(empty))
}

func TestAttributesMarshalJSONError(t *testing.T) {
	attrs := event.NewAttributes(map[string]any{"ch": make(chan int)})

	_, err := json.Marshal(attrs)
	assert.Error(t, err)
}

func TestPriorityString(t *testing.T) {
	assert.Equal(t, "highest", event.PriorityHighest.String())
	assert.Equal(t, "normal", event.PriorityNormal.String())
	assert.Equal(t, "lowest", event.PriorityLowest.String())
	assert.Equal(t, "42", event.Priority(42).String())
}

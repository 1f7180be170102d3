package events_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kode4food/flowcomm/internal/events"
	"github.com/kode4food/flowcomm/pkg/api"
	"github.com/kode4food/flowcomm/pkg/flow"
)

func TestFilterFlows(t *testing.T) {
	f := events.FilterFlows("a", "b")
	assert.False(t, f(nil))
	assert.True(t, f(&api.FlowEvent{Flow: "a"}))
	assert.False(t, f(&api.FlowEvent{Flow: "c"}))
}

func TestFilterTypes(t *testing.T) {
	f := events.FilterTypes(flow.EventBack)
	assert.True(t, f(&api.FlowEvent{Type: flow.EventBack}))
	assert.False(t, f(&api.FlowEvent{Type: flow.EventEnable}))
}

func TestBuildFilter(t *testing.T) {
	enableA := &api.FlowEvent{Flow: "a", Type: flow.EventEnable}
	backA := &api.FlowEvent{Flow: "a", Type: flow.EventBack}
	enableB := &api.FlowEvent{Flow: "b", Type: flow.EventEnable}

	all := events.BuildFilter(&api.ClientSubscription{})
	assert.True(t, all(enableA))
	assert.True(t, all(enableB))
	assert.False(t, all(nil))

	byFlow := events.BuildFilter(&api.ClientSubscription{
		Flows: []flow.Name{"a"},
	})
	assert.True(t, byFlow(enableA))
	assert.False(t, byFlow(enableB))

	both := events.BuildFilter(&api.ClientSubscription{
		Flows:      []flow.Name{"a"},
		EventTypes: []flow.EventType{flow.EventBack},
	})
	assert.False(t, both(enableA))
	assert.True(t, both(backA))
	assert.False(t, both(enableB))

	assert.False(t, events.None(enableA))
}

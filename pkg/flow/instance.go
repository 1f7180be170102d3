package flow

import (
	"maps"

	"github.com/google/uuid"
)

// Instance is one activation of a flow. Its target is fixed at creation;
// only its result changes afterward
type Instance struct {
	result *Result
	target Target
	id     uuid.UUID
}

// NewInstance creates a pending instance with the given target and extra
// data. The data map is copied
func NewInstance(target Target, data map[string]any) *Instance {
	return &Instance{
		id:     uuid.New(),
		target: target,
		result: &Result{
			Status: Pending,
			Extra:  maps.Clone(data),
		},
	}
}

// ID returns the unique identifier of this activation
func (i *Instance) ID() uuid.UUID {
	return i.id
}

// Result returns the live result of this activation
func (i *Instance) Result() *Result {
	return i.result
}

// Target returns the resolution target of this activation
func (i *Instance) Target() Target {
	return i.target
}

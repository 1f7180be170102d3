package flow

import "errors"

type (
	// Name identifies a flow
	Name string

	// Status represents the completion state of a flow result
	Status string

	// EventType identifies the registry transition passed to interceptors
	EventType string

	// Callback receives the resolved result of a callback-targeted flow
	Callback func(*Result)
)

const (
	Pending Status = "pending"
	Done    Status = "done"
)

const (
	EventEnable  EventType = "ENABLE"
	EventDisable EventType = "DISABLE"
	EventBack    EventType = "BACK"
)

var (
	ErrEmptyName    = errors.New("flow name is required")
	ErrNilInstance  = errors.New("flow instance is required")
	ErrFlowNotFound = errors.New("flow not found")
	ErrNoTarget     = errors.New("flow has no resolution target")
	ErrNoResult     = errors.New("flow instance has no result")
	ErrReservedKey  = errors.New("extra data key is reserved")
)

package api

import "github.com/kode4food/flowcomm/pkg/flow"

type (
	// ActivateRequest contains parameters for activating a flow. Without a
	// URL the flow resolves back to the service's current location
	ActivateRequest struct {
		Data map[string]any `json:"data,omitempty"`
		URL  string         `json:"url,omitempty"`
	}

	// ActivatedResponse is returned when a flow activation is accepted
	ActivatedResponse struct {
		Flow  flow.Name `json:"flow"`
		Depth int       `json:"depth"`
	}

	// AttachRequest carries a single extra data value
	AttachRequest struct {
		Value any `json:"value"`
	}

	// ResolveRequest carries the output of a flow
	ResolveRequest struct {
		Output any `json:"output"`
	}

	// ResolvedResponse is returned after a flow is resolved
	ResolvedResponse struct {
		Result   *flow.Result `json:"result"`
		Location string       `json:"location"`
	}

	// FlowDigest summarizes the stack of one flow
	FlowDigest struct {
		Result *flow.Result `json:"result"`
		Name   flow.Name    `json:"name"`
		Target string       `json:"target"`
		Depth  int          `json:"depth"`
	}

	// FlowsResponse lists every active flow and the activation history
	FlowsResponse struct {
		Flows   []*FlowDigest `json:"flows"`
		History []flow.Name   `json:"history"`
		Count   int           `json:"count"`
	}

	// ActiveResponse answers an activity query
	ActiveResponse struct {
		Name   flow.Name `json:"name,omitempty"`
		Active bool      `json:"active"`
	}

	// LocationResponse reports the service's current history entry
	LocationResponse struct {
		URL     string   `json:"url"`
		Entries []string `json:"entries,omitempty"`
	}

	// HealthResponse provides service health information
	HealthResponse struct {
		Service string `json:"service"`
		Version string `json:"version"`
		Status  string `json:"status"`
	}

	// ErrorResponse is returned when an API call fails
	ErrorResponse struct {
		Error  string `json:"error"`
		Status int    `json:"status"`
	}
)

type (
	// FlowEvent describes a registry transition as seen by interceptors
	FlowEvent struct {
		Result     *flow.Result   `json:"result,omitempty"`
		Flow       flow.Name      `json:"flow"`
		Type       flow.EventType `json:"type"`
		InstanceID string         `json:"instance_id"`
		Target     string         `json:"target"`
		Timestamp  int64          `json:"timestamp"`
		Sequence   int64          `json:"sequence"`
	}

	// SubscribeRequest is sent by WebSocket clients to choose their events
	SubscribeRequest struct {
		Type string             `json:"type"`
		Data ClientSubscription `json:"data"`
	}

	// ClientSubscription narrows the event stream to some flows and event
	// types. Empty lists match everything
	ClientSubscription struct {
		Flows      []flow.Name      `json:"flows,omitempty"`
		EventTypes []flow.EventType `json:"event_types,omitempty"`
	}

	// SubscribedResult acknowledges a subscription with a snapshot of the
	// flows that are active at that moment
	SubscribedResult struct {
		Data *FlowsResponse `json:"data"`
		Type string         `json:"type"`
	}
)

const (
	MessageSubscribe  = "subscribe"
	MessageSubscribed = "subscribed"
	MessageEvent      = "event"
)

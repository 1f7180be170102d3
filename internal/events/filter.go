package events

import (
	"github.com/kode4food/flowcomm/pkg/api"
	"github.com/kode4food/flowcomm/pkg/flow"
	"github.com/kode4food/flowcomm/pkg/util"
)

// Filter selects flow events
type Filter func(*api.FlowEvent) bool

// FilterFlows matches events for any of the named flows
func FilterFlows(names ...flow.Name) Filter {
	want := util.SetOf(names...)
	return func(ev *api.FlowEvent) bool {
		return ev != nil && want.Contains(ev.Flow)
	}
}

// FilterTypes matches events of any of the given types
func FilterTypes(types ...flow.EventType) Filter {
	want := util.SetOf(types...)
	return func(ev *api.FlowEvent) bool {
		return ev != nil && want.Contains(ev.Type)
	}
}

// AndFilters matches events accepted by every filter
func AndFilters(filters ...Filter) Filter {
	return func(ev *api.FlowEvent) bool {
		for _, f := range filters {
			if !f(ev) {
				return false
			}
		}
		return true
	}
}

// All matches every event
func All(ev *api.FlowEvent) bool {
	return ev != nil
}

// None matches no event
func None(*api.FlowEvent) bool {
	return false
}

// BuildFilter creates a filter from a client subscription. Empty lists in
// the subscription do not narrow the result
func BuildFilter(sub *api.ClientSubscription) Filter {
	var filters []Filter
	if len(sub.Flows) > 0 {
		filters = append(filters, FilterFlows(sub.Flows...))
	}
	if len(sub.EventTypes) > 0 {
		filters = append(filters, FilterTypes(sub.EventTypes...))
	}

	switch len(filters) {
	case 0:
		return All
	case 1:
		return filters[0]
	default:
		return AndFilters(filters...)
	}
}

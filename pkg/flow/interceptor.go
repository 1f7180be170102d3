package flow

import (
	"slices"

	"github.com/kode4food/flowcomm/pkg/log"
)

type (
	// Interceptor observes a registry transition before it takes effect.
	// Returning true stops any later interceptors from running and vetoes
	// the transition's default behavior
	Interceptor func(Name, *Instance, EventType) bool

	// InterceptorID identifies a registered Interceptor for removal
	InterceptorID uint64

	interceptor struct {
		fn Interceptor
		id InterceptorID
	}
)

// AddInterceptor registers fn to run after all previously registered
// interceptors
func (r *Registry) AddInterceptor(fn Interceptor) InterceptorID {
	r.nextID++
	r.interceptors = append(r.interceptors, interceptor{
		id: r.nextID,
		fn: fn,
	})
	return r.nextID
}

// RemoveInterceptor unregisters the interceptor identified by id. It
// returns false if no such interceptor is registered
func (r *Registry) RemoveInterceptor(id InterceptorID) bool {
	for i, ic := range r.interceptors {
		if ic.id == id {
			// a dispatch in progress keeps iterating the old backing array
			r.interceptors = slices.Concat(
				r.interceptors[:i], r.interceptors[i+1:],
			)
			return true
		}
	}
	return false
}

// InterceptorCount returns the number of registered interceptors
func (r *Registry) InterceptorCount() int {
	return len(r.interceptors)
}

func (r *Registry) dispatch(name Name, inst *Instance, ev EventType) bool {
	// the range expression is evaluated once, so interceptors added during
	// dispatch first run on the next event
	for _, ic := range r.interceptors {
		if ic.fn(name, inst, ev) {
			r.trace("Flow event intercepted",
				log.FlowName(name),
				log.InstanceID(inst.id.String()),
				log.Event(ev))
			return true
		}
	}
	return false
}

package flow

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/kode4food/flowcomm/pkg/log"
	"github.com/kode4food/flowcomm/pkg/util"
)

type (
	// Registry tracks the active instances of every flow, the order in which
	// flows were activated, and the interceptors that observe transitions
	Registry struct {
		stacks       map[Name][]*Instance
		history      []Name
		interceptors []interceptor
		nav          Navigator
		logger       *slog.Logger
		nextID       InterceptorID
		debug        bool
	}

	// Option configures a Registry
	Option func(*Registry)

	// ActivateOption configures a single activation
	ActivateOption func(*activation)

	activation struct {
		data   map[string]any
		target Target
	}
)

// New creates an empty Registry. Without options it resolves URL targets
// through a fresh History and reports to slog.Default()
func New(opts ...Option) *Registry {
	r := &Registry{
		stacks: map[Name][]*Instance{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.nav == nil {
		r.nav = NewHistory(DefaultURL)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// WithNavigator sets the history abstraction used by URL targets
func WithNavigator(nav Navigator) Option {
	return func(r *Registry) {
		r.nav = nav
	}
}

// WithLogger sets the diagnostics sink
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithDebug enables trace logging of every registry operation
func WithDebug(enable bool) Option {
	return func(r *Registry) {
		r.debug = enable
	}
}

// WithTarget sets the resolution target of the activation
func WithTarget(t Target) ActivateOption {
	return func(a *activation) {
		a.target = t
	}
}

// WithURL resolves the activation by navigating to url
func WithURL(url string) ActivateOption {
	return WithTarget(URLTarget(url))
}

// WithCallback resolves the activation by invoking cb
func WithCallback(cb Callback) ActivateOption {
	return WithTarget(CallbackTarget(cb))
}

// WithData merges data into the extra data of the new instance
func WithData(data map[string]any) ActivateOption {
	return func(a *activation) {
		if len(data) == 0 {
			return
		}
		if a.data == nil {
			a.data = make(map[string]any, len(data))
		}
		maps.Copy(a.data, data)
	}
}

// WithValue sets a single extra data entry on the new instance
func WithValue(key string, value any) ActivateOption {
	return WithData(map[string]any{key: value})
}

// Debug turns trace logging on or off
func (r *Registry) Debug(enable bool) {
	r.debug = enable
}

// Navigator returns the history abstraction used by URL targets
func (r *Registry) Navigator() Navigator {
	return r.nav
}

// Activate creates a new instance of the named flow and pushes it onto the
// flow's stack. Without a target option, the instance resolves back to the
// navigator's current URL. If an ENABLE interceptor returns true, nothing is
// pushed
func (r *Registry) Activate(name Name, opts ...ActivateOption) error {
	if name == "" {
		r.logger.Error("Flow name is required")
		return ErrEmptyName
	}

	a := &activation{}
	for _, opt := range opts {
		opt(a)
	}
	for key := range a.data {
		if IsReservedKey(key) {
			r.logger.Error("Extra data key is reserved",
				log.FlowName(name), log.Key(key))
			return fmt.Errorf("%w: %s", ErrReservedKey, key)
		}
	}

	target := a.target
	if target.Kind() == TargetNone {
		target = URLTarget(r.nav.CurrentURL())
	}

	inst := NewInstance(target, a.data)
	if r.dispatch(name, inst, EventEnable) {
		return nil
	}
	return r.Push(name, inst)
}

// Push commits inst as the active instance of the named flow without
// consulting interceptors. An ENABLE interceptor may use it to perform its
// own activation before vetoing the default one
func (r *Registry) Push(name Name, inst *Instance) error {
	if name == "" {
		r.logger.Error("Flow name is required")
		return ErrEmptyName
	}
	if inst == nil {
		r.logger.Error("Flow instance is required", log.FlowName(name))
		return ErrNilInstance
	}

	r.stacks[name] = append(r.stacks[name], inst)
	r.history = append(r.history, name)
	r.trace("Flow activated",
		log.FlowName(name),
		log.InstanceID(inst.id.String()),
		slog.String("target", inst.target.String()),
		slog.Int("depth", len(r.stacks[name])))
	return nil
}

// Deactivate pops the active instance of the named flow. The flow name is
// forgotten once its stack is empty. If a DISABLE interceptor returns true,
// nothing is popped
func (r *Registry) Deactivate(name Name) error {
	inst, ok := r.top(name)
	if !ok {
		return r.notFound(name)
	}

	if r.dispatch(name, inst, EventDisable) {
		return nil
	}

	// interceptors may have rearranged the stack during dispatch
	if !r.remove(name, inst) {
		r.trace("Flow instance already removed",
			log.FlowName(name), log.InstanceID(inst.id.String()))
		return nil
	}
	r.forget(name)
	r.trace("Flow deactivated",
		log.FlowName(name),
		log.InstanceID(inst.id.String()),
		slog.Int("depth", len(r.stacks[name])))
	return nil
}

// Resolve marks the active instance of the named flow as done with output,
// then delivers it to the instance's target. If a BACK interceptor returns
// true, the result is still recorded but not delivered
func (r *Registry) Resolve(name Name, output any) error {
	inst, ok := r.top(name)
	if !ok {
		return r.notFound(name)
	}
	res := inst.result
	if res == nil {
		r.logger.Error("Flow instance has no result",
			log.FlowName(name), log.InstanceID(inst.id.String()))
		return fmt.Errorf("%w: %s", ErrNoResult, name)
	}

	res.Output = output
	res.Status = Done

	if r.dispatch(name, inst, EventBack) {
		return nil
	}

	switch inst.target.kind {
	case TargetURL:
		r.trace("Flow returning to URL",
			log.FlowName(name), log.URL(inst.target.url))
		r.nav.PushURL(inst.target.url)
		r.nav.Back()
		r.nav.Forward()
		return nil
	case TargetCallback:
		r.trace("Flow invoking callback", log.FlowName(name))
		inst.target.callback(res)
		return nil
	default:
		r.logger.Error("Flow has no resolution target",
			log.FlowName(name),
			log.InstanceID(inst.id.String()),
			slog.Any("active", r.Names()))
		return fmt.Errorf("%w: %s", ErrNoTarget, name)
	}
}

// GoBack is an alias for Resolve
func (r *Registry) GoBack(name Name, output any) error {
	return r.Resolve(name, output)
}

// AttachData stores value under key in the extra data of the active
// instance of the named flow, replacing any previous value
func (r *Registry) AttachData(name Name, key string, value any) error {
	inst, ok := r.top(name)
	if !ok || inst.result == nil {
		return r.notFound(name)
	}
	if IsReservedKey(key) {
		r.logger.Error("Extra data key is reserved",
			log.FlowName(name), log.Key(key))
		return fmt.Errorf("%w: %s", ErrReservedKey, key)
	}

	if _, exists := inst.result.Extra[key]; exists {
		r.logger.Warn("Flow extra data already present, overwriting",
			log.FlowName(name), log.Key(key))
	}
	inst.result.set(key, value)
	return nil
}

// Read returns the live result of the active instance of the named flow
func (r *Registry) Read(name Name) (*Result, bool) {
	inst, ok := r.top(name)
	if !ok {
		_ = r.notFound(name)
		return nil, false
	}
	if inst.result == nil {
		r.logger.Error("Flow instance has no result",
			log.FlowName(name), log.InstanceID(inst.id.String()))
		return nil, false
	}
	r.trace("Flow read",
		log.FlowName(name), log.Status(inst.result.Status))
	return inst.result, true
}

// Take reads the result of the active instance of the named flow and then
// deactivates it. The result is returned even if an interceptor vetoes the
// deactivation
func (r *Registry) Take(name Name) (*Result, bool) {
	res, ok := r.Read(name)
	if !ok {
		return nil, false
	}
	_ = r.Deactivate(name)
	return res, true
}

// IsActive answers activity queries against the activation history. Given
// one name, it reports whether that flow was the most recently activated.
// Given several, it returns whichever of them was activated most recently
func (r *Registry) IsActive(names ...Name) (Name, bool) {
	if len(names) == 0 || len(r.history) == 0 {
		return "", false
	}
	if len(names) == 1 {
		if last := r.history[len(r.history)-1]; last == names[0] {
			return last, true
		}
		return "", false
	}

	want := util.SetOf(names...)
	for i := len(r.history) - 1; i >= 0; i-- {
		if want.Contains(r.history[i]) {
			return r.history[i], true
		}
	}
	return "", false
}

// Instance returns the active instance of the named flow
func (r *Registry) Instance(name Name) (*Instance, bool) {
	return r.top(name)
}

// Depth returns the number of stacked instances of the named flow
func (r *Registry) Depth(name Name) int {
	return len(r.stacks[name])
}

// Names returns the names of all flows with at least one instance, sorted
func (r *Registry) Names() []Name {
	return slices.Sorted(maps.Keys(r.stacks))
}

// Stack returns a copy of the named flow's stack, oldest first
func (r *Registry) Stack(name Name) []*Instance {
	return slices.Clone(r.stacks[name])
}

// History returns a copy of the activation history, oldest first
func (r *Registry) History() []Name {
	return slices.Clone(r.history)
}

// Reset discards every flow instance and the activation history.
// Interceptors remain registered
func (r *Registry) Reset() {
	r.stacks = map[Name][]*Instance{}
	r.history = nil
	r.trace("Flow registry reset")
}

func (r *Registry) top(name Name) (*Instance, bool) {
	stack := r.stacks[name]
	if len(stack) == 0 {
		return nil, false
	}
	return stack[len(stack)-1], true
}

func (r *Registry) remove(name Name, inst *Instance) bool {
	stack := r.stacks[name]
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] != inst {
			continue
		}
		if len(stack) == 1 {
			delete(r.stacks, name)
		} else {
			r.stacks[name] = slices.Delete(stack, i, i+1)
		}
		return true
	}
	return false
}

func (r *Registry) forget(name Name) {
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i] == name {
			r.history = slices.Delete(r.history, i, i+1)
			return
		}
	}
}

func (r *Registry) notFound(name Name) error {
	r.logger.Error("Flow not found", log.FlowName(name))
	return fmt.Errorf("%w: %s", ErrFlowNotFound, name)
}

func (r *Registry) trace(msg string, args ...any) {
	if r.debug {
		r.logger.Info(msg, args...)
	}
}

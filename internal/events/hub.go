package events

import (
	"sync"
	"time"

	"github.com/kode4food/caravan"
	"github.com/kode4food/caravan/message"
	"github.com/kode4food/caravan/topic"

	"github.com/kode4food/flowcomm/pkg/api"
	"github.com/kode4food/flowcomm/pkg/flow"
)

// Hub fans flow events out to any number of consumers
type Hub struct {
	topic  topic.Topic[*api.FlowEvent]
	prod   topic.Producer[*api.FlowEvent]
	now    func() time.Time
	seq    int64
	closed bool
	mu     sync.Mutex
}

// NewHub creates a Hub backed by a fresh caravan topic
func NewHub() *Hub {
	t := caravan.NewTopic[*api.FlowEvent]()
	return &Hub{
		topic: t,
		prod:  t.NewProducer(),
		now:   time.Now,
	}
}

// NewConsumer returns a new consumer of the hub's events. Consumers may see
// events retained from before their creation; compare against Sequence to
// skip them
func (h *Hub) NewConsumer() topic.Consumer[*api.FlowEvent] {
	return h.topic.NewConsumer()
}

// Sequence returns the sequence number of the last published event
func (h *Hub) Sequence() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.seq
}

// Publish stamps ev with the next sequence number and sends it. Events
// published after Close are dropped
func (h *Hub) Publish(ev *api.FlowEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.seq++
	ev.Sequence = h.seq
	if ev.Timestamp == 0 {
		ev.Timestamp = h.now().UnixMilli()
	}
	message.Send(h.prod, ev)
}

// Interceptor returns a registry interceptor that publishes every
// transition it sees and never vetoes. Register it first so that it observes
// transitions later interceptors veto
func (h *Hub) Interceptor() flow.Interceptor {
	return func(name flow.Name, inst *flow.Instance, ev flow.EventType) bool {
		h.Publish(NewFlowEvent(name, inst, ev))
		return false
	}
}

// Close stops publishing and closes the underlying producer
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	h.prod.Close()
}

// NewFlowEvent captures the state of inst at the moment of a transition
func NewFlowEvent(
	name flow.Name, inst *flow.Instance, ev flow.EventType,
) *api.FlowEvent {
	res := &api.FlowEvent{
		Flow:       name,
		Type:       ev,
		InstanceID: inst.ID().String(),
		Target:     inst.Target().String(),
	}
	if r := inst.Result(); r != nil {
		res.Result = r.Clone()
	}
	return res
}

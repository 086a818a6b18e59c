package avg

import "slices"

// LifecycleEventType names a notification posted on the lifecycle Bus.
type LifecycleEventType uint8

const (
	LifecycleCreateNode LifecycleEventType = iota
	LifecycleMountNode
	LifecycleUpdateNode
	LifecycleUnmountNode
	LifecycleCreateChild
	LifecycleMoveChild
	LifecycleRemoveChild
	LifecycleMountChild
	lifecycleEventCount
)

var lifecycleEventNames = [lifecycleEventCount]string{
	"createNode", "mountNode", "updateNode", "unmountNode",
	"createChild", "moveChild", "removeChild", "mountChild",
}

func (t LifecycleEventType) String() string {
	if t < lifecycleEventCount {
		return lifecycleEventNames[t]
	}
	return "unknown"
}

// LifecycleEvent is the payload of a Bus notification. Node-level events
// carry the component's node and props; container events carry the parent
// node and the affected child node.
type LifecycleEvent struct {
	Type      LifecycleEventType
	Node      *Node
	Parent    *Node
	PrevProps Props
	Props     Props
}

type busListener struct {
	id uint32
	fn func(LifecycleEvent)
}

// Bus delivers lifecycle notifications to subscribers in subscription order.
type Bus struct {
	listeners [lifecycleEventCount][]busListener
	nextID    uint32
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// BusHandle removes a subscription.
type BusHandle struct {
	id  uint32
	bus *Bus
	evt LifecycleEventType
}

// Remove unsubscribes. Removing twice is a no-op.
func (h BusHandle) Remove() {
	if h.bus == nil {
		return
	}
	ls := h.bus.listeners[h.evt]
	for i, l := range ls {
		if l.id == h.id {
			h.bus.listeners[h.evt] = slices.Delete(ls, i, i+1)
			return
		}
	}
}

// Subscribe registers fn for evt.
func (b *Bus) Subscribe(evt LifecycleEventType, fn func(LifecycleEvent)) BusHandle {
	if evt >= lifecycleEventCount {
		panic("avg: unknown lifecycle event")
	}
	b.nextID++
	b.listeners[evt] = append(b.listeners[evt], busListener{id: b.nextID, fn: fn})
	return BusHandle{id: b.nextID, bus: b, evt: evt}
}

// SubscribeAll registers fn for every lifecycle event and returns one handle
// per event.
func (b *Bus) SubscribeAll(fn func(LifecycleEvent)) []BusHandle {
	handles := make([]BusHandle, 0, lifecycleEventCount)
	for evt := range lifecycleEventCount {
		handles = append(handles, b.Subscribe(evt, fn))
	}
	return handles
}

// Post delivers ev synchronously. Listeners added or removed during delivery
// take effect on the next Post.
func (b *Bus) Post(ev LifecycleEvent) {
	if b == nil || ev.Type >= lifecycleEventCount {
		return
	}
	ls := b.listeners[ev.Type]
	if len(ls) == 0 {
		return
	}
	for _, l := range slices.Clone(ls) {
		l.fn(ev)
	}
}

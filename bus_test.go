package avg

import (
	"slices"
	"testing"
)

func TestBusDeliversInOrder(t *testing.T) {
	b := NewBus()
	var got []string
	b.Subscribe(LifecycleMountNode, func(LifecycleEvent) { got = append(got, "first") })
	b.Subscribe(LifecycleMountNode, func(LifecycleEvent) { got = append(got, "second") })
	b.Subscribe(LifecycleUnmountNode, func(LifecycleEvent) { got = append(got, "other") })

	b.Post(LifecycleEvent{Type: LifecycleMountNode})
	if !slices.Equal(got, []string{"first", "second"}) {
		t.Errorf("got %v", got)
	}
}

func TestBusHandleRemove(t *testing.T) {
	b := NewBus()
	calls := 0
	h := b.Subscribe(LifecycleCreateNode, func(LifecycleEvent) { calls++ })
	h.Remove()
	h.Remove()
	b.Post(LifecycleEvent{Type: LifecycleCreateNode})
	if calls != 0 {
		t.Errorf("removed listener called %d times", calls)
	}
	BusHandle{}.Remove()
}

func TestBusRemoveDuringPost(t *testing.T) {
	b := NewBus()
	calls := 0
	var h BusHandle
	h = b.Subscribe(LifecycleMoveChild, func(LifecycleEvent) {
		calls++
		h.Remove()
	})
	b.Subscribe(LifecycleMoveChild, func(LifecycleEvent) { calls++ })

	b.Post(LifecycleEvent{Type: LifecycleMoveChild})
	b.Post(LifecycleEvent{Type: LifecycleMoveChild})
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestBusSubscribeAll(t *testing.T) {
	b := NewBus()
	got := recordLifecycle(b)
	for evt := range lifecycleEventCount {
		b.Post(LifecycleEvent{Type: evt})
	}
	if len(*got) != int(lifecycleEventCount) {
		t.Errorf("received %d events, want %d", len(*got), lifecycleEventCount)
	}
}

func TestBusNilPostIsNoOp(t *testing.T) {
	var b *Bus
	b.Post(LifecycleEvent{Type: LifecycleMountNode})
}

func TestLifecycleEventTypeString(t *testing.T) {
	if LifecycleMountChild.String() != "mountChild" || LifecycleCreateNode.String() != "createNode" {
		t.Error("unexpected event names")
	}
	if lifecycleEventCount.String() != "unknown" {
		t.Error("out of range should be unknown")
	}
}

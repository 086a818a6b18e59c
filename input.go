package avg

import (
	"github.com/hajimehoshi/ebiten/v2"
)

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return Rect(r).Contains(x, y)
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// --- Event data ---

// PointerEvent is delivered to node handlers and scene listeners. Local is
// expressed in CurrentTarget's space and changes as the event bubbles.
type PointerEvent struct {
	Type          EventType
	Target        *Node
	CurrentTarget *Node
	Global        Vec2
	Local         Vec2
	Movement      Vec2
	Button        MouseButton
	PointerID     int
	Modifiers     KeyModifiers

	stopped          bool
	defaultPrevented bool
}

// StopPropagation keeps the event from reaching further ancestors.
func (e *PointerEvent) StopPropagation() { e.stopped = true }

// PropagationStopped reports whether StopPropagation was called.
func (e *PointerEvent) PropagationStopped() bool { return e.stopped }

// PreventDefault flags the event so built-in behavior can skip it.
func (e *PointerEvent) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *PointerEvent) DefaultPrevented() bool { return e.defaultPrevented }

// IsTouch reports whether the event came from a touch pointer.
func (e *PointerEvent) IsTouch() bool { return e.PointerID > 0 }

// --- Scene-level listeners ---

type listener struct {
	id uint32
	fn PointerHandler
}

type handlerRegistry struct {
	byEvent [eventTypeCount][]listener
	nextID  uint32
}

// CallbackHandle removes a registered scene-level listener.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters the listener. Safe to call more than once.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	s := h.reg.byEvent[h.event]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = listener{}
			h.reg.byEvent[h.event] = s[:len(s)-1]
			return
		}
	}
}

// On registers a scene-level listener that sees every event of type evt
// before node handlers do.
func (s *Scene) On(evt EventType, fn PointerHandler) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.byEvent[evt] = append(s.handlers.byEvent[evt], listener{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: evt}
}

// --- Per-pointer state ---

type pointerState struct {
	down      bool
	seen      bool
	lastX     float64
	lastY     float64
	pressNode *Node
	hoverNode *Node
	button    MouseButton
}

// --- Hit testing ---

// nodeContainsLocal uses HitShape when set, otherwise the node's natural size.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	w, h := nodeDimensions(n)
	if w == 0 && h == 0 {
		return false
	}
	return lx >= 0 && lx <= w && ly >= 0 && ly <= h
}

// collectInteractable appends hit-testable nodes in painter order. Invisible
// or non-interactable subtrees are skipped.
func (s *Scene) collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if n.HitShape != nil || n.Type != NodeTypeContainer {
		buf = append(buf, n)
	}
	for _, child := range sortedChildren(n) {
		buf = s.collectInteractable(child, buf)
	}
	return buf
}

// hitTest returns the topmost interactable node at the world point, or nil.
func (s *Scene) hitTest(wx, wy float64) *Node {
	s.hitBuf = s.collectInteractable(s.root, s.hitBuf[:0])
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(wx, wy)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// --- Input processing ---

func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// processInput handles mouse and touch input for one frame. Injected events
// take the mouse pointer's place while queued.
func (s *Scene) processInput() {
	mods := readModifiers()
	if !s.processInjectedInput(mods) {
		mx, my := ebiten.CursorPosition()
		var pressed bool
		var button MouseButton
		switch {
		case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
			pressed, button = true, MouseButtonLeft
		case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
			pressed, button = true, MouseButtonRight
		case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
			pressed, button = true, MouseButtonMiddle
		}
		s.processPointer(0, float64(mx), float64(my), pressed, button, mods)
	}
	s.processTouchPointers(mods)
	s.updateCursor()
}

func (s *Scene) processTouchPointers(mods KeyModifiers) {
	touchIDs := ebiten.AppendTouchIDs(s.touchIDs[:0])
	s.touchIDs = touchIDs

	var active [maxPointers]bool
	for _, tid := range touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		s.processPointer(slot, float64(tx), float64(ty), true, MouseButtonLeft, mods)
	}
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && !active[i] {
			ps := &s.pointers[i]
			if ps.down {
				s.processPointer(i, ps.lastX, ps.lastY, false, MouseButtonLeft, mods)
			}
			s.touchUsed[i] = false
		}
	}
}

// touchSlot maps a touch ID to pointer slot 1-9, or -1 when all are taken.
func (s *Scene) touchSlot(tid ebiten.TouchID) int {
	free := -1
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
		if !s.touchUsed[i] && free < 0 {
			free = i
		}
	}
	if free > 0 {
		s.touchUsed[free] = true
		s.touchMap[free] = tid
	}
	return free
}

// updateCursor shows the pointer cursor while the mouse hovers a node in
// button mode.
func (s *Scene) updateCursor() {
	want := false
	for n := s.pointers[0].hoverNode; n != nil; n = n.Parent {
		if n.ButtonMode {
			want = true
			break
		}
	}
	if want == s.cursorPointer {
		return
	}
	s.cursorPointer = want
	if want {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

// processPointer runs the state machine for one pointer at a world position.
func (s *Scene) processPointer(pointerID int, wx, wy float64, pressed bool, button MouseButton, mods KeyModifiers) {
	ps := &s.pointers[pointerID]
	touch := pointerID > 0

	target := s.captured[pointerID]
	if target == nil || target.disposed {
		target = s.hitTest(wx, wy)
	}

	var movement Vec2
	moved := !ps.seen || wx != ps.lastX || wy != ps.lastY
	if ps.seen {
		movement = Vec2{wx - ps.lastX, wy - ps.lastY}
	}
	ps.seen = true
	ps.lastX, ps.lastY = wx, wy

	base := PointerEvent{Global: Vec2{wx, wy}, Movement: movement, Button: button, PointerID: pointerID, Modifiers: mods}
	if ps.down {
		base.Button = ps.button
	}

	if target != ps.hoverNode {
		if ps.hoverNode != nil && !ps.hoverNode.disposed {
			if !touch {
				s.fire(EventMouseOut, ps.hoverNode, base)
			}
			s.fire(EventPointerOut, ps.hoverNode, base)
		}
		if target != nil {
			if !touch {
				s.fire(EventMouseOver, target, base)
			}
			s.fire(EventPointerOver, target, base)
		}
		ps.hoverNode = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.pressNode = target
		base.Button = button
		if touch {
			s.fire(EventTouchStart, target, base)
		} else {
			s.fire(EventMouseDown, target, base)
		}
		s.fire(EventPointerDown, target, base)

	case !pressed && ps.down:
		press := ps.pressNode
		ps.down = false
		ps.pressNode = nil
		s.captured[pointerID] = nil

		if touch {
			s.fire(EventTouchEnd, target, base)
		} else {
			s.fire(EventMouseUp, target, base)
		}
		s.fire(EventPointerUp, target, base)

		if press != nil && !press.disposed {
			if press == target {
				if touch {
					s.fire(EventTap, target, base)
				} else {
					s.fire(EventClick, target, base)
				}
				s.fire(EventPointerTap, target, base)
			} else {
				if touch {
					s.fire(EventTouchEndOutside, press, base)
				} else {
					s.fire(EventMouseUpOutside, press, base)
				}
				s.fire(EventPointerUpOutside, press, base)
			}
		}

		// A lifted finger no longer hovers anything.
		if touch && ps.hoverNode != nil {
			if !ps.hoverNode.disposed {
				s.fire(EventPointerOut, ps.hoverNode, base)
			}
			ps.hoverNode = nil
		}

	case moved:
		if touch {
			if ps.down {
				s.fire(EventTouchMove, target, base)
			}
		} else {
			s.fire(EventMouseMove, target, base)
		}
		s.fire(EventPointerMove, target, base)
	}
}

// CancelPointers aborts every in-progress press, firing pointercancel on the
// pressed nodes. Call it when the window loses focus or a modal takes over.
func (s *Scene) CancelPointers() {
	for i := range s.pointers {
		ps := &s.pointers[i]
		if !ps.down {
			continue
		}
		press := ps.pressNode
		ps.down = false
		ps.pressNode = nil
		s.captured[i] = nil
		if press != nil && !press.disposed {
			s.fire(EventPointerCancel, press, PointerEvent{
				Global:    Vec2{ps.lastX, ps.lastY},
				Button:    ps.button,
				PointerID: i,
			})
		}
	}
}

// CapturePointer routes all events for pointerID to node until release.
func (s *Scene) CapturePointer(pointerID int, node *Node) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = node
	}
}

// ReleasePointer ends a capture started with CapturePointer.
func (s *Scene) ReleasePointer(pointerID int) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = nil
	}
}

// --- Dispatch ---

// fire delivers one event: scene listeners first, then the target and each
// interactable ancestor until propagation stops.
func (s *Scene) fire(evt EventType, target *Node, base PointerEvent) {
	ev := base
	ev.Type = evt
	ev.Target = target

	for _, l := range s.handlers.byEvent[evt] {
		l.fn(&ev)
	}
	if target == nil {
		return
	}
	s.emitInteractionEvent(&ev)

	for cur := target; cur != nil && !ev.stopped; cur = cur.Parent {
		if cur.disposed || !cur.Interactable {
			continue
		}
		ev.CurrentTarget = cur
		lx, ly := cur.WorldToLocal(ev.Global.X, ev.Global.Y)
		ev.Local = Vec2{lx, ly}
		if cur == target && cur.OnInteract != nil {
			cur.OnInteract(&ev)
		}
		if h := cur.handlers[evt]; h != nil {
			h(&ev)
		}
	}
}

// --- ECS bridge ---

func (s *Scene) emitInteractionEvent(ev *PointerEvent) {
	if s.store == nil || ev.Target.EntityID == 0 {
		return
	}
	lx, ly := ev.Target.WorldToLocal(ev.Global.X, ev.Global.Y)
	s.store.EmitEvent(InteractionEvent{
		Type:      ev.Type,
		EntityID:  ev.Target.EntityID,
		GlobalX:   ev.Global.X,
		GlobalY:   ev.Global.Y,
		LocalX:    lx,
		LocalY:    ly,
		Button:    ev.Button,
		PointerID: ev.PointerID,
		Modifiers: ev.Modifiers,
	})
}

// --- Synthetic input ---

type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
}

// InjectPress queues a left-button press at screen coordinates. Each queued
// event is consumed by one Update in place of real mouse input.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x, y, true})
}

// InjectMove queues a held-button move.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x, y, true})
}

// InjectHover queues a move with no button held.
func (s *Scene) InjectHover(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x, y, false})
}

// InjectRelease queues a release.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x, y, false})
}

// InjectClick queues a press and a release at the same point. Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

func (s *Scene) processInjectedInput(mods KeyModifiers) bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	s.injectQueue = s.injectQueue[1:]
	s.processPointer(0, evt.x, evt.y, evt.pressed, MouseButtonLeft, mods)
	return true
}

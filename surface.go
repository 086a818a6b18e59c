package avg

// Surface binds a declared tree to a stage node. Create one per stage;
// surfaces do not nest.
type Surface struct {
	hostContainer
	mounted bool
}

// NewSurface creates a surface rendering into stage, typically Scene.Root().
func NewSurface(rt *Runtime, stage *Node) *Surface {
	if rt == nil || stage == nil {
		panic("avg: NewSurface needs a runtime and a stage")
	}
	return &Surface{hostContainer: hostContainer{rt: rt, node: stage}}
}

// Stage returns the node the surface renders into.
func (s *Surface) Stage() *Node {
	return s.node
}

// Mounted reports whether Mount has run without a later Unmount.
func (s *Surface) Mounted() bool {
	return s.mounted
}

// Mount reconciles children against the stage synchronously.
func (s *Surface) Mount(children ...*Element) {
	if s.mounted {
		panic("avg: surface already mounted")
	}
	s.perform(func(tx *Transaction) {
		s.MountAndInjectChildren(compact(children), tx)
	})
	s.mounted = true
}

// Update reconciles the stage against a new set of top-level children.
// Children created or moved by the update are appended after the others, so
// the stage order can differ from the declared order.
func (s *Surface) Update(children ...*Element) {
	if !s.mounted {
		panic("avg: surface is not mounted")
	}
	s.perform(func(tx *Transaction) {
		s.rt.Reconciler.UpdateChildren(&s.hostContainer, compact(children), tx)
	})
}

// Render mounts on the first call and updates afterwards.
func (s *Surface) Render(children ...*Element) {
	if s.mounted {
		s.Update(children...)
		return
	}
	s.Mount(children...)
}

// Unmount unmounts every top-level child and clears the stage.
func (s *Surface) Unmount() {
	if !s.mounted {
		return
	}
	s.rt.Reconciler.UnmountChildren(&s.hostContainer)
	s.node.RemoveChildren()
	s.mounted = false
}

func (s *Surface) perform(fn func(tx *Transaction)) {
	pool := s.rt.Transactions
	tx := pool.GetPooled()
	tx.Perform(fn)
	pool.Release(tx)
}

func compact(els []*Element) []*Element {
	out := make([]*Element, 0, len(els))
	for _, el := range els {
		if el != nil {
			out = append(out, el)
		}
	}
	return out
}

package avg

import (
	"slices"
	"testing"
)

func TestTransactionPoolReuse(t *testing.T) {
	p := NewTransactionPool()
	tx := p.GetPooled()
	p.Release(tx)
	if got := p.GetPooled(); got != tx {
		t.Error("released transaction should be reused")
	}
	if got := p.GetPooled(); got == tx {
		t.Error("pool handed out the same transaction twice")
	}
}

func TestTransactionReleaseForeignIgnored(t *testing.T) {
	a, b := NewTransactionPool(), NewTransactionPool()
	tx := a.GetPooled()
	b.Release(tx)
	if b.GetPooled() == tx {
		t.Error("pool accepted a transaction it did not create")
	}
}

func TestReadyRunsAfterOutermostPerform(t *testing.T) {
	p := NewTransactionPool()
	var log []string

	outer := p.GetPooled()
	outer.Perform(func(tx *Transaction) {
		if !p.Active() {
			t.Error("pool should be active inside Perform")
		}
		tx.EnqueueReady(func() { log = append(log, "outer") })

		inner := p.GetPooled()
		inner.Perform(func(tx *Transaction) {
			tx.EnqueueReady(func() { log = append(log, "inner") })
		})
		p.Release(inner)

		if len(log) != 0 {
			t.Errorf("ready ran before the outer transaction ended: %v", log)
		}
		log = append(log, "body")
	})
	p.Release(outer)

	if want := []string{"body", "outer", "inner"}; !slices.Equal(log, want) {
		t.Errorf("log = %v, want %v", log, want)
	}
	if p.Active() {
		t.Error("pool should be idle after Perform")
	}
}

func TestReadyEnqueuedByReadyRuns(t *testing.T) {
	p := NewTransactionPool()
	ran := 0
	tx := p.GetPooled()
	tx.Perform(func(tx *Transaction) {
		tx.EnqueueReady(func() {
			ran++
			tx.EnqueueReady(func() { ran++ })
		})
	})
	if ran != 2 {
		t.Errorf("ran = %d, want 2", ran)
	}
}

func TestPerformPanicRestoresDepth(t *testing.T) {
	p := NewTransactionPool()
	func() {
		defer func() { _ = recover() }()
		p.GetPooled().Perform(func(*Transaction) { panic("boom") })
	}()
	if p.Active() {
		t.Error("pool should not stay active after a panic")
	}
}

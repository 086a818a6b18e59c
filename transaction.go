package avg

// Transaction scopes one batch of reconciliation work. Obtain it from a
// TransactionPool, run work with Perform, then Release it.
type Transaction struct {
	pool *TransactionPool
}

// TransactionPool recycles transactions and defers composite re-renders
// requested while any transaction is running.
type TransactionPool struct {
	free  []*Transaction
	depth int
	ready []func()
	dirty []*composite
}

// NewTransactionPool creates an empty pool.
func NewTransactionPool() *TransactionPool {
	return &TransactionPool{}
}

// GetPooled returns a free transaction.
func (p *TransactionPool) GetPooled() *Transaction {
	if n := len(p.free); n > 0 {
		tx := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		return tx
	}
	return &Transaction{pool: p}
}

// Release returns tx to the pool. tx must not be used afterwards.
func (p *TransactionPool) Release(tx *Transaction) {
	if tx == nil || tx.pool != p {
		return
	}
	p.free = append(p.free, tx)
}

// Active reports whether a transaction is being performed.
func (p *TransactionPool) Active() bool {
	return p.depth > 0
}

// Perform runs fn inside the transaction. When the outermost transaction
// finishes, queued ready callbacks run in order and then deferred composite
// updates are flushed. Panics in fn propagate and skip both.
func (tx *Transaction) Perform(fn func(tx *Transaction)) {
	p := tx.pool
	p.depth++
	func() {
		defer func() { p.depth-- }()
		fn(tx)
	}()
	if p.depth > 0 {
		return
	}
	for len(p.ready) > 0 || len(p.dirty) > 0 {
		ready := p.ready
		p.ready = nil
		for _, cb := range ready {
			cb()
		}
		p.flush()
	}
}

// EnqueueReady schedules fn to run once the outermost transaction finishes.
func (tx *Transaction) EnqueueReady(fn func()) {
	tx.pool.ready = append(tx.pool.ready, fn)
}

// requestUpdate re-renders c now, or after the running transaction.
func (p *TransactionPool) requestUpdate(c *composite) {
	if c.unmounted {
		return
	}
	if p.depth > 0 {
		if !c.pending {
			c.pending = true
			p.dirty = append(p.dirty, c)
		}
		return
	}
	tx := p.GetPooled()
	tx.Perform(c.updateRendered)
	p.Release(tx)
}

func (p *TransactionPool) flush() {
	for len(p.dirty) > 0 {
		dirty := p.dirty
		p.dirty = nil
		for _, c := range dirty {
			c.pending = false
			if c.unmounted {
				continue
			}
			tx := p.GetPooled()
			p.depth++
			func() {
				defer func() { p.depth-- }()
				c.updateRendered(tx)
			}()
			p.Release(tx)
		}
	}
}

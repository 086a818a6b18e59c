package avg

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing. Only populated in debug mode.
type debugStats struct {
	traverseTime time.Duration
	submitTime   time.Duration
	commandCount int
}

func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[avg] traverse: %v | submit: %v | total: %v | draw calls: %d\n",
		stats.traverseTime, stats.submitTime, stats.traverseTime+stats.submitTime, stats.commandCount)
}

// debugCheckDisposed panics when a destroyed node is used in a tree operation.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("avg debug: %s on disposed node %q", op, n.Name))
	}
}

const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[avg] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[avg] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}

func debugLogf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[avg] "+format+"\n", args...)
}

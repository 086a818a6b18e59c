package avg

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"testing"
)

// recordingHandler collects log records so tests can count warnings.
type recordingHandler struct {
	mu      *sync.Mutex
	records *[]slog.Record
}

func newRecordingLogger() (*slog.Logger, *recordingHandler) {
	h := &recordingHandler{mu: &sync.Mutex{}, records: &[]slog.Record{}}
	return slog.New(h), h
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	*h.records = append(*h.records, r)
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func (h *recordingHandler) count(level slog.Level) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, r := range *h.records {
		if r.Level == level {
			n++
		}
	}
	return n
}

func (h *recordingHandler) messages(level slog.Level) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []string
	for _, r := range *h.records {
		if r.Level == level {
			out = append(out, r.Message)
		}
	}
	return out
}

// testRuntime builds a runtime logging into a recorder.
func testRuntime(textures TextureSource) (*Runtime, *recordingHandler) {
	logger, rec := newRecordingLogger()
	return NewRuntime(RuntimeConfig{Textures: textures, Logger: logger}), rec
}

// mountOnStage mounts children on a fresh stage node.
func mountOnStage(rt *Runtime, children ...*Element) (*Surface, *Node) {
	stage := NewContainer("stage")
	s := NewSurface(rt, stage)
	s.Mount(children...)
	return s, stage
}

// recordLifecycle appends every bus event type to the returned slice.
func recordLifecycle(bus *Bus) *[]LifecycleEventType {
	var got []LifecycleEventType
	bus.SubscribeAll(func(ev LifecycleEvent) { got = append(got, ev.Type) })
	return &got
}

func childNames(n *Node) []string {
	out := make([]string, 0, n.NumChildren())
	for _, c := range n.Children() {
		out = append(out, c.Name)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func squareRegion(page uint16, x, y, size uint16) TextureRegion {
	return TextureRegion{Page: page, X: x, Y: y, Width: size, Height: size, OriginalW: size, OriginalH: size}
}

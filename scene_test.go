package avg

import (
	"testing"
)

func TestNewSceneRoot(t *testing.T) {
	s := NewScene()
	if s.Root() == nil || !s.Root().Interactable {
		t.Fatal("root should be an interactable container")
	}
	if s.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want %q", s.ScreenshotDir, "screenshots")
	}
}

func TestRegisterPageGrows(t *testing.T) {
	s := NewScene()
	s.RegisterPage(2, nil)
	if len(s.pages) != 3 {
		t.Errorf("pages = %d, want 3", len(s.pages))
	}
}

// --- Input scripts ---

const clickScript = `
steps:
  - {action: screenshot, label: initial}
  - {action: click, x: 5, y: 5}
  - {action: wait, frames: 2}
  - {action: screenshot, label: after-click}
`

func TestLoadInputScript(t *testing.T) {
	script, err := LoadInputScript([]byte(clickScript))
	if err != nil {
		t.Fatalf("LoadInputScript: %v", err)
	}
	if len(script.steps) != 4 {
		t.Fatalf("steps = %d, want 4", len(script.steps))
	}
	if script.steps[1].Action != "click" || script.steps[1].X != 5 {
		t.Errorf("step 1 = %+v", script.steps[1])
	}
	if script.steps[2].Frames != 2 {
		t.Errorf("wait frames = %d, want 2", script.steps[2].Frames)
	}
}

func TestLoadInputScriptAcceptsJSON(t *testing.T) {
	script, err := LoadInputScript([]byte(`{"steps": [{"action": "hover", "x": 1, "y": 2}]}`))
	if err != nil {
		t.Fatalf("LoadInputScript: %v", err)
	}
	if script.steps[0].Action != "hover" || script.steps[0].Y != 2 {
		t.Errorf("step = %+v", script.steps[0])
	}
}

func TestLoadInputScriptErrors(t *testing.T) {
	if _, err := LoadInputScript([]byte("steps: [")); err == nil {
		t.Error("expected error for invalid YAML")
	}
	if _, err := LoadInputScript([]byte("steps: []")); err == nil {
		t.Error("expected error for an empty script")
	}
}

func TestInputScriptRunsClick(t *testing.T) {
	s, box := boxScene(0, 0)
	clicks := 0
	box.SetHandler(EventClick, func(*PointerEvent) { clicks++ })

	script, err := LoadInputScript([]byte(clickScript))
	if err != nil {
		t.Fatal(err)
	}
	s.SetInputScript(script)

	frame := func() {
		script.step(s)
		s.processInput()
	}

	frame() // screenshot
	if len(s.screenshotQueue) != 1 || s.screenshotQueue[0] != "initial" {
		t.Fatalf("queue = %v, want [initial]", s.screenshotQueue)
	}
	frame() // click queued, press consumed
	frame() // release consumed, script waits for the queue
	if clicks != 1 {
		t.Fatalf("clicks = %d, want 1", clicks)
	}
	frame() // wait, first frame
	frame() // wait, second frame
	if script.Done() {
		t.Fatal("script should not finish before the last screenshot")
	}
	frame() // screenshot
	if !script.Done() {
		t.Error("script should be done after its last step")
	}
	if len(s.screenshotQueue) != 2 || s.screenshotQueue[1] != "after-click" {
		t.Errorf("queue = %v", s.screenshotQueue)
	}
}

func TestInputScriptWaitsForInjectQueue(t *testing.T) {
	s := NewScene()
	script := NewInputScript(
		ScriptStep{Action: "click", X: 1, Y: 1},
		ScriptStep{Action: "screenshot", Label: "x"},
	)
	script.step(s)
	script.step(s)
	if len(s.screenshotQueue) != 0 {
		t.Error("screenshot should wait until injected input drains")
	}
	s.processInput()
	s.processInput()
	script.step(s)
	if len(s.screenshotQueue) != 1 {
		t.Error("screenshot should run once the queue is empty")
	}
}

func TestInputScriptUnknownActionSkipped(t *testing.T) {
	s := NewScene()
	script := NewInputScript(ScriptStep{Action: "teleport"}, ScriptStep{Action: "screenshot", Label: "ok"})
	script.step(s)
	script.step(s)
	if !script.Done() || len(s.screenshotQueue) != 1 {
		t.Errorf("done %v queue %v", script.Done(), s.screenshotQueue)
	}
}

// --- Screenshots ---

func TestFileLabel(t *testing.T) {
	tests := []struct{ in, want string }{
		{"chapter-1", "chapter-1"},
		{"after click", "after_click"},
		{"a/b\\c", "a_b_c"},
		{"v1.2", "v1.2"},
		{"  ", "unlabeled"},
	}
	for _, tt := range tests {
		if got := fileLabel(tt.in); got != tt.want {
			t.Errorf("fileLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	s := NewScene()
	s.Screenshot("a")
	s.Screenshot("b")
	if len(s.screenshotQueue) != 2 || s.screenshotQueue[1] != "b" {
		t.Errorf("queue = %v", s.screenshotQueue)
	}
}

package avg

import (
	"log/slog"
	"testing"
)

func testRegistry(textures TextureSource) (*PropertyRegistry, *recordingHandler) {
	logger, rec := newRecordingLogger()
	return NewPropertyRegistry(textures, logger), rec
}

func TestGeometryNormalization(t *testing.T) {
	r, rec := testRegistry(nil)
	tests := []struct {
		name  string
		value any
		wantX float64
		wantY float64
	}{
		{"pair", []float64{3, 4}, 3, 4},
		{"int pair", []int{1, 2}, 1, 2},
		{"any pair", []any{5, 6.5}, 5, 6.5},
		{"array", [2]float64{7, 8}, 7, 8},
		{"rect", []float64{9, 10, 100, 100}, 9, 10},
		{"matrix", []float64{1, 0, 11, 0, 1, 12, 0, 0, 1}, 11, 12},
		{"vec2", Vec2{13, 14}, 13, 14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewContainer("n")
			r.SetValue(n, "position", tt.value)
			if n.X != tt.wantX || n.Y != tt.wantY {
				t.Errorf("position = (%v, %v), want (%v, %v)", n.X, n.Y, tt.wantX, tt.wantY)
			}
		})
	}
	if rec.count(slog.LevelWarn) != 0 {
		t.Errorf("unexpected warnings: %v", rec.messages(slog.LevelWarn))
	}
}

func TestGeometryUnsupportedLengthWarnsOnce(t *testing.T) {
	r, rec := testRegistry(nil)
	n := NewContainer("n")
	n.SetPosition(1, 1)

	r.SetValue(n, "position", []float64{1, 2, 3})

	if n.X != 1 || n.Y != 1 {
		t.Errorf("position changed to (%v, %v)", n.X, n.Y)
	}
	if got := rec.messages(slog.LevelWarn); len(got) != 1 || got[0] != "unsupported geometry length" {
		t.Errorf("warnings = %v, want one geometry warning", got)
	}
}

func TestScaleAcceptsScalar(t *testing.T) {
	r, _ := testRegistry(nil)
	n := NewContainer("n")
	r.SetValue(n, "scale", 2)
	if n.ScaleX != 2 || n.ScaleY != 2 {
		t.Errorf("scale = (%v, %v), want (2, 2)", n.ScaleX, n.ScaleY)
	}
	r.SetValue(n, "scale", []float64{3, 4})
	if n.ScaleX != 3 || n.ScaleY != 4 {
		t.Errorf("scale = (%v, %v), want (3, 4)", n.ScaleX, n.ScaleY)
	}
}

func TestTintKeepsAlpha(t *testing.T) {
	r, _ := testRegistry(nil)
	n := NewSprite("n", TextureRegion{})
	n.Color.A = 0.5
	r.SetValue(n, "tint", 0xFF0000)
	want := Color{R: 1, G: 0, B: 0, A: 0.5}
	if n.Color != want {
		t.Errorf("Color = %+v, want %+v", n.Color, want)
	}
}

func TestTintOutOfRangeClamps(t *testing.T) {
	r, _ := testRegistry(nil)
	n := NewSprite("n", TextureRegion{})
	r.SetValue(n, "tint", -1)
	if want := (Color{R: 0, G: 0, B: 0, A: 1}); n.Color != want {
		t.Errorf("negative tint = %+v, want %+v", n.Color, want)
	}
	r.SetValue(n, "tint", 0x1000000)
	if n.Color != ColorWhite {
		t.Errorf("oversized tint = %+v, want white", n.Color)
	}
}

func TestSourceLookup(t *testing.T) {
	bg := squareRegion(0, 10, 20, 32)
	r, rec := testRegistry(Textures{"bg": bg})
	n := NewSprite("n", TextureRegion{})

	r.SetValue(n, "src", "bg")
	if n.TextureRegion != bg {
		t.Errorf("TextureRegion = %+v, want %+v", n.TextureRegion, bg)
	}

	r.SetValue(n, "src", "missing")
	if n.TextureRegion != bg {
		t.Error("a missing texture should leave the node unchanged")
	}
	if got := rec.messages(slog.LevelWarn); len(got) != 1 || got[0] != "texture not found" {
		t.Errorf("warnings = %v", got)
	}
}

func TestSourceWithoutTextureSourceWarns(t *testing.T) {
	r, rec := testRegistry(nil)
	r.SetValue(NewSprite("n", TextureRegion{}), "src", "bg")
	if rec.count(slog.LevelWarn) != 1 {
		t.Errorf("warnings = %v", rec.messages(slog.LevelWarn))
	}
}

func TestSetValueDefaults(t *testing.T) {
	r, _ := testRegistry(nil)
	n := NewContainer("n")

	r.SetValue(n, "alpha", nil)
	if n.Alpha != 1 {
		t.Errorf("nil without default changed alpha to %v", n.Alpha)
	}
	r.SetValue(n, "alpha", nil, 0.25)
	if n.Alpha != 0.25 {
		t.Errorf("Alpha = %v, want default 0.25", n.Alpha)
	}
	r.SetValue(n, "nonsense", 5)
}

func TestUpdateValueSkipsEqual(t *testing.T) {
	r, _ := testRegistry(nil)
	calls := 0
	r.Register("position", func(*Node, any) { calls++ })
	n := NewContainer("n")

	r.UpdateValue(n, "position", []float64{1, 2}, []float64{1, 2})
	if calls != 0 {
		t.Errorf("setter called %d times for equal values", calls)
	}
	r.UpdateValue(n, "position", []float64{1, 2}, []float64{1, 3})
	if calls != 1 {
		t.Errorf("setter called %d times, want 1", calls)
	}
}

func TestMountNodeAppliesStandardProps(t *testing.T) {
	r, _ := testRegistry(nil)
	n := NewSprite("n", squareRegion(0, 0, 0, 10))
	r.MountNode(n, Props{
		"name":       "hero",
		"x":          5,
		"alpha":      0.5,
		"visible":    false,
		"buttonMode": true,
		"size":       []float64{20, 30},
		"rotation":   1.5,
	})

	if n.Name != "hero" || n.X != 5 || n.Alpha != 0.5 || n.Visible || !n.ButtonMode {
		t.Errorf("node = %+v", n)
	}
	assertNear(t, "ScaleX", n.ScaleX, 2)
	assertNear(t, "ScaleY", n.ScaleY, 3)
	assertNear(t, "Rotation", n.Rotation, 1.5)
}

func TestPositionWinsOverXY(t *testing.T) {
	r, _ := testRegistry(nil)
	n := NewContainer("n")
	r.MountNode(n, Props{"x": 1, "y": 1, "position": []float64{9, 9}})
	if n.X != 9 || n.Y != 9 {
		t.Errorf("position = (%v, %v), want (9, 9)", n.X, n.Y)
	}
}

func TestUpdateNodeOnlyChanged(t *testing.T) {
	r, _ := testRegistry(nil)
	var applied []string
	for _, key := range []string{"x", "alpha", "tint"} {
		r.Register(key, func(*Node, any) { applied = append(applied, key) })
	}
	n := NewContainer("n")
	prev := Props{"x": 1, "alpha": 0.5, "tint": 0xFFFFFF}
	next := Props{"x": 2, "alpha": 0.5, "tint": 0xFFFFFF}
	r.UpdateNode(n, prev, next)
	if !equalStrings(applied, []string{"x"}) {
		t.Errorf("applied = %v, want [x]", applied)
	}
}

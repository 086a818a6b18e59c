package avg

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// EntityStore receives interaction events for nodes that carry an EntityID.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries pointer interaction data for the ECS bridge.
type InteractionEvent struct {
	Type      EventType
	EntityID  uint32
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	PointerID int
	Modifiers KeyModifiers
}

// Scene owns the display tree (its root is the stage), input state, running
// tweens, and atlas pages.
type Scene struct {
	root  *Node
	store EntityStore
	debug bool

	// ClearColor, when set, fills the screen before each Draw.
	ClearColor *Color
	// ScreenshotDir is where Screenshot writes PNGs.
	ScreenshotDir string

	tweens []*TweenGroup

	commands []renderCommand
	pages    []*ebiten.Image
	nextPage int

	handlers      handlerRegistry
	captured      [maxPointers]*Node
	pointers      [maxPointers]pointerState
	hitBuf        []*Node
	touchMap      [maxPointers]ebiten.TouchID
	touchUsed     [maxPointers]bool
	touchIDs      []ebiten.TouchID
	injectQueue   []syntheticPointerEvent
	cursorPointer bool

	script          *InputScript
	screenshotQueue []string
}

// NewScene creates a scene with an interactable root container.
func NewScene() *Scene {
	root := NewContainer("stage")
	root.Interactable = true
	return &Scene{root: root, ScreenshotDir: "screenshots"}
}

// Root returns the stage container.
func (s *Scene) Root() *Node {
	return s.root
}

// Update advances one frame at the engine's tick rate and processes input.
func (s *Scene) Update() {
	s.Tick(1 / float64(ebiten.TPS()))
	if s.script != nil {
		s.script.step(s)
	}
	s.processInput()
}

// Tick advances transforms, frame animations, and tweens by dt seconds
// without touching input.
func (s *Scene) Tick(dt float64) {
	updateWorldTransform(s.root, identityTransform, 1, false)
	updateAnimations(s.root, dt)

	live := s.tweens[:0]
	for _, g := range s.tweens {
		g.Update(float32(dt))
		if !g.Done {
			live = append(live, g)
		}
	}
	clear(s.tweens[len(live):])
	s.tweens = live

	// Tweens and animations may have moved nodes; keep hit testing accurate.
	updateWorldTransform(s.root, identityTransform, 1, false)
}

// AddTween runs g on every Tick until it finishes.
func (s *Scene) AddTween(g *TweenGroup) {
	s.tweens = append(s.tweens, g)
}

// NumTweens returns the number of running tweens.
func (s *Scene) NumTweens() int {
	return len(s.tweens)
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables disposed-node checks, tree warnings, and per-frame
// stats on stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the last Scene.SetDebugMode call so node operations,
// which have no Scene pointer, can check it.
var globalDebug bool

// RegisterPage stores an atlas page image at index.
func (s *Scene) RegisterPage(index int, img *ebiten.Image) {
	for len(s.pages) <= index {
		s.pages = append(s.pages, nil)
	}
	s.pages[index] = img
}

// LoadAtlas parses TexturePacker JSON, registers the pages after any already
// loaded, and returns the Atlas for lookups.
func (s *Scene) LoadAtlas(jsonData []byte, pages []*ebiten.Image) (*Atlas, error) {
	atlas, err := LoadAtlas(jsonData, pages)
	if err != nil {
		return nil, err
	}
	start := s.nextPage
	for i, page := range pages {
		s.RegisterPage(start+i, page)
	}
	s.nextPage = start + len(pages)
	if start > 0 {
		for name, r := range atlas.regions {
			r.Page += uint16(start)
			atlas.regions[name] = r
		}
	}
	return atlas, nil
}

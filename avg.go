package avg

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color is an RGBA tint with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorFromHex converts a 0xRRGGBB value into an opaque Color.
func ColorFromHex(hex uint32) Color {
	return Color{
		R: float64((hex>>16)&0xFF) / 255,
		G: float64((hex>>8)&0xFF) / 255,
		B: float64(hex&0xFF) / 255,
		A: 1,
	}
}

// toRGBA converts c to a premultiplied color.RGBA for image fills.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}

// Vec2 is a 2D point or vector.
type Vec2 struct {
	X, Y float64
}

// WhitePixel is a 1x1 white image used for sprites that have no texture.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

// Rect is an axis-aligned rectangle with its origin at the top-left.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	minX, minY := min(r.X, other.X), min(r.Y, other.Y)
	maxX := max(r.X+r.Width, other.X+other.Width)
	maxY := max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Matrix is a 2D affine transform.
//
//	| A  C  Tx |
//	| B  D  Ty |
//	| 0  0  1  |
type Matrix struct {
	A, B, C, D, Tx, Ty float64
}

// IdentityMatrix is the identity transform.
var IdentityMatrix = Matrix{A: 1, D: 1}

// MatrixFromArray builds a Matrix from a row-major 3x3 array
// [a, c, tx, b, d, ty, 0, 0, 1]. Only the first six entries are read.
func MatrixFromArray(v [9]float64) Matrix {
	return Matrix{A: v[0], C: v[1], Tx: v[2], B: v[3], D: v[4], Ty: v[5]}
}

// Apply transforms the point (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return transformPoint(m.affine(), x, y)
}

// Translation returns the matrix's translation component.
func (m Matrix) Translation() Vec2 {
	return Vec2{m.Tx, m.Ty}
}

func (m Matrix) affine() [6]float64 {
	return [6]float64{m.A, m.B, m.C, m.D, m.Tx, m.Ty}
}

// BlendMode selects a compositing operation.
type BlendMode uint8

const (
	BlendNormal   BlendMode = iota // source-over
	BlendAdd                       // additive
	BlendMultiply                  // source * destination
	BlendScreen                    // 1 - (1-src)*(1-dst)
	BlendErase                     // destination-out
)

// EbitenBlend returns the ebiten.Blend value for this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendErase:
		return ebiten.BlendDestinationOut
	default:
		return ebiten.BlendSourceOver
	}
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeSprite                    // renders a TextureRegion, custom image, or solid color
)

// EventType identifies a pointer interaction event. The vocabulary covers
// mouse, touch, and unified pointer events.
type EventType uint8

const (
	EventClick           EventType = iota // mouse press then release over the same node
	EventTap                              // touch press then release over the same node
	EventMouseDown                        // mouse button pressed
	EventMouseUp                          // mouse button released over the pressed node's hit area
	EventMouseMove                        // mouse moved
	EventMouseOver                        // mouse entered a node
	EventMouseOut                         // mouse left a node
	EventMouseUpOutside                   // mouse released away from the node it was pressed on
	EventTouchStart                       // finger down
	EventTouchMove                        // finger moved
	EventTouchEnd                         // finger lifted over the node
	EventTouchEndOutside                  // finger lifted away from the node it started on
	EventPointerDown                      // any pointer pressed
	EventPointerUp                        // any pointer released
	EventPointerMove                      // any pointer moved
	EventPointerOver                      // any pointer entered a node
	EventPointerOut                       // any pointer left a node
	EventPointerUpOutside                 // any pointer released away from its press node
	EventPointerCancel                    // pointer interaction aborted
	EventPointerTap                       // any pointer press then release over the same node

	eventTypeCount
)

var eventTypeNames = [eventTypeCount]string{
	EventClick:            "click",
	EventTap:              "tap",
	EventMouseDown:        "mousedown",
	EventMouseUp:          "mouseup",
	EventMouseMove:        "mousemove",
	EventMouseOver:        "mouseover",
	EventMouseOut:         "mouseout",
	EventMouseUpOutside:   "mouseupoutside",
	EventTouchStart:       "touchstart",
	EventTouchMove:        "touchmove",
	EventTouchEnd:         "touchend",
	EventTouchEndOutside:  "touchendoutside",
	EventPointerDown:      "pointerdown",
	EventPointerUp:        "pointerup",
	EventPointerMove:      "pointermove",
	EventPointerOver:      "pointerover",
	EventPointerOut:       "pointerout",
	EventPointerUpOutside: "pointerupoutside",
	EventPointerCancel:    "pointercancel",
	EventPointerTap:       "pointertap",
}

// String returns the lowercase event name, e.g. "pointerdown".
func (e EventType) String() string {
	if e < eventTypeCount {
		return eventTypeNames[e]
	}
	return "unknown"
}

// ParseEventType looks up an event by name. Matching is case-insensitive, so
// both "click" and "Click" resolve to EventClick.
func ParseEventType(name string) (EventType, bool) {
	name = strings.ToLower(name)
	for i, n := range eventTypeNames {
		if n == name {
			return EventType(i), true
		}
	}
	return 0, false
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button
)

// KeyModifiers is a bitmask of keyboard modifier keys.
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

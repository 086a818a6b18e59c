package avg

import (
	"log/slog"
	"reflect"

	"github.com/hajimehoshi/ebiten/v2"
)

// Props is the declared property map of an element.
type Props map[string]any

// Setter applies one coerced property value to a node. Setters ignore values
// they cannot apply.
type Setter func(node *Node, value any)

// PropertySettable is the property surface a host component delegates to.
type PropertySettable interface {
	MountNode(node *Node, props Props)
	UpdateNode(node *Node, prev, props Props)
	UnmountNode(node *Node)
}

// StandardProps lists the properties MountNode and UpdateNode apply, in
// application order. Position-like keys come after x/y so they win.
var StandardProps = []string{
	"name", "src", "alpha", "visible", "cacheAsBitmap", "buttonMode",
	"x", "y", "position", "width", "height", "size",
	"pivot", "anchor", "rotation", "scale", "skew", "tint",
}

// geometryProps are normalized from numeric arrays before reaching a setter.
var geometryProps = map[string]bool{
	"position": true, "pivot": true, "anchor": true, "rotation": true,
	"scale": true, "skew": true, "size": true, "rectangle": true,
}

// PropertyRegistry maps declared property names to node mutations.
type PropertyRegistry struct {
	textures TextureSource
	logger   *slog.Logger
	setters  map[string]Setter
}

// NewPropertyRegistry creates a registry with the standard setters. textures
// resolves "src" names and may be nil.
func NewPropertyRegistry(textures TextureSource, logger *slog.Logger) *PropertyRegistry {
	if logger == nil {
		logger = slog.Default()
	}
	r := &PropertyRegistry{
		textures: textures,
		logger:   logger.With("component", "props"),
		setters:  make(map[string]Setter),
	}
	r.registerStandard()
	return r
}

// Register installs fn as the setter for key, replacing any previous one.
// Keys outside StandardProps are reachable through SetValue only.
func (r *PropertyRegistry) Register(key string, fn Setter) {
	r.setters[key] = fn
}

// Textures returns the texture source used for "src".
func (r *PropertyRegistry) Textures() TextureSource {
	return r.textures
}

// SetValue coerces value and applies it to node. A nil value falls back to
// def[0] when given and is otherwise a no-op. Unknown keys are ignored.
func (r *PropertyRegistry) SetValue(node *Node, key string, value any, def ...any) {
	if value == nil {
		if len(def) == 0 || def[0] == nil {
			return
		}
		value = def[0]
	}
	set, ok := r.setters[key]
	if !ok {
		return
	}
	if geometryProps[key] {
		value = r.normalizeGeometry(key, value)
	}
	set(node, value)
}

// UpdateValue applies value only when it differs structurally from prev.
func (r *PropertyRegistry) UpdateValue(node *Node, key string, prev, value any) {
	if DeepEqual(prev, value) {
		return
	}
	r.SetValue(node, key, value)
}

// MountNode applies every standard property present in props.
func (r *PropertyRegistry) MountNode(node *Node, props Props) {
	for _, key := range StandardProps {
		r.SetValue(node, key, props[key])
	}
}

// UpdateNode re-applies the standard properties that changed between prev
// and props.
func (r *PropertyRegistry) UpdateNode(node *Node, prev, props Props) {
	for _, key := range StandardProps {
		r.UpdateValue(node, key, prev[key], props[key])
	}
}

// UnmountNode is a hook for symmetry; the registry holds no per-node state.
func (r *PropertyRegistry) UnmountNode(*Node) {}

// normalizeGeometry converts a numeric array of length 2, 4 or 9 into a Vec2,
// Rect or Matrix. Any other length is returned unchanged with a warning.
func (r *PropertyRegistry) normalizeGeometry(key string, value any) any {
	nums, ok := numericSlice(value)
	if !ok {
		return value
	}
	switch len(nums) {
	case 2:
		return Vec2{nums[0], nums[1]}
	case 4:
		return Rect{X: nums[0], Y: nums[1], Width: nums[2], Height: nums[3]}
	case 9:
		return MatrixFromArray([9]float64(nums))
	}
	r.logger.Warn("unsupported geometry length", "prop", key, "length", len(nums))
	return value
}

func (r *PropertyRegistry) registerStandard() {
	r.setters["name"] = func(n *Node, v any) {
		if s, ok := v.(string); ok {
			n.Name = s
		}
	}
	r.setters["src"] = r.setSource
	r.setters["alpha"] = func(n *Node, v any) {
		if f, ok := toFloat(v); ok {
			n.SetAlpha(f)
		}
	}
	r.setters["visible"] = func(n *Node, v any) {
		if b, ok := v.(bool); ok {
			n.Visible = b
			n.invalidateAncestorCaches()
		}
	}
	r.setters["cacheAsBitmap"] = func(n *Node, v any) {
		if b, ok := v.(bool); ok {
			n.SetCacheAsBitmap(b)
		}
	}
	r.setters["buttonMode"] = func(n *Node, v any) {
		if b, ok := v.(bool); ok {
			n.ButtonMode = b
		}
	}
	r.setters["x"] = func(n *Node, v any) {
		if f, ok := toFloat(v); ok {
			n.SetPosition(f, n.Y)
		}
	}
	r.setters["y"] = func(n *Node, v any) {
		if f, ok := toFloat(v); ok {
			n.SetPosition(n.X, f)
		}
	}
	r.setters["position"] = func(n *Node, v any) {
		if p, ok := toPoint(v); ok {
			n.SetPosition(p.X, p.Y)
		}
	}
	r.setters["width"] = func(n *Node, v any) {
		if f, ok := toFloat(v); ok {
			n.SetWidth(f)
		}
	}
	r.setters["height"] = func(n *Node, v any) {
		if f, ok := toFloat(v); ok {
			n.SetHeight(f)
		}
	}
	r.setters["size"] = func(n *Node, v any) {
		if p, ok := toPoint(v); ok {
			n.SetWidth(p.X)
			n.SetHeight(p.Y)
		}
	}
	r.setters["pivot"] = func(n *Node, v any) {
		if p, ok := toPoint(v); ok {
			n.SetPivot(p.X, p.Y)
		}
	}
	r.setters["anchor"] = func(n *Node, v any) {
		if p, ok := toPoint(v); ok {
			n.SetAnchor(p.X, p.Y)
		}
	}
	r.setters["rotation"] = func(n *Node, v any) {
		if f, ok := toFloat(v); ok {
			n.SetRotation(f)
		}
	}
	r.setters["scale"] = func(n *Node, v any) {
		if f, ok := toFloat(v); ok {
			n.SetScale(f, f)
			return
		}
		if p, ok := toPoint(v); ok {
			n.SetScale(p.X, p.Y)
		}
	}
	r.setters["skew"] = func(n *Node, v any) {
		if p, ok := toPoint(v); ok {
			n.SetSkew(p.X, p.Y)
		}
	}
	r.setters["tint"] = func(n *Node, v any) {
		c, ok := toColor(v)
		if !ok {
			return
		}
		c.A = n.Color.A
		n.Color = c
		n.invalidateAncestorCaches()
	}
}

func (r *PropertyRegistry) setSource(n *Node, v any) {
	switch src := v.(type) {
	case TextureRegion:
		n.SetTexture(src)
	case *ebiten.Image:
		n.SetImage(src)
	case string:
		if r.textures == nil {
			r.logger.Warn("no texture source for src", "src", src)
			return
		}
		region, ok := r.textures.Texture(src)
		if !ok {
			r.logger.Warn("texture not found", "src", src)
			return
		}
		n.SetTexture(region)
	}
}

// --- Coercion helpers ---

func toFloat(v any) (float64, bool) {
	switch f := v.(type) {
	case float64:
		return f, true
	case float32:
		return float64(f), true
	case int:
		return float64(f), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// numericSlice reads a slice or array whose elements are all numbers.
func numericSlice(v any) ([]float64, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]float64, rv.Len())
	for i := range out {
		f, ok := toFloat(rv.Index(i).Interface())
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

// toPoint reads the (x, y) a geometric value contributes to a point setter.
func toPoint(v any) (Vec2, bool) {
	switch p := v.(type) {
	case Vec2:
		return p, true
	case *Vec2:
		if p != nil {
			return *p, true
		}
	case Rect:
		return Vec2{p.X, p.Y}, true
	case Matrix:
		return p.Translation(), true
	}
	return Vec2{}, false
}

func toColor(v any) (Color, bool) {
	switch c := v.(type) {
	case Color:
		return c, true
	case uint32:
		return ColorFromHex(c), true
	}
	if f, ok := toFloat(v); ok {
		// Out-of-range numbers clamp to black or white.
		return ColorFromHex(uint32(min(max(f, 0), 0xFFFFFF))), true
	}
	return Color{}, false
}

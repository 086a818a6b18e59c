package avg

import (
	"encoding/json"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// TextureRegion describes a sub-rectangle within an atlas page.
type TextureRegion struct {
	Page      uint16 // atlas page index registered with the Scene
	X, Y      uint16 // top-left corner within the page
	Width     uint16 // stored width (may be trimmed)
	Height    uint16 // stored height (may be trimmed)
	OriginalW uint16 // untrimmed width as authored
	OriginalH uint16 // untrimmed height as authored
	OffsetX   int16  // trim offset
	OffsetY   int16
	Rotated   bool // stored 90 degrees clockwise
}

// TextureSource resolves texture names used by the "src" and "frames" props.
type TextureSource interface {
	Texture(name string) (TextureRegion, bool)
}

// Textures is a plain name to region table. It satisfies TextureSource and
// is handy for hand-registered images and tests.
type Textures map[string]TextureRegion

// Texture implements TextureSource.
func (t Textures) Texture(name string) (TextureRegion, bool) {
	r, ok := t[name]
	return r, ok
}

// Atlas holds atlas page images and a map of named regions.
type Atlas struct {
	Pages   []*ebiten.Image
	regions map[string]TextureRegion
}

// Texture implements TextureSource.
func (a *Atlas) Texture(name string) (TextureRegion, bool) {
	r, ok := a.regions[name]
	return r, ok
}

// Region returns the named region, or a 1x1 magenta placeholder if it is
// missing.
func (a *Atlas) Region(name string) TextureRegion {
	if r, ok := a.regions[name]; ok {
		return r
	}
	if globalDebug {
		log.Printf("avg: atlas region %q not found, using magenta placeholder", name)
	}
	return magentaRegion()
}

// Names returns every region name in the atlas.
func (a *Atlas) Names() []string {
	names := make([]string, 0, len(a.regions))
	for name := range a.regions {
		names = append(names, name)
	}
	return names
}

var magentaImage *ebiten.Image

func ensureMagentaImage() *ebiten.Image {
	if magentaImage == nil {
		magentaImage = ebiten.NewImage(1, 1)
		magentaImage.Fill(color.RGBA{R: 255, B: 255, A: 255})
	}
	return magentaImage
}

// magentaPlaceholderPage never collides with a registered page.
const magentaPlaceholderPage = 0xFFFF

func magentaRegion() TextureRegion {
	return TextureRegion{Page: magentaPlaceholderPage, Width: 1, Height: 1, OriginalW: 1, OriginalH: 1}
}

// LoadAtlas parses TexturePacker JSON (hash or multi-page array format) and
// associates the given page images.
func LoadAtlas(jsonData []byte, pages []*ebiten.Image) (*Atlas, error) {
	var doc struct {
		Frames   map[string]packedFrame `json:"frames"`
		Textures []struct {
			Image  string                 `json:"image"`
			Frames map[string]packedFrame `json:"frames"`
		} `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, fmt.Errorf("avg: failed to parse atlas JSON: %w", err)
	}
	if doc.Frames == nil && doc.Textures == nil {
		return nil, fmt.Errorf("avg: atlas JSON has neither \"frames\" nor \"textures\" key")
	}

	atlas := &Atlas{Pages: pages, regions: make(map[string]TextureRegion)}
	for name, f := range doc.Frames {
		atlas.regions[name] = f.region(0)
	}
	for page, tex := range doc.Textures {
		for name, f := range tex.Frames {
			atlas.regions[name] = f.region(uint16(page))
		}
	}
	return atlas, nil
}

type packedRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type packedFrame struct {
	Frame            packedRect `json:"frame"`
	Rotated          bool       `json:"rotated"`
	SpriteSourceSize packedRect `json:"spriteSourceSize"`
	SourceSize       struct {
		W int `json:"w"`
		H int `json:"h"`
	} `json:"sourceSize"`
}

func (f packedFrame) region(page uint16) TextureRegion {
	return TextureRegion{
		Page:      page,
		X:         uint16(f.Frame.X),
		Y:         uint16(f.Frame.Y),
		Width:     uint16(f.Frame.W),
		Height:    uint16(f.Frame.H),
		OriginalW: uint16(f.SourceSize.W),
		OriginalH: uint16(f.SourceSize.H),
		OffsetX:   int16(f.SpriteSourceSize.X),
		OffsetY:   int16(f.SpriteSourceSize.Y),
		Rotated:   f.Rotated,
	}
}

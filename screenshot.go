package avg

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled capture of the next drawn frame. The PNG is
// written to ScreenshotDir (default "screenshots").
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// flushScreenshots writes every queued capture of screen. Called at the end
// of Draw.
func (s *Scene) flushScreenshots(screen *ebiten.Image) {
	if len(s.screenshotQueue) == 0 {
		return
	}
	labels := s.screenshotQueue
	s.screenshotQueue = s.screenshotQueue[:0]

	dir := s.ScreenshotDir
	if dir == "" {
		dir = "screenshots"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		debugLogf("screenshot: mkdir %s: %v", dir, err)
		return
	}

	img := straightAlpha(screen)
	stamp := time.Now().Format("20060102_150405")
	for _, label := range labels {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", stamp, fileLabel(label)))
		if err := writePNG(path, img); err != nil {
			debugLogf("screenshot: %v", err)
			continue
		}
		debugLogf("screenshot: %s", path)
	}
}

// straightAlpha reads screen's premultiplied pixels into an NRGBA image.
func straightAlpha(screen *ebiten.Image) *image.NRGBA {
	b := screen.Bounds()
	img := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	screen.ReadPixels(img.Pix)
	for i := 0; i < len(img.Pix); i += 4 {
		a := int(img.Pix[i+3])
		if a == 0 || a == 255 {
			continue
		}
		for c := range 3 {
			img.Pix[i+c] = uint8(min(int(img.Pix[i+c])*255/a, 255))
		}
	}
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// fileLabel keeps letters, digits, '-' and '.', replacing the rest with '_'.
func fileLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}

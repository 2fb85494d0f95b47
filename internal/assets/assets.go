// Package assets resolves question image references to decoded images.
package assets

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ErrNoBaseDir is returned by Load when the resolver has no image directory.
var ErrNoBaseDir = errors.New("no image directory configured")

// Resolver loads question images relative to BaseDir and caches them.
type Resolver struct {
	BaseDir string

	mu    sync.Mutex
	cache map[string]image.Image
}

// NewResolver creates a resolver rooted at dir. An empty dir resolves nothing.
func NewResolver(dir string) *Resolver {
	return &Resolver{BaseDir: dir, cache: make(map[string]image.Image)}
}

// Load decodes the image named by ref. Refs are slash-separated paths below
// BaseDir; refs escaping it are rejected.
func (r *Resolver) Load(ref string) (image.Image, error) {
	if r.BaseDir == "" {
		return nil, ErrNoBaseDir
	}
	clean := filepath.Clean(filepath.FromSlash(ref))
	if clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return nil, fmt.Errorf("image ref %q: outside image directory", ref)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if img, ok := r.cache[clean]; ok {
		return img, nil
	}

	f, err := os.Open(filepath.Join(r.BaseDir, clean))
	if err != nil {
		return nil, fmt.Errorf("open image %q: %w", ref, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", ref, err)
	}
	r.cache[clean] = img
	return img, nil
}

// Background returns the question image fitted into a w×h white canvas, or a
// placeholder naming ref when it cannot be loaded.
func (r *Resolver) Background(ref string, w, h int) *image.RGBA {
	img, err := r.Load(ref)
	if err != nil {
		return Placeholder(ref, w, h)
	}
	return Fit(img, w, h)
}

// Fit scales img to fit inside w×h, preserving aspect ratio, centred on white.
func Fit(img image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)

	sb := img.Bounds()
	if sb.Dx() == 0 || sb.Dy() == 0 || w <= 0 || h <= 0 {
		return dst
	}
	scale := min(float64(w)/float64(sb.Dx()), float64(h)/float64(sb.Dy()))
	tw, th := int(float64(sb.Dx())*scale), int(float64(sb.Dy())*scale)
	x0, y0 := (w-tw)/2, (h-th)/2
	xdraw.CatmullRom.Scale(dst, image.Rect(x0, y0, x0+tw, y0+th), img, sb, xdraw.Over, nil)
	return dst
}

var placeholderInk = color.RGBA{0x9c, 0xa3, 0xaf, 0xff}

// Placeholder draws a framed card with the unresolved ref in its centre.
func Placeholder(ref string, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	if w <= 0 || h <= 0 {
		return dst
	}

	frame := image.NewUniform(placeholderInk)
	for _, r := range []image.Rectangle{
		image.Rect(0, 0, w, 2),
		image.Rect(0, h-2, w, h),
		image.Rect(0, 0, 2, h),
		image.Rect(w-2, 0, w, h),
	} {
		draw.Draw(dst, r, frame, image.Point{}, draw.Src)
	}

	label := "image unavailable: " + ref
	d := &font.Drawer{Dst: dst, Src: frame, Face: basicfont.Face7x13}
	tw := d.MeasureString(label).Ceil()
	d.Dot = fixed.P(max((w-tw)/2, 4), h/2+4)
	d.DrawString(label)
	return dst
}

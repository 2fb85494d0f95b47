package drawing

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// capSegments is the polygon resolution of round caps and joins.
const capSegments = 16

// Render rasterizes strokes in order onto a transparent w×h image. Ink strokes
// are composited over what is below; eraser strokes remove coverage
// (destination-out). The result depends only on the inputs.
//
// Each stroke only touches its own bounding box, so the cost of a frame grows
// with the inked area rather than with the canvas size.
func Render(strokes []Stroke, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 {
		return dst
	}

	var z vector.Rasterizer
	mask := image.NewAlpha(dst.Bounds())
	for _, s := range strokes {
		pts := s.path()
		if len(pts) == 0 {
			continue
		}
		radius := s.Tool.Width() / 2
		r := bounds(pts, radius).Intersect(dst.Bounds())
		if r.Empty() {
			continue
		}

		z.Reset(r.Dx(), r.Dy())
		z.DrawOp = draw.Src
		outline(&z, pts, radius, r.Min)
		z.Draw(mask, r, image.Opaque, image.Point{})

		if s.Tool == Eraser {
			eraseUnder(dst, mask, r)
			continue
		}
		draw.DrawMask(dst, r, image.NewUniform(s.Color.RGBA()), image.Point{}, mask, r.Min, draw.Over)
	}
	return dst
}

// bounds is the pixel rectangle covering pts widened by r, with a pixel of
// slack for antialiasing.
func bounds(pts []Point, r float64) image.Rectangle {
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return image.Rect(
		int(math.Floor(minX-r))-1, int(math.Floor(minY-r))-1,
		int(math.Ceil(maxX+r))+1, int(math.Ceil(maxY+r))+1,
	)
}

// outline adds the filled shape of a round-capped polyline of half-width r,
// translated so that origin lands on the rasterizer's (0, 0).
// Every sub-path winds the same way so overlaps don't cancel out.
func outline(z *vector.Rasterizer, pts []Point, r float64, origin image.Point) {
	ox, oy := float64(origin.X), float64(origin.Y)
	for i, p := range pts {
		p = Point{X: p.X - ox, Y: p.Y - oy}
		disc(z, p, r)
		if i == 0 {
			continue
		}
		q := Point{X: pts[i-1].X - ox, Y: pts[i-1].Y - oy}
		dx, dy := p.X-q.X, p.Y-q.Y
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*r, dx/l*r
		z.MoveTo(float32(q.X-nx), float32(q.Y-ny))
		z.LineTo(float32(p.X-nx), float32(p.Y-ny))
		z.LineTo(float32(p.X+nx), float32(p.Y+ny))
		z.LineTo(float32(q.X+nx), float32(q.Y+ny))
		z.ClosePath()
	}
}

func disc(z *vector.Rasterizer, c Point, r float64) {
	z.MoveTo(float32(c.X+r), float32(c.Y))
	for i := 1; i < capSegments; i++ {
		a := 2 * math.Pi * float64(i) / capSegments
		z.LineTo(float32(c.X+r*math.Cos(a)), float32(c.Y+r*math.Sin(a)))
	}
	z.ClosePath()
}

// eraseUnder scales every dst pixel inside r by the inverse mask coverage.
func eraseUnder(dst *image.RGBA, mask *image.Alpha, r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m := uint32(mask.AlphaAt(x, y).A)
			if m == 0 {
				continue
			}
			keep := 255 - m
			i := dst.PixOffset(x, y)
			for c := 0; c < 4; c++ {
				dst.Pix[i+c] = uint8(uint32(dst.Pix[i+c]) * keep / 255)
			}
		}
	}
}

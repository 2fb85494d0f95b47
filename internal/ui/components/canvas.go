package components

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"charm.land/lipgloss/v2"
	xdraw "golang.org/x/image/draw"

	"github.com/nazolab/mogi/internal/drawing"
)

// Logical canvas size. Strokes are recorded in these coordinates so they
// survive terminal resizes.
const (
	LogicalWidth  = 640
	LogicalHeight = 480
)

// Canvas shows a logical-size image in a Cols×Rows block of terminal cells.
// Every cell is an upper half block, so one cell carries two vertically
// stacked pixels.
type Canvas struct {
	Cols, Rows int
}

// Contains reports whether the cell lies inside the canvas.
func (c Canvas) Contains(col, row int) bool {
	return col >= 0 && row >= 0 && col < c.Cols && row < c.Rows
}

// ToLogical maps a cell to the logical point at its centre.
func (c Canvas) ToLogical(col, row int) drawing.Point {
	if c.Cols <= 0 || c.Rows <= 0 {
		return drawing.Point{}
	}
	return drawing.Point{
		X: (float64(col) + 0.5) * LogicalWidth / float64(c.Cols),
		Y: (float64(row) + 0.5) * LogicalHeight / float64(c.Rows),
	}
}

// Compose reduces the background and the annotation layer to the cell
// grid's pixel resolution and stacks the annotations on top. bg may be nil.
func (c Canvas) Compose(bg image.Image, ink *image.RGBA) *image.RGBA {
	small := image.NewRGBA(image.Rect(0, 0, c.Cols, c.Rows*2))
	draw.Draw(small, small.Bounds(), image.White, image.Point{}, draw.Src)
	if c.Cols <= 0 || c.Rows <= 0 {
		return small
	}
	if bg != nil {
		xdraw.ApproxBiLinear.Scale(small, small.Bounds(), bg, bg.Bounds(), xdraw.Over, nil)
	}
	if ink != nil {
		draw.Draw(small, small.Bounds(), poolStrongest(ink, small.Bounds()), image.Point{}, draw.Over)
	}
	return small
}

// poolStrongest downsamples src to r, keeping the most opaque source pixel
// of each block. Thin pen lines stay visible at cell resolution.
func poolStrongest(src *image.RGBA, r image.Rectangle) *image.RGBA {
	dst := image.NewRGBA(r)
	sb := src.Bounds()
	tw, th := r.Dx(), r.Dy()
	for ty := 0; ty < th; ty++ {
		y0 := sb.Min.Y + ty*sb.Dy()/th
		y1 := max(sb.Min.Y+(ty+1)*sb.Dy()/th, y0+1)
		for tx := 0; tx < tw; tx++ {
			x0 := sb.Min.X + tx*sb.Dx()/tw
			x1 := max(sb.Min.X+(tx+1)*sb.Dx()/tw, x0+1)
			var best color.RGBA
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					if p := src.RGBAAt(x, y); p.A > best.A {
						best = p
					}
				}
			}
			dst.SetRGBA(tx, ty, best)
		}
	}
	return dst
}

// Render composes and draws the canvas as Rows lines of Cols cells.
func (c Canvas) Render(bg image.Image, ink *image.RGBA) string {
	if c.Cols <= 0 || c.Rows <= 0 {
		return ""
	}
	return c.cells(c.Compose(bg, ink))
}

func (c Canvas) cells(px *image.RGBA) string {
	styles := make(map[[2]color.RGBA]lipgloss.Style)
	var b strings.Builder
	for row := 0; row < c.Rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < c.Cols; col++ {
			key := [2]color.RGBA{px.RGBAAt(col, row*2), px.RGBAAt(col, row*2+1)}
			st, ok := styles[key]
			if !ok {
				st = lipgloss.NewStyle().Foreground(key[0]).Background(key[1])
				styles[key] = st
			}
			b.WriteString(st.Render("▀"))
		}
	}
	return b.String()
}

// Package drawing implements the per-question annotation layer: stroke capture,
// undo/redo history, and raster composition.
package drawing

import (
	"fmt"
	"image/color"
)

// Tool selects how a stroke is captured and composed.
type Tool int

const (
	Pencil       Tool = iota // Freehand polyline
	StraightLine             // Segment from first to last point
	Eraser                   // Removes annotation pixels under the stroke
)

func (t Tool) String() string {
	switch t {
	case Pencil:
		return "pencil"
	case StraightLine:
		return "line"
	case Eraser:
		return "eraser"
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// Width is the stroke width in canvas pixels.
func (t Tool) Width() float64 {
	if t == Eraser {
		return eraserWidth
	}
	return penWidth
}

const (
	penWidth    = 3
	eraserWidth = 20
)

// Color is one of the fixed ink colors. Eraser strokes ignore it.
type Color int

const (
	Black Color = iota
	Red
	Blue
)

// Colors lists the palette in display order.
var Colors = []Color{Black, Red, Blue}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case Red:
		return "red"
	case Blue:
		return "blue"
	}
	return fmt.Sprintf("Color(%d)", int(c))
}

// RGBA returns the ink value of the color.
func (c Color) RGBA() color.RGBA {
	switch c {
	case Red:
		return color.RGBA{R: 0xff, A: 0xff}
	case Blue:
		return color.RGBA{B: 0xff, A: 0xff}
	}
	return color.RGBA{A: 0xff}
}

// Point is a position in canvas pixel space.
type Point struct {
	X, Y float64
}

// Stroke is one continuous pointer drag. Committed strokes are never mutated.
type Stroke struct {
	Tool   Tool
	Color  Color
	Points []Point
}

// clone returns a stroke that shares no memory with s.
func (s Stroke) clone() Stroke {
	s.Points = append([]Point(nil), s.Points...)
	return s
}

// path returns the points actually drawn: straight lines keep only their ends.
func (s Stroke) path() []Point {
	if s.Tool == StraightLine && len(s.Points) > 1 {
		return []Point{s.Points[0], s.Points[len(s.Points)-1]}
	}
	return s.Points
}

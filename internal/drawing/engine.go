package drawing

import (
	"image"

	"github.com/nazolab/mogi/internal/confirm"
)

// ClearPrompt is shown before a question's drawings are wiped.
const ClearPrompt = "Erase every drawing on this question? This cannot be undone."

// Engine captures pointer drags into strokes for the active question.
//
// The engine is Idle until BeginStroke and Dragging until EndStroke. Moving
// to another question while Dragging drops the unfinished stroke. Not safe
// for concurrent use.
type Engine struct {
	store   *Store
	confirm confirm.Confirmer

	active int
	tool   Tool
	color  Color

	current *Stroke
	rev     uint64
}

// NewEngine returns an engine writing into store, with clear gated by c.
func NewEngine(store *Store, c confirm.Confirmer) *Engine {
	return &Engine{store: store, confirm: c, tool: Pencil, color: Black}
}

// Store returns the backing stroke store.
func (e *Engine) Store() *Store { return e.store }

// Active returns the question the engine draws on.
func (e *Engine) Active() int { return e.active }

// Focus scopes the engine to question qid, discarding any unfinished stroke.
func (e *Engine) Focus(qid int) {
	if qid == e.active {
		return
	}
	e.current = nil
	e.active = qid
	e.rev++
}

func (e *Engine) Tool() Tool { return e.tool }
func (e *Engine) SetTool(t Tool) { e.tool = t }
func (e *Engine) Color() Color { return e.color }
func (e *Engine) SetColor(c Color) { e.color = c }
func (e *Engine) Dragging() bool { return e.current != nil }

// Revision changes whenever what Strokes returns may have changed.
func (e *Engine) Revision() uint64 { return e.rev }

// InProgress returns a copy of the unfinished stroke.
func (e *Engine) InProgress() (Stroke, bool) {
	if e.current == nil {
		return Stroke{}, false
	}
	return e.current.clone(), true
}

// BeginStroke opens a stroke at p with the current tool and color. A stroke
// still open from a lost release is committed first.
func (e *Engine) BeginStroke(p Point) {
	if e.current != nil {
		e.EndStroke()
	}
	e.current = &Stroke{Tool: e.tool, Color: e.color, Points: []Point{p}}
	e.rev++
}

// ExtendStroke appends p to the open stroke. No-op while Idle.
func (e *Engine) ExtendStroke(p Point) {
	if e.current == nil {
		return
	}
	e.current.Points = append(e.current.Points, p)
	e.rev++
}

// EndStroke commits the open stroke to the active question and returns to
// Idle. It reports whether a stroke was committed.
func (e *Engine) EndStroke() bool {
	s := e.current
	e.current = nil
	if s == nil || len(s.Points) == 0 {
		return false
	}
	e.store.commit(e.active, *s)
	e.rev++
	return true
}

// Undo moves the newest committed stroke of the active question to the redo buffer.
func (e *Engine) Undo() bool {
	if !e.store.undo(e.active) {
		return false
	}
	e.rev++
	return true
}

// Redo recommits the most recently undone stroke of the active question.
func (e *Engine) Redo() bool {
	if !e.store.redo(e.active) {
		return false
	}
	e.rev++
	return true
}

// Clear asks for confirmation, then empties both buffers of qid.
func (e *Engine) Clear(qid int) {
	e.confirm.Confirm(ClearPrompt, func() {
		e.store.clear(qid)
		if qid == e.active {
			e.current = nil
		}
		e.rev++
	})
}

// Strokes returns what render draws for qid: committed strokes, then the
// unfinished stroke when qid is active.
func (e *Engine) Strokes(qid int) []Stroke {
	strokes := e.store.Committed(qid)
	if qid == e.active && e.current != nil {
		strokes = append(strokes, e.current.clone())
	}
	return strokes
}

// Render composes the annotation layer of qid onto a transparent w×h canvas.
func (e *Engine) Render(qid, w, h int) *image.RGBA {
	return Render(e.Strokes(qid), w, h)
}

package drawing

// History is the drawing state of one question.
type History struct {
	committed []Stroke // oldest first
	undone    []Stroke // most recently undone last
}

// Committed returns a copy of the committed strokes, oldest first.
func (h *History) Committed() []Stroke {
	return cloneStrokes(h.committed)
}

// Undone returns a copy of the redo buffer, most recently undone last.
func (h *History) Undone() []Stroke {
	return cloneStrokes(h.undone)
}

// CanUndo reports whether there is a stroke to undo.
func (h *History) CanUndo() bool { return len(h.committed) > 0 }

// CanRedo reports whether there is a stroke to redo.
func (h *History) CanRedo() bool { return len(h.undone) > 0 }

func (h *History) commit(s Stroke) {
	h.committed = append(h.committed, s.clone())
	h.undone = nil
}

func (h *History) undo() bool {
	n := len(h.committed)
	if n == 0 {
		return false
	}
	h.undone = append(h.undone, h.committed[n-1])
	h.committed = h.committed[:n-1]
	return true
}

func (h *History) redo() bool {
	n := len(h.undone)
	if n == 0 {
		return false
	}
	h.committed = append(h.committed, h.undone[n-1])
	h.undone = h.undone[:n-1]
	return true
}

// Store keeps one History per question, created on the first committed stroke.
type Store struct {
	histories map[int]*History
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{histories: make(map[int]*History)}
}

// History returns the drawing state of qid.
func (s *Store) History(qid int) (*History, bool) {
	h, ok := s.histories[qid]
	return h, ok
}

// Committed returns the committed strokes of qid, oldest first.
func (s *Store) Committed(qid int) []Stroke {
	if h, ok := s.histories[qid]; ok {
		return h.Committed()
	}
	return nil
}

// Annotated returns the ids of questions with at least one committed stroke.
func (s *Store) Annotated() []int {
	ids := make([]int, 0, len(s.histories))
	for id, h := range s.histories {
		if len(h.committed) > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *Store) commit(qid int, st Stroke) {
	h, ok := s.histories[qid]
	if !ok {
		h = &History{}
		s.histories[qid] = h
	}
	h.commit(st)
}

func (s *Store) undo(qid int) bool {
	if h, ok := s.histories[qid]; ok {
		return h.undo()
	}
	return false
}

func (s *Store) redo(qid int) bool {
	if h, ok := s.histories[qid]; ok {
		return h.redo()
	}
	return false
}

func (s *Store) clear(qid int) {
	delete(s.histories, qid)
}

func cloneStrokes(in []Stroke) []Stroke {
	if len(in) == 0 {
		return nil
	}
	out := make([]Stroke, len(in))
	for i, s := range in {
		out[i] = s.clone()
	}
	return out
}

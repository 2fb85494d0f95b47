// Package answers records per-question answers and their submission locks.
package answers

import "maps"

// Entry is the answer state of one question.
type Entry struct {
	Value  Value
	Locked bool
}

// Snapshot maps question id to answer value. Unanswered questions are omitted.
type Snapshot map[int]Value

// Ledger holds the answer entries of an exam session, created lazily per question.
// It is not safe for concurrent use.
type Ledger struct {
	entries map[int]*Entry
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{entries: make(map[int]*Entry)}
}

// Entry returns the entry of question qid; unknown questions report the zero entry.
func (l *Ledger) Entry(qid int) Entry {
	if e, ok := l.entries[qid]; ok {
		return *e
	}
	return Entry{}
}

// Value returns the recorded answer of qid.
func (l *Ledger) Value(qid int) Value {
	return l.Entry(qid).Value
}

// IsLocked reports whether the answer of qid is submitted.
func (l *Ledger) IsLocked(qid int) bool {
	return l.Entry(qid).Locked
}

// SetAnswer replaces the value of qid. Locked answers are left untouched and
// the call reports false.
func (l *Ledger) SetAnswer(qid int, v Value) bool {
	e := l.entry(qid)
	if e.Locked {
		return false
	}
	e.Value = v
	return true
}

// Submit locks the answer of qid. It reports whether the lock was newly taken.
func (l *Ledger) Submit(qid int) bool {
	e := l.entry(qid)
	if e.Locked {
		return false
	}
	e.Locked = true
	return true
}

// Reset releases the lock of qid and keeps its value.
func (l *Ledger) Reset(qid int) {
	if e, ok := l.entries[qid]; ok {
		e.Locked = false
	}
}

// Snapshot copies every present answer, locked or not.
func (l *Ledger) Snapshot() Snapshot {
	snap := make(Snapshot, len(l.entries))
	for id, e := range l.entries {
		if !e.Value.IsAbsent() {
			snap[id] = e.Value
		}
	}
	return snap
}

// Clone returns an independent copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	return maps.Clone(s)
}

func (l *Ledger) entry(qid int) *Entry {
	e, ok := l.entries[qid]
	if !ok {
		e = &Entry{}
		l.entries[qid] = e
	}
	return e
}

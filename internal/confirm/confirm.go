// Package confirm provides the accept/cancel gate placed in front of
// irreversible exam actions such as clearing a drawing or ending the exam.
package confirm

// Confirmer asks the user before running onAccept. Implementations either run
// onAccept once (accepted) or never (canceled).
type Confirmer interface {
	Confirm(prompt string, onAccept func())
}

// Request is a confirmation waiting for an answer.
type Request struct {
	Prompt   string
	onAccept func()
}

// Gate is a modal Confirmer: Confirm parks the request until Accept or Cancel.
// A second Confirm while one is pending replaces it.
type Gate struct {
	pending *Request
}

var _ Confirmer = (*Gate)(nil)

// Confirm parks a request.
func (g *Gate) Confirm(prompt string, onAccept func()) {
	g.pending = &Request{Prompt: prompt, onAccept: onAccept}
}

// Pending returns the request awaiting an answer, if any.
func (g *Gate) Pending() (Request, bool) {
	if g.pending == nil {
		return Request{}, false
	}
	return *g.pending, true
}

// Accept runs and discards the pending request. It reports whether there was one.
func (g *Gate) Accept() bool {
	req := g.pending
	if req == nil {
		return false
	}
	g.pending = nil
	if req.onAccept != nil {
		req.onAccept()
	}
	return true
}

// Cancel discards the pending request without running it.
func (g *Gate) Cancel() bool {
	if g.pending == nil {
		return false
	}
	g.pending = nil
	return true
}

// Func adapts a decision function into a Confirmer that answers immediately.
type Func func(prompt string) bool

// Confirm runs onAccept when f approves the prompt.
func (f Func) Confirm(prompt string, onAccept func()) {
	if f(prompt) && onAccept != nil {
		onAccept()
	}
}

// Always accepts every request.
var Always Confirmer = Func(func(string) bool { return true })

// Never rejects every request.
var Never Confirmer = Func(func(string) bool { return false })

package confirm

import "testing"

func TestGate_Accept(t *testing.T) {
	var g Gate
	ran := 0
	g.Confirm("sure?", func() { ran++ })

	req, ok := g.Pending()
	if !ok || req.Prompt != "sure?" {
		t.Fatalf("Pending() = %+v, %v; want prompt %q", req, ok, "sure?")
	}
	if !g.Accept() {
		t.Fatal("Accept() = false, want true")
	}
	if ran != 1 {
		t.Errorf("onAccept ran %d times, want 1", ran)
	}
	if g.Accept() {
		t.Error("second Accept() = true, want false")
	}
	if ran != 1 {
		t.Errorf("onAccept ran %d times after second Accept, want 1", ran)
	}
}

func TestGate_Cancel(t *testing.T) {
	var g Gate
	ran := false
	g.Confirm("sure?", func() { ran = true })

	if !g.Cancel() {
		t.Fatal("Cancel() = false, want true")
	}
	if _, ok := g.Pending(); ok {
		t.Error("request still pending after Cancel")
	}
	if g.Accept() {
		t.Error("Accept() after Cancel = true, want false")
	}
	if ran {
		t.Error("onAccept ran after Cancel")
	}
}

func TestGate_ReplacesPending(t *testing.T) {
	var g Gate
	first, second := false, false
	g.Confirm("a", func() { first = true })
	g.Confirm("b", func() { second = true })
	g.Accept()

	if first || !second {
		t.Errorf("first=%v second=%v, want only the latest request to run", first, second)
	}
}

func TestFunc(t *testing.T) {
	ran := false
	Always.Confirm("x", func() { ran = true })
	if !ran {
		t.Error("Always did not run onAccept")
	}

	ran = false
	Never.Confirm("x", func() { ran = true })
	if ran {
		t.Error("Never ran onAccept")
	}
}

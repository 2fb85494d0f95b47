package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{3600, "60:00"},
		{3599, "59:59"},
		{65, "01:05"},
		{0, "00:00"},
		{-3, "00:00"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.secs); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(79, 30) {
		t.Error("79 columns should be too small")
	}
	if !IsTooSmall(100, 23) {
		t.Error("23 rows should be too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("minimum size should fit")
	}
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Exam", "kana  12:34", 80)
	if got := lipgloss.Height(h); got != HeaderHeight {
		t.Errorf("header height = %d, want %d", got, HeaderHeight)
	}
	for _, want := range []string{"mogi", "Exam", "12:34"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestContentHeight(t *testing.T) {
	if got := ContentHeight(24); got != 18 {
		t.Errorf("ContentHeight(24) = %d, want 18", got)
	}
	if got := ContentHeight(4); got != 0 {
		t.Errorf("ContentHeight(4) = %d, want 0", got)
	}
}

func TestRenderFrameFillsHeight(t *testing.T) {
	header := RenderHeader("Exam", "", 80)
	footer := RenderFooter([]KeyHint{{Key: "q", Description: "quit"}}, 80)
	frame := RenderFrame(header, "body", footer, 80, 30)
	if got := lipgloss.Height(frame); got != 30 {
		t.Errorf("frame height = %d, want 30", got)
	}
	if !strings.Contains(frame, "quit") {
		t.Error("frame missing footer hint")
	}
}

func TestRenderMinSizeMessage(t *testing.T) {
	msg := RenderMinSizeMessage(40, 10)
	for _, want := range []string{"needs a bigger window", "80 x 24", "40 x 10"} {
		if !strings.Contains(msg, want) {
			t.Errorf("min size message missing %q", want)
		}
	}
}

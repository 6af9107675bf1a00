package footer

import (
	"strings"
	"testing"

	"tableflip.dev/meridian/pkg/tui/theme"
)

func TestCommandModeShowsBuffer(t *testing.T) {
	m := New(theme.Default().Footer)
	m.SetMode(ModeCommand)
	m.SetCommand("/ref")
	if got := m.View(); !strings.Contains(got, "/ref") {
		t.Errorf("view = %q, want the command buffer", got)
	}

	m.SetMode(ModeNormal)
	if m.command != "" {
		t.Error("leaving command mode should clear the buffer")
	}
}

func TestErrorDisplacesStatus(t *testing.T) {
	m := New(theme.Default().Footer)
	m.SetStatus("refreshing")
	m.SetError("network down")
	got := m.View()
	if !strings.Contains(got, "network down") {
		t.Errorf("view = %q, want the error", got)
	}
	if strings.Contains(got, "refreshing") {
		t.Errorf("view = %q, stale status still showing", got)
	}
}

func TestTruncatesToWidth(t *testing.T) {
	m := New(theme.Default().Footer)
	m.SetHelp(strings.Repeat("x", 100))
	m.SetWidth(20)
	got := m.View()
	if !strings.Contains(got, "…") {
		t.Errorf("view = %q, want truncation tail", got)
	}
}

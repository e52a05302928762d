package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/indigodrigo/rk4-wind-solution/internal/wind"
)

func testBrowser(t *testing.T) Browser {
	t.Helper()
	m, err := wind.NewModel(wind.SunParameters())
	if err != nil {
		t.Fatalf("model: %v", err)
	}

	rc := m.CriticalRadius()
	a := m.SoundSpeed()
	sols := []wind.Solution{
		{Branch: wind.TransonicWind, Points: []wind.Point{
			{R: 0.5 * rc, V: 0.2 * a}, {R: rc, V: a}, {R: 3 * rc, V: 2 * a},
		}},
		{Branch: wind.SubsonicBreezeLow, Points: []wind.Point{
			{R: 0.5 * rc, V: 0.3 * a}, {R: rc, V: 0.75 * a}, {R: 3 * rc, V: 0.4 * a},
		}},
	}
	return NewBrowser(m, sols, true)
}

func TestBrowserViewASCIIChrome(t *testing.T) {
	view := testBrowser(t).View()

	if !strings.Contains(view, "isothermal wind solutions - all branches") {
		t.Error("overlay header missing")
	}
	if strings.ContainsRune(view, '—') {
		t.Error("header should use an ASCII separator, found an em dash")
	}
	if !strings.Contains(view, "q quit") {
		t.Error("help line missing")
	}
}

func TestBrowserKeys(t *testing.T) {
	b := testBrowser(t)

	next, _ := b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	b = next.(Browser)
	if b.overlay {
		t.Error("paging should leave overlay mode")
	}
	if b.idx != 1 {
		t.Errorf("idx = %d after one step right", b.idx)
	}
	if !strings.Contains(b.View(), b.sols[1].Branch.String()) {
		t.Error("single-branch header should name the branch")
	}

	next, _ = b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	b = next.(Browser)
	if !b.overlay {
		t.Error("a should restore overlay mode")
	}

	_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("q should quit")
	}
}

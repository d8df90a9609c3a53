package components

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
)

func keyPress(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestMultiChoiceHotkey(t *testing.T) {
	m := NewMultiChoice([]string{"1", "2", "3", "4"})
	m, cmd := m.Update(keyPress("3"))
	if cmd == nil {
		t.Fatal("expected a choice command")
	}
	msg, ok := cmd().(ChoiceMadeMsg)
	if !ok || msg.Index != 2 {
		t.Fatalf("expected ChoiceMadeMsg{2}, got %#v", cmd())
	}
	if m.Selected != 2 {
		t.Errorf("expected selection to follow hotkey, got %d", m.Selected)
	}
}

func TestMultiChoiceArrowsAndEnter(t *testing.T) {
	m := NewMultiChoice([]string{"a", "b", "c", "d"})
	m, _ = m.Update(keyPress("up"))
	if m.Selected != 0 {
		t.Errorf("up at top should stay at 0, got %d", m.Selected)
	}
	m, _ = m.Update(keyPress("down"))
	m, _ = m.Update(keyPress("down"))
	_, cmd := m.Update(keyPress("enter"))
	if got := cmd().(ChoiceMadeMsg).Index; got != 2 {
		t.Errorf("expected index 2, got %d", got)
	}
}

func TestMultiChoiceIgnoresOutOfRangeAndResolved(t *testing.T) {
	m := NewMultiChoice([]string{"a", "b", "c", "d"})
	if _, cmd := m.Update(keyPress("5")); cmd != nil {
		t.Error("5 is not an option")
	}
	m = m.Resolve(1, 0)
	if _, cmd := m.Update(keyPress("1")); cmd != nil {
		t.Error("resolved pad must not emit choices")
	}
}

func TestMenuWrapsAndNumbers(t *testing.T) {
	picked := ""
	item := func(name string) MenuItem {
		return MenuItem{Label: name, Action: func() tea.Cmd { picked = name; return nil }}
	}
	m := NewMenu([]MenuItem{item("Play"), item("Board"), item("Quit")})

	m, _ = m.Update(keyPress("up"))
	if m.Selected != 2 {
		t.Errorf("up from first should wrap to last, got %d", m.Selected)
	}
	m, _ = m.Update(keyPress("down"))
	if m.Selected != 0 {
		t.Errorf("down from last should wrap to first, got %d", m.Selected)
	}
	m.Update(keyPress("2"))
	if picked != "Board" {
		t.Errorf("expected Board, got %q", picked)
	}
}

func TestTextInputFilter(t *testing.T) {
	ti := NewTextInput("NAME", 12).WithFilter(strings.ToUpper)
	ti, _ = ti.Update(keyPress("a"))
	ti, _ = ti.Update(keyPress("b"))
	if ti.Value() != "AB" {
		t.Errorf("expected AB, got %q", ti.Value())
	}
}

func TestTimerBarWidth(t *testing.T) {
	bar := NewTimerBar(0.5, 3*time.Second, 30).View()
	if !strings.Contains(bar, "3.0s") {
		t.Errorf("expected remaining seconds in %q", bar)
	}
}

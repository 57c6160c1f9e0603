package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todo-screen/internal/todo"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		nm, ok := next.(Model)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
		m = nm
	}
	return m
}

func newModel(t *testing.T) (Model, *todo.Controller) {
	t.Helper()
	ctrl := todo.NewController(todo.WithIDGenerator(&todo.CounterGenerator{}))
	m := New(ctrl, nil)
	return send(t, m, tea.WindowSizeMsg{Width: 80, Height: 30}), ctrl
}

func TestInitialScreen(t *testing.T) {
	m, ctrl := newModel(t)
	s := m.Screen()
	if !s.Add.Disabled || s.Warning != nil || len(s.Items) != 0 {
		t.Fatalf("unexpected initial screen: %+v", s)
	}
	if !ctrl.Focused() {
		t.Fatalf("entry field should start focused")
	}
	if out := m.View(); !strings.Contains(out, "Todo List") || !strings.Contains(out, "no items") {
		t.Fatalf("view missing title/empty hint:\n%s", out)
	}
}

func TestTypingUpdatesDraft(t *testing.T) {
	m, ctrl := newModel(t)
	m = send(t, m, runes("todo item"))
	if ctrl.Draft() != "todo item" || !ctrl.SubmitEnabled() {
		t.Fatalf("expected enabled draft, got %+v", ctrl.State())
	}
	if m.Screen().Add.Disabled {
		t.Fatalf("screen should show enabled button")
	}
}

func TestTypingSpacesShowsWarning(t *testing.T) {
	m, ctrl := newModel(t)
	m = send(t, m, runes("   "))
	if !ctrl.ShowWarning() || ctrl.SubmitEnabled() {
		t.Fatalf("expected warning and disabled submit, got %+v", ctrl.State())
	}
	if !strings.Contains(m.View(), "Todo text cannot be empty") {
		t.Fatalf("warning not rendered:\n%s", m.View())
	}
}

func TestEnterSubmitsAndClears(t *testing.T) {
	m, ctrl := newModel(t)
	m = send(t, m, runes("todo item"), tea.KeyMsg{Type: tea.KeyEnter})
	if ctrl.Len() != 1 {
		t.Fatalf("expected 1 item, got %d", ctrl.Len())
	}
	if m.ti.Value() != "" || ctrl.Draft() != "" {
		t.Fatalf("input should be cleared")
	}
	if !m.ti.Focused() {
		t.Fatalf("input should keep focus")
	}
	s := m.Screen()
	if len(s.Items) != 1 || s.Items[0].Text != "todo item" || s.Items[0].TextLabel != "todo-item-0" {
		t.Fatalf("unexpected items: %+v", s.Items)
	}
}

func TestEnterOnBlankIsNoop(t *testing.T) {
	m, ctrl := newModel(t)
	m = send(t, m, runes("  "), tea.KeyMsg{Type: tea.KeyEnter})
	if ctrl.Len() != 0 {
		t.Fatalf("blank enter must not add")
	}
	if m.ti.Value() != "  " {
		t.Fatalf("blank enter must keep the input, got %q", m.ti.Value())
	}
}

func TestListToggleAndRemove(t *testing.T) {
	m, ctrl := newModel(t)
	m = send(t, m,
		runes("A"), tea.KeyMsg{Type: tea.KeyEnter},
		runes("B"), tea.KeyMsg{Type: tea.KeyEnter},
		tea.KeyMsg{Type: tea.KeyTab},
	)
	if ctrl.Focused() {
		t.Fatalf("tab should blur the entry field")
	}

	// selection follows the last added item
	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	items := ctrl.Items()
	if items[0].Completed || !items[1].Completed {
		t.Fatalf("expected only B toggled: %+v", items)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp}, runes("d"))
	items = ctrl.Items()
	if len(items) != 1 || items[0].Text != "B" {
		t.Fatalf("expected A removed: %+v", items)
	}
	if s := m.Screen(); len(s.Items) != 1 || s.Items[0].RemoveLabel != "remove-todo-button-0" {
		t.Fatalf("screen not re-indexed: %+v", s.Items)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !ctrl.Focused() || !m.ti.Focused() {
		t.Fatalf("tab should return focus to the entry field")
	}
}

func TestQuitKeys(t *testing.T) {
	m, _ := newModel(t)
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC}); cmd == nil {
		t.Fatalf("ctrl+c should quit")
	}
	// q in the entry field is text, not quit
	m = send(t, m, runes("q"))
	if m.ti.Value() != "q" {
		t.Fatalf("q should be typed into the input")
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatalf("q in the list should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg")
	}
}

func TestLongDraftIsKeptWhole(t *testing.T) {
	m, ctrl := newModel(t)
	long := strings.Repeat("ab", 125)
	m = send(t, m, runes(long))
	if ctrl.Draft() != long {
		t.Fatalf("draft truncated to %d runes", len(ctrl.Draft()))
	}
	send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if it, ok := ctrl.Item(0); !ok || it.Text != long {
		t.Fatalf("stored %d of %d runes", len(it.Text), len(long))
	}
}

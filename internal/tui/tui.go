// Package tui is the terminal front end: a Bubble Tea program over one
// todo.Controller. Every frame is drawn from view.Render.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todo-screen/internal/todo"
	"github.com/idilsaglam/todo-screen/internal/ui"
	"github.com/idilsaglam/todo-screen/internal/view"
)

// listItem adapts a rendered item to bubbles/list.Item
type listItem struct {
	view.ItemView
}

func (i listItem) FilterValue() string { return i.Text }

// Custom delegate to control how items render (single line)
type itemDelegate struct {
	focused *bool
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()
	box := t.Muted.Render(t.BoxUnchecked)
	text := it.Text
	if it.Checked {
		box = t.Success.Render(t.BoxChecked)
		text = t.Done.Render(text)
	}
	prefix := strings.Repeat(" ", lipgloss.Width(t.Cursor))
	if index == m.Index() && d.focused != nil && *d.focused {
		prefix = t.Selected.Render(t.Cursor)
	}
	fmt.Fprintf(w, "%s%s %s  %s", prefix, box, text, t.Muted.Render("["+view.RemoveText+"]"))
}

type area int

const (
	areaInput area = iota
	areaList
)

// Model implements tea.Model.
type Model struct {
	ctrl *todo.Controller
	log  *slog.Logger

	ti        textinput.Model
	list      list.Model
	help      help.Model
	keys      keyMap
	focus     area
	listFocus *bool

	width, height int
	screen        view.Screen
}

// New builds the model with the entry field focused.
func New(ctrl *todo.Controller, log *slog.Logger) Model {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	listFocus := new(bool)

	l := list.New(nil, itemDelegate{focused: listFocus}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.PaginationStyle = ui.Current().Help

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = view.InputPlaceholder
	ti.CharLimit = 0 // drafts are stored verbatim
	ti.Focus()
	ctrl.Focus()

	m := Model{
		ctrl:      ctrl,
		log:       log,
		ti:        ti,
		list:      l,
		help:      help.New(),
		keys:      defaultKeys(),
		focus:     areaInput,
		listFocus: listFocus,
		width:     80,
		height:    24,
	}
	m.refresh()
	return m
}

// Init and Update and View implement Bubble Tea's Model.
func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Force) {
			return m, tea.Quit
		}
		if m.focus == areaInput {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}

	var cmd tea.Cmd
	if m.focus == areaInput {
		m.ti, cmd = m.ti.Update(msg)
	}
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.ctrl.Submit()
		if m.ctrl.Draft() == "" {
			m.ti.SetValue("")
		}
		m.refresh()
		if n := len(m.list.Items()); n > 0 {
			m.list.Select(n - 1)
		}
		return m, nil
	case key.Matches(msg, m.keys.Switch):
		m.setFocus(areaList)
		return m, nil
	}

	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	if v := m.ti.Value(); v != m.ctrl.Draft() {
		m.ctrl.UpdateDraft(v)
		m.refresh()
	}
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Switch):
		m.setFocus(areaInput)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Toggle):
		if it, ok := m.list.SelectedItem().(listItem); ok {
			m.ctrl.ToggleCompletion(it.ID)
			m.log.Debug("toggled", "item", it.ID)
			m.refresh()
		}
		return m, nil
	case key.Matches(msg, m.keys.Remove):
		if it, ok := m.list.SelectedItem().(listItem); ok {
			idx := m.list.Index()
			m.ctrl.Remove(it.ID)
			m.log.Debug("removed", "item", it.ID)
			m.refresh()
			if idx >= len(m.list.Items()) {
				idx = len(m.list.Items()) - 1
			}
			if idx >= 0 {
				m.list.Select(idx)
			}
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) setFocus(a area) {
	m.focus = a
	*m.listFocus = a == areaList
	if a == areaList {
		m.ti.Blur()
		m.ctrl.Blur()
	} else {
		m.ti.Focus()
		m.ctrl.Focus()
	}
	m.refresh()
}

// refresh re-renders the screen from controller state and pushes the items
// into the list.
func (m *Model) refresh() {
	m.screen = view.Render(m.ctrl.State())
	items := make([]list.Item, 0, len(m.screen.Items))
	for _, it := range m.screen.Items {
		items = append(items, listItem{it})
	}
	m.list.SetItems(items)
	m.resize()
}

func (m *Model) resize() {
	// header, input, echo, button, warning, title, help + panel border
	chrome := 11
	h := m.height - chrome
	if h < 3 {
		h = 3
	}
	m.list.SetSize(m.width-4, h)
	m.ti.Width = m.width - 8
}

func (m Model) View() string {
	t := ui.Current()
	s := m.screen

	var b strings.Builder
	b.WriteString(m.ti.View())
	b.WriteString("\n")
	b.WriteString(t.Muted.Render(s.DraftEcho))
	b.WriteString("\n")

	btn := t.ButtonOn
	if s.Add.Disabled {
		btn = t.ButtonOff
	}
	b.WriteString(btn.Render(s.Add.Text))
	b.WriteString("\n")
	if s.Warning != nil {
		b.WriteString(t.Error.Render(s.Warning.Text))
	}
	b.WriteString("\n\n")

	header := fmt.Sprintf("%s   %s %d  %s %d  %s",
		t.Title.Render(s.Title.Text),
		t.Success.Render(t.SymDone), s.Done,
		t.Pending.Render(t.SymPending), s.Pending,
		t.Muted.Render(ui.ProgressBar(s.Done, s.Done+s.Pending, 16)),
	)
	b.WriteString(header)
	b.WriteString("\n")
	if len(s.Items) == 0 {
		b.WriteString(t.Muted.Render("no items"))
	} else {
		b.WriteString(m.list.View())
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(helpKeys{km: m.keys, listFocus: m.focus == areaList}))

	return ui.Panel(b.String(), m.width-2)
}

// Screen returns the last rendered view.
func (m Model) Screen() view.Screen { return m.screen }

// Options tune how the program attaches to the terminal.
type Options struct {
	AltScreen bool
	Input     io.Reader
	Output    io.Writer
	Logger    *slog.Logger
}

// Run starts the program and blocks until the user quits or ctx is done.
func Run(ctx context.Context, ctrl *todo.Controller, opt Options) error {
	popts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opt.AltScreen {
		popts = append(popts, tea.WithAltScreen())
	}
	if opt.Input != nil {
		popts = append(popts, tea.WithInput(opt.Input))
	}
	if opt.Output != nil {
		popts = append(popts, tea.WithOutput(opt.Output))
	}

	p := tea.NewProgram(New(ctrl, opt.Logger), popts...)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

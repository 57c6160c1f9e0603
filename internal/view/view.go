// Package view projects controller state into the labelled elements of the
// to-do screen. Both front ends (terminal and browser) render from Screen, so
// the element labels below are the public surface external drivers rely on.
package view

import (
	"strconv"

	"github.com/idilsaglam/todo-screen/internal/todo"
)

const (
	LabelInput     = "todo-input"
	LabelAddButton = "add-todo-button"
	LabelAddText   = "add-todo-button-text"
	LabelWarning   = "warning-message"
	LabelListTitle = "todo-list-title"
	labelItem      = "todo-item-"
	labelRemove    = "remove-todo-button-"
	labelToggle    = "toggle-todo-button-"

	AddText          = "Add"
	RemoveText       = "Remove"
	WarningText      = "Todo text cannot be empty"
	ListTitle        = "Todo List"
	InputPlaceholder = "Add todo..."
)

// ItemLabel, RemoveLabel and ToggleLabel name the per-item elements at
// render position i.
func ItemLabel(i int) string   { return labelItem + strconv.Itoa(i) }
func RemoveLabel(i int) string { return labelRemove + strconv.Itoa(i) }
func ToggleLabel(i int) string { return labelToggle + strconv.Itoa(i) }

type Input struct {
	Label       string
	Value       string
	Placeholder string
	Focused     bool
}

type Button struct {
	Label     string
	TextLabel string
	Text      string
	Disabled  bool
}

type Text struct {
	Label string
	Text  string
}

type ItemView struct {
	ID          string
	Index       int
	TextLabel   string
	Text        string
	RemoveLabel string
	ToggleLabel string
	Checked     bool
}

// Screen is the whole rendered view. Warning is nil when no warning shows.
type Screen struct {
	Input     Input
	DraftEcho string
	Add       Button
	Warning   *Text
	Title     Text
	Items     []ItemView
	Done      int
	Pending   int
}

// Render is a pure function of st.
func Render(st todo.State) Screen {
	s := Screen{
		Input: Input{
			Label:       LabelInput,
			Value:       st.Draft,
			Placeholder: InputPlaceholder,
			Focused:     st.Focused,
		},
		DraftEcho: st.Draft,
		Add: Button{
			Label:     LabelAddButton,
			TextLabel: LabelAddText,
			Text:      AddText,
			Disabled:  !st.SubmitEnabled,
		},
		Title: Text{Label: LabelListTitle, Text: ListTitle},
		Items: make([]ItemView, 0, len(st.Items)),
	}
	if st.ShowWarning {
		s.Warning = &Text{Label: LabelWarning, Text: WarningText}
	}
	for i, it := range st.Items {
		s.Items = append(s.Items, ItemView{
			ID:          it.ID,
			Index:       i,
			TextLabel:   ItemLabel(i),
			Text:        it.Text,
			RemoveLabel: RemoveLabel(i),
			ToggleLabel: ToggleLabel(i),
			Checked:     it.Completed,
		})
		if it.Completed {
			s.Done++
		} else {
			s.Pending++
		}
	}
	return s
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, Done, Help                          lipgloss.Style
	ButtonOn, ButtonOff                           lipgloss.Style

	Border      lipgloss.Border
	BorderColor lipgloss.Color

	BoxUnchecked, BoxChecked string
	SymDone, SymPending      string
	Cursor                   string

	// NoColor forces the ASCII profile while the theme is active.
	NoColor bool
}

var current = classic()

// Themes lists the names accepted by SetTheme.
var Themes = []string{"classic", "neon", "mono"}

func classic() Theme {
	return Theme{
		Name:      "classic",
		Title:     lipgloss.NewStyle().Bold(true),
		Muted:     lipgloss.NewStyle().Faint(true),
		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Selected:  lipgloss.NewStyle().Bold(true).Reverse(true),
		Done:      lipgloss.NewStyle().Faint(true).Strikethrough(true),
		Help:      lipgloss.NewStyle().Faint(true),
		ButtonOn:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4")).Padding(0, 1),
		ButtonOff: lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Background(lipgloss.Color("8")).Padding(0, 1),

		Border:      lipgloss.NormalBorder(),
		BorderColor: lipgloss.Color("8"),

		BoxUnchecked: "☐", BoxChecked: "☑",
		SymDone: "✔", SymPending: "•",
		Cursor: "> ",
	}
}

func neon() Theme {
	t := classic()
	t.Name = "neon"
	t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	t.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	t.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	t.ButtonOn = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("14")).Padding(0, 1)
	t.Border = lipgloss.RoundedBorder()
	t.BorderColor = lipgloss.Color("13")
	t.BoxUnchecked, t.BoxChecked = "◻", "◼"
	return t
}

func mono() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Name:  "mono",
		Title: plain.Bold(true), Muted: plain, Accent: plain,
		Success: plain, Error: plain.Bold(true), Pending: plain,
		Selected: plain.Reverse(true), Done: plain.Strikethrough(true), Help: plain,
		ButtonOn: plain.Bold(true), ButtonOff: plain.Faint(true),

		Border:      lipgloss.ASCIIBorder(),
		BorderColor: lipgloss.Color(""),

		BoxUnchecked: "[ ]", BoxChecked: "[x]",
		SymDone: "x", SymPending: "-",
		Cursor: "> ",

		NoColor: true,
	}
}

// SetTheme switches the active theme. "mono" also turns colour off.
func SetTheme(name string) error {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "classic":
		current = classic()
	case "neon":
		current = neon()
	case "mono":
		current = mono()
	default:
		return fmt.Errorf("unknown theme %q (expected %s)", name, strings.Join(Themes, "|"))
	}
	applyProfile()
	return nil
}

// ValidTheme reports whether SetTheme would accept name.
func ValidTheme(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "classic", "neon", "mono":
		return true
	}
	return false
}

// Expose what renderers need
func Current() Theme { return current }

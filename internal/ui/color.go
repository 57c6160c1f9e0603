package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

var (
	detected = lipgloss.ColorProfile()
	forced   *termenv.Profile
)

// SetColorForcing overrides terminal detection. disable wins over force;
// with neither set the detected profile applies again.
func SetColorForcing(force, disable bool) {
	switch {
	case disable:
		p := termenv.Ascii
		forced = &p
	case force:
		p := termenv.ANSI256
		forced = &p
	default:
		forced = nil
	}
	applyProfile()
}

// applyProfile sets the lipgloss profile from the theme and any forcing.
func applyProfile() {
	switch {
	case current.NoColor:
		lipgloss.SetColorProfile(termenv.Ascii)
	case forced != nil:
		lipgloss.SetColorProfile(*forced)
	default:
		lipgloss.SetColorProfile(detected)
	}
}

// SetOutput redirects OK/Fail lines; nil keeps the current writer.
func SetOutput(out, errOut io.Writer) {
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

func OK(msg string) { fmt.Fprintln(stdout, current.Success.Render(current.SymDone+" "+msg)) }
func Fail(msg string) { fmt.Fprintln(stderr, current.Error.Render("✖ "+msg)) }

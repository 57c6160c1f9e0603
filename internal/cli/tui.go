package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todo-screen/internal/todo"
	"github.com/idilsaglam/todo-screen/internal/tui"
	"github.com/idilsaglam/todo-screen/internal/ui"
)

type tuiFlags struct {
	altScreen bool
}

func newTUICmd(app *App) *cobra.Command {
	var noAlt bool
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the interactive terminal screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app, tuiFlags{altScreen: !noAlt})
		},
	}
	cmd.Flags().BoolVar(&noAlt, "no-alt-screen", false, "draw inline instead of on the alternate screen")
	return cmd
}

func runTUI(cmd *cobra.Command, app *App, f tuiFlags) error {
	log, closeLog, err := newLogger(app.cfg, io.Discard)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	ctrl := todo.NewController(app.controllerOptions()...)
	log.Debug("tui: start", "policy", ctrl.Policy(), "theme", app.cfg.Theme)
	if err := tui.Run(cmd.Context(), ctrl, tui.Options{
		AltScreen: f.altScreen,
		Input:     cmd.InOrStdin(),
		Output:    cmd.OutOrStdout(),
		Logger:    log,
	}); err != nil {
		return err
	}

	done := 0
	for _, it := range ctrl.Items() {
		if it.Completed {
			done++
		}
	}
	ui.OK(fmt.Sprintf("%d items, %d done", ctrl.Len(), done))
	return nil
}

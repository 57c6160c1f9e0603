package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todo-screen/internal/config"
	"github.com/idilsaglam/todo-screen/internal/todo"
	"github.com/idilsaglam/todo-screen/internal/ui"
)

// Version is stamped at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

// App carries root flags and the resolved configuration to subcommands.
type App struct {
	ConfigPath    string
	Theme         string
	WarningPolicy string
	LogLevel      string
	LogFile       string
	Color         bool
	NoColor       bool

	cfg    config.Config
	stdout io.Writer
	stderr io.Writer
}

func NewRootCmd() *cobra.Command {
	app := &App{stdout: os.Stdout, stderr: os.Stderr}

	cmd := &cobra.Command{
		Use:           "todo",
		Short:         "A single-screen todo list (terminal + browser)",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  todo

  # Serve the browser screen on :8081
  todo serve

  # Warn about blank input only when the field loses focus
  todo --warning-policy blur serve --addr 127.0.0.1:9000
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			return runTUI(cmd, app, tuiFlags{altScreen: true})
		},
	}
	cmd.SetOut(app.stdout)
	cmd.SetErr(app.stderr)

	pf := cmd.PersistentFlags()
	pf.StringVar(&app.ConfigPath, "config", "", "YAML config file")
	pf.StringVar(&app.Theme, "theme", "", "terminal theme: classic|neon|mono")
	pf.StringVar(&app.WarningPolicy, "warning-policy", "", "when to warn about blank input: live|blur")
	pf.StringVar(&app.LogLevel, "log-level", "", "debug|info|warn|error")
	pf.StringVar(&app.LogFile, "log-file", "", "write logs to this file (TUI logs nowhere by default)")
	pf.BoolVar(&app.Color, "color", false, "force colour output")
	pf.BoolVar(&app.NoColor, "no-color", false, "disable colour output (also NO_COLOR)")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.resolve(cmd)
	}

	cmd.AddCommand(newTUICmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// resolve loads config (defaults, file, env) and applies flags on top.
func (a *App) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(a.ConfigPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("theme") {
		cfg.Theme = a.Theme
	}
	if flags.Changed("warning-policy") {
		cfg.WarningPolicy = a.WarningPolicy
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.LogLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = a.LogFile
	}
	if flags.Changed("addr") {
		cfg.Addr, _ = flags.GetString("addr")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := ui.SetTheme(cfg.Theme); err != nil {
		return err
	}
	_, noColorEnv := os.LookupEnv("NO_COLOR")
	ui.SetColorForcing(a.Color, a.NoColor || noColorEnv)
	ui.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	a.cfg = cfg
	return nil
}

func (a *App) controllerOptions() []todo.Option {
	return []todo.Option{todo.WithWarningPolicy(a.cfg.Policy())}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "todo %s\n", Version)
		},
	}
}

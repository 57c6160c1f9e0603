package cli

import (
	"github.com/spf13/cobra"

	"github.com/idilsaglam/todo-screen/internal/metrics"
	"github.com/idilsaglam/todo-screen/internal/ui"
	"github.com/idilsaglam/todo-screen/internal/web"
)

func newServeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the todo screen to a browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, closeLog, err := newLogger(app.cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			srv, err := web.NewServer(web.ServerConfig{
				Addr:        app.cfg.Addr,
				Policy:      app.cfg.Policy(),
				SessionIdle: app.cfg.SessionIdle,
				Logger:      log,
				Metrics:     metrics.New(),
				DatastarURL: app.cfg.DatastarURL,
			})
			if err != nil {
				return err
			}
			ui.OK("serving on " + srv.Addr())
			return srv.ListenAndServe(cmd.Context())
		},
	}
	cmd.Flags().String("addr", "", "listen address (default :8081)")
	return cmd
}

package serve

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"speech2text/cmd/s2t/cmd/cli"
	"speech2text/internal/api/server"
	"speech2text/internal/app"
)

var (
	addr    string
	release bool
)

func init() {
	defaults := server.DefaultConfig()
	Cmd.Flags().StringVar(&addr, "addr", defaults.Addr, "listen address")
	Cmd.Flags().BoolVar(&release, "release", false, "run gin in release mode")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the run history over HTTP",
	Long: `Serve the run history over HTTP, read-only

- GET /api/v1/runs lists the most recent runs
- GET /api/v1/runs/{id} returns one run with its segments
- API documentation is served at /swagger/index.html`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := cli.LoadSettings(nil)
		if err != nil {
			return err
		}

		dao, err := app.InitializeTranscriptionDAO(settings)
		if err != nil {
			return err
		}
		if dao == nil {
			return fmt.Errorf("run history is disabled (history.driver is none)")
		}
		defer dao.Close()

		logger, err := cli.NewLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		cfg := server.DefaultConfig()
		cfg.Addr = addr
		cfg.Release = release

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(cmd.OutOrStdout(), "Serving run history on http://%s\n", cfg.Addr)
		return server.NewServer(cfg, dao, logger).Run(ctx)
	},
}

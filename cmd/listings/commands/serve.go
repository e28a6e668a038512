package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Yachtguy502/Analyze-Active-Listings/internal/app"
)

func newServeCommand(rt *session) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP analysis API",
		Long: `Runs the HTTP API until interrupted.

Endpoints:
  POST /api/v1/analyses          upload a listings file, receive the analysis as JSON
  POST /api/v1/analyses/export   upload a listings file, receive the xlsx workbook
  GET  /api/health
  GET  /api/version
  GET  /metrics                  Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("host") {
				rt.cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				rt.cfg.Server.Port = port
				if err := rt.cfg.Validate(); err != nil {
					return err
				}
			}

			application, err := app.NewApplication(rt.cfg, rt.logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return application.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "listen host (overrides config)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides config)")
	return cmd
}

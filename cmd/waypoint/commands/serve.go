package commands

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/waypoint"
	"github.com/dmitrymomot/waypoint/middlewares"
	"github.com/dmitrymomot/waypoint/pkg/logger"
)

func newServeCmd(opts *options) *cobra.Command {
	var (
		addr      string
		sentryDSN string
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a dry-run dispatcher",
		Long: `Start an HTTP server that dispatches every request through the routing
configuration. Controllers answer with the resolved target as JSON instead
of running application code. Health endpoints live under /health.

Examples:
  waypoint serve --addr :8080
  curl -H 'CF-IPCountry: MX' localhost:8080/usuarios`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			extractors := []logger.ContextExtractor{
				middlewares.RequestIDExtractor(),
				middlewares.LanguageExtractor(),
				waypoint.RouteExtractor(),
			}
			log := logger.NewWithSentry(
				logger.SentryConfig{DSN: sentryDSN, Environment: "development"},
				logger.WithExtractors(extractors...),
			).With("component", "waypoint")

			ws, err := opts.load(
				waypoint.WithDispatchLogger(log),
				waypoint.WithLogErrors(true),
				waypoint.OnAfterDispatch(func(c waypoint.Context, route string) error {
					c.LogDebug("dispatched", slog.String("route", route))
					return nil
				}),
			)
			if err != nil {
				return err
			}

			app := waypoint.New(
				waypoint.WithCustomLogger(log),
				waypoint.WithDispatcher(ws.dispatcher),
				waypoint.WithMiddleware(
					middlewares.RequestID(),
					middlewares.Recover(),
					middlewares.Language(ws.dispatcher),
				),
				waypoint.WithHealthChecks(),
			)

			log.Info("serving routes",
				slog.String("addr", addr),
				slog.String("config", opts.configPath),
				slog.Int("modules", len(ws.tree.Modules())),
			)
			return waypoint.Run(
				waypoint.Site(app),
				waypoint.Fallback(app),
				waypoint.Address(addr),
				waypoint.Logger(log),
				waypoint.ShutdownTimeout(timeout),
				waypoint.WithContext(cmd.Context()),
			)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&addr, "addr", ":8080", "Listen address")
	flags.StringVar(&sentryDSN, "sentry-dsn", os.Getenv("SENTRY_DSN"), "Sentry DSN for error reporting")
	flags.DurationVar(&timeout, "shutdown-timeout", 10*time.Second, "Graceful shutdown timeout")
	return cmd
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/deeplink"
	"github.com/dmitrymomot/deeplink/core/config"
	"github.com/dmitrymomot/deeplink/core/logger"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries settings shared by every command.
type app struct {
	cfg    deeplink.Config
	log    *slog.Logger
	routes string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: deeplink.DefaultConfig()}

	rootCmd := &cobra.Command{
		Use:   "deeplink",
		Short: "Match URLs against typed route expressions",
		Long: `deeplink compiles route expressions and resolves URLs against
route tables.

Route tables are YAML or JSON files listing global params, custom
types and routes in priority order. A table can also be read from
S3 with an s3://bucket/key location.

Settings are read from DEEPLINK_* environment variables and a .env
file; flags take precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(&a.cfg); err != nil {
				return err
			}
			if !cmd.Flags().Changed("routes") && a.routes == "" {
				a.routes = a.cfg.RoutesFile
			}
			a.log = logger.FromConfig(a.cfg.LogLevel, a.cfg.LogFormat, cmd.ErrOrStderr())
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.routes, "routes", "r", "", "route table file or s3://bucket/key (default $DEEPLINK_ROUTES_FILE)")

	rootCmd.AddCommand(
		compileCmd(a),
		matchCmd(a),
		routesCmd(a),
		serveCmd(a),
		versionCmd(),
	)

	return rootCmd
}

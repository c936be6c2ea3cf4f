// Package commands provides the CLI commands for waypoint.
package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// options are the flags shared by every command.
type options struct {
	configPath     string
	envPrefix      string
	controllersDir string
	register       []string
	jsonOutput     bool
	noColor        bool
}

// NewRootCmd builds the waypoint command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "waypoint",
		Short: "Inspect and serve waypoint routing configurations",
		Long: `waypoint loads a routing configuration and shows how requests map to
modules, controllers and actions, and how URLs are built back.

Controllers come from the controllers directory ("<Name>Controller.*" files)
and from --register flags. Every module's default controller is added.

Quick Start:
  waypoint resolve /es/usuarios/listar/2     Show the target of a path
  waypoint url -c users -a list --lang es     Build a localized URL
  waypoint modules                            List modules and controllers
  waypoint serve --addr :8080                 Serve a dry-run dispatcher`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "config.yaml", "Routing configuration file")
	flags.StringVar(&opts.envPrefix, "env-prefix", "WAYPOINT", "Prefix of environment overrides, empty to disable")
	flags.StringVar(&opts.controllersDir, "controllers", "", "Controllers directory (defaults to core.controllers.dir)")
	flags.StringArrayVar(&opts.register, "register", nil, `Register a controller, e.g. "admin/Users=index,edit"`)
	flags.BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(
		newResolveCmd(opts),
		newURLCmd(opts),
		newModulesCmd(opts),
		newServeCmd(opts),
	)
	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed).Sprint("Error:"), err)
		os.Exit(1)
	}
}

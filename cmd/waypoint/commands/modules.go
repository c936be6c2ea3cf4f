package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newModulesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "modules",
		Short: "List modules and their controllers",
		Long: `List every module of the controller tree with its controllers.
The module's default controller is marked with "*".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			ws, err := opts.load()
			if err != nil {
				return opts.fail(out, err)
			}

			modules := make([]ModuleOutput, 0, len(ws.tree.Modules())+1)
			for _, m := range append([]string{""}, ws.tree.Modules()...) {
				modules = append(modules, ModuleOutput{
					Module:      m,
					Default:     ws.policy.Defaults.For(m),
					Controllers: ws.tree.Controllers(m),
				})
			}

			if opts.jsonOutput {
				return printSuccess(out, modules)
			}
			printModules(out, modules)
			return nil
		},
	}
}

func printModules(w io.Writer, modules []ModuleOutput) {
	name := color.New(color.FgCyan, color.Bold).SprintFunc()
	def := color.New(color.FgGreen).SprintFunc()

	width := 1
	for _, m := range modules {
		width = max(width, len(m.Module))
	}

	for _, m := range modules {
		module := m.Module
		if module == "" {
			module = "/"
		}
		controllers := make([]string, 0, len(m.Controllers))
		for _, c := range m.Controllers {
			if c == m.Default {
				c = def(c + "*")
			}
			controllers = append(controllers, c)
		}
		fmt.Fprintf(w, "%s  %s\n", name(fmt.Sprintf("%-*s", width, module)), strings.Join(controllers, " "))
	}
}

package commands

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/waypoint"
)

func newResolveCmd(opts *options) *cobra.Command {
	var in waypoint.Input

	cmd := &cobra.Command{
		Use:   "resolve <path>",
		Short: "Show the module, controller and action a path resolves to",
		Long: `Run the routing pipeline for a request path without invoking any action.

Examples:
  waypoint resolve /users/list/2/sort:name
  waypoint resolve /usuarios --country MX
  waypoint resolve /reports --host admin.example.com`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			ws, err := opts.load()
			if err != nil {
				return opts.fail(out, err)
			}

			in.Path = args[0]
			if in.Scheme == "" {
				in.Scheme = ws.policy.Scheme
			}
			target, err := ws.dispatcher.Resolve(in)
			if err != nil {
				return opts.fail(out, err)
			}

			result := newTargetOutput(target)
			if opts.jsonOutput {
				return printSuccess(out, result)
			}
			printTarget(out, result)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&in.Host, "host", "", "Request host")
	flags.StringVar(&in.Scheme, "scheme", "", "Request scheme (defaults to core.scheme)")
	flags.StringVar(&in.Country, "country", "", "Client country code")
	flags.StringVar(&in.AcceptLanguage, "accept-language", "", "Accept-Language header")
	return cmd
}

func printTarget(w io.Writer, t TargetOutput) {
	label := color.New(color.Faint).SprintFunc()
	value := color.New(color.FgCyan).SprintFunc()
	warn := color.New(color.FgYellow).SprintFunc()

	if t.Redirect != "" {
		fmt.Fprintf(w, "%s %s\n", warn("redirect"), value(t.Redirect))
		return
	}

	row := func(name, v string) {
		fmt.Fprintf(w, "%-12s %s\n", label(name), value(v))
	}
	row("route", t.Route)
	if t.Language != "" {
		lang := t.Language
		if t.Requested != "" && t.Requested != t.Language {
			lang += " (requested " + t.Requested + ")"
		}
		row("language", lang)
	}
	if t.Locale != "" {
		row("locale", t.Locale)
	}
	module := t.Module
	if module == "" {
		module = "/"
	}
	row("module", module)

	controller := t.Controller
	if t.ControllerError {
		controller += " " + warn("(controller error)")
	}
	row("controller", controller)

	action := t.Action
	if t.ActionError {
		action += " " + warn("(action error)")
	}
	row("action", action)

	if len(t.Args) > 0 {
		row("args", strings.Join(t.Args, ", "))
	}
	if len(t.Named) > 0 {
		pairs := make([]string, 0, len(t.Named))
		for k, v := range t.Named {
			pairs = append(pairs, k+"="+v)
		}
		slices.Sort(pairs)
		row("named", strings.Join(pairs, ", "))
	}
}

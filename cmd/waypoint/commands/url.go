package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/waypoint"
	"github.com/dmitrymomot/waypoint/pkg/config"
)

func newURLCmd(opts *options) *cobra.Command {
	var (
		in     waypoint.BuildInput
		params []string
		query  []string
		route  string
	)

	cmd := &cobra.Command{
		Use:   "url",
		Short: "Build a localized URL",
		Long: `Build the URL of a module, controller and action in a language.

A --param without "=" is positional; key=value params become "key:value"
segments. --route translates an existing "/controller/action" path instead.

Examples:
  waypoint url -c users -a show -p 5 --lang es
  waypoint url -m admin -c reports -a sales -p year=2024 -q page=2
  waypoint url --route /users/list --lang es`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			ws, err := opts.load()
			if err != nil {
				return opts.fail(out, err)
			}

			var u string
			if route != "" {
				u = ws.dispatcher.URLs().Translate(route, in.Language)
			} else {
				if in.Params, err = parsePairs(params, true); err != nil {
					return opts.fail(out, err)
				}
				q, err := parsePairs(query, false)
				if err != nil {
					return opts.fail(out, err)
				}
				if q.Len() > 0 {
					in.Query = q
				}
				u = ws.dispatcher.URLs().Build(in)
			}

			if opts.jsonOutput {
				return printSuccess(out, URLOutput{URL: u})
			}
			fmt.Fprintln(out, u)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&in.Module, "module", "m", "", "Module path, e.g. admin/reports")
	flags.StringVarP(&in.Controller, "controller", "c", "", "Controller name")
	flags.StringVarP(&in.Action, "action", "a", "", "Action name")
	flags.StringVarP(&in.Language, "lang", "l", "", "Language (defaults to app.language)")
	flags.StringArrayVarP(&params, "param", "p", nil, "Path parameter, value or key=value (repeatable)")
	flags.StringArrayVarP(&query, "query", "q", nil, "Query parameter key=value (repeatable)")
	flags.StringVar(&route, "route", "", "Translate a canonical route instead of building one")
	return cmd
}

// parsePairs turns "key=value" flags into an ordered map. With positional
// set, bare values get integer keys counting from 0.
func parsePairs(pairs []string, positional bool) (*config.OrderedMap, error) {
	m := config.NewOrderedMap()
	next := 0
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		switch {
		case ok && k != "":
			m.Set(k, v)
		case positional && !ok:
			m.Set(strconv.Itoa(next), p)
			next++
		default:
			return nil, fmt.Errorf("invalid parameter %q: expected key=value", p)
		}
	}
	return m, nil
}

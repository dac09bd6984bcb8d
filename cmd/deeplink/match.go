package main

import (
	"errors"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/deeplink"
	"github.com/dmitrymomot/deeplink/core/matcher"
	"github.com/dmitrymomot/deeplink/pkg/routefile"
)

var errNoMatch = errors.New("no route matched")

type matchOutput struct {
	Matched    bool           `json:"matched"`
	Name       string         `json:"name,omitempty"`
	Expression string         `json:"expression,omitempty"`
	Params     matcher.Params `json:"params,omitempty"`
	Global     matcher.Params `json:"global,omitempty"`
}

func matchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match <url>",
		Short: "Resolve a URL against the route table",
		Long: `Resolve a URL against the route table and print the result as JSON.

Exits with an error when no route matches.

Examples:
  deeplink match -r routes.yaml 'https://example.com/newsfeed/111?source_id=5'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := a.loadTable(cmd.Context())
			if err != nil {
				return err
			}
			router, err := buildRouter(table, a.cfg.GlobalParams,
				deeplink.WithLogger[routefile.Named, matcher.Params](a.log),
			)
			if err != nil {
				return err
			}

			res, ok := router.MatchString(args[0])
			out := matchOutput{Matched: ok}
			if ok {
				out = matchOutput{
					Matched:    true,
					Name:       res.Route.Name,
					Expression: res.Expression,
					Params:     res.Params,
					Global:     res.Global,
				}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				return err
			}
			if !ok {
				return errNoMatch
			}
			return nil
		},
	}

	return cmd
}

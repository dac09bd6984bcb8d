package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func routesCmd(a *app) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List routes in priority order",
		Long: `List the routes of a table in the order they are tried.

With --check every expression is compiled, with the table's global params
plus DEEPLINK_GLOBAL_PARAMS, and the first error is reported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := a.loadTable(cmd.Context())
			if err != nil {
				return err
			}
			if check {
				if _, err := buildRouter(table, a.cfg.GlobalParams); err != nil {
					return err
				}
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "#\tNAME\tEXPRESSION")
			for i, r := range table.Routes {
				name := r.Name
				if name == "" {
					name = "-"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\n", i, name, r.Expression)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Compile every expression")

	return cmd
}

package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/deeplink/core/expr"
	"github.com/dmitrymomot/deeplink/core/paramtype"
)

type compiledParam struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Value string `json:"value,omitempty"`
}

type compiledExpression struct {
	Expression string          `json:"expression"`
	PathRegex  string          `json:"path_regex"`
	Params     []compiledParam `json:"params"`
}

func compileCmd(a *app) *cobra.Command {
	var (
		asJSON  bool
		globals []string
	)

	cmd := &cobra.Command{
		Use:   "compile <expression>",
		Short: "Compile an expression and print its path regex and params",
		Long: `Compile a route expression and print the regular expression used for
the path and every parameter it declares.

Custom types are taken from the route table when --routes is set.

Examples:
  deeplink compile '/newsfeed/:postId{int}/comment/:commentId'
  deeplink compile --json '/newsfeed/?:postIds{[int]}&:source{'"'"'deeplink'"'"'}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := slices.Concat(a.cfg.GlobalParams, globals)
			reg := paramtype.MustNew()
			if a.routes != "" {
				table, err := a.loadTable(cmd.Context())
				if err != nil {
					return err
				}
				if reg, err = table.Registry(); err != nil {
					return err
				}
				names = slices.Concat(table.GlobalParams, extraNames(table.GlobalParams, names))
			}

			compiler, err := expr.NewCompiler(reg, names...)
			if err != nil {
				return err
			}
			p, err := compiler.Compile(args[0])
			if err != nil {
				return err
			}

			out := describe(p)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			printCompiled(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	cmd.Flags().StringSliceVarP(&globals, "global", "g", nil, "Global query param names")

	return cmd
}

func describe(p *expr.Pattern) compiledExpression {
	out := compiledExpression{Expression: p.Expression(), PathRegex: p.PathRegex()}
	for _, pp := range p.PathParams() {
		out.Params = append(out.Params, compiledParam{Name: pp.Name, Kind: "path"})
	}
	for _, g := range p.GlobalParams() {
		out.Params = append(out.Params, compiledParam{Name: g.Name, Kind: "global"})
	}
	for _, qp := range p.QueryParams() {
		switch q := qp.(type) {
		case expr.Required:
			out.Params = append(out.Params, compiledParam{Name: q.Name, Kind: "required"})
		case expr.Optional:
			out.Params = append(out.Params, compiledParam{Name: q.Name, Kind: "optional"})
		case expr.Literal:
			out.Params = append(out.Params, compiledParam{Name: q.Name, Kind: "literal", Value: q.Value})
		}
	}
	return out
}

func printCompiled(w io.Writer, c compiledExpression) {
	fmt.Fprintf(w, "expression: %s\n", c.Expression)
	fmt.Fprintf(w, "path regex: %s\n", c.PathRegex)
	for _, p := range c.Params {
		if p.Value != "" {
			fmt.Fprintf(w, "  %-8s %s = %q\n", p.Kind, p.Name, p.Value)
			continue
		}
		fmt.Fprintf(w, "  %-8s %s\n", p.Kind, p.Name)
	}
}

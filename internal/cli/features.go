package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/aplet/pkg/io"
	"github.com/matzehuels/aplet/pkg/product"
)

// optionalCommand creates the "optional" command.
func (c *CLI) optionalCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "optional",
		Short: "List the optional features of the feature model",
		Long: `List the features a product may include or leave out: concrete features that
are not mandatory, in feature model order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.newRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer r.Cache.Close()

			names, err := r.Optional(cmd.Context())
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}

// togglesCommand creates the "toggles" command.
func (c *CLI) togglesCommand() *cobra.Command {
	var runner bool

	cmd := &cobra.Command{
		Use:   "toggles <product>",
		Short: "Print the test runner toggles of a product",
		Long: `Print the feature toggles for a product's test run: the features its
configuration selects, the root feature, and a negated toggle for every
optional feature it leaves out.

With --runner the complete test runner command line is printed instead.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeProducts,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.newRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer r.Cache.Close()

			toggles, err := r.Toggles(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if runner {
				fmt.Fprintln(cmd.OutOrStdout(), shellJoin(r.Config.RunnerCommand(toggles)))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(toggles, "\n"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&runner, "runner", false, "print the full test runner command line")

	return cmd
}

// trimCommand creates the "trim" command.
func (c *CLI) trimCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "trim <product>",
		Short: "Export a product's trimmed feature tree as JSON",
		Long: `Export the feature tree reduced to what a product selects. Abstract features
stay when they still group a selected feature.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeProducts,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.newRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer r.Cache.Close()

			name := args[0]
			t, err := r.Trim(cmd.Context(), name)
			if err != nil {
				return err
			}
			if output == "" {
				return pkgio.WriteJSON(t, name, cmd.OutOrStdout())
			}
			if err := pkgio.ExportJSON(t, name, output); err != nil {
				return err
			}
			p := newPrinter(cmd)
			p.success("Trimmed %s to %d features", name, t.Count())
			p.file(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write JSON to file instead of stdout")

	return cmd
}

// completeProducts completes product names from the configs directory.
func (c *CLI) completeProducts(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names, err := product.Discover(cfg.ConfigsDir())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, n := range names {
		if strings.HasPrefix(n, toComplete) {
			out = append(out, n)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

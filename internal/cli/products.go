package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/matzehuels/aplet/pkg/pipeline"
)

// productsCommand creates the "products" command.
func (c *CLI) productsCommand() *cobra.Command {
	var showToggles bool

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products with their selection size and report status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.newRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer r.Cache.Close()

			summaries, err := r.Summaries(cmd.Context())
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				p := newPrinter(cmd)
				p.warning("No product configurations in %s", r.Config.ConfigsDir())
				p.nextStep("Create one", "aplet init")
				return nil
			}
			writeProducts(cmd.OutOrStdout(), summaries, showToggles)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showToggles, "toggles", "t", false, "include each product's toggles")

	return cmd
}

// matrixCommand creates the "matrix" command.
func (c *CLI) matrixCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "matrix",
		Short: "Show which products include which features",
		Long: `Show a feature by product table. A mark means the product's configuration
selects the feature; the root feature is always selected. Abstract features
only group other features and are never marked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.newRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer r.Cache.Close()

			m, err := r.Matrix(cmd.Context())
			if err != nil {
				return err
			}
			writeMatrix(cmd.OutOrStdout(), m)
			return nil
		},
	}
}

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	return table
}

func writeProducts(w io.Writer, summaries []pipeline.ProductSummary, showToggles bool) {
	table := newTable(w)
	header := []string{"PRODUCT", "SELECTED", "REPORT"}
	if showToggles {
		header = append(header, "TOGGLES")
	}
	table.SetHeader(header)

	for _, s := range summaries {
		row := []string{s.Name, fmt.Sprint(s.Selected), s.State.Resolved().String()}
		if showToggles {
			row = append(row, strings.Join(s.Toggles, " "))
		}
		table.Append(row)
	}
	table.Render()
}

func writeMatrix(w io.Writer, m *pipeline.Matrix) {
	table := newTable(w)
	table.SetHeader(append([]string{"FEATURE"}, m.Products...))

	for _, row := range m.Rows {
		name := strings.Repeat("  ", row.Depth) + row.Feature
		if row.Abstract {
			name += " *"
		}
		cells := []string{name}
		for _, in := range row.Included {
			mark := ""
			if in {
				mark = "x"
			}
			cells = append(cells, mark)
		}
		table.Append(cells)
	}
	table.Render()
}

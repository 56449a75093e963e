package cli

import (
	"github.com/spf13/cobra"
)

// configCommand creates the "config" command, which prints the effective
// configuration after defaults and environment overrides.
func (c *CLI) configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective project configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			data, err := cfg.YAML()
			if err != nil {
				return err
			}

			p := newPrinter(cmd)
			source := cfg.File
			if source == "" {
				source = "(defaults)"
			}
			p.keyValue("file", source)
			p.keyValue("base dir", cfg.Dir)
			p.newline()
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

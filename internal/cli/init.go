package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/aplet/pkg/config"
)

// initCommand creates the "init" command, which scaffolds a starter project.
func (c *CLI) initCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a starter product line project",
		Long: `Create a starter product line project: an ` + config.FileName + ` file, a small
feature model, one product configuration, a scenario map and an empty
reports directory. Existing files are kept unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			written, err := config.Scaffold(dir, force)
			if err != nil {
				return err
			}

			p := newPrinter(cmd)
			if len(written) == 0 {
				p.info("Project already initialized in %s", dir)
				p.detail("Use --force to overwrite the starter files")
				return nil
			}
			p.success("Initialized product line in %s", dir)
			for _, f := range written {
				p.file(filepath.Join(dir, filepath.FromSlash(f)))
			}
			p.newline()
			p.nextStep("Show the line's status", "aplet status --all -c "+dir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing starter files")

	return cmd
}

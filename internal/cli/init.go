package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CrateStack/internal/manifest"
)

func (c *CLI) initCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write a starter TOML manifest",
		Long: `Write an example pack manifest to the given file (default job.toml).
The example describes the chest-freezer battery load; edit the bins, items
and settings sections to describe your own job, then run it with
"cratestack pack --manifest <file>".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "job.toml"
			if len(args) == 1 {
				path = args[0]
			}
			return c.runInit(path)
		},
	}
	return cmd
}

func (c *CLI) runInit(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists, not overwriting", path)
	}
	if err := manifest.Save(path, manifest.Example()); err != nil {
		return fmt.Errorf("could not write manifest: %w", err)
	}
	c.Logger.Info("wrote starter manifest", "path", path)
	fmt.Println(styleSuccess.Render(fmt.Sprintf("Created %s - edit it and run: cratestack pack --manifest %s", path, path)))
	return nil
}

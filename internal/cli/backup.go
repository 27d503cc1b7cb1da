package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CrateStack/internal/project"
)

func (c *CLI) backupCommand() *cobra.Command {
	var restore bool

	cmd := &cobra.Command{
		Use:   "backup <file>",
		Short: "Export or restore the app config and inventory",
		Long: `Export the application configuration and the preset inventory to a
single JSON file, or restore both from one with --restore. Restoring
overwrites the current ~/.cratestack config and inventory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if restore {
				return c.runRestore(args[0])
			}
			return c.runBackup(args[0])
		},
	}

	cmd.Flags().BoolVar(&restore, "restore", false, "restore config and inventory from the file")
	return cmd
}

func (c *CLI) runBackup(path string) error {
	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("could not load app config: %w", err)
	}
	inv, invPath, err := project.LoadOrCreateInventory()
	if err != nil {
		return fmt.Errorf("could not load inventory: %w", err)
	}
	c.Logger.Debug("collected data for backup", "inventory", invPath,
		"bins", len(inv.Bins), "items", len(inv.Items))

	if err := project.ExportAllData(path, config, inv); err != nil {
		return err
	}
	c.Logger.Info("wrote backup", "path", path)
	fmt.Println(styleSuccess.Render(fmt.Sprintf("Backed up config and inventory to %s", path)))
	return nil
}

func (c *CLI) runRestore(path string) error {
	backup, err := project.ImportAllData(path)
	if err != nil {
		return err
	}

	if err := project.SaveAppConfig(project.DefaultConfigPath(), backup.Config); err != nil {
		return fmt.Errorf("could not restore app config: %w", err)
	}
	invPath, err := project.DefaultInventoryPath()
	if err != nil {
		return fmt.Errorf("could not resolve inventory path: %w", err)
	}
	if err := project.SaveInventory(invPath, backup.Inventory); err != nil {
		return fmt.Errorf("could not restore inventory: %w", err)
	}

	c.Logger.Info("restored backup", "path", path, "version", backup.Version, "created_at", backup.CreatedAt)
	fmt.Println(styleSuccess.Render(fmt.Sprintf("Restored config and inventory from %s", path)))
	return nil
}

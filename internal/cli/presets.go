package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CrateStack/internal/project"
)

func (c *CLI) presetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List saved bin and item presets",
		Long: `List the bin and item presets from the inventory file
(~/.cratestack/inventory.json). The file is created with common defaults on
first use; edit it to add your own containers and goods.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPresets()
		},
	}
	return cmd
}

func (c *CLI) runPresets() error {
	inv, path, err := project.LoadOrCreateInventory()
	if err != nil {
		return fmt.Errorf("could not load inventory: %w", err)
	}
	c.Logger.Debug("loaded inventory", "path", path,
		"bins", len(inv.Bins), "items", len(inv.Items))

	var b strings.Builder

	b.WriteString(styleTitle.Render("Bin presets"))
	b.WriteString("\n")
	for _, bp := range inv.Bins {
		b.WriteString(styleLabel.Render(fmt.Sprintf("  %-10s", bp.ID)))
		line := fmt.Sprintf("%s  %gx%gx%g cm, max %g kg", bp.Name, bp.Width, bp.Height, bp.Depth, bp.MaxWeight)
		if bp.Price > 0 {
			line += fmt.Sprintf(", %.2f each", bp.Price)
		}
		b.WriteString(styleValue.Render(line))
		b.WriteString("\n")
	}

	b.WriteString(styleTitle.Render("Item presets"))
	b.WriteString("\n")
	for _, ip := range inv.Items {
		b.WriteString(styleLabel.Render(fmt.Sprintf("  %-10s", ip.ID)))
		b.WriteString(styleValue.Render(fmt.Sprintf("%s  %gx%gx%g cm, %g kg",
			ip.Name, ip.Width, ip.Height, ip.Depth, ip.Weight)))
		b.WriteString("\n")
	}

	fmt.Print(b.String())
	return nil
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CrateStack/internal/model"
	"github.com/piwi3910/CrateStack/internal/project"
)

func (c *CLI) openCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open [project-file]",
		Short: "Show a saved project, or list recent ones",
		Long: `Open a saved .crate project file and show its items, bins, settings and
the stored pack result. Without an argument, list the recently saved
projects instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return c.runRecent()
			}
			return c.runOpen(args[0])
		},
	}
	return cmd
}

func (c *CLI) runRecent() error {
	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("could not load app config: %w", err)
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render("Recent projects"))
	b.WriteString("\n")
	if len(config.RecentProjects) == 0 {
		b.WriteString(styleLabel.Render("  none yet - save one with: cratestack pack --save <file>"))
		b.WriteString("\n")
	}
	for i, p := range config.RecentProjects {
		b.WriteString(styleLabel.Render(fmt.Sprintf("  %2d ", i+1)))
		b.WriteString(styleValue.Render(p))
		b.WriteString("\n")
	}
	fmt.Print(b.String())
	return nil
}

func (c *CLI) runOpen(path string) error {
	proj, err := project.LoadProject(path)
	if err != nil {
		return err
	}
	c.Logger.Info("opened project", "path", path, "name", proj.Name)

	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err == nil {
		project.AddRecentProject(&config, path)
		if err := project.SaveAppConfig(project.DefaultConfigPath(), config); err != nil {
			c.Logger.Warn("could not update recent projects", "err", err)
		}
	}

	fmt.Print(renderProject(proj))
	if proj.Result != nil {
		fmt.Println(renderSummary(*proj.Result))
	}
	return nil
}

// renderProject builds the styled block describing a loaded project.
func renderProject(proj model.Project) string {
	var b strings.Builder

	b.WriteString(styleTitle.Render(fmt.Sprintf("Project: %s", proj.Name)))
	b.WriteString("\n")

	b.WriteString(styleLabel.Render(fmt.Sprintf("  %-18s", "Settings:")))
	b.WriteString(styleValue.Render(fmt.Sprintf("%s, %s order, %s plan profile",
		proj.Settings.Algorithm, proj.Settings.ItemSort, proj.Settings.PlanProfile)))
	b.WriteString("\n")

	for _, bin := range proj.Bins {
		b.WriteString(styleLabel.Render(fmt.Sprintf("  %-18s", "Bin:")))
		b.WriteString(styleValue.Render(fmt.Sprintf("%s  %s cm, max %g kg, qty %d",
			bin.Name, bin.Dim.String(), bin.MaxWeight, bin.Quantity)))
		b.WriteString("\n")
	}
	for _, it := range proj.Items {
		b.WriteString(styleLabel.Render(fmt.Sprintf("  %-18s", "Item:")))
		b.WriteString(styleValue.Render(fmt.Sprintf("%s  %s cm, %g kg, qty %d",
			it.Name, it.Dim.String(), it.Weight, it.Quantity)))
		b.WriteString("\n")
	}

	return b.String()
}

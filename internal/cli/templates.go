package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CrateStack/internal/model"
	"github.com/piwi3910/CrateStack/internal/project"
)

type templatesOpts struct {
	saveFrom    string
	name        string
	description string
	use         string
	out         string
}

func (c *CLI) templatesCommand() *cobra.Command {
	opts := templatesOpts{}

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List, save and instantiate project templates",
		Long: `Templates capture a project's items, bins and settings (but not results)
for reuse. Without flags the stored templates are listed. --save turns a
saved project file into a template; --use instantiates a template into a
fresh project file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case opts.saveFrom != "":
				return c.runTemplateSave(&opts)
			case opts.use != "":
				return c.runTemplateUse(&opts)
			default:
				return c.runTemplateList()
			}
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.saveFrom, "save", "", "project file to turn into a template")
	f.StringVar(&opts.name, "name", "", "template name (defaults to the project name)")
	f.StringVar(&opts.description, "description", "", "template description")
	f.StringVar(&opts.use, "use", "", "template name to instantiate")
	f.StringVar(&opts.out, "out", "", "project file to write when using a template")
	cmd.MarkFlagsMutuallyExclusive("save", "use")
	cmd.MarkFlagsRequiredTogether("use", "out")

	return cmd
}

func (c *CLI) runTemplateList() error {
	store, err := project.LoadDefaultTemplates()
	if err != nil {
		return fmt.Errorf("could not load templates: %w", err)
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render("Templates"))
	b.WriteString("\n")
	if len(store.Templates) == 0 {
		b.WriteString(styleLabel.Render("  none yet - create one with: cratestack templates --save <project-file>"))
		b.WriteString("\n")
	}
	for _, t := range store.Templates {
		b.WriteString(styleLabel.Render(fmt.Sprintf("  %-20s", t.Name)))
		line := fmt.Sprintf("%d item type(s), %d bin type(s)", len(t.Items), len(t.Bins))
		if t.Description != "" {
			line += " - " + t.Description
		}
		b.WriteString(styleValue.Render(line))
		b.WriteString("\n")
	}
	fmt.Print(b.String())
	return nil
}

func (c *CLI) runTemplateSave(opts *templatesOpts) error {
	proj, err := project.LoadProject(opts.saveFrom)
	if err != nil {
		return err
	}

	name := opts.name
	if name == "" {
		name = proj.Name
	}

	store, err := project.LoadDefaultTemplates()
	if err != nil {
		return fmt.Errorf("could not load templates: %w", err)
	}
	if store.FindByName(name) != nil {
		return fmt.Errorf("template %q already exists", name)
	}

	tmpl := model.NewProjectTemplate(name, opts.description, proj.Items, proj.Bins, proj.Settings)
	store.Add(tmpl)
	if err := project.SaveDefaultTemplates(store); err != nil {
		return fmt.Errorf("could not save templates: %w", err)
	}

	c.Logger.Info("saved template", "name", name, "id", tmpl.ID)
	fmt.Println(styleSuccess.Render(fmt.Sprintf("Saved template %q from %s", name, opts.saveFrom)))
	return nil
}

func (c *CLI) runTemplateUse(opts *templatesOpts) error {
	store, err := project.LoadDefaultTemplates()
	if err != nil {
		return fmt.Errorf("could not load templates: %w", err)
	}

	tmpl := store.FindByName(opts.use)
	if tmpl == nil {
		return fmt.Errorf("no template named %q (have: %s)", opts.use, strings.Join(store.Names(), ", "))
	}

	proj, err := tmpl.ToProject(opts.use)
	if err != nil {
		return fmt.Errorf("could not instantiate template: %w", err)
	}
	if err := project.SaveProject(opts.out, proj); err != nil {
		return err
	}

	c.Logger.Info("instantiated template", "name", opts.use, "path", opts.out)
	fmt.Println(styleSuccess.Render(fmt.Sprintf("Created %s from template %q", opts.out, opts.use)))
	return nil
}

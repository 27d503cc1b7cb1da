package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CrateStack/internal/engine"
	"github.com/piwi3910/CrateStack/internal/export"
	"github.com/piwi3910/CrateStack/internal/importer"
	"github.com/piwi3910/CrateStack/internal/loadplan"
	"github.com/piwi3910/CrateStack/internal/manifest"
	"github.com/piwi3910/CrateStack/internal/model"
	"github.com/piwi3910/CrateStack/internal/project"
)

// packOpts holds the command-line flags for the pack command. The bin and
// item defaults describe the chest-freezer battery load this tool started
// life planning.
type packOpts struct {
	binName      string
	binWidth     float64
	binHeight    float64
	binDepth     float64
	binMaxWeight float64
	binCount     int

	numItems   int
	itemPrefix string
	itemWidth  float64
	itemHeight float64
	itemDepth  float64
	itemWeight float64

	itemsFile    string // CSV or XLSX item list
	manifestFile string // TOML pack job

	algorithm string
	sortMode  string
	profile   string

	pdfPath      string
	svgPath      string
	dxfPath      string
	labelsPath   string
	planPath     string
	jsonPath     string
	savePath     string
	manifestSave string
}

func (c *CLI) packCommand() *cobra.Command {
	opts := packOpts{}

	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Pack items into bins and report the layout",
		Long: `Pack cuboid items into one or more bins and report which items fit
where. Items come from flags (a uniform batch), a CSV/XLSX list, or a TOML
manifest; results can be exported as PDF, SVG, DXF, QR labels, a load plan
or JSON.

Examples:
  cratestack pack                                # default freezer scenario
  cratestack pack --items goods.csv --pdf out.pdf
  cratestack pack --manifest job.toml --svg load.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPack(&opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.binName, "bin-name", "Tiefkühler", "name of the bin")
	f.Float64Var(&opts.binWidth, "bin-width", 155, "bin width in cm")
	f.Float64Var(&opts.binHeight, "bin-height", 53.5, "bin height in cm")
	f.Float64Var(&opts.binDepth, "bin-depth", 58.5, "bin depth in cm")
	f.Float64Var(&opts.binMaxWeight, "bin-max-weight", 600, "bin weight capacity in kg")
	f.IntVar(&opts.binCount, "bin-count", 1, "number of identical bins available")

	f.IntVar(&opts.numItems, "num-items", 100, "number of identical items to pack")
	f.StringVar(&opts.itemPrefix, "item-name-prefix", "Akku", "name prefix for generated items")
	f.Float64Var(&opts.itemWidth, "item-width", 48, "item width in cm")
	f.Float64Var(&opts.itemHeight, "item-height", 28, "item height in cm")
	f.Float64Var(&opts.itemDepth, "item-depth", 3.5, "item depth in cm")
	f.Float64Var(&opts.itemWeight, "item-weight", 0.1, "item weight in kg")

	f.StringVar(&opts.itemsFile, "items", "", "CSV or XLSX file with the item list (overrides item flags)")
	f.StringVar(&opts.manifestFile, "manifest", "", "TOML manifest with bins, items and settings (overrides all input flags)")

	f.StringVar(&opts.algorithm, "algorithm", "", "packing algorithm: firstfit or genetic")
	f.StringVar(&opts.sortMode, "sort", "", "item ordering: input, volume-desc or weight-desc")
	f.StringVar(&opts.profile, "plan-profile", "", "load plan profile name")

	f.StringVar(&opts.pdfPath, "pdf", "", "write a PDF report to this path")
	f.StringVar(&opts.svgPath, "svg", "", "write an isometric SVG to this path")
	f.StringVar(&opts.dxfPath, "dxf", "", "write a 3D wireframe DXF to this path")
	f.StringVar(&opts.labelsPath, "labels", "", "write a QR label sheet PDF to this path")
	f.StringVar(&opts.planPath, "plan", "", "write the load plan text to this path")
	f.StringVar(&opts.jsonPath, "json", "", "write the raw pack result JSON to this path")
	f.StringVar(&opts.savePath, "save", "", "save the run as a project file")
	f.StringVar(&opts.manifestSave, "save-manifest", "", "write the resolved job back out as a TOML manifest")

	return cmd
}

func (c *CLI) runPack(opts *packOpts) error {
	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		c.Logger.Warn("could not load app config, using defaults", "err", err)
		config = model.DefaultAppConfig()
	}

	c.loadCustomProfiles()

	settings := model.DefaultSettings()
	config.ApplyToSettings(&settings)

	name, items, bins, err := c.buildJob(opts, &settings)
	if err != nil {
		return err
	}
	applySettingOverrides(&settings, opts)

	c.Logger.Info("created bins", "count", len(bins), "first", bins[0].Name, "dim", bins[0].Dim.String())
	c.Logger.Info("created items", "types", len(items), "copies", countCopies(items))

	result := engine.New(settings).Pack(items, bins)

	c.logResults(result)

	if violations := loadplan.AuditResult(result); len(violations) > 0 {
		for _, line := range loadplan.FormatViolations(violations) {
			c.Logger.Error(line)
		}
		return fmt.Errorf("pack result failed audit with %d violation(s)", len(violations))
	}

	if err := c.writeOutputs(opts, name, items, bins, settings, result); err != nil {
		return err
	}

	for _, pb := range model.CalculatePerBinDunnage(result) {
		c.Logger.Debug("void fill",
			"bin", pb.BinName,
			"liters", fmt.Sprintf("%.1f", pb.VoidLiters),
			"fill_pct", fmt.Sprintf("%.1f", pb.Efficiency))
	}

	fmt.Println(renderSummary(result))
	return nil
}

// loadCustomProfiles pulls user-defined plan profiles from
// ~/.cratestack/profiles.json into the profile registry so
// --plan-profile can name them.
func (c *CLI) loadCustomProfiles() {
	profiles, err := project.LoadCustomProfilesFromDefault()
	if err != nil {
		c.Logger.Warn("could not load custom plan profiles", "err", err)
		return
	}
	model.CustomProfiles = profiles
	if len(profiles) > 0 {
		c.Logger.Debug("loaded custom plan profiles", "count", len(profiles))
	}
}

// buildJob resolves the pack inputs in precedence order: manifest, then item
// file plus bin flags, then pure flags. It returns the job name with the
// ordered item and bin lists.
func (c *CLI) buildJob(opts *packOpts, settings *model.PackSettings) (string, []model.Item, []model.Bin, error) {
	if opts.manifestFile != "" {
		m, err := manifest.Load(opts.manifestFile)
		if err != nil {
			return "", nil, nil, err
		}
		job, err := m.Build()
		if err != nil {
			return "", nil, nil, err
		}
		*settings = job.Settings
		c.Logger.Debug("loaded manifest", "path", opts.manifestFile, "name", job.Name)
		return job.Name, job.Items, job.Bins, nil
	}

	bin, err := model.NewBin(opts.binName, opts.binWidth, opts.binHeight, opts.binDepth, opts.binMaxWeight, opts.binCount)
	if err != nil {
		return "", nil, nil, err
	}

	if opts.itemsFile != "" {
		res := importer.ImportFile(opts.itemsFile)
		for _, w := range res.Warnings {
			c.Logger.Warn(w)
		}
		if len(res.Errors) > 0 {
			return "", nil, nil, fmt.Errorf("import of %q failed: %s", opts.itemsFile, strings.Join(res.Errors, "; "))
		}
		if len(res.Items) == 0 {
			return "", nil, nil, fmt.Errorf("no items found in %q", opts.itemsFile)
		}
		return opts.itemsFile, res.Items, []model.Bin{bin}, nil
	}

	items := make([]model.Item, 0, opts.numItems)
	for i := 1; i <= opts.numItems; i++ {
		item, err := model.NewItem(fmt.Sprintf("%s%d", opts.itemPrefix, i),
			opts.itemWidth, opts.itemHeight, opts.itemDepth, opts.itemWeight, 1)
		if err != nil {
			return "", nil, nil, err
		}
		items = append(items, item)
	}
	return opts.binName, items, []model.Bin{bin}, nil
}

// applySettingOverrides lets explicit flags win over config and manifest
// settings.
func applySettingOverrides(settings *model.PackSettings, opts *packOpts) {
	if opts.algorithm != "" {
		settings.Algorithm = model.Algorithm(opts.algorithm)
	}
	if opts.sortMode != "" {
		settings.ItemSort = model.SortMode(opts.sortMode)
	}
	if opts.profile != "" {
		settings.PlanProfile = opts.profile
	}
}

// logResults reports every bin's fitted items and the unfitted list, one
// line per item like the packer's earliest incarnation did.
func (c *CLI) logResults(result model.PackResult) {
	for _, br := range result.Bins {
		c.Logger.Info("bin packed",
			"bin", br.Bin.Name,
			"dim", br.Bin.Dim.String(),
			"items", len(br.Placements),
			"load_kg", fmt.Sprintf("%.1f/%.1f", br.TotalWeight(), br.Bin.MaxWeight),
			"fill_pct", fmt.Sprintf("%.1f", br.Efficiency()))
		for _, p := range br.Placements {
			c.Logger.Debug("fitted",
				"item", p.Item.Name,
				"pos", p.Position.String(),
				"dim", p.PlacedDim().String(),
				"rot", p.Rotation.String())
		}
	}
	for _, it := range result.Unfitted {
		c.Logger.Warn("unfitted", "item", it.Name, "dim", it.Dim.String(), "weight_kg", it.Weight)
	}
}

// writeOutputs produces every export the flags asked for.
func (c *CLI) writeOutputs(opts *packOpts, name string, items []model.Item, bins []model.Bin, settings model.PackSettings, result model.PackResult) error {
	if opts.pdfPath != "" {
		if err := export.ExportPDF(opts.pdfPath, result, settings); err != nil {
			return fmt.Errorf("pdf export: %w", err)
		}
		c.Logger.Info("wrote PDF report", "path", opts.pdfPath)
	}
	if opts.svgPath != "" {
		if err := export.ExportSVG(opts.svgPath, result); err != nil {
			return fmt.Errorf("svg export: %w", err)
		}
		c.Logger.Info("wrote SVG rendering", "path", opts.svgPath)
	}
	if opts.dxfPath != "" {
		if err := export.ExportDXF(opts.dxfPath, result); err != nil {
			return fmt.Errorf("dxf export: %w", err)
		}
		c.Logger.Info("wrote DXF wireframe", "path", opts.dxfPath)
	}
	if opts.labelsPath != "" {
		if err := export.ExportLabels(opts.labelsPath, result); err != nil {
			return fmt.Errorf("label export: %w", err)
		}
		c.Logger.Info("wrote QR labels", "path", opts.labelsPath)
	}
	if opts.planPath != "" {
		plan := loadplan.New(settings).Generate(result)
		if err := os.WriteFile(opts.planPath, []byte(plan), 0644); err != nil {
			return fmt.Errorf("plan export: %w", err)
		}
		c.Logger.Info("wrote load plan", "path", opts.planPath, "profile", settings.PlanProfile)
	}
	if opts.jsonPath != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("json export: %w", err)
		}
		if err := os.WriteFile(opts.jsonPath, data, 0644); err != nil {
			return fmt.Errorf("json export: %w", err)
		}
		c.Logger.Info("wrote result JSON", "path", opts.jsonPath)
	}
	if opts.savePath != "" {
		proj := model.Project{
			Name:     name,
			Items:    items,
			Bins:     bins,
			Settings: settings,
			Result:   &result,
		}
		if err := project.SaveProject(opts.savePath, proj); err != nil {
			return fmt.Errorf("project save: %w", err)
		}
		config, err := project.LoadAppConfig(project.DefaultConfigPath())
		if err == nil {
			project.AddRecentProject(&config, opts.savePath)
			if err := project.SaveAppConfig(project.DefaultConfigPath(), config); err != nil {
				c.Logger.Warn("could not update recent projects", "err", err)
			}
		}
		c.Logger.Info("saved project", "path", opts.savePath)
	}
	if opts.manifestSave != "" {
		m := manifest.New(name, items, bins, settings)
		if err := manifest.Save(opts.manifestSave, m); err != nil {
			return fmt.Errorf("manifest save: %w", err)
		}
		c.Logger.Info("saved manifest", "path", opts.manifestSave)
	}
	return nil
}

// renderSummary builds the styled terminal summary block.
func renderSummary(result model.PackResult) string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Pack Summary"))
	b.WriteString("\n")

	row := func(label, value string) {
		b.WriteString(styleLabel.Render(fmt.Sprintf("  %-18s", label)))
		b.WriteString(styleValue.Render(value))
		b.WriteString("\n")
	}

	row("Bins used:", fmt.Sprintf("%d", len(result.Bins)))
	row("Items placed:", fmt.Sprintf("%d", result.FittedCount()))
	row("Overall fill:", fmt.Sprintf("%.1f%%", result.TotalEfficiency()))
	if result.HasPricing() {
		row("Bin cost:", fmt.Sprintf("%.2f", result.TotalCost()))
	}

	for i, br := range result.Bins {
		row(fmt.Sprintf("Bin %d:", i+1),
			fmt.Sprintf("%s - %d items, %.1f%% full, %.1f/%.1f kg",
				br.Bin.Name, len(br.Placements), br.Efficiency(), br.TotalWeight(), br.Bin.MaxWeight))
	}

	if dun := model.CalculateDunnage(result, 10); dun.BinCount > 0 {
		row("Void fill:", fmt.Sprintf("%.1f L (%.1f L with %.0f%% extra)",
			dun.TotalVoidLiters, dun.TotalWithExtraL, dun.ExtraPercent))
	}
	if spaces := model.DetectAllFreeSpaces(result); len(spaces) > 0 {
		row("Free pockets:", fmt.Sprintf("%d usable, %.1f L total",
			len(spaces), model.TotalFreeVolume(spaces)/1000.0))
	}

	if len(result.Unfitted) == 0 {
		b.WriteString(styleSuccess.Render("  All items fitted."))
	} else {
		b.WriteString(styleWarning.Render(fmt.Sprintf("  %d item(s) did not fit:", len(result.Unfitted))))
		b.WriteString("\n")
		for _, it := range result.Unfitted {
			b.WriteString(styleError.Render(fmt.Sprintf("    - %s (%s, %.1f kg)", it.Name, it.Dim, it.Weight)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func countCopies(items []model.Item) int {
	total := 0
	for _, it := range items {
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		total += qty
	}
	return total
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CrateStack/internal/engine"
	"github.com/piwi3910/CrateStack/internal/manifest"
	"github.com/piwi3910/CrateStack/internal/model"
	"github.com/piwi3910/CrateStack/internal/project"
)

type compareOpts struct {
	manifestFile string
	headroom     float64
}

func (c *CLI) compareCommand() *cobra.Command {
	opts := compareOpts{}

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run what-if packing scenarios for a manifest",
		Long: `Pack the same job under several scenarios (current settings, the other
algorithm, largest-volume-first, heaviest-first) and show how bin count,
placement rate and wasted volume change. Also prints a purchase estimate for
the manifest's first bin type.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCompare(&opts)
		},
	}

	cmd.Flags().StringVar(&opts.manifestFile, "manifest", "", "TOML manifest with bins, items and settings (required)")
	cmd.Flags().Float64Var(&opts.headroom, "headroom", 10, "spare capacity percentage for the purchase estimate")
	_ = cmd.MarkFlagRequired("manifest")

	return cmd
}

func (c *CLI) runCompare(opts *compareOpts) error {
	m, err := manifest.Load(opts.manifestFile)
	if err != nil {
		return err
	}
	job, err := m.Build()
	if err != nil {
		return err
	}

	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err == nil {
		// Config defaults only fill what the manifest left empty; Build
		// already resolved those, so nothing to merge here beyond logging.
		c.Logger.Debug("app config loaded", "default_algorithm", config.DefaultAlgorithm)
	}

	scenarios := engine.BuildDefaultScenarios(job.Settings)
	results := engine.CompareScenarios(scenarios, job.Items, job.Bins)

	var b strings.Builder
	b.WriteString(styleTitle.Render(fmt.Sprintf("Scenario comparison: %s", job.Name)))
	b.WriteString("\n")
	b.WriteString(styleLabel.Render(fmt.Sprintf("  %-24s %6s %8s %8s %8s", "Scenario", "Bins", "Placed", "Unfit", "Waste")))
	b.WriteString("\n")
	for _, r := range results {
		line := fmt.Sprintf("  %-24s %6d %8d %8d %7.1f%%",
			r.Scenario.Name, r.BinsUsed, r.ItemsPlaced, r.UnfittedCount, r.WastePercent)
		if r.UnfittedCount == 0 {
			b.WriteString(styleSuccess.Render(line))
		} else {
			b.WriteString(styleValue.Render(line))
		}
		b.WriteString("\n")
	}

	if len(job.Bins) > 0 {
		est := model.CalculateLoadEstimate(job.Items, job.Bins[0], opts.headroom)
		b.WriteString(styleTitle.Render("Purchase estimate"))
		b.WriteString("\n")
		b.WriteString(styleValue.Render(fmt.Sprintf(
			"  %s: %d bin(s) minimum, %d recommended with %.0f%% headroom (limited by %s)",
			job.Bins[0].Name, est.BinsNeededMin, est.BinsWithHeadroom, est.HeadroomPercent, est.LimitedBy)))
		b.WriteString("\n")
		if est.EstimatedCost > 0 {
			b.WriteString(styleValue.Render(fmt.Sprintf("  Estimated cost: %.2f", est.EstimatedCost)))
			b.WriteString("\n")
		}
	}

	fmt.Print(b.String())
	return nil
}

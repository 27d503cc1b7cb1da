package loadplan

import (
	"fmt"
	"strings"

	"github.com/piwi3910/CrateStack/internal/model"
)

// Generator produces loading instructions from a packed layout.
type Generator struct {
	Settings model.PackSettings
	profile  model.PlanProfile
}

func New(settings model.PackSettings) *Generator {
	return &Generator{
		Settings: settings,
		profile:  model.GetPlanProfile(settings.PlanProfile),
	}
}

// GenerateBin produces the load plan text for a single bin's placements.
// Steps come out in placement order, which is the order the boxes have to go
// in for the layout to work.
func (g *Generator) GenerateBin(br model.BinResult, binIndex int) string {
	var b strings.Builder

	g.writeHeader(&b, br, binIndex)

	runningLoad := 0.0
	for i, placement := range br.Placements {
		runningLoad += placement.Item.Weight
		g.writeStep(&b, placement, i+1, runningLoad)
	}

	g.writeFooter(&b, br)
	return b.String()
}

// GenerateAll produces one plan per bin.
func (g *Generator) GenerateAll(result model.PackResult) []string {
	var plans []string
	for i, br := range result.Bins {
		plans = append(plans, g.GenerateBin(br, i+1))
	}
	return plans
}

// Generate produces a single document covering every bin in the result,
// followed by a note for each item that did not fit.
func (g *Generator) Generate(result model.PackResult) string {
	var b strings.Builder

	for i, br := range result.Bins {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(g.GenerateBin(br, i+1))
	}

	if len(result.Unfitted) > 0 {
		b.WriteString("\n")
		b.WriteString(g.profile.CommentPrefix)
		b.WriteString(fmt.Sprintf(" Unfitted items: %d\n", len(result.Unfitted)))
		for _, it := range result.Unfitted {
			b.WriteString(g.profile.CommentPrefix)
			b.WriteString(fmt.Sprintf(" - %s (%s)\n", it.Name, it.Dim))
		}
	}

	return b.String()
}

func (g *Generator) writeHeader(b *strings.Builder, br model.BinResult, idx int) {
	p := g.profile

	b.WriteString(p.CommentPrefix)
	b.WriteString(fmt.Sprintf(" CrateStack Load Plan - Bin %d (%s)\n", idx, br.Bin.Name))
	b.WriteString(p.CommentPrefix)
	b.WriteString(fmt.Sprintf(" Bin: %s x %s x %s, max load %.1f kg\n",
		g.format(br.Bin.Dim.Width), g.format(br.Bin.Dim.Height), g.format(br.Bin.Dim.Depth),
		br.Bin.MaxWeight))
	b.WriteString(p.CommentPrefix)
	b.WriteString(fmt.Sprintf(" Items: %d, Efficiency: %.1f%%\n", len(br.Placements), br.Efficiency()))
	b.WriteString(p.CommentPrefix)
	b.WriteString(fmt.Sprintf(" Profile: %s\n", p.Name))
	b.WriteString("\n")

	for _, line := range p.HeaderLines {
		b.WriteString(line + "\n")
	}
	if len(p.HeaderLines) > 0 {
		b.WriteString("\n")
	}
}

func (g *Generator) writeStep(b *strings.Builder, p model.Placement, stepNum int, runningLoad float64) {
	dim := p.PlacedDim()

	b.WriteString(fmt.Sprintf("%s %d: %s -> (%s, %s, %s) size %s x %s x %s",
		g.profile.StepPrefix, stepNum, p.Item.Name,
		g.format(p.Position.X), g.format(p.Position.Y), g.format(p.Position.Z),
		g.format(dim.Width), g.format(dim.Height), g.format(dim.Depth)))

	if g.profile.ShowRotation {
		b.WriteString(fmt.Sprintf(" [%s]", p.Rotation))
	}
	if g.profile.ShowWeight {
		b.WriteString(fmt.Sprintf(" load %.1f kg", runningLoad))
	}
	b.WriteString("\n")
}

func (g *Generator) writeFooter(b *strings.Builder, br model.BinResult) {
	p := g.profile

	b.WriteString("\n")
	if p.ShowWeight {
		b.WriteString(p.CommentPrefix)
		b.WriteString(fmt.Sprintf(" Total load: %.1f kg of %.1f kg\n",
			br.TotalWeight(), br.Bin.MaxWeight))
	}
	for _, line := range p.FooterLines {
		b.WriteString(line + "\n")
	}
}

// format formats a coordinate according to the profile's decimal places.
func (g *Generator) format(v float64) string {
	format := fmt.Sprintf("%%.%df", g.profile.DecimalPlaces)
	return fmt.Sprintf(format, v)
}

// Package cli implements the cratestack command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// appName is the application name used for display and config paths.
const appName = "cratestack"

// Version is the release version, overridable at build time via -ldflags.
var Version = "dev"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Terminal styles for the pack summary block.
var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	styleLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleValue   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("167"))
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	out    io.Writer
}

// New creates a new CLI instance with a default logger. Log output goes to
// w; the styled summary goes to stdout via the pack command.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		out: w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "CrateStack plans 3D container loads",
		Long:         `CrateStack packs cuboid items into bins (cartons, crates, freezer compartments) using a deterministic placement search, and reports which items fit where and which do not.`,
		Version:      Version,
		SilenceUsage: true,
	}

	root.AddCommand(c.packCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.initCommand())
	root.AddCommand(c.openCommand())
	root.AddCommand(c.templatesCommand())
	root.AddCommand(c.backupCommand())

	return root
}

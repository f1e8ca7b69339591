// Command awlyc is the thin CLI shim over the awlyc library (spec.md §1, §6):
// it never implements language semantics itself, only parses flags, drives
// the core packages, and renders their output and diagnostics.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "awlyc",
	Short: "CFGL configuration language toolchain",
	Long:  `awlyc lexes, parses, and evaluates CFGL configuration files.`,
}

func main() {
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(astCmd)
	rootCmd.AddCommand(evalCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize diagnostics (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "accepted for compatibility; no subcommand reads it")
	rootCmd.PersistentFlags().Int("max-diagnostics", 1000, "maximum number of diagnostics to collect")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to an interactive terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func colorEnabled(cmd *cobra.Command, f *os.File) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return isTerminal(f), nil
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"awlyc/internal/ast"
	"awlyc/internal/diag"
	"awlyc/internal/diagfmt"
	"awlyc/internal/lexer"
	"awlyc/internal/parser"
	"awlyc/internal/source"
)

var astCmd = &cobra.Command{
	Use:   "ast <file>",
	Short: "Dump the parsed module tree of a CFGL source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runAST,
}

func init() {
	astCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runAST(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("awlyc: %w", err)
	}

	fs := source.NewFileSet()
	fid := fs.AddVirtual(args[0], content)
	file := fs.Get(fid)

	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(64, source.NewInterner())
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	mod := parser.ParseFile(fid, lx, b, parser.Options{Reporter: reporter})

	bag.Sort()
	if bag.HasErrors() || bag.HasWarnings() {
		useColor, cerr := colorEnabled(cmd, os.Stderr)
		if cerr != nil {
			return cerr
		}
		diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{Color: useColor, Context: 2})
	}

	switch format {
	case "pretty":
		diagfmt.FormatModuleTree(os.Stdout, mod, b)
		return nil
	case "json":
		return diagfmt.FormatModuleJSON(os.Stdout, mod, b)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

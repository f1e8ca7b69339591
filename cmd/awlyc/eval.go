package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"awlyc/internal/ast"
	"awlyc/internal/diag"
	"awlyc/internal/diagfmt"
	"awlyc/internal/eval"
	"awlyc/internal/loader"
	"awlyc/internal/schema"
	"awlyc/internal/source"
)

var evalCmd = &cobra.Command{
	Use:   "eval <file>",
	Short: "Load, evaluate, and print a CFGL entry file",
	Args:  cobra.ExactArgs(1),
	RunE:  runEval,
}

func init() {
	evalCmd.Flags().String("format", "json", "output format (json|msgpack)")
}

func runEval(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(256, source.NewInterner())

	modules, entryID, loadErr := loader.Load(args[0], b, loader.Options{Reporter: reporter})
	var val eval.Value
	var ok bool
	if loadErr == nil {
		val, ok = eval.Lower(entryID, modules, b, reporter)
	}
	bag.Sort()

	if bag.Len() > 0 {
		useColor, cerr := colorEnabled(cmd, os.Stderr)
		if cerr != nil {
			return cerr
		}
		diagfmt.Pretty(os.Stderr, bag, modules.FileSet, diagfmt.PrettyOpts{Color: useColor, Context: 2})
	}

	if loadErr != nil {
		return fmt.Errorf("awlyc: %w", loadErr)
	}
	if !ok {
		return fmt.Errorf("awlyc: evaluation failed")
	}

	dumped := schema.Dump(val)
	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(dumped)
	case "msgpack":
		encoded, err := schema.EncodeMsgpack(dumped)
		if err != nil {
			return fmt.Errorf("awlyc: %w", err)
		}
		_, err = os.Stdout.Write(encoded)
		return err
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

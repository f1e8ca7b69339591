package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"awlyc/internal/diag"
	"awlyc/internal/diagfmt"
	"awlyc/internal/lexer"
	"awlyc/internal/source"
	"awlyc/internal/token"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Dump the token stream of a CFGL source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func init() {
	tokensCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokens(cmd *cobra.Command, args []string) error {
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
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

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
		return diagfmt.FormatTokensPretty(os.Stdout, tokens, fs)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// Package diagfmt renders the diagnostics and AST/token dumps produced by
// the core (internal/diag, internal/ast, internal/token) for the CLI shim
// cmd/awlyc. It is the one place in the module allowed to touch a terminal:
// the core library itself never colors or formats anything, it only ever
// returns a *diag.Bag (spec.md §1, §7).
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"awlyc/internal/diag"
	"awlyc/internal/source"
)

// visualWidthUpTo computes the rendered column width of s up to byteCol
// (1-based, in bytes), expanding tabs and accounting for double-width
// Unicode runes so the caret under a diagnostic span lines up visually.
func visualWidthUpTo(s string, byteCol uint32, tabWidth int) int {
	if byteCol <= 1 {
		return 0
	}
	bytePos, visualPos := 0, 0
	for _, r := range s {
		if bytePos >= int(byteCol-1) {
			break
		}
		if r == '\t' {
			visualPos = (visualPos + tabWidth) / tabWidth * tabWidth
		} else {
			visualPos += runewidth.RuneWidth(r)
		}
		bytePos += len(string(r))
	}
	return visualPos
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}

// Pretty renders every diagnostic in bag (expected to already be sorted via
// Bag.Sort for spec.md §8's deterministic ordering): a one-line header
// ("path:line:col: SEVERITY CODE: message"), then a snippet of the source
// around the primary span underlined with carets, then any notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	errorColor := color.New(color.FgRed, color.Bold)
	warningColor := color.New(color.FgYellow, color.Bold)
	infoColor := color.New(color.FgCyan, color.Bold)
	pathColor := color.New(color.FgWhite, color.Bold)
	codeColor := color.New(color.FgMagenta)
	lineNumColor := color.New(color.FgBlue)
	underlineColor := color.New(color.FgRed, color.Bold)

	prevNoColor := color.NoColor
	defer func() { color.NoColor = prevNoColor }()
	color.NoColor = !opts.Color

	context, err := safecast.Conv[uint32](opts.Context)
	if err != nil {
		panic(fmt.Errorf("diagfmt: context overflow: %w", err))
	}
	if context == 0 {
		context = 1
	}

	for idx, d := range bag.Items() {
		if idx > 0 {
			fmt.Fprintln(w) //nolint:errcheck
		}

		start, end := fs.Resolve(d.Primary)
		f := fs.Get(d.Primary.File)
		displayPath := formatPath(f, fs, opts.PathMode)

		var sevColored string
		switch d.Severity {
		case diag.SevError:
			sevColored = errorColor.Sprint(d.Severity.String())
		case diag.SevWarning:
			sevColored = warningColor.Sprint(d.Severity.String())
		default:
			sevColored = infoColor.Sprint(d.Severity.String())
		}

		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", //nolint:errcheck
			pathColor.Sprint(displayPath), start.Line, start.Col,
			sevColored, codeColor.Sprint(d.Code.String()), d.Message)

		totalLines, err := safecast.Conv[uint32](len(f.LineIdx))
		if err != nil {
			panic(fmt.Errorf("diagfmt: line count overflow: %w", err))
		}
		totalLines++

		startLine := uint32(1)
		if start.Line > context {
			startLine = start.Line - context
		}
		endLine := min(start.Line+context, totalLines)

		if startLine > 1 {
			fmt.Fprintln(w, "...") //nolint:errcheck
		}

		const tabWidth = 8
		lineNumWidth := max(len(fmt.Sprintf("%d", endLine)), 3)

		for lineNum := startLine; lineNum <= endLine; lineNum++ {
			lineText := f.GetLine(lineNum)
			gutter := fmt.Sprintf("%s | ", lineNumColor.Sprint(fmt.Sprintf("%*d", lineNumWidth, lineNum)))
			gutterLen := lineNumWidth + 3

			fmt.Fprint(w, gutter)               //nolint:errcheck
			fmt.Fprintln(w, lineText)            //nolint:errcheck

			if lineNum != start.Line {
				continue
			}
			endCol := end.Col
			if end.Line > start.Line {
				lenLine, convErr := safecast.Conv[uint32](len(lineText))
				if convErr != nil {
					panic(fmt.Errorf("diagfmt: line length overflow: %w", convErr))
				}
				endCol = lenLine + 1
			}

			visualStart := visualWidthUpTo(lineText, start.Col, tabWidth)
			visualEnd := visualWidthUpTo(lineText, endCol, tabWidth)

			var underline strings.Builder
			for range gutterLen {
				underline.WriteByte(' ')
			}
			for range visualStart {
				underline.WriteByte(' ')
			}
			spanLen := visualEnd - visualStart
			if spanLen <= 0 {
				underline.WriteByte('^')
			} else {
				for i := range spanLen {
					if i == spanLen-1 {
						underline.WriteByte('^')
					} else {
						underline.WriteByte('~')
					}
				}
			}
			fmt.Fprintln(w, underlineColor.Sprint(underline.String())) //nolint:errcheck
		}

		if endLine < totalLines {
			fmt.Fprintln(w, "...") //nolint:errcheck
		}

		for _, note := range d.Notes {
			nf := fs.Get(note.Span.File)
			noteStart, _ := fs.Resolve(note.Span)
			fmt.Fprintf(w, "  %s: %s:%d:%d: %s\n", //nolint:errcheck
				infoColor.Sprint("note"), pathColor.Sprint(formatPath(nf, fs, opts.PathMode)),
				noteStart.Line, noteStart.Col, note.Msg)
		}
	}
}

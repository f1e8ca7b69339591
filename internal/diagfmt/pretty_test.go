package diagfmt_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"awlyc/internal/diag"
	"awlyc/internal/diagfmt"
	"awlyc/internal/source"
)

func TestPrettyRendersHeaderAndUnderline(t *testing.T) {
	fs := source.NewFileSet()
	fid := fs.AddVirtual("entry.awlyc", []byte("1 + \n"))

	bag := diag.NewBag(10)
	bag.Add(&diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynUnexpectedToken,
		Message:  "unexpected token",
		Primary:  source.Span{File: fid, Start: 2, End: 3},
	})

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{Color: false, Context: 1})

	out := buf.String()
	assert.Contains(t, out, "entry.awlyc:1:3: ERROR SYN_UNEXPECTED_TOKEN: unexpected token")
	assert.Contains(t, out, "1 + ")
	assert.Contains(t, out, "^")
}

func TestPrettyRendersNotes(t *testing.T) {
	fs := source.NewFileSet()
	fid := fs.AddVirtual("entry.awlyc", []byte("x\n"))

	bag := diag.NewBag(10)
	bag.Add(&diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.ResUnknownIdent,
		Message:  "unknown identifier: x",
		Primary:  source.Span{File: fid, Start: 0, End: 1},
		Notes:    []diag.Note{{Span: source.Span{File: fid, Start: 0, End: 1}, Msg: "did you mean y?"}},
	})

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{Color: false, Context: 1})

	require.True(t, strings.Contains(buf.String(), "note"))
	assert.Contains(t, buf.String(), "did you mean y?")
}

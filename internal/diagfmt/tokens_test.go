package diagfmt_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"awlyc/internal/diag"
	"awlyc/internal/diagfmt"
	"awlyc/internal/lexer"
	"awlyc/internal/source"
	"awlyc/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	fid := fs.AddVirtual("entry.awlyc", []byte(src))
	file := fs.Get(fid)

	bag := diag.NewBag(10)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks, fs
}

func TestFormatTokensPrettyListsEveryTokenUpToEOF(t *testing.T) {
	toks, fs := lexAll(t, "1 + 2")

	var buf bytes.Buffer
	require.NoError(t, diagfmt.FormatTokensPretty(&buf, toks, fs))

	out := buf.String()
	assert.Contains(t, out, "integer literal")
	assert.Contains(t, out, "'+'")
	assert.Contains(t, out, "<eof>")
}

func TestTokenOutputsJSONStopsAtEOF(t *testing.T) {
	toks, _ := lexAll(t, "1")
	out := diagfmt.TokenOutputsJSON(toks)
	require.Len(t, out, 2) // IntLit, EOF
	assert.Equal(t, "integer literal", out[0].Kind)
	assert.Equal(t, "<eof>", out[1].Kind)
}

func TestFormatTokensJSONProducesValidJSON(t *testing.T) {
	toks, _ := lexAll(t, "1 + 2")
	var buf bytes.Buffer
	require.NoError(t, diagfmt.FormatTokensJSON(&buf, toks))
	assert.Contains(t, buf.String(), "\"kind\"")
}

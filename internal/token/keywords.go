package token

var keywords = map[string]Kind{
	"fn":     KwFn,
	"import": KwImport,
}

// LookupKeyword reports whether ident is a reserved word, and its Kind if so.
// Keywords are case-sensitive; only the lowercase spelling is recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

package source

// StringID identifies an interned string: every identifier, string
// literal, and record key that the lexer or parser sees is folded through
// an Interner so that equal text shares one ID inside the scope of a
// single Lower/Parse call (spec.md §3 "Lifecycles": interned strings live
// for that same scope as the arena and module table).
type StringID uint32

// NoStringID is the zero-value StringID; NewInterner binds it to "", so it
// is also what Intern("") returns.
const NoStringID StringID = 0

// Interner deduplicates strings by content. CFGL's evaluator is
// single-threaded and synchronous (spec.md §5), and an Interner is always
// owned by one from_file invocation, so unlike a compiler front end shared
// across goroutines it needs no locking.
type Interner struct {
	byID  []string           // index -> string; byID[0] is "" for NoStringID
	index map[string]StringID // string -> id
}

// NewInterner returns an empty Interner with NoStringID already bound to "".
func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": 0},
	}
}

// Intern returns s's StringID, assigning a new one the first time s is seen.
func (i *Interner) Intern(s string) StringID {
	if id, ok := i.index[s]; ok {
		return id
	}
	// Copy so the interned string does not keep the caller's buffer (e.g. a
	// slice into a source file's content) alive longer than needed.
	cpy := string([]byte(s))
	id := StringID(len(i.byID))
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// Lookup returns the string for id, or "" and false if id is not valid.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if int(id) < 0 || int(id) >= len(i.byID) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup returns the string for id, panicking if id is not valid; used
// where the caller already knows id came from this Interner.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("invalid string ID")
	}
	return s
}

package schema

import "github.com/vmihailenco/msgpack/v5"

// EncodeMsgpack serializes a projected value (the any tree ProjectValue or
// Project returns) into msgpack, for tooling that wants CFGL output without
// a JSON dependency (spec.md §3 DOMAIN STACK).
func EncodeMsgpack(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

package schema_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"awlyc/internal/schema"
)

func TestEncodeMsgpackRoundTrips(t *testing.T) {
	in := map[string]any{"name": "x", "count": int64(3)}

	encoded, err := schema.EncodeMsgpack(in)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, msgpack.Unmarshal(encoded, &out))
	require.Equal(t, "x", out["name"])
}

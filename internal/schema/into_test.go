package schema_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"awlyc/internal/eval"
	"awlyc/internal/schema"
	"awlyc/internal/source"
)

type page struct {
	Title string
	Count int32
	Tags  []string
}

func TestDeriveBuildsRecordSchemaFromStruct(t *testing.T) {
	s, err := schema.Derive(reflect.TypeOf(page{}))
	require.NoError(t, err)
	assert.Equal(t, schema.KindRecord, s.Kind)
	require.Len(t, s.Fields, 3)
	assert.Equal(t, "title", s.Fields[0].Name)
	assert.Equal(t, "count", s.Fields[1].Name)
	assert.Equal(t, "tags", s.Fields[2].Name)
}

func TestDeriveHonorsFieldTag(t *testing.T) {
	type tagged struct {
		Internal string `awlyc:"-"`
		Renamed  string `awlyc:"custom_name"`
	}
	s, err := schema.Derive(reflect.TypeOf(tagged{}))
	require.NoError(t, err)
	require.Len(t, s.Fields, 1)
	assert.Equal(t, "custom_name", s.Fields[0].Name)
}

func TestIntoDecodesRecordIntoStruct(t *testing.T) {
	v := eval.Value{Kind: eval.KindRecord, Record: []eval.RecordEntry{
		{Key: "title", Value: eval.Value{Kind: eval.KindString, Str: "hi"}},
		{Key: "count", Value: eval.Value{Kind: eval.KindInt, Int: 2}},
		{Key: "tags", Value: eval.Value{Kind: eval.KindArray, Array: []eval.Value{
			{Kind: eval.KindString, Str: "a"},
			{Kind: eval.KindString, Str: "b"},
		}}},
	}}
	s, err := schema.Derive(reflect.TypeOf(page{}))
	require.NoError(t, err)

	out, bag := schema.Into[page](v, s, source.Span{})
	require.False(t, bag.HasErrors())
	assert.Equal(t, page{Title: "hi", Count: 2, Tags: []string{"a", "b"}}, out)
}

func TestIntoReportsOverflowBeforeDecoding(t *testing.T) {
	type narrow struct {
		N int8
	}
	v := eval.Value{Kind: eval.KindRecord, Record: []eval.RecordEntry{
		{Key: "n", Value: eval.Value{Kind: eval.KindInt, Int: 1000}},
	}}
	s, err := schema.Derive(reflect.TypeOf(narrow{}))
	require.NoError(t, err)

	_, bag := schema.Into[narrow](v, s, source.Span{})
	require.True(t, bag.HasErrors())
}

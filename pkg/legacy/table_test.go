package legacy_test

import (
	"math"
	"testing"
	"time"

	"github.com/amirasaad/shoplist/pkg/legacy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRow_LenientGetters(t *testing.T) {
	r := legacy.Row{
		"int":     int64(42),
		"float":   2.5,
		"text":    " 1,5 ",
		"bytes":   []byte("7"),
		"garbled": "abc",
		"null":    nil,
		"nan":     math.NaN(),
		"flag":    "true",
		"millis":  int64(1700000000000),
	}

	assert.Equal(t, "42", r.String("int"))
	assert.Equal(t, "2.5", r.String("float"))
	assert.Equal(t, "", r.String("null"))
	assert.Equal(t, "", r.String("missing"))

	assert.Equal(t, int64(42), r.Int64("int", -1))
	assert.Equal(t, int64(2), r.Int64("float", -1))
	assert.Equal(t, int64(7), r.Int64("bytes", -1))
	assert.Equal(t, int64(1), r.Int64("text", -1))
	assert.Equal(t, int64(-1), r.Int64("garbled", -1))
	assert.Equal(t, int64(-1), r.Int64("null", -1))
	assert.Equal(t, int64(-1), r.Int64("nan", -1))

	assert.Equal(t, "1.5", r.Decimal("text").String())
	assert.Equal(t, "2.5", r.Decimal("float").String())
	assert.True(t, r.Decimal("garbled").IsZero())
	assert.True(t, r.Decimal("nan").IsZero())
	assert.True(t, r.Decimal("missing").IsZero())

	assert.True(t, r.Bool("int", false))
	assert.True(t, r.Bool("flag", false))
	assert.True(t, r.Bool("garbled", true))
	assert.False(t, r.Bool("null", false))

	assert.Equal(t, time.UnixMilli(1700000000000).UTC(), r.Millis("millis"))
	assert.True(t, r.Millis("null").IsZero())
	assert.True(t, r.Millis("garbled").IsZero())

	assert.True(t, r.Has("int"))
	assert.False(t, r.Has("null"))
	assert.False(t, r.Has("missing"))
}

func TestTable_Require(t *testing.T) {
	table := legacy.Table{Name: "goods", Columns: []string{"_id", "goodsname"}}
	require.NoError(t, table.Require("_id", "goodsname"))

	err := table.Require("_id", "goodsbuy")
	require.ErrorIs(t, err, legacy.ErrSchemaMismatch)
	assert.Contains(t, err.Error(), "goodsbuy")

	err = legacy.Table{Name: "list"}.Require("_id")
	require.ErrorIs(t, err, legacy.ErrSchemaMismatch)
	assert.Contains(t, err.Error(), `table "list" not found`)
}

func TestParseGeneration(t *testing.T) {
	for raw, want := range map[string]legacy.Generation{"gen1": legacy.Gen1, "GEN2": legacy.Gen2, "2": legacy.Gen2} {
		got, err := legacy.ParseGeneration(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}
	_, err := legacy.ParseGeneration("gen3")
	assert.ErrorIs(t, err, legacy.ErrUnknownGeneration)
	assert.Equal(t, "gen1", legacy.Gen1.String())
}

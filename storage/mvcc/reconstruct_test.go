package mvcc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/give-a-mocha/DB2025/storage/mvcc"
	"github.com/give-a-mocha/DB2025/storage/table/column"
	"github.com/give-a-mocha/DB2025/storage/table/schema"
	"github.com/give-a-mocha/DB2025/storage/tuple"
	"github.com/give-a-mocha/DB2025/types"
)

func twoColSchema() *schema.Schema {
	return schema.NewSchema([]*column.Column{
		column.NewColumn("t", "a", types.Integer, 0, false),
		column.NewColumn("t", "b", types.Integer, 0, false),
	})
}

func makeTuple(schema_ *schema.Schema, a int32, b int32) *tuple.Tuple {
	return tuple.NewTupleFromSchema([]types.Value{types.NewInteger(a), types.NewInteger(b)}, schema_)
}

func TestReconstructWithoutUndoLogs(t *testing.T) {
	schema_ := twoColSchema()
	base := makeTuple(schema_, 1, 2)

	got, ok := mvcc.Reconstruct(schema_, base, mvcc.TupleMeta{Ts: 5}, nil)
	require.True(t, ok)
	assert.Equal(t, int32(1), got.GetValue(schema_, 0).ToInteger())
	assert.Equal(t, int32(2), got.GetValue(schema_, 1).ToInteger())

	_, ok = mvcc.Reconstruct(schema_, base, mvcc.TupleMeta{Ts: 5, IsDeleted: true}, nil)
	assert.False(t, ok)
}

func TestReconstructAppliesSparseDeltas(t *testing.T) {
	schema_ := twoColSchema()
	base := makeTuple(schema_, 10, 20)

	// newest first: first roll a back to 5, then b back to 7
	undoLogs := []mvcc.UndoLog{
		{ModifiedFields: []bool{true, false}, Values: []types.Value{types.NewInteger(5)}, Ts: 9},
		{ModifiedFields: []bool{false, true}, Values: []types.Value{types.NewInteger(7)}, Ts: 8},
	}

	got, ok := mvcc.Reconstruct(schema_, base, mvcc.TupleMeta{Ts: 10}, undoLogs)
	require.True(t, ok)
	assert.Equal(t, int32(5), got.GetValue(schema_, 0).ToInteger())
	assert.Equal(t, int32(7), got.GetValue(schema_, 1).ToInteger())

	// the base image is untouched
	assert.Equal(t, int32(10), base.GetValue(schema_, 0).ToInteger())
}

func TestReconstructSnapshotWinsOverEarlierDeltas(t *testing.T) {
	schema_ := twoColSchema()
	base := makeTuple(schema_, 10, 20)
	full := makeTuple(schema_, 0, 0)

	// a sparse delta followed by a full before image: the snapshot
	// replaces everything the delta restored
	undoLogs := []mvcc.UndoLog{
		{ModifiedFields: []bool{true, false}, Values: []types.Value{types.NewInteger(10)}, Ts: 9},
		{Snapshot: full, Ts: 8},
	}

	got, ok := mvcc.Reconstruct(schema_, base, mvcc.TupleMeta{Ts: 10}, undoLogs)
	require.True(t, ok)
	assert.Equal(t, int32(0), got.GetValue(schema_, 0).ToInteger())
	assert.Equal(t, int32(0), got.GetValue(schema_, 1).ToInteger())
}

func TestReconstructDeletedBaseIsAbsent(t *testing.T) {
	schema_ := twoColSchema()
	base := makeTuple(schema_, 10, 20)

	// a deleted base never yields a tuple, even with entries to apply
	undoLogs := []mvcc.UndoLog{
		{ModifiedFields: []bool{false, false}, Ts: 9},
	}

	_, ok := mvcc.Reconstruct(schema_, base, mvcc.TupleMeta{Ts: 10, IsDeleted: true}, undoLogs)
	assert.False(t, ok)
}

func TestReconstructDeletionEntryEndsTheChain(t *testing.T) {
	schema_ := twoColSchema()
	base := makeTuple(schema_, 10, 20)

	undoLogs := []mvcc.UndoLog{
		{IsDeleted: true, Ts: 9},
		{ModifiedFields: []bool{true, false}, Values: []types.Value{types.NewInteger(5)}, Ts: 8},
	}

	_, ok := mvcc.Reconstruct(schema_, base, mvcc.TupleMeta{Ts: 10}, undoLogs)
	assert.False(t, ok)
}

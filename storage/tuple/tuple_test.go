package tuple_test

import (
	"testing"

	"github.com/give-a-mocha/DB2025/storage/table/column"
	"github.com/give-a-mocha/DB2025/storage/table/schema"
	"github.com/give-a-mocha/DB2025/storage/tuple"
	testingpkg "github.com/give-a-mocha/DB2025/testing/testing_assert"
	"github.com/give-a-mocha/DB2025/types"
)

func rowSchema() *schema.Schema {
	return schema.NewSchema([]*column.Column{
		column.NewColumn("t", "id", types.Integer, 0, false),
		column.NewColumn("t", "name", types.Varchar, 10, false),
		column.NewColumn("t", "score", types.Float, 0, false),
	})
}

func TestTupleRoundTrip(t *testing.T) {
	schema_ := rowSchema()
	testingpkg.Equals(t, uint32(18), schema_.Length())

	tuple_ := tuple.NewTupleFromSchema([]types.Value{
		types.NewInteger(42),
		types.NewVarchar("bob"),
		types.NewFloat(1.5),
	}, schema_)

	testingpkg.Equals(t, uint32(18), tuple_.Size())
	testingpkg.Equals(t, int32(42), tuple_.GetValue(schema_, 0).ToInteger())
	testingpkg.Equals(t, "bob", tuple_.GetValue(schema_, 1).ToVarchar())
	testingpkg.Equals(t, float32(1.5), tuple_.GetValue(schema_, 2).ToFloat())
}

func TestSetValueZeroPadsVarchar(t *testing.T) {
	schema_ := rowSchema()
	tuple_ := tuple.NewTupleFromSchema([]types.Value{
		types.NewInteger(1),
		types.NewVarchar("longername"),
		types.NewFloat(0),
	}, schema_)

	tuple_.SetValue(schema_, 1, types.NewVarchar("ab"))
	testingpkg.Equals(t, "ab", tuple_.GetValue(schema_, 1).ToVarchar())

	// the stale suffix must not bleed through
	raw := tuple_.Data()[4:14]
	testingpkg.Equals(t, []byte{'a', 'b', 0, 0, 0, 0, 0, 0, 0, 0}, raw)
}

func TestCopyIsDetached(t *testing.T) {
	schema_ := rowSchema()
	tuple_ := tuple.NewTupleFromSchema([]types.Value{
		types.NewInteger(1),
		types.NewVarchar("x"),
		types.NewFloat(0),
	}, schema_)

	copied := tuple_.Copy()
	tuple_.SetValue(schema_, 0, types.NewInteger(99))

	testingpkg.Equals(t, int32(99), tuple_.GetValue(schema_, 0).ToInteger())
	testingpkg.Equals(t, int32(1), copied.GetValue(schema_, 0).ToInteger())
}

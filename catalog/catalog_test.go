package catalog_test

import (
	"testing"

	"github.com/give-a-mocha/DB2025/catalog"
	"github.com/give-a-mocha/DB2025/common"
	"github.com/give-a-mocha/DB2025/errors"
	"github.com/give-a-mocha/DB2025/storage/buffer"
	"github.com/give-a-mocha/DB2025/storage/disk"
	"github.com/give-a-mocha/DB2025/storage/record"
	"github.com/give-a-mocha/DB2025/storage/table/column"
	"github.com/give-a-mocha/DB2025/storage/table/schema"
	"github.com/give-a-mocha/DB2025/storage/tuple"
	testingpkg "github.com/give-a-mocha/DB2025/testing/testing_assert"
	"github.com/give-a-mocha/DB2025/types"
)

func newCatalog() *catalog.Catalog {
	dm := disk.NewDiskManagerTest()
	bpm := buffer.NewBufferPoolManager(common.BufferPoolSizeForTest, dm)
	return catalog.NewCatalog(record.NewManager(dm, bpm, nil))
}

func itemsSchema() *schema.Schema {
	return schema.NewSchema([]*column.Column{
		column.NewColumn("items", "id", types.Integer, 0, false),
		column.NewColumn("items", "label", types.Varchar, 8, false),
	})
}

func TestCreateAndGetTable(t *testing.T) {
	c := newCatalog()

	created, err := c.CreateTable("items", itemsSchema())
	testingpkg.Ok(t, err)

	got, err := c.GetTable("items")
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, created, got)
	testingpkg.Equals(t, "items", got.GetTableName())
	testingpkg.Equals(t, uint32(12), got.Schema().Length())
	testingpkg.Equals(t, int32(12), got.FileHandle().GetFileHeader().RecordSize)

	_, err = c.CreateTable("items", itemsSchema())
	testingpkg.Equals(t, catalog.ErrTableAlreadyExists, err)

	_, err = c.GetTable("missing")
	testingpkg.Equals(t, catalog.ErrTableNotFound, err)
}

func TestDropTable(t *testing.T) {
	c := newCatalog()

	_, err := c.CreateTable("items", itemsSchema())
	testingpkg.Ok(t, err)
	testingpkg.Ok(t, c.DropTable("items"))

	_, err = c.GetTable("items")
	testingpkg.Equals(t, catalog.ErrTableNotFound, err)

	// the record file is gone too, so the name is reusable
	_, err = c.CreateTable("items", itemsSchema())
	testingpkg.Ok(t, err)
}

func TestCreateIndexBackfillsExistingRecords(t *testing.T) {
	c := newCatalog()

	tableMeta, err := c.CreateTable("items", itemsSchema())
	testingpkg.Ok(t, err)

	schema_ := tableMeta.Schema()
	for i := int32(0); i < 3; i++ {
		data := tuple.NewTupleFromSchema([]types.Value{
			types.NewInteger(i),
			types.NewVarchar("x"),
		}, schema_).Data()
		_, err := tableMeta.FileHandle().InsertRecord(data, nil)
		testingpkg.Ok(t, err)
	}

	indexInfo, err := c.CreateIndex("items", "items_id_idx", []string{"id"})
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, 1, len(tableMeta.GetIndexes()))
	testingpkg.Assert(t, schema_.GetColumn(0).HasIndex(), "the indexed column must be flagged")

	for i := int32(0); i < 3; i++ {
		rid, ok := indexInfo.GetIndex().GetRID(types.NewInteger(i).Serialize())
		testingpkg.Assert(t, ok, "every existing record must be indexed")

		data, err := tableMeta.FileHandle().GetRecord(rid, nil)
		testingpkg.Ok(t, err)
		testingpkg.Equals(t, i, tuple.NewTuple(nil, data).GetValue(schema_, 0).ToInteger())
	}

	_, err = c.CreateIndex("items", "items_id_idx", []string{"id"})
	testingpkg.Equals(t, catalog.ErrIndexAlreadyExists, err)
	_, err = c.CreateIndex("items", "other_idx", []string{"missing"})
	testingpkg.Equals(t, errors.ErrColumnNotFound, err)
	_, err = c.CreateIndex("missing", "idx", []string{"id"})
	testingpkg.Equals(t, catalog.ErrTableNotFound, err)
}

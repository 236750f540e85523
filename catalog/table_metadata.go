package catalog

import (
	"github.com/give-a-mocha/DB2025/storage/mvcc"
	"github.com/give-a-mocha/DB2025/storage/record"
	"github.com/give-a-mocha/DB2025/storage/table/schema"
)

// TableMetadata ties a table name to its schema, its record file and
// the indexes and version chains over it.
type TableMetadata struct {
	name       string
	schema_    *schema.Schema
	fh         *record.FileHandle
	indexes    []*IndexInfo
	versionMgr *mvcc.VersionManager
}

func NewTableMetadata(name string, schema_ *schema.Schema, fh *record.FileHandle) *TableMetadata {
	return &TableMetadata{name, schema_, fh, make([]*IndexInfo, 0), mvcc.NewVersionManager()}
}

func (t *TableMetadata) GetTableName() string {
	return t.name
}

func (t *TableMetadata) Schema() *schema.Schema {
	return t.schema_
}

func (t *TableMetadata) FileHandle() *record.FileHandle {
	return t.fh
}

func (t *TableMetadata) GetIndexes() []*IndexInfo {
	return t.indexes
}

func (t *TableMetadata) GetVersionManager() *mvcc.VersionManager {
	return t.versionMgr
}

package catalog

import (
	"math"

	"github.com/sasha-s/go-deadlock"

	"github.com/give-a-mocha/DB2025/errors"
	"github.com/give-a-mocha/DB2025/storage/index"
	"github.com/give-a-mocha/DB2025/storage/page"
	"github.com/give-a-mocha/DB2025/storage/record"
	"github.com/give-a-mocha/DB2025/storage/table/schema"
	"github.com/give-a-mocha/DB2025/storage/tuple"
)

const (
	ErrTableAlreadyExists = errors.Error("table already exists")
	ErrTableNotFound      = errors.Error("table not found")
	ErrIndexAlreadyExists = errors.Error("index already exists")
)

// Catalog tracks the tables of one database instance. Table records
// live in record files named after the table.
type Catalog struct {
	tables    map[string]*TableMetadata
	recordMgr *record.Manager
	mutex     deadlock.Mutex
}

func NewCatalog(recordMgr *record.Manager) *Catalog {
	return &Catalog{tables: make(map[string]*TableMetadata), recordMgr: recordMgr}
}

// CreateTable creates the table's record file and registers it under
// name.
func (c *Catalog) CreateTable(name string, schema_ *schema.Schema) (*TableMetadata, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, ok := c.tables[name]; ok {
		return nil, ErrTableAlreadyExists
	}

	if err := c.recordMgr.CreateFile(name, int32(schema_.Length())); err != nil {
		return nil, err
	}
	fh, err := c.recordMgr.OpenFile(name)
	if err != nil {
		return nil, err
	}

	tableMeta := NewTableMetadata(name, schema_, fh)
	c.tables[name] = tableMeta
	return tableMeta, nil
}

func (c *Catalog) GetTable(name string) (*TableMetadata, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	tableMeta, ok := c.tables[name]
	if !ok {
		return nil, ErrTableNotFound
	}
	return tableMeta, nil
}

// DropTable closes and destroys the table's record file and removes
// it from the catalog.
func (c *Catalog) DropTable(name string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	tableMeta, ok := c.tables[name]
	if !ok {
		return ErrTableNotFound
	}

	if err := c.recordMgr.CloseFile(tableMeta.FileHandle()); err != nil {
		return err
	}
	if err := c.recordMgr.DestroyFile(name); err != nil {
		return err
	}
	delete(c.tables, name)
	return nil
}

// CreateIndex builds a hash index over the named columns and backfills
// it from the records already stored in the table.
func (c *Catalog) CreateIndex(tabName string, indexName string, colNames []string) (*IndexInfo, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	tableMeta, ok := c.tables[tabName]
	if !ok {
		return nil, ErrTableNotFound
	}
	for _, indexInfo := range tableMeta.indexes {
		if indexInfo.meta.GetIndexName() == indexName {
			return nil, ErrIndexAlreadyExists
		}
	}

	schema_ := tableMeta.Schema()
	colIdxs := make([]uint32, 0, len(colNames))
	for _, colName := range colNames {
		colIdx := schema_.GetColIndex(tabName, colName)
		if colIdx == math.MaxUint32 {
			return nil, errors.ErrColumnNotFound
		}
		colIdxs = append(colIdxs, colIdx)
	}

	indexMeta := NewIndexMetadata(indexName, tabName, colIdxs, schema_)
	indexInfo := NewIndexInfo(indexMeta, index.NewHashIndex())

	fh := tableMeta.FileHandle()
	for scan := record.NewScan(fh); !scan.End(); scan.Next() {
		rid := scan.RID()
		data, err := fh.GetRecord(rid, nil)
		if err != nil {
			return nil, err
		}
		key := indexMeta.BuildKey(tupleFromRecord(rid, data))
		indexInfo.GetIndex().InsertEntry(key, rid)
	}

	for _, colIdx := range colIdxs {
		schema_.GetColumn(colIdx).SetHasIndex(true)
	}
	tableMeta.indexes = append(tableMeta.indexes, indexInfo)
	return indexInfo, nil
}

func tupleFromRecord(rid page.RID, data []byte) *tuple.Tuple {
	ridCopy := rid
	return tuple.NewTuple(&ridCopy, data)
}

package catalog

import (
	"github.com/give-a-mocha/DB2025/storage/index"
	"github.com/give-a-mocha/DB2025/storage/table/schema"
	"github.com/give-a-mocha/DB2025/storage/tuple"
)

// IndexMetadata names an index and the table columns it covers.
type IndexMetadata struct {
	indexName string
	tabName   string
	colIdxs   []uint32
	schema_   *schema.Schema
}

func NewIndexMetadata(indexName string, tabName string, colIdxs []uint32, schema_ *schema.Schema) *IndexMetadata {
	return &IndexMetadata{indexName, tabName, colIdxs, schema_}
}

func (m *IndexMetadata) GetIndexName() string {
	return m.indexName
}

func (m *IndexMetadata) GetTabName() string {
	return m.tabName
}

func (m *IndexMetadata) GetColIdxs() []uint32 {
	return m.colIdxs
}

// BuildKey concatenates the raw bytes of the indexed columns of the
// tuple, in index declaration order.
func (m *IndexMetadata) BuildKey(t *tuple.Tuple) []byte {
	key := make([]byte, 0)
	for _, colIdx := range m.colIdxs {
		col := m.schema_.GetColumn(colIdx)
		offset := col.GetOffset()
		key = append(key, t.Data()[offset:offset+col.FixedLength()]...)
	}
	return key
}

// IndexInfo pairs the index metadata with the live index structure.
type IndexInfo struct {
	meta  *IndexMetadata
	index *index.HashIndex
}

func NewIndexInfo(meta *IndexMetadata, idx *index.HashIndex) *IndexInfo {
	return &IndexInfo{meta, idx}
}

func (i *IndexInfo) GetMetadata() *IndexMetadata {
	return i.meta
}

func (i *IndexInfo) GetIndex() *index.HashIndex {
	return i.index
}

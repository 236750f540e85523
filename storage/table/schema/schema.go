// this code is based on https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package schema

import (
	"math"

	"github.com/give-a-mocha/DB2025/storage/table/column"
)

// Schema is an ordered list of columns with precomputed byte offsets.
type Schema struct {
	columns []*column.Column
	length  uint32
}

// NewSchema assigns each column its offset in declaration order.
func NewSchema(columns []*column.Column) *Schema {
	offset := uint32(0)
	for _, col := range columns {
		col.SetOffset(offset)
		offset += col.FixedLength()
	}
	return &Schema{columns, offset}
}

// NewJoinedSchema concatenates two schemas. The right side columns are
// deep copied and their offsets shifted past the left side record.
func NewJoinedSchema(left *Schema, right *Schema) *Schema {
	columns := make([]*column.Column, 0, left.GetColumnCount()+right.GetColumnCount())
	for _, col := range left.GetColumns() {
		copied := *col
		columns = append(columns, &copied)
	}
	for _, col := range right.GetColumns() {
		copied := *col
		copied.SetOffset(col.GetOffset() + left.Length())
		columns = append(columns, &copied)
	}
	return &Schema{columns, left.Length() + right.Length()}
}

func (s *Schema) GetColumn(colIndex uint32) *column.Column {
	return s.columns[colIndex]
}

func (s *Schema) GetColumns() []*column.Column {
	return s.columns
}

func (s *Schema) GetColumnCount() uint32 {
	return uint32(len(s.columns))
}

// Length returns the byte size of a record laid out with this schema.
func (s *Schema) Length() uint32 {
	return s.length
}

// GetColIndex looks a column up by table and column name. An empty
// tabName matches any table. Returns math.MaxUint32 when not found.
func (s *Schema) GetColIndex(tabName string, colName string) uint32 {
	for i, col := range s.columns {
		if col.GetColumnName() != colName {
			continue
		}
		if tabName == "" || col.TabName() == "" || col.TabName() == tabName {
			return uint32(i)
		}
	}
	return math.MaxUint32
}

// this code is based on https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package column

import (
	"github.com/give-a-mocha/DB2025/types"
)

// Column represents one attribute of a table schema.
// Integer and Float columns are fixed at four bytes. Varchar columns
// carry the declared length and are stored zero padded to it.
type Column struct {
	tabName      string
	columnName   string
	columnType   types.ColType
	fixedLength  uint32
	columnOffset uint32
	hasIndex     bool
}

func NewColumn(tabName string, name string, columnType types.ColType, length uint32, hasIndex bool) *Column {
	if columnType == types.Integer || columnType == types.Float {
		length = uint32(columnType.Size())
	}
	return &Column{tabName, name, columnType, length, 0, hasIndex}
}

func (c *Column) TabName() string {
	return c.tabName
}

func (c *Column) GetColumnName() string {
	return c.columnName
}

func (c *Column) GetType() types.ColType {
	return c.columnType
}

// FixedLength returns the column storage size in bytes.
func (c *Column) FixedLength() uint32 {
	return c.fixedLength
}

func (c *Column) GetOffset() uint32 {
	return c.columnOffset
}

func (c *Column) SetOffset(offset uint32) {
	c.columnOffset = offset
}

func (c *Column) HasIndex() bool {
	return c.hasIndex
}

func (c *Column) SetHasIndex(hasIndex bool) {
	c.hasIndex = hasIndex
}

// this code is based on https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package tuple

import (
	"github.com/give-a-mocha/DB2025/common"
	"github.com/give-a-mocha/DB2025/storage/page"
	"github.com/give-a-mocha/DB2025/storage/table/schema"
	"github.com/give-a-mocha/DB2025/types"
)

// Tuple is a fixed length record image. All columns live at the byte
// offsets their schema assigns, Varchar columns zero padded to the
// declared length.
type Tuple struct {
	rid  *page.RID
	data []byte
}

func NewTuple(rid *page.RID, data []byte) *Tuple {
	return &Tuple{rid, data}
}

// NewTupleFromSchema serializes values into a record image laid out
// per the schema.
func NewTupleFromSchema(values []types.Value, schema_ *schema.Schema) *Tuple {
	common.Assert(uint32(len(values)) == schema_.GetColumnCount(), "value count must match schema")

	data := make([]byte, schema_.Length())
	tuple_ := &Tuple{nil, data}
	for i, value := range values {
		tuple_.SetValue(schema_, uint32(i), value)
	}
	return tuple_
}

// GetValue deserializes the column at colIndex.
func (t *Tuple) GetValue(schema_ *schema.Schema, colIndex uint32) types.Value {
	col := schema_.GetColumn(colIndex)
	offset := col.GetOffset()
	return *types.NewValueFromBytes(t.data[offset:offset+col.FixedLength()], col.GetType())
}

// SetValue overwrites the column at colIndex in place. Varchar values
// shorter than the column length are zero padded.
func (t *Tuple) SetValue(schema_ *schema.Schema, colIndex uint32, value types.Value) {
	col := schema_.GetColumn(colIndex)
	offset := col.GetOffset()
	serialized := value.Serialize()
	common.Assert(uint32(len(serialized)) <= col.FixedLength(), "value does not fit the column")

	for i := uint32(0); i < col.FixedLength(); i++ {
		t.data[offset+i] = 0
	}
	copy(t.data[offset:], serialized)
}

func (t *Tuple) Data() []byte {
	return t.data
}

func (t *Tuple) Size() uint32 {
	return uint32(len(t.data))
}

func (t *Tuple) GetRID() *page.RID {
	return t.rid
}

func (t *Tuple) SetRID(rid *page.RID) {
	t.rid = rid
}

// Copy returns a tuple with its own backing buffer.
func (t *Tuple) Copy() *Tuple {
	data := make([]byte, len(t.data))
	copy(data, t.data)
	var rid *page.RID
	if t.rid != nil {
		ridCopy := *t.rid
		rid = &ridCopy
	}
	return &Tuple{rid, data}
}

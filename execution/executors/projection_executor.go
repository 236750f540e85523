package executors

import (
	"github.com/give-a-mocha/DB2025/errors"
	"github.com/give-a-mocha/DB2025/execution/expression"
	"github.com/give-a-mocha/DB2025/storage/table/column"
	"github.com/give-a-mocha/DB2025/storage/table/schema"
	"github.com/give-a-mocha/DB2025/storage/tuple"
)

// ProjectionExecutor narrows the child's tuples to the selected
// columns, repacked contiguously in selection order.
type ProjectionExecutor struct {
	ctx       *ExecutorContext
	child     Executor
	selCols   []expression.TabCol
	selIdxs   []uint32
	outSchema *schema.Schema
}

func NewProjectionExecutor(ctx *ExecutorContext, child Executor, selCols []expression.TabCol) *ProjectionExecutor {
	return &ProjectionExecutor{ctx: ctx, child: child, selCols: selCols}
}

func (e *ProjectionExecutor) Begin() error {
	childSchema, err := e.child.Schema()
	if err != nil {
		return err
	}

	e.selIdxs = make([]uint32, 0, len(e.selCols))
	outColumns := make([]*column.Column, 0, len(e.selCols))
	for _, selCol := range e.selCols {
		colIdx, err := expression.GetColIndex(childSchema, selCol)
		if err != nil {
			return err
		}
		e.selIdxs = append(e.selIdxs, colIdx)

		copied := *childSchema.GetColumn(colIdx)
		outColumns = append(outColumns, &copied)
	}
	e.outSchema = schema.NewSchema(outColumns)

	return e.child.Begin()
}

func (e *ProjectionExecutor) Advance() error {
	return e.child.Advance()
}

func (e *ProjectionExecutor) End() bool {
	return e.child.End()
}

func (e *ProjectionExecutor) Next() (*tuple.Tuple, error) {
	childSchema, err := e.child.Schema()
	if err != nil {
		return nil, err
	}
	childTuple, err := e.child.Next()
	if err != nil {
		return nil, err
	}

	data := make([]byte, e.outSchema.Length())
	for i, colIdx := range e.selIdxs {
		srcCol := childSchema.GetColumn(colIdx)
		dstCol := e.outSchema.GetColumn(uint32(i))
		copy(data[dstCol.GetOffset():dstCol.GetOffset()+dstCol.FixedLength()],
			childTuple.Data()[srcCol.GetOffset():srcCol.GetOffset()+srcCol.FixedLength()])
	}

	out := tuple.NewTuple(nil, data)
	out.SetRID(childTuple.GetRID())
	return out, nil
}

func (e *ProjectionExecutor) TupleLen() uint32 {
	return e.outSchema.Length()
}

func (e *ProjectionExecutor) Schema() (*schema.Schema, error) {
	if e.outSchema == nil {
		return nil, errors.ErrInternal
	}
	return e.outSchema, nil
}

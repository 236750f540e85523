package executors

import (
	"sort"

	"github.com/give-a-mocha/DB2025/errors"
	"github.com/give-a-mocha/DB2025/execution/expression"
	"github.com/give-a-mocha/DB2025/storage/table/schema"
	"github.com/give-a-mocha/DB2025/storage/tuple"
)

// SortExecutor materializes the child's output and orders it on one
// key column. The sort is stable, so tuples with equal keys keep the
// child's order.
type SortExecutor struct {
	ctx     *ExecutorContext
	child   Executor
	sortCol expression.TabCol
	isDesc  bool
	tuples  []*tuple.Tuple
	curIdx  int
}

func NewSortExecutor(ctx *ExecutorContext, child Executor, sortCol expression.TabCol, isDesc bool) *SortExecutor {
	return &SortExecutor{ctx: ctx, child: child, sortCol: sortCol, isDesc: isDesc}
}

func (e *SortExecutor) Begin() error {
	if err := e.child.Begin(); err != nil {
		return err
	}
	childSchema, err := e.child.Schema()
	if err != nil {
		return err
	}
	colIdx, err := expression.GetColIndex(childSchema, e.sortCol)
	if err != nil {
		return err
	}

	e.tuples = make([]*tuple.Tuple, 0)
	for !e.child.End() {
		t, err := e.child.Next()
		if err != nil {
			return err
		}
		e.tuples = append(e.tuples, t.Copy())
		if err := e.child.Advance(); err != nil {
			return err
		}
	}

	var cmpErr error
	sort.SliceStable(e.tuples, func(i, j int) bool {
		lhs := e.tuples[i].GetValue(childSchema, colIdx)
		rhs := e.tuples[j].GetValue(childSchema, colIdx)
		cmp, err := lhs.Compare(rhs)
		if err != nil && cmpErr == nil {
			cmpErr = err
		}
		if e.isDesc {
			return cmp > 0
		}
		return cmp < 0
	})
	if cmpErr != nil {
		return cmpErr
	}

	e.curIdx = 0
	return nil
}

func (e *SortExecutor) Advance() error {
	if e.tuples == nil {
		return errors.ErrInternal
	}
	e.curIdx++
	return nil
}

func (e *SortExecutor) End() bool {
	return e.curIdx >= len(e.tuples)
}

func (e *SortExecutor) Next() (*tuple.Tuple, error) {
	if e.End() {
		return nil, errors.ErrInternal
	}
	return e.tuples[e.curIdx].Copy(), nil
}

func (e *SortExecutor) TupleLen() uint32 {
	return e.child.TupleLen()
}

func (e *SortExecutor) Schema() (*schema.Schema, error) {
	return e.child.Schema()
}

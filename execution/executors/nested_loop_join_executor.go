package executors

import (
	"github.com/give-a-mocha/DB2025/errors"
	"github.com/give-a-mocha/DB2025/execution/expression"
	"github.com/give-a-mocha/DB2025/storage/table/schema"
	"github.com/give-a-mocha/DB2025/storage/tuple"
)

// NestedLoopJoinExecutor joins two children by scanning the right side
// once per left tuple. The cursor always rests on a joined tuple that
// satisfies the join conditions; the search for the next match is
// fused into Begin and Advance.
type NestedLoopJoinExecutor struct {
	ctx          *ExecutorContext
	left         Executor
	right        Executor
	conds        []expression.Condition
	joinedSchema *schema.Schema
	currentTuple *tuple.Tuple
	isEnd        bool
}

func NewNestedLoopJoinExecutor(ctx *ExecutorContext, left Executor, right Executor, conds []expression.Condition) *NestedLoopJoinExecutor {
	return &NestedLoopJoinExecutor{ctx: ctx, left: left, right: right, conds: conds}
}

func (e *NestedLoopJoinExecutor) Begin() error {
	if err := e.left.Begin(); err != nil {
		return err
	}
	if err := e.right.Begin(); err != nil {
		return err
	}

	leftSchema, err := e.left.Schema()
	if err != nil {
		return err
	}
	rightSchema, err := e.right.Schema()
	if err != nil {
		return err
	}
	e.joinedSchema = schema.NewJoinedSchema(leftSchema, rightSchema)

	return e.findMatch()
}

func (e *NestedLoopJoinExecutor) Advance() error {
	if e.isEnd {
		return nil
	}
	if err := e.right.Advance(); err != nil {
		return err
	}
	return e.findMatch()
}

// findMatch walks the cross product from the current child positions
// until a joined tuple satisfies the conditions.
func (e *NestedLoopJoinExecutor) findMatch() error {
	for !e.left.End() {
		for !e.right.End() {
			candidate, err := e.buildJoinedTuple()
			if err != nil {
				return err
			}
			ok, err := expression.EvalConds(candidate, e.joinedSchema, e.conds)
			if err != nil {
				return err
			}
			if ok {
				e.currentTuple = candidate
				return nil
			}
			if err := e.right.Advance(); err != nil {
				return err
			}
		}

		if err := e.left.Advance(); err != nil {
			return err
		}
		if e.left.End() {
			break
		}
		if err := e.right.Begin(); err != nil {
			return err
		}
	}

	e.currentTuple = nil
	e.isEnd = true
	return nil
}

func (e *NestedLoopJoinExecutor) buildJoinedTuple() (*tuple.Tuple, error) {
	leftTuple, err := e.left.Next()
	if err != nil {
		return nil, err
	}
	rightTuple, err := e.right.Next()
	if err != nil {
		return nil, err
	}

	data := make([]byte, e.joinedSchema.Length())
	copy(data, leftTuple.Data())
	copy(data[leftTuple.Size():], rightTuple.Data())
	return tuple.NewTuple(nil, data), nil
}

func (e *NestedLoopJoinExecutor) End() bool {
	return e.isEnd
}

func (e *NestedLoopJoinExecutor) Next() (*tuple.Tuple, error) {
	if e.currentTuple == nil {
		return nil, errors.ErrInternal
	}
	return e.currentTuple, nil
}

func (e *NestedLoopJoinExecutor) TupleLen() uint32 {
	return e.joinedSchema.Length()
}

func (e *NestedLoopJoinExecutor) Schema() (*schema.Schema, error) {
	if e.joinedSchema == nil {
		return nil, errors.ErrInternal
	}
	return e.joinedSchema, nil
}

package expression

import (
	"math"

	"github.com/give-a-mocha/DB2025/errors"
	"github.com/give-a-mocha/DB2025/storage/table/schema"
	"github.com/give-a-mocha/DB2025/storage/tuple"
	"github.com/give-a-mocha/DB2025/types"
)

type CompOp int32

const (
	OpEq CompOp = iota
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe
)

// TabCol names a column, optionally qualified with its table.
type TabCol struct {
	TabName string
	ColName string
}

// Condition is one comparison of the form column op value or
// column op column.
type Condition struct {
	LhsCol   TabCol
	Op       CompOp
	IsRhsVal bool
	RhsCol   TabCol
	RhsVal   types.Value
}

// SetClause assigns a literal to a column in an UPDATE.
type SetClause struct {
	Lhs TabCol
	Rhs types.Value
}

// GetColIndex resolves a column reference against a schema.
func GetColIndex(schema_ *schema.Schema, target TabCol) (uint32, error) {
	colIdx := schema_.GetColIndex(target.TabName, target.ColName)
	if colIdx == math.MaxUint32 {
		return 0, errors.ErrColumnNotFound
	}
	return colIdx, nil
}

// EvalCond evaluates one condition against a tuple.
func EvalCond(t *tuple.Tuple, schema_ *schema.Schema, cond Condition) (bool, error) {
	lhsIdx, err := GetColIndex(schema_, cond.LhsCol)
	if err != nil {
		return false, err
	}
	lhs := t.GetValue(schema_, lhsIdx)

	var rhs types.Value
	if cond.IsRhsVal {
		rhs = cond.RhsVal
	} else {
		rhsIdx, err := GetColIndex(schema_, cond.RhsCol)
		if err != nil {
			return false, err
		}
		rhs = t.GetValue(schema_, rhsIdx)
	}

	cmp, err := lhs.Compare(rhs)
	if err != nil {
		return false, err
	}

	switch cond.Op {
	case OpEq:
		return cmp == 0, nil
	case OpNe:
		return cmp != 0, nil
	case OpLt:
		return cmp < 0, nil
	case OpGt:
		return cmp > 0, nil
	case OpLe:
		return cmp <= 0, nil
	case OpGe:
		return cmp >= 0, nil
	default:
		return false, errors.ErrInternal
	}
}

// EvalConds evaluates a conjunction of conditions, stopping at the
// first that does not hold.
func EvalConds(t *tuple.Tuple, schema_ *schema.Schema, conds []Condition) (bool, error) {
	for _, cond := range conds {
		ok, err := EvalCond(t, schema_, cond)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

package executors

import (
	"github.com/give-a-mocha/DB2025/catalog"
	"github.com/give-a-mocha/DB2025/errors"
	"github.com/give-a-mocha/DB2025/execution/expression"
	"github.com/give-a-mocha/DB2025/storage/mvcc"
	"github.com/give-a-mocha/DB2025/storage/page"
	"github.com/give-a-mocha/DB2025/storage/table/schema"
	"github.com/give-a-mocha/DB2025/storage/tuple"
	"github.com/give-a-mocha/DB2025/types"
)

const ErrNoOutputSchema = errors.Error("update executor does not produce an output schema")

// UpdateExecutor rewrites the given records in place with the set
// clauses. It produces no tuples: one Next call performs every update,
// keeping the table's indexes and version chains in step.
type UpdateExecutor struct {
	ctx        *ExecutorContext
	tableMeta  *catalog.TableMetadata
	setClauses []expression.SetClause
	rids       []page.RID
	done       bool
}

func NewUpdateExecutor(ctx *ExecutorContext, tableMeta *catalog.TableMetadata, setClauses []expression.SetClause, rids []page.RID) *UpdateExecutor {
	return &UpdateExecutor{ctx: ctx, tableMeta: tableMeta, setClauses: setClauses, rids: rids}
}

func (e *UpdateExecutor) Begin() error {
	// set clause targets are resolved up front so a bad column name
	// fails before any record is touched
	schema_ := e.tableMeta.Schema()
	for _, clause := range e.setClauses {
		if _, err := expression.GetColIndex(schema_, clause.Lhs); err != nil {
			return err
		}
	}
	return nil
}

func (e *UpdateExecutor) Advance() error {
	e.done = true
	return nil
}

func (e *UpdateExecutor) End() bool {
	return e.done
}

func (e *UpdateExecutor) Next() (*tuple.Tuple, error) {
	if e.done {
		return nil, errors.ErrInternal
	}
	e.done = true

	for _, rid := range e.rids {
		if err := e.updateRecord(rid); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func (e *UpdateExecutor) updateRecord(rid page.RID) error {
	fh := e.tableMeta.FileHandle()
	schema_ := e.tableMeta.Schema()
	txn := e.ctx.GetTransaction()

	oldData, err := fh.GetRecord(rid, txn)
	if err != nil {
		return err
	}
	ridCopy := rid
	oldTuple := tuple.NewTuple(&ridCopy, oldData)

	versionMgr := e.tableMeta.GetVersionManager()
	if txn != nil {
		meta := versionMgr.GetTupleMeta(rid)
		if mvcc.IsWriteWriteConflict(meta.Ts, txn) {
			return mvcc.ErrWriteWriteConflict
		}
	}

	newTuple := oldTuple.Copy()
	modifiedFields := make([]bool, schema_.GetColumnCount())
	for _, clause := range e.setClauses {
		colIdx, err := expression.GetColIndex(schema_, clause.Lhs)
		if err != nil {
			return err
		}

		value := clause.Rhs
		colType := schema_.GetColumn(colIdx).GetType()
		if value.ValueType() != colType {
			value, err = value.CastTo(colType)
			if err != nil {
				return err
			}
		}
		newTuple.SetValue(schema_, colIdx, value)
		modifiedFields[colIdx] = true
	}

	for _, indexInfo := range e.tableMeta.GetIndexes() {
		indexInfo.GetIndex().DeleteEntry(indexInfo.GetMetadata().BuildKey(oldTuple), rid)
	}

	if err := fh.UpdateRecord(rid, newTuple.Data(), txn); err != nil {
		return err
	}

	for _, indexInfo := range e.tableMeta.GetIndexes() {
		indexInfo.GetIndex().InsertEntry(indexInfo.GetMetadata().BuildKey(newTuple), rid)
	}

	if txn != nil {
		oldValues := make([]types.Value, 0, len(e.setClauses))
		for colIdx, modified := range modifiedFields {
			if modified {
				oldValues = append(oldValues, oldTuple.GetValue(schema_, uint32(colIdx)))
			}
		}
		versionMgr.AppendUndoLog(rid, mvcc.UndoLog{
			ModifiedFields: modifiedFields,
			Values:         oldValues,
			Ts:             txn.GetStartTS(),
		})
		versionMgr.SetTupleMeta(rid, mvcc.TupleMeta{Ts: txn.GetStartTS()})
	}

	return nil
}

func (e *UpdateExecutor) TupleLen() uint32 {
	return 0
}

func (e *UpdateExecutor) Schema() (*schema.Schema, error) {
	return nil, ErrNoOutputSchema
}

package executors

import (
	"github.com/give-a-mocha/DB2025/catalog"
	"github.com/give-a-mocha/DB2025/errors"
	"github.com/give-a-mocha/DB2025/execution/expression"
	"github.com/give-a-mocha/DB2025/storage/page"
	"github.com/give-a-mocha/DB2025/storage/record"
	"github.com/give-a-mocha/DB2025/storage/table/schema"
	"github.com/give-a-mocha/DB2025/storage/tuple"
)

// SeqScanExecutor walks a table in record order and produces the
// tuples that satisfy all pushed down conditions. When the calling
// transaction carries a snapshot the version chains interpose and each
// record is served at the snapshot timestamp.
type SeqScanExecutor struct {
	ctx          *ExecutorContext
	tableMeta    *catalog.TableMetadata
	conds        []expression.Condition
	scan         *record.Scan
	currentTuple *tuple.Tuple
	isEnd        bool
}

func NewSeqScanExecutor(ctx *ExecutorContext, tableMeta *catalog.TableMetadata, conds []expression.Condition) *SeqScanExecutor {
	return &SeqScanExecutor{ctx: ctx, tableMeta: tableMeta, conds: conds}
}

func (e *SeqScanExecutor) Begin() error {
	e.scan = record.NewScan(e.tableMeta.FileHandle())
	return e.seek()
}

func (e *SeqScanExecutor) Advance() error {
	if e.scan == nil {
		return errors.ErrInternal
	}
	if e.scan.End() {
		e.isEnd = true
		return nil
	}
	e.scan.Next()
	return e.seek()
}

// seek moves the underlying scan forward to the next record that is
// visible and satisfies the conditions.
func (e *SeqScanExecutor) seek() error {
	schema_ := e.tableMeta.Schema()
	for !e.scan.End() {
		t, visible, err := e.fetchVisible(e.scan.RID())
		if err != nil {
			return err
		}
		if visible {
			ok, err := expression.EvalConds(t, schema_, e.conds)
			if err != nil {
				return err
			}
			if ok {
				e.currentTuple = t
				return nil
			}
		}
		e.scan.Next()
	}

	e.currentTuple = nil
	e.isEnd = true
	return nil
}

func (e *SeqScanExecutor) fetchVisible(rid page.RID) (*tuple.Tuple, bool, error) {
	data, err := e.tableMeta.FileHandle().GetRecord(rid, e.ctx.GetTransaction())
	if err != nil {
		return nil, false, err
	}
	ridCopy := rid
	base := tuple.NewTuple(&ridCopy, data)

	txn := e.ctx.GetTransaction()
	if txn == nil {
		return base, true, nil
	}

	visibleTuple, visible := e.tableMeta.GetVersionManager().GetVisibleTuple(rid, base, txn.GetStartTS(), e.tableMeta.Schema())
	if !visible {
		return nil, false, nil
	}
	visibleTuple.SetRID(&ridCopy)
	return visibleTuple, true, nil
}

func (e *SeqScanExecutor) End() bool {
	return e.isEnd
}

func (e *SeqScanExecutor) Next() (*tuple.Tuple, error) {
	if e.currentTuple == nil {
		return nil, errors.ErrInternal
	}
	return e.currentTuple, nil
}

func (e *SeqScanExecutor) TupleLen() uint32 {
	return e.tableMeta.Schema().Length()
}

func (e *SeqScanExecutor) Schema() (*schema.Schema, error) {
	return e.tableMeta.Schema(), nil
}

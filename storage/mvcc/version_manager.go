package mvcc

import (
	"github.com/sasha-s/go-deadlock"

	"github.com/give-a-mocha/DB2025/errors"
	"github.com/give-a-mocha/DB2025/storage/access"
	"github.com/give-a-mocha/DB2025/storage/page"
	"github.com/give-a-mocha/DB2025/storage/table/schema"
	"github.com/give-a-mocha/DB2025/storage/tuple"
	"github.com/give-a-mocha/DB2025/types"
)

const ErrWriteWriteConflict = errors.Error("write-write conflict")

// IsWriteWriteConflict reports whether a write to a tuple stamped
// tupleTs conflicts with txn: the tuple was rewritten after the
// transaction took its snapshot.
func IsWriteWriteConflict(tupleTs types.Timestamp, txn *access.Transaction) bool {
	return tupleTs > txn.GetStartTS()
}

type versionChain struct {
	meta TupleMeta
	// undo entries in append order, oldest first
	logs []UndoLog
}

// VersionManager keeps the version metadata and undo chains of the
// records of one table, keyed by RID.
type VersionManager struct {
	chains  map[page.RID]*versionChain
	rwMutex deadlock.RWMutex
}

func NewVersionManager() *VersionManager {
	return &VersionManager{chains: make(map[page.RID]*versionChain)}
}

// GetTupleMeta returns the version stamp of the record. A record no
// writer has touched yet reports timestamp zero and not deleted.
func (v *VersionManager) GetTupleMeta(rid page.RID) TupleMeta {
	v.rwMutex.RLock()
	defer v.rwMutex.RUnlock()

	if chain, ok := v.chains[rid]; ok {
		return chain.meta
	}
	return TupleMeta{}
}

func (v *VersionManager) SetTupleMeta(rid page.RID, meta TupleMeta) {
	v.rwMutex.Lock()
	defer v.rwMutex.Unlock()

	v.chain(rid).meta = meta
}

// AppendUndoLog links an undo entry to the record's chain.
func (v *VersionManager) AppendUndoLog(rid page.RID, undoLog UndoLog) {
	v.rwMutex.Lock()
	defer v.rwMutex.Unlock()

	chain := v.chain(rid)
	chain.logs = append(chain.logs, undoLog)
}

func (v *VersionManager) chain(rid page.RID) *versionChain {
	chain, ok := v.chains[rid]
	if !ok {
		chain = &versionChain{}
		v.chains[rid] = chain
	}
	return chain
}

// GetVisibleTuple returns the version of the record visible at readTs,
// rolling base back through the undo chain when the newest image is
// too young. The second return value is false when no version is
// visible at readTs.
func (v *VersionManager) GetVisibleTuple(rid page.RID, base *tuple.Tuple, readTs types.Timestamp, schema_ *schema.Schema) (*tuple.Tuple, bool) {
	v.rwMutex.RLock()
	defer v.rwMutex.RUnlock()

	chain, ok := v.chains[rid]
	if !ok {
		return base.Copy(), true
	}

	if chain.meta.Ts <= readTs {
		if chain.meta.IsDeleted {
			return nil, false
		}
		return base.Copy(), true
	}

	// walk back through the entries younger than the snapshot,
	// newest first
	undoLogs := make([]UndoLog, 0, len(chain.logs))
	for i := len(chain.logs) - 1; i >= 0; i-- {
		if chain.logs[i].Ts > readTs {
			undoLogs = append(undoLogs, chain.logs[i])
		}
	}
	if len(undoLogs) == 0 {
		return nil, false
	}

	// the newest entry undoes the write recorded in meta, the delete
	// included; liveness at readTs comes from the chain, so the meta
	// passed down must not carry the delete mark
	return Reconstruct(schema_, base, TupleMeta{Ts: chain.meta.Ts}, undoLogs)
}

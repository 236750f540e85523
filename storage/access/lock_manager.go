// this code is based on https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package access

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sasha-s/go-deadlock"

	"github.com/give-a-mocha/DB2025/errors"
	"github.com/give-a-mocha/DB2025/storage/page"
	"github.com/give-a-mocha/DB2025/types"
)

const ErrLockConflict = errors.Error("lock request conflicts with a lock held by another transaction")

type LockDataType int32

const (
	LockDataTypeTable LockDataType = iota
	LockDataTypeRecord
)

// LockDataID names one lockable unit, either a whole table file or a
// single record in it.
type LockDataID struct {
	fileID types.FileID
	rid    page.RID
	dtype  LockDataType
}

func newTableLockID(fileID types.FileID) LockDataID {
	return LockDataID{fileID: fileID, dtype: LockDataTypeTable}
}

func newRecordLockID(fileID types.FileID, rid page.RID) LockDataID {
	return LockDataID{fileID: fileID, rid: rid, dtype: LockDataTypeRecord}
}

// LockManager hands out shared and exclusive locks in no-wait mode:
// a request that cannot be granted immediately fails instead of
// blocking. Requests are re-entrant, and a transaction that is the
// sole shared holder may upgrade to exclusive.
type LockManager struct {
	sharedHolders   map[LockDataID]mapset.Set[types.TxnID]
	exclusiveHolder map[LockDataID]types.TxnID
	mutex           deadlock.Mutex
}

func NewLockManager() *LockManager {
	return &LockManager{
		sharedHolders:   make(map[LockDataID]mapset.Set[types.TxnID]),
		exclusiveHolder: make(map[LockDataID]types.TxnID),
	}
}

func (l *LockManager) LockSharedOnTable(txn *Transaction, fileID types.FileID) bool {
	return l.lockShared(txn, newTableLockID(fileID))
}

func (l *LockManager) LockExclusiveOnTable(txn *Transaction, fileID types.FileID) bool {
	return l.lockExclusive(txn, newTableLockID(fileID))
}

func (l *LockManager) LockSharedOnRecord(txn *Transaction, fileID types.FileID, rid page.RID) bool {
	return l.lockShared(txn, newRecordLockID(fileID, rid))
}

func (l *LockManager) LockExclusiveOnRecord(txn *Transaction, fileID types.FileID, rid page.RID) bool {
	return l.lockExclusive(txn, newRecordLockID(fileID, rid))
}

func (l *LockManager) lockShared(txn *Transaction, lockID LockDataID) bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	txnID := txn.GetTransactionID()
	if holder, ok := l.exclusiveHolder[lockID]; ok {
		return holder == txnID
	}

	holders, ok := l.sharedHolders[lockID]
	if !ok {
		holders = mapset.NewSet[types.TxnID]()
		l.sharedHolders[lockID] = holders
	}
	holders.Add(txnID)
	return true
}

func (l *LockManager) lockExclusive(txn *Transaction, lockID LockDataID) bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	txnID := txn.GetTransactionID()
	if holder, ok := l.exclusiveHolder[lockID]; ok {
		return holder == txnID
	}

	if holders, ok := l.sharedHolders[lockID]; ok && holders.Cardinality() > 0 {
		// upgrade is allowed only for the sole shared holder
		if holders.Cardinality() != 1 || !holders.Contains(txnID) {
			return false
		}
		holders.Remove(txnID)
	}

	l.exclusiveHolder[lockID] = txnID
	return true
}

// UnlockAll releases every lock the transaction holds.
func (l *LockManager) UnlockAll(txn *Transaction) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	txnID := txn.GetTransactionID()
	for lockID, holders := range l.sharedHolders {
		holders.Remove(txnID)
		if holders.Cardinality() == 0 {
			delete(l.sharedHolders, lockID)
		}
	}
	for lockID, holder := range l.exclusiveHolder {
		if holder == txnID {
			delete(l.exclusiveHolder, lockID)
		}
	}
}

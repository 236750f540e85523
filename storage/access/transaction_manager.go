// this code is based on https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package access

import (
	"github.com/sasha-s/go-deadlock"

	"github.com/give-a-mocha/DB2025/types"
)

// TransactionManager issues transaction ids and snapshot timestamps
// and drives commit and abort.
type TransactionManager struct {
	nextTxnID types.TxnID
	nextTs    types.Timestamp
	lockMgr   *LockManager
	mutex     deadlock.Mutex
}

func NewTransactionManager(lockMgr *LockManager) *TransactionManager {
	return &TransactionManager{nextTxnID: 0, nextTs: 0, lockMgr: lockMgr}
}

// Begin starts a new transaction at the next snapshot timestamp.
func (t *TransactionManager) Begin() *Transaction {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.nextTxnID++
	t.nextTs++
	return NewTransaction(t.nextTxnID, t.nextTs)
}

func (t *TransactionManager) Commit(txn *Transaction) {
	txn.SetState(COMMITTED)
	t.lockMgr.UnlockAll(txn)
}

func (t *TransactionManager) Abort(txn *Transaction) {
	txn.SetState(ABORTED)
	t.lockMgr.UnlockAll(txn)
}

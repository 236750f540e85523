package executors

import (
	"github.com/give-a-mocha/DB2025/catalog"
	"github.com/give-a-mocha/DB2025/storage/access"
	"github.com/give-a-mocha/DB2025/storage/buffer"
)

// ExecutorContext carries the runtime a query plan executes against.
type ExecutorContext struct {
	catalog *catalog.Catalog
	bpm     *buffer.BufferPoolManager
	lockMgr *access.LockManager
	txn     *access.Transaction
}

func NewExecutorContext(c *catalog.Catalog, bpm *buffer.BufferPoolManager, lockMgr *access.LockManager, txn *access.Transaction) *ExecutorContext {
	return &ExecutorContext{c, bpm, lockMgr, txn}
}

func (e *ExecutorContext) GetCatalog() *catalog.Catalog {
	return e.catalog
}

func (e *ExecutorContext) GetBufferPoolManager() *buffer.BufferPoolManager {
	return e.bpm
}

func (e *ExecutorContext) GetLockManager() *access.LockManager {
	return e.lockMgr
}

func (e *ExecutorContext) GetTransaction() *access.Transaction {
	return e.txn
}

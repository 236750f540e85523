package access_test

import (
	"testing"

	"github.com/give-a-mocha/DB2025/storage/access"
	"github.com/give-a-mocha/DB2025/storage/page"
	testingpkg "github.com/give-a-mocha/DB2025/testing/testing_assert"
)

func TestSharedLocksCoexist(t *testing.T) {
	lockMgr := access.NewLockManager()
	txnMgr := access.NewTransactionManager(lockMgr)
	txn1 := txnMgr.Begin()
	txn2 := txnMgr.Begin()
	rid := *page.NewRID(1, 0)

	testingpkg.Assert(t, lockMgr.LockSharedOnRecord(txn1, 0, rid), "first shared lock must be granted")
	testingpkg.Assert(t, lockMgr.LockSharedOnRecord(txn2, 0, rid), "second shared lock must be granted")
	testingpkg.Assert(t, !lockMgr.LockExclusiveOnRecord(txn1, 0, rid), "upgrade must fail with two shared holders")
}

func TestExclusiveLockConflicts(t *testing.T) {
	lockMgr := access.NewLockManager()
	txnMgr := access.NewTransactionManager(lockMgr)
	txn1 := txnMgr.Begin()
	txn2 := txnMgr.Begin()
	rid := *page.NewRID(1, 0)

	testingpkg.Assert(t, lockMgr.LockExclusiveOnRecord(txn1, 0, rid), "exclusive lock must be granted")
	testingpkg.Assert(t, !lockMgr.LockSharedOnRecord(txn2, 0, rid), "shared request must fail against a foreign exclusive lock")
	testingpkg.Assert(t, !lockMgr.LockExclusiveOnRecord(txn2, 0, rid), "exclusive request must fail against a foreign exclusive lock")

	// requests are re-entrant for the holder
	testingpkg.Assert(t, lockMgr.LockExclusiveOnRecord(txn1, 0, rid), "re-request must be granted")
	testingpkg.Assert(t, lockMgr.LockSharedOnRecord(txn1, 0, rid), "shared request of the exclusive holder must be granted")
}

func TestUpgradeSoleSharedHolder(t *testing.T) {
	lockMgr := access.NewLockManager()
	txnMgr := access.NewTransactionManager(lockMgr)
	txn := txnMgr.Begin()
	rid := *page.NewRID(1, 0)

	testingpkg.Assert(t, lockMgr.LockSharedOnRecord(txn, 0, rid), "shared lock must be granted")
	testingpkg.Assert(t, lockMgr.LockExclusiveOnRecord(txn, 0, rid), "sole holder must upgrade")
}

func TestCommitReleasesLocks(t *testing.T) {
	lockMgr := access.NewLockManager()
	txnMgr := access.NewTransactionManager(lockMgr)
	txn1 := txnMgr.Begin()
	txn2 := txnMgr.Begin()
	rid := *page.NewRID(1, 0)

	testingpkg.Assert(t, lockMgr.LockExclusiveOnRecord(txn1, 0, rid), "exclusive lock must be granted")
	testingpkg.Assert(t, lockMgr.LockExclusiveOnTable(txn1, 0), "table lock must be granted")

	txnMgr.Commit(txn1)
	testingpkg.Equals(t, access.COMMITTED, txn1.GetState())

	testingpkg.Assert(t, lockMgr.LockExclusiveOnRecord(txn2, 0, rid), "lock must be free after commit")
	testingpkg.Assert(t, lockMgr.LockExclusiveOnTable(txn2, 0), "table lock must be free after commit")
}

func TestTableAndRecordLocksAreDistinct(t *testing.T) {
	lockMgr := access.NewLockManager()
	txnMgr := access.NewTransactionManager(lockMgr)
	txn1 := txnMgr.Begin()
	txn2 := txnMgr.Begin()

	testingpkg.Assert(t, lockMgr.LockExclusiveOnTable(txn1, 0), "table lock must be granted")
	testingpkg.Assert(t, lockMgr.LockExclusiveOnRecord(txn2, 0, *page.NewRID(1, 0)), "record lock is a different unit")
	testingpkg.Assert(t, lockMgr.LockExclusiveOnTable(txn2, 1), "another file is a different unit")
}

func TestBeginAssignsMonotonicTimestamps(t *testing.T) {
	txnMgr := access.NewTransactionManager(access.NewLockManager())
	txn1 := txnMgr.Begin()
	txn2 := txnMgr.Begin()

	testingpkg.Assert(t, txn2.GetStartTS() > txn1.GetStartTS(), "timestamps must increase")
	testingpkg.Assert(t, txn2.GetTransactionID() > txn1.GetTransactionID(), "transaction ids must increase")
}

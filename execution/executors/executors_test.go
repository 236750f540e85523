package executors_test

import (
	"testing"

	"github.com/give-a-mocha/DB2025/catalog"
	"github.com/give-a-mocha/DB2025/common"
	"github.com/give-a-mocha/DB2025/errors"
	"github.com/give-a-mocha/DB2025/execution/executors"
	"github.com/give-a-mocha/DB2025/execution/expression"
	"github.com/give-a-mocha/DB2025/storage/access"
	"github.com/give-a-mocha/DB2025/storage/buffer"
	"github.com/give-a-mocha/DB2025/storage/disk"
	"github.com/give-a-mocha/DB2025/storage/mvcc"
	"github.com/give-a-mocha/DB2025/storage/page"
	"github.com/give-a-mocha/DB2025/storage/record"
	"github.com/give-a-mocha/DB2025/storage/table/column"
	"github.com/give-a-mocha/DB2025/storage/table/schema"
	"github.com/give-a-mocha/DB2025/storage/tuple"
	testingpkg "github.com/give-a-mocha/DB2025/testing/testing_assert"
	"github.com/give-a-mocha/DB2025/types"
)

type testEnv struct {
	catalog *catalog.Catalog
	bpm     *buffer.BufferPoolManager
	lockMgr *access.LockManager
	txnMgr  *access.TransactionManager
}

func newTestEnv() *testEnv {
	dm := disk.NewDiskManagerTest()
	bpm := buffer.NewBufferPoolManager(common.BufferPoolSizeForTest, dm)
	lockMgr := access.NewLockManager()
	recordMgr := record.NewManager(dm, bpm, lockMgr)
	return &testEnv{
		catalog: catalog.NewCatalog(recordMgr),
		bpm:     bpm,
		lockMgr: lockMgr,
		txnMgr:  access.NewTransactionManager(lockMgr),
	}
}

func (env *testEnv) context(txn *access.Transaction) *executors.ExecutorContext {
	return executors.NewExecutorContext(env.catalog, env.bpm, env.lockMgr, txn)
}

func peopleSchema() *schema.Schema {
	return schema.NewSchema([]*column.Column{
		column.NewColumn("people", "id", types.Integer, 0, false),
		column.NewColumn("people", "name", types.Varchar, 8, false),
		column.NewColumn("people", "age", types.Integer, 0, false),
	})
}

func createPeopleTable(t *testing.T, env *testEnv) *catalog.TableMetadata {
	tableMeta, err := env.catalog.CreateTable("people", peopleSchema())
	testingpkg.Ok(t, err)

	rows := []struct {
		id   int32
		name string
		age  int32
	}{
		{1, "alice", 30},
		{2, "bob", 17},
		{3, "carol", 25},
		{4, "dave", 17},
	}
	for _, row := range rows {
		data := tuple.NewTupleFromSchema([]types.Value{
			types.NewInteger(row.id),
			types.NewVarchar(row.name),
			types.NewInteger(row.age),
		}, tableMeta.Schema()).Data()
		_, err := tableMeta.FileHandle().InsertRecord(data, nil)
		testingpkg.Ok(t, err)
	}
	return tableMeta
}

func collect(t *testing.T, exec executors.Executor) []*tuple.Tuple {
	testingpkg.Ok(t, exec.Begin())
	results := make([]*tuple.Tuple, 0)
	for !exec.End() {
		tuple_, err := exec.Next()
		testingpkg.Ok(t, err)
		results = append(results, tuple_)
		testingpkg.Ok(t, exec.Advance())
	}
	return results
}

func TestSeqScanWithPredicate(t *testing.T) {
	env := newTestEnv()
	tableMeta := createPeopleTable(t, env)

	scan := executors.NewSeqScanExecutor(env.context(nil), tableMeta, []expression.Condition{{
		LhsCol:   expression.TabCol{TabName: "people", ColName: "age"},
		Op:       expression.OpGe,
		IsRhsVal: true,
		RhsVal:   types.NewInteger(25),
	}})

	results := collect(t, scan)
	testingpkg.Equals(t, 2, len(results))
	schema_ := tableMeta.Schema()
	testingpkg.Equals(t, "alice", results[0].GetValue(schema_, 1).ToVarchar())
	testingpkg.Equals(t, "carol", results[1].GetValue(schema_, 1).ToVarchar())
}

func TestSeqScanWithoutPredicateVisitsEverything(t *testing.T) {
	env := newTestEnv()
	tableMeta := createPeopleTable(t, env)

	scan := executors.NewSeqScanExecutor(env.context(nil), tableMeta, nil)
	results := collect(t, scan)
	testingpkg.Equals(t, 4, len(results))
}

func TestProjectionRepacksColumns(t *testing.T) {
	env := newTestEnv()
	tableMeta := createPeopleTable(t, env)

	scan := executors.NewSeqScanExecutor(env.context(nil), tableMeta, nil)
	projection := executors.NewProjectionExecutor(env.context(nil), scan, []expression.TabCol{
		{TabName: "people", ColName: "age"},
		{TabName: "people", ColName: "name"},
	})

	results := collect(t, projection)
	testingpkg.Equals(t, 4, len(results))

	outSchema, err := projection.Schema()
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, uint32(2), outSchema.GetColumnCount())
	testingpkg.Equals(t, uint32(12), outSchema.Length())
	testingpkg.Equals(t, uint32(0), outSchema.GetColumn(0).GetOffset())
	testingpkg.Equals(t, uint32(4), outSchema.GetColumn(1).GetOffset())

	testingpkg.Equals(t, int32(30), results[0].GetValue(outSchema, 0).ToInteger())
	testingpkg.Equals(t, "alice", results[0].GetValue(outSchema, 1).ToVarchar())
}

func twoIntTable(t *testing.T, env *testEnv, name string, colName string, values []int32) *catalog.TableMetadata {
	schema_ := schema.NewSchema([]*column.Column{
		column.NewColumn(name, colName, types.Integer, 0, false),
	})
	tableMeta, err := env.catalog.CreateTable(name, schema_)
	testingpkg.Ok(t, err)

	for _, v := range values {
		data := tuple.NewTupleFromSchema([]types.Value{types.NewInteger(v)}, schema_).Data()
		_, err := tableMeta.FileHandle().InsertRecord(data, nil)
		testingpkg.Ok(t, err)
	}
	return tableMeta
}

func TestNestedLoopJoin(t *testing.T) {
	env := newTestEnv()
	leftMeta := twoIntTable(t, env, "l", "x", []int32{1, 2})
	rightMeta := twoIntTable(t, env, "r", "y", []int32{2, 3})

	join := executors.NewNestedLoopJoinExecutor(env.context(nil),
		executors.NewSeqScanExecutor(env.context(nil), leftMeta, nil),
		executors.NewSeqScanExecutor(env.context(nil), rightMeta, nil),
		[]expression.Condition{{
			LhsCol: expression.TabCol{TabName: "l", ColName: "x"},
			Op:     expression.OpEq,
			RhsCol: expression.TabCol{TabName: "r", ColName: "y"},
		}})

	results := collect(t, join)
	testingpkg.Equals(t, 1, len(results))

	joinedSchema, err := join.Schema()
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, uint32(2), joinedSchema.GetColumnCount())
	testingpkg.Equals(t, uint32(8), joinedSchema.Length())
	testingpkg.Equals(t, int32(2), results[0].GetValue(joinedSchema, 0).ToInteger())
	testingpkg.Equals(t, int32(2), results[0].GetValue(joinedSchema, 1).ToInteger())
}

func TestNestedLoopJoinCrossProduct(t *testing.T) {
	env := newTestEnv()
	leftMeta := twoIntTable(t, env, "l", "x", []int32{1, 2})
	rightMeta := twoIntTable(t, env, "r", "y", []int32{2, 3, 4})

	join := executors.NewNestedLoopJoinExecutor(env.context(nil),
		executors.NewSeqScanExecutor(env.context(nil), leftMeta, nil),
		executors.NewSeqScanExecutor(env.context(nil), rightMeta, nil),
		nil)

	results := collect(t, join)
	testingpkg.Equals(t, 6, len(results))
}

func TestSortAscendingAndDescending(t *testing.T) {
	env := newTestEnv()
	tableMeta := createPeopleTable(t, env)
	schema_ := tableMeta.Schema()
	ageCol := expression.TabCol{TabName: "people", ColName: "age"}

	asc := executors.NewSortExecutor(env.context(nil),
		executors.NewSeqScanExecutor(env.context(nil), tableMeta, nil), ageCol, false)
	results := collect(t, asc)
	testingpkg.Equals(t, 4, len(results))

	// ages 17, 17, 25, 30; equal keys keep scan order (bob before dave)
	testingpkg.Equals(t, "bob", results[0].GetValue(schema_, 1).ToVarchar())
	testingpkg.Equals(t, "dave", results[1].GetValue(schema_, 1).ToVarchar())
	testingpkg.Equals(t, "carol", results[2].GetValue(schema_, 1).ToVarchar())
	testingpkg.Equals(t, "alice", results[3].GetValue(schema_, 1).ToVarchar())

	desc := executors.NewSortExecutor(env.context(nil),
		executors.NewSeqScanExecutor(env.context(nil), tableMeta, nil), ageCol, true)
	results = collect(t, desc)
	testingpkg.Equals(t, "alice", results[0].GetValue(schema_, 1).ToVarchar())
	testingpkg.Equals(t, "bob", results[2].GetValue(schema_, 1).ToVarchar())
	testingpkg.Equals(t, "dave", results[3].GetValue(schema_, 1).ToVarchar())
}

func TestUpdateRewritesMatchingRecords(t *testing.T) {
	env := newTestEnv()
	tableMeta := createPeopleTable(t, env)
	schema_ := tableMeta.Schema()

	// collect the rids of the minors with a scan first
	scan := executors.NewSeqScanExecutor(env.context(nil), tableMeta, []expression.Condition{{
		LhsCol:   expression.TabCol{TabName: "people", ColName: "age"},
		Op:       expression.OpLt,
		IsRhsVal: true,
		RhsVal:   types.NewInteger(18),
	}})
	rids := make([]page.RID, 0)
	for _, tuple_ := range collect(t, scan) {
		rids = append(rids, *tuple_.GetRID())
	}
	testingpkg.Equals(t, 2, len(rids))

	// the set value is a FLOAT literal, coerced to the INT column
	update := executors.NewUpdateExecutor(env.context(nil), tableMeta, []expression.SetClause{{
		Lhs: expression.TabCol{TabName: "people", ColName: "age"},
		Rhs: types.NewFloat(18),
	}}, rids)

	testingpkg.Ok(t, update.Begin())
	testingpkg.Assert(t, !update.End(), "update must not report end before running")
	_, err := update.Next()
	testingpkg.Ok(t, err)
	testingpkg.Assert(t, update.End(), "update must report end after running")

	_, err = update.Schema()
	testingpkg.Equals(t, executors.ErrNoOutputSchema, err)
	testingpkg.Equals(t, uint32(0), update.TupleLen())

	check := executors.NewSeqScanExecutor(env.context(nil), tableMeta, []expression.Condition{{
		LhsCol:   expression.TabCol{TabName: "people", ColName: "age"},
		Op:       expression.OpLt,
		IsRhsVal: true,
		RhsVal:   types.NewInteger(18),
	}})
	testingpkg.Equals(t, 0, len(collect(t, check)))

	for _, rid := range rids {
		data, err := tableMeta.FileHandle().GetRecord(rid, nil)
		testingpkg.Ok(t, err)
		tuple_ := tuple.NewTuple(nil, data)
		testingpkg.Equals(t, int32(18), tuple_.GetValue(schema_, 2).ToInteger())
	}
}

func TestUpdateRejectsIncompatibleSetValue(t *testing.T) {
	env := newTestEnv()
	tableMeta := createPeopleTable(t, env)

	scan := executors.NewSeqScanExecutor(env.context(nil), tableMeta, nil)
	rids := make([]page.RID, 0)
	for _, tuple_ := range collect(t, scan) {
		rids = append(rids, *tuple_.GetRID())
	}

	update := executors.NewUpdateExecutor(env.context(nil), tableMeta, []expression.SetClause{{
		Lhs: expression.TabCol{TabName: "people", ColName: "age"},
		Rhs: types.NewVarchar("old"),
	}}, rids)
	testingpkg.Ok(t, update.Begin())
	_, err := update.Next()
	testingpkg.Equals(t, errors.ErrIncompatibleType, err)
}

func TestUpdateMaintainsIndexes(t *testing.T) {
	env := newTestEnv()
	tableMeta := createPeopleTable(t, env)
	schema_ := tableMeta.Schema()

	indexInfo, err := env.catalog.CreateIndex("people", "people_id_idx", []string{"id"})
	testingpkg.Ok(t, err)

	key := types.NewInteger(2).Serialize()
	rid, ok := indexInfo.GetIndex().GetRID(key)
	testingpkg.Assert(t, ok, "id 2 must be indexed after backfill")

	update := executors.NewUpdateExecutor(env.context(nil), tableMeta, []expression.SetClause{{
		Lhs: expression.TabCol{TabName: "people", ColName: "id"},
		Rhs: types.NewInteger(20),
	}}, []page.RID{rid})
	testingpkg.Ok(t, update.Begin())
	_, err = update.Next()
	testingpkg.Ok(t, err)

	_, ok = indexInfo.GetIndex().GetRID(key)
	testingpkg.Assert(t, !ok, "the old key must leave the index")

	newRid, ok := indexInfo.GetIndex().GetRID(types.NewInteger(20).Serialize())
	testingpkg.Assert(t, ok, "the new key must enter the index")
	testingpkg.Equals(t, rid, newRid)

	data, err := tableMeta.FileHandle().GetRecord(rid, nil)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, int32(20), tuple.NewTuple(nil, data).GetValue(schema_, 0).ToInteger())
}

func TestSnapshotReaderSeesPreUpdateVersion(t *testing.T) {
	env := newTestEnv()
	tableMeta := createPeopleTable(t, env)
	schema_ := tableMeta.Schema()

	reader := env.txnMgr.Begin()

	writer := env.txnMgr.Begin()
	scan := executors.NewSeqScanExecutor(env.context(nil), tableMeta, []expression.Condition{{
		LhsCol:   expression.TabCol{TabName: "people", ColName: "name"},
		Op:       expression.OpEq,
		IsRhsVal: true,
		RhsVal:   types.NewVarchar("alice"),
	}})
	results := collect(t, scan)
	testingpkg.Equals(t, 1, len(results))
	rid := *results[0].GetRID()

	update := executors.NewUpdateExecutor(env.context(writer), tableMeta, []expression.SetClause{{
		Lhs: expression.TabCol{TabName: "people", ColName: "age"},
		Rhs: types.NewInteger(31),
	}}, []page.RID{rid})
	testingpkg.Ok(t, update.Begin())
	_, err := update.Next()
	testingpkg.Ok(t, err)
	env.txnMgr.Commit(writer)

	// the snapshot predates the write, so the chain serves age 30
	readerScan := executors.NewSeqScanExecutor(env.context(reader), tableMeta, []expression.Condition{{
		LhsCol:   expression.TabCol{TabName: "people", ColName: "name"},
		Op:       expression.OpEq,
		IsRhsVal: true,
		RhsVal:   types.NewVarchar("alice"),
	}})
	results = collect(t, readerScan)
	testingpkg.Equals(t, 1, len(results))
	testingpkg.Equals(t, int32(30), results[0].GetValue(schema_, 2).ToInteger())

	// a fresh transaction sees the new value
	later := env.txnMgr.Begin()
	laterScan := executors.NewSeqScanExecutor(env.context(later), tableMeta, []expression.Condition{{
		LhsCol:   expression.TabCol{TabName: "people", ColName: "name"},
		Op:       expression.OpEq,
		IsRhsVal: true,
		RhsVal:   types.NewVarchar("alice"),
	}})
	results = collect(t, laterScan)
	testingpkg.Equals(t, 1, len(results))
	testingpkg.Equals(t, int32(31), results[0].GetValue(schema_, 2).ToInteger())
	env.txnMgr.Commit(reader)
	env.txnMgr.Commit(later)
}

func TestUpdateDetectsWriteWriteConflict(t *testing.T) {
	env := newTestEnv()
	tableMeta := createPeopleTable(t, env)

	scan := executors.NewSeqScanExecutor(env.context(nil), tableMeta, nil)
	results := collect(t, scan)
	rid := *results[0].GetRID()

	early := env.txnMgr.Begin()

	writer := env.txnMgr.Begin()
	update := executors.NewUpdateExecutor(env.context(writer), tableMeta, []expression.SetClause{{
		Lhs: expression.TabCol{TabName: "people", ColName: "age"},
		Rhs: types.NewInteger(99),
	}}, []page.RID{rid})
	testingpkg.Ok(t, update.Begin())
	_, err := update.Next()
	testingpkg.Ok(t, err)
	env.txnMgr.Commit(writer)

	// the earlier snapshot lost the race on this record
	conflicting := executors.NewUpdateExecutor(env.context(early), tableMeta, []expression.SetClause{{
		Lhs: expression.TabCol{TabName: "people", ColName: "age"},
		Rhs: types.NewInteger(1),
	}}, []page.RID{rid})
	testingpkg.Ok(t, conflicting.Begin())
	_, err = conflicting.Next()
	testingpkg.Equals(t, mvcc.ErrWriteWriteConflict, err)
	env.txnMgr.Abort(early)
}

// this code is based on https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package buffer

import (
	"testing"

	"github.com/give-a-mocha/DB2025/storage/disk"
	"github.com/give-a-mocha/DB2025/storage/page"
	testingpkg "github.com/give-a-mocha/DB2025/testing/testing_assert"
	"github.com/give-a-mocha/DB2025/types"
)

func TestBinaryDataRoundTrip(t *testing.T) {
	poolSize := uint32(10)
	dm := disk.NewDiskManagerTest()
	defer dm.ShutDown()

	testingpkg.Ok(t, dm.CreateFile("test.tbl"))
	fileID, err := dm.OpenFile("test.tbl")
	testingpkg.Ok(t, err)

	bpm := NewBufferPoolManager(poolSize, dm)

	page0 := bpm.NewPage(fileID)
	testingpkg.Assert(t, page0 != nil, "first NewPage must succeed")
	testingpkg.Equals(t, page.NewPageId(fileID, 0), page0.ID())

	// bytes covering the whole range, including zero
	binaryData := make([]byte, 256)
	for i := 0; i < 256; i++ {
		binaryData[i] = byte(i)
	}
	copy(page0.Data()[:], binaryData)
	testingpkg.Equals(t, binaryData, page0.Data()[:256])

	for i := uint32(1); i < poolSize; i++ {
		testingpkg.Assert(t, bpm.NewPage(fileID) != nil, "NewPage must succeed while frames remain")
	}
	for i := uint32(0); i < poolSize; i++ {
		testingpkg.Assert(t, bpm.NewPage(fileID) == nil, "NewPage must fail once all frames are pinned")
	}

	// unpin pages 0..4 dirty so new pages can evict them, writing
	// page 0 back to disk
	for pageNo := int32(0); pageNo < 5; pageNo++ {
		testingpkg.Ok(t, bpm.UnpinPage(page.NewPageId(fileID, types.PageID(pageNo)), true))
	}
	for i := 0; i < 5; i++ {
		testingpkg.Assert(t, bpm.NewPage(fileID) != nil, "NewPage must reuse unpinned frames")
	}

	fetched := bpm.FetchPage(page.NewPageId(fileID, 0))
	testingpkg.Assert(t, fetched != nil, "page 0 must be fetchable after eviction")
	testingpkg.Equals(t, binaryData, fetched.Data()[:256])
}

func TestUnpinAndVictimBookkeeping(t *testing.T) {
	dm := disk.NewDiskManagerTest()
	defer dm.ShutDown()

	testingpkg.Ok(t, dm.CreateFile("test.tbl"))
	fileID, err := dm.OpenFile("test.tbl")
	testingpkg.Ok(t, err)

	bpm := NewBufferPoolManager(3, dm)

	page0 := bpm.NewPage(fileID)
	page1 := bpm.NewPage(fileID)
	page2 := bpm.NewPage(fileID)
	testingpkg.Assert(t, page0 != nil && page1 != nil && page2 != nil, "pool must hold three pages")

	// a double fetch raises the pin count, so one unpin must not free
	// the frame
	fetched := bpm.FetchPage(page1.ID())
	testingpkg.Equals(t, 2, fetched.PinCount())
	testingpkg.Ok(t, bpm.UnpinPage(page1.ID(), false))
	testingpkg.Assert(t, bpm.NewPage(fileID) == nil, "page 1 is still pinned")

	testingpkg.Ok(t, bpm.UnpinPage(page1.ID(), false))
	testingpkg.Assert(t, bpm.NewPage(fileID) != nil, "the unpinned frame must be reusable")

	err = bpm.UnpinPage(page.NewPageId(fileID, 99), false)
	testingpkg.Nok(t, err)
}

// this code is based on https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package buffer

import (
	"github.com/sasha-s/go-deadlock"

	"github.com/give-a-mocha/DB2025/common"
	"github.com/give-a-mocha/DB2025/errors"
	"github.com/give-a-mocha/DB2025/storage/disk"
	"github.com/give-a-mocha/DB2025/storage/page"
	"github.com/give-a-mocha/DB2025/types"
)

// BufferPoolManager represents the buffer pool manager.
// Pages from every open file share one frame pool, keyed by
// the (file, page number) pair.
type BufferPoolManager struct {
	diskManager disk.DiskManager
	pages       []*page.Page
	replacer    *ClockReplacer
	freeList    []FrameID
	pageTable   map[page.PageId]FrameID
	mutex       deadlock.Mutex
}

// FetchPage fetches the requested page from the buffer pool.
func (b *BufferPoolManager) FetchPage(pageID page.PageId) *page.Page {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if frameID, ok := b.pageTable[pageID]; ok {
		pg := b.pages[frameID]
		pg.IncPinCount()
		b.replacer.Pin(frameID)
		return pg
	}

	frameID, err := b.getFrameID()
	if err != nil {
		return nil
	}

	data := make([]byte, common.PageSize)
	err = b.diskManager.ReadPage(pageID.GetFileID(), pageID.GetPageNo(), data)
	if err != nil {
		common.DbPrintf(common.DEBUG_INFO, "BPM::FetchPage ReadPage returned err %v. pageID:%v\n", err, pageID)
		b.freeList = append(b.freeList, *frameID)
		return nil
	}
	var pageData [common.PageSize]byte
	copy(pageData[:], data)
	pg := page.New(pageID, false, &pageData)
	b.pageTable[pageID] = *frameID
	b.pages[*frameID] = pg

	return pg
}

// UnpinPage unpins the target page from the buffer pool.
func (b *BufferPoolManager) UnpinPage(pageID page.PageId, isDirty bool) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if frameID, ok := b.pageTable[pageID]; ok {
		pg := b.pages[frameID]
		pg.DecPinCount()

		if pg.PinCount() <= 0 {
			b.replacer.Unpin(frameID)
		}

		if pg.IsDirty() || isDirty {
			pg.SetIsDirty(true)
		} else {
			pg.SetIsDirty(false)
		}

		return nil
	}

	return errors.Error("could not find page")
}

// FlushPage flushes the target page to disk.
func (b *BufferPoolManager) FlushPage(pageID page.PageId) bool {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	return b.flushPage(pageID)
}

func (b *BufferPoolManager) flushPage(pageID page.PageId) bool {
	if frameID, ok := b.pageTable[pageID]; ok {
		pg := b.pages[frameID]

		data := pg.Data()
		b.diskManager.WritePage(pageID.GetFileID(), pageID.GetPageNo(), data[:])
		pg.SetIsDirty(false)

		return true
	}
	return false
}

// NewPage allocates a new page in the given file and pins it into the pool.
func (b *BufferPoolManager) NewPage(fileID types.FileID) *page.Page {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	frameID, err := b.getFrameID()
	if err != nil {
		return nil
	}

	pageNo := b.diskManager.AllocatePage(fileID)
	if !pageNo.IsValid() {
		b.freeList = append(b.freeList, *frameID)
		return nil
	}
	pageID := page.NewPageId(fileID, pageNo)
	pg := page.NewEmpty(pageID)

	b.pageTable[pageID] = *frameID
	b.pages[*frameID] = pg

	return pg
}

// DeletePage deletes a page from the buffer pool.
func (b *BufferPoolManager) DeletePage(pageID page.PageId) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	var frameID FrameID
	var ok bool
	if frameID, ok = b.pageTable[pageID]; !ok {
		return nil
	}

	pg := b.pages[frameID]

	if pg.PinCount() > 0 {
		return errors.Error("pin count greater than 0")
	}
	delete(b.pageTable, pg.ID())
	b.replacer.Pin(frameID)
	b.pages[frameID] = nil
	b.freeList = append(b.freeList, frameID)

	return nil
}

// FlushAllPages flushes all the pages in the buffer pool to disk.
func (b *BufferPoolManager) FlushAllPages() {
	pageIDs := make([]page.PageId, 0)
	b.mutex.Lock()
	for pageID := range b.pageTable {
		pageIDs = append(pageIDs, pageID)
	}
	b.mutex.Unlock()

	for _, pageID := range pageIDs {
		b.FlushPage(pageID)
	}
}

// FlushAllDirtyPagesOfFile flushes the dirty pages belonging to one file.
// It is called when a file is closed so the on-disk image is current.
func (b *BufferPoolManager) FlushAllDirtyPagesOfFile(fileID types.FileID) bool {
	pageIDs := make([]page.PageId, 0)
	b.mutex.Lock()
	for pageID := range b.pageTable {
		if pageID.GetFileID() == fileID {
			pageIDs = append(pageIDs, pageID)
		}
	}
	b.mutex.Unlock()

	for _, pageID := range pageIDs {
		b.mutex.Lock()
		if frameID, ok := b.pageTable[pageID]; ok {
			if b.pages[frameID].IsDirty() {
				b.flushPage(pageID)
			}
		}
		b.mutex.Unlock()
	}

	return true
}

func (b *BufferPoolManager) getFrameID() (*FrameID, error) {
	if len(b.freeList) > 0 {
		frameID, newFreeList := b.freeList[0], b.freeList[1:]
		b.freeList = newFreeList

		return &frameID, nil
	}

	victim := b.replacer.Victim()
	if victim == nil {
		return nil, errors.Error("no frame available for eviction")
	}

	currentPage := b.pages[*victim]
	if currentPage != nil {
		if currentPage.PinCount() > 0 {
			panic("BPM::getFrameID pin count of page to be evicted is not zero!!!")
		}
		delete(b.pageTable, currentPage.ID())

		if currentPage.IsDirty() {
			data := currentPage.Data()
			b.diskManager.WritePage(currentPage.ID().GetFileID(), currentPage.ID().GetPageNo(), data[:])
		}
	}

	return victim, nil
}

// NewBufferPoolManager returns a new empty buffer pool manager.
func NewBufferPoolManager(poolSize uint32, diskManager disk.DiskManager) *BufferPoolManager {
	freeList := make([]FrameID, poolSize)
	pages := make([]*page.Page, poolSize)
	for i := uint32(0); i < poolSize; i++ {
		freeList[i] = FrameID(i)
		pages[i] = nil
	}

	replacer := NewClockReplacer(poolSize)
	return &BufferPoolManager{diskManager, pages, replacer, freeList, make(map[page.PageId]FrameID), deadlock.Mutex{}}
}

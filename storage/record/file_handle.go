package record

import (
	"github.com/give-a-mocha/DB2025/common"
	"github.com/give-a-mocha/DB2025/errors"
	"github.com/give-a-mocha/DB2025/storage/access"
	"github.com/give-a-mocha/DB2025/storage/buffer"
	"github.com/give-a-mocha/DB2025/storage/page"
	"github.com/give-a-mocha/DB2025/types"
)

// FileHandle operates on one open record file. Records are fixed
// length, addressed by RID, and pages with free slots are linked
// through the header free list.
//
// A nil txn skips lock acquisition. All record locks are taken in
// no-wait mode and a denied request surfaces as ErrLockConflict.
type FileHandle struct {
	fileID  types.FileID
	hdr     *FileHeader
	bpm     *buffer.BufferPoolManager
	lockMgr *access.LockManager
}

func NewFileHandle(fileID types.FileID, hdr *FileHeader, bpm *buffer.BufferPoolManager, lockMgr *access.LockManager) *FileHandle {
	return &FileHandle{fileID, hdr, bpm, lockMgr}
}

func (f *FileHandle) GetFileID() types.FileID {
	return f.fileID
}

func (f *FileHandle) GetFileHeader() *FileHeader {
	return f.hdr
}

// GetRecord returns a copy of the record bytes stored at rid.
// The slot bytes are returned as stored; whether the slot is live is
// the caller's business, the occupancy bitmap is not consulted here.
func (f *FileHandle) GetRecord(rid page.RID, txn *access.Transaction) ([]byte, error) {
	if rid.GetPageNo() < common.FirstRecordPageID || rid.GetPageNo() >= types.PageID(f.hdr.NumPages) {
		return nil, errors.ErrRecordNotFound
	}
	if rid.GetSlotNo() < 0 || rid.GetSlotNo() >= f.hdr.NumRecordsPerPage {
		return nil, errors.ErrRecordNotFound
	}

	if txn != nil && f.lockMgr != nil {
		if !f.lockMgr.LockSharedOnRecord(txn, f.fileID, rid) {
			return nil, access.ErrLockConflict
		}
	}

	ph, err := f.fetchPageHandle(rid.GetPageNo())
	if err != nil {
		return nil, err
	}
	defer ph.guard.Release()

	data := make([]byte, f.hdr.RecordSize)
	copy(data, ph.slot(rid.GetSlotNo()))
	return data, nil
}

// InsertRecord places the record in the first free slot of the free
// list head page, appending a fresh page when the list is empty, and
// returns the assigned RID.
func (f *FileHandle) InsertRecord(data []byte, txn *access.Transaction) (page.RID, error) {
	common.Assert(int32(len(data)) == f.hdr.RecordSize, "record length must match the file record size")

	if txn != nil && f.lockMgr != nil {
		if !f.lockMgr.LockExclusiveOnTable(txn, f.fileID) {
			return page.RID{}, access.ErrLockConflict
		}
	}

	var ph *pageHandle
	var err error
	if f.hdr.FirstFreePageNo == common.NoPage {
		ph, err = f.createNewPageHandle()
	} else {
		ph, err = f.fetchPageHandle(types.PageID(f.hdr.FirstFreePageNo))
	}
	if err != nil {
		return page.RID{}, err
	}
	defer ph.guard.Release()

	slotNo := bitmapFirstBit(false, ph.bitmap(), uint32(f.hdr.NumRecordsPerPage))
	common.Assert(slotNo < uint32(f.hdr.NumRecordsPerPage), "free list head page has no free slot")

	copy(ph.slot(int32(slotNo)), data)
	bitmapSet(ph.bitmap(), slotNo)
	ph.setNumRecords(ph.numRecords() + 1)
	ph.guard.MarkDirty()

	if ph.isFull() {
		f.hdr.FirstFreePageNo = int32(ph.nextFreePageNo())
	}

	return *page.NewRID(ph.pageNo(), int32(slotNo)), nil
}

// InsertRecordAt places the record at an exact rid. The slot must be
// free and inside an already allocated page.
func (f *FileHandle) InsertRecordAt(rid page.RID, data []byte, txn *access.Transaction) error {
	common.Assert(int32(len(data)) == f.hdr.RecordSize, "record length must match the file record size")

	if rid.GetPageNo() < common.FirstRecordPageID || rid.GetPageNo() >= types.PageID(f.hdr.NumPages) {
		return errors.ErrRecordNotFound
	}
	if rid.GetSlotNo() < 0 || rid.GetSlotNo() >= f.hdr.NumRecordsPerPage {
		return errors.ErrRecordNotFound
	}

	if txn != nil && f.lockMgr != nil {
		if !f.lockMgr.LockExclusiveOnRecord(txn, f.fileID, rid) {
			return access.ErrLockConflict
		}
	}

	ph, err := f.fetchPageHandle(rid.GetPageNo())
	if err != nil {
		return err
	}
	defer ph.guard.Release()

	if bitmapIsSet(ph.bitmap(), uint32(rid.GetSlotNo())) {
		return errors.ErrRecordNotFound
	}

	copy(ph.slot(rid.GetSlotNo()), data)
	bitmapSet(ph.bitmap(), uint32(rid.GetSlotNo()))
	ph.setNumRecords(ph.numRecords() + 1)
	ph.guard.MarkDirty()

	if ph.isFull() {
		if err := f.unlinkFreePage(ph); err != nil {
			return err
		}
	}

	return nil
}

// unlinkFreePage splices a page out of the free list after its last
// free slot has been taken. The page may sit anywhere on the list
// because a targeted insert can fill a page that is not the head.
func (f *FileHandle) unlinkFreePage(ph *pageHandle) error {
	pageNo := int32(ph.pageNo())
	if f.hdr.FirstFreePageNo == pageNo {
		f.hdr.FirstFreePageNo = int32(ph.nextFreePageNo())
		return nil
	}

	cur := f.hdr.FirstFreePageNo
	for cur != common.NoPage {
		prev, err := f.fetchPageHandle(types.PageID(cur))
		if err != nil {
			return err
		}
		next := int32(prev.nextFreePageNo())
		if next == pageNo {
			prev.setNextFreePageNo(ph.nextFreePageNo())
			prev.guard.Release()
			return nil
		}
		prev.guard.Release()
		cur = next
	}
	return nil
}

// DeleteRecord frees the slot at rid. A page that was full becomes
// the new free list head.
func (f *FileHandle) DeleteRecord(rid page.RID, txn *access.Transaction) error {
	if txn != nil && f.lockMgr != nil {
		if !f.lockMgr.LockExclusiveOnRecord(txn, f.fileID, rid) {
			return access.ErrLockConflict
		}
	}

	ph, err := f.fetchPageHandle(rid.GetPageNo())
	if err != nil {
		return errors.ErrRecordNotFound
	}
	defer ph.guard.Release()

	if rid.GetSlotNo() < 0 || rid.GetSlotNo() >= f.hdr.NumRecordsPerPage || !bitmapIsSet(ph.bitmap(), uint32(rid.GetSlotNo())) {
		return errors.ErrRecordNotFound
	}

	wasFull := ph.isFull()
	bitmapReset(ph.bitmap(), uint32(rid.GetSlotNo()))
	ph.setNumRecords(ph.numRecords() - 1)
	ph.guard.MarkDirty()

	if wasFull {
		ph.setNextFreePageNo(types.PageID(f.hdr.FirstFreePageNo))
		f.hdr.FirstFreePageNo = int32(rid.GetPageNo())
	}

	return nil
}

// UpdateRecord overwrites the record at rid in place.
func (f *FileHandle) UpdateRecord(rid page.RID, data []byte, txn *access.Transaction) error {
	common.Assert(int32(len(data)) == f.hdr.RecordSize, "record length must match the file record size")

	if txn != nil && f.lockMgr != nil {
		if !f.lockMgr.LockExclusiveOnRecord(txn, f.fileID, rid) {
			return access.ErrLockConflict
		}
	}

	ph, err := f.fetchPageHandle(rid.GetPageNo())
	if err != nil {
		return errors.ErrRecordNotFound
	}
	defer ph.guard.Release()

	if rid.GetSlotNo() < 0 || rid.GetSlotNo() >= f.hdr.NumRecordsPerPage || !bitmapIsSet(ph.bitmap(), uint32(rid.GetSlotNo())) {
		return errors.ErrRecordNotFound
	}

	copy(ph.slot(rid.GetSlotNo()), data)
	ph.guard.MarkDirty()

	return nil
}

func (f *FileHandle) fetchPageHandle(pageNo types.PageID) (*pageHandle, error) {
	if pageNo < common.FirstRecordPageID || pageNo >= types.PageID(f.hdr.NumPages) {
		return nil, errors.ErrPageNotExist
	}

	pageID := page.NewPageId(f.fileID, pageNo)
	pg := f.bpm.FetchPage(pageID)
	if pg == nil {
		return nil, errors.ErrInternal
	}
	return newPageHandle(f.hdr, pg, newPageGuard(f.bpm, pageID)), nil
}

// createNewPageHandle appends a fresh record page and links it as the
// free list head.
func (f *FileHandle) createNewPageHandle() (*pageHandle, error) {
	pg := f.bpm.NewPage(f.fileID)
	if pg == nil {
		return nil, errors.ErrInternal
	}

	pageID := pg.ID()
	guard := newPageGuard(f.bpm, pageID)
	ph := newPageHandle(f.hdr, pg, guard)

	ph.setNumRecords(0)
	// the new page links to the previous free-list head and becomes the head itself
	ph.setNextFreePageNo(types.PageID(f.hdr.FirstFreePageNo))
	bm := ph.bitmap()
	for i := range bm {
		bm[i] = 0
	}
	guard.MarkDirty()

	f.hdr.NumPages++
	f.hdr.FirstFreePageNo = int32(pageID.GetPageNo())

	return ph, nil
}

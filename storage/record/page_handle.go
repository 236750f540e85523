package record

import (
	"encoding/binary"

	"github.com/give-a-mocha/DB2025/storage/page"
	"github.com/give-a-mocha/DB2025/types"
)

// pageHandle interprets the raw bytes of one pinned record page.
// It carries the guard that owns the pin.
type pageHandle struct {
	hdr   *FileHeader
	page  *page.Page
	guard *pageGuard
}

func newPageHandle(hdr *FileHeader, pg *page.Page, guard *pageGuard) *pageHandle {
	return &pageHandle{hdr, pg, guard}
}

func (p *pageHandle) pageNo() types.PageID {
	return p.page.ID().GetPageNo()
}

func (p *pageHandle) numRecords() int32 {
	return int32(binary.LittleEndian.Uint32(p.page.Data()[offsetNumRecords:]))
}

func (p *pageHandle) setNumRecords(n int32) {
	binary.LittleEndian.PutUint32(p.page.Data()[offsetNumRecords:], uint32(n))
	p.guard.MarkDirty()
}

func (p *pageHandle) nextFreePageNo() types.PageID {
	return types.PageID(int32(binary.LittleEndian.Uint32(p.page.Data()[offsetNextFreePageNo:])))
}

func (p *pageHandle) setNextFreePageNo(pageNo types.PageID) {
	binary.LittleEndian.PutUint32(p.page.Data()[offsetNextFreePageNo:], uint32(pageNo))
	p.guard.MarkDirty()
}

func (p *pageHandle) bitmap() []byte {
	return p.page.Data()[offsetBitmap : offsetBitmap+p.hdr.BitmapSize]
}

func (p *pageHandle) slot(slotNo int32) []byte {
	offset := int32(offsetBitmap) + p.hdr.BitmapSize + slotNo*p.hdr.RecordSize
	return p.page.Data()[offset : offset+p.hdr.RecordSize]
}

func (p *pageHandle) isFull() bool {
	return p.numRecords() == p.hdr.NumRecordsPerPage
}

package record

import (
	"github.com/give-a-mocha/DB2025/common"
	"github.com/give-a-mocha/DB2025/storage/page"
	"github.com/give-a-mocha/DB2025/types"
)

// Scan walks the live records of a file in (page, slot) order, driven
// by the occupancy bitmaps. The cursor starts positioned on the first
// live record; callers check End before reading RID.
type Scan struct {
	fh  *FileHandle
	rid page.RID
}

func NewScan(fh *FileHandle) *Scan {
	s := &Scan{fh: fh, rid: *page.NewRID(common.FirstRecordPageID, -1)}
	s.Next()
	return s
}

// Next advances the cursor to the next live record, crossing page
// boundaries as needed. At the end of the file the page number becomes
// the NoPage sentinel.
func (s *Scan) Next() {
	common.Assert(!s.End(), "scan already at end")

	max := uint32(s.fh.hdr.NumRecordsPerPage)
	pageNo := s.rid.GetPageNo()
	slotNo := s.rid.GetSlotNo()

	for pageNo < types.PageID(s.fh.hdr.NumPages) {
		ph, err := s.fh.fetchPageHandle(pageNo)
		if err != nil {
			break
		}

		var next uint32
		if slotNo < 0 {
			next = bitmapFirstBit(true, ph.bitmap(), max)
		} else {
			next = bitmapNextBit(true, ph.bitmap(), max, uint32(slotNo))
		}
		ph.guard.Release()

		if next < max {
			s.rid.Set(pageNo, int32(next))
			return
		}

		pageNo++
		slotNo = -1
	}

	s.rid.Set(types.PageID(common.NoPage), -1)
}

// End reports whether the cursor ran off the last record page.
func (s *Scan) End() bool {
	return s.rid.GetPageNo() == types.PageID(common.NoPage)
}

// RID returns the position of the record the cursor is on.
func (s *Scan) RID() page.RID {
	return s.rid
}

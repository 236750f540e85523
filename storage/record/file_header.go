package record

import (
	"encoding/binary"

	"github.com/give-a-mocha/DB2025/common"
)

const (
	// record page layout. the record count and the free list link come
	// first, the occupancy bitmap follows, slots fill the rest.
	offsetNumRecords     = 0
	offsetNextFreePageNo = 4
	offsetBitmap         = 8
	recordPageHeaderSize = 8

	fileHeaderSize = 20
)

// FileHeader is the fixed metadata persisted in page 0 of a record file.
type FileHeader struct {
	RecordSize        int32
	NumRecordsPerPage int32
	BitmapSize        int32
	NumPages          int32
	FirstFreePageNo   int32
}

func (h *FileHeader) Serialize() []byte {
	data := make([]byte, fileHeaderSize)
	binary.LittleEndian.PutUint32(data[0:], uint32(h.RecordSize))
	binary.LittleEndian.PutUint32(data[4:], uint32(h.NumRecordsPerPage))
	binary.LittleEndian.PutUint32(data[8:], uint32(h.BitmapSize))
	binary.LittleEndian.PutUint32(data[12:], uint32(h.NumPages))
	binary.LittleEndian.PutUint32(data[16:], uint32(h.FirstFreePageNo))
	return data
}

func NewFileHeaderFromBytes(data []byte) *FileHeader {
	return &FileHeader{
		RecordSize:        int32(binary.LittleEndian.Uint32(data[0:])),
		NumRecordsPerPage: int32(binary.LittleEndian.Uint32(data[4:])),
		BitmapSize:        int32(binary.LittleEndian.Uint32(data[8:])),
		NumPages:          int32(binary.LittleEndian.Uint32(data[12:])),
		FirstFreePageNo:   int32(binary.LittleEndian.Uint32(data[16:])),
	}
}

// NewFileHeader computes the densest page layout for the record size:
// the largest slot count whose slots plus bitmap still fit one page.
func NewFileHeader(recordSize int32) *FileHeader {
	common.Assert(recordSize > 0, "record size must be positive")

	numRecords := int32((8 * (common.PageSize - recordPageHeaderSize)) / (8*int(recordSize) + 1))
	for numRecords > 0 && recordPageHeaderSize+bitmapSizeFor(numRecords)+numRecords*recordSize > common.PageSize {
		numRecords--
	}
	common.Assert(numRecords > 0, "record size too large for one page")

	return &FileHeader{
		RecordSize:        recordSize,
		NumRecordsPerPage: numRecords,
		BitmapSize:        bitmapSizeFor(numRecords),
		NumPages:          1,
		FirstFreePageNo:   common.NoPage,
	}
}

func bitmapSizeFor(numRecords int32) int32 {
	return (numRecords + 7) / 8
}

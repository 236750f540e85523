package disk

import (
	"github.com/give-a-mocha/DB2025/errors"
	"github.com/give-a-mocha/DB2025/types"
)

const (
	ErrFileAlreadyExists = errors.Error("file already exists")
	ErrFileNotExists     = errors.Error("file does not exist")
	ErrFileNotOpened     = errors.Error("file is not opened")
	ErrFileNotClosed     = errors.Error("file is opened and not closed yet")
)

// DiskManager is responsible for interacting with disk. pages are read and
// written with page granularity keyed by (file id, page number); the log is
// a sequential byte stream keyed by offset.
type DiskManager interface {
	CreateFile(path string) error
	OpenFile(path string) (types.FileID, error)
	CloseFile(fileID types.FileID) error
	DestroyFile(path string) error
	ReadPage(fileID types.FileID, pageNo types.PageID, data []byte) error
	WritePage(fileID types.FileID, pageNo types.PageID, data []byte) error
	// AllocatePage hands out the next unused page number of the file
	AllocatePage(fileID types.FileID) types.PageID
	// SetNextPageNo overrides the allocation cursor. the record layer calls
	// this at file-open time with the page count persisted in the file header.
	SetNextPageNo(fileID types.FileID, pageNo types.PageID)
	GetFileName(fileID types.FileID) string
	WriteLog(data []byte) error
	ReadLog(data []byte, offset uint32) (bool, error)
	GetNumWrites() uint64
	Size(fileID types.FileID) int64
	ShutDown()
}

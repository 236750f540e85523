package record

import (
	"github.com/give-a-mocha/DB2025/common"
	"github.com/give-a-mocha/DB2025/storage/access"
	"github.com/give-a-mocha/DB2025/storage/buffer"
	"github.com/give-a-mocha/DB2025/storage/disk"
	"github.com/give-a-mocha/DB2025/types"
)

// Manager creates, opens and destroys record files. The file header
// lives in page 0 and is written through the disk manager directly,
// bypassing the buffer pool, so the pool only ever caches record pages.
type Manager struct {
	diskManager disk.DiskManager
	bpm         *buffer.BufferPoolManager
	lockMgr     *access.LockManager
}

func NewManager(diskManager disk.DiskManager, bpm *buffer.BufferPoolManager, lockMgr *access.LockManager) *Manager {
	return &Manager{diskManager, bpm, lockMgr}
}

func (m *Manager) GetBufferPoolManager() *buffer.BufferPoolManager {
	return m.bpm
}

func (m *Manager) GetLockManager() *access.LockManager {
	return m.lockMgr
}

// CreateFile creates a record file for fixed length records of
// recordSize bytes and writes its initial header.
func (m *Manager) CreateFile(path string, recordSize int32) error {
	if err := m.diskManager.CreateFile(path); err != nil {
		return err
	}
	fileID, err := m.diskManager.OpenFile(path)
	if err != nil {
		return err
	}

	hdr := NewFileHeader(recordSize)
	if err := m.writeHeader(fileID, hdr); err != nil {
		return err
	}
	return m.diskManager.CloseFile(fileID)
}

// OpenFile opens a record file and returns a handle over it.
func (m *Manager) OpenFile(path string) (*FileHandle, error) {
	fileID, err := m.diskManager.OpenFile(path)
	if err != nil {
		return nil, err
	}

	data := make([]byte, common.PageSize)
	if err := m.diskManager.ReadPage(fileID, common.FileHeaderPageID, data); err != nil {
		return nil, err
	}
	hdr := NewFileHeaderFromBytes(data)

	// the allocation cursor restarts from the persisted page count so
	// new pages continue past the existing ones
	m.diskManager.SetNextPageNo(fileID, types.PageID(hdr.NumPages))

	return NewFileHandle(fileID, hdr, m.bpm, m.lockMgr), nil
}

// CloseFile flushes the file's dirty pages, persists the header and
// closes the underlying file.
func (m *Manager) CloseFile(fh *FileHandle) error {
	m.bpm.FlushAllDirtyPagesOfFile(fh.GetFileID())
	if err := m.writeHeader(fh.GetFileID(), fh.GetFileHeader()); err != nil {
		return err
	}
	return m.diskManager.CloseFile(fh.GetFileID())
}

func (m *Manager) DestroyFile(path string) error {
	return m.diskManager.DestroyFile(path)
}

func (m *Manager) writeHeader(fileID types.FileID, hdr *FileHeader) error {
	data := make([]byte, common.PageSize)
	copy(data, hdr.Serialize())
	return m.diskManager.WritePage(fileID, common.FileHeaderPageID, data)
}

package disk

import (
	"errors"
	"strings"
	"sync"

	"github.com/dsnet/golib/memfile"

	"github.com/give-a-mocha/DB2025/common"
	"github.com/give-a-mocha/DB2025/types"
)

// VirtualDiskManagerImpl is a DiskManager which keeps all file contents on
// memory. it is mainly used on tests to avoid touching the real filesystem.
type VirtualDiskManagerImpl struct {
	fileData    map[string]*memfile.File
	fileSizes   map[string]int64
	files       map[types.FileID]string
	fileIDs     map[string]types.FileID
	nextPageNo  map[types.FileID]types.PageID
	nextFileID  types.FileID
	log         *memfile.File
	logSize     int64
	fileNameLog string
	numWrites   uint64
	fileMutex   *sync.Mutex
	logMutex    *sync.Mutex
}

func NewVirtualDiskManagerImpl(dbName string) DiskManager {
	logfnameBase := dbName
	if periodIdx := strings.LastIndex(dbName, "."); periodIdx != -1 {
		logfnameBase = dbName[:periodIdx]
	}
	logfname := logfnameBase + "." + "log"

	return &VirtualDiskManagerImpl{
		fileData:    make(map[string]*memfile.File),
		fileSizes:   make(map[string]int64),
		files:       make(map[types.FileID]string),
		fileIDs:     make(map[string]types.FileID),
		nextPageNo:  make(map[types.FileID]types.PageID),
		nextFileID:  0,
		log:         memfile.New(make([]byte, 0)),
		fileNameLog: logfname,
		fileMutex:   new(sync.Mutex),
		logMutex:    new(sync.Mutex),
	}
}

func (d *VirtualDiskManagerImpl) CreateFile(path string) error {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()

	if _, ok := d.fileData[path]; ok {
		return ErrFileAlreadyExists
	}
	d.fileData[path] = memfile.New(make([]byte, 0))
	d.fileSizes[path] = 0
	return nil
}

func (d *VirtualDiskManagerImpl) OpenFile(path string) (types.FileID, error) {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()

	if _, ok := d.fileIDs[path]; ok {
		return types.InvalidFileID, ErrFileNotClosed
	}
	if _, ok := d.fileData[path]; !ok {
		return types.InvalidFileID, ErrFileNotExists
	}

	fileID := d.nextFileID
	d.nextFileID++
	d.files[fileID] = path
	d.fileIDs[path] = fileID
	d.nextPageNo[fileID] = types.PageID(d.fileSizes[path] / common.PageSize)
	return fileID, nil
}

func (d *VirtualDiskManagerImpl) CloseFile(fileID types.FileID) error {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()

	path, ok := d.files[fileID]
	if !ok {
		return ErrFileNotOpened
	}
	delete(d.files, fileID)
	delete(d.fileIDs, path)
	delete(d.nextPageNo, fileID)
	return nil
}

func (d *VirtualDiskManagerImpl) DestroyFile(path string) error {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()

	if _, ok := d.fileIDs[path]; ok {
		return ErrFileNotClosed
	}
	if _, ok := d.fileData[path]; !ok {
		return ErrFileNotExists
	}
	delete(d.fileData, path)
	delete(d.fileSizes, path)
	return nil
}

func (d *VirtualDiskManagerImpl) ReadPage(fileID types.FileID, pageNo types.PageID, pageData []byte) error {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()

	path, ok := d.files[fileID]
	if !ok {
		return ErrFileNotOpened
	}

	offset := int64(pageNo) * common.PageSize
	if offset > d.fileSizes[path] {
		return errors.New("I/O error past end of file")
	}

	readCount, _ := d.fileData[path].ReadAt(pageData, offset)
	if readCount < len(pageData) {
		for i := readCount; i < len(pageData); i++ {
			pageData[i] = 0
		}
	}
	return nil
}

func (d *VirtualDiskManagerImpl) WritePage(fileID types.FileID, pageNo types.PageID, pageData []byte) error {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()

	path, ok := d.files[fileID]
	if !ok {
		return ErrFileNotOpened
	}

	offset := int64(pageNo) * common.PageSize
	d.fileData[path].WriteAt(pageData, offset)
	if offset+int64(len(pageData)) > d.fileSizes[path] {
		d.fileSizes[path] = offset + int64(len(pageData))
	}
	d.numWrites++
	return nil
}

func (d *VirtualDiskManagerImpl) AllocatePage(fileID types.FileID) types.PageID {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()

	pageNo := d.nextPageNo[fileID]
	d.nextPageNo[fileID] = pageNo + 1
	return pageNo
}

func (d *VirtualDiskManagerImpl) SetNextPageNo(fileID types.FileID, pageNo types.PageID) {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()

	d.nextPageNo[fileID] = pageNo
}

func (d *VirtualDiskManagerImpl) GetFileName(fileID types.FileID) string {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()

	return d.files[fileID]
}

func (d *VirtualDiskManagerImpl) WriteLog(data []byte) error {
	d.logMutex.Lock()
	defer d.logMutex.Unlock()

	if len(data) == 0 {
		return nil
	}
	d.log.WriteAt(data, d.logSize)
	d.logSize += int64(len(data))
	return nil
}

func (d *VirtualDiskManagerImpl) ReadLog(data []byte, offset uint32) (bool, error) {
	d.logMutex.Lock()
	defer d.logMutex.Unlock()

	if int64(offset) >= d.logSize {
		return false, nil
	}
	readCount, _ := d.log.ReadAt(data, int64(offset))
	if readCount < len(data) {
		for i := readCount; i < len(data); i++ {
			data[i] = 0
		}
	}
	return true, nil
}

func (d *VirtualDiskManagerImpl) GetNumWrites() uint64 {
	return d.numWrites
}

func (d *VirtualDiskManagerImpl) Size(fileID types.FileID) int64 {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()

	path, ok := d.files[fileID]
	if !ok {
		return -1
	}
	return d.fileSizes[path]
}

// ShutDown drops all in-memory file contents
func (d *VirtualDiskManagerImpl) ShutDown() {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()

	d.fileData = make(map[string]*memfile.File)
	d.fileSizes = make(map[string]int64)
	d.files = make(map[types.FileID]string)
	d.fileIDs = make(map[string]types.FileID)
}

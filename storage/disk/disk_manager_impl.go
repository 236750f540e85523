// this code is based on https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package disk

import (
	"errors"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/give-a-mocha/DB2025/common"
	"github.com/give-a-mocha/DB2025/types"
)

// DiskManagerImpl is the disk implementation of DiskManager
type DiskManagerImpl struct {
	files       map[types.FileID]*os.File
	fileIDs     map[string]types.FileID
	fileNames   map[types.FileID]string
	nextPageNo  map[types.FileID]types.PageID
	nextFileID  types.FileID
	log         *os.File
	fileNameLog string
	numWrites   uint64
	numFlushes  uint64
	flushLog    bool
	fileMutex   *sync.Mutex
	logMutex    *sync.Mutex
}

// NewDiskManagerImpl returns a DiskManager instance. dbName names the
// database; the write-ahead log lives next to the record files in
// "<dbName>.log".
func NewDiskManagerImpl(dbName string) DiskManager {
	logfnameBase := dbName
	if periodIdx := strings.LastIndex(dbName, "."); periodIdx != -1 {
		logfnameBase = dbName[:periodIdx]
	}
	logfname := logfnameBase + "." + "log"
	logFile, err := os.OpenFile(logfname, os.O_RDWR|os.O_CREATE, 0666)
	if err != nil {
		log.Fatalln("can't open log file")
		return nil
	}

	fileInfoLog, err := logFile.Stat()
	if err != nil {
		log.Fatalln("file info error (log file)")
		return nil
	}
	logFile.Seek(fileInfoLog.Size(), io.SeekStart)

	return &DiskManagerImpl{
		files:       make(map[types.FileID]*os.File),
		fileIDs:     make(map[string]types.FileID),
		fileNames:   make(map[types.FileID]string),
		nextPageNo:  make(map[types.FileID]types.PageID),
		nextFileID:  0,
		log:         logFile,
		fileNameLog: logfname,
		fileMutex:   new(sync.Mutex),
		logMutex:    new(sync.Mutex),
	}
}

// CreateFile creates an empty file on disk. the caller is expected to
// format its header region afterwards.
func (d *DiskManagerImpl) CreateFile(path string) error {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0666)
	if err != nil {
		if os.IsExist(err) {
			return ErrFileAlreadyExists
		}
		return err
	}
	return file.Close()
}

// OpenFile opens an existing file and hands out a file id for it. opening
// the same path twice without closing it first is a caller bug.
func (d *DiskManagerImpl) OpenFile(path string) (types.FileID, error) {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()

	if _, ok := d.fileIDs[path]; ok {
		return types.InvalidFileID, ErrFileNotClosed
	}

	file, err := os.OpenFile(path, os.O_RDWR, 0666)
	if err != nil {
		if os.IsNotExist(err) {
			return types.InvalidFileID, ErrFileNotExists
		}
		return types.InvalidFileID, err
	}

	fileInfo, err := file.Stat()
	if err != nil {
		file.Close()
		return types.InvalidFileID, err
	}

	fileID := d.nextFileID
	d.nextFileID++
	d.files[fileID] = file
	d.fileIDs[path] = fileID
	d.fileNames[fileID] = path
	d.nextPageNo[fileID] = types.PageID(fileInfo.Size() / common.PageSize)
	return fileID, nil
}

// CloseFile closes the file and forgets its id
func (d *DiskManagerImpl) CloseFile(fileID types.FileID) error {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()

	file, ok := d.files[fileID]
	if !ok {
		return ErrFileNotOpened
	}
	file.Sync()
	delete(d.files, fileID)
	delete(d.fileIDs, d.fileNames[fileID])
	delete(d.fileNames, fileID)
	delete(d.nextPageNo, fileID)
	return file.Close()
}

// DestroyFile removes the file from disk. destroying an open file is
// refused so that no file id is left dangling.
func (d *DiskManagerImpl) DestroyFile(path string) error {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()

	if _, ok := d.fileIDs[path]; ok {
		return ErrFileNotClosed
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrFileNotExists
		}
		return err
	}
	return nil
}

// ReadPage reads a page from the file
func (d *DiskManagerImpl) ReadPage(fileID types.FileID, pageNo types.PageID, pageData []byte) error {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()

	file, ok := d.files[fileID]
	if !ok {
		return ErrFileNotOpened
	}

	offset := int64(pageNo) * common.PageSize

	fileInfo, err := file.Stat()
	if err != nil {
		return errors.New("file info error")
	}
	if offset > fileInfo.Size() {
		return errors.New("I/O error past end of file")
	}

	file.Seek(offset, io.SeekStart)
	readCount, err := file.Read(pageData)
	if err != nil && err != io.EOF {
		return err
	}
	if readCount < len(pageData) {
		// zero the tail when the page has never been fully written
		for i := readCount; i < len(pageData); i++ {
			pageData[i] = 0
		}
	}
	return nil
}

// WritePage writes a page to the file
func (d *DiskManagerImpl) WritePage(fileID types.FileID, pageNo types.PageID, pageData []byte) error {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()

	file, ok := d.files[fileID]
	if !ok {
		return ErrFileNotOpened
	}

	offset := int64(pageNo) * common.PageSize
	file.Seek(offset, io.SeekStart)
	bytesWritten, err := file.Write(pageData)
	if err != nil {
		return err
	}
	if bytesWritten != len(pageData) {
		return errors.New("bytes written not equals page size")
	}
	d.numWrites++
	file.Sync()
	return nil
}

// AllocatePage returns the next unused page number of the file
func (d *DiskManagerImpl) AllocatePage(fileID types.FileID) types.PageID {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()

	pageNo := d.nextPageNo[fileID]
	d.nextPageNo[fileID] = pageNo + 1
	return pageNo
}

func (d *DiskManagerImpl) SetNextPageNo(fileID types.FileID, pageNo types.PageID) {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()

	d.nextPageNo[fileID] = pageNo
}

func (d *DiskManagerImpl) GetFileName(fileID types.FileID) string {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()

	return d.fileNames[fileID]
}

// WriteLog appends a log entry to the sequential log file
func (d *DiskManagerImpl) WriteLog(data []byte) error {
	d.logMutex.Lock()
	defer d.logMutex.Unlock()

	if len(data) == 0 {
		return nil
	}
	if d.flushLog {
		d.numFlushes++
	}
	if _, err := d.log.Write(data); err != nil {
		return err
	}
	return d.log.Sync()
}

// ReadLog reads a log entry from the log file at the byte offset. returns
// false when the offset is beyond the end of the log.
func (d *DiskManagerImpl) ReadLog(data []byte, offset uint32) (bool, error) {
	d.logMutex.Lock()
	defer d.logMutex.Unlock()

	fileInfo, err := d.log.Stat()
	if err != nil {
		return false, err
	}
	if int64(offset) >= fileInfo.Size() {
		return false, nil
	}

	d.log.Seek(int64(offset), io.SeekStart)
	readCount, err := d.log.Read(data)
	if err != nil && err != io.EOF {
		return false, err
	}
	if readCount < len(data) {
		for i := readCount; i < len(data); i++ {
			data[i] = 0
		}
	}
	return true, nil
}

// GetNumWrites returns the number of page writes issued so far
func (d *DiskManagerImpl) GetNumWrites() uint64 {
	return d.numWrites
}

// Size returns the byte size of the file
func (d *DiskManagerImpl) Size(fileID types.FileID) int64 {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()

	file, ok := d.files[fileID]
	if !ok {
		return -1
	}
	fileInfo, err := file.Stat()
	if err != nil {
		return -1
	}
	return fileInfo.Size()
}

// ShutDown closes every open file and the log
func (d *DiskManagerImpl) ShutDown() {
	d.fileMutex.Lock()
	defer d.fileMutex.Unlock()

	for _, file := range d.files {
		file.Close()
	}
	d.files = make(map[types.FileID]*os.File)
	d.fileIDs = make(map[string]types.FileID)
	d.fileNames = make(map[types.FileID]string)
	d.log.Close()
}

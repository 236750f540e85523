package common

var EnableDebug bool = false

const (
	// invalid page id
	InvalidPageID = -1
	// invalid transaction id
	InvalidTxnID = -1
	// invalid file id
	InvalidFileID = -1
	// sentinel of the free page list ("no page")
	NoPage = -1
	// page number of the record file header region
	FileHeaderPageID = 0
	// page number of the first record page in a record file
	FirstRecordPageID = 1
	// size of a data page in byte
	PageSize = 4096
	// number of frames of buffer pools used on tests
	BufferPoolSizeForTest = 32
)

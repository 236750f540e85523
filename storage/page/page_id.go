package page

import (
	"github.com/give-a-mocha/DB2025/types"
)

// PageId uniquely identifies a page as the pair of the owning file and the
// page number within that file
type PageId struct {
	fileID types.FileID
	pageNo types.PageID
}

// NewPageId creates a page identifier from a file id and a page number
func NewPageId(fileID types.FileID, pageNo types.PageID) PageId {
	return PageId{fileID, pageNo}
}

// GetFileID gets the owning file id
func (id PageId) GetFileID() types.FileID {
	return id.fileID
}

// GetPageNo gets the page number within the file
func (id PageId) GetPageNo() types.PageID {
	return id.pageNo
}

// IsValid checks both components are valid
func (id PageId) IsValid() bool {
	return id.fileID.IsValid() && id.pageNo.IsValid()
}

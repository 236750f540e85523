// this code is based on https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package page

import (
	"github.com/give-a-mocha/DB2025/types"
)

// RID is the record identifier for the given page number and slot number.
// it stays stable for the whole life of the record because records are
// never relocated, only freed in place.
type RID struct {
	pageNo types.PageID
	slotNo int32
}

// NewRID creates a record identifier
func NewRID(pageNo types.PageID, slotNo int32) *RID {
	return &RID{pageNo, slotNo}
}

// Set sets the record identifier
func (r *RID) Set(pageNo types.PageID, slotNo int32) {
	r.pageNo = pageNo
	r.slotNo = slotNo
}

// GetPageNo gets the page number the record lives on
func (r RID) GetPageNo() types.PageID {
	return r.pageNo
}

// GetSlotNo gets the slot number within the page
func (r RID) GetSlotNo() int32 {
	return r.slotNo
}

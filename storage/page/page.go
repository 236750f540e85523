// this code is based on https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package page

import (
	"github.com/give-a-mocha/DB2025/common"
)

// PageSize is the byte size of one page
const PageSize = common.PageSize

// Page represents a page on disk while it is borrowed from the buffer pool
type Page struct {
	id       PageId
	pinCount int
	isDirty  bool
	data     *[PageSize]byte
}

// IncPinCount increments pin count
func (p *Page) IncPinCount() {
	p.pinCount++
}

// DecPinCount decrements pin count
func (p *Page) DecPinCount() {
	if p.pinCount > 0 {
		p.pinCount--
	}
}

// PinCount returns the pin count
func (p *Page) PinCount() int {
	return p.pinCount
}

// ID returns the page id
func (p *Page) ID() PageId {
	return p.id
}

func (p *Page) Data() *[PageSize]byte {
	return p.data
}

func (p *Page) SetIsDirty(isDirty bool) {
	p.isDirty = isDirty
}

func (p *Page) IsDirty() bool {
	return p.isDirty
}

func New(id PageId, isDirty bool, data *[PageSize]byte) *Page {
	return &Page{id, 1, isDirty, data}
}

func NewEmpty(id PageId) *Page {
	return &Page{id, 1, false, &[PageSize]byte{}}
}

package record

import (
	"github.com/give-a-mocha/DB2025/storage/buffer"
	"github.com/give-a-mocha/DB2025/storage/page"
)

// pageGuard scopes a pinned page. Release unpins exactly once, so it
// is safe both deferred and on early error paths.
type pageGuard struct {
	bpm      *buffer.BufferPoolManager
	pageID   page.PageId
	dirty    bool
	released bool
}

func newPageGuard(bpm *buffer.BufferPoolManager, pageID page.PageId) *pageGuard {
	return &pageGuard{bpm: bpm, pageID: pageID}
}

func (g *pageGuard) MarkDirty() {
	g.dirty = true
}

func (g *pageGuard) Release() {
	if g.released {
		return
	}
	g.released = true
	g.bpm.UnpinPage(g.pageID, g.dirty)
}

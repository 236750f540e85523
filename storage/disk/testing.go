// this code is based on https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package disk

// NewDiskManagerTest returns a DiskManager instance for testing purposes.
// it is backed by memory so tests never leave artifacts on disk.
func NewDiskManagerTest() DiskManager {
	return NewVirtualDiskManagerImpl("test.db")
}

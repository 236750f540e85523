// this code is based on https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package index

import (
	"bytes"
	"encoding/binary"

	pair "github.com/notEpsilon/go-pair"
	"github.com/sasha-s/go-deadlock"
	"github.com/spaolacci/murmur3"

	"github.com/give-a-mocha/DB2025/storage/page"
)

// GenHashMurMur generates a hash value of the key bytes with murmur3.
func GenHashMurMur(key []byte) uint32 {
	h := murmur3.New128()
	h.Write(key)

	hash := h.Sum(nil)
	return binary.LittleEndian.Uint32(hash)
}

// HashIndex maps serialized key bytes to RIDs. Buckets chain the
// entries whose keys collide on the murmur hash; lookups compare the
// stored key bytes to weed collisions out.
type HashIndex struct {
	buckets map[uint32][]pair.Pair[string, page.RID]
	rwMutex deadlock.RWMutex
}

func NewHashIndex() *HashIndex {
	return &HashIndex{buckets: make(map[uint32][]pair.Pair[string, page.RID])}
}

// InsertEntry registers key -> rid. Duplicate keys keep the existing
// entry and register another one.
func (h *HashIndex) InsertEntry(key []byte, rid page.RID) {
	h.rwMutex.Lock()
	defer h.rwMutex.Unlock()

	hash := GenHashMurMur(key)
	entry := pair.Pair[string, page.RID]{First: string(key), Second: rid}
	h.buckets[hash] = append(h.buckets[hash], entry)
}

// DeleteEntry removes the entry for key pointing at rid, if present.
func (h *HashIndex) DeleteEntry(key []byte, rid page.RID) {
	h.rwMutex.Lock()
	defer h.rwMutex.Unlock()

	hash := GenHashMurMur(key)
	bucket := h.buckets[hash]
	for i, entry := range bucket {
		if entry.First == string(key) && entry.Second == rid {
			h.buckets[hash] = append(bucket[:i], bucket[i+1:]...)
			if len(h.buckets[hash]) == 0 {
				delete(h.buckets, hash)
			}
			return
		}
	}
}

// GetRID returns the RID stored for key. The second return value is
// false when the key has no entry.
func (h *HashIndex) GetRID(key []byte) (page.RID, bool) {
	h.rwMutex.RLock()
	defer h.rwMutex.RUnlock()

	hash := GenHashMurMur(key)
	for _, entry := range h.buckets[hash] {
		if bytes.Equal([]byte(entry.First), key) {
			return entry.Second, true
		}
	}
	return page.RID{}, false
}

package record

import "math/bits"

// occupancy bitmap helpers. bit i tracks slot i of a record page,
// least significant bit first within each byte.

func bitmapIsSet(bm []byte, pos uint32) bool {
	return bm[pos/8]&(1<<(pos%8)) != 0
}

func bitmapSet(bm []byte, pos uint32) {
	bm[pos/8] |= 1 << (pos % 8)
}

func bitmapReset(bm []byte, pos uint32) {
	bm[pos/8] &^= 1 << (pos % 8)
}

// bitmapNextBit returns the first position after cur whose bit equals
// val, or max when there is none.
func bitmapNextBit(val bool, bm []byte, max uint32, cur uint32) uint32 {
	for pos := cur + 1; pos < max; pos++ {
		if bitmapIsSet(bm, pos) == val {
			return pos
		}
	}
	return max
}

// bitmapFirstBit returns the first position whose bit equals val, or
// max when there is none.
func bitmapFirstBit(val bool, bm []byte, max uint32) uint32 {
	if max == 0 {
		return 0
	}
	if bitmapIsSet(bm, 0) == val {
		return 0
	}
	return bitmapNextBit(val, bm, max, 0)
}

func bitmapCountSet(bm []byte) uint32 {
	count := 0
	for _, b := range bm {
		count += bits.OnesCount8(b)
	}
	return uint32(count)
}

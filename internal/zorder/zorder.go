// Package zorder packs three non-negative coordinates into a single uint64
// by bit interleaving (morton / z-order encoding). The packed code is
// collision-free for coordinates in [0, MaxCoord] and preserves spatial
// locality, which keeps roaring occupancy bitmaps compact.
package zorder

// MaxCoord is the largest coordinate representable per axis.
// Three 21-bit axes fill 63 bits of the code.
const MaxCoord = 1<<21 - 1

// InRange reports whether all three coordinates are encodable.
func InRange(i, j, k int) bool {
	return i >= 0 && i <= MaxCoord &&
		j >= 0 && j <= MaxCoord &&
		k >= 0 && k <= MaxCoord
}

// Encode interleaves the low 21 bits of each coordinate into a z-order code.
// Callers must ensure InRange(i, j, k).
func Encode(i, j, k int) uint64 {
	return spread(uint64(i)) | spread(uint64(j))<<1 | spread(uint64(k))<<2
}

// Decode is the inverse of Encode.
func Decode(code uint64) (i, j, k int) {
	i = int(compact(code))
	j = int(compact(code >> 1))
	k = int(compact(code >> 2))
	return
}

// spread distributes the low 21 bits of v so that two zero bits separate
// each payload bit.
func spread(v uint64) uint64 {
	v &= 0x1FFFFF
	v = (v | v<<32) & 0x1F00000000FFFF
	v = (v | v<<16) & 0x1F0000FF0000FF
	v = (v | v<<8) & 0x100F00F00F00F00F
	v = (v | v<<4) & 0x10C30C30C30C30C3
	v = (v | v<<2) & 0x1249249249249249
	return v
}

// compact gathers every third bit back into the low 21 bits.
func compact(v uint64) uint64 {
	v &= 0x1249249249249249
	v = (v ^ v>>2) & 0x10C30C30C30C30C3
	v = (v ^ v>>4) & 0x100F00F00F00F00F
	v = (v ^ v>>8) & 0x1F0000FF0000FF
	v = (v ^ v>>16) & 0x1F00000000FFFF
	v = (v ^ v>>32) & 0x1FFFFF
	return v
}

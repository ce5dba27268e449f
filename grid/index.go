package grid

import (
	"fmt"
	"sync"

	"github.com/hupe1980/voxgo/internal/zorder"
)

// Index addresses a single slot of a grid. It is an immutable value type
// with structural equality: two indices compare equal iff all three
// components match. The type itself accepts negative components; range
// validation is the container's job.
type Index struct {
	I, J, K int
}

// At constructs an Index without consulting the flyweight pool.
func At(i, j, k int) Index {
	return Index{I: i, J: j, K: k}
}

// Offset returns the index translated by the given deltas.
func (x Index) Offset(di, dj, dk int) Index {
	return Index{I: x.I + di, J: x.J + dj, K: x.K + dk}
}

func (x Index) String() string {
	return fmt.Sprintf("(%d,%d,%d)", x.I, x.J, x.K)
}

// poolExtent bounds the pre-seeded index table: coordinates in
// [0, poolExtent) per axis are served from a constant table.
const poolExtent = 5

var seeded [poolExtent][poolExtent][poolExtent]Index

// indexPool caches canonical indices for coordinates outside the seeded
// table, keyed by their z-order code. The key is collision-free over the
// whole representable range. Read-mostly after warm-up; sync.Map keeps
// concurrent construction race-free.
var indexPool sync.Map

func init() {
	for i := 0; i < poolExtent; i++ {
		for j := 0; j < poolExtent; j++ {
			for k := 0; k < poolExtent; k++ {
				seeded[i][j][k] = Index{I: i, J: j, K: k}
			}
		}
	}
}

// IndexOf returns the canonical Index for the given coordinates. Small
// coordinates come from the pre-seeded table, coordinates within the
// representable range are cached on first request, and anything else
// (negative, or beyond zorder.MaxCoord) is constructed fresh. Safe for
// concurrent use. Canonical or not, indices with equal coordinates are
// always value-equal.
func IndexOf(i, j, k int) Index {
	if i >= 0 && i < poolExtent && j >= 0 && j < poolExtent && k >= 0 && k < poolExtent {
		return seeded[i][j][k]
	}
	if !zorder.InRange(i, j, k) {
		return Index{I: i, J: j, K: k}
	}
	code := zorder.Encode(i, j, k)
	if v, ok := indexPool.Load(code); ok {
		return v.(Index)
	}
	v, _ := indexPool.LoadOrStore(code, Index{I: i, J: j, K: k})
	return v.(Index)
}

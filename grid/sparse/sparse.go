// Package sparse provides the map-keyed grid backing.
//
// Only populated slots are materialized, keyed by the z-order packing of
// their coordinates, with a roaring bitmap tracking occupancy. The declared
// shape is the bounding box grown by sets: setting a slot beyond the
// current dimensions never fails, it grows the box instead. Removing does
// not shrink the box; Trim does. Sparse is the right choice for large,
// mostly empty volumes.
//
// Coordinates are bounded to [0, 1<<21) per axis by the key packing; sets
// beyond that ceiling fail with *grid.ErrOutOfBounds.
package sparse

import (
	"maps"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/voxgo/grid"
)

// Compile-time check that Sparse satisfies the grid contract.
var _ grid.Grid[int] = (*Sparse[int])(nil)
var _ grid.Compactable = (*Sparse[int])(nil)
var _ grid.Reshapable = (*Sparse[int])(nil)

// MaxCoord is the largest coordinate storable per axis.
const MaxCoord = zorderMax

// Sparse is a map-keyed backing with an implicit, mutable bounding-box
// shape. Not safe for concurrent mutation.
//
// Explicitly setting the zero value stores an absence marker; Clean drops
// such markers without touching the declared shape.
type Sparse[T comparable] struct {
	dims  grid.Dims
	cells map[uint64]T
	occ   *roaring64.Bitmap
}

// New returns an empty grid with the zero shape.
func New[T comparable]() *Sparse[T] {
	return &Sparse[T]{
		cells: make(map[uint64]T),
		occ:   roaring64.NewBitmap(),
	}
}

// WithDims returns an empty grid with an explicit declared shape.
func WithDims[T comparable](w, h, d int) (*Sparse[T], error) {
	if w < 0 || h < 0 || d < 0 {
		return nil, grid.ErrInvalidDimensions
	}
	g := New[T]()
	g.dims = grid.Dims{W: w, H: h, D: d}
	return g, nil
}

// FromSlices copies the non-zero entries of a rectangular nested-slice
// payload; the declared shape is the payload's shape.
func FromSlices[T comparable](data [][][]T) (*Sparse[T], error) {
	dims, ok := grid.DimsOfSlices(data)
	if !ok {
		return nil, grid.ErrRaggedSlices
	}
	g, err := WithDims[T](dims.W, dims.H, dims.D)
	if err != nil {
		return nil, err
	}
	var zero T
	for i, plane := range data {
		for j, row := range plane {
			for k, v := range row {
				if v != zero {
					g.store(i, j, k, v)
				}
			}
		}
	}
	return g, nil
}

// FromSlice reconstructs a grid from a flat payload in traversal order.
// It is the inverse of ToSlice.
func FromSlice[T comparable](dims grid.Dims, values []T) (*Sparse[T], error) {
	if dims.W < 0 || dims.H < 0 || dims.D < 0 {
		return nil, grid.ErrInvalidDimensions
	}
	if len(values) != dims.Volume() {
		return nil, &grid.ErrLengthMismatch{Want: dims.Volume(), Got: len(values)}
	}
	g, err := WithDims[T](dims.W, dims.H, dims.D)
	if err != nil {
		return nil, err
	}
	var zero T
	pos := 0
	for i := 0; i < dims.W; i++ {
		for j := 0; j < dims.H; j++ {
			for k := 0; k < dims.D; k++ {
				if v := values[pos]; v != zero {
					g.store(i, j, k, v)
				}
				pos++
			}
		}
	}
	return g, nil
}

// FromGrid copies the non-zero entries of any grid into a sparse backing
// of the same declared shape.
func FromGrid[T comparable](src grid.Grid[T]) *Sparse[T] {
	g := New[T]()
	g.dims = src.Dims()
	var zero T
	src.Each(func(idx grid.Index, v T) bool {
		if v != zero {
			g.store(idx.I, idx.J, idx.K, v)
		}
		return true
	})
	return g
}

// Map transforms every slot of the declared volume into a new element
// type, producing a sparse grid of identical shape. Mapped zero values are
// not materialized.
func Map[T, U comparable](g *Sparse[T], fn func(T) U) *Sparse[U] {
	out := New[U]()
	out.dims = g.dims
	var zero U
	g.Each(func(idx grid.Index, v T) bool {
		if nv := fn(v); nv != zero {
			out.store(idx.I, idx.J, idx.K, nv)
		}
		return true
	})
	return out
}

// store writes a cell without growing the declared shape. Coordinates must
// already be validated.
func (g *Sparse[T]) store(i, j, k int, v T) {
	code := encode(i, j, k)
	g.cells[code] = v
	g.occ.Add(code)
}

// drop removes a cell without touching the declared shape.
func (g *Sparse[T]) drop(code uint64) {
	delete(g.cells, code)
	g.occ.Remove(code)
}

func (g *Sparse[T]) boundsErr(i, j, k int) error {
	return &grid.ErrOutOfBounds{Index: grid.At(i, j, k), Dims: g.dims}
}

// Dims returns the declared bounding box.
func (g *Sparse[T]) Dims() grid.Dims { return g.dims }

// Size returns Dims().Volume(), counting implicitly absent slots.
func (g *Sparse[T]) Size() int { return g.dims.Volume() }

// Occupied returns the number of slots holding a non-zero value.
func (g *Sparse[T]) Occupied() int {
	var zero T
	n := 0
	for _, v := range g.cells {
		if v != zero {
			n++
		}
	}
	return n
}

// Stored returns the number of materialized cells, including explicitly
// stored absence markers.
func (g *Sparse[T]) Stored() int { return len(g.cells) }

// Get returns the value at (i,j,k). Absent slots within the declared
// dimensions yield the zero value; coordinates outside them fail even
// though storage is sparse everywhere.
func (g *Sparse[T]) Get(i, j, k int) (T, error) {
	if !g.dims.ContainsCoords(i, j, k) {
		var zero T
		return zero, g.boundsErr(i, j, k)
	}
	return g.cells[encode(i, j, k)], nil
}

// At is Get keyed by Index.
func (g *Sparse[T]) At(idx grid.Index) (T, error) {
	return g.Get(idx.I, idx.J, idx.K)
}

// Set stores v at (i,j,k), growing the declared bounding box to include
// the coordinate. It fails only for coordinates outside the representable
// range [0, MaxCoord].
func (g *Sparse[T]) Set(i, j, k int, v T) error {
	if !inRange(i, j, k) {
		return g.boundsErr(i, j, k)
	}
	g.store(i, j, k, v)
	g.grow(i, j, k)
	return nil
}

// SetAt is Set keyed by Index.
func (g *Sparse[T]) SetAt(idx grid.Index, v T) error {
	return g.Set(idx.I, idx.J, idx.K, v)
}

// grow extends the declared shape to cover (i,j,k), as a running max.
func (g *Sparse[T]) grow(i, j, k int) {
	g.dims.W = max(g.dims.W, i+1)
	g.dims.H = max(g.dims.H, j+1)
	g.dims.D = max(g.dims.D, k+1)
}

// Has reports whether (i,j,k) is in bounds and holds a non-zero value.
func (g *Sparse[T]) Has(i, j, k int) bool {
	var zero T
	if !g.dims.ContainsCoords(i, j, k) {
		return false
	}
	return g.cells[encode(i, j, k)] != zero
}

// Remove deletes the cell at (i,j,k) if materialized and reports whether
// stored state changed. The declared shape is not shrunk; call Trim for
// that.
func (g *Sparse[T]) Remove(i, j, k int) (bool, error) {
	if !g.dims.ContainsCoords(i, j, k) {
		return false, g.boundsErr(i, j, k)
	}
	code := encode(i, j, k)
	if _, ok := g.cells[code]; !ok {
		return false, nil
	}
	g.drop(code)
	return true, nil
}

// Clean drops explicitly stored absence markers (cells holding the zero
// value), returning the count. The declared shape is untouched.
func (g *Sparse[T]) Clean() int {
	var zero T
	n := 0
	for code, v := range g.cells {
		if v == zero {
			g.drop(code)
			n++
		}
	}
	return n
}

// Trim cleans and then recomputes the declared shape as the tight bounding
// box over the remaining cells. Full scan over stored entries.
func (g *Sparse[T]) Trim() {
	g.Clean()
	var dims grid.Dims
	it := g.occ.Iterator()
	for it.HasNext() {
		i, j, k := decode(it.Next())
		dims.W = max(dims.W, i+1)
		dims.H = max(dims.H, j+1)
		dims.D = max(dims.D, k+1)
	}
	g.dims = dims
}

// SetSize forcibly overrides the declared shape without touching storage.
// This is an escape hatch: until the next growing Set or an explicit Trim,
// Dims may disagree with the true bounding box of stored cells, and cells
// beyond the new shape become unreachable through Get.
//
// The shape must stay within the representable coordinate range: a
// declared dimension beyond MaxCoord+1 would admit coordinates whose keys
// alias other cells.
func (g *Sparse[T]) SetSize(w, h, d int) error {
	if w < 0 || h < 0 || d < 0 {
		return grid.ErrInvalidDimensions
	}
	if w > MaxCoord+1 || h > MaxCoord+1 || d > MaxCoord+1 {
		return g.boundsErr(w-1, h-1, d-1)
	}
	g.dims = grid.Dims{W: w, H: h, D: d}
	return nil
}

// Fill overwrites every slot of the declared volume with v, materializing
// all of it.
func (g *Sparse[T]) Fill(v T) {
	g.eachCoord(func(i, j, k int, _ T) {
		g.store(i, j, k, v)
	})
}

// FillEmpty stores v in every slot of the declared volume currently
// holding the zero value, implicitly absent slots included.
func (g *Sparse[T]) FillEmpty(v T) {
	var zero T
	g.eachCoord(func(i, j, k int, cur T) {
		if cur == zero {
			g.store(i, j, k, v)
		}
	})
}

// FillIf stores v in every slot of the declared volume whose current value
// satisfies pred.
func (g *Sparse[T]) FillIf(v T, pred func(T) bool) {
	g.eachCoord(func(i, j, k int, cur T) {
		if pred(cur) {
			g.store(i, j, k, v)
		}
	})
}

// ReplaceAll stores new in every slot currently holding old. Replacing the
// zero value materializes the full declared volume.
func (g *Sparse[T]) ReplaceAll(old, new T) {
	var zero T
	if old != zero {
		// Only materialized cells can hold a non-zero value.
		for code, v := range g.cells {
			if v == old {
				g.cells[code] = new
			}
		}
		return
	}
	g.eachCoord(func(i, j, k int, cur T) {
		if cur == old {
			g.store(i, j, k, new)
		}
	})
}

// Apply transforms every slot of the declared volume in place. Slots whose
// result is the zero value are dematerialized.
func (g *Sparse[T]) Apply(fn func(T) T) {
	g.ApplyIndexed(func(_ grid.Index, v T) T { return fn(v) })
}

// ApplyIndexed transforms every slot of the declared volume in place,
// passing the slot's index.
func (g *Sparse[T]) ApplyIndexed(fn func(grid.Index, T) T) {
	var zero T
	g.eachCoord(func(i, j, k int, cur T) {
		nv := fn(grid.At(i, j, k), cur)
		switch {
		case nv != zero:
			g.store(i, j, k, nv)
		case cur != zero:
			g.drop(encode(i, j, k))
		}
	})
}

// eachCoord walks the full declared volume in traversal order, passing the
// current value (zero for absent slots).
func (g *Sparse[T]) eachCoord(fn func(i, j, k int, cur T)) {
	for i := 0; i < g.dims.W; i++ {
		for j := 0; j < g.dims.H; j++ {
			for k := 0; k < g.dims.D; k++ {
				fn(i, j, k, g.cells[encode(i, j, k)])
			}
		}
	}
}

// SubGrid copies the region [from,to) into a new sparse grid of shape
// to-from.
func (g *Sparse[T]) SubGrid(from, to grid.Index) (grid.Grid[T], error) {
	if from.I < 0 || from.J < 0 || from.K < 0 {
		return nil, &grid.ErrOutOfBounds{Index: from, Dims: g.dims}
	}
	if to.I < from.I || to.J < from.J || to.K < from.K ||
		to.I > g.dims.W || to.J > g.dims.H || to.K > g.dims.D {
		return nil, &grid.ErrOutOfBounds{Index: to, Dims: g.dims}
	}
	out := New[T]()
	out.dims = grid.Dims{W: to.I - from.I, H: to.J - from.J, D: to.K - from.K}
	var zero T
	for code, v := range g.cells {
		if v == zero {
			continue
		}
		i, j, k := decode(code)
		if i >= from.I && i < to.I && j >= from.J && j < to.J && k >= from.K && k < to.K {
			out.store(i-from.I, j-from.J, k-from.K, v)
		}
	}
	return out, nil
}

// SetRange copies every value of src into the window anchored at off.
// Unlike the dense backing this grows the declared shape instead of
// failing; only the coordinate ceiling applies. Absent source slots
// dematerialize the corresponding destination cells.
func (g *Sparse[T]) SetRange(off grid.Index, src grid.Grid[T]) error {
	sd := src.Dims()
	if !inRange(off.I, off.J, off.K) {
		return g.boundsErr(off.I, off.J, off.K)
	}
	if sd.Volume() > 0 && !inRange(off.I+sd.W-1, off.J+sd.H-1, off.K+sd.D-1) {
		return g.boundsErr(off.I+sd.W-1, off.J+sd.H-1, off.K+sd.D-1)
	}
	var zero T
	src.Each(func(idx grid.Index, v T) bool {
		i, j, k := off.I+idx.I, off.J+idx.J, off.K+idx.K
		if v != zero {
			g.store(i, j, k, v)
		} else {
			g.drop(encode(i, j, k))
		}
		return true
	})
	if sd.Volume() > 0 {
		g.grow(off.I+sd.W-1, off.J+sd.H-1, off.K+sd.D-1)
	}
	return nil
}

// Resize returns a new grid of the requested shape, copying the per-axis
// minimum overlap. The receiver is never mutated.
func (g *Sparse[T]) Resize(w, h, d int) (grid.Grid[T], error) {
	out, err := WithDims[T](w, h, d)
	if err != nil {
		return nil, err
	}
	var zero T
	for code, v := range g.cells {
		if v == zero {
			continue
		}
		if i, j, k := decode(code); out.dims.ContainsCoords(i, j, k) && g.dims.ContainsCoords(i, j, k) {
			out.store(i, j, k, v)
		}
	}
	return out, nil
}

// Merge combines this grid element-wise with another grid of equal shape
// into a new sparse grid. Zero results are not materialized.
func (g *Sparse[T]) Merge(other grid.Grid[T], fn func(a, b T) T) (grid.Grid[T], error) {
	if other.Dims() != g.dims {
		return nil, &grid.ErrDimensionMismatch{Want: g.dims, Got: other.Dims()}
	}
	out := New[T]()
	out.dims = g.dims
	var zero T
	other.Each(func(idx grid.Index, b T) bool {
		if nv := fn(g.cells[encode(idx.I, idx.J, idx.K)], b); nv != zero {
			out.store(idx.I, idx.J, idx.K, nv)
		}
		return true
	})
	return out, nil
}

// Equal reports equal declared shape and equal element at every
// coordinate. When both operands are sparse and their occupancy bitmaps
// match, materialized cells are compared directly instead of walking the
// volume.
func (g *Sparse[T]) Equal(other grid.Grid[T]) bool {
	if other == nil || other.Dims() != g.dims {
		return false
	}
	if o, ok := other.(*Sparse[T]); ok {
		if g.occ.Equals(o.occ) && maps.Equal(g.cells, o.cells) {
			return true
		}
		// Identical storage is sufficient but not necessary: stored
		// absence markers and cells shrunk out of the declared shape by
		// SetSize must not affect the comparison.
		return g.cellsMatch(o) && o.cellsMatch(g)
	}
	equal := true
	other.Each(func(idx grid.Index, v T) bool {
		if g.cells[encode(idx.I, idx.J, idx.K)] != v {
			equal = false
			return false
		}
		return true
	})
	return equal
}

// cellsMatch reports whether every non-zero cell of g inside its declared
// shape holds the same value in o. Callers must have checked equal dims.
func (g *Sparse[T]) cellsMatch(o *Sparse[T]) bool {
	var zero T
	for code, v := range g.cells {
		if v == zero {
			continue
		}
		if i, j, k := decode(code); !g.dims.ContainsCoords(i, j, k) {
			continue
		}
		if o.cells[code] != v {
			return false
		}
	}
	return true
}

// Each visits every slot of the declared volume in traversal order,
// passing the zero value for absent slots.
func (g *Sparse[T]) Each(fn func(idx grid.Index, v T) bool) {
	for i := 0; i < g.dims.W; i++ {
		for j := 0; j < g.dims.H; j++ {
			for k := 0; k < g.dims.D; k++ {
				if !fn(grid.At(i, j, k), g.cells[encode(i, j, k)]) {
					return
				}
			}
		}
	}
}

// ToSlice flattens the full declared volume in traversal order.
func (g *Sparse[T]) ToSlice() []T {
	out := make([]T, 0, g.dims.Volume())
	g.Each(func(_ grid.Index, v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

// ToMap returns the non-empty cells keyed by canonical indices.
func (g *Sparse[T]) ToMap() map[grid.Index]T {
	var zero T
	out := make(map[grid.Index]T, len(g.cells))
	for code, v := range g.cells {
		if v == zero {
			continue
		}
		i, j, k := decode(code)
		out[grid.IndexOf(i, j, k)] = v
	}
	return out
}

// Clone returns an independent deep copy.
func (g *Sparse[T]) Clone() grid.Grid[T] {
	return &Sparse[T]{
		dims:  g.dims,
		cells: maps.Clone(g.cells),
		occ:   g.occ.Clone(),
	}
}

// Stats returns a point-in-time summary.
func (g *Sparse[T]) Stats() grid.Stats {
	s := grid.Stats{
		Strategy: "sparse",
		Dims:     g.dims,
		Size:     g.dims.Volume(),
		Occupied: g.Occupied(),
		Stored:   len(g.cells),
	}
	if s.Size > 0 {
		s.Occupancy = float64(s.Occupied) / float64(s.Size)
	}
	return s
}

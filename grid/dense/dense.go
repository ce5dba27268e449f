// Package dense provides the fixed-shape, fully materialized grid backing.
//
// Every slot of the declared volume is backed by contiguous storage, so
// single-slot access is O(1) and iteration is cache-friendly. The shape is
// fixed at construction; Resize yields a new grid. Dense is the right
// choice for small or mostly populated volumes.
package dense

import (
	"slices"

	"github.com/hupe1980/voxgo/grid"
)

// Compile-time check that Dense satisfies the grid contract.
var _ grid.Grid[int] = (*Dense[int])(nil)

// Dense is a fixed-shape backing storing the full declared volume in a
// single slice, indexed (i*H + j)*D + k. Not safe for concurrent mutation.
type Dense[T comparable] struct {
	dims grid.Dims
	data []T
}

// New returns an empty grid of the given shape.
func New[T comparable](w, h, d int) (*Dense[T], error) {
	if w < 0 || h < 0 || d < 0 {
		return nil, grid.ErrInvalidDimensions
	}
	dims := grid.Dims{W: w, H: h, D: d}
	return &Dense[T]{dims: dims, data: make([]T, dims.Volume())}, nil
}

// FromSlices copies a rectangular nested-slice payload.
func FromSlices[T comparable](data [][][]T) (*Dense[T], error) {
	dims, ok := grid.DimsOfSlices(data)
	if !ok {
		return nil, grid.ErrRaggedSlices
	}
	g := &Dense[T]{dims: dims, data: make([]T, 0, dims.Volume())}
	for _, plane := range data {
		for _, row := range plane {
			g.data = append(g.data, row...)
		}
	}
	return g, nil
}

// FromSlice reconstructs a grid from a flat payload in traversal order.
// It is the inverse of ToSlice.
func FromSlice[T comparable](dims grid.Dims, values []T) (*Dense[T], error) {
	if dims.W < 0 || dims.H < 0 || dims.D < 0 {
		return nil, grid.ErrInvalidDimensions
	}
	if len(values) != dims.Volume() {
		return nil, &grid.ErrLengthMismatch{Want: dims.Volume(), Got: len(values)}
	}
	return &Dense[T]{dims: dims, data: slices.Clone(values)}, nil
}

// FromGrid copies any grid into a dense backing of the same shape.
func FromGrid[T comparable](src grid.Grid[T]) *Dense[T] {
	g := &Dense[T]{dims: src.Dims()}
	g.data = make([]T, g.dims.Volume())
	pos := 0
	src.Each(func(_ grid.Index, v T) bool {
		g.data[pos] = v
		pos++
		return true
	})
	return g
}

// Map transforms every slot into a new element type, producing a dense
// grid of identical shape.
func Map[T, U comparable](g *Dense[T], fn func(T) U) *Dense[U] {
	out := &Dense[U]{dims: g.dims, data: make([]U, len(g.data))}
	for i, v := range g.data {
		out.data[i] = fn(v)
	}
	return out
}

func (g *Dense[T]) offset(i, j, k int) int {
	return (i*g.dims.H+j)*g.dims.D + k
}

func (g *Dense[T]) boundsErr(i, j, k int) error {
	return &grid.ErrOutOfBounds{Index: grid.At(i, j, k), Dims: g.dims}
}

// Dims returns the shape fixed at construction.
func (g *Dense[T]) Dims() grid.Dims { return g.dims }

// Size returns the declared volume.
func (g *Dense[T]) Size() int { return len(g.data) }

// Occupied returns the number of slots holding a non-zero value.
func (g *Dense[T]) Occupied() int {
	var zero T
	n := 0
	for _, v := range g.data {
		if v != zero {
			n++
		}
	}
	return n
}

// Get returns the value at (i,j,k).
func (g *Dense[T]) Get(i, j, k int) (T, error) {
	if !g.dims.ContainsCoords(i, j, k) {
		var zero T
		return zero, g.boundsErr(i, j, k)
	}
	return g.data[g.offset(i, j, k)], nil
}

// At is Get keyed by Index.
func (g *Dense[T]) At(idx grid.Index) (T, error) {
	return g.Get(idx.I, idx.J, idx.K)
}

// Set overwrites the slot at (i,j,k).
func (g *Dense[T]) Set(i, j, k int, v T) error {
	if !g.dims.ContainsCoords(i, j, k) {
		return g.boundsErr(i, j, k)
	}
	g.data[g.offset(i, j, k)] = v
	return nil
}

// SetAt is Set keyed by Index.
func (g *Dense[T]) SetAt(idx grid.Index, v T) error {
	return g.Set(idx.I, idx.J, idx.K, v)
}

// Has reports whether (i,j,k) is in bounds and non-empty.
func (g *Dense[T]) Has(i, j, k int) bool {
	var zero T
	if !g.dims.ContainsCoords(i, j, k) {
		return false
	}
	return g.data[g.offset(i, j, k)] != zero
}

// Remove empties the slot at (i,j,k), reporting whether it held a value.
func (g *Dense[T]) Remove(i, j, k int) (bool, error) {
	if !g.dims.ContainsCoords(i, j, k) {
		return false, g.boundsErr(i, j, k)
	}
	var zero T
	o := g.offset(i, j, k)
	if g.data[o] == zero {
		return false, nil
	}
	g.data[o] = zero
	return true, nil
}

// Fill overwrites every slot with v.
func (g *Dense[T]) Fill(v T) {
	for i := range g.data {
		g.data[i] = v
	}
}

// FillEmpty stores v in every empty slot.
func (g *Dense[T]) FillEmpty(v T) {
	var zero T
	for i := range g.data {
		if g.data[i] == zero {
			g.data[i] = v
		}
	}
}

// FillIf stores v in every slot whose current value satisfies pred.
func (g *Dense[T]) FillIf(v T, pred func(T) bool) {
	for i := range g.data {
		if pred(g.data[i]) {
			g.data[i] = v
		}
	}
}

// ReplaceAll stores new in every slot currently holding old.
func (g *Dense[T]) ReplaceAll(old, new T) {
	for i := range g.data {
		if g.data[i] == old {
			g.data[i] = new
		}
	}
}

// Apply transforms every slot in place, in traversal order.
func (g *Dense[T]) Apply(fn func(T) T) {
	for i := range g.data {
		g.data[i] = fn(g.data[i])
	}
}

// ApplyIndexed transforms every slot in place, passing the slot's index.
func (g *Dense[T]) ApplyIndexed(fn func(grid.Index, T) T) {
	pos := 0
	for i := 0; i < g.dims.W; i++ {
		for j := 0; j < g.dims.H; j++ {
			for k := 0; k < g.dims.D; k++ {
				g.data[pos] = fn(grid.At(i, j, k), g.data[pos])
				pos++
			}
		}
	}
}

// SubGrid copies the region [from,to) into a new dense grid of shape
// to-from. The embedded error index is the offending corner.
func (g *Dense[T]) SubGrid(from, to grid.Index) (grid.Grid[T], error) {
	if from.I < 0 || from.J < 0 || from.K < 0 {
		return nil, &grid.ErrOutOfBounds{Index: from, Dims: g.dims}
	}
	if to.I < from.I || to.J < from.J || to.K < from.K ||
		to.I > g.dims.W || to.J > g.dims.H || to.K > g.dims.D {
		return nil, &grid.ErrOutOfBounds{Index: to, Dims: g.dims}
	}
	out := &Dense[T]{
		dims: grid.Dims{W: to.I - from.I, H: to.J - from.J, D: to.K - from.K},
	}
	out.data = make([]T, 0, out.dims.Volume())
	for i := from.I; i < to.I; i++ {
		for j := from.J; j < to.J; j++ {
			row := g.offset(i, j, from.K)
			out.data = append(out.data, g.data[row:row+to.K-from.K]...)
		}
	}
	return out, nil
}

// SetRange copies every value of src, including absent slots, into the
// window anchored at off. The window must fit the declared dimensions.
func (g *Dense[T]) SetRange(off grid.Index, src grid.Grid[T]) error {
	sd := src.Dims()
	if off.I < 0 || off.J < 0 || off.K < 0 {
		return &grid.ErrOutOfBounds{Index: off, Dims: g.dims}
	}
	if off.I+sd.W > g.dims.W || off.J+sd.H > g.dims.H || off.K+sd.D > g.dims.D {
		return &grid.ErrOutOfBounds{Index: off.Offset(sd.W-1, sd.H-1, sd.D-1), Dims: g.dims}
	}
	src.Each(func(idx grid.Index, v T) bool {
		g.data[g.offset(off.I+idx.I, off.J+idx.J, off.K+idx.K)] = v
		return true
	})
	return nil
}

// Resize returns a new grid of the requested shape, copying the per-axis
// minimum overlap. The receiver is never mutated.
func (g *Dense[T]) Resize(w, h, d int) (grid.Grid[T], error) {
	out, err := New[T](w, h, d)
	if err != nil {
		return nil, err
	}
	ow := min(g.dims.W, w)
	oh := min(g.dims.H, h)
	od := min(g.dims.D, d)
	for i := 0; i < ow; i++ {
		for j := 0; j < oh; j++ {
			srcRow := g.offset(i, j, 0)
			dstRow := out.offset(i, j, 0)
			copy(out.data[dstRow:dstRow+od], g.data[srcRow:srcRow+od])
		}
	}
	return out, nil
}

// Merge combines this grid element-wise with another grid of equal shape.
func (g *Dense[T]) Merge(other grid.Grid[T], fn func(a, b T) T) (grid.Grid[T], error) {
	if other.Dims() != g.dims {
		return nil, &grid.ErrDimensionMismatch{Want: g.dims, Got: other.Dims()}
	}
	out := &Dense[T]{dims: g.dims, data: make([]T, len(g.data))}
	pos := 0
	other.Each(func(_ grid.Index, b T) bool {
		out.data[pos] = fn(g.data[pos], b)
		pos++
		return true
	})
	return out, nil
}

// Equal reports equal shape and equal element at every coordinate.
func (g *Dense[T]) Equal(other grid.Grid[T]) bool {
	if other == nil || other.Dims() != g.dims {
		return false
	}
	if o, ok := other.(*Dense[T]); ok {
		return slices.Equal(g.data, o.data)
	}
	equal := true
	pos := 0
	other.Each(func(_ grid.Index, v T) bool {
		if g.data[pos] != v {
			equal = false
			return false
		}
		pos++
		return true
	})
	return equal
}

// Each visits every slot in traversal order.
func (g *Dense[T]) Each(fn func(idx grid.Index, v T) bool) {
	pos := 0
	for i := 0; i < g.dims.W; i++ {
		for j := 0; j < g.dims.H; j++ {
			for k := 0; k < g.dims.D; k++ {
				if !fn(grid.At(i, j, k), g.data[pos]) {
					return
				}
				pos++
			}
		}
	}
}

// ToSlice flattens the grid in traversal order.
func (g *Dense[T]) ToSlice() []T {
	return slices.Clone(g.data)
}

// ToMap returns the non-empty slots keyed by canonical indices.
func (g *Dense[T]) ToMap() map[grid.Index]T {
	var zero T
	out := make(map[grid.Index]T, len(g.data))
	pos := 0
	for i := 0; i < g.dims.W; i++ {
		for j := 0; j < g.dims.H; j++ {
			for k := 0; k < g.dims.D; k++ {
				if v := g.data[pos]; v != zero {
					out[grid.IndexOf(i, j, k)] = v
				}
				pos++
			}
		}
	}
	return out
}

// Clone returns an independent deep copy.
func (g *Dense[T]) Clone() grid.Grid[T] {
	return &Dense[T]{dims: g.dims, data: slices.Clone(g.data)}
}

// Stats returns a point-in-time summary.
func (g *Dense[T]) Stats() grid.Stats {
	s := grid.Stats{
		Strategy: "dense",
		Dims:     g.dims,
		Size:     len(g.data),
		Occupied: g.Occupied(),
		Stored:   len(g.data),
	}
	if s.Size > 0 {
		s.Occupancy = float64(s.Occupied) / float64(s.Size)
	}
	return s
}

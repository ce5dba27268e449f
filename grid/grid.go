package grid

// Grid is the common contract of all three-dimensional container backings.
//
// The zero value of T is the absence marker. Single-slot access outside
// the declared dimensions fails with *ErrOutOfBounds; shape-incompatible
// grid operands fail with *ErrDimensionMismatch. Bulk operations visit the
// full declared volume in the documented traversal order (i outer, j
// middle, k inner), never just the populated slots.
type Grid[T comparable] interface {
	// Dims returns the declared shape. For dense backings the shape is
	// fixed at construction; for sparse backings it is the bounding box
	// grown by sets (see the sparse package for the exact rules).
	Dims() Dims

	// Size returns Dims().Volume().
	Size() int

	// Occupied returns the number of slots holding a non-zero value.
	Occupied() int

	// Get returns the value at (i,j,k), the zero value if the slot is
	// empty, or *ErrOutOfBounds outside the declared dimensions.
	Get(i, j, k int) (T, error)

	// At is Get keyed by Index.
	At(idx Index) (T, error)

	// Set stores v at (i,j,k), overwriting unconditionally.
	Set(i, j, k int, v T) error

	// SetAt is Set keyed by Index.
	SetAt(idx Index, v T) error

	// Has reports whether (i,j,k) is in bounds and holds a non-zero value.
	Has(i, j, k int) bool

	// Remove empties the slot at (i,j,k) and reports whether stored state
	// changed.
	Remove(i, j, k int) (bool, error)

	// Fill overwrites every slot with v.
	Fill(v T)

	// FillEmpty stores v in every slot currently holding the zero value.
	FillEmpty(v T)

	// FillIf stores v in every slot whose current value satisfies pred.
	FillIf(v T, pred func(T) bool)

	// ReplaceAll stores new in every slot currently holding old.
	ReplaceAll(old, new T)

	// Apply transforms every slot in place.
	Apply(fn func(T) T)

	// ApplyIndexed transforms every slot in place, passing the slot's index.
	ApplyIndexed(fn func(Index, T) T)

	// SubGrid copies the rectangular region [from,to) into a new grid of
	// shape to-from. It fails with *ErrOutOfBounds if the region exceeds
	// the declared dimensions.
	SubGrid(from, to Index) (Grid[T], error)

	// SetRange copies every value of src, including absent slots, into the
	// window anchored at off. Dense backings fail with *ErrOutOfBounds if
	// the window does not fit; sparse backings grow instead.
	SetRange(off Index, src Grid[T]) error

	// Resize returns a NEW grid of the requested shape. The per-axis
	// minimum overlap is copied; added slots are empty; shrunk-away slots
	// are dropped. The receiver is never mutated.
	Resize(w, h, d int) (Grid[T], error)

	// Merge combines this grid element-wise with another grid of equal
	// shape into a new grid, failing with *ErrDimensionMismatch otherwise.
	Merge(other Grid[T], fn func(a, b T) T) (Grid[T], error)

	// Equal reports equal shape and equal element at every coordinate.
	Equal(other Grid[T]) bool

	// Each visits every slot of the declared volume in traversal order,
	// passing the zero value for empty slots. Returning false stops early.
	Each(fn func(idx Index, v T) bool)

	// ToSlice flattens the grid in traversal order.
	ToSlice() []T

	// ToMap returns the non-empty slots keyed by canonical indices.
	ToMap() map[Index]T

	// Clone returns an independent deep copy with the same backing.
	Clone() Grid[T]

	// Stats returns a point-in-time summary of the backing.
	Stats() Stats
}

// Compactable is implemented by backings with reclaimable storage.
type Compactable interface {
	// Clean drops explicitly stored absence markers, returning the count.
	Clean() int

	// Trim cleans and shrinks the declared shape to the tight bounding box
	// of the remaining data.
	Trim()
}

// Reshapable is implemented by backings whose declared shape can be
// overridden without touching storage.
type Reshapable interface {
	SetSize(w, h, d int) error
}

// AllOf reports whether every slot of the declared volume satisfies pred.
// Empty slots are tested with the zero value.
func AllOf[T comparable](g Grid[T], pred func(T) bool) bool {
	ok := true
	g.Each(func(_ Index, v T) bool {
		if !pred(v) {
			ok = false
			return false
		}
		return true
	})
	return ok
}

// AnyOf reports whether at least one slot satisfies pred.
func AnyOf[T comparable](g Grid[T], pred func(T) bool) bool {
	found := false
	g.Each(func(_ Index, v T) bool {
		if pred(v) {
			found = true
			return false
		}
		return true
	})
	return found
}

// CountIf returns the number of slots satisfying pred.
func CountIf[T comparable](g Grid[T], pred func(T) bool) int {
	n := 0
	g.Each(func(_ Index, v T) bool {
		if pred(v) {
			n++
		}
		return true
	})
	return n
}

// DimsOfSlices returns the shape of a nested-slice payload and whether the
// payload is rectangular. An empty outer slice yields the zero shape.
func DimsOfSlices[T any](data [][][]T) (Dims, bool) {
	d := Dims{W: len(data)}
	if d.W == 0 {
		return d, true
	}
	d.H = len(data[0])
	if d.H > 0 {
		d.D = len(data[0][0])
	}
	for _, plane := range data {
		if len(plane) != d.H {
			return Dims{}, false
		}
		for _, row := range plane {
			if len(row) != d.D {
				return Dims{}, false
			}
		}
	}
	return d, true
}

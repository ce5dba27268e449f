package voxgo

import (
	"sync"

	"github.com/hupe1980/voxgo/grid"
)

// Compile-time checks for the decorated contract.
var _ grid.Grid[int] = (*Synchronized[int])(nil)
var _ grid.Compactable = (*Synchronized[int])(nil)
var _ grid.Reshapable = (*Synchronized[int])(nil)

// Synchronized decorates a grid with a single instance-wide lock guarding
// every operation for its full duration. Concurrent callers never observe
// a torn bulk operation, but gain no parallel throughput: simplicity over
// throughput.
//
// Calls are not composable atomically: a Get followed by a dependent Set
// is not atomic as a pair. Callers needing multi-step sequences should use
// Atomic.
//
// Each traverses a snapshot taken under the lock rather than a live view,
// so concurrent mutation cannot disturb an ongoing traversal. Derived
// grids (SubGrid, Resize, Merge, Clone, Snapshot) are returned unwrapped;
// re-wrap them if they will be shared.
type Synchronized[T comparable] struct {
	mu    sync.Mutex
	inner grid.Grid[T]
}

// NewSynchronized wraps g with a whole-object monitor. The inner grid must
// not be used directly afterward.
func NewSynchronized[T comparable](g grid.Grid[T]) *Synchronized[T] {
	return &Synchronized[T]{inner: g}
}

// Atomic runs fn on the inner grid while holding the monitor, for
// multi-step sequences that must not interleave with other callers.
// fn must not call back into the wrapper.
func (s *Synchronized[T]) Atomic(fn func(g grid.Grid[T])) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.inner)
}

// Snapshot returns an independent copy of the current state, unwrapped.
func (s *Synchronized[T]) Snapshot() grid.Grid[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Clone()
}

// unwrapArg snapshots grid arguments that share this wrapper type, so an
// operand's methods are never invoked while our monitor is held. This also
// makes g.Op(g, ...) on the same wrapped instance safe.
func unwrapArg[T comparable](g grid.Grid[T]) grid.Grid[T] {
	if o, ok := g.(*Synchronized[T]); ok {
		return o.Snapshot()
	}
	return g
}

// Dims implements grid.Grid.
func (s *Synchronized[T]) Dims() grid.Dims {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Dims()
}

// Size implements grid.Grid.
func (s *Synchronized[T]) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Size()
}

// Occupied implements grid.Grid.
func (s *Synchronized[T]) Occupied() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Occupied()
}

// Get implements grid.Grid.
func (s *Synchronized[T]) Get(i, j, k int) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Get(i, j, k)
}

// At implements grid.Grid.
func (s *Synchronized[T]) At(idx grid.Index) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.At(idx)
}

// Set implements grid.Grid.
func (s *Synchronized[T]) Set(i, j, k int, v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Set(i, j, k, v)
}

// SetAt implements grid.Grid.
func (s *Synchronized[T]) SetAt(idx grid.Index, v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.SetAt(idx, v)
}

// Has implements grid.Grid.
func (s *Synchronized[T]) Has(i, j, k int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Has(i, j, k)
}

// Remove implements grid.Grid.
func (s *Synchronized[T]) Remove(i, j, k int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Remove(i, j, k)
}

// Fill implements grid.Grid.
func (s *Synchronized[T]) Fill(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.Fill(v)
}

// FillEmpty implements grid.Grid.
func (s *Synchronized[T]) FillEmpty(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.FillEmpty(v)
}

// FillIf implements grid.Grid. pred runs under the monitor and must not
// call back into the wrapper.
func (s *Synchronized[T]) FillIf(v T, pred func(T) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.FillIf(v, pred)
}

// ReplaceAll implements grid.Grid.
func (s *Synchronized[T]) ReplaceAll(old, new T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.ReplaceAll(old, new)
}

// Apply implements grid.Grid. fn runs under the monitor and must not call
// back into the wrapper.
func (s *Synchronized[T]) Apply(fn func(T) T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.Apply(fn)
}

// ApplyIndexed implements grid.Grid. fn runs under the monitor and must
// not call back into the wrapper.
func (s *Synchronized[T]) ApplyIndexed(fn func(grid.Index, T) T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.ApplyIndexed(fn)
}

// SubGrid implements grid.Grid; the copy is returned unwrapped.
func (s *Synchronized[T]) SubGrid(from, to grid.Index) (grid.Grid[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.SubGrid(from, to)
}

// SetRange implements grid.Grid. A synchronized source is snapshotted
// first, so copying a wrapped grid into itself is safe.
func (s *Synchronized[T]) SetRange(off grid.Index, src grid.Grid[T]) error {
	src = unwrapArg(src)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.SetRange(off, src)
}

// Resize implements grid.Grid; the new grid is returned unwrapped.
func (s *Synchronized[T]) Resize(w, h, d int) (grid.Grid[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Resize(w, h, d)
}

// Merge implements grid.Grid; the combined grid is returned unwrapped.
func (s *Synchronized[T]) Merge(other grid.Grid[T], fn func(a, b T) T) (grid.Grid[T], error) {
	other = unwrapArg(other)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Merge(other, fn)
}

// Equal implements grid.Grid.
func (s *Synchronized[T]) Equal(other grid.Grid[T]) bool {
	other = unwrapArg(other)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Equal(other)
}

// Each traverses a snapshot of the grid, not a live view.
func (s *Synchronized[T]) Each(fn func(idx grid.Index, v T) bool) {
	s.Snapshot().Each(fn)
}

// ToSlice implements grid.Grid.
func (s *Synchronized[T]) ToSlice() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.ToSlice()
}

// ToMap implements grid.Grid.
func (s *Synchronized[T]) ToMap() map[grid.Index]T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.ToMap()
}

// Clone implements grid.Grid; the copy is returned unwrapped.
func (s *Synchronized[T]) Clone() grid.Grid[T] {
	return s.Snapshot()
}

// Stats implements grid.Grid.
func (s *Synchronized[T]) Stats() grid.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Stats()
}

// Clean forwards to the inner backing if it supports compaction.
func (s *Synchronized[T]) Clean() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.inner.(grid.Compactable); ok {
		return c.Clean()
	}
	return 0
}

// Trim forwards to the inner backing if it supports compaction.
func (s *Synchronized[T]) Trim() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.inner.(grid.Compactable); ok {
		c.Trim()
	}
}

// SetSize forwards to the inner backing, or returns grid.ErrFixedShape if
// its shape cannot be overridden.
func (s *Synchronized[T]) SetSize(w, h, d int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.inner.(grid.Reshapable); ok {
		return r.SetSize(w, h, d)
	}
	return grid.ErrFixedShape
}

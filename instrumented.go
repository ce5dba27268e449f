package voxgo

import (
	"time"

	"github.com/hupe1980/voxgo/grid"
)

var _ grid.Grid[int] = (*Instrumented[int])(nil)

// Instrumented decorates a grid, reporting operation timings to a
// MetricsCollector. Reads of shape and conversions pass through
// unrecorded; single-slot accesses and bulk mutations are timed.
type Instrumented[T comparable] struct {
	inner   grid.Grid[T]
	metrics MetricsCollector
}

// NewInstrumented wraps g with metrics collection. A nil collector falls
// back to the no-op collector.
func NewInstrumented[T comparable](g grid.Grid[T], mc MetricsCollector) *Instrumented[T] {
	if mc == nil {
		mc = NoopMetricsCollector{}
	}
	return &Instrumented[T]{inner: g, metrics: mc}
}

func (m *Instrumented[T]) bulk(op string, fn func()) {
	start := time.Now()
	fn()
	m.metrics.RecordBulk(op, m.inner.Size(), time.Since(start))
}

// Dims implements grid.Grid.
func (m *Instrumented[T]) Dims() grid.Dims { return m.inner.Dims() }

// Size implements grid.Grid.
func (m *Instrumented[T]) Size() int { return m.inner.Size() }

// Occupied implements grid.Grid.
func (m *Instrumented[T]) Occupied() int { return m.inner.Occupied() }

// Get implements grid.Grid.
func (m *Instrumented[T]) Get(i, j, k int) (T, error) {
	start := time.Now()
	v, err := m.inner.Get(i, j, k)
	m.metrics.RecordGet(time.Since(start), err)
	return v, err
}

// At implements grid.Grid.
func (m *Instrumented[T]) At(idx grid.Index) (T, error) {
	return m.Get(idx.I, idx.J, idx.K)
}

// Set implements grid.Grid.
func (m *Instrumented[T]) Set(i, j, k int, v T) error {
	start := time.Now()
	err := m.inner.Set(i, j, k, v)
	m.metrics.RecordSet(time.Since(start), err)
	return err
}

// SetAt implements grid.Grid.
func (m *Instrumented[T]) SetAt(idx grid.Index, v T) error {
	return m.Set(idx.I, idx.J, idx.K, v)
}

// Has implements grid.Grid.
func (m *Instrumented[T]) Has(i, j, k int) bool { return m.inner.Has(i, j, k) }

// Remove implements grid.Grid.
func (m *Instrumented[T]) Remove(i, j, k int) (bool, error) {
	start := time.Now()
	changed, err := m.inner.Remove(i, j, k)
	m.metrics.RecordRemove(time.Since(start), err)
	return changed, err
}

// Fill implements grid.Grid.
func (m *Instrumented[T]) Fill(v T) {
	m.bulk("fill", func() { m.inner.Fill(v) })
}

// FillEmpty implements grid.Grid.
func (m *Instrumented[T]) FillEmpty(v T) {
	m.bulk("fill_empty", func() { m.inner.FillEmpty(v) })
}

// FillIf implements grid.Grid.
func (m *Instrumented[T]) FillIf(v T, pred func(T) bool) {
	m.bulk("fill_if", func() { m.inner.FillIf(v, pred) })
}

// ReplaceAll implements grid.Grid.
func (m *Instrumented[T]) ReplaceAll(old, new T) {
	m.bulk("replace_all", func() { m.inner.ReplaceAll(old, new) })
}

// Apply implements grid.Grid.
func (m *Instrumented[T]) Apply(fn func(T) T) {
	m.bulk("apply", func() { m.inner.Apply(fn) })
}

// ApplyIndexed implements grid.Grid.
func (m *Instrumented[T]) ApplyIndexed(fn func(grid.Index, T) T) {
	m.bulk("apply_indexed", func() { m.inner.ApplyIndexed(fn) })
}

// SubGrid implements grid.Grid; the copy is returned unwrapped.
func (m *Instrumented[T]) SubGrid(from, to grid.Index) (grid.Grid[T], error) {
	return m.inner.SubGrid(from, to)
}

// SetRange implements grid.Grid.
func (m *Instrumented[T]) SetRange(off grid.Index, src grid.Grid[T]) error {
	start := time.Now()
	err := m.inner.SetRange(off, src)
	m.metrics.RecordBulk("set_range", src.Size(), time.Since(start))
	return err
}

// Resize implements grid.Grid; the new grid is returned unwrapped.
func (m *Instrumented[T]) Resize(w, h, d int) (grid.Grid[T], error) {
	return m.inner.Resize(w, h, d)
}

// Merge implements grid.Grid; the combined grid is returned unwrapped.
func (m *Instrumented[T]) Merge(other grid.Grid[T], fn func(a, b T) T) (grid.Grid[T], error) {
	return m.inner.Merge(other, fn)
}

// Equal implements grid.Grid.
func (m *Instrumented[T]) Equal(other grid.Grid[T]) bool {
	if o, ok := other.(*Instrumented[T]); ok {
		other = o.inner
	}
	return m.inner.Equal(other)
}

// Each implements grid.Grid.
func (m *Instrumented[T]) Each(fn func(idx grid.Index, v T) bool) {
	m.inner.Each(fn)
}

// ToSlice implements grid.Grid.
func (m *Instrumented[T]) ToSlice() []T { return m.inner.ToSlice() }

// ToMap implements grid.Grid.
func (m *Instrumented[T]) ToMap() map[grid.Index]T { return m.inner.ToMap() }

// Clone implements grid.Grid; the copy is returned unwrapped.
func (m *Instrumented[T]) Clone() grid.Grid[T] { return m.inner.Clone() }

// Stats implements grid.Grid.
func (m *Instrumented[T]) Stats() grid.Stats { return m.inner.Stats() }

// Clean forwards to the inner backing if it supports compaction.
func (m *Instrumented[T]) Clean() int {
	if c, ok := m.inner.(grid.Compactable); ok {
		var n int
		m.bulk("clean", func() { n = c.Clean() })
		return n
	}
	return 0
}

// Trim forwards to the inner backing if it supports compaction.
func (m *Instrumented[T]) Trim() {
	if c, ok := m.inner.(grid.Compactable); ok {
		m.bulk("trim", func() { c.Trim() })
	}
}

// SetSize forwards to the inner backing, or returns grid.ErrFixedShape if
// its shape cannot be overridden.
func (m *Instrumented[T]) SetSize(w, h, d int) error {
	if r, ok := m.inner.(grid.Reshapable); ok {
		return r.SetSize(w, h, d)
	}
	return grid.ErrFixedShape
}

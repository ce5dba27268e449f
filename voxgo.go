package voxgo

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/voxgo/grid"
	"github.com/hupe1980/voxgo/grid/dense"
	"github.com/hupe1980/voxgo/grid/sparse"
)

const (
	// DefaultSmallGridThreshold is the volume at or below which FromSlices
	// always picks the dense backing: sparse bookkeeping is not worth it
	// for small grids.
	DefaultSmallGridThreshold = 512

	// parallelScanThreshold is the volume from which the absent-entry scan
	// fans out across planes.
	parallelScanThreshold = 1 << 16
)

type options struct {
	logger             *Logger
	metrics            MetricsCollector
	smallGridThreshold int
}

// Option configures the selection factory.
type Option func(*options)

// WithLogger configures the logger used to report strategy decisions.
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetrics wraps the selected grid in an instrumented decorator
// reporting to the given collector.
func WithMetrics(mc MetricsCollector) Option {
	return func(o *options) {
		o.metrics = mc
	}
}

// WithSmallGridThreshold overrides the volume below which the dense
// backing is always selected.
func WithSmallGridThreshold(n int) Option {
	return func(o *options) {
		o.smallGridThreshold = n
	}
}

// FromSlices builds a grid from a rectangular nested-slice payload,
// selecting the backing strategy once at construction time:
//
//  1. Volumes at or below the small-grid threshold are always dense.
//  2. Otherwise the payload is scanned once, counting absent (zero value)
//     entries.
//  3. If more than a third of the volume is absent the sparse backing is
//     selected, else the dense one.
//
// A grid never migrates strategy afterward. The single linear scan at
// construction buys an amortized win over the container's lifetime:
// dense arrays iterate faster but waste memory on mostly empty cuboids.
func FromSlices[T comparable](data [][][]T, optFns ...Option) (grid.Grid[T], error) {
	o := options{
		logger:             NoopLogger(),
		smallGridThreshold: DefaultSmallGridThreshold,
	}
	for _, fn := range optFns {
		fn(&o)
	}

	dims, ok := grid.DimsOfSlices(data)
	if !ok {
		return nil, grid.ErrRaggedSlices
	}

	strategy := "dense"
	absent := 0
	if vol := dims.Volume(); vol > o.smallGridThreshold {
		absent = countAbsent(data, dims)
		if absent > vol/3 {
			strategy = "sparse"
		}
	}

	var (
		g   grid.Grid[T]
		err error
	)
	if strategy == "sparse" {
		g, err = sparse.FromSlices(data)
	} else {
		g, err = dense.FromSlices(data)
	}
	if err != nil {
		return nil, err
	}

	o.logger.WithStrategy(strategy).WithDims(dims).LogSelect(dims.Volume(), absent)

	if o.metrics != nil {
		return NewInstrumented(g, o.metrics), nil
	}
	return g, nil
}

// countAbsent counts zero-value entries in the payload. Large payloads are
// scanned plane-parallel.
func countAbsent[T comparable](data [][][]T, dims grid.Dims) int {
	var zero T

	countPlane := func(plane [][]T) int {
		n := 0
		for _, row := range plane {
			for _, v := range row {
				if v == zero {
					n++
				}
			}
		}
		return n
	}

	if dims.Volume() < parallelScanThreshold || dims.W < 2 {
		n := 0
		for _, plane := range data {
			n += countPlane(plane)
		}
		return n
	}

	counts := make([]int, len(data))
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, plane := range data {
		eg.Go(func() error {
			counts[i] = countPlane(plane)
			return nil
		})
	}
	_ = eg.Wait() // scan goroutines never fail

	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}

// Map transforms every slot of g into a new element type, producing a grid
// of identical shape. The backing strategy is preserved for plain dense and
// sparse grids; anything else (decorated grids included) maps to a dense
// result.
func Map[T, U comparable](g grid.Grid[T], fn func(T) U) grid.Grid[U] {
	switch s := g.(type) {
	case *dense.Dense[T]:
		return dense.Map(s, fn)
	case *sparse.Sparse[T]:
		return sparse.Map(s, fn)
	}
	d := g.Dims()
	out, _ := dense.New[U](d.W, d.H, d.D)
	g.Each(func(idx grid.Index, v T) bool {
		_ = out.SetAt(idx, fn(v))
		return true
	})
	return out
}

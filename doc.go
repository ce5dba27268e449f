// Package voxgo provides three-dimensional indexed containers for Go.
//
// A voxgo grid stores elements of a single comparable type at addresses in
// the cuboid [0,W) x [0,H) x [0,D). Two interchangeable backings implement
// one contract: a dense backing (fixed shape, contiguous storage, O(1)
// access) and a sparse backing (map-keyed storage, implicit bounding-box
// growth). The zero value of the element type is the absence marker.
//
// # Quick Start
//
// Let the factory pick the backing from the payload's size and emptiness:
//
//	g, _ := voxgo.FromSlices(payload)          // [][][]T, rectangular
//	v, _ := g.Get(1, 2, 3)
//	_ = g.Set(1, 2, 3, v+1)
//
// Or construct a backing directly:
//
//	d, _ := dense.New[int](16, 16, 16)         // fixed shape
//	s := sparse.New[int]()                      // grows as you set
//	_ = s.Set(500, 0, 0, 7)                     // dims now 501x1x1
//
// # Selection Heuristic
//
// FromSlices picks dense for small volumes, otherwise scans the payload
// once and picks sparse when more than a third of the slots are absent.
// The decision is made once at construction; a grid never migrates
// strategy afterward.
//
// # Concurrency
//
// Backings are passive data structures with no thread-safety of their
// own; concurrent mutation is caller responsibility. Wrap a grid for
// coarse whole-object locking:
//
//	sg := voxgo.NewSynchronized(g)
//	sg.Apply(func(v int) int { return v + 1 }) // serialized
//	sg.Atomic(func(g grid.Grid[int]) {         // multi-step sequence
//	    v, _ := g.Get(0, 0, 0)
//	    _ = g.Set(0, 0, 0, v*2)
//	})
//
// # Observability
//
// Wrap a grid to report operation timings to a MetricsCollector:
//
//	var mc voxgo.BasicMetricsCollector
//	ig := voxgo.NewInstrumented(g, &mc)
//
// # Key Features
//
//   - One contract, two backings (dense / sparse), selected by heuristic
//   - Bulk operations: fill, conditional fill, replace, apply, range copy
//   - Shape operations: sub-grid, resize with overlap copy, trim
//   - Order-stable flattening with exact round-trip reconstruction
//   - Coarse synchronization and metrics decorators
package voxgo

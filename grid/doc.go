// Package grid defines the common contract for three-dimensional indexed
// containers, the Index key type with its flyweight pool, and the typed
// errors shared by all backings.
//
// A grid stores elements of a single comparable type T at addresses in the
// cuboid [0,W) x [0,H) x [0,D). The zero value of T is the absence marker:
// a slot holding the zero value is considered empty. Callers whose element
// domain includes the zero value as meaningful data should wrap it in a
// pointer or a struct with a validity flag.
//
// # Traversal order
//
// Every ordered traversal (Each, ToSlice, the bulk mutation operations)
// visits slots with i as the outer loop, j as the middle loop and k as the
// inner loop. Flattening a grid with ToSlice and reconstructing it with a
// backing's FromSlice therefore reproduces the original contents exactly.
//
// # Concurrency
//
// Backings are not safe for concurrent mutation; that is caller
// responsibility. Wrap a grid with voxgo.NewSynchronized for coarse
// whole-object locking.
package grid

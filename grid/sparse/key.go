package sparse

import "github.com/hupe1980/voxgo/internal/zorder"

// Cell keys are z-order codes: collision-free over the representable
// range and spatially local, which keeps the occupancy bitmap compact.

const zorderMax = zorder.MaxCoord

func encode(i, j, k int) uint64 { return zorder.Encode(i, j, k) }

func decode(code uint64) (i, j, k int) { return zorder.Decode(code) }

func inRange(i, j, k int) bool { return zorder.InRange(i, j, k) }

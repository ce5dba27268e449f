package sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/voxgo/grid"
	"github.com/hupe1980/voxgo/grid/dense"
)

func TestGrowth(t *testing.T) {
	t.Run("SetBeyondDimsGrows", func(t *testing.T) {
		g, err := WithDims[int](2, 2, 2)
		require.NoError(t, err)
		require.NoError(t, g.Set(5, 0, 0, 1))
		assert.GreaterOrEqual(t, g.Dims().W, 6)
		assert.Equal(t, g.Dims().Volume(), g.Size())
	})

	t.Run("RunningMaxPerAxis", func(t *testing.T) {
		g := New[int]()
		require.NoError(t, g.Set(3, 0, 0, 1))
		require.NoError(t, g.Set(0, 7, 0, 1))
		require.NoError(t, g.Set(0, 0, 2, 1))
		assert.Equal(t, grid.Dims{W: 4, H: 8, D: 3}, g.Dims())
	})

	t.Run("CoordinateCeiling", func(t *testing.T) {
		g := New[int]()
		var oob *grid.ErrOutOfBounds
		require.ErrorAs(t, g.Set(-1, 0, 0, 1), &oob)
		require.ErrorAs(t, g.Set(0, MaxCoord+1, 0, 1), &oob)
		require.NoError(t, g.Set(MaxCoord, 0, 0, 1))
		assert.Equal(t, MaxCoord+1, g.Dims().W)
	})
}

func TestGet(t *testing.T) {
	g, err := WithDims[int](2, 2, 2)
	require.NoError(t, err)
	require.NoError(t, g.Set(1, 1, 1, 9))

	t.Run("AbsentWithinDimsYieldsZero", func(t *testing.T) {
		v, err := g.Get(0, 0, 0)
		require.NoError(t, err)
		assert.Zero(t, v)
		assert.False(t, g.Has(0, 0, 0))
	})

	t.Run("OutsideDimsFails", func(t *testing.T) {
		// Dimensions act as the valid-range ceiling even though storage is
		// sparse everywhere.
		_, err := g.Get(2, 0, 0)
		var oob *grid.ErrOutOfBounds
		require.ErrorAs(t, err, &oob)
		assert.Equal(t, grid.At(2, 0, 0), oob.Index)
	})

	t.Run("Present", func(t *testing.T) {
		v, err := g.Get(1, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, 9, v)
		assert.True(t, g.Has(1, 1, 1))
	})
}

func TestRemoveCleanTrim(t *testing.T) {
	t.Run("RemoveDoesNotShrink", func(t *testing.T) {
		g := New[int]()
		require.NoError(t, g.Set(4, 4, 4, 1))
		changed, err := g.Remove(4, 4, 4)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, grid.Dims{W: 5, H: 5, D: 5}, g.Dims())

		changed, err = g.Remove(4, 4, 4)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("TrimShrinksToBoundingBox", func(t *testing.T) {
		g := New[int]()
		require.NoError(t, g.Set(0, 0, 0, 7))
		require.NoError(t, g.Set(1, 1, 1, 9))
		require.Equal(t, grid.Dims{W: 2, H: 2, D: 2}, g.Dims())

		_, err := g.Remove(1, 1, 1)
		require.NoError(t, err)
		g.Trim()
		assert.Equal(t, grid.Dims{W: 1, H: 1, D: 1}, g.Dims())
	})

	t.Run("TrimOnEmpty", func(t *testing.T) {
		g, err := WithDims[int](3, 3, 3)
		require.NoError(t, err)
		g.Trim()
		assert.Equal(t, grid.Dims{}, g.Dims())
	})

	t.Run("CleanDropsStoredMarkers", func(t *testing.T) {
		g := New[int]()
		// Writing the absence marker stores an entry instead of removing.
		require.NoError(t, g.Set(2, 2, 2, 0))
		assert.Equal(t, 1, g.Stored())
		assert.Equal(t, 0, g.Occupied())

		dropped := g.Clean()
		assert.Equal(t, 1, dropped)
		assert.Equal(t, 0, g.Stored())
		assert.Equal(t, grid.Dims{W: 3, H: 3, D: 3}, g.Dims(), "clean leaves bounds alone")
	})
}

func TestSetSize(t *testing.T) {
	g := New[int]()
	require.NoError(t, g.Set(4, 4, 4, 1))

	require.NoError(t, g.SetSize(2, 2, 2))
	assert.Equal(t, grid.Dims{W: 2, H: 2, D: 2}, g.Dims())

	// The stored cell is now unreachable through Get until Trim or a
	// growing Set restores the box.
	_, err := g.Get(4, 4, 4)
	var oob *grid.ErrOutOfBounds
	require.ErrorAs(t, err, &oob)

	g.Trim()
	assert.Equal(t, grid.Dims{W: 5, H: 5, D: 5}, g.Dims())

	assert.ErrorIs(t, g.SetSize(-1, 0, 0), grid.ErrInvalidDimensions)

	t.Run("CoordinateCeiling", func(t *testing.T) {
		g := New[int]()
		require.NoError(t, g.Set(0, 0, 0, 9))

		// A shape beyond the representable range would let in-dims
		// coordinates alias other cells through the key packing.
		var oob *grid.ErrOutOfBounds
		require.ErrorAs(t, g.SetSize(MaxCoord+2, 1, 1), &oob)
		assert.Equal(t, grid.Dims{W: 1, H: 1, D: 1}, g.Dims(), "rejected override leaves the shape alone")

		_, err := g.Get(MaxCoord+1, 0, 0)
		require.ErrorAs(t, err, &oob, "aliasing coordinate stays unreadable")

		require.NoError(t, g.SetSize(MaxCoord+1, 1, 1))
		assert.Equal(t, MaxCoord+1, g.Dims().W)
	})
}

func TestBulkMutation(t *testing.T) {
	t.Run("FillMaterializesDeclaredVolume", func(t *testing.T) {
		g, _ := WithDims[int](2, 2, 2)
		g.Fill(7)
		assert.Equal(t, 8, g.Occupied())
		assert.Equal(t, 8, g.Stored())
	})

	t.Run("FillEmptyVisitsImplicitSlots", func(t *testing.T) {
		g, _ := WithDims[int](2, 2, 2)
		require.NoError(t, g.Set(0, 0, 0, 1))
		g.FillEmpty(5)
		v, _ := g.Get(0, 0, 0)
		assert.Equal(t, 1, v)
		assert.Equal(t, 7, grid.CountIf[int](g, func(v int) bool { return v == 5 }))
	})

	t.Run("FillIfMatchesDense", func(t *testing.T) {
		s, _ := WithDims[int](2, 2, 2)
		d, _ := dense.New[int](2, 2, 2)
		require.NoError(t, s.Set(1, 0, 1, 3))
		require.NoError(t, d.Set(1, 0, 1, 3))

		pred := func(v int) bool { return v < 2 }
		s.FillIf(9, pred)
		d.FillIf(9, pred)
		assert.True(t, s.Equal(d))
	})

	t.Run("ApplyDematerializesZeroResults", func(t *testing.T) {
		g, _ := WithDims[int](2, 2, 2)
		g.Fill(1)
		g.Apply(func(v int) int { return v - 1 })
		assert.Equal(t, 0, g.Occupied())
		assert.Equal(t, 0, g.Stored())
		assert.Equal(t, grid.Dims{W: 2, H: 2, D: 2}, g.Dims())
	})

	t.Run("ApplyIndexed", func(t *testing.T) {
		g, _ := WithDims[int](2, 2, 2)
		g.ApplyIndexed(func(idx grid.Index, _ int) int {
			return idx.I*100 + idx.J*10 + idx.K
		})
		v, _ := g.Get(1, 1, 0)
		assert.Equal(t, 110, v)
		assert.False(t, g.Has(0, 0, 0), "zero result stays absent")
	})

	t.Run("ReplaceAll", func(t *testing.T) {
		g, _ := WithDims[int](2, 2, 2)
		require.NoError(t, g.Set(0, 0, 0, 3))
		require.NoError(t, g.Set(1, 1, 1, 3))
		g.ReplaceAll(3, 8)
		assert.Equal(t, 2, grid.CountIf[int](g, func(v int) bool { return v == 8 }))

		// Replacing the absence marker fills the declared volume.
		g.ReplaceAll(0, 1)
		assert.Equal(t, 8, g.Occupied())
	})
}

func TestShapeOperations(t *testing.T) {
	g := New[int]()
	require.NoError(t, g.Set(0, 0, 0, 1))
	require.NoError(t, g.Set(2, 2, 2, 9))

	t.Run("SubGrid", func(t *testing.T) {
		sub, err := g.SubGrid(grid.At(1, 1, 1), grid.At(3, 3, 3))
		require.NoError(t, err)
		assert.Equal(t, grid.Dims{W: 2, H: 2, D: 2}, sub.Dims())
		v, _ := sub.Get(1, 1, 1)
		assert.Equal(t, 9, v)
		assert.Equal(t, 1, sub.Occupied())

		var oob *grid.ErrOutOfBounds
		_, err = g.SubGrid(grid.At(0, 0, 0), grid.At(4, 1, 1))
		require.ErrorAs(t, err, &oob)
	})

	t.Run("SetRangeGrows", func(t *testing.T) {
		dst, _ := WithDims[int](1, 1, 1)
		src, _ := dense.New[int](2, 2, 2)
		require.NoError(t, src.Set(1, 1, 1, 4))

		require.NoError(t, dst.SetRange(grid.At(2, 2, 2), src))
		assert.Equal(t, grid.Dims{W: 4, H: 4, D: 4}, dst.Dims())
		v, _ := dst.Get(3, 3, 3)
		assert.Equal(t, 4, v)
	})

	t.Run("ResizePreservesOverlap", func(t *testing.T) {
		small, err := g.Resize(1, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, grid.Dims{W: 1, H: 1, D: 1}, small.Dims())
		v, _ := small.Get(0, 0, 0)
		assert.Equal(t, 1, v)

		big, err := g.Resize(5, 5, 5)
		require.NoError(t, err)
		v, _ = big.Get(2, 2, 2)
		assert.Equal(t, 9, v)
		assert.False(t, big.Has(4, 4, 4))

		// Receiver untouched.
		assert.Equal(t, grid.Dims{W: 3, H: 3, D: 3}, g.Dims())
	})
}

func TestMerge(t *testing.T) {
	t.Run("ElementWise", func(t *testing.T) {
		a, _ := WithDims[int](2, 2, 2)
		b, _ := WithDims[int](2, 2, 2)
		require.NoError(t, a.Set(0, 0, 0, 2))
		require.NoError(t, b.Set(0, 0, 0, 3))
		require.NoError(t, b.Set(1, 1, 1, 4))

		sum, err := a.Merge(b, func(x, y int) int { return x + y })
		require.NoError(t, err)
		v, _ := sum.Get(0, 0, 0)
		assert.Equal(t, 5, v)
		v, _ = sum.Get(1, 1, 1)
		assert.Equal(t, 4, v)
		assert.Equal(t, 2, sum.Occupied())
	})

	t.Run("DimensionMismatch", func(t *testing.T) {
		a, _ := WithDims[int](2, 2, 2)
		b, _ := WithDims[int](3, 2, 2)
		for _, fn := range []func(x, y int) int{
			func(x, y int) int { return x + y },
			func(x, _ int) int { return x },
		} {
			_, err := a.Merge(b, fn)
			var dm *grid.ErrDimensionMismatch
			require.ErrorAs(t, err, &dm)
		}
	})

	t.Run("ZeroResultsNotMaterialized", func(t *testing.T) {
		a, _ := WithDims[int](2, 2, 2)
		b, _ := WithDims[int](2, 2, 2)
		a.Fill(1)
		b.Fill(1)
		diff, err := a.Merge(b, func(x, y int) int { return x - y })
		require.NoError(t, err)
		assert.Equal(t, 0, diff.(*Sparse[int]).Stored())
	})
}

func TestConversions(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		g, _ := WithDims[int](2, 3, 2)
		require.NoError(t, g.Set(0, 2, 1, 5))
		require.NoError(t, g.Set(1, 0, 0, 6))

		back, err := FromSlice(g.Dims(), g.ToSlice())
		require.NoError(t, err)
		assert.True(t, g.Equal(back))
	})

	t.Run("CrossBackingRoundTrip", func(t *testing.T) {
		s, _ := WithDims[int](2, 2, 2)
		require.NoError(t, s.Set(1, 0, 1, 3))

		d, err := dense.FromSlice(s.Dims(), s.ToSlice())
		require.NoError(t, err)
		assert.True(t, s.Equal(d))
		assert.True(t, d.Equal(s))
	})

	t.Run("FromSliceNegativeDims", func(t *testing.T) {
		// Sign validation comes before the length check, so a negative
		// volume never surfaces as a length mismatch.
		_, err := FromSlice[int](grid.Dims{W: -1, H: 2, D: 2}, nil)
		assert.ErrorIs(t, err, grid.ErrInvalidDimensions)
	})

	t.Run("ToMap", func(t *testing.T) {
		g, _ := WithDims[int](2, 2, 2)
		require.NoError(t, g.Set(0, 1, 0, 4))
		require.NoError(t, g.Set(1, 1, 1, 0)) // stored marker, not exported
		m := g.ToMap()
		require.Len(t, m, 1)
		assert.Equal(t, 4, m[grid.IndexOf(0, 1, 0)])
	})

	t.Run("FromSlices", func(t *testing.T) {
		data := [][][]int{
			{{0, 0}, {0, 2}},
			{{0, 0}, {0, 0}},
		}
		g, err := FromSlices(data)
		require.NoError(t, err)
		assert.Equal(t, grid.Dims{W: 2, H: 2, D: 2}, g.Dims())
		assert.Equal(t, 1, g.Stored(), "zeros are not materialized")

		_, err = FromSlices([][][]int{{{1}}, {{1}, {2}}})
		assert.ErrorIs(t, err, grid.ErrRaggedSlices)
	})
}

func TestEqual(t *testing.T) {
	t.Run("BitmapFastPath", func(t *testing.T) {
		a, _ := WithDims[int](2, 2, 2)
		b, _ := WithDims[int](2, 2, 2)
		require.NoError(t, a.Set(1, 1, 1, 5))
		require.NoError(t, b.Set(1, 1, 1, 5))
		assert.True(t, a.Equal(b))

		require.NoError(t, b.Set(1, 1, 1, 6))
		assert.False(t, a.Equal(b))
	})

	t.Run("StoredMarkerDoesNotBreakEquality", func(t *testing.T) {
		a, _ := WithDims[int](2, 2, 2)
		b, _ := WithDims[int](2, 2, 2)
		require.NoError(t, a.Set(0, 0, 0, 0)) // marker materialized in a only
		assert.True(t, a.Equal(b))
		assert.True(t, b.Equal(a))
	})

	t.Run("ShrunkOutCellsIgnored", func(t *testing.T) {
		// Cells left outside the declared shape by a SetSize shrink must
		// not affect the comparison, whichever operand carries them.
		a, _ := WithDims[int](2, 2, 2)
		b, _ := WithDims[int](2, 2, 2)
		require.NoError(t, a.Set(0, 0, 0, 1))
		require.NoError(t, b.Set(0, 0, 0, 1))
		require.NoError(t, a.Set(3, 3, 3, 7))
		require.NoError(t, b.Set(3, 3, 3, 8))
		require.NoError(t, a.SetSize(2, 2, 2))
		require.NoError(t, b.SetSize(2, 2, 2))

		assert.True(t, a.Equal(b))
		assert.True(t, b.Equal(a))

		require.NoError(t, b.Set(1, 1, 1, 2))
		assert.False(t, a.Equal(b), "in-dims difference still detected")
	})

	t.Run("DimsMismatch", func(t *testing.T) {
		a, _ := WithDims[int](2, 2, 2)
		b, _ := WithDims[int](2, 2, 3)
		assert.False(t, a.Equal(b))
	})
}

func TestCloneAndStats(t *testing.T) {
	g, _ := WithDims[int](4, 4, 4)
	require.NoError(t, g.Set(0, 0, 0, 1))
	require.NoError(t, g.Set(1, 2, 3, 2))
	require.NoError(t, g.Set(3, 3, 3, 0)) // stored marker

	t.Run("CloneIsIndependent", func(t *testing.T) {
		c := g.Clone()
		assert.True(t, g.Equal(c))
		require.NoError(t, c.Set(0, 0, 0, -1))
		v, _ := g.Get(0, 0, 0)
		assert.Equal(t, 1, v)
	})

	t.Run("Stats", func(t *testing.T) {
		s := g.Stats()
		assert.Equal(t, "sparse", s.Strategy)
		assert.Equal(t, 64, s.Size)
		assert.Equal(t, 2, s.Occupied)
		assert.Equal(t, 3, s.Stored)
		assert.InDelta(t, 2.0/64.0, s.Occupancy, 1e-9)
	})
}

func TestMap(t *testing.T) {
	g, _ := WithDims[int](2, 2, 2)
	require.NoError(t, g.Set(0, 0, 1, 2))

	labels := Map(g, func(v int) string {
		if v == 0 {
			return "" // stays absent
		}
		return "set"
	})
	assert.Equal(t, g.Dims(), labels.Dims())
	assert.Equal(t, 1, labels.Stored())
	v, err := labels.Get(0, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, "set", v)
}

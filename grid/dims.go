package grid

import "fmt"

// Dims describes the shape of a grid: the cuboid [0,W) x [0,H) x [0,D).
type Dims struct {
	W, H, D int
}

// Volume returns W*H*D, the number of slots the shape declares.
func (d Dims) Volume() int {
	return d.W * d.H * d.D
}

// Contains reports whether the index lies inside the cuboid.
func (d Dims) Contains(x Index) bool {
	return d.ContainsCoords(x.I, x.J, x.K)
}

// ContainsCoords reports whether (i,j,k) lies inside the cuboid.
func (d Dims) ContainsCoords(i, j, k int) bool {
	return i >= 0 && i < d.W &&
		j >= 0 && j < d.H &&
		k >= 0 && k < d.D
}

func (d Dims) String() string {
	return fmt.Sprintf("%dx%dx%d", d.W, d.H, d.D)
}

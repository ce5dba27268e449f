package grid

// Stats is a point-in-time summary of a backing. Stored counts explicitly
// written absence markers on sparse backings; on dense backings it equals
// Size.
type Stats struct {
	// Strategy names the backing ("dense", "sparse", ...).
	Strategy string

	// Dims is the declared shape.
	Dims Dims

	// Size is the declared volume.
	Size int

	// Occupied is the number of slots holding a non-zero value.
	Occupied int

	// Stored is the number of physically materialized slots.
	Stored int

	// Occupancy is Occupied/Size, or 0 for an empty volume.
	Occupancy float64
}

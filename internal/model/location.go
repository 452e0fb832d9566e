package model

// Location хранит позицию и поворот объекта в мире.
// Value type, передаётся по значению (immutable).
// Heading encodes rotation around the vertical axis (0-65535 = full turn).
type Location struct {
	X       int32
	Y       int32
	Z       int32
	Heading uint16
}

// NewLocation создаёт Location с указанными координатами.
func NewLocation(x, y, z int32, heading uint16) Location {
	return Location{X: x, Y: y, Z: z, Heading: heading}
}

// WithHeading возвращает новый Location с обновлённым направлением.
func (l Location) WithHeading(heading uint16) Location {
	l.Heading = heading
	return l
}

// DistanceSquared returns squared distance to other (no sqrt on the hot path).
func (l Location) DistanceSquared(other Location) int64 {
	dx := int64(l.X) - int64(other.X)
	dy := int64(l.Y) - int64(other.Y)
	dz := int64(l.Z) - int64(other.Z)
	return dx*dx + dy*dy + dz*dz
}

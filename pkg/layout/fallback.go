package layout

import "github.com/matzehuels/strut/pkg/geom"

// Fallback resolves an axis the constraint set left completely untouched.
// It stands in for the hosting environment's native autoresizing behavior:
// the engine never reimplements that behavior itself, it only delegates axes
// it did not resolve. The old and new container bounds are provided so
// implementations can scale relative to the geometry change.
type Fallback interface {
	// ResolveAxis returns the new (min, size) for the axis, given the item's
	// current values and the container's old and new bounds.
	ResolveAxis(axis geom.Axis, min, size float64, old, new geom.Rect) (float64, float64)
}

// Autoresize is the classic spring-loaded fallback: position and size scale
// proportionally to the container's change along the axis. A container whose
// old extent is zero leaves the item untouched (there is no meaningful ratio).
type Autoresize struct{}

// ResolveAxis implements [Fallback].
func (Autoresize) ResolveAxis(axis geom.Axis, min, size float64, old, new geom.Rect) (float64, float64) {
	oldSize := old.Size(axis)
	if oldSize == 0 {
		return min, size
	}
	ratio := new.Size(axis) / oldSize
	rel := min - old.Min(axis)
	return new.Min(axis) + rel*ratio, size * ratio
}

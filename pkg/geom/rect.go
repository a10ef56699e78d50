package geom

import "fmt"

// Rect is an axis-aligned frame in the container's coordinate space.
// X and Y locate the min corner; W and H are the extents.
// All values are in user units (typically points or pixels).
type Rect struct {
	X, Y, W, H float64
}

// MinX returns the left edge of the rect.
func (r Rect) MinX() float64 { return r.X }

// MidX returns the horizontal center of the rect.
func (r Rect) MidX() float64 { return r.X + r.W/2 }

// MaxX returns the right edge of the rect.
func (r Rect) MaxX() float64 { return r.X + r.W }

// Width returns the horizontal extent of the rect.
func (r Rect) Width() float64 { return r.W }

// MinY returns the top edge of the rect.
func (r Rect) MinY() float64 { return r.Y }

// MidY returns the vertical center of the rect.
func (r Rect) MidY() float64 { return r.Y + r.H/2 }

// MaxY returns the bottom edge of the rect.
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Height returns the vertical extent of the rect.
func (r Rect) Height() float64 { return r.H }

// Attr returns the value of the named attribute. Invalid attributes yield 0.
func (r Rect) Attr(a Attribute) float64 {
	switch a {
	case MinX:
		return r.MinX()
	case MidX:
		return r.MidX()
	case MaxX:
		return r.MaxX()
	case Width:
		return r.W
	case MinY:
		return r.MinY()
	case MidY:
		return r.MidY()
	case MaxY:
		return r.MaxY()
	case Height:
		return r.H
	}
	return 0
}

// Min returns the min component of the given axis (X or Y).
func (r Rect) Min(axis Axis) float64 {
	if axis == AxisY {
		return r.Y
	}
	return r.X
}

// Size returns the extent of the given axis (W or H).
func (r Rect) Size(axis Axis) float64 {
	if axis == AxisY {
		return r.H
	}
	return r.W
}

// WithAxis returns a copy of the rect with the given axis replaced by the
// resolved (min, size) pair. The other axis is untouched.
func (r Rect) WithAxis(axis Axis, min, size float64) Rect {
	if axis == AxisY {
		r.Y, r.H = min, size
	} else {
		r.X, r.W = min, size
	}
	return r
}

// String formats the rect as "(x, y, w, h)" with compact float formatting.
func (r Rect) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", r.X, r.Y, r.W, r.H)
}

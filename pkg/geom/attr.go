package geom

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAttribute is returned by [ParseAttribute] when the input does not
// name one of the eight geometric attributes.
var ErrUnknownAttribute = errors.New("unknown attribute")

// Axis identifies one of the two independent attribute groups of an element.
type Axis int

const (
	// AxisX groups the horizontal attributes MinX, MidX, MaxX and Width.
	AxisX Axis = iota
	// AxisY groups the vertical attributes MinY, MidY, MaxY and Height.
	AxisY
)

// String returns "x" or "y".
func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}

// Attribute is one of the eight named geometric quantities of an element.
// The enumeration is closed - values outside [MinX, Height] are invalid and
// rejected by constraint construction.
type Attribute int

const (
	// MinX is the left edge of the frame.
	MinX Attribute = iota
	// MidX is the horizontal center of the frame.
	MidX
	// MaxX is the right edge of the frame.
	MaxX
	// Width is the horizontal extent of the frame.
	Width
	// MinY is the top edge of the frame.
	MinY
	// MidY is the vertical center of the frame.
	MidY
	// MaxY is the bottom edge of the frame.
	MaxY
	// Height is the vertical extent of the frame.
	Height
)

var attributeNames = [...]string{
	MinX:   "minx",
	MidX:   "midx",
	MaxX:   "maxx",
	Width:  "width",
	MinY:   "miny",
	MidY:   "midy",
	MaxY:   "maxy",
	Height: "height",
}

// Valid reports whether the attribute is a member of the enumeration.
func (a Attribute) Valid() bool {
	return a >= MinX && a <= Height
}

// Axis returns the axis the attribute belongs to. Every attribute belongs to
// exactly one axis.
func (a Attribute) Axis() Axis {
	if a >= MinY {
		return AxisY
	}
	return AxisX
}

// IsSize reports whether the attribute is an extent (Width or Height) rather
// than a position.
func (a Attribute) IsSize() bool {
	return a == Width || a == Height
}

// String returns the lower-case attribute name (e.g. "midx", "height"), or
// a numeric placeholder for invalid values.
func (a Attribute) String() string {
	if !a.Valid() {
		return fmt.Sprintf("attribute(%d)", int(a))
	}
	return attributeNames[a]
}

// ParseAttribute converts a case-insensitive attribute name to its enumeration
// value. Accepted names are the String forms: "minx", "midx", "maxx", "width",
// "miny", "midy", "maxy" and "height". Returns [ErrUnknownAttribute] for
// anything else.
func ParseAttribute(s string) (Attribute, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for a, n := range attributeNames {
		if n == name {
			return Attribute(a), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAttribute, s)
}

// Attributes returns all eight attributes in declaration order.
// Useful for iterating the full enumeration in tests and diagnostics.
func Attributes() []Attribute {
	return []Attribute{MinX, MidX, MaxX, Width, MinY, MidY, MaxY, Height}
}

// component is the axis-local role of an attribute: MinX and MinY both act as
// the "min" component of their respective axis, and so on.
type component int

const (
	compMin component = iota
	compMid
	compMax
	compSize
)

func (a Attribute) component() component {
	switch a {
	case MinX, MinY:
		return compMin
	case MidX, MidY:
		return compMid
	case MaxX, MaxY:
		return compMax
	default:
		return compSize
	}
}

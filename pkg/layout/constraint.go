package layout

import (
	"fmt"

	"github.com/matzehuels/strut/pkg/errors"
	"github.com/matzehuels/strut/pkg/geom"
)

// Constraint pins one attribute of a target item to an affine function of a
// source attribute:
//
//	target.attr = source.attr*scale + offset
//
// A nil source means the container's own bounds, which are always fully known
// and act as roots of the dependency graph. The source attribute does not have
// to share the target's axis - width-from-height relationships are legal.
//
// Constraints are immutable after construction and compared by identity
// (pointer), never by value: the same relationship added twice is two distinct
// constraints as far as bookkeeping is concerned.
type Constraint struct {
	target     Item
	targetAttr geom.Attribute
	source     Item // nil → container bounds
	sourceAttr geom.Attribute
	scale      float64
	offset     float64
}

// NewConstraint creates a constraint with an explicit scale and offset.
//
// Returns an INVALID_CONSTRAINT error when target is nil, and an
// INVALID_ATTRIBUTE error when either attribute is outside the enumeration.
// The target may be any item; it only participates in layout once inserted
// into a container.
func NewConstraint(target Item, attr geom.Attribute, source Item, sourceAttr geom.Attribute, scale, offset float64) (*Constraint, error) {
	if target == nil {
		return nil, errors.New(errors.ErrCodeInvalidConstraint, "constraint target must not be nil")
	}
	if !attr.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidAttribute, "invalid target attribute %d", int(attr))
	}
	if !sourceAttr.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidAttribute, "invalid source attribute %d", int(sourceAttr))
	}
	return &Constraint{
		target:     target,
		targetAttr: attr,
		source:     source,
		sourceAttr: sourceAttr,
		scale:      scale,
		offset:     offset,
	}, nil
}

// Pin creates a constraint with the default scale (1) and offset (0):
// the target attribute simply tracks the source attribute.
func Pin(target Item, attr geom.Attribute, source Item, sourceAttr geom.Attribute) (*Constraint, error) {
	return NewConstraint(target, attr, source, sourceAttr, 1, 0)
}

// Offset creates a constraint with the default scale (1) and the given offset.
func Offset(target Item, attr geom.Attribute, source Item, sourceAttr geom.Attribute, offset float64) (*Constraint, error) {
	return NewConstraint(target, attr, source, sourceAttr, 1, offset)
}

// Target returns the constrained item.
func (c *Constraint) Target() Item { return c.target }

// TargetAttr returns the constrained attribute.
func (c *Constraint) TargetAttr() geom.Attribute { return c.targetAttr }

// Source returns the source item, or nil when the source is the container.
func (c *Constraint) Source() Item { return c.source }

// SourceAttr returns the source attribute.
func (c *Constraint) SourceAttr() geom.Attribute { return c.sourceAttr }

// Scale returns the multiplier applied to the source value.
func (c *Constraint) Scale() float64 { return c.scale }

// Offset returns the addend applied after scaling.
func (c *Constraint) Offset() float64 { return c.offset }

// String formats the constraint as an equation, e.g.
// "b.miny = a.maxy + 10" or "b.width = a.height * 0.5".
func (c *Constraint) String() string {
	src := "container"
	if c.source != nil {
		if id, ok := c.source.(Identifier); ok {
			src = id.LayoutID()
		} else {
			src = "item"
		}
	}
	tgt := "item"
	if id, ok := c.target.(Identifier); ok {
		tgt = id.LayoutID()
	}

	rhs := fmt.Sprintf("%s.%s", src, c.sourceAttr)
	if c.scale != 1 {
		rhs += fmt.Sprintf(" * %g", c.scale)
	}
	switch {
	case c.offset > 0:
		rhs += fmt.Sprintf(" + %g", c.offset)
	case c.offset < 0:
		rhs += fmt.Sprintf(" - %g", -c.offset)
	}
	return fmt.Sprintf("%s.%s = %s", tgt, c.targetAttr, rhs)
}

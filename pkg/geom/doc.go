// Package geom defines the geometric vocabulary of the layout engine:
// frames, the closed attribute enumeration, and the per-axis algebra that
// turns partially known attribute sets into fully resolved spans.
//
// # Attributes and Axes
//
// Every element exposes eight geometric attributes, four per axis:
//
//	X axis: MinX, MidX, MaxX, Width
//	Y axis: MinY, MidY, MaxY, Height
//
// Each attribute belongs to exactly one axis, and the two axes are always
// resolved independently of each other. A constraint may still relate
// attributes across axes (e.g. Width from Height) - the axis partition only
// governs how values are combined, not where they come from.
//
// # Span Algebra
//
// The four attributes of an axis carry two degrees of freedom. With the
// identities
//
//	Mid  = (Min + Max) / 2
//	Size = Max - Min
//
// any two distinct attributes determine the remaining two. [Span] accumulates
// known values for one axis and derives the rest, falling back to an element's
// current frame for the missing degree of freedom when only one attribute is
// known.
package geom

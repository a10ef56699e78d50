package geom

// Span accumulates known attribute values for one axis of one element and
// resolves them into a concrete (min, size) pair.
//
// An axis has two degrees of freedom, so any two distinct components among
// {min, mid, max, size} fully determine it. Each component is an affine form
// of (Min, Size):
//
//	min  = Min
//	mid  = Min + Size/2
//	max  = Min + Size
//	size = Size
//
// which makes every distinct pair an independent 2x2 system. Resolution solves
// that system directly instead of enumerating the six pair rules.
//
// The zero value is an empty span with no known components.
// Span is a small value type and is copied freely; it is not safe for
// concurrent mutation.
type Span struct {
	vals  [4]float64
	known uint8 // bit i set when component i is known
}

// coefficients of each component as a*Min + b*Size.
var componentCoeffs = [4][2]float64{
	compMin:  {1, 0},
	compMid:  {1, 0.5},
	compMax:  {1, 1},
	compSize: {0, 1},
}

// Set records a known value for the attribute's component.
// Setting the same component twice keeps the later value; the engine orders
// constraint evaluation so that later writes are the downstream ones.
func (s *Span) Set(a Attribute, v float64) {
	c := a.component()
	s.vals[c] = v
	s.known |= 1 << c
}

// Has reports whether the attribute's component has been set directly.
func (s *Span) Has(a Attribute) bool {
	return s.known&(1<<a.component()) != 0
}

// Count returns the number of distinct known components (0 to 4).
func (s *Span) Count() int {
	n := 0
	for c := compMin; c <= compSize; c++ {
		if s.known&(1<<c) != 0 {
			n++
		}
	}
	return n
}

// Resolve solves the span into a (min, size) pair using the first two known
// components in canonical order. It reports false when fewer than two
// components are known - the axis is under-determined and must be completed
// from external geometry (see [Span.ResolveWith]).
func (s *Span) Resolve() (min, size float64, ok bool) {
	var comps []component
	for c := compMin; c <= compSize; c++ {
		if s.known&(1<<c) != 0 {
			comps = append(comps, c)
			if len(comps) == 2 {
				break
			}
		}
	}
	if len(comps) < 2 {
		return 0, 0, false
	}
	return solvePair(comps[0], s.vals[comps[0]], comps[1], s.vals[comps[1]]), sizeOf(comps[0], s.vals[comps[0]], comps[1], s.vals[comps[1]]), true
}

// ResolveWith solves the span, supplying missing degrees of freedom from the
// current geometry (curMin, curSize):
//
//   - 2+ knowns: fully determined, current geometry ignored.
//   - 1 known:   a size known keeps the current min; a positional known keeps
//     the current size. This is how a single constrained attribute repositions
//     (or resizes) an element without disturbing its intrinsic geometry.
//   - 0 knowns:  reports false; the axis belongs to the fallback collaborator.
func (s *Span) ResolveWith(curMin, curSize float64) (min, size float64, ok bool) {
	switch s.Count() {
	case 0:
		return 0, 0, false
	case 1:
		t := *s
		for c := compMin; c <= compSize; c++ {
			if t.known&(1<<c) != 0 {
				if c == compSize {
					t.vals[compMin] = curMin
					t.known |= 1 << compMin
				} else {
					t.vals[compSize] = curSize
					t.known |= 1 << compSize
				}
				break
			}
		}
		return t.resolveMust()
	default:
		return s.resolveMust()
	}
}

func (s *Span) resolveMust() (float64, float64, bool) {
	min, size, ok := s.Resolve()
	return min, size, ok
}

// Value returns the attribute's value, deriving it from other components when
// the span is fully determined. Reports false when the component is neither
// known directly nor derivable.
func (s *Span) Value(a Attribute) (float64, bool) {
	c := a.component()
	if s.known&(1<<c) != 0 {
		return s.vals[c], true
	}
	min, size, ok := s.Resolve()
	if !ok {
		return 0, false
	}
	co := componentCoeffs[c]
	return co[0]*min + co[1]*size, true
}

// FromSpan computes the attribute's value from a resolved (min, size) pair.
// The attribute's axis is irrelevant here - only its component role matters.
func FromSpan(a Attribute, min, size float64) float64 {
	co := componentCoeffs[a.component()]
	return co[0]*min + co[1]*size
}

// solvePair returns Min from the 2x2 system formed by two distinct components.
func solvePair(c1 component, v1 float64, c2 component, v2 float64) float64 {
	a1, b1 := componentCoeffs[c1][0], componentCoeffs[c1][1]
	a2, b2 := componentCoeffs[c2][0], componentCoeffs[c2][1]
	det := a1*b2 - a2*b1
	return (v1*b2 - v2*b1) / det
}

// sizeOf returns Size from the 2x2 system formed by two distinct components.
func sizeOf(c1 component, v1 float64, c2 component, v2 float64) float64 {
	a1, b1 := componentCoeffs[c1][0], componentCoeffs[c1][1]
	a2, b2 := componentCoeffs[c2][0], componentCoeffs[c2][1]
	det := a1*b2 - a2*b1
	return (a1*v2 - a2*v1) / det
}

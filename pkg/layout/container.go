package layout

import (
	"sort"
	"time"

	"github.com/matzehuels/strut/pkg/depgraph"
	"github.com/matzehuels/strut/pkg/errors"
	"github.com/matzehuels/strut/pkg/geom"
	"github.com/matzehuels/strut/pkg/observability"
)

// Container is the layout engine for one flat element hierarchy. It owns the
// managed items, the live constraint set, and the cached evaluation order.
//
// The zero value is not usable - use [New]. A Container must be confined to a
// single goroutine; see the package documentation for the concurrency
// contract.
type Container struct {
	items       []Item
	index       map[Item]int
	constraints []*Constraint

	// cached evaluation state, rebuilt lazily on the next Layout after any
	// constraint- or item-set mutation
	order    []*Constraint
	dirty    bool
	rebuilds uint64

	lastBounds geom.Rect
	hasLast    bool
	fallback   Fallback
}

// New creates an empty container with no fallback collaborator: axes with no
// constrained attributes are left exactly as they are. Use [Container.SetFallback]
// to delegate them to an autoresizing behavior instead.
func New() *Container {
	return &Container{index: make(map[Item]int)}
}

// SetFallback installs the collaborator that resolves fully unconstrained
// axes. Pass nil to restore the default leave-untouched behavior.
func (c *Container) SetFallback(f Fallback) { c.fallback = f }

// Insert registers an item with the container. Inserting an item creates no
// constraints; it only makes the item eligible as a constraint target or
// source. Inserting the same item twice is a no-op.
func (c *Container) Insert(it Item) {
	if it == nil {
		return
	}
	if _, ok := c.index[it]; ok {
		return
	}
	c.index[it] = len(c.items)
	c.items = append(c.items, it)
	c.dirty = true
}

// Remove unregisters an item and eagerly prunes every constraint that
// references it as target or source. Constraints referencing the item that
// are added later simply stay void until the item is inserted again.
func (c *Container) Remove(it Item) {
	idx, ok := c.index[it]
	if !ok {
		return
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	delete(c.index, it)
	for i := idx; i < len(c.items); i++ {
		c.index[c.items[i]] = i
	}

	kept := c.constraints[:0]
	for _, cn := range c.constraints {
		if cn.target == it || cn.source == it {
			continue
		}
		kept = append(kept, cn)
	}
	c.constraints = kept
	c.dirty = true
}

// Items returns the managed items in insertion order. The returned slice is a
// copy; the items themselves are shared.
func (c *Container) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Constraints returns the live constraints in insertion order. The returned
// slice is a copy.
func (c *Container) Constraints() []*Constraint {
	out := make([]*Constraint, len(c.constraints))
	copy(out, c.constraints)
	return out
}

// Rebuilds returns how many times the evaluation order has been successfully
// rebuilt. Layout passes that only change geometry never increment this - the
// counter is the observable face of the caching contract.
func (c *Container) Rebuilds() uint64 { return c.rebuilds }

// AddConstraint adds a constraint to the live set and invalidates the cached
// evaluation order.
//
// It fails fast with an OVERCONSTRAINED_AXIS error - leaving the live set
// unchanged - when the addition would give the target three or more distinct
// constrained attributes on one axis. Two distinct attributes fully determine
// an axis; a third can only be redundant or contradictory, so it is rejected
// rather than silently tie-broken.
func (c *Container) AddConstraint(cn *Constraint) error {
	if cn == nil {
		return errors.New(errors.ErrCodeInvalidConstraint, "constraint must not be nil")
	}

	axis := cn.targetAttr.Axis()
	distinct := map[geom.Attribute]struct{}{cn.targetAttr: {}}
	for _, other := range c.constraints {
		if other.target == cn.target && other.targetAttr.Axis() == axis {
			distinct[other.targetAttr] = struct{}{}
		}
	}
	if len(distinct) > 2 {
		tIdx := -1
		if i, ok := c.index[cn.target]; ok {
			tIdx = i
		}
		return errors.New(errors.ErrCodeOverconstrained,
			"axis %s of %s would have %d constrained attributes; at most two are allowed",
			axis, itemLabel(cn.target, tIdx), len(distinct))
	}

	c.constraints = append(c.constraints, cn)
	c.dirty = true
	return nil
}

// RemoveConstraint removes a constraint by identity and invalidates the
// cached evaluation order. Removing a constraint that is not in the live set
// is a no-op.
func (c *Container) RemoveConstraint(cn *Constraint) {
	for i, other := range c.constraints {
		if other == cn {
			c.constraints = append(c.constraints[:i], c.constraints[i+1:]...)
			c.dirty = true
			return
		}
	}
}

// Layout runs one layout pass against the given container bounds. This is the
// entry point for every geometry change notification (resize, rotation).
//
// If the constraint set changed since the last pass, the dependency graph and
// evaluation order are rebuilt first; a detected cycle aborts the pass with a
// CYCLIC_DEPENDENCY error before any frame is written, so the previously
// computed frames remain in effect. On success, every item with at least one
// resolved axis has its frame updated; fully unconstrained axes go to the
// fallback collaborator, or stay untouched without one.
func (c *Container) Layout(bounds geom.Rect) error {
	if c.dirty {
		start := time.Now()
		observability.Layout().OnRebuildStart(len(c.constraints))
		err := c.rebuild()
		observability.Layout().OnRebuildComplete(len(c.order), time.Since(start), err)
		if err != nil {
			return err
		}
	}

	start := time.Now()
	observability.Layout().OnPassStart(len(c.order))
	c.evaluate(bounds)
	observability.Layout().OnPassComplete(len(c.items), time.Since(start))

	c.lastBounds = bounds
	c.hasLast = true
	return nil
}

type axisKey struct {
	owner int
	axis  geom.Axis
}

// rebuild constructs the dependency graph over (item, attribute) slots and
// caches the constraints in topological order of their targets.
func (c *Container) rebuild() error {
	g := depgraph.New()

	live := make([]*Constraint, 0, len(c.constraints))
	targetOf := make([]depgraph.Handle, 0, len(c.constraints))
	targets := make(map[axisKey][]depgraph.Handle)
	targetSet := make(map[depgraph.Handle]struct{})
	sources := make(map[depgraph.Handle]struct{})

	for _, cn := range c.constraints {
		ti, ok := c.index[cn.target]
		if !ok {
			continue // dangling target: constraint is void
		}
		so := depgraph.ContainerOwner
		if cn.source != nil {
			si, ok := c.index[cn.source]
			if !ok {
				continue // dangling source: constraint is void
			}
			so = si
		}

		th := g.Add(ti, cn.targetAttr, c.slotLabel(ti, cn.targetAttr))
		sh := g.Add(so, cn.sourceAttr, c.slotLabel(so, cn.sourceAttr))
		g.Edge(sh, th)

		key := axisKey{owner: ti, axis: cn.targetAttr.Axis()}
		targets[key] = append(targets[key], th)
		targetSet[th] = struct{}{}
		if so != depgraph.ContainerOwner {
			sources[sh] = struct{}{}
		}

		live = append(live, cn)
		targetOf = append(targetOf, th)
	}

	// A source slot whose attribute is never itself a constraint target is
	// derived from the other constrained attributes on its axis, so it must
	// wait for all of them (e.g. reading a.maxy while only a.midy is
	// constrained). A directly constrained source needs no such edges: its
	// own constraint writes the exact value, and the constraint edge already
	// orders the write before the read.
	for sh := range sources {
		if _, direct := targetSet[sh]; direct {
			continue
		}
		n := g.Node(sh)
		for _, th := range targets[axisKey{owner: n.Owner, axis: n.Attr.Axis()}] {
			g.Edge(th, sh)
		}
	}

	topo, err := g.Sort()
	if err != nil {
		return errors.Wrap(errors.ErrCodeCycle, err, "constraint set has no valid evaluation order")
	}
	pos := g.Positions(topo)

	// Sort an index permutation, not live itself: live and targetOf are
	// parallel slices, and the comparator must keep reading each
	// constraint's own target handle while elements move.
	perm := make([]int, len(live))
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool {
		return pos[targetOf[perm[i]]] < pos[targetOf[perm[j]]]
	})
	ordered := make([]*Constraint, len(live))
	for i, k := range perm {
		ordered[i] = live[k]
	}

	c.order = ordered
	c.dirty = false
	c.rebuilds++
	return nil
}

// evaluate runs the cached order against the given bounds and writes frames.
func (c *Container) evaluate(bounds geom.Rect) {
	// one span per item per axis, indexed 2*item+axis
	spans := make([]geom.Span, 2*len(c.items))

	for _, cn := range c.order {
		ti, ok := c.index[cn.target]
		if !ok {
			continue // lazily discovered dangling target
		}

		var src float64
		if cn.source == nil {
			src = bounds.Attr(cn.sourceAttr)
		} else {
			si, ok := c.index[cn.source]
			if !ok {
				continue // lazily discovered dangling source
			}
			src = c.sourceValue(spans, si, cn.sourceAttr)
		}

		spans[2*ti+int(cn.targetAttr.Axis())].Set(cn.targetAttr, src*cn.scale+cn.offset)
	}

	for i, it := range c.items {
		fr := it.Frame()
		out := fr
		for _, axis := range []geom.Axis{geom.AxisX, geom.AxisY} {
			sp := &spans[2*i+int(axis)]
			if sp.Count() == 0 {
				if c.fallback != nil && c.hasLast {
					min, size := c.fallback.ResolveAxis(axis, fr.Min(axis), fr.Size(axis), c.lastBounds, bounds)
					out = out.WithAxis(axis, min, size)
				}
				continue
			}
			if min, size, ok := sp.ResolveWith(fr.Min(axis), fr.Size(axis)); ok {
				out = out.WithAxis(axis, min, size)
			}
		}
		if out != fr {
			it.SetFrame(out)
		}
	}
}

// sourceValue reads an attribute of item i as seen at this point of the pass:
// constrained values first, completed from the item's current frame when the
// axis is only partially (or not at all) constrained.
func (c *Container) sourceValue(spans []geom.Span, i int, a geom.Attribute) float64 {
	axis := a.Axis()
	sp := &spans[2*i+int(axis)]
	fr := c.items[i].Frame()
	if min, size, ok := sp.ResolveWith(fr.Min(axis), fr.Size(axis)); ok {
		return geom.FromSpan(a, min, size)
	}
	return fr.Attr(a)
}

// slotLabel names a dependency-graph slot, e.g. "a.maxy" or "container.midx".
func (c *Container) slotLabel(owner int, a geom.Attribute) string {
	if owner == depgraph.ContainerOwner {
		return "container." + a.String()
	}
	return itemLabel(c.items[owner], owner) + "." + a.String()
}

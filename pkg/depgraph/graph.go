// Package depgraph implements the dependency graph the layout engine builds
// over (element, attribute) slots.
//
// Nodes live in an arena and are addressed by stable integer handles rather
// than pointers, keeping rebuilds allocation-light: a rebuild allocates a few
// slices proportional to the constraint count and nothing else. Node identity
// is the (owner, attribute) pair, where owner is a caller-assigned integer
// (the layout engine uses its item index, with [ContainerOwner] for the
// container itself).
//
// The container's attributes are natural roots: the engine never targets
// them with a constraint, so they always have in-degree zero and seed the
// topological order.
//
// # Sorting and Cycle Detection
//
// [Graph.Sort] runs Kahn's algorithm in O(nodes + edges). When the queue
// drains before all nodes are emitted, the nodes still carrying a nonzero
// in-degree are exactly the ones on or downstream of a cycle; Sort reports
// them through a [CycleError] so callers can name the offending slots.
package depgraph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matzehuels/strut/pkg/geom"
)

// ErrCycle is returned (wrapped in a [CycleError]) by [Graph.Sort] when the
// graph contains a directed cycle. A cyclic constraint set has no valid
// evaluation order and is a fatal configuration error for the caller.
var ErrCycle = errors.New("dependency graph contains a cycle")

// ContainerOwner is the owner value reserved for the layout container's own
// attributes. Container nodes are always roots of the graph.
const ContainerOwner = -1

// Handle is a stable index into the graph's node arena.
type Handle int

// None is the zero-value-adjacent invalid handle.
const None Handle = -1

// Node is one (owner, attribute) slot in the arena.
type Node struct {
	Owner int            // item index, or ContainerOwner
	Attr  geom.Attribute // which of the eight attributes this slot holds
	Label string         // human-readable slot name for diagnostics
}

type slotKey struct {
	owner int
	attr  geom.Attribute
}

// Graph is an arena-backed directed graph over attribute slots.
//
// The zero value is not usable - use [New]. Graph is not safe for concurrent
// use; the layout engine owns one graph per container and rebuilds it
// synchronously.
type Graph struct {
	nodes []Node
	index map[slotKey]Handle
	out   [][]Handle
	indeg []int
	edges int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{index: make(map[slotKey]Handle)}
}

// Add returns the handle for the (owner, attr) slot, creating the node on
// first use. Repeated calls with the same slot return the same handle, so
// callers can interleave node and edge creation freely.
func (g *Graph) Add(owner int, attr geom.Attribute, label string) Handle {
	key := slotKey{owner: owner, attr: attr}
	if h, ok := g.index[key]; ok {
		return h
	}
	h := Handle(len(g.nodes))
	g.nodes = append(g.nodes, Node{Owner: owner, Attr: attr, Label: label})
	g.out = append(g.out, nil)
	g.indeg = append(g.indeg, 0)
	g.index[key] = h
	return h
}

// Lookup returns the handle for the slot, or (None, false) if it was never added.
func (g *Graph) Lookup(owner int, attr geom.Attribute) (Handle, bool) {
	h, ok := g.index[slotKey{owner: owner, attr: attr}]
	if !ok {
		return None, false
	}
	return h, true
}

// Edge adds a directed edge from → to. Parallel edges are allowed; each one
// contributes to the target's in-degree, so a parallel edge pair is drained
// correctly by Sort.
func (g *Graph) Edge(from, to Handle) {
	g.out[from] = append(g.out[from], to)
	g.indeg[to]++
	g.edges++
}

// Node returns the node stored at the handle.
func (g *Graph) Node(h Handle) Node { return g.nodes[h] }

// Len returns the number of nodes in the arena.
func (g *Graph) Len() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return g.edges }

// Sort returns the node handles in topological order using Kahn's algorithm.
// The order is deterministic for a given insertion sequence: ready nodes are
// drained in arena order, so two identical builds produce identical orders.
//
// On a cycle, Sort returns a [CycleError] listing the labels of every node
// still blocked when the ready queue drained (the cycle members plus any
// slots downstream of them).
func (g *Graph) Sort() ([]Handle, error) {
	indeg := make([]int, len(g.indeg))
	copy(indeg, g.indeg)

	order := make([]Handle, 0, len(g.nodes))
	queue := make([]Handle, 0, len(g.nodes))
	for h := range g.nodes {
		if indeg[h] == 0 {
			queue = append(queue, Handle(h))
		}
	}

	for len(queue) > 0 {
		h := queue[0]
		queue = queue[1:]
		order = append(order, h)
		for _, to := range g.out[h] {
			indeg[to]--
			if indeg[to] == 0 {
				queue = append(queue, to)
			}
		}
	}

	if len(order) != len(g.nodes) {
		var blocked []string
		for h := range g.nodes {
			if indeg[h] > 0 {
				blocked = append(blocked, g.nodes[h].Label)
			}
		}
		return nil, &CycleError{Nodes: blocked}
	}
	return order, nil
}

// Positions converts a topological order into a position lookup indexed by
// handle. This mirrors the usual id→index map but stays allocation-light by
// using the arena index directly.
func (g *Graph) Positions(order []Handle) []int {
	pos := make([]int, len(g.nodes))
	for i, h := range order {
		pos[h] = i
	}
	return pos
}

// CycleError reports the node slots implicated in a dependency cycle.
// It unwraps to [ErrCycle] for errors.Is checks.
type CycleError struct {
	Nodes []string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: %s", ErrCycle, strings.Join(e.Nodes, ", "))
}

// Unwrap returns ErrCycle so callers can use errors.Is(err, ErrCycle).
func (e *CycleError) Unwrap() error { return ErrCycle }

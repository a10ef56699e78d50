// Package layout implements a constraint-based frame resolver for a flat
// container of elements.
//
// A [Container] owns a set of items and a set of [Constraint] values. Each
// constraint pins one geometric attribute of one item to an affine function
// of another item's attribute (or of the container's own bounds):
//
//	target.attr = source.attr*scale + offset
//
// On every [Container.Layout] call the engine evaluates the live constraints
// in dependency order, resolves each item's axes through the span algebra in
// [github.com/matzehuels/strut/pkg/geom], and writes the final frames.
//
// # Evaluation Order Caching
//
// Building the dependency graph and its topological order costs O(constraints)
// and is paid only when the constraint set (or the item set) changes. Layout
// passes triggered by pure geometry changes - a rotation, a window resize -
// reuse the cached order and are a single linear sweep. [Container.Rebuilds]
// exposes the rebuild count so callers can observe the cache behaving.
//
// # Failure Semantics
//
//   - Overconstraining an axis (three or more distinct attributes on one axis
//     of one item) is rejected by AddConstraint before any state changes.
//   - A cyclic constraint set aborts the pass at rebuild time; previously
//     written frames stay in effect (last-known-good).
//   - Constraints referencing items no longer in the container are void: they
//     are dropped from the graph at rebuild and skipped during evaluation.
//     Removing an item also prunes them eagerly.
//
// # Concurrency
//
// A Container is single-threaded by contract: mutation and layout passes must
// be serialized by the caller, matching the thread-confined ownership of a
// view hierarchy. Nothing in the engine blocks or suspends.
package layout

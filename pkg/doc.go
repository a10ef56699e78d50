// Package pkg provides the core libraries of the strut layout engine.
//
// # Overview
//
// Strut resolves constraint-based layouts: items inside a container declare
// linear relationships between their geometric attributes, and the engine
// orders and evaluates those relationships into concrete frames. The pkg
// directory is organized as follows:
//
//  1. [geom] - Attributes, axes, rectangles, and the span algebra
//  2. [depgraph] - Dependency graph with topological ordering and cycle detection
//  3. [layout] - The container engine (constraints, evaluation, fallback)
//  4. [scene] - Declarative TOML/JSON scene documents
//  5. [render/dot] - Constraint graph rendering via Graphviz
//  6. [cache] - Result caching (file, Redis, null backends)
//  7. [errors] - Structured error codes shared by the CLI and HTTP API
//  8. [observability] - Pluggable hooks for layout and cache events
//
// # Architecture
//
// The typical data flow:
//
//	Scene document (TOML/JSON)
//	         ↓
//	scene.Assemble → layout.Container + constraints
//	         ↓
//	Container.Layout(bounds)        depgraph orders the constraints,
//	         ↓                      the axis solver resolves each span
//	Resolved frames → table / JSON / DOT / SVG
//
// The layout engine is usable on its own; scenes, rendering, and caching
// exist for the CLI and the HTTP API built on top.
//
// [geom]: github.com/matzehuels/strut/pkg/geom
// [depgraph]: github.com/matzehuels/strut/pkg/depgraph
// [layout]: github.com/matzehuels/strut/pkg/layout
// [scene]: github.com/matzehuels/strut/pkg/scene
// [render/dot]: github.com/matzehuels/strut/pkg/render/dot
// [cache]: github.com/matzehuels/strut/pkg/cache
// [errors]: github.com/matzehuels/strut/pkg/errors
// [observability]: github.com/matzehuels/strut/pkg/observability
package pkg

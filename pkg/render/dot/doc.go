// Package dot renders a container's constraint graph as Graphviz DOT and SVG.
//
// Each constrained attribute slot becomes a node ("title.midx",
// "container.maxy") and each constraint becomes an edge from its source slot
// to its target slot. The picture is the dependency structure the engine
// evaluates, which makes it the first thing to look at when a layout
// misbehaves or a cycle is reported.
package dot

package layout

import (
	"fmt"

	"github.com/matzehuels/strut/pkg/geom"
)

// Item is the capability an element needs to participate in layout: readable
// and writable frame geometry. The engine is deliberately decoupled from any
// particular UI toolkit - anything that can get and set a rect qualifies.
//
// Implementations must be comparable (pointer types are the norm): the
// container tracks items by identity, and constraints reference them the same
// way. An item's lifetime is owned by whoever inserted it; the container never
// retains an item that has been removed.
type Item interface {
	// Frame returns the item's current frame in container coordinates.
	Frame() geom.Rect
	// SetFrame writes the item's frame. Called once per resolved item at the
	// end of a layout pass.
	SetFrame(geom.Rect)
}

// Identifier is optionally implemented by items that carry a stable
// human-readable name. The engine uses it to label dependency-graph slots in
// cycle diagnostics and DOT exports; anonymous items fall back to positional
// labels like "item3".
type Identifier interface {
	LayoutID() string
}

// itemLabel names an item for diagnostics.
func itemLabel(it Item, index int) string {
	if id, ok := it.(Identifier); ok {
		return id.LayoutID()
	}
	return fmt.Sprintf("item%d", index)
}

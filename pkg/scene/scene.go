// Package scene loads declarative layout descriptions and assembles them into
// runnable containers.
//
// A scene names the container bounds, the managed items with their initial
// frames, and the constraint set. Scenes exist for tooling - the CLI, the TUI
// preview, and the HTTP API all speak scene documents - while library users
// typically construct containers directly. Scenes are an input format only:
// the engine never persists constraints.
//
// # Formats
//
// TOML for files authored by hand:
//
//	[container]
//	bounds = [0.0, 0.0, 320.0, 480.0]
//
//	[[items]]
//	id = "title"
//	frame = [0.0, 0.0, 100.0, 25.0]
//
//	[[constraints]]
//	target = "title"
//	attr = "midx"
//	source_attr = "midx"   # source omitted → the container
//
// and the equivalent JSON for API payloads. An omitted constraint scale
// defaults to 1, an omitted offset to 0, and an item without an id is
// assigned a generated one.
package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/matzehuels/strut/pkg/errors"
	"github.com/matzehuels/strut/pkg/geom"
	"github.com/matzehuels/strut/pkg/layout"
)

// Scene is the top-level document describing one container.
type Scene struct {
	Container ContainerSpec    `toml:"container" json:"container"`
	Items     []ItemSpec       `toml:"items" json:"items"`
	Rules     []ConstraintSpec `toml:"constraints" json:"constraints"`
}

// ContainerSpec describes the container bounds and fallback behavior.
type ContainerSpec struct {
	// Bounds is the container frame as [x, y, w, h].
	Bounds [4]float64 `toml:"bounds" json:"bounds"`
	// Autoresize enables the proportional fallback for unconstrained axes.
	Autoresize bool `toml:"autoresize,omitempty" json:"autoresize,omitempty"`
}

// ItemSpec describes one managed element.
type ItemSpec struct {
	// ID names the item for constraints and output. Generated when empty.
	ID string `toml:"id,omitempty" json:"id,omitempty"`
	// Frame is the initial frame as [x, y, w, h]. Supplies intrinsic geometry
	// for axes with a single constrained attribute.
	Frame [4]float64 `toml:"frame" json:"frame"`
}

// ConstraintSpec describes one constraint as attribute names.
type ConstraintSpec struct {
	Target     string   `toml:"target" json:"target"`
	Attr       string   `toml:"attr" json:"attr"`
	Source     string   `toml:"source,omitempty" json:"source,omitempty"` // empty → container
	SourceAttr string   `toml:"source_attr" json:"source_attr"`
	Scale      *float64 `toml:"scale,omitempty" json:"scale,omitempty"` // nil → 1
	Offset     float64  `toml:"offset,omitempty" json:"offset,omitempty"`
}

// Box is the concrete layout item used by assembled scenes: a named rect.
type Box struct {
	ID    string
	frame geom.Rect
}

// Frame implements [layout.Item].
func (b *Box) Frame() geom.Rect { return b.frame }

// SetFrame implements [layout.Item].
func (b *Box) SetFrame(r geom.Rect) { b.frame = r }

// LayoutID implements [layout.Identifier].
func (b *Box) LayoutID() string { return b.ID }

// DecodeTOML parses a TOML scene document.
func DecodeTOML(data []byte) (*Scene, error) {
	var s Scene
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "parse TOML scene")
	}
	return &s, nil
}

// DecodeJSON parses a JSON scene document.
func DecodeJSON(data []byte) (*Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "parse JSON scene")
	}
	return &s, nil
}

// Load reads a scene file, choosing the decoder by extension
// (.toml or .json).
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "read scene %s", path)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return DecodeTOML(data)
	case ".json":
		return DecodeJSON(data)
	default:
		return nil, errors.New(errors.ErrCodeInvalidScene, "unsupported scene extension %q (want .toml or .json)", ext)
	}
}

// Assembly is a scene instantiated into a live container.
type Assembly struct {
	Container *layout.Container
	Bounds    geom.Rect

	boxes []*Box
	byID  map[string]*Box
}

// Assemble validates the scene and builds its container, items, and
// constraints. Item IDs must be unique; constraints must reference declared
// items and valid attribute names. Overconstrained axes are rejected here,
// carrying the same OVERCONSTRAINED_AXIS code the engine uses.
func (s *Scene) Assemble() (*Assembly, error) {
	a := &Assembly{
		Container: layout.New(),
		Bounds:    rectOf(s.Container.Bounds),
		byID:      make(map[string]*Box, len(s.Items)),
	}
	if s.Container.Autoresize {
		a.Container.SetFallback(layout.Autoresize{})
	}

	for i, spec := range s.Items {
		id := spec.ID
		if id == "" {
			id = uuid.NewString()
		}
		if _, dup := a.byID[id]; dup {
			return nil, errors.New(errors.ErrCodeInvalidScene, "duplicate item id %q (item %d)", id, i)
		}
		b := &Box{ID: id, frame: rectOf(spec.Frame)}
		a.byID[id] = b
		a.boxes = append(a.boxes, b)
		a.Container.Insert(b)
	}

	for i, spec := range s.Rules {
		cn, err := a.constraint(spec)
		if err != nil {
			return nil, fmt.Errorf("constraint %d: %w", i, err)
		}
		if err := a.Container.AddConstraint(cn); err != nil {
			return nil, fmt.Errorf("constraint %d: %w", i, err)
		}
	}
	return a, nil
}

func (a *Assembly) constraint(spec ConstraintSpec) (*layout.Constraint, error) {
	target, ok := a.byID[spec.Target]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownItem, "unknown target item %q", spec.Target)
	}
	attr, err := geom.ParseAttribute(spec.Attr)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "target attribute")
	}
	srcAttr, err := geom.ParseAttribute(spec.SourceAttr)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "source attribute")
	}

	var source layout.Item
	if spec.Source != "" {
		box, ok := a.byID[spec.Source]
		if !ok {
			return nil, errors.New(errors.ErrCodeUnknownItem, "unknown source item %q", spec.Source)
		}
		source = box
	}

	scale := 1.0
	if spec.Scale != nil {
		scale = *spec.Scale
	}
	return layout.NewConstraint(target, attr, source, srcAttr, scale, spec.Offset)
}

// Solve runs one layout pass against the scene's container bounds.
func (a *Assembly) Solve() error {
	return a.Container.Layout(a.Bounds)
}

// Box returns the item with the given id, or nil.
func (a *Assembly) Box(id string) *Box { return a.byID[id] }

// Boxes returns the items in declaration order.
func (a *Assembly) Boxes() []*Box { return a.boxes }

// Frame is one resolved item frame in the output format.
type Frame struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Frames returns the current item frames sorted by id for deterministic output.
func (a *Assembly) Frames() []Frame {
	out := make([]Frame, len(a.boxes))
	for i, b := range a.boxes {
		out[i] = Frame{ID: b.ID, X: b.frame.X, Y: b.frame.Y, Width: b.frame.W, Height: b.frame.H}
	}
	slices.SortFunc(out, func(x, y Frame) int { return strings.Compare(x.ID, y.ID) })
	return out
}

// MarshalFrames renders the resolved frames as indented JSON.
func (a *Assembly) MarshalFrames() ([]byte, error) {
	return json.MarshalIndent(a.Frames(), "", "  ")
}

func rectOf(v [4]float64) geom.Rect {
	return geom.Rect{X: v[0], Y: v[1], W: v[2], H: v[3]}
}

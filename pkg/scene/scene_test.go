package scene

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/strut/pkg/errors"
)

const centerTOML = `
[container]
bounds = [0.0, 0.0, 320.0, 480.0]

[[items]]
id = "a"
frame = [0.0, 0.0, 100.0, 25.0]

[[constraints]]
target = "a"
attr = "midx"
source_attr = "midx"

[[constraints]]
target = "a"
attr = "midy"
source_attr = "midy"
`

const chainJSON = `{
  "container": {"bounds": [0, 0, 320, 480]},
  "items": [
    {"id": "a", "frame": [0, 0, 100, 25]},
    {"id": "b", "frame": [0, 0, 0, 0]}
  ],
  "constraints": [
    {"target": "a", "attr": "midx", "source_attr": "midx"},
    {"target": "a", "attr": "midy", "source_attr": "midy"},
    {"target": "b", "attr": "width", "source": "a", "source_attr": "width"},
    {"target": "b", "attr": "midx", "source": "a", "source_attr": "midx"},
    {"target": "b", "attr": "miny", "source": "a", "source_attr": "maxy", "offset": 10},
    {"target": "b", "attr": "maxy", "source_attr": "maxy", "offset": -10}
  ]
}`

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestDecodeTOMLAndSolve(t *testing.T) {
	s, err := DecodeTOML([]byte(centerTOML))
	if err != nil {
		t.Fatalf("DecodeTOML: %v", err)
	}
	if len(s.Items) != 1 || len(s.Rules) != 2 {
		t.Fatalf("decoded %d items, %d constraints", len(s.Items), len(s.Rules))
	}

	a, err := s.Assemble()
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if err := a.Solve(); err != nil {
		t.Fatalf("Solve: %v", err)
	}

	fr := a.Box("a").Frame()
	if !approx(fr.X, 110) || !approx(fr.Y, 227.5) || !approx(fr.W, 100) || !approx(fr.H, 25) {
		t.Errorf("frame = %v, want (110, 227.5, 100, 25)", fr)
	}
}

func TestDecodeJSONAndSolve(t *testing.T) {
	s, err := DecodeJSON([]byte(chainJSON))
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	a, err := s.Assemble()
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if err := a.Solve(); err != nil {
		t.Fatalf("Solve: %v", err)
	}

	frames := a.Frames()
	if len(frames) != 2 {
		t.Fatalf("frames = %d, want 2", len(frames))
	}
	// Frames are sorted by id: a, then b.
	b := frames[1]
	if b.ID != "b" {
		t.Fatalf("frames[1].ID = %q, want b", b.ID)
	}
	if !approx(b.Width, 100) || !approx(b.X, 110) || !approx(b.Y, 262.5) || !approx(b.Height, 207.5) {
		t.Errorf("b = %+v, want (110, 262.5, 100, 207.5)", b)
	}
}

func TestLoadByExtension(t *testing.T) {
	dir := t.TempDir()

	tomlPath := filepath.Join(dir, "scene.toml")
	if err := os.WriteFile(tomlPath, []byte(centerTOML), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(tomlPath); err != nil {
		t.Errorf("Load(.toml): %v", err)
	}

	jsonPath := filepath.Join(dir, "scene.json")
	if err := os.WriteFile(jsonPath, []byte(chainJSON), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(jsonPath); err != nil {
		t.Errorf("Load(.json): %v", err)
	}

	badPath := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(badPath, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(badPath); !errors.Is(err, errors.ErrCodeInvalidScene) {
		t.Errorf("Load(.yaml) error = %v, want INVALID_SCENE", err)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Load(missing) error = %v, want NOT_FOUND", err)
	}
}

func TestAssembleValidation(t *testing.T) {
	tests := []struct {
		name     string
		scene    Scene
		wantCode errors.Code
	}{
		{
			name: "DuplicateID",
			scene: Scene{
				Items: []ItemSpec{{ID: "a"}, {ID: "a"}},
			},
			wantCode: errors.ErrCodeInvalidScene,
		},
		{
			name: "UnknownTarget",
			scene: Scene{
				Items: []ItemSpec{{ID: "a"}},
				Rules: []ConstraintSpec{{Target: "nope", Attr: "minx", SourceAttr: "minx"}},
			},
			wantCode: errors.ErrCodeUnknownItem,
		},
		{
			name: "UnknownSource",
			scene: Scene{
				Items: []ItemSpec{{ID: "a"}},
				Rules: []ConstraintSpec{{Target: "a", Attr: "minx", Source: "nope", SourceAttr: "minx"}},
			},
			wantCode: errors.ErrCodeUnknownItem,
		},
		{
			name: "BadAttribute",
			scene: Scene{
				Items: []ItemSpec{{ID: "a"}},
				Rules: []ConstraintSpec{{Target: "a", Attr: "centerx", SourceAttr: "minx"}},
			},
			wantCode: errors.ErrCodeInvalidScene,
		},
		{
			name: "Overconstrained",
			scene: Scene{
				Items: []ItemSpec{{ID: "a"}},
				Rules: []ConstraintSpec{
					{Target: "a", Attr: "minx", SourceAttr: "minx"},
					{Target: "a", Attr: "maxx", SourceAttr: "maxx"},
					{Target: "a", Attr: "width", SourceAttr: "width"},
				},
			},
			wantCode: errors.ErrCodeOverconstrained,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.scene.Assemble()
			if err == nil {
				t.Fatal("Assemble succeeded, want error")
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestGeneratedIDs(t *testing.T) {
	s := Scene{Items: []ItemSpec{{}, {}}}
	a, err := s.Assemble()
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	boxes := a.Boxes()
	if len(boxes) != 2 {
		t.Fatalf("boxes = %d, want 2", len(boxes))
	}
	if boxes[0].ID == "" || boxes[1].ID == "" {
		t.Error("generated IDs are empty")
	}
	if boxes[0].ID == boxes[1].ID {
		t.Error("generated IDs collide")
	}
}

func TestScaleDefaultsToOne(t *testing.T) {
	half := 0.5
	s := Scene{
		Container: ContainerSpec{Bounds: [4]float64{0, 0, 200, 100}},
		Items:     []ItemSpec{{ID: "a", Frame: [4]float64{0, 0, 10, 10}}},
		Rules: []ConstraintSpec{
			{Target: "a", Attr: "width", SourceAttr: "width"},               // scale 1
			{Target: "a", Attr: "height", Source: "", SourceAttr: "height"}, // scale 1
		},
	}
	a, err := s.Assemble()
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if err := a.Solve(); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if got := a.Box("a").Frame(); !approx(got.W, 200) || !approx(got.H, 100) {
		t.Errorf("frame = %v, want full-size tracking", got)
	}

	s.Rules[0].Scale = &half
	a, err = s.Assemble()
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if err := a.Solve(); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if got := a.Box("a").Frame().W; !approx(got, 100) {
		t.Errorf("scaled width = %g, want 100", got)
	}
}

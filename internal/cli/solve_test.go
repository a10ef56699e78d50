package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testScene = `
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

func writeScene(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.toml")
	if err := os.WriteFile(path, []byte(testScene), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunSolveToFile(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	path := writeScene(t)
	out := filepath.Join(t.TempDir(), "frames.json")

	if err := c.runSolve(path, out, false, false); err != nil {
		t.Fatalf("runSolve: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	for _, want := range []string{`"id": "a"`, `"x": 110`, `"y": 227.5`} {
		if !contains(data, want) {
			t.Errorf("output missing %s:\n%s", want, data)
		}
	}
}

func TestRunSolveMissingFile(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	if err := c.runSolve("does-not-exist.toml", "", true, false); err == nil {
		t.Fatal("expected error for missing scene file")
	}
}

func TestRunGraphDOTToFile(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	path := writeScene(t)
	out := filepath.Join(t.TempDir(), "graph.dot")

	if err := c.runGraph(t.Context(), path, "dot", out, true, true); err != nil {
		t.Fatalf("runGraph: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !contains(data, "digraph constraints") {
		t.Errorf("output is not DOT:\n%s", data)
	}
}

func TestRunGraphBadFormat(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	path := writeScene(t)

	if err := c.runGraph(t.Context(), path, "png", "", false, true); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func contains(data []byte, s string) bool {
	return strings.Contains(string(data), s)
}

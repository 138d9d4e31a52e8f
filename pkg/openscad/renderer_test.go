package openscad

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveDependencies(t *testing.T) {
	dir := t.TempDir()
	main := filepath.Join(dir, "main.scad")
	writeFile(t, main, "use <lib/shapes.scad>\ninclude <./params.scad>\n// use <ignored.scad>\ncube(1);\n")
	writeFile(t, filepath.Join(dir, "lib", "shapes.scad"), "include <../params.scad>\n")
	writeFile(t, filepath.Join(dir, "params.scad"), "size = 1;\n")

	deps, err := NewRenderer(dir).ResolveDependencies(main)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		main,
		filepath.Join(dir, "lib", "shapes.scad"),
		filepath.Join(dir, "params.scad"),
	}
	if len(deps) != len(want) {
		t.Fatalf("deps = %v, want %v", deps, want)
	}
	for i := range want {
		if deps[i] != want[i] {
			t.Errorf("deps[%d] = %s, want %s", i, deps[i], want[i])
		}
	}
}

func TestResolveDependenciesCycle(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.scad")
	b := filepath.Join(dir, "b.scad")
	writeFile(t, a, "use <b.scad>\n")
	writeFile(t, b, "use <a.scad>\n")

	deps, err := NewRenderer(dir).ResolveDependencies(a)
	if err != nil {
		t.Fatal(err)
	}
	if len(deps) != 2 {
		t.Errorf("deps = %v, want 2 entries", deps)
	}
}

func TestResolveDependenciesMissingFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.scad"), "use <missing.scad>\n")

	if _, err := NewRenderer(dir).ResolveDependencies(filepath.Join(dir, "main.scad")); err == nil {
		t.Error("expected an error for a missing dependency")
	}
}

func TestIsSource(t *testing.T) {
	if !IsSource("part.SCAD") || IsSource("part.stl") {
		t.Error("IsSource misclassified")
	}
}

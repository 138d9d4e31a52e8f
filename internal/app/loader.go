package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/philipparndt/showcase/pkg/mesh"
	"github.com/philipparndt/showcase/pkg/openscad"
	"github.com/philipparndt/showcase/pkg/scene"
)

// LoadFile parses a model file. OpenSCAD sources are rendered to a temporary
// STL first.
func LoadFile(ctx context.Context, path string, progress mesh.ProgressFunc) (*mesh.Mesh, error) {
	if !openscad.IsSource(path) {
		return mesh.Parse(path, progress)
	}

	stlFile, err := openscad.RenderTemp(ctx, path)
	if err != nil {
		return nil, err
	}
	defer os.Remove(stlFile)

	m, err := mesh.Parse(stlFile, progress)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered STL: %w", err)
	}
	m.Name = modelName(path)
	return m, nil
}

// SourceFiles lists the files a model depends on, for reload watching
func SourceFiles(path string) ([]string, error) {
	if !openscad.IsSource(path) {
		return []string{path}, nil
	}
	return openscad.NewRenderer(filepath.Dir(path)).ResolveDependencies(path)
}

func modelName(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}

// LoadResult is delivered once per load, success or failure
type LoadResult struct {
	Path string
	Mesh *mesh.Mesh
	Err  error
	Took time.Duration
}

// Loader parses a model file in the background
type Loader struct {
	Results  <-chan LoadResult
	Progress <-chan float64
}

// LoadAsync starts parsing path on its own goroutine. Progress fractions are
// dropped when the loop falls behind; the result is always delivered.
func LoadAsync(path string) *Loader {
	results := make(chan LoadResult, 1)
	progress := make(chan float64, 16)

	go func() {
		defer close(progress)

		start := time.Now()
		m, err := LoadFile(context.Background(), path, func(fraction float64) {
			select {
			case progress <- fraction:
			default:
			}
		})
		if err != nil {
			err = fmt.Errorf("failed to load %s: %w", path, err)
		}
		results <- LoadResult{Path: path, Mesh: m, Err: err, Took: time.Since(start)}
	}()

	return &Loader{Results: results, Progress: progress}
}

// Prepare centers the mesh on the origin and scales it so its largest
// dimension equals fitSize. A zero fitSize keeps model units.
func Prepare(m *mesh.Mesh, fitSize float64) *scene.Object {
	bbox := m.BoundingBox()
	obj := scene.NewObject(m)
	if bbox.IsEmpty() {
		return obj
	}

	m.Translate(bbox.Center().Mul(-1))

	if maxDim := bbox.MaxDimension(); fitSize > 0 && maxDim > 0 {
		obj.Scale = fitSize / maxDim
	}
	return obj
}

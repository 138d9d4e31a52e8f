package mesh

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ProgressFunc receives the loaded fraction in [0,1]
type ProgressFunc func(fraction float64)

// Parse loads a mesh, choosing the decoder from the file extension.
// Supported: .stl (ASCII and binary), .glb and .gltf.
func Parse(filename string, progress ProgressFunc) (*Mesh, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".stl":
		return parseSTLFile(filename, progress)
	case ".glb":
		return parseGLBFile(filename, progress)
	case ".gltf":
		m, err := parseGLTFFile(filename)
		if err == nil && progress != nil {
			progress(1)
		}
		return m, err
	default:
		return nil, fmt.Errorf("unsupported file type: %s (expected .stl, .glb or .gltf)", ext)
	}
}

// openWithProgress opens a file and wraps it in a reader reporting read progress
func openWithProgress(filename string, progress ProgressFunc) (*os.File, io.Reader, int64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, nil, 0, fmt.Errorf("failed to stat file: %w", err)
	}

	return file, &progressReader{r: file, total: info.Size(), progress: progress}, info.Size(), nil
}

type progressReader struct {
	r        io.Reader
	read     int64
	total    int64
	progress ProgressFunc
	reported float64
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	p.read += int64(n)
	if p.progress != nil && p.total > 0 {
		fraction := float64(p.read) / float64(p.total)
		// Only report in 1% steps to keep the channel quiet.
		if fraction-p.reported >= 0.01 || (fraction >= 1 && p.reported < 1) {
			p.reported = fraction
			p.progress(fraction)
		}
	}
	return n, err
}

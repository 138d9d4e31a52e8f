package mesh

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/philipparndt/showcase/pkg/geometry"
)

const (
	stlHeaderSize   = 80
	stlTriangleSize = 50
)

// parseSTLFile reads an STL file and detects whether it is ASCII or binary
func parseSTLFile(filename string, progress ProgressFunc) (*Mesh, error) {
	file, reader, size, err := openWithProgress(filename, progress)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ParseSTL(reader, size)
}

// ParseSTL decodes STL data. size is the total byte length when known
// (0 otherwise) and is used to tell binary files whose header happens to
// start with "solid" apart from real ASCII files.
func ParseSTL(r io.Reader, size int64) (*Mesh, error) {
	br := bufio.NewReader(r)

	header, err := br.Peek(stlHeaderSize + 4)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}

	if len(header) >= 5 && strings.HasPrefix(string(header[:5]), "solid") {
		if !looksBinary(header, size) {
			return parseASCII(br)
		}
	}

	return parseBinary(br)
}

// looksBinary checks whether the triangle count in the header matches the file size
func looksBinary(header []byte, size int64) bool {
	if size <= 0 || len(header) < stlHeaderSize+4 {
		return false
	}
	count := binary.LittleEndian.Uint32(header[stlHeaderSize:])
	return int64(stlHeaderSize+4)+int64(count)*stlTriangleSize == size
}

// parseASCII parses an ASCII STL stream
func parseASCII(reader io.Reader) (*Mesh, error) {
	scanner := bufio.NewScanner(reader)
	m := New("")

	var currentNormal geometry.Vector3
	var vertices []geometry.Vector3

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)

		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				m.Name = strings.Join(fields[1:], " ")
			}

		case "facet":
			if len(fields) >= 5 && fields[1] == "normal" {
				x, _ := strconv.ParseFloat(fields[2], 64)
				y, _ := strconv.ParseFloat(fields[3], 64)
				z, _ := strconv.ParseFloat(fields[4], 64)
				currentNormal = geometry.NewVector3(x, y, z)
			}

		case "vertex":
			if len(fields) >= 4 {
				x, err := strconv.ParseFloat(fields[1], 64)
				if err != nil {
					return nil, fmt.Errorf("invalid vertex %q: %w", line, err)
				}
				y, err := strconv.ParseFloat(fields[2], 64)
				if err != nil {
					return nil, fmt.Errorf("invalid vertex %q: %w", line, err)
				}
				z, err := strconv.ParseFloat(fields[3], 64)
				if err != nil {
					return nil, fmt.Errorf("invalid vertex %q: %w", line, err)
				}
				vertices = append(vertices, geometry.NewVector3(x, y, z))
			}

		case "endfacet":
			if len(vertices) == 3 {
				m.AddTriangle(geometry.NewTriangle(currentNormal, vertices[0], vertices[1], vertices[2]))
			}
			vertices = vertices[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}

	return m, nil
}

// parseBinary parses a binary STL stream
func parseBinary(reader io.Reader) (*Mesh, error) {
	m := New("")

	header := make([]byte, stlHeaderSize)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	headerStr := string(bytes.TrimRight(header, "\x00"))
	if len(headerStr) > 0 {
		m.Name = strings.TrimSpace(headerStr)
	}

	var triangleCount uint32
	if err := binary.Read(reader, binary.LittleEndian, &triangleCount); err != nil {
		return nil, fmt.Errorf("failed to read triangle count: %w", err)
	}

	// normal, three vertices and the attribute byte count
	var record struct {
		Normal, V1, V2, V3 [3]float32
		Attribute          uint16
	}

	for i := uint32(0); i < triangleCount; i++ {
		if err := binary.Read(reader, binary.LittleEndian, &record); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}

		m.AddTriangle(geometry.NewTriangle(
			vec32(record.Normal),
			vec32(record.V1),
			vec32(record.V2),
			vec32(record.V3),
		))
	}

	return m, nil
}

func vec32(v [3]float32) geometry.Vector3 {
	return geometry.NewVector3(float64(v[0]), float64(v[1]), float64(v[2]))
}

package mesh

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/showcase/pkg/geometry"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// parseGLBFile decodes a binary glTF container
func parseGLBFile(filename string, progress ProgressFunc) (*Mesh, error) {
	file, reader, _, err := openWithProgress(filename, progress)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	doc := new(gltf.Document)
	if err := gltf.NewDecoder(reader).Decode(doc); err != nil {
		return nil, fmt.Errorf("failed to decode glb: %w", err)
	}

	return FromDocument(doc, baseName(filename))
}

// parseGLTFFile decodes a JSON glTF file with its external buffers
func parseGLTFFile(filename string) (*Mesh, error) {
	doc, err := gltf.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open gltf: %w", err)
	}
	return FromDocument(doc, baseName(filename))
}

// FromDocument flattens every triangle primitive reachable from the default
// scene into world space, applying node transforms.
func FromDocument(doc *gltf.Document, name string) (*Mesh, error) {
	m := New(name)

	roots, err := sceneRoots(doc)
	if err != nil {
		return nil, err
	}

	for _, root := range roots {
		if err := appendNode(doc, m, root, mgl64.Ident4(), 0); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func sceneRoots(doc *gltf.Document) ([]int, error) {
	if len(doc.Scenes) == 0 {
		// No scene: treat every node as a root.
		roots := make([]int, len(doc.Nodes))
		for i := range doc.Nodes {
			roots[i] = i
		}
		return roots, nil
	}

	scene := 0
	if doc.Scene != nil {
		scene = *doc.Scene
	}
	if scene < 0 || scene >= len(doc.Scenes) {
		return nil, fmt.Errorf("invalid default scene %d", scene)
	}
	return doc.Scenes[scene].Nodes, nil
}

// appendNode walks the node hierarchy depth first
func appendNode(doc *gltf.Document, m *Mesh, index int, parent mgl64.Mat4, depth int) error {
	if index < 0 || index >= len(doc.Nodes) {
		return fmt.Errorf("invalid node index %d", index)
	}
	if depth > 64 {
		return fmt.Errorf("node hierarchy too deep at node %d", index)
	}

	node := doc.Nodes[index]
	world := parent.Mul4(localTransform(node))

	if node.Mesh != nil {
		if err := appendMesh(doc, m, *node.Mesh, world); err != nil {
			return err
		}
	}

	for _, child := range node.Children {
		if err := appendNode(doc, m, child, world, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func localTransform(node *gltf.Node) mgl64.Mat4 {
	matrix := mgl64.Mat4(node.MatrixOrDefault())
	if matrix != mgl64.Ident4() {
		return matrix
	}

	t := node.TranslationOrDefault()
	r := node.RotationOrDefault()
	s := node.ScaleOrDefault()

	rotation := mgl64.Quat{W: r[3], V: mgl64.Vec3{r[0], r[1], r[2]}}.Normalize()
	return mgl64.Translate3D(t[0], t[1], t[2]).
		Mul4(rotation.Mat4()).
		Mul4(mgl64.Scale3D(s[0], s[1], s[2]))
}

func appendMesh(doc *gltf.Document, m *Mesh, index int, world mgl64.Mat4) error {
	if index < 0 || index >= len(doc.Meshes) {
		return fmt.Errorf("invalid mesh index %d", index)
	}

	for p, primitive := range doc.Meshes[index].Primitives {
		if primitive.Mode != gltf.PrimitiveTriangles {
			continue
		}

		posIndex, ok := primitive.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		if posIndex < 0 || posIndex >= len(doc.Accessors) {
			return fmt.Errorf("mesh %d primitive %d: invalid position accessor %d", index, p, posIndex)
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIndex], nil)
		if err != nil {
			return fmt.Errorf("mesh %d primitive %d: failed to read positions: %w", index, p, err)
		}

		var indices []uint32
		if primitive.Indices != nil {
			if *primitive.Indices < 0 || *primitive.Indices >= len(doc.Accessors) {
				return fmt.Errorf("mesh %d primitive %d: invalid index accessor %d", index, p, *primitive.Indices)
			}
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*primitive.Indices], nil)
			if err != nil {
				return fmt.Errorf("mesh %d primitive %d: failed to read indices: %w", index, p, err)
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			a, b, c := indices[i], indices[i+1], indices[i+2]
			if int(a) >= len(positions) || int(b) >= len(positions) || int(c) >= len(positions) {
				return fmt.Errorf("mesh %d primitive %d: index out of range", index, p)
			}

			tri := geometry.Triangle{
				V1: transformPoint(world, positions[a]),
				V2: transformPoint(world, positions[b]),
				V3: transformPoint(world, positions[c]),
			}
			tri.Normal = tri.CalculateNormal()
			m.AddTriangle(tri)
		}
	}

	return nil
}

func transformPoint(world mgl64.Mat4, p [3]float32) geometry.Vector3 {
	v := world.Mul4x1(mgl64.Vec4{float64(p[0]), float64(p[1]), float64(p[2]), 1})
	return geometry.NewVector3(v[0], v[1], v[2])
}

func baseName(filename string) string {
	return strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
}

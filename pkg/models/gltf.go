package models

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/softcube/pkg/math3d"
)

// ErrNoGeometry is returned when a GLTF document has no triangle primitives.
var ErrNoGeometry = errors.New("gltf: no triangle geometry")

// DefaultFaceColor is used for faces whose primitive has no material.
const DefaultFaceColor uint32 = 0xFFFFFFFF

// GLTFLoader loads GLTF/GLB files into Mesh format.
//
// GLTF is right-handed with counter-clockwise front faces and the viewer on
// +Z. The pipeline's camera looks down +Z, so the loader mirrors Z and swaps
// the last two indices of every triangle to keep front faces clockwise.
type GLTFLoader struct {
	// MirrorZ converts from GLTF's right-handed space. Disable it to keep
	// the file's coordinates and winding verbatim.
	MirrorZ bool
	// DefaultColor is the face color for primitives without a material.
	DefaultColor uint32
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		MirrorZ:      true,
		DefaultColor: DefaultFaceColor,
	}
}

// LoadGLTF loads a .gltf or .glb file with the default loader and returns the
// mesh together with its first decodable image, which may be nil.
func LoadGLTF(path string) (*Mesh, image.Image, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a GLTF or GLB file.
func (l *GLTFLoader) Load(path string) (*Mesh, image.Image, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))
	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	if len(mesh.Faces) == 0 {
		return nil, nil, fmt.Errorf("%s: %w", path, ErrNoGeometry)
	}
	if err := mesh.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	mesh.CalculateBounds()

	return mesh, firstImage(doc, filepath.Dir(path)), nil
}

// processMesh extracts geometry from a GLTF mesh.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var uvs []math3d.Vec2
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = readVec2Accessor(doc, uvIdx)
			if err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			// No indices, assume sequential triangles
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		color := l.primitiveColor(doc, prim)
		baseVertex := len(mesh.Vertices)

		for _, p := range positions {
			if l.MirrorZ {
				p.Z = -p.Z
			}
			mesh.Vertices = append(mesh.Vertices, p)
		}

		for i := 0; i+2 < len(indices); i += 3 {
			tri := [3]int{indices[i], indices[i+1], indices[i+2]}
			if l.MirrorZ {
				tri[1], tri[2] = tri[2], tri[1]
			}
			for _, idx := range tri {
				if idx < 0 || idx >= len(positions) {
					return fmt.Errorf("triangle %d: index %d of %d positions: %w", i/3, idx, len(positions), ErrFaceIndex)
				}
			}

			face := Face{
				A:     baseVertex + tri[0],
				B:     baseVertex + tri[1],
				C:     baseVertex + tri[2],
				Color: color,
			}
			if len(uvs) == len(positions) {
				// GLTF texture space has V pointing down, like image rows.
				face.UV = [3]math3d.Vec2{uvs[tri[0]], uvs[tri[1]], uvs[tri[2]]}
				face.HasUV = true
			}
			mesh.Faces = append(mesh.Faces, face)
		}
	}

	return nil
}

// primitiveColor packs the base color factor of the primitive's material.
func (l *GLTFLoader) primitiveColor(doc *gltf.Document, prim *gltf.Primitive) uint32 {
	if prim.Material == nil || *prim.Material >= len(doc.Materials) {
		return l.DefaultColor
	}
	mat := doc.Materials[*prim.Material]
	if mat.PBRMetallicRoughness == nil || mat.PBRMetallicRoughness.BaseColorFactor == nil {
		return l.DefaultColor
	}
	return packColor(*mat.PBRMetallicRoughness.BaseColorFactor)
}

// packColor converts an RGBA factor in 0-1 range to packed ARGB.
func packColor(c [4]float64) uint32 {
	ch := func(f float64) uint32 {
		return uint32(math.Round(math.Max(0, math.Min(1, f)) * 255))
	}
	return ch(c[3])<<24 | ch(c[0])<<16 | ch(c[1])<<8 | ch(c[2])
}

// readVec3Accessor reads Vec3 data from a GLTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}

	floats, err := readFloats(doc, accessor, 3)
	if err != nil {
		return nil, err
	}

	result := make([]math3d.Vec3, accessor.Count)
	for i := range result {
		result[i] = math3d.V3(floats[i*3], floats[i*3+1], floats[i*3+2])
	}
	return result, nil
}

// readVec2Accessor reads Vec2 data from a GLTF accessor.
func readVec2Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec2, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec2 {
		return nil, fmt.Errorf("expected VEC2, got %v", accessor.Type)
	}

	floats, err := readFloats(doc, accessor, 2)
	if err != nil {
		return nil, err
	}

	result := make([]math3d.Vec2, accessor.Count)
	for i := range result {
		result[i] = math3d.V2(floats[i*2], floats[i*2+1])
	}
	return result, nil
}

// readFloats reads count*n little-endian float32 components.
func readFloats(doc *gltf.Document, accessor *gltf.Accessor, n int) ([]float64, error) {
	if accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("unsupported component type %v", accessor.ComponentType)
	}
	data, stride, err := accessorBytes(doc, accessor, n*4)
	if err != nil {
		return nil, err
	}

	out := make([]float64, 0, accessor.Count*n)
	for i := range accessor.Count {
		off := i * stride
		for j := range n {
			bits := binary.LittleEndian.Uint32(data[off+j*4:])
			out = append(out, float64(math.Float32frombits(bits)))
		}
	}
	return out, nil
}

// readIndices reads index data from a GLTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, size)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := range result {
		b := data[i*stride:]
		switch size {
		case 1:
			result[i] = int(b[0])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(b))
		case 4:
			result[i] = int(binary.LittleEndian.Uint32(b))
		}
	}
	return result, nil
}

// accessorBytes returns the accessor's bytes starting at its first element
// and the stride between elements. elemSize is the packed element size.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	if *accessor.BufferView < 0 || *accessor.BufferView >= len(doc.BufferViews) {
		return nil, 0, fmt.Errorf("buffer view %d out of range", *accessor.BufferView)
	}
	bufferView := doc.BufferViews[*accessor.BufferView]
	if bufferView.Buffer < 0 || bufferView.Buffer >= len(doc.Buffers) {
		return nil, 0, fmt.Errorf("buffer %d out of range", bufferView.Buffer)
	}

	// gltf.Open has already resolved embedded, data-URI and external buffers.
	bufData := doc.Buffers[bufferView.Buffer].Data
	if bufData == nil {
		return nil, 0, fmt.Errorf("buffer has no data")
	}

	if accessor.Count < 0 {
		return nil, 0, fmt.Errorf("negative accessor count %d", accessor.Count)
	}
	if bufferView.ByteOffset < 0 || accessor.ByteOffset < 0 {
		return nil, 0, fmt.Errorf("negative byte offset %d+%d", bufferView.ByteOffset, accessor.ByteOffset)
	}
	stride := bufferView.ByteStride
	if stride < 0 {
		return nil, 0, fmt.Errorf("negative byte stride %d", stride)
	}
	if stride == 0 {
		stride = elemSize
	}
	start := bufferView.ByteOffset + accessor.ByteOffset
	if start > len(bufData) {
		return nil, 0, fmt.Errorf("accessor starts %d bytes past buffer end", start-len(bufData))
	}
	if accessor.Count > 0 {
		end := start + (accessor.Count-1)*stride + elemSize
		if end > len(bufData) {
			return nil, 0, fmt.Errorf("accessor reads %d bytes past buffer end", end-len(bufData))
		}
	}
	return bufData[start:], stride, nil
}

// firstImage decodes the first image in the document that can be read and
// decoded, either from a buffer view or from a file relative to dir.
func firstImage(doc *gltf.Document, dir string) image.Image {
	for _, img := range doc.Images {
		var data []byte
		switch {
		case img.BufferView != nil && *img.BufferView >= 0 && *img.BufferView < len(doc.BufferViews):
			bv := doc.BufferViews[*img.BufferView]
			if bv.Buffer < 0 || bv.Buffer >= len(doc.Buffers) {
				continue
			}
			buf := doc.Buffers[bv.Buffer].Data
			if bv.ByteOffset < 0 || bv.ByteLength < 0 {
				continue
			}
			if end := bv.ByteOffset + bv.ByteLength; buf != nil && end <= len(buf) {
				data = buf[bv.ByteOffset:end]
			}
		case img.URI != "" && !strings.HasPrefix(img.URI, "data:"):
			b, err := os.ReadFile(filepath.Join(dir, img.URI))
			if err == nil {
				data = b
			}
		}
		if len(data) == 0 {
			continue
		}
		if decoded, _, err := image.Decode(bytes.NewReader(data)); err == nil {
			return decoded
		}
	}
	return nil
}

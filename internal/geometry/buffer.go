package geometry

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Standard attribute names.
const (
	AttrPosition = "position"
	AttrNormal   = "normal"
	AttrColor    = "color"
)

// Attribute is a flat float32 buffer read ItemSize components at a time (3 for positions and normals).
type Attribute struct {
	Array    []float32
	ItemSize int
}

// NewAttribute wraps arr. arr is not copied.
func NewAttribute(arr []float32, itemSize int) *Attribute {
	return &Attribute{Array: arr, ItemSize: itemSize}
}

// Count returns the number of items (e.g. vertices) in the buffer.
func (a *Attribute) Count() int {
	if a == nil || a.ItemSize <= 0 {
		return 0
	}
	return len(a.Array) / a.ItemSize
}

func (a *Attribute) vec3(i int) Vec3 {
	o := i * a.ItemSize
	return Vec3{a.Array[o], a.Array[o+1], a.Array[o+2]}
}

func (a *Attribute) setVec3(i int, v Vec3) {
	o := i * a.ItemSize
	a.Array[o], a.Array[o+1], a.Array[o+2] = v[0], v[1], v[2]
}

// BufferGeometry holds named vertex attributes and an optional triangle index (3 indices per face).
// Without an index, consecutive vertex triplets form the triangles.
type BufferGeometry struct {
	Attributes map[string]*Attribute
	Index      []uint32
}

// NewBufferGeometry returns an empty geometry.
func NewBufferGeometry() *BufferGeometry {
	return &BufferGeometry{Attributes: make(map[string]*Attribute)}
}

func (g *BufferGeometry) SetAttribute(name string, a *Attribute) {
	g.Attributes[name] = a
}

// Attribute returns the named attribute or nil.
func (g *BufferGeometry) Attribute(name string) *Attribute {
	return g.Attributes[name]
}

func (g *BufferGeometry) SetIndex(index []uint32) {
	g.Index = index
}

// VertexCount returns the number of positions.
func (g *BufferGeometry) VertexCount() int {
	return g.Attribute(AttrPosition).Count()
}

// TriangleCount returns the number of faces.
func (g *BufferGeometry) TriangleCount() int {
	if g.Index != nil {
		return len(g.Index) / 3
	}
	return g.VertexCount() / 3
}

// Triangle returns the vertex indices of face i.
func (g *BufferGeometry) Triangle(i int) (a, b, c int) {
	if g.Index != nil {
		return int(g.Index[3*i]), int(g.Index[3*i+1]), int(g.Index[3*i+2])
	}
	return 3 * i, 3*i + 1, 3*i + 2
}

// Position returns vertex i.
func (g *BufferGeometry) Position(i int) Vec3 {
	return g.Attribute(AttrPosition).vec3(i)
}

// ComputeVertexNormals sets the "normal" attribute to the normalized sum of the
// (area-weighted) normals of every face touching each vertex.
// Vertices not referenced by any face get a zero normal.
func (g *BufferGeometry) ComputeVertexNormals() error {
	pos := g.Attribute(AttrPosition)
	if pos == nil || pos.ItemSize != 3 {
		return fmt.Errorf("geometry: compute normals: missing position attribute")
	}
	n := pos.Count()
	for _, idx := range g.Index {
		if int(idx) >= n {
			return fmt.Errorf("geometry: compute normals: index %d out of range (%d vertices)", idx, n)
		}
	}
	normals := NewAttribute(make([]float32, n*3), 3)
	for f := 0; f < g.TriangleCount(); f++ {
		a, b, c := g.Triangle(f)
		pa, pb, pc := pos.vec3(a), pos.vec3(b), pos.vec3(c)
		// cross product length is twice the face area, so larger faces weigh more
		fn := pc.Sub(pb).Cross(pa.Sub(pb))
		for _, v := range [3]int{a, b, c} {
			normals.setVec3(v, normals.vec3(v).Add(fn))
		}
	}
	for i := 0; i < n; i++ {
		normals.setVec3(i, normals.vec3(i).Normalize())
	}
	g.SetAttribute(AttrNormal, normals)
	return nil
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max Vec3
}

// Center returns the midpoint of the box.
func (b Box) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// BoundingBox returns the bounds of the position attribute. ok is false for empty geometry.
func (g *BufferGeometry) BoundingBox() (box Box, ok bool) {
	pos := g.Attribute(AttrPosition)
	if pos.Count() == 0 {
		return Box{}, false
	}
	box.Min = Vec3{math32.Inf(1), math32.Inf(1), math32.Inf(1)}
	box.Max = Vec3{math32.Inf(-1), math32.Inf(-1), math32.Inf(-1)}
	for i := 0; i < pos.Count(); i++ {
		p := pos.vec3(i)
		for k := 0; k < 3; k++ {
			box.Min[k] = math32.Min(box.Min[k], p[k])
			box.Max[k] = math32.Max(box.Max[k], p[k])
		}
	}
	return box, true
}

// Clone returns a deep copy.
func (g *BufferGeometry) Clone() *BufferGeometry {
	if g == nil {
		return nil
	}
	out := NewBufferGeometry()
	for name, a := range g.Attributes {
		arr := make([]float32, len(a.Array))
		copy(arr, a.Array)
		out.Attributes[name] = NewAttribute(arr, a.ItemSize)
	}
	if g.Index != nil {
		out.Index = append([]uint32(nil), g.Index...)
	}
	return out
}

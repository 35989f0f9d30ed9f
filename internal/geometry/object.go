package geometry

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// Names given to generated objects.
const (
	PointcloudName = "Generated Pointcloud"
	MeshName       = "Generated Mesh"
)

// ErrBadPointcloud is returned when point-cloud data is not a list of xyz triplets.
var ErrBadPointcloud = errors.New("geometry: malformed pointcloud data")

// Color is a 0xRRGGBB colour.
type Color uint32

// RGB returns the colour channels as bytes.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

func (c Color) String() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

// MaterialType selects how an object is shaded.
type MaterialType int

const (
	PointsMaterial MaterialType = iota
	StandardMaterial
)

// Material describes the shading of an object. Size and SizeAttenuation only apply to points;
// Roughness and Metalness only to standard (lit) surfaces.
type Material struct {
	Type            MaterialType
	Color           Color
	Size            float32
	SizeAttenuation bool
	Roughness       float32
	Metalness       float32
}

// Kind is the renderable variant of an object.
type Kind int

const (
	KindPoints Kind = iota
	KindMesh
)

func (k Kind) String() string {
	switch k {
	case KindPoints:
		return "points"
	case KindMesh:
		return "mesh"
	}
	return "unknown"
}

// UserData is the auxiliary metadata carried by generated objects.
// FilePath is the server-side path later actions send back to the service.
type UserData struct {
	FilePath    string
	DownloadURL string
}

// Object is a renderable scene object: a point cloud or a mesh.
type Object struct {
	ID       string
	Name     string
	Kind     Kind
	Geometry *BufferGeometry
	Material Material
	UserData UserData
}

// NewObject returns an object with a fresh ID.
func NewObject(kind Kind, name string, g *BufferGeometry, m Material) *Object {
	return &Object{
		ID:       uuid.NewString(),
		Name:     name,
		Kind:     kind,
		Geometry: g,
		Material: m,
	}
}

// Clone returns a deep copy keeping the same ID.
func (o *Object) Clone() *Object {
	var c Object
	if err := copier.Copy(&c, o); err != nil {
		c = *o
	}
	c.Geometry = o.Geometry.Clone()
	return &c
}

// Duplicate returns a deep copy with a fresh ID, named "<name> Copy". The server file path and
// download URL are kept: they still describe the same data.
func (o *Object) Duplicate() *Object {
	c := o.Clone()
	c.ID = uuid.NewString()
	c.Name = o.Name + " Copy"
	return c
}

// Flatten turns a list of points into a flat xyz buffer, keeping order.
// Every point must have exactly three coordinates.
func Flatten(points [][]float64) ([]float32, error) {
	out := make([]float32, 0, len(points)*3)
	for i, p := range points {
		if len(p) != 3 {
			return nil, fmt.Errorf("%w: point %d has %d coordinates", ErrBadPointcloud, i, len(p))
		}
		out = append(out, float32(p[0]), float32(p[1]), float32(p[2]))
	}
	return out, nil
}

package geometry

// PointStyle is how a generated point cloud is drawn.
type PointStyle struct {
	Size            float32
	Color           Color
	SizeAttenuation bool
}

// Factory builds the renderable objects handed to the editor.
type Factory struct {
	// MeshRoughness and MeshMetalness are applied to every generated mesh.
	MeshRoughness float32
	MeshMetalness float32
}

// NewFactory returns a Factory with the default standard-material parameters.
func NewFactory() *Factory {
	return &Factory{MeshRoughness: 1, MeshMetalness: 0}
}

// NewPointcloud wraps points into a points object named "Generated Pointcloud".
func (f *Factory) NewPointcloud(points [][]float64, style PointStyle, filePath, downloadURL string) (*Object, error) {
	arr, err := Flatten(points)
	if err != nil {
		return nil, err
	}
	g := NewBufferGeometry()
	g.SetAttribute(AttrPosition, NewAttribute(arr, 3))
	obj := NewObject(KindPoints, PointcloudName, g, Material{
		Type:            PointsMaterial,
		Color:           style.Color,
		Size:            style.Size,
		SizeAttenuation: style.SizeAttenuation,
	})
	obj.UserData = UserData{FilePath: filePath, DownloadURL: downloadURL}
	return obj, nil
}

// NewMesh wraps g (normals expected to be computed already) into a mesh named "Generated Mesh"
// with a standard material.
func (f *Factory) NewMesh(g *BufferGeometry, color Color, downloadURL string) *Object {
	obj := NewObject(KindMesh, MeshName, g, Material{
		Type:      StandardMaterial,
		Color:     color,
		Roughness: f.MeshRoughness,
		Metalness: f.MeshMetalness,
	})
	obj.UserData.DownloadURL = downloadURL
	return obj
}

// NewImported wraps g loaded from a bundle: a mesh when g is indexed, otherwise a point cloud.
func (f *Factory) NewImported(name string, g *BufferGeometry, style PointStyle, meshColor Color) *Object {
	if g.Index != nil {
		if g.Attribute(AttrNormal) == nil {
			_ = g.ComputeVertexNormals()
		}
		obj := f.NewMesh(g, meshColor, "")
		obj.Name = name
		return obj
	}
	return NewObject(KindPoints, name, g, Material{
		Type:            PointsMaterial,
		Color:           style.Color,
		Size:            style.Size,
		SizeAttenuation: style.SizeAttenuation,
	})
}

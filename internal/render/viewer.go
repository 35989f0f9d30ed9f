// Package render draws the editor with raylib: the 3D viewport with generated objects,
// and the sidebar overlay. Everything here must run on the window's main thread.
package render

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"reconstruct-editor/internal/geometry"
)

const (
	gridExtent     = 20
	gridMajorStep  = 5
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
	// pointScale converts material point size (scene units) to the cube edge drawn per point.
	pointScale = 1
)

var (
	lightDir      = geometry.Vec3{0.4, 1, 0.6}.Normalize()
	selectedColor = rl.NewColor(255, 200, 0, 255)
)

// Viewer holds the 3D camera. The camera moves only while the right mouse button is held, so the
// cursor stays free for the sidebar the rest of the time.
type Viewer struct {
	Camera      rl.Camera3D
	GridVisible bool
	orbiting    bool
	focusID     string
}

// NewViewer returns a viewer looking at the origin from (3,3,3).
func NewViewer() *Viewer {
	v := &Viewer{GridVisible: true}
	v.Camera.Position = rl.NewVector3(3, 3, 3)
	v.Camera.Target = rl.NewVector3(0, 0, 0)
	v.Camera.Up = rl.NewVector3(0, 1, 0)
	v.Camera.Fovy = 45
	v.Camera.Projection = rl.CameraPerspective
	return v
}

// Update runs camera input for one frame. inputCaptured is true while the terminal owns the keyboard.
func (v *Viewer) Update(inputCaptured bool) {
	orbit := !inputCaptured && rl.IsMouseButtonDown(rl.MouseButtonRight)
	if orbit != v.orbiting {
		if orbit {
			rl.DisableCursor()
		} else {
			rl.EnableCursor()
		}
		v.orbiting = orbit
	}
	if orbit {
		rl.UpdateCamera(&v.Camera, rl.CameraFree)
	}
}

// Focus points the camera at the object's bounding box the first time obj is focused.
func (v *Viewer) Focus(obj *geometry.Object) {
	if obj == nil || obj.ID == v.focusID || obj.Geometry == nil {
		return
	}
	v.focusID = obj.ID
	box, ok := obj.Geometry.BoundingBox()
	if !ok {
		return
	}
	c := box.Center()
	r := box.Max.Sub(box.Min).Len()
	if r < 1e-3 {
		r = 1
	}
	v.Camera.Target = rl.NewVector3(c[0], c[1], c[2])
	v.Camera.Position = rl.NewVector3(c[0]+r, c[1]+r, c[2]+r)
}

// Draw renders the grid and every object. The selected object gets a highlighted bounding box.
func (v *Viewer) Draw(objects []*geometry.Object, selected *geometry.Object) {
	rl.BeginMode3D(v.Camera)
	if v.GridVisible {
		drawGrid()
	}
	for _, obj := range objects {
		if obj.Geometry == nil {
			continue
		}
		switch obj.Kind {
		case geometry.KindPoints:
			drawPoints(obj)
		case geometry.KindMesh:
			drawMesh(obj)
		}
		if obj == selected {
			if box, ok := obj.Geometry.BoundingBox(); ok {
				rl.DrawBoundingBox(rl.BoundingBox{
					Min: rl.NewVector3(box.Min[0], box.Min[1], box.Min[2]),
					Max: rl.NewVector3(box.Max[0], box.Max[1], box.Max[2]),
				}, selectedColor)
			}
		}
	}
	rl.EndMode3D()
}

func toColor(c geometry.Color) rl.Color {
	r, g, b := c.RGB()
	return rl.NewColor(r, g, b, 255)
}

func drawPoints(obj *geometry.Object) {
	g := obj.Geometry
	col := toColor(obj.Material.Color)
	size := obj.Material.Size * pointScale
	n := g.VertexCount()
	for i := 0; i < n; i++ {
		p := g.Position(i)
		pos := rl.NewVector3(p[0], p[1], p[2])
		if size <= 0 {
			rl.DrawPoint3D(pos, col)
			continue
		}
		rl.DrawCube(pos, size, size, size, col)
	}
}

// drawMesh flat-shades each face with a single directional light.
func drawMesh(obj *geometry.Object) {
	g := obj.Geometry
	r, gr, b := obj.Material.Color.RGB()
	for f := 0; f < g.TriangleCount(); f++ {
		ia, ib, ic := g.Triangle(f)
		pa, pb, pc := g.Position(ia), g.Position(ib), g.Position(ic)
		n := pb.Sub(pa).Cross(pc.Sub(pa)).Normalize()
		shade := 0.25 + 0.75*math32.Abs(n.Dot(lightDir))
		col := rl.NewColor(uint8(float32(r)*shade), uint8(float32(gr)*shade), uint8(float32(b)*shade), 255)
		va, vb, vc := rl.NewVector3(pa[0], pa[1], pa[2]), rl.NewVector3(pb[0], pb[1], pb[2]), rl.NewVector3(pc[0], pc[1], pc[2])
		// drawn with both windings; face orientation is not consistent
		rl.DrawTriangle3D(va, vb, vc, col)
		rl.DrawTriangle3D(va, vc, vb, col)
	}
}

// drawGrid draws a grid on the XZ plane with major/minor lines and axis lines.
func drawGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	var start, end rl.Vector3
	for i := -gridExtent; i <= gridExtent; i++ {
		c := minor
		if i%gridMajorStep == 0 {
			c = major
		}
		start.X, start.Y, start.Z = float32(i), 0, -gridExtent
		end.X, end.Y, end.Z = float32(i), 0, gridExtent
		rl.DrawLine3D(start, end, c)
		start.X, start.Y, start.Z = -gridExtent, 0, float32(i)
		end.X, end.Y, end.Z = gridExtent, 0, float32(i)
		rl.DrawLine3D(start, end, c)
	}
	rl.DrawLine3D(rl.NewVector3(-gridExtent, 0, 0), rl.NewVector3(gridExtent, 0, 0), rl.NewColor(220, 80, 80, axisLineAlpha))
	rl.DrawLine3D(rl.NewVector3(0, -gridExtent, 0), rl.NewVector3(0, gridExtent, 0), rl.NewColor(80, 220, 80, axisLineAlpha))
	rl.DrawLine3D(rl.NewVector3(0, 0, -gridExtent), rl.NewVector3(0, 0, gridExtent), rl.NewColor(80, 80, 220, axisLineAlpha))
}

package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"reconstruct-editor/internal/config"
	"reconstruct-editor/internal/geometry"
)

const (
	fontSize   = 18
	padding    = 12
	lineHeight = fontSize + 4
	// text is refreshed every updateInterval frames
	updateInterval = 30
)

// Debug draws the top-right counters: FPS, heap allocation and scene totals.
// Which counters show is taken from the view preferences; all are off by default.
type Debug struct {
	View config.ViewPrefs

	frameCount uint32
	fpsText    string
	memText    string
	sceneText  string
	memStats   runtime.MemStats
}

func New(view config.ViewPrefs) *Debug {
	return &Debug{View: view}
}

// Draw renders the enabled counters. Call last in the draw loop.
func (d *Debug) Draw(objects []*geometry.Object) {
	if !d.View.ShowFPS && !d.View.ShowMemAlloc {
		return
	}
	d.frameCount++
	refresh := d.frameCount%updateInterval == 0 || d.fpsText == ""
	if refresh {
		d.fpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		runtime.ReadMemStats(&d.memStats)
		d.memText = fmt.Sprintf("Mem: %.2f MiB", float64(d.memStats.Alloc)/(1024*1024))
		d.sceneText = sceneText(objects)
	}

	y := int32(padding)
	var lines []string
	if d.View.ShowFPS {
		lines = append(lines, d.fpsText, d.sceneText)
	}
	if d.View.ShowMemAlloc {
		lines = append(lines, d.memText)
	}
	screenW := int32(rl.GetScreenWidth())
	for _, text := range lines {
		w := rl.MeasureText(text, fontSize)
		rl.DrawText(text, screenW-w-padding, y, fontSize, rl.Green)
		y += lineHeight
	}
}

func sceneText(objects []*geometry.Object) string {
	var points, triangles int
	for _, o := range objects {
		if o.Geometry == nil {
			continue
		}
		if o.Kind == geometry.KindMesh {
			triangles += o.Geometry.TriangleCount()
		} else {
			points += o.Geometry.VertexCount()
		}
	}
	return fmt.Sprintf("Objects: %d  Points: %d  Triangles: %d", len(objects), points, triangles)
}

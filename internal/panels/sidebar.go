package panels

import (
	"context"

	"reconstruct-editor/internal/geometry"
	"reconstruct-editor/internal/locale"
	"reconstruct-editor/internal/ui"
)

// Sidebar is the generation sidebar: actions header, Upload Panel, processing header,
// Processing Panel and an inspector for the current selection.
type Sidebar struct {
	Root       *ui.Node
	Upload     *UploadPanel
	Processing *ProcessingPanel
	Inspector  *ui.Inspector

	deps Deps
}

func NewSidebar(d Deps) *Sidebar {
	d = d.withDefaults()
	tk, s := d.Toolkit, d.Editor.Strings
	sb := &Sidebar{
		Root:       tk.Panel("sidebar"),
		Upload:     NewUploadPanel(d),
		Processing: NewProcessingPanel(d),
		Inspector:  ui.NewInspector(tk),
		deps:       d,
	}
	sb.Root.Add(
		tk.Label("header", s.Get(locale.ActionsHeader)),
		sb.Upload.Root,
		tk.Label("header", s.Get(locale.ProcessingHeader)),
		sb.Processing.Root,
		sb.Inspector.Panel,
	)
	d.Editor.OnChange(sb.Refresh)
	return sb
}

// Bind wires every button of the sidebar.
func (sb *Sidebar) Bind(ctx context.Context) {
	sb.Upload.Bind(ctx)
	sb.Processing.Bind(ctx)
}

// Refresh shows the current selection in the inspector.
func (sb *Sidebar) Refresh() {
	obj := sb.deps.Editor.Selected()
	if obj == nil {
		sb.Inspector.Update(nil)
		return
	}
	sel := &ui.Selection{
		Name:     obj.Name,
		Kind:     obj.Kind.String(),
		FilePath: obj.UserData.FilePath,
		Download: obj.UserData.DownloadURL,
	}
	if obj.Geometry != nil {
		sel.Vertices = obj.Geometry.VertexCount()
		if obj.Kind == geometry.KindMesh {
			sel.Triangles = obj.Geometry.TriangleCount()
		}
	}
	sb.Inspector.Update(sel)
}

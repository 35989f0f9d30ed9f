package panels

import (
	"bytes"
	"context"

	"go.uber.org/zap"

	"reconstruct-editor/internal/editor"
	"reconstruct-editor/internal/geometry"
	"reconstruct-editor/internal/inference"
	"reconstruct-editor/internal/locale"
	"reconstruct-editor/internal/ply"
	"reconstruct-editor/internal/ui"
)

// meshContentType is the type recorded for generated mesh blobs.
const meshContentType = "application/octet-stream"

// ProcessingPanel upsamples or meshes the selected point cloud.
type ProcessingPanel struct {
	deps Deps

	Root      *ui.Node
	Upsample  *ui.BusyButton
	Mesh      *ui.BusyButton
	Smoothing *ui.Select
}

func NewProcessingPanel(d Deps) *ProcessingPanel {
	d = d.withDefaults()
	tk, s := d.Toolkit, d.Editor.Strings
	p := &ProcessingPanel{
		deps: d,
		Root: tk.Panel("panel processing"),
		Upsample: ui.NewBusyButton(tk.Button("upsample", ""),
			s.Get(locale.Upsampling), s.Get(locale.UpsamplingBusy)),
		Mesh: ui.NewBusyButton(tk.Button("mesh", ""),
			s.Get(locale.GenerateMesh), s.Get(locale.GeneratingMesh)),
		Smoothing: tk.Select("smoothing", []ui.Option{
			{Value: inference.Laplacian, Label: s.Get(locale.Laplacian)},
			{Value: inference.Taubin, Label: s.Get(locale.Taubin)},
		}),
	}
	if alg, err := inference.ParseSmoothing(d.Editor.Prefs.Panels.DefaultSmoothing); err == nil {
		p.Smoothing.SetValue(alg)
	}
	p.Smoothing.OnChange(func(v string) {
		d.Log.Info("smoothing changed", zap.String("algorithm", v))
	})
	p.Root.Add(
		tk.Row().Add(p.Upsample.Button.Node),
		tk.Row().Add(tk.Label("label", s.Get(locale.Smoothing)), p.Smoothing.Node),
		tk.Row().Add(p.Mesh.Button.Node),
	)
	return p
}

// Bind wires both action buttons to run in their own goroutines under ctx.
func (p *ProcessingPanel) Bind(ctx context.Context) {
	p.Upsample.Button.OnClick(func() {
		go func() { _ = p.UpsampleSelected(ctx) }()
	})
	p.Mesh.Button.OnClick(func() {
		go func() { _ = p.GenerateMesh(ctx) }()
	})
}

// SetSmoothing selects the smoothing algorithm for the next mesh request.
func (p *ProcessingPanel) SetSmoothing(s string) error {
	alg, err := inference.ParseSmoothing(s)
	if err != nil {
		return err
	}
	p.Smoothing.SetValue(alg)
	return nil
}

func (p *ProcessingPanel) SmoothingAlgorithm() string {
	return p.Smoothing.Value()
}

// target validates the selection. On failure it alerts once and, unless preferences keep the
// button stuck as it historically was, releases the busy state.
func (p *ProcessingPanel) target(end func()) (*geometry.Object, error) {
	sel := p.deps.Editor.Selected()
	var key string
	var err error
	switch {
	case sel == nil:
		key, err = locale.AlertNoSelection, ErrNoSelection
	case sel.UserData.FilePath == "":
		key, err = locale.AlertNoFilePath, ErrNoFilePath
	default:
		return sel, nil
	}
	p.deps.Alerter.Alert(p.deps.Editor.Strings.Get(key))
	p.deps.Log.Warn("processing aborted", zap.Error(err))
	if p.deps.Editor.Prefs.Panels.ResetOnValidationAbort {
		end()
	}
	return nil, err
}

// UpsampleSelected asks the service to upsample the selected point cloud and adds the result.
func (p *ProcessingPanel) UpsampleSelected(ctx context.Context) error {
	end, ok := p.Upsample.Begin()
	if !ok {
		p.deps.Log.Warn("upsampling already in progress")
		return ErrBusy
	}
	sel, err := p.target(end)
	if err != nil {
		return err
	}
	defer end()

	prefs := p.deps.Editor.Prefs
	resp, err := p.deps.Client.Upsample(ctx, inference.UpsampleRequest{
		FilePath:   sel.UserData.FilePath,
		FileFormat: prefs.Service.FileFormat,
		NPoints:    prefs.Service.NPoints,
	})
	if err != nil {
		return fail(p.deps, "Upsampling", err, zap.String("file_path", sel.UserData.FilePath))
	}
	obj, err := p.deps.Factory.NewPointcloud(resp.PointcloudData, pointStyle(prefs.Points.Upsample), resp.FilePath, resp.DownloadURL)
	if err != nil {
		return fail(p.deps, "Upsampling", err, zap.String("file_path", sel.UserData.FilePath))
	}
	p.deps.Editor.Execute(editor.NewAddObjectCommand(obj))
	p.deps.Log.Info("upsampled pointcloud added",
		zap.String("id", obj.ID),
		zap.Int("points", obj.Geometry.VertexCount()),
		zap.String("file_path", resp.FilePath))
	return nil
}

// GenerateMesh asks the service to mesh the selected point cloud with the chosen smoothing,
// decodes the returned PLY and adds the shaded mesh. The raw PLY stays reachable through a
// blob: URL recorded as the mesh's download reference.
func (p *ProcessingPanel) GenerateMesh(ctx context.Context) error {
	end, ok := p.Mesh.Begin()
	if !ok {
		p.deps.Log.Warn("mesh generation already in progress")
		return ErrBusy
	}
	sel, err := p.target(end)
	if err != nil {
		return err
	}
	defer end()

	prefs := p.deps.Editor.Prefs
	req := inference.MeshRequest{
		FilePath:            sel.UserData.FilePath,
		SmoothingAlgorithm:  p.SmoothingAlgorithm(),
		SmoothingIterations: prefs.Service.SmoothingIterations,
	}
	data, err := p.deps.Client.GenerateMesh(ctx, req)
	if err != nil {
		return fail(p.deps, "Mesh generation", err, zap.String("file_path", req.FilePath))
	}

	url := p.deps.Blobs.Create(data, meshContentType)
	g, err := ply.Decode(bytes.NewReader(data))
	if err == nil {
		err = g.ComputeVertexNormals()
	}
	if err != nil {
		p.deps.Blobs.Revoke(url)
		return fail(p.deps, "Mesh generation", err, zap.String("file_path", req.FilePath))
	}
	obj := p.deps.Factory.NewMesh(g, geometry.Color(prefs.Mesh.Color), url)
	p.deps.Editor.Execute(editor.NewAddObjectCommand(obj))
	p.deps.Log.Info("mesh added",
		zap.String("id", obj.ID),
		zap.String("smoothing", req.SmoothingAlgorithm),
		zap.Int("vertices", g.VertexCount()),
		zap.Int("triangles", g.TriangleCount()),
		zap.String("download_url", url))
	return nil
}

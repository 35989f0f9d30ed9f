package panels

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reconstruct-editor/internal/blob"
	"reconstruct-editor/internal/config"
	"reconstruct-editor/internal/editor"
	"reconstruct-editor/internal/geometry"
	"reconstruct-editor/internal/inference"
	"reconstruct-editor/internal/logger"
	"reconstruct-editor/internal/ply"
	"reconstruct-editor/internal/ui"
)

type request struct {
	Path     string
	Body     []byte
	FileName string
}

// service is a fake inference service that records every request.
type service struct {
	*httptest.Server

	mu       sync.Mutex
	requests []request
	routes   map[string]http.HandlerFunc
}

func newService(t *testing.T, routes map[string]http.HandlerFunc) *service {
	s := &service{routes: routes}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		rec := request{Path: r.URL.Path, Body: body}
		if r.URL.Path == inference.PathPointcloud {
			r.Body = io.NopCloser(bytes.NewReader(body))
			if err := r.ParseMultipartForm(1 << 20); err == nil {
				if _, hdr, err := r.FormFile("file"); err == nil {
					rec.FileName = hdr.Filename
				}
			}
		}
		s.mu.Lock()
		s.requests = append(s.requests, rec)
		s.mu.Unlock()
		r.Body = io.NopCloser(bytes.NewReader(body))
		if h, ok := s.routes[r.URL.Path]; ok {
			h(w, r)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *service) Requests() []request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]request(nil), s.requests...)
}

type spyAlerter struct {
	mu   sync.Mutex
	msgs []string
}

func (a *spyAlerter) Alert(msg string) {
	a.mu.Lock()
	a.msgs = append(a.msgs, msg)
	a.mu.Unlock()
}

func (a *spyAlerter) Messages() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.msgs...)
}

type fixture struct {
	svc     *service
	editor  *editor.Editor
	alerter *spyAlerter
	blobs   *blob.Store
	log     *logger.Logger
	deps    Deps
}

func newFixture(t *testing.T, routes map[string]http.HandlerFunc, tweak func(*config.Prefs)) *fixture {
	prefs := config.Default()
	if tweak != nil {
		tweak(&prefs)
	}
	f := &fixture{
		svc:     newService(t, routes),
		alerter: &spyAlerter{},
		blobs:   blob.NewStore(),
		log:     logger.NewNop(),
	}
	f.editor = editor.New(prefs, nil)
	f.deps = Deps{
		Editor:  f.editor,
		Client:  inference.NewClient(f.svc.URL, 0),
		Toolkit: ui.NewToolkit(nil),
		Alerter: f.alerter,
		Blobs:   f.blobs,
		Log:     f.log,
	}
	return f
}

func jsonReply(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}
}

func statusReply(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", code)
	}
}

func pngFile(t *testing.T, name string) File {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 400, 200))))
	return File{Name: name, ContentType: "image/png", Data: buf.Bytes()}
}

func meshPLY(t *testing.T) []byte {
	t.Helper()
	g := geometry.NewBufferGeometry()
	g.SetAttribute(geometry.AttrPosition, geometry.NewAttribute([]float32{
		0, 0, 0,
		1, 0, 0,
		1, 1, 0,
		0, 1, 0,
	}, 3))
	g.SetIndex([]uint32{0, 1, 2, 0, 2, 3})
	var buf bytes.Buffer
	require.NoError(t, ply.Encode(&buf, g, ply.BinaryLittleEndian))
	return buf.Bytes()
}

func selectPointcloud(t *testing.T, ed *editor.Editor, filePath string) *geometry.Object {
	t.Helper()
	obj, err := geometry.NewFactory().NewPointcloud([][]float64{{0, 0, 0}}, geometry.PointStyle{}, filePath, "")
	require.NoError(t, err)
	ed.Execute(editor.NewAddObjectCommand(obj))
	return obj
}

func logText(l *logger.Logger) string {
	return strings.Join(l.Lines(), "\n")
}

const pointcloudJSON = `{"pointcloud_data":[[0.5,1,1.5],[2,2.5,3],[-1,-2,-3]],"file_path":"prediction_history/ply/a.ply","download_url":"https://storage/a.ply"}`

func TestUploadAddsPointcloud(t *testing.T) {
	f := newFixture(t, map[string]http.HandlerFunc{inference.PathPointcloud: jsonReply(pointcloudJSON)}, nil)
	p := NewUploadPanel(f.deps)

	_, err := p.SelectFile(pngFile(t, "chair.png"))
	require.NoError(t, err)
	require.NoError(t, p.UploadFile(context.Background()))

	objs := f.editor.Objects()
	require.Len(t, objs, 1)
	obj := objs[0]
	assert.Equal(t, geometry.PointcloudName, obj.Name)
	assert.Equal(t, geometry.KindPoints, obj.Kind)
	assert.Equal(t, []float32{0.5, 1, 1.5, 2, 2.5, 3, -1, -2, -3}, obj.Geometry.Attribute(geometry.AttrPosition).Array)
	assert.Equal(t, "prediction_history/ply/a.ply", obj.UserData.FilePath)
	assert.Equal(t, "https://storage/a.ply", obj.UserData.DownloadURL)
	assert.Equal(t, geometry.Color(0x00ff00), obj.Material.Color)
	assert.InDelta(t, 0.01, obj.Material.Size, 1e-6)
	assert.Same(t, obj, f.editor.Selected())

	undos, _ := f.editor.History()
	assert.Len(t, undos, 1)

	reqs := f.svc.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "chair.png", reqs[0].FileName)
}

func TestSelectFileLastWriteWins(t *testing.T) {
	f := newFixture(t, map[string]http.HandlerFunc{inference.PathPointcloud: jsonReply(pointcloudJSON)}, nil)
	p := NewUploadPanel(f.deps)

	_, err := p.SelectFile(pngFile(t, "first.png"))
	require.NoError(t, err)
	done, err := p.SelectFile(pngFile(t, "second.png"))
	require.NoError(t, err)
	<-done

	sel, ok := p.Selected()
	require.True(t, ok)
	assert.Equal(t, "second.png", sel.Name)
	assert.Equal(t, "second.png", p.FileName.Value())

	require.NoError(t, p.UploadFile(context.Background()))
	reqs := f.svc.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "second.png", reqs[0].FileName)
}

func TestSelectFileShowsPreview(t *testing.T) {
	f := newFixture(t, nil, nil)
	p := NewUploadPanel(f.deps)
	assert.True(t, p.Preview.Node.Hidden())

	done, err := p.SelectFile(pngFile(t, "chair.png"))
	require.NoError(t, err)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("preview never finished")
	}
	assert.False(t, p.Preview.Node.Hidden())
	assert.True(t, strings.HasPrefix(p.Preview.Src(), "data:image/png;base64,"))
	assert.Equal(t, 200, p.Preview.Image().Bounds().Dx())
	assert.Equal(t, 100, p.Preview.Image().Bounds().Dy())
}

func TestSelectFileRejectsNonImages(t *testing.T) {
	f := newFixture(t, nil, nil)
	p := NewUploadPanel(f.deps)

	_, err := p.SelectFile(File{Name: "notes.txt", Data: []byte("hello")})
	assert.ErrorIs(t, err, ErrNotImage)
	_, ok := p.Selected()
	assert.False(t, ok)
	assert.False(t, p.Upload.Button.Enabled())
}

func TestSelectFileGuessesTypeFromName(t *testing.T) {
	f := newFixture(t, nil, nil)
	p := NewUploadPanel(f.deps)

	file := pngFile(t, "chair.png")
	file.ContentType = ""
	done, err := p.SelectFile(file)
	require.NoError(t, err)
	<-done
	sel, _ := p.Selected()
	assert.Equal(t, "image/png", sel.ContentType)
}

func TestUploadWithoutFileIsNoop(t *testing.T) {
	f := newFixture(t, nil, nil)
	p := NewUploadPanel(f.deps)

	assert.ErrorIs(t, p.UploadFile(context.Background()), ErrNoFile)
	assert.Empty(t, f.svc.Requests())
	assert.Equal(t, ui.Idle, p.Upload.State())
}

func TestUploadButtonLifecycle(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	f := newFixture(t, map[string]http.HandlerFunc{
		inference.PathPointcloud: func(w http.ResponseWriter, r *http.Request) {
			close(started)
			<-release
			jsonReply(pointcloudJSON)(w, r)
		},
	}, nil)
	p := NewUploadPanel(f.deps)
	btn := p.Upload.Button

	assert.False(t, btn.Enabled())
	assert.Equal(t, "Upload Image", btn.Label())

	_, err := p.SelectFile(pngFile(t, "chair.png"))
	require.NoError(t, err)
	assert.True(t, btn.Enabled())
	assert.InDelta(t, 1, btn.Opacity(), 1e-6)

	result := make(chan error, 1)
	go func() { result <- p.UploadFile(context.Background()) }()
	<-started

	assert.Equal(t, ui.Busy, p.Upload.State())
	assert.Equal(t, "Uploading ⏳", btn.Label())
	assert.False(t, btn.Enabled())
	assert.InDelta(t, 0.5, btn.Opacity(), 1e-6)
	assert.False(t, btn.Click())
	assert.ErrorIs(t, p.UploadFile(context.Background()), ErrBusy)

	close(release)
	require.NoError(t, <-result)

	assert.Equal(t, ui.Idle, p.Upload.State())
	assert.Equal(t, "Upload Image", btn.Label())
	assert.False(t, btn.Enabled())
	assert.Len(t, f.svc.Requests(), 1)
}

func TestUploadFailureRestoresButtonWithoutAlert(t *testing.T) {
	f := newFixture(t, map[string]http.HandlerFunc{inference.PathPointcloud: statusReply(http.StatusInternalServerError)}, nil)
	p := NewUploadPanel(f.deps)

	_, err := p.SelectFile(pngFile(t, "chair.png"))
	require.NoError(t, err)
	err = p.UploadFile(context.Background())
	se, ok := inference.AsStatus(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)

	assert.Empty(t, f.editor.Objects())
	assert.Empty(t, f.alerter.Messages())
	assert.Equal(t, "Upload Image", p.Upload.Button.Label())
	assert.False(t, p.Upload.Button.Enabled())
	assert.Contains(t, logText(f.log), "Upload failed")
	assert.Contains(t, logText(f.log), `"status": 500`)
	assert.Contains(t, logText(f.log), inference.PathPointcloud)
}

func TestUploadFailureAlertsWhenConfigured(t *testing.T) {
	f := newFixture(t, map[string]http.HandlerFunc{inference.PathPointcloud: statusReply(http.StatusBadGateway)},
		func(p *config.Prefs) { p.Panels.AlertOnFailure = true })
	p := NewUploadPanel(f.deps)

	_, err := p.SelectFile(pngFile(t, "chair.png"))
	require.NoError(t, err)
	assert.Error(t, p.UploadFile(context.Background()))

	msgs := f.alerter.Messages()
	require.Len(t, msgs, 1)
	assert.True(t, strings.HasPrefix(msgs[0], "Upload failed: "))
}

func TestUploadMissingPointcloudIsDropped(t *testing.T) {
	f := newFixture(t, map[string]http.HandlerFunc{inference.PathPointcloud: jsonReply(`{"file_path":"x.ply"}`)}, nil)
	p := NewUploadPanel(f.deps)

	_, err := p.SelectFile(pngFile(t, "chair.png"))
	require.NoError(t, err)
	assert.ErrorIs(t, p.UploadFile(context.Background()), inference.ErrNoPointcloud)
	assert.Empty(t, f.editor.Objects())
}

func TestUploadRejectsRaggedPointcloud(t *testing.T) {
	f := newFixture(t, map[string]http.HandlerFunc{inference.PathPointcloud: jsonReply(`{"pointcloud_data":[[1,2,3],[4,5]]}`)}, nil)
	p := NewUploadPanel(f.deps)

	_, err := p.SelectFile(pngFile(t, "chair.png"))
	require.NoError(t, err)
	assert.ErrorIs(t, p.UploadFile(context.Background()), geometry.ErrBadPointcloud)
	assert.Empty(t, f.editor.Objects())
}

func TestUploadClickRunsInBackground(t *testing.T) {
	f := newFixture(t, map[string]http.HandlerFunc{inference.PathPointcloud: jsonReply(pointcloudJSON)}, nil)
	p := NewUploadPanel(f.deps)
	p.Bind(context.Background())

	_, err := p.SelectFile(pngFile(t, "chair.png"))
	require.NoError(t, err)
	require.True(t, p.Upload.Button.Click())
	require.Eventually(t, func() bool { return len(f.editor.Objects()) == 1 }, 5*time.Second, 10*time.Millisecond)
}

func TestProcessingWithoutSelectionAlertsOnce(t *testing.T) {
	f := newFixture(t, nil, nil)
	p := NewProcessingPanel(f.deps)

	assert.ErrorIs(t, p.UpsampleSelected(context.Background()), ErrNoSelection)
	assert.Equal(t, []string{"No object selected."}, f.alerter.Messages())

	assert.ErrorIs(t, p.GenerateMesh(context.Background()), ErrNoSelection)
	assert.Len(t, f.alerter.Messages(), 2)

	assert.Empty(t, f.svc.Requests())
	assert.Equal(t, ui.Idle, p.Upsample.State())
	assert.Equal(t, ui.Idle, p.Mesh.State())
	assert.Equal(t, "Upsampling", p.Upsample.Button.Label())
}

func TestProcessingWithoutFilePathAlertsOnce(t *testing.T) {
	f := newFixture(t, nil, nil)
	p := NewProcessingPanel(f.deps)
	selectPointcloud(t, f.editor, "")

	assert.ErrorIs(t, p.GenerateMesh(context.Background()), ErrNoFilePath)
	assert.Equal(t, []string{"Selected object has no file path."}, f.alerter.Messages())
	assert.Empty(t, f.svc.Requests())
	assert.True(t, p.Mesh.Button.Enabled())
}

func TestValidationAbortCanLeaveButtonBusy(t *testing.T) {
	f := newFixture(t, nil, func(p *config.Prefs) { p.Panels.ResetOnValidationAbort = false })
	p := NewProcessingPanel(f.deps)

	assert.ErrorIs(t, p.UpsampleSelected(context.Background()), ErrNoSelection)
	assert.Equal(t, ui.Busy, p.Upsample.State())
	assert.Equal(t, "Upsampling ⏳", p.Upsample.Button.Label())
	assert.ErrorIs(t, p.UpsampleSelected(context.Background()), ErrBusy)
	assert.Len(t, f.alerter.Messages(), 1)
}

func TestUpsampleAddsStyledPointcloud(t *testing.T) {
	var got map[string]interface{}
	f := newFixture(t, map[string]http.HandlerFunc{
		inference.PathUpsampling: func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&got)
			jsonReply(`{"pointcloud_data":[[1,1,1],[2,2,2]],"file_path":"up.ply","download_url":"https://storage/up.ply"}`)(w, r)
		},
	}, nil)
	p := NewProcessingPanel(f.deps)
	selectPointcloud(t, f.editor, "prediction_history/ply/a.ply")

	require.NoError(t, p.UpsampleSelected(context.Background()))
	assert.Equal(t, map[string]interface{}{
		"file_path":   "prediction_history/ply/a.ply",
		"file_format": "ply",
		"n_points":    float64(8192),
	}, got)

	objs := f.editor.Objects()
	require.Len(t, objs, 2)
	up := objs[1]
	assert.Equal(t, geometry.PointcloudName, up.Name)
	assert.Equal(t, []float32{1, 1, 1, 2, 2, 2}, up.Geometry.Attribute(geometry.AttrPosition).Array)
	assert.Equal(t, geometry.Color(0x0000ff), up.Material.Color)
	assert.InDelta(t, 0.03, up.Material.Size, 1e-6)
	assert.Equal(t, "up.ply", up.UserData.FilePath)
	assert.Equal(t, ui.Idle, p.Upsample.State())
}

func TestUpsampleServerErrorAddsNothing(t *testing.T) {
	f := newFixture(t, map[string]http.HandlerFunc{inference.PathUpsampling: statusReply(http.StatusInternalServerError)}, nil)
	p := NewProcessingPanel(f.deps)
	selectPointcloud(t, f.editor, "a.ply")

	assert.Error(t, p.UpsampleSelected(context.Background()))
	assert.Len(t, f.editor.Objects(), 1)
	assert.Empty(t, f.alerter.Messages())
	assert.Equal(t, ui.Idle, p.Upsample.State())
}

func TestGenerateMeshServerErrorAddsNothing(t *testing.T) {
	f := newFixture(t, map[string]http.HandlerFunc{inference.PathMesh: statusReply(http.StatusInternalServerError)}, nil)
	p := NewProcessingPanel(f.deps)
	selectPointcloud(t, f.editor, "a.ply")

	err := p.GenerateMesh(context.Background())
	var se *inference.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)

	assert.Len(t, f.editor.Objects(), 1)
	assert.Zero(t, f.blobs.Len())
	assert.Equal(t, "Generate Mesh", p.Mesh.Button.Label())
	assert.True(t, p.Mesh.Button.Enabled())
	assert.Contains(t, logText(f.log), "Mesh generation failed")
}

func TestGenerateMeshAddsShadedMesh(t *testing.T) {
	body := meshPLY(t)
	f := newFixture(t, map[string]http.HandlerFunc{
		inference.PathMesh: func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/octet-stream")
			_, _ = w.Write(body)
		},
	}, nil)
	p := NewProcessingPanel(f.deps)
	selectPointcloud(t, f.editor, "a.ply")

	require.NoError(t, p.GenerateMesh(context.Background()))

	objs := f.editor.Objects()
	require.Len(t, objs, 2)
	mesh := objs[1]
	assert.Equal(t, geometry.MeshName, mesh.Name)
	assert.Equal(t, geometry.KindMesh, mesh.Kind)
	assert.Equal(t, geometry.StandardMaterial, mesh.Material.Type)
	assert.Equal(t, geometry.Color(0xb13e3e), mesh.Material.Color)
	assert.Equal(t, 2, mesh.Geometry.TriangleCount())

	normals := mesh.Geometry.Attribute(geometry.AttrNormal)
	require.NotNil(t, normals)
	require.Equal(t, 4, normals.Count())
	assert.InDelta(t, 1, normals.Array[2], 1e-5)

	require.True(t, blob.IsBlobURL(mesh.UserData.DownloadURL))
	b, err := f.blobs.Get(mesh.UserData.DownloadURL)
	require.NoError(t, err)
	assert.Equal(t, body, b.Data)
}

func TestGenerateMeshUndecodableBodyAddsNothing(t *testing.T) {
	f := newFixture(t, map[string]http.HandlerFunc{
		inference.PathMesh: func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "not a ply file")
		},
	}, nil)
	p := NewProcessingPanel(f.deps)
	selectPointcloud(t, f.editor, "a.ply")

	assert.ErrorIs(t, p.GenerateMesh(context.Background()), ply.ErrFormat)
	assert.Len(t, f.editor.Objects(), 1)
	assert.Zero(t, f.blobs.Len())
}

func TestSmoothingOnlyChangesAlgorithmField(t *testing.T) {
	var mu sync.Mutex
	var bodies []map[string]interface{}
	body := meshPLY(t)
	f := newFixture(t, map[string]http.HandlerFunc{
		inference.PathMesh: func(w http.ResponseWriter, r *http.Request) {
			var m map[string]interface{}
			_ = json.NewDecoder(r.Body).Decode(&m)
			mu.Lock()
			bodies = append(bodies, m)
			mu.Unlock()
			_, _ = w.Write(body)
		},
	}, nil)
	p := NewProcessingPanel(f.deps)
	selectPointcloud(t, f.editor, "a.ply")
	assert.Equal(t, inference.Laplacian, p.SmoothingAlgorithm())

	require.NoError(t, p.GenerateMesh(context.Background()))
	require.NoError(t, f.editor.SelectByID(f.editor.Objects()[0].ID))
	require.NoError(t, p.SetSmoothing("Taubin"))
	require.NoError(t, p.GenerateMesh(context.Background()))

	require.Len(t, bodies, 2)
	assert.Equal(t, "laplacian", bodies[0]["smoothing_algorithm"])
	assert.Equal(t, "taubin", bodies[1]["smoothing_algorithm"])
	delete(bodies[0], "smoothing_algorithm")
	delete(bodies[1], "smoothing_algorithm")
	assert.Equal(t, bodies[0], bodies[1])
	assert.Equal(t, map[string]interface{}{"file_path": "a.ply"}, bodies[0])

	assert.Error(t, p.SetSmoothing("gaussian"))
	assert.Equal(t, inference.Taubin, p.SmoothingAlgorithm())
}

func TestDefaultSmoothingFromPrefs(t *testing.T) {
	f := newFixture(t, nil, func(p *config.Prefs) { p.Panels.DefaultSmoothing = "taubin" })
	p := NewProcessingPanel(f.deps)
	assert.Equal(t, inference.Taubin, p.SmoothingAlgorithm())
	assert.Equal(t, "Taubin", p.Smoothing.Node.Text())
}

func TestSidebarInspectorFollowsSelection(t *testing.T) {
	f := newFixture(t, nil, nil)
	sb := NewSidebar(f.deps)
	assert.Nil(t, sb.Inspector.Lines())
	assert.NotNil(t, sb.Root.Find("upload"))
	assert.NotNil(t, sb.Root.Find("mesh"))

	obj := selectPointcloud(t, f.editor, "a.ply")
	lines := sb.Inspector.Lines()
	require.NotEmpty(t, lines)
	assert.Contains(t, lines, "Name: "+obj.Name)
	assert.Contains(t, lines, "Points: 1")
	assert.Contains(t, lines, "File: a.ply")

	f.editor.Select(nil)
	assert.Nil(t, sb.Inspector.Lines())
}

func TestSelectingDuringUploadKeepsButtonBusy(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	f := newFixture(t, map[string]http.HandlerFunc{
		inference.PathPointcloud: func(w http.ResponseWriter, r *http.Request) {
			close(started)
			<-release
			jsonReply(pointcloudJSON)(w, r)
		},
	}, nil)
	p := NewUploadPanel(f.deps)
	btn := p.Upload.Button

	_, err := p.SelectFile(pngFile(t, "chair.png"))
	require.NoError(t, err)
	result := make(chan error, 1)
	go func() { result <- p.UploadFile(context.Background()) }()
	<-started

	_, err = p.SelectFile(pngFile(t, "table.png"))
	require.NoError(t, err)
	assert.False(t, btn.Enabled())
	assert.Equal(t, "Uploading ⏳", btn.Label())

	close(release)
	require.NoError(t, <-result)

	// the newer file survives the upload and is ready to go
	assert.True(t, btn.Enabled())
	assert.Equal(t, "Upload Image", btn.Label())
	next, ok := p.Selected()
	require.True(t, ok)
	assert.Equal(t, "table.png", next.Name)
}

func TestFinishedUploadCannotResubmitSameFile(t *testing.T) {
	f := newFixture(t, map[string]http.HandlerFunc{inference.PathPointcloud: jsonReply(pointcloudJSON)}, nil)
	p := NewUploadPanel(f.deps)

	_, err := p.SelectFile(pngFile(t, "chair.png"))
	require.NoError(t, err)
	require.NoError(t, p.UploadFile(context.Background()))

	assert.False(t, p.Upload.Button.Enabled())
	assert.ErrorIs(t, p.UploadFile(context.Background()), ErrNoFile)
	assert.Len(t, f.svc.Requests(), 1)
}

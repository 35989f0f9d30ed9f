package panels

import (
	"context"
	"mime"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"reconstruct-editor/internal/editor"
	"reconstruct-editor/internal/inference"
	"reconstruct-editor/internal/locale"
	"reconstruct-editor/internal/preview"
	"reconstruct-editor/internal/ui"
)

// File is a local file chosen through the file picker.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// contentType returns the declared type, or one guessed from the extension.
func (f File) contentType() string {
	if f.ContentType != "" {
		return f.ContentType
	}
	return mime.TypeByExtension(strings.ToLower(filepath.Ext(f.Name)))
}

// UploadPanel picks an image, previews it and uploads it for point cloud inference.
type UploadPanel struct {
	deps Deps

	Root     *ui.Node
	Open     *ui.Button
	Upload   *ui.BusyButton
	FileName *ui.TextInput
	Preview  *ui.Image

	mu   sync.Mutex
	file *File
	seq  uint64
}

func NewUploadPanel(d Deps) *UploadPanel {
	d = d.withDefaults()
	tk, s := d.Toolkit, d.Editor.Strings
	p := &UploadPanel{
		deps:     d,
		Root:     tk.Panel("panel upload"),
		Open:     tk.Button("open", s.Get(locale.OpenImage)),
		FileName: tk.Input("filename", s.Get(locale.NoFileSelected)),
		Preview:  tk.Image("preview"),
	}
	p.FileName.ReadOnly = true
	p.Upload = ui.NewBusyButton(tk.Button("upload", ""), s.Get(locale.UploadImage), s.Get(locale.Uploading))
	p.Upload.Button.SetEnabled(false)
	p.Upload.ReadyOnEnd = p.hasFile
	p.Root.Add(
		tk.Row().Add(p.Open.Node, p.FileName.Node),
		p.Preview.Node,
		tk.Row().Add(p.Upload.Button.Node),
	)
	return p
}

// Bind wires the buttons: Open shows the file picker, Upload runs in its own goroutine under ctx.
func (p *UploadPanel) Bind(ctx context.Context) {
	p.Open.OnClick(p.OpenFilePicker)
	p.Upload.Button.OnClick(func() {
		go func() { _ = p.UploadFile(ctx) }()
	})
}

// OpenFilePicker asks the host to show its file dialog for images.
func (p *UploadPanel) OpenFilePicker() {
	if p.deps.Picker == nil {
		p.deps.Log.Warn("no file picker available")
		return
	}
	p.deps.Picker.Open("image/*")
}

// SelectFile makes f the file to upload, replacing any earlier selection, and enables Upload.
// The thumbnail is decoded in the background; the returned channel closes once it is shown
// (or has failed). Non-image files are ignored.
func (p *UploadPanel) SelectFile(f File) (<-chan struct{}, error) {
	done := make(chan struct{})
	ct := f.contentType()
	if !strings.HasPrefix(ct, "image/") {
		p.deps.Log.Warn("ignoring non-image file", zap.String("name", f.Name), zap.String("type", ct))
		close(done)
		return done, ErrNotImage
	}
	f.ContentType = ct

	p.mu.Lock()
	p.file = &f
	p.seq++
	seq := p.seq
	p.mu.Unlock()

	p.FileName.SetValue(f.Name)
	p.Upload.EnableIfIdle()
	p.deps.Log.Info("image selected", zap.String("name", f.Name), zap.Int("bytes", len(f.Data)))

	go func() {
		defer close(done)
		img, err := preview.Thumbnail(f.Data, p.deps.Editor.Prefs.Panels.PreviewMax)
		if err != nil {
			p.deps.Log.Warn("preview failed", zap.String("name", f.Name), zap.Error(err))
			return
		}
		p.mu.Lock()
		current := seq == p.seq
		p.mu.Unlock()
		if current {
			p.Preview.SetImage(img, preview.DataURL(f.Data, ct))
		}
	}()
	return done, nil
}

func (p *UploadPanel) hasFile() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.file != nil
}

// Selected returns the file that the next upload would submit.
func (p *UploadPanel) Selected() (File, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.file == nil {
		return File{}, false
	}
	return *p.file, true
}

// UploadFile submits the selected image and adds the returned point cloud to the scene.
// Whatever the outcome, the button returns to its idle label and stays disabled until another
// file is selected.
func (p *UploadPanel) UploadFile(ctx context.Context) error {
	p.mu.Lock()
	f := p.file
	p.mu.Unlock()
	if f == nil {
		return ErrNoFile
	}
	end, ok := p.Upload.Begin()
	if !ok {
		p.deps.Log.Warn("upload already in progress")
		return ErrBusy
	}
	defer func() {
		// clear the slot before end releases the token
		p.mu.Lock()
		if p.file == f {
			p.file = nil
		}
		p.mu.Unlock()
		end()
	}()

	prefs := p.deps.Editor.Prefs
	resp, err := p.deps.Client.PredictPointcloud(ctx, inference.Image{
		Name:        f.Name,
		ContentType: f.ContentType,
		Data:        f.Data,
	}, prefs.Service.FileFormat)
	if err != nil {
		return fail(p.deps, "Upload", err, zap.String("name", f.Name))
	}
	obj, err := p.deps.Factory.NewPointcloud(resp.PointcloudData, pointStyle(prefs.Points.Upload), resp.FilePath, resp.DownloadURL)
	if err != nil {
		return fail(p.deps, "Upload", err, zap.String("name", f.Name))
	}
	p.deps.Editor.Execute(editor.NewAddObjectCommand(obj))
	p.deps.Log.Info("pointcloud added",
		zap.String("id", obj.ID),
		zap.Int("points", obj.Geometry.VertexCount()),
		zap.String("file_path", resp.FilePath))
	return nil
}

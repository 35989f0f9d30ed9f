package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"reconstruct-editor/internal/archive"
	"reconstruct-editor/internal/config"
	"reconstruct-editor/internal/download"
	"reconstruct-editor/internal/editor"
	"reconstruct-editor/internal/geometry"
	"reconstruct-editor/internal/logger"
	"reconstruct-editor/internal/panels"
)

// Env is what the editor commands act on.
type Env struct {
	Ctx        context.Context
	Editor     *editor.Editor
	Sidebar    *panels.Sidebar
	Downloader *download.Downloader
	Log        *logger.Logger

	// ReadFile loads files for "open"; os.ReadFile when nil.
	ReadFile func(path string) ([]byte, error)
	// Go runs network actions off the frame loop; a plain goroutine when nil.
	Go func(fn func())
	// ConfigPath, when set, is where "view" persists the preferences.
	ConfigPath string
	// OnView is called after "view" changes the viewport preferences.
	OnView func(config.ViewPrefs)
}

func (env *Env) defaults() {
	if env.Ctx == nil {
		env.Ctx = context.Background()
	}
	if env.ReadFile == nil {
		env.ReadFile = os.ReadFile
	}
	if env.Go == nil {
		env.Go = func(fn func()) { go fn() }
	}
	if env.Log == nil {
		env.Log = logger.NewNop()
	}
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// Bind registers the editor's terminal commands on r.
func Bind(r *Registry, env Env) {
	env.defaults()
	ed, sb, log := env.Editor, env.Sidebar, env.Log

	r.Register("help", "help", nil, func([]string) error {
		for _, n := range r.Names() {
			log.Log("cmd " + r.Usage(n))
		}
		return nil
	})

	r.Register("open", "open <image path>", nil, func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("usage: cmd open <image path>")
		}
		data, err := env.ReadFile(args[0])
		if err != nil {
			return err
		}
		_, err = sb.Upload.SelectFile(panels.File{Name: filepath.Base(args[0]), Data: data})
		return err
	})

	r.Register("upload", "upload", nil, func([]string) error {
		if _, ok := sb.Upload.Selected(); !ok {
			return panels.ErrNoFile
		}
		env.Go(func() { _ = sb.Upload.UploadFile(env.Ctx) })
		return nil
	})

	r.Register("upsample", "upsample", nil, func([]string) error {
		env.Go(func() { _ = sb.Processing.UpsampleSelected(env.Ctx) })
		return nil
	})

	meshFlags := newFlagSet("mesh")
	smoothing := meshFlags.String("smoothing", "", "laplacian or taubin")
	r.Register("mesh", "mesh [-smoothing laplacian|taubin]", meshFlags, func([]string) error {
		alg := *smoothing
		*smoothing = ""
		if alg != "" {
			if err := sb.Processing.SetSmoothing(alg); err != nil {
				return err
			}
		}
		env.Go(func() { _ = sb.Processing.GenerateMesh(env.Ctx) })
		return nil
	})

	r.Register("smoothing", "smoothing <laplacian|taubin>", nil, func(args []string) error {
		if len(args) != 1 {
			log.Log("smoothing: " + sb.Processing.SmoothingAlgorithm())
			return nil
		}
		return sb.Processing.SetSmoothing(args[0])
	})

	r.Register("select", "select <id|none>", nil, func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("usage: cmd select <id|none>")
		}
		if args[0] == "none" {
			ed.Select(nil)
			return nil
		}
		return ed.SelectByID(args[0])
	})

	r.Register("list", "list", nil, func([]string) error {
		sel := ed.Selected()
		for _, o := range ed.Objects() {
			mark := " "
			if o == sel {
				mark = "*"
			}
			log.Log(fmt.Sprintf("%s %s %s (%s, %d vertices)", mark, shortID(o.ID), o.Name, o.Kind, o.Geometry.VertexCount()))
		}
		return nil
	})

	r.Register("remove", "remove [id]", nil, func(args []string) error {
		obj, err := target(ed, args)
		if err != nil {
			return err
		}
		ed.Execute(editor.NewRemoveObjectCommand(obj))
		return nil
	})

	r.Register("duplicate", "duplicate [id]", nil, func(args []string) error {
		obj, err := target(ed, args)
		if err != nil {
			return err
		}
		ed.Execute(editor.NewAddObjectCommand(obj.Duplicate()))
		return nil
	})

	r.Register("history", "history", nil, func([]string) error {
		undos, redos := ed.History()
		for _, n := range undos {
			log.Log("  " + n)
		}
		for i := len(redos) - 1; i >= 0; i-- {
			log.Log("~ " + redos[i])
		}
		return nil
	})

	r.Register("undo", "undo", nil, func([]string) error {
		if !ed.Undo() {
			return errors.New("nothing to undo")
		}
		return nil
	})

	r.Register("redo", "redo", nil, func([]string) error {
		if !ed.Redo() {
			return errors.New("nothing to redo")
		}
		return nil
	})

	dlFlags := newFlagSet("download")
	dir := dlFlags.String("dir", "", "destination directory")
	r.Register("download", "download [-dir path] [id]", dlFlags, func(args []string) error {
		dest := *dir
		*dir = ""
		if dest == "" {
			dest = ed.Prefs.Download.Dir
		}
		obj, err := target(ed, args)
		if err != nil {
			return err
		}
		if env.Downloader == nil {
			return errors.New("downloads are not available")
		}
		path, err := env.Downloader.Save(env.Ctx, obj.UserData.DownloadURL, dest, artifactName(obj))
		if err != nil {
			return err
		}
		log.Info("downloaded", zap.String("id", obj.ID), zap.String("path", path))
		return nil
	})

	r.Register("export", "export <file.zip>", nil, func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("usage: cmd export <file.zip>")
		}
		objects := ed.Objects()
		if len(objects) == 0 {
			return errors.New("scene is empty")
		}
		entries := make([]archive.Entry, 0, len(objects))
		for _, o := range objects {
			entries = append(entries, archive.Entry{Name: artifactName(o), Geometry: o.Geometry})
		}
		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		if err := archive.Write(f, entries); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		log.Info("scene exported", zap.String("path", args[0]), zap.Int("objects", len(entries)))
		return nil
	})

	r.Register("import", "import <file.zip>", nil, func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("usage: cmd import <file.zip>")
		}
		entries, err := archive.Read(args[0])
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return fmt.Errorf("%s holds no .ply files", args[0])
		}
		style := geometry.PointStyle{
			Size:            ed.Prefs.Points.Upload.Size,
			Color:           geometry.Color(ed.Prefs.Points.Upload.Color),
			SizeAttenuation: ed.Prefs.Points.Upload.SizeAttenuation,
		}
		factory := geometry.NewFactory()
		for _, e := range entries {
			ed.Execute(editor.NewAddObjectCommand(factory.NewImported(e.Name, e.Geometry, style, geometry.Color(ed.Prefs.Mesh.Color))))
		}
		log.Info("scene imported", zap.String("path", args[0]), zap.Int("objects", len(entries)))
		return nil
	})

	r.Register("view", "view <fps|mem|grid> <on|off>", nil, func(args []string) error {
		if len(args) != 2 || (args[1] != "on" && args[1] != "off") {
			return fmt.Errorf("usage: cmd view <fps|mem|grid> <on|off>")
		}
		on := args[1] == "on"
		v := &ed.Prefs.View
		switch args[0] {
		case "fps":
			v.ShowFPS = on
		case "mem":
			v.ShowMemAlloc = on
		case "grid":
			v.GridVisible = on
		default:
			return fmt.Errorf("unknown view option %q", args[0])
		}
		if env.OnView != nil {
			env.OnView(*v)
		}
		if env.ConfigPath != "" {
			return config.Save(env.ConfigPath, ed.Prefs)
		}
		return nil
	})
}

// target is the object named by args[0], or the selection when args is empty.
func target(ed *editor.Editor, args []string) (*geometry.Object, error) {
	if len(args) == 0 {
		if obj := ed.Selected(); obj != nil {
			return obj, nil
		}
		return nil, panels.ErrNoSelection
	}
	if obj := ed.ObjectByID(args[0]); obj != nil {
		return obj, nil
	}
	return nil, fmt.Errorf("no object %q", args[0])
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// artifactName is e.g. "generated_mesh_1a2b3c4d".
func artifactName(o *geometry.Object) string {
	return strings.ReplaceAll(strings.ToLower(o.Name), " ", "_") + "_" + shortID(o.ID)
}

// Package panels implements the generation sidebar: the Upload Panel turns an image into a
// point cloud, the Processing Panel upsamples or meshes the selected point cloud.
package panels

import (
	"errors"

	"go.uber.org/zap"

	"reconstruct-editor/internal/blob"
	"reconstruct-editor/internal/config"
	"reconstruct-editor/internal/editor"
	"reconstruct-editor/internal/geometry"
	"reconstruct-editor/internal/inference"
	"reconstruct-editor/internal/locale"
	"reconstruct-editor/internal/logger"
	"reconstruct-editor/internal/ui"
)

var (
	// ErrNoFile is returned by Upload when no file has been selected.
	ErrNoFile = errors.New("panels: no file selected")
	// ErrNotImage is returned by SelectFile for files that are not images.
	ErrNotImage = errors.New("panels: not an image file")
	// ErrBusy is returned when the action is already in flight.
	ErrBusy = errors.New("panels: action already in progress")
	// ErrNoSelection is returned when no object is selected.
	ErrNoSelection = errors.New("panels: no object selected")
	// ErrNoFilePath is returned when the selected object has no server file path.
	ErrNoFilePath = errors.New("panels: selected object has no file path")
)

// Deps are the collaborators shared by the panels. Editor, Client and Toolkit are required;
// the rest fall back to no-op or fresh defaults.
type Deps struct {
	Editor  *editor.Editor
	Client  *inference.Client
	Factory *geometry.Factory
	Toolkit *ui.Toolkit
	Alerter ui.Alerter
	Picker  ui.FilePicker
	Blobs   *blob.Store
	Log     *logger.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Factory == nil {
		d.Factory = geometry.NewFactory()
	}
	if d.Toolkit == nil {
		d.Toolkit = ui.NewToolkit(nil)
	}
	if d.Alerter == nil {
		d.Alerter = nopAlerter{}
	}
	if d.Blobs == nil {
		d.Blobs = blob.NewStore()
	}
	if d.Log == nil {
		d.Log = logger.NewNop()
	}
	return d
}

type nopAlerter struct{}

func (nopAlerter) Alert(string) {}

func pointStyle(s config.PointStyle) geometry.PointStyle {
	return geometry.PointStyle{Size: s.Size, Color: geometry.Color(s.Color), SizeAttenuation: s.SizeAttenuation}
}

// fail logs a terminal action failure and alerts when the preferences ask for it.
func fail(d Deps, action string, err error, fields ...zap.Field) error {
	if se, ok := inference.AsStatus(err); ok {
		fields = append(fields, zap.Int("status", se.StatusCode), zap.String("endpoint", se.Endpoint))
	}
	d.Log.Error(action+" failed", append(fields, zap.Error(err))...)
	if d.Editor.Prefs.Panels.AlertOnFailure {
		d.Alerter.Alert(d.Editor.Strings.Format(locale.AlertRequestFailed, action, err))
	}
	return err
}

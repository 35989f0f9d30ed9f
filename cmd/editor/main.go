package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"reconstruct-editor/internal/blob"
	"reconstruct-editor/internal/commands"
	"reconstruct-editor/internal/config"
	"reconstruct-editor/internal/debug"
	"reconstruct-editor/internal/download"
	"reconstruct-editor/internal/editor"
	"reconstruct-editor/internal/graphics"
	"reconstruct-editor/internal/inference"
	"reconstruct-editor/internal/locale"
	"reconstruct-editor/internal/logger"
	"reconstruct-editor/internal/panels"
	"reconstruct-editor/internal/render"
	"reconstruct-editor/internal/terminal"
	"reconstruct-editor/internal/ui"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "editor config file (YAML)")
	stylePath := flag.String("style", "", "optional CSS file overriding the sidebar style")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, "env:", err)
	}
	prefs, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := config.ApplyEnv(&prefs); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if _, err := os.Stat(*configPath); errors.Is(err, os.ErrNotExist) {
		_ = config.Save(*configPath, prefs)
	}

	log := logger.New(prefs.Log.Path)
	defer log.Close()
	defer zap.RedirectStdLog(log.Zap())()
	log.Info("editor starting", zap.String("service", prefs.Service.BaseURL), zap.String("locale", prefs.Panels.Locale))

	sheet := ui.DefaultStylesheet()
	if *stylePath != "" {
		if extra, err := loadStyle(*stylePath); err != nil {
			log.Warn("stylesheet ignored", zap.String("path", *stylePath), zap.Error(err))
		} else {
			sheet.Rules = append(sheet.Rules, extra.Rules...)
		}
	}
	tk := ui.NewToolkit(sheet)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ed := editor.New(prefs, locale.New(prefs.Panels.Locale))
	client := inference.NewClient(prefs.Service.BaseURL, prefs.Service.Timeout)
	blobs := blob.NewStore()
	banner := render.NewBanner(log)
	picker := &render.DropPicker{Banner: banner}

	sb := panels.NewSidebar(panels.Deps{
		Editor:  ed,
		Client:  client,
		Toolkit: tk,
		Alerter: banner,
		Picker:  picker,
		Blobs:   blobs,
		Log:     log,
	})
	sb.Bind(ctx)
	picker.OnFile = func(path string) {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Error("read dropped file", zap.String("path", path), zap.Error(err))
			return
		}
		_, _ = sb.Upload.SelectFile(panels.File{Name: filepath.Base(path), Data: data})
	}

	viewer := render.NewViewer()
	viewer.GridVisible = prefs.View.GridVisible
	dbg := debug.New(prefs.View)

	reg := commands.NewRegistry()
	commands.Bind(reg, commands.Env{
		Ctx:        ctx,
		Editor:     ed,
		Sidebar:    sb,
		Downloader: download.New(nil, client, blobs, log),
		Log:        log,
		ConfigPath: *configPath,
		OnView: func(v config.ViewPrefs) {
			dbg.View = v
			viewer.GridVisible = v.GridVisible
		},
	})
	term := terminal.New(log, reg)

	overlay := render.NewOverlay(tk, sb.Root, banner)
	overlay.AddButtons(sb.Upload.Open, sb.Upload.Upload.Button, sb.Processing.Upsample.Button, sb.Processing.Mesh.Button)
	overlay.AddSelects(sb.Processing.Smoothing)
	overlay.AddImages(sb.Upload.Preview)

	update := func() {
		term.Update()
		picker.Poll()
		if !term.IsOpen() {
			overlay.Update()
		}
		viewer.Update(term.IsOpen())
		viewer.Focus(ed.Selected())
	}
	draw := func() {
		objects := ed.Objects()
		viewer.Draw(objects, ed.Selected())
		overlay.Draw()
		term.Draw()
		dbg.Draw(objects)
	}
	graphics.Run(graphics.Window{
		Title:   "Reconstruct Editor",
		Width:   1280,
		Height:  800,
		OnClose: overlay.Unload,
	}, update, draw)
}

func loadStyle(path string) (*ui.Stylesheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ui.ParseCSS(string(data))
}

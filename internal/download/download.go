// Package download saves generated artifacts (point clouds and meshes) to local disk.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"reconstruct-editor/internal/blob"
	"reconstruct-editor/internal/inference"
	"reconstruct-editor/internal/logger"
)

const defaultExt = ".ply"

// ErrNoURL is returned for objects that carry no download reference.
var ErrNoURL = errors.New("download: no download url")

// Downloader resolves an object's download reference: blob: URLs come from the in-memory store,
// http(s) URLs are fetched directly and, if that fails, through the service's proxy endpoint.
type Downloader struct {
	HTTP  *http.Client
	Proxy *inference.Client
	Blobs *blob.Store
	Log   *logger.Logger
}

func New(hc *http.Client, proxy *inference.Client, blobs *blob.Store, log *logger.Logger) *Downloader {
	if hc == nil {
		hc = http.DefaultClient
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Downloader{HTTP: hc, Proxy: proxy, Blobs: blobs, Log: log}
}

// Save fetches url and writes it under destDir as name (or a name derived from the URL).
// Returns the path of the saved file. destDir is created if needed.
func (d *Downloader) Save(ctx context.Context, url, destDir, name string) (savedPath string, err error) {
	if url == "" {
		return "", ErrNoURL
	}
	var data []byte
	var ct, cd string
	if blob.IsBlobURL(url) {
		if d.Blobs == nil {
			return "", fmt.Errorf("download: no blob store for %s", url)
		}
		b, err := d.Blobs.Get(url)
		if err != nil {
			return "", fmt.Errorf("download: %w", err)
		}
		data, ct = b.Data, b.ContentType
	} else {
		data, ct, cd, err = d.fetch(ctx, url)
		if err != nil && d.Proxy != nil {
			d.Log.Warn("direct download failed, retrying through proxy", zap.String("url", url), zap.Error(err))
			data, err = d.Proxy.ProxyDownload(ctx, url)
			ct, cd = "", ""
		}
		if err != nil {
			return "", fmt.Errorf("download: %w", err)
		}
	}

	ext := extensionFromContentType(ct)
	if ext == "" {
		ext = extensionFromURL(url)
	}
	if ext == "" {
		ext = defaultExt
	}
	if name == "" {
		name = filenameFromContentDisposition(cd)
	}
	if name == "" && !blob.IsBlobURL(url) {
		name = filenameFromURL(url)
	}
	if name == "" {
		name = "download"
	}
	name = sanitizeFilename(name)
	if !strings.HasSuffix(strings.ToLower(name), ext) {
		name = name + ext
	}
	savedPath = filepath.Join(destDir, name)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	if err := os.WriteFile(savedPath, data, 0644); err != nil {
		_ = os.Remove(savedPath)
		return "", fmt.Errorf("download: %w", err)
	}
	d.Log.Info("artifact saved", zap.String("url", url), zap.String("path", savedPath), zap.Int("bytes", len(data)))
	return savedPath, nil
}

func (d *Downloader) fetch(ctx context.Context, url string) (data []byte, contentType, disposition string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", "", err
	}
	resp, err := d.HTTP.Do(req)
	if err != nil {
		return nil, "", "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	data, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", "", err
	}
	return data, resp.Header.Get("Content-Type"), resp.Header.Get("Content-Disposition"), nil
}

func filenameFromContentDisposition(cd string) string {
	if cd == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(cd)
	if err != nil {
		return ""
	}
	return strings.TrimSuffix(params["filename"], filepath.Ext(params["filename"]))
}

func extensionFromContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if idx := strings.Index(ct, ";"); idx >= 0 {
		ct = ct[:idx]
	}
	switch {
	case strings.Contains(ct, "ply"):
		return ".ply"
	case strings.Contains(ct, "xyz"):
		return ".xyz"
	case strings.Contains(ct, "obj"):
		return ".obj"
	case strings.Contains(ct, "png"):
		return ".png"
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "jpg"):
		return ".jpg"
	}
	return ""
}

func extensionFromURL(url string) string {
	path := url
	if idx := strings.IndexAny(path, "?#"); idx >= 0 {
		path = path[:idx]
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ply", ".xyz", ".obj", ".png", ".jpg", ".jpeg":
		return ext
	}
	return ""
}

func filenameFromURL(url string) string {
	path := url
	if idx := strings.IndexAny(path, "?#"); idx >= 0 {
		path = path[:idx]
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

var safeNameRe = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

func sanitizeFilename(name string) string {
	if name == "" {
		return "download"
	}
	name = safeNameRe.ReplaceAllString(name, "_")
	if len(name) > 96 {
		name = name[:96]
	}
	return name
}

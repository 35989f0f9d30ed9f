// Package archive bundles scene objects into a zip of PLY files and reads such bundles back.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"reconstruct-editor/internal/geometry"
	"reconstruct-editor/internal/ply"
)

// Entry is one geometry in a bundle. Name has no directory and no extension.
type Entry struct {
	Name     string
	Geometry *geometry.BufferGeometry
}

// Write stores every entry as <name>.ply (binary little endian) in a zip written to w.
// Duplicate names get a numeric suffix.
func Write(w io.Writer, entries []Entry) error {
	zw := zip.NewWriter(w)
	seen := make(map[string]int)
	for _, e := range entries {
		name := e.Name
		if name == "" {
			name = "object"
		}
		if n := seen[name]; n > 0 {
			seen[name]++
			name = fmt.Sprintf("%s_%d", name, n)
		} else {
			seen[name] = 1
		}
		fw, err := zw.Create(name + ".ply")
		if err != nil {
			return fmt.Errorf("zip: %w", err)
		}
		if err := ply.Encode(fw, e.Geometry, ply.BinaryLittleEndian); err != nil {
			return fmt.Errorf("zip: %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("zip: %w", err)
	}
	return nil
}

// Read decodes every .ply file in the zip at zipPath, in name order. Directories and other
// files are skipped; so are names that try to escape the archive root.
func Read(zipPath string) ([]Entry, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	defer r.Close()

	files := make([]*zip.File, 0, len(r.File))
	for _, f := range r.File {
		clean := path.Clean(f.Name)
		if f.FileInfo().IsDir() || strings.HasPrefix(clean, "../") || path.IsAbs(clean) {
			continue
		}
		if strings.ToLower(path.Ext(clean)) != ".ply" {
			continue
		}
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	var entries []Entry
	for _, f := range files {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("unzip: %w", err)
		}
		g, err := ply.Decode(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("unzip: %s: %w", f.Name, err)
		}
		base := path.Base(f.Name)
		entries = append(entries, Entry{Name: strings.TrimSuffix(base, path.Ext(base)), Geometry: g})
	}
	return entries, nil
}

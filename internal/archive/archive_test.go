package archive

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reconstruct-editor/internal/geometry"
)

func points(xyz ...float32) *geometry.BufferGeometry {
	g := geometry.NewBufferGeometry()
	g.SetAttribute(geometry.AttrPosition, geometry.NewAttribute(xyz, 3))
	return g
}

func writeFile(t *testing.T, entries []Entry) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, entries))
	path := filepath.Join(t.TempDir(), "scene.zip")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestWriteReadKeepsGeometry(t *testing.T) {
	mesh := points(0, 0, 0, 1, 0, 0, 0, 1, 0)
	mesh.SetIndex([]uint32{0, 1, 2})
	path := writeFile(t, []Entry{
		{Name: "scan", Geometry: points(1, 2, 3, 4, 5, 6)},
		{Name: "mesh", Geometry: mesh},
	})

	got, err := Read(path)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// name order
	assert.Equal(t, "mesh", got[0].Name)
	assert.Equal(t, []uint32{0, 1, 2}, got[0].Geometry.Index)
	assert.Equal(t, "scan", got[1].Name)
	assert.Nil(t, got[1].Geometry.Index)
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, got[1].Geometry.Attribute(geometry.AttrPosition).Array)
}

func TestWriteRenamesDuplicates(t *testing.T) {
	path := writeFile(t, []Entry{
		{Name: "scan", Geometry: points(1, 1, 1)},
		{Name: "scan", Geometry: points(2, 2, 2)},
		{Geometry: points(3, 3, 3)},
	})
	got, err := Read(path)
	require.NoError(t, err)

	var names []string
	for _, e := range got {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"object", "scan", "scan_1"}, names)
}

func TestReadSkipsOtherFiles(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("readme.txt")
	require.NoError(t, err)
	_, _ = w.Write([]byte("hello"))
	_, err = zw.Create("nested/")
	require.NoError(t, err)
	w, err = zw.Create("nested/cloud.PLY")
	require.NoError(t, err)
	_, _ = w.Write([]byte("ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty float y\nproperty float z\nend_header\n1 2 3\n"))
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "mixed.zip")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	got, err := Read(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "cloud", got[0].Name)
	assert.Equal(t, 1, got[0].Geometry.VertexCount())
}

func TestReadErrors(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.zip"))
	assert.Error(t, err)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("broken.ply")
	require.NoError(t, err)
	_, _ = w.Write([]byte("not a ply"))
	require.NoError(t, zw.Close())
	path := filepath.Join(t.TempDir(), "broken.zip")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	_, err = Read(path)
	assert.ErrorContains(t, err, "broken.ply")
}

func TestWriteRejectsEmptyGeometry(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []Entry{{Name: "empty", Geometry: geometry.NewBufferGeometry()}})
	assert.Error(t, err)
}

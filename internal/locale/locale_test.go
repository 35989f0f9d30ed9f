package locale

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnglishLabels(t *testing.T) {
	s := New("en")
	assert.Equal(t, "Upload Image", s.Get(UploadImage))
	assert.Equal(t, "Generating mesh ⏳", s.Get(GeneratingMesh))
	assert.Equal(t, "No object selected.", s.Get(AlertNoSelection))
}

func TestVietnameseLabels(t *testing.T) {
	s := New("vi-VN")
	assert.Equal(t, "Tải ảnh lên", s.Get(UploadImage))
	assert.Equal(t, "Laplacian", s.Get(Laplacian))
}

func TestUnknownLocaleFallsBackToEnglish(t *testing.T) {
	s := New("xx")
	assert.Equal(t, "Generate Mesh", s.Get(GenerateMesh))
}

func TestUnknownKeyIsReturnedAsIs(t *testing.T) {
	s := New("en")
	assert.Equal(t, "not-a-key", s.Get("not-a-key"))
}

func TestFormat(t *testing.T) {
	s := New("en")
	assert.Equal(t, "Upload failed: boom", s.Format(AlertRequestFailed, "Upload", errors.New("boom")))
}

package preview

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDataURL(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,aGk=", DataURL([]byte("hi"), "image/png"))
	assert.True(t, strings.HasPrefix(DataURL(nil, ""), "data:application/octet-stream;base64,"))
}

func TestThumbnailScalesDown(t *testing.T) {
	img, err := Thumbnail(pngBytes(t, 400, 100), 200)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestThumbnailKeepsSmallImages(t *testing.T) {
	img, err := Thumbnail(pngBytes(t, 20, 30), 200)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 20, 30), img.Bounds())
}

func TestThumbnailRejectsGarbage(t *testing.T) {
	_, err := Thumbnail([]byte("not an image"), 200)
	assert.Error(t, err)
}

func TestFit(t *testing.T) {
	w, h := Fit(100, 400, 200)
	assert.Equal(t, 50, w)
	assert.Equal(t, 200, h)

	w, h = Fit(1000, 1, 10)
	assert.Equal(t, 10, w)
	assert.Equal(t, 1, h)

	w, h = Fit(500, 500, 0)
	assert.Equal(t, 500, w)
	assert.Equal(t, 500, h)
}

func TestThumbnailRejectsHugeDimensions(t *testing.T) {
	data := pngBytes(t, 1, 1)
	// rewrite the IHDR size to 100000x100000 and fix its checksum
	binary.BigEndian.PutUint32(data[16:], 100000)
	binary.BigEndian.PutUint32(data[20:], 100000)
	binary.BigEndian.PutUint32(data[29:], crc32.ChecksumIEEE(data[12:29]))

	_, err := Thumbnail(data, 200)
	assert.ErrorIs(t, err, ErrTooLarge)
}

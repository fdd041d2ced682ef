package swatch

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"testing"

	"github.com/bbrks/go-blurhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Geometry(t *testing.T) {
	img, err := Render([]string{"#ff0000", "#00ff00", "#0000ff"}, Options{Width: 10, Height: 4})
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 30, 4), img.Bounds())
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{G: 0xff, A: 0xff}, img.RGBAAt(15, 2))
	assert.Equal(t, color.RGBA{B: 0xff, A: 0xff}, img.RGBAAt(29, 3))
}

func TestRender_Defaults(t *testing.T) {
	img, err := Render([]string{"#7c3aed"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, DefaultWidth, DefaultHeight), img.Bounds())
}

func TestRender_Empty(t *testing.T) {
	_, err := Render(nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrNoColors)
}

func TestRender_LabelUsesReadableText(t *testing.T) {
	// Yellow is light, so its label is drawn in black.
	img, err := Render([]string{"#ffff00"}, DefaultOptions())
	require.NoError(t, err)

	found := false
	for y := 0; y < DefaultHeight && !found; y++ {
		for x := 0; x < DefaultWidth; x++ {
			if img.RGBAAt(x, y) == (color.RGBA{A: 0xff}) {
				found = true
				break
			}
		}
	}
	assert.True(t, found, "expected black label pixels")
}

func TestPNG_Decodes(t *testing.T) {
	data, err := PNG([]string{"#123456", "#abcdef"}, Options{Width: 20, Height: 10, Labels: true})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 10, img.Bounds().Dy())
}

func TestBlurHash(t *testing.T) {
	hash, err := BlurHash([]string{"#ff0000", "#00ff00", "#0000ff", "#ffff00"})
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	x, y, err := blurhash.Components(hash)
	require.NoError(t, err)
	assert.Equal(t, 4, x)
	assert.Equal(t, 3, y)

	_, err = BlurHash(nil)
	assert.ErrorIs(t, err, ErrNoColors)
}

func TestResizeForBlurHash(t *testing.T) {
	small := image.NewRGBA(image.Rect(0, 0, 10, 10))
	assert.Same(t, small, resizeForBlurHash(small))

	wide := image.NewRGBA(image.Rect(0, 0, 640, 80))
	resized := resizeForBlurHash(wide)
	assert.Equal(t, 64, resized.Bounds().Dx())
	assert.Equal(t, 8, resized.Bounds().Dy())
}

func TestCache(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		cache, err := NewCache(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, cache.Save("pal-1", []byte("png")))
		data, err := cache.Get("pal-1")
		require.NoError(t, err)
		assert.Equal(t, []byte("png"), data)

		require.NoError(t, cache.Delete("pal-1"))
		_, err = cache.Get("pal-1")
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("delete missing is fine", func(t *testing.T) {
		cache, err := NewCache(t.TempDir())
		require.NoError(t, err)
		assert.NoError(t, cache.Delete("pal-none"))
	})

	t.Run("rejects bad input", func(t *testing.T) {
		_, err := NewCache("")
		assert.Error(t, err)

		cache, err := NewCache(t.TempDir())
		require.NoError(t, err)
		assert.Error(t, cache.Save("", []byte("x")))
		assert.Error(t, cache.Save("pal-1", nil))
	})

	t.Run("creates directory", func(t *testing.T) {
		dir := t.TempDir()
		cache, err := NewCache(dir)
		require.NoError(t, err)

		info, err := os.Stat(cache.dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}

func TestHash(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Hash(nil))
}

package product

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront/internal/pkg/logger"
)

func writeTestImage(t *testing.T, dir, name string, w, h int) {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 40, B: 40, A: 255})
	require.NoError(t, imaging.Save(img, filepath.Join(dir, name)))
}

func TestImageStore_NormalisesBasePath(t *testing.T) {
	store := NewImageStore("/srv/images", 0, logger.Discard())
	assert.Equal(t, "/srv/images/", store.basePath)
}

func TestImageStore_Original(t *testing.T) {
	dir := t.TempDir()
	writeTestImage(t, dir, "mug.png", 40, 20)

	store := NewImageStore(dir, 0, logger.Discard())
	path, err := store.Path(&Product{Image: "mug.png"}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mug.png"), path)
}

func TestImageStore_Thumbnail(t *testing.T) {
	dir := t.TempDir()
	writeTestImage(t, dir, "mug.png", 40, 20)

	store := NewImageStore(dir, 0, logger.Discard())
	path, err := store.Path(&Product{Image: "mug.png"}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "thumbs", "10x0", "mug.png"), path)

	thumb, err := imaging.Open(path)
	require.NoError(t, err)
	assert.Equal(t, 10, thumb.Bounds().Dx())
	assert.Equal(t, 5, thumb.Bounds().Dy())

	// second call reuses the cached file
	again, err := store.Path(&Product{Image: "mug.png"}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, path, again)
}

func TestImageStore_ClampsToMaxWidth(t *testing.T) {
	dir := t.TempDir()
	writeTestImage(t, dir, "mug.png", 40, 20)

	store := NewImageStore(dir, 16, logger.Discard())
	path, err := store.Path(&Product{Image: "mug.png"}, 500, 0)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "thumbs", "16x0", "mug.png"), path)
}

func TestImageStore_Missing(t *testing.T) {
	dir := t.TempDir()
	store := NewImageStore(dir, 0, logger.Discard())

	for _, name := range []string{"", "nope.png", "../etc/passwd", "sub/dir.png"} {
		_, err := store.Path(&Product{Image: name}, 0, 0)
		assert.ErrorIs(t, err, ErrImageNotFound, "image %q", name)
	}

	_, statErr := os.Stat(filepath.Join(dir, "thumbs"))
	assert.True(t, os.IsNotExist(statErr))
}

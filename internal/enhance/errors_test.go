package enhance

import (
	"errors"
	"image"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritas-tools/imgprep/internal/testutil"
)

func TestMilitaryOnBlackPageReportsTransformError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "black.png")
	testutil.SaveImage(t, image.NewGray(image.Rect(0, 0, 40, 40)), path)

	cfg := testConfig(dir)
	_, err := runMilitary(cfg, path)
	require.Error(t, err)

	var transform *TransformError
	require.True(t, errors.As(err, &transform))
	assert.Equal(t, "deskew", transform.Stage)

	var empty *EmptyContentError
	assert.True(t, errors.As(err, &empty), "cause chain reaches the empty-content error")

	// the public wrapper degrades instead of failing
	assert.Equal(t, path, MilitaryGrade(cfg, path))
}

func TestUnsupportedExtensionIsLoadError(t *testing.T) {
	_, err := LoadGrayscale(filepath.Join(t.TempDir(), "page.gif"))
	require.Error(t, err)
	var load *LoadError
	assert.True(t, errors.As(err, &load))
}

func TestIOErrorOnUnwritableArtifactDir(t *testing.T) {
	dir := t.TempDir()
	source := writeSourceImage(t, dir)

	cfg := testConfig(filepath.Join(dir, "missing-subdir"))
	_, err := runConservative(cfg, source)
	require.Error(t, err)
	var ioErr *IOError
	assert.True(t, errors.As(err, &ioErr))
}

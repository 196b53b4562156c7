package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestNamingTemplates(t *testing.T) {
	source := "/data/in/My Scan.PNG"
	dir := "/tmp/work"

	assert.Equal(t, "/tmp/work/temp_military_processed_My Scan_ocr.png", MilitaryPath(dir, source))
	assert.Equal(t, "/tmp/work/temp_messaging_processed_My Scan_ocr.png", MessagingPath(dir, source))
	assert.Equal(t, "/tmp/work/temp_My Scan_conservative.png", ConservativePath(dir, source))
	assert.Equal(t, "/tmp/work/temp_My Scan_extreme.png", ExtremePath(dir, source))
	assert.Equal(t, "/tmp/work/temp_enhanced_My Scan.png", ContrastPath(dir, source))
}

func TestNamingEmptyDirIsRelative(t *testing.T) {
	assert.Equal(t, "temp_scan_conservative.png", ConservativePath("", "scan.png"))
}

func TestSiblingPathsCoversAllTemplates(t *testing.T) {
	paths := SiblingPaths("/tmp", "a.png")
	require.Len(t, paths, 5)
	seen := map[string]bool{}
	for _, p := range paths {
		seen[p] = true
	}
	assert.Len(t, seen, 5, "templates must not collide")
}

func TestCleanupRemovesArtifactAndSiblings(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "scan.png")
	touch(t, source)

	military := MilitaryPath(dir, source)
	extreme := ExtremePath(dir, source)
	touch(t, military)
	touch(t, extreme)

	Cleanup(military, source)

	assert.NoFileExists(t, military)
	assert.NoFileExists(t, extreme, "siblings are swept")
	assert.FileExists(t, source, "source is never deleted")
}

func TestCleanupIdempotent(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "scan.png")
	touch(t, source)
	military := MilitaryPath(dir, source)
	touch(t, military)

	Cleanup(military, source)
	Cleanup(military, source) // second call is a no-op
	assert.FileExists(t, source)
}

func TestCleanupRefusesSourcePath(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "scan.png")
	touch(t, source)

	Cleanup(source, source)
	assert.FileExists(t, source)
}

func TestCleanupEmptyPathIsNoop(t *testing.T) {
	Cleanup("", "whatever.png")
}

func TestRemoveSingleFileOnly(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "scan.png")
	touch(t, source)
	military := MilitaryPath(dir, source)
	extreme := ExtremePath(dir, source)
	touch(t, military)
	touch(t, extreme)

	Remove(military, source)

	assert.NoFileExists(t, military)
	assert.FileExists(t, extreme, "Remove must not sweep siblings")
	assert.FileExists(t, source)
}

func TestSweepDir(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "scan.png")
	touch(t, source)
	for _, p := range SiblingPaths(dir, source) {
		touch(t, p)
	}
	other := filepath.Join(dir, "temp_military_processed_unrelated_ocr.png")
	touch(t, other)

	SweepDir(dir, source)

	for _, p := range SiblingPaths(dir, source) {
		assert.NoFileExists(t, p)
	}
	assert.FileExists(t, source)
	assert.FileExists(t, other, "artifacts of other sources are untouched")
}

func TestIsArtifactName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"temp_military_processed_scan_ocr.png", true},
		{"temp_messaging_processed_scan_ocr.png", true},
		{"temp_scan_conservative.png", true},
		{"temp_scan_extreme.png", true},
		{"temp_enhanced_scan.png", true},
		{"scan.png", false},
		{"temp_scan.png", false},
		{"temp_military_processed_scan_ocr.jpg", false},
		{"military_processed_scan_ocr.png", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsArtifactName(tt.name), tt.name)
	}
}

func TestCleanDir(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "scan.png")
	touch(t, source)
	touch(t, filepath.Join(dir, "temp_scan_extreme.png"))
	touch(t, filepath.Join(dir, "temp_enhanced_scan.png"))
	touch(t, filepath.Join(dir, "notes.txt"))

	removed, err := CleanDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.FileExists(t, source)
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}

func TestCleanDirMissingDirectory(t *testing.T) {
	_, err := CleanDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

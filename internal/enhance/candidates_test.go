package enhance

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritas-tools/imgprep/internal/artifact"
	"github.com/veritas-tools/imgprep/internal/testutil"
)

func writeSourceImage(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "scan.png")
	cfg := testutil.DefaultTextImageConfig()
	// keep the page small: the denoise stage cost scales with pixel count
	cfg.Text = "QUICK BROWN FOX"
	cfg.Width = 160
	cfg.Height = 80
	cfg.Lines = 2
	testutil.WriteTextImage(t, cfg, path)
	return path
}

func testConfig(dir string) Config {
	cfg := DefaultConfig()
	cfg.TempDir = dir
	cfg.Workers = 1
	return cfg
}

func TestGenerateProducesAllMethodsInOrder(t *testing.T) {
	dir := t.TempDir()
	source := writeSourceImage(t, dir)
	cfg := testConfig(dir)

	candidates := Generate(context.Background(), cfg, source)
	require.Len(t, candidates, 4)

	wantMethods := []string{
		artifact.MethodMilitary,
		artifact.MethodMessaging,
		artifact.MethodConservative,
		artifact.MethodExtreme,
	}
	wantPaths := []string{
		artifact.MilitaryPath(dir, source),
		artifact.MessagingPath(dir, source),
		artifact.ConservativePath(dir, source),
		artifact.ExtremePath(dir, source),
	}
	for i, c := range candidates {
		assert.Equal(t, wantMethods[i], c.Method)
		assert.Equal(t, wantPaths[i], c.Path)
		assert.NotEqual(t, source, c.Path)
		assert.FileExists(t, c.Path)
	}
}

func TestGenerateMissingSourceFallsBack(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "missing.png")
	cfg := testConfig(dir)

	candidates := Generate(context.Background(), cfg, source)
	// the first two methods degrade to the source path, the rest are omitted
	require.Len(t, candidates, 2)
	assert.Equal(t, artifact.MethodMilitary, candidates[0].Method)
	assert.Equal(t, source, candidates[0].Path)
	assert.Equal(t, artifact.MethodMessaging, candidates[1].Method)
	assert.Equal(t, source, candidates[1].Path)
}

func TestGenerateCancelledContext(t *testing.T) {
	dir := t.TempDir()
	source := writeSourceImage(t, dir)
	cfg := testConfig(dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	candidates := Generate(ctx, cfg, source)
	require.Len(t, candidates, 1)
	assert.Equal(t, artifact.MethodOriginal, candidates[0].Method)
	assert.Equal(t, source, candidates[0].Path)
}

func TestGenerateParallelMatchesSequential(t *testing.T) {
	seqDir := t.TempDir()
	parDir := t.TempDir()
	seqSource := writeSourceImage(t, seqDir)
	parSource := writeSourceImage(t, parDir)

	seqCfg := testConfig(seqDir)
	parCfg := testConfig(parDir)
	parCfg.Workers = 4

	seq := Generate(context.Background(), seqCfg, seqSource)
	par := Generate(context.Background(), parCfg, parSource)

	require.Len(t, par, len(seq))
	for i := range seq {
		assert.Equal(t, seq[i].Method, par[i].Method, "method order is stable under parallelism")
		assert.Equal(t, filepath.Base(seq[i].Path), filepath.Base(par[i].Path))
	}
}

func TestGenerateArtifactNaming(t *testing.T) {
	dir := t.TempDir()
	source := writeSourceImage(t, dir)
	cfg := testConfig(dir)

	candidates := Generate(context.Background(), cfg, source)
	require.Len(t, candidates, 4)
	assert.Equal(t, "temp_military_processed_scan_ocr.png", filepath.Base(candidates[0].Path))
	assert.Equal(t, "temp_messaging_processed_scan_ocr.png", filepath.Base(candidates[1].Path))
	assert.Equal(t, "temp_scan_conservative.png", filepath.Base(candidates[2].Path))
	assert.Equal(t, "temp_scan_extreme.png", filepath.Base(candidates[3].Path))
}

func TestCleanupCandidatesKeepsWinnerAndSource(t *testing.T) {
	dir := t.TempDir()
	source := writeSourceImage(t, dir)
	cfg := testConfig(dir)

	candidates := Generate(context.Background(), cfg, source)
	require.Len(t, candidates, 4)
	winner := candidates[1].Path

	CleanupCandidates(candidates, source, winner)

	assert.FileExists(t, source)
	assert.FileExists(t, winner)
	for i, c := range candidates {
		if i == 1 {
			continue
		}
		assert.NoFileExists(t, c.Path)
	}

	// releasing again is a safe no-op
	CleanupCandidates(candidates, source, winner)
	assert.FileExists(t, winner)
}

func TestCleanupCandidatesReleaseAll(t *testing.T) {
	dir := t.TempDir()
	source := writeSourceImage(t, dir)
	cfg := testConfig(dir)

	candidates := Generate(context.Background(), cfg, source)
	CleanupCandidates(candidates, source, "")

	assert.FileExists(t, source)
	for _, c := range candidates {
		assert.NoFileExists(t, c.Path)
	}
}

func TestCleanupCandidatesNeverDeletesFallbackSource(t *testing.T) {
	dir := t.TempDir()
	source := writeSourceImage(t, dir)
	candidates := []Candidate{{Method: artifact.MethodOriginal, Path: source}}

	CleanupCandidates(candidates, source, "")
	assert.FileExists(t, source)
}

func TestGenerateNeverReturnsEmpty(t *testing.T) {
	cfg := testConfig(t.TempDir())
	candidates := Generate(context.Background(), cfg, string([]byte{0}))
	assert.NotEmpty(t, candidates)
}

func TestMethodWrappersFallBackToSource(t *testing.T) {
	cfg := testConfig(t.TempDir())
	missing := filepath.Join(cfg.TempDir, "missing.png")

	assert.Equal(t, missing, MilitaryGrade(cfg, missing))
	assert.Equal(t, missing, MessagingSpecialized(cfg, missing))
	assert.Equal(t, missing, Conservative(cfg, missing))
	assert.Equal(t, missing, ExtremeEnhancement(cfg, missing))
	assert.Equal(t, missing, EnhanceContrast(cfg, missing))
}

func TestEnhanceContrastWritesArtifact(t *testing.T) {
	dir := t.TempDir()
	source := writeSourceImage(t, dir)
	cfg := testConfig(dir)

	out := EnhanceContrast(cfg, source)
	assert.Equal(t, "temp_enhanced_scan.png", filepath.Base(out))
	assert.FileExists(t, out)

	// the artifact must itself be loadable
	r, err := LoadGrayscale(out)
	require.NoError(t, err)
	assert.False(t, r.Empty())
}

func TestMilitaryArtifactIsBinary(t *testing.T) {
	dir := t.TempDir()
	source := writeSourceImage(t, dir)
	cfg := testConfig(dir)

	out := MilitaryGrade(cfg, source)
	require.NotEqual(t, source, out)

	r, err := LoadGrayscale(out)
	require.NoError(t, err)
	for _, v := range r.Pix {
		assert.True(t, v == 0 || v == 255)
	}
	_ = os.Remove(out)
}

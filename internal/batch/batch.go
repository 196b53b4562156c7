// Package batch runs the enhancement pipeline over many images with a
// bounded worker pool. Cancellation is honored between per-image iterations;
// an in-flight transform always runs to completion.
package batch

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/veritas-tools/imgprep/internal/artifact"
	"github.com/veritas-tools/imgprep/internal/enhance"
	"github.com/veritas-tools/imgprep/internal/ocr"
)

// Config controls a batch run.
type Config struct {
	Enhance       enhance.Config
	Workers       int  // concurrent images; <=0 means NumCPU
	Recursive     bool // walk subdirectories of directory arguments
	RunOCR        bool // score candidates with the OCR collaborator
	Language      string
	KeepArtifacts bool // keep non-winning artifacts after OCR selection
}

// DefaultConfig returns batch defaults with the pipeline defaults embedded.
func DefaultConfig() Config {
	return Config{
		Enhance:  enhance.DefaultConfig(),
		Workers:  runtime.NumCPU(),
		Language: "eng",
	}
}

// ImageResult is the outcome for a single source image.
type ImageResult struct {
	Source     string
	Candidates []enhance.Candidate
	Best       *ocr.Result // set when OCR selection ran and succeeded
	Duration   time.Duration
}

// Result aggregates a batch run.
type Result struct {
	Images    []ImageResult
	Duration  time.Duration
	Cancelled bool
}

// ProcessBatch enhances every image found under the given paths. Candidate
// generation never fails per image; only discovery errors are returned.
func ProcessBatch(ctx context.Context, cfg Config, paths []string) (*Result, error) {
	files, err := discoverImageFiles(paths, cfg.Recursive)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("no image files found")
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(files) {
		workers = len(files)
	}
	// images are the unit of parallelism here; keep methods sequential to
	// avoid nesting pools
	perImage := cfg.Enhance
	perImage.Workers = 1

	start := time.Now()
	results := make([]ImageResult, len(files))
	jobs := make(chan int, len(files))

	var wg sync.WaitGroup
	for rangeIdx := 0; rangeIdx < workers; rangeIdx++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = processOne(ctx, cfg, perImage, files[i])
			}
		}()
	}

	cancelled := false
	for i := range files {
		if ctx.Err() != nil {
			cancelled = true
			// unqueued images still get a fallback entry
			for j := i; j < len(files); j++ {
				results[j] = ImageResult{
					Source:     files[j],
					Candidates: []enhance.Candidate{{Method: artifact.MethodOriginal, Path: files[j]}},
				}
			}
			break
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return &Result{
		Images:    results,
		Duration:  time.Since(start),
		Cancelled: cancelled || ctx.Err() != nil,
	}, nil
}

func processOne(ctx context.Context, cfg Config, perImage enhance.Config, path string) ImageResult {
	start := time.Now()
	res := ImageResult{Source: path}
	res.Candidates = enhance.Generate(ctx, perImage, path)

	if cfg.RunOCR && ocr.Available() {
		best, err := ocr.PickBest(res.Candidates, cfg.Language)
		if err != nil {
			slog.Warn("ocr selection failed", "path", path, "error", err)
		} else {
			res.Best = &best
			if !cfg.KeepArtifacts {
				enhance.CleanupCandidates(res.Candidates, path, best.Path)
			}
		}
	}

	res.Duration = time.Since(start)
	slog.Debug("image processed", "path", path,
		"candidates", len(res.Candidates), "duration_ms", res.Duration.Milliseconds())
	return res
}

package enhance

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/veritas-tools/imgprep/internal/artifact"
	"github.com/veritas-tools/imgprep/internal/common"
)

// Candidate is one named, independently produced enhanced rendering of a
// source image, intended for OCR confidence comparison.
type Candidate struct {
	Method string
	Path   string
}

type methodSpec struct {
	name string
	run  func(Config, string) (string, error)
	// keep decides how a failed method appears in the sequence: the first two
	// methods fall back to the source path, the rest are omitted.
	keepOnFailure bool
}

func methodOrder() []methodSpec {
	return []methodSpec{
		{artifact.MethodMilitary, runMilitary, true},
		{artifact.MethodMessaging, runMessaging, true},
		{artifact.MethodConservative, runConservative, false},
		{artifact.MethodExtreme, runExtreme, false},
	}
}

// Generate runs all enhancement methods against sourcePath and returns the
// candidates in fixed generation order. Failures are isolated per method and
// the result is never empty: in the worst case it holds a single entry with
// the original source path. ctx is checked between methods only; a running
// transform is never interrupted.
func Generate(ctx context.Context, cfg Config, sourcePath string) []Candidate {
	if cfg.Workers > 1 {
		return generateParallel(ctx, cfg, sourcePath)
	}

	out := make([]Candidate, 0, 4)
	for _, m := range methodOrder() {
		if ctx.Err() != nil {
			slog.Debug("candidate generation cancelled", "path", sourcePath)
			break
		}
		if c, ok := runMethod(m, cfg, sourcePath); ok {
			out = append(out, c)
		}
	}
	return ensureNonEmpty(out, sourcePath)
}

func runMethod(m methodSpec, cfg Config, sourcePath string) (Candidate, bool) {
	timer := common.StartTimer(m.name)
	path, err := m.run(cfg, sourcePath)
	slog.Debug("enhancement method finished", "method", m.name, "duration", timer.Stop())
	if err == nil {
		return Candidate{Method: m.name, Path: path}, true
	}
	slog.Warn("enhancement method failed", "method", m.name, "path", sourcePath, "error", err)
	if m.keepOnFailure {
		return Candidate{Method: m.name, Path: sourcePath}, true
	}
	return Candidate{}, false
}

// generateParallel runs the methods on a bounded worker pool. The methods
// load independent copies of the source and write distinct artifact paths,
// so they share nothing but the filesystem namespace.
func generateParallel(ctx context.Context, cfg Config, sourcePath string) []Candidate {
	methods := methodOrder()
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(methods) {
		workers = len(methods)
	}

	type slot struct {
		c  Candidate
		ok bool
	}
	results := make([]slot, len(methods))
	jobs := make(chan int, len(methods))

	var wg sync.WaitGroup
	for rangeIdx := 0; rangeIdx < workers; rangeIdx++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				c, ok := runMethod(methods[i], cfg, sourcePath)
				results[i] = slot{c: c, ok: ok}
			}
		}()
	}
	for i := range methods {
		if ctx.Err() != nil {
			break
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	out := make([]Candidate, 0, len(methods))
	for _, s := range results {
		if s.ok {
			out = append(out, s.c)
		}
	}
	return ensureNonEmpty(out, sourcePath)
}

func ensureNonEmpty(out []Candidate, sourcePath string) []Candidate {
	if len(out) == 0 {
		return []Candidate{{Method: artifact.MethodOriginal, Path: sourcePath}}
	}
	return out
}

// CleanupCandidates releases every temp artifact in the sequence, keeping the
// file at keepPath (pass "" to release all). The source file is never touched.
func CleanupCandidates(candidates []Candidate, sourcePath, keepPath string) {
	for _, c := range candidates {
		if c.Path == keepPath || c.Path == sourcePath {
			continue
		}
		artifact.Remove(c.Path, sourcePath)
	}
}

// Package dedup collapses runs of near-identical slide frames into a single
// representative while keeping legitimate revisits of earlier slides.
package dedup

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/bdougie/slidedup/internal/fingerprint"
	"github.com/bdougie/slidedup/internal/models"
)

const defaultWorkers = 4 // Adjust based on your CPU cores

// DefaultThreshold is the Hamming-distance bound under which two frames are
// considered the same slide. 8 is a robust default for 64-bit slide hashes.
const DefaultThreshold = 8

// FingerprintFunc computes the fingerprint for one frame file.
type FingerprintFunc func(path string) (*fingerprint.Hash, error)

// Options configures one engine run. Threshold 0 is valid and means exact
// fingerprint matches only; Workers 0 falls back to the default pool size.
type Options struct {
	Threshold int // Hamming distance bound; lower is stricter.
	Workers   int // Fingerprint workers; comparison is always sequential.
}

// Result is the outcome of one run over an ordered frame sequence.
type Result struct {
	Retained []models.Frame   // Order-preserving subsequence of the input.
	Warnings []models.Warning // One per skipped (unreadable/corrupt) frame.
	Status   models.Status    // StatusSuccess, or StatusPartial when frames were skipped.
}

// Engine walks an ordered frame sequence and decides, frame by frame,
// whether each one is a near-duplicate of the last retained frame.
type Engine struct {
	fp        FingerprintFunc
	threshold int
	workers   int
	logger    *slog.Logger
}

// NewEngine creates an engine using fp for fingerprint computation.
func NewEngine(fp FingerprintFunc, opts Options, logger *slog.Logger) *Engine {
	threshold := opts.Threshold
	if threshold < 0 {
		threshold = DefaultThreshold
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		fp:        fp,
		threshold: threshold,
		workers:   workers,
		logger:    logger,
	}
}

// Run fingerprints every frame, then retains each frame whose Hamming
// distance to the previously retained fingerprint exceeds the threshold.
// The comparison is strictly against the last retained frame, never the
// full history: runs of a lingered slide collapse to one frame, while a
// revisit of an earlier slide after a different one is kept.
//
// Unreadable frames are skipped and counted, not fatal. Run returns an
// error only when the context is cancelled.
func (e *Engine) Run(ctx context.Context, frames []models.Frame) (*Result, error) {
	hashes, warnings, err := e.fingerprintAll(ctx, frames)
	if err != nil {
		return nil, err
	}

	result := &Result{Warnings: warnings, Status: models.StatusSuccess}

	var lastRetained *fingerprint.Hash
	for i, frame := range frames {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("deduplication aborted: %w", err)
		}

		hash := hashes[i]
		if hash == nil {
			// Fingerprinting failed; already recorded as a warning.
			continue
		}

		if lastRetained == nil {
			result.Retained = append(result.Retained, frame)
			lastRetained = hash
			continue
		}

		distance, err := lastRetained.Distance(hash)
		if err != nil {
			result.Warnings = append(result.Warnings, models.Warning{
				Frame:  frame.Path,
				Reason: fmt.Sprintf("fingerprint comparison failed: %v", err),
			})
			continue
		}

		if distance > e.threshold {
			result.Retained = append(result.Retained, frame)
			lastRetained = hash
		} else {
			e.logger.Debug("dropping duplicate frame",
				"frame", frame.Path, "distance", distance, "threshold", e.threshold)
		}
	}

	if len(result.Warnings) > 0 {
		result.Status = models.StatusPartial
	}

	e.logger.Info("deduplication complete",
		"total", len(frames),
		"retained", len(result.Retained),
		"skipped", len(result.Warnings))

	return result, nil
}

// fingerprintAll computes every frame's fingerprint on a worker pool and
// re-serializes the results by frame index, so the comparison pass sees
// them in original order. hashes[i] is nil when frame i failed.
func (e *Engine) fingerprintAll(ctx context.Context, frames []models.Frame) ([]*fingerprint.Hash, []models.Warning, error) {
	type workItem struct {
		pos   int
		frame models.Frame
	}
	type hashResult struct {
		pos  int
		hash *fingerprint.Hash
		err  error
	}

	workChan := make(chan workItem, len(frames))
	resultsChan := make(chan hashResult, len(frames))

	var wg sync.WaitGroup

	remaining := atomic.Int64{}
	remaining.Store(int64(len(frames)))

	workers := e.workers
	if workers > len(frames) {
		workers = len(frames)
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for work := range workChan {
				if ctx.Err() != nil {
					resultsChan <- hashResult{pos: work.pos, err: ctx.Err()}
					continue
				}

				hash, err := e.fp(work.frame.Path)
				resultsChan <- hashResult{pos: work.pos, hash: hash, err: err}

				left := remaining.Add(-1)
				e.logger.Debug("fingerprinted frame",
					"frame", work.frame.Path, "remaining", left)
			}
		}()
	}

	go func() {
		for i, frame := range frames {
			workChan <- workItem{pos: i, frame: frame}
		}
		close(workChan)
	}()

	wg.Wait()
	close(resultsChan)

	hashes := make([]*fingerprint.Hash, len(frames))
	errs := make([]error, len(frames))
	for r := range resultsChan {
		hashes[r.pos] = r.hash
		errs[r.pos] = r.err
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("fingerprinting aborted: %w", err)
	}

	var warnings []models.Warning
	for i, err := range errs {
		if err != nil {
			warnings = append(warnings, models.Warning{
				Frame:  frames[i].Path,
				Reason: err.Error(),
			})
		}
	}

	return hashes, warnings, nil
}

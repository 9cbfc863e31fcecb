// Package pipeline walks an input tree and dispatches image work to a
// bounded worker pool.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"

	"github.com/AnyUserName/imgpress-cli/internal/profile"
	"github.com/AnyUserName/imgpress-cli/internal/transform"
)

// ProgressFunc receives one event per successfully processed image, in
// completion order. Events are delivered from a single goroutine, so a
// renderer never interleaves lines.
type ProgressFunc func(completed, total int, name string)

// Config holds all parameters for one compression run. It is read-only
// once the run starts and shared by every worker.
type Config struct {
	InputDir   string
	Profile    profile.Profile
	Workers    int // 0 = NumCPU
	DryRun     bool
	OnProgress ProgressFunc
	Logger     *slog.Logger
}

// Failure records one item that could not be processed.
type Failure struct {
	RelPath string
	Err     error
}

// Outcome describes one successfully written output.
type Outcome struct {
	RelPath  string
	DestPath string
	Width    int
	Height   int
	SrcSize  int64
	OutSize  int64
	Hash     string
}

// Result aggregates one run. Per-item failures live in Failures with
// their causes; they never abort the run.
type Result struct {
	Total     int
	Processed int
	Skipped   int
	Failed    int

	Outcomes    []Outcome
	SkippedRels []string
	Failures    []Failure

	InputBytes  int64
	OutputBytes int64
	Workers     int
}

// Pipeline orchestrates enumeration and concurrent processing.
type Pipeline struct {
	cfg Config
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Pipeline{cfg: cfg}
}

type itemResult struct {
	item    WorkItem
	outcome Outcome
	err     error
}

// Run validates the configuration, enumerates candidates and processes
// them on the worker pool. Only run-level conditions (bad config,
// missing input folder, walk errors) are returned as errors; a
// cancelled context yields the partial result without error.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	if err := p.cfg.Profile.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	info, err := os.Stat(p.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("input folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input folder %s is not a directory", p.cfg.InputDir)
	}

	scan, err := ScanTree(p.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	res := &Result{
		Total:       scan.Total(),
		Skipped:     len(scan.Skipped),
		SkippedRels: scan.Skipped,
		Workers:     p.cfg.Workers,
	}
	p.cfg.Logger.Debug("enumeration done",
		"candidates", res.Total, "pending", len(scan.Items), "skipped", res.Skipped)

	if p.cfg.DryRun || len(scan.Items) == 0 {
		return res, nil
	}

	jobs := make(chan WorkItem)
	results := make(chan itemResult)

	var wg sync.WaitGroup
	wg.Add(p.cfg.Workers)
	for i := 0; i < p.cfg.Workers; i++ {
		go func() {
			defer wg.Done()
			p.worker(ctx, jobs, results)
		}()
	}

	// Single collector goroutine owns every counter, so no further
	// synchronization is needed around the result.
	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		for r := range results {
			if r.err != nil {
				res.Failed++
				res.Failures = append(res.Failures, Failure{RelPath: r.item.RelPath, Err: r.err})
				p.cfg.Logger.Warn("processing failed", "path", r.item.RelPath, "error", r.err)
				continue
			}
			res.Processed++
			res.InputBytes += r.outcome.SrcSize
			res.OutputBytes += r.outcome.OutSize
			res.Outcomes = append(res.Outcomes, r.outcome)
			if p.cfg.OnProgress != nil {
				p.cfg.OnProgress(res.Processed, res.Total, r.item.RelPath)
			}
		}
	}()

	go func() {
		defer close(jobs)
		for _, item := range scan.Items {
			select {
			case jobs <- item:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	close(results)
	<-collectorDone

	if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return res, err
	}
	return res, nil
}

func (p *Pipeline) worker(ctx context.Context, jobs <-chan WorkItem, results chan<- itemResult) {
	for item := range jobs {
		if ctx.Err() != nil {
			return
		}
		p.cfg.Logger.Debug("processing", "path", item.RelPath)

		out, err := transform.Process(item.SourcePath, item.DestPath,
			p.cfg.Profile.MaxDimension, p.cfg.Profile.Quality)

		r := itemResult{item: item, err: err}
		if err == nil {
			r.outcome = Outcome{
				RelPath:  item.RelPath,
				DestPath: item.DestPath,
				Width:    out.Width,
				Height:   out.Height,
				SrcSize:  out.SrcSize,
				OutSize:  out.OutSize,
				Hash:     out.Hash,
			}
		}
		results <- r
	}
}

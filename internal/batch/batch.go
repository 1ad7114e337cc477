// Package batch parses many invoice files concurrently. The parsing core
// is pure and stateless, so workers need no coordination beyond handing out
// inputs; results come back in input order.
package batch

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/studio360/invoice-parser/internal/parser"
	"github.com/studio360/invoice-parser/internal/pipeline"
	"github.com/studio360/invoice-parser/internal/sheet"
)

// Result pairs one input path with its parse outcome. Err is only set for
// I/O or format failures; the parse itself cannot fail.
type Result struct {
	Path   string        `json:"path"`
	Record parser.Record `json:"record"`
	Err    error         `json:"-"`
	Error  string        `json:"error,omitempty"`
}

type Runner struct {
	pipe    *pipeline.Pipeline
	logger  *slog.Logger
	workers int
}

type Option func(*Runner)

func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

func NewRunner(pipe *pipeline.Pipeline, logger *slog.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Runner{
		pipe:    pipe,
		logger:  logger,
		workers: 4,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Run parses every path with the runner's worker pool and returns one
// Result per path, in input order. A failed file is reported in its Result;
// it never aborts the batch. Respects ctx cancellation between files.
func (r *Runner) Run(ctx context.Context, paths []string) []Result {
	results := make([]Result, len(paths))
	idx := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := range idx {
				results[i] = r.parseFile(paths[i])
				if results[i].Err != nil {
					r.logger.Warn("batch file failed",
						"worker_id", workerID, "path", paths[i], "error", results[i].Err)
				}
			}
		}(w + 1)
	}

	for i := range paths {
		select {
		case <-ctx.Done():
			close(idx)
			wg.Wait()
			for j := i; j < len(paths); j++ {
				results[j] = Result{Path: paths[j], Err: ctx.Err(), Error: ctx.Err().Error()}
			}
			return results
		case idx <- i:
		}
	}
	close(idx)
	wg.Wait()
	return results
}

func (r *Runner) parseFile(path string) Result {
	f, err := os.Open(path)
	if err != nil {
		return Result{Path: path, Err: err, Error: err.Error()}
	}
	defer f.Close()

	text, err := sheet.FlattenUpload(path, f)
	if err != nil {
		return Result{Path: path, Err: err, Error: err.Error()}
	}
	return Result{Path: path, Record: r.pipe.Parse(text, nil)}
}

package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"stylemirror/internal/chunk"
)

type Worker func(ctx context.Context, c chunk.Chunk) error

// ChunkError ties a worker failure to the chunk that caused it.
type ChunkError struct {
	Index int
	Err   error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("chunk %d: %v", e.Index, e.Err)
}

func (e *ChunkError) Unwrap() error { return e.Err }

// Run feeds chunks to a bounded pool of workers and collects every failure.
// Chunks not yet dispatched when ctx is cancelled are reported with ctx.Err().
func Run(ctx context.Context, chunks []chunk.Chunk, workers int, fn Worker) []error {
	if len(chunks) == 0 || fn == nil {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers < 1 {
			workers = 1
		}
	}

	jobs := make(chan chunk.Chunk)
	errs := make(chan error, len(chunks))
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				if err := fn(ctx, c); err != nil {
					errs <- &ChunkError{Index: c.Index, Err: err}
				}
			}
		}()
	}

dispatch:
	for i, c := range chunks {
		select {
		case <-ctx.Done():
			for _, rest := range chunks[i:] {
				errs <- &ChunkError{Index: rest.Index, Err: ctx.Err()}
			}
			break dispatch
		case jobs <- c:
		}
	}
	close(jobs)
	wg.Wait()
	close(errs)

	out := make([]error, 0, len(errs))
	for err := range errs {
		out = append(out, err)
	}
	return out
}

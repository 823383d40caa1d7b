package images

import (
	"context"
	"errors"
	"sync"
	"time"

	domain "github.com/databricks-chaima/appsOPM2025/internal/domain/images"
)

// Coordinator fans one page of image paths out to the blob store. Every
// path races its own deadline; one slow or failing image never touches the
// time budget or the result of another.
type Coordinator struct {
	Store domain.Store

	// MaxConcurrent caps in-flight fetches. Zero means full fan-out, which
	// is fine at dashboard page sizes (≤100 items).
	MaxConcurrent int
}

func NewCoordinator(store domain.Store, maxConcurrent int) *Coordinator {
	return &Coordinator{Store: store, MaxConcurrent: maxConcurrent}
}

// FetchAll retrieves every path concurrently and returns a slice of the
// same length and order as paths, regardless of completion order.
//
// Paths failing prefix validation are resolved inline with a
// ValidationError and never dispatched to the store. perItemTimeout starts
// when an item is dispatched; a fetch the store cannot cancel is abandoned
// once its deadline passes and its eventual result discarded.
func (c *Coordinator) FetchAll(ctx context.Context, paths []string, perItemTimeout time.Duration) []domain.FetchResult {
	results := make([]domain.FetchResult, len(paths))

	var sem chan struct{}
	if c.MaxConcurrent > 0 {
		sem = make(chan struct{}, c.MaxConcurrent)
	}

	var wg sync.WaitGroup
	for i, path := range paths {
		if err := c.Store.Validate(path); err != nil {
			results[i] = domain.Failed(err)
			continue
		}

		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}
			results[i] = c.fetchOne(ctx, path, perItemTimeout)
		}(i, path)
	}
	wg.Wait()
	return results
}

func (c *Coordinator) fetchOne(ctx context.Context, path string, timeout time.Duration) domain.FetchResult {
	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		bytes []byte
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		b, err := c.Store.Fetch(fetchCtx, path)
		done <- outcome{bytes: b, err: err}
	}()

	select {
	case out := <-done:
		switch {
		case out.err == nil:
			return domain.Succeeded(out.bytes)
		case errors.Is(out.err, context.DeadlineExceeded):
			return domain.TimedOut()
		default:
			return domain.Failed(&domain.FetchError{Path: path, Err: out.err})
		}
	case <-fetchCtx.Done():
		// The in-flight fetch is abandoned, not awaited further.
		if errors.Is(fetchCtx.Err(), context.DeadlineExceeded) {
			return domain.TimedOut()
		}
		return domain.Failed(fetchCtx.Err())
	}
}

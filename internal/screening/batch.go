package screening

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

const defaultBatchWorkers = 8

// ScreenBatch runs the pipeline over independent queries with bounded
// concurrency. Results[i] always corresponds to queries[i] regardless of
// completion order. Cancelling ctx stops dispatching new queries; already
// dispatched queries run to completion and undispatched entries are returned
// with the Cancelled marker set.
func (p *Pipeline) ScreenBatch(ctx context.Context, queries []Query) BatchResult {
	if len(queries) == 0 {
		return BatchResult{Results: []Result{}}
	}

	start := time.Now()
	results := make([]Result, len(queries))

	g := new(errgroup.Group)
	g.SetLimit(p.workers)

	for i := range queries {
		if ctx.Err() != nil {
			for j := i; j < len(queries); j++ {
				results[j] = Result{Query: queries[j], Cancelled: true}
			}
			break
		}

		idx := i
		g.Go(func() error {
			results[idx] = p.Screen(ctx, queries[idx])
			return nil
		})
	}

	// Workers never return errors; Wait only synchronizes completion.
	_ = g.Wait()

	total := time.Since(start)
	return BatchResult{
		Results:         results,
		TotalDuration:   total,
		AverageDuration: total / time.Duration(len(queries)),
	}
}

package worker

import (
	"context"
	"sync"

	"github.com/canoncheck/canoncheck/internal/model"
)

// AdjudicateFunc decides one sample. It must not panic; recovery is the
// caller's concern.
type AdjudicateFunc func(ctx context.Context, sample model.Sample) model.Result

// Pool fans sample adjudications out across a fixed number of workers.
// Results come back in input order regardless of completion order.
type Pool struct {
	workers int
	fn      AdjudicateFunc
}

// NewPool creates a pool with the specified number of workers
func NewPool(workers int, fn AdjudicateFunc) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers, fn: fn}
}

type job struct {
	index  int
	sample model.Sample
}

// Run adjudicates every sample and returns one result per sample, in
// input order. On context cancellation, samples not yet started are
// returned as contradictory records carrying the cancellation reason.
func (p *Pool) Run(ctx context.Context, samples []model.Sample) []model.Result {
	results := make([]model.Result, len(samples))
	jobs := make(chan job)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results[j.index] = p.fn(ctx, j.sample)
			}
		}()
	}

	nextUnfed := len(samples)
feed:
	for i, s := range samples {
		select {
		case <-ctx.Done():
			nextUnfed = i
			break feed
		case jobs <- job{index: i, sample: s}:
		}
	}
	close(jobs)
	wg.Wait()

	for i := nextUnfed; i < len(samples); i++ {
		results[i] = canceledResult(samples[i], ctx.Err())
	}

	return results
}

func canceledResult(sample model.Sample, err error) model.Result {
	rationale := "adjudication canceled"
	if err != nil {
		rationale = "adjudication canceled: " + err.Error()
	}
	return model.Result{
		ID:         sample.ID,
		BookID:     sample.BookID,
		Character:  sample.Character,
		Prediction: model.LabelContradictory,
		TrueLabel:  sample.TrueLabel,
		Rationale:  rationale,
	}
}
